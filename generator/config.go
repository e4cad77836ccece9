// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

// Config contains generator configuration.
type Config struct {
	// PackageName is the package (or namespace) name for generated code.
	PackageName string

	// BindingStructPrefix prefixes the generated support type names
	// (stage/binding metadata structs), so pipelines generated with
	// different prefixes can coexist in one package.
	BindingStructPrefix string

	// EmitDocComments annotates generated fields with shader-source
	// parameter names and types.
	EmitDocComments bool

	// Source describes where the shader came from (for header comments).
	Source string

	// Options contains target-specific options.
	Options map[string]string
}

// DefaultConfig returns sensible defaults for code generation.
func DefaultConfig() Config {
	return Config{
		PackageName:         "pipelines",
		BindingStructPrefix: "Pipeline",
		EmitDocComments:     true,
	}
}

// Option returns a target-specific option with default.
func (c Config) Option(key, defaultValue string) string {
	if v, ok := c.Options[key]; ok {
		return v
	}
	return defaultValue
}
