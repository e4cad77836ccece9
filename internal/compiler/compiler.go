// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package compiler wraps the naga shader compiler behind the narrow
// surface pipewriter needs: compile WGSL source, hand back the module's
// reflection data.
//
// naga's IR is the reflection handle. Callers must copy what they need out
// of it rather than retain it past a generation run; the extractor in
// internal/reflection does exactly that.
package compiler

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// Module is a compiled shader module together with its source path.
type Module struct {
	// Path is the source file path, kept for diagnostics and generated
	// header comments.
	Path string

	ir *ir.Module
}

// NewModule wraps already-lowered reflection data. Used by tests and by
// callers that drive naga themselves.
func NewModule(path string, m *ir.Module) *Module {
	return &Module{Path: path, ir: m}
}

// Reflection returns the module's reflection data.
func (m *Module) Reflection() *ir.Module {
	return m.ir
}

// Error reports a shader the toolchain rejected. Diagnostic carries the
// compiler's message verbatim; it is never reinterpreted here.
type Error struct {
	Path       string
	Diagnostic string
	err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("compile %s: %s", e.Path, e.Diagnostic)
}

func (e *Error) Unwrap() error {
	return e.err
}

// CompileSource compiles WGSL source text into a Module. The path is used
// only for diagnostics. Compilation runs the full frontend including IR
// validation, so a returned Module is known-good input for reflection.
func CompileSource(path, source string) (*Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, &Error{Path: path, Diagnostic: err.Error(), err: err}
	}

	mod, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, &Error{Path: path, Diagnostic: err.Error(), err: err}
	}

	validationErrors, err := naga.Validate(mod)
	if err != nil {
		return nil, &Error{Path: path, Diagnostic: err.Error(), err: err}
	}
	if len(validationErrors) > 0 {
		first := validationErrors[0]
		return nil, &Error{Path: path, Diagnostic: first.Error(), err: first}
	}

	return &Module{Path: path, ir: mod}, nil
}
