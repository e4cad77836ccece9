// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package golang

import (
	"context"
	"fmt"

	"github.com/gogpu/pipewriter/generator"
	"github.com/gogpu/pipewriter/internal/ident"
	"github.com/gogpu/pipewriter/model"
)

// GoGenerator implements [generator.Generator] for Go code generation.
type GoGenerator struct{}

// NewGenerator creates a new Go generator.
func NewGenerator() *GoGenerator {
	return &GoGenerator{}
}

// Metadata returns information about this generator.
func (g *GoGenerator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           "go",
		Version:        "1.0.0",
		Description:    "Generate Go pipeline types targeting cogentcore/webgpu",
		FileExtensions: []string{".go"},
		URL:            "https://github.com/gogpu/pipewriter",
	}
}

// Generate produces the Go output file from the pipeline model.
func (g *GoGenerator) Generate(_ context.Context, p *model.Pipeline, cfg generator.Config) (*generator.Output, error) {
	internalCfg := Config{
		PackageName:      cfg.PackageName,
		Prefix:           cfg.BindingStructPrefix,
		EmitDocComments:  cfg.EmitDocComments,
		EmitSupportTypes: cfg.Option("support_types", "emit") == "emit",
		Source:           cfg.Source,
	}
	if internalCfg.PackageName == "" {
		internalCfg.PackageName = "pipelines"
	}
	if internalCfg.Prefix == "" {
		internalCfg.Prefix = "Pipeline"
	}

	gen := &codegen{pipeline: p, config: internalCfg}
	src, err := gen.generate()
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s_pipeline.go", ident.SnakeCase(ident.Export(p.Name)))
	return generator.Single(name, src), nil
}
