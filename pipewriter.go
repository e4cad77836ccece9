// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package pipewriter turns WGSL shader source into generated pipeline
// code. It compiles shaders with naga, reflects their entry points and
// resource bindings into a pipeline model, and renders the model through
// a registered generator target.
package pipewriter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/pipewriter/generator"
	"github.com/gogpu/pipewriter/generators/golang"
	jsongen "github.com/gogpu/pipewriter/generators/json"
	"github.com/gogpu/pipewriter/internal/compiler"
	"github.com/gogpu/pipewriter/internal/ident"
	"github.com/gogpu/pipewriter/internal/reflection"
	"github.com/gogpu/pipewriter/model"
)

func init() {
	generator.Register(golang.NewGenerator())
	generator.Register(jsongen.NewGenerator())
}

// Config selects and configures a generation run.
type Config struct {
	generator.Config

	// Target names the registered generator to use. Empty means "go".
	Target string
}

// DefaultConfig returns the default generation configuration.
func DefaultConfig() Config {
	return Config{
		Config: generator.DefaultConfig(),
		Target: "go",
	}
}

// Artifact is one generated output file.
type Artifact struct {
	// Source is the generated file content.
	Source []byte

	// Path is the file name the generator chose (relative, no directory).
	Path string
}

// Generate compiles one shader file and generates pipeline code for it.
// The pipeline name is derived from the file name: "simple.wgsl" becomes
// pipeline "Simple".
func Generate(path string, cfg Config) (*Artifact, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return GenerateFiles(ident.Export(stem), []string{path}, cfg)
}

// GenerateFiles compiles the given shader files, merges their entry points
// into one named pipeline, and generates code for it. Stages may be split
// across files (for example vertex and fragment in separate .wgsl files).
// The first failure short-circuits, wrapped in an [*Error] tagging the
// phase it originated in.
func GenerateFiles(name string, paths []string, cfg Config) (*Artifact, error) {
	if len(paths) == 0 {
		return nil, &Error{Phase: PhaseRead, Err: errors.New("no shader files given")}
	}

	var entries []model.EntryPoint
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, &Error{Phase: PhaseRead, Path: path, Err: err}
		}
		eps, err := extractSource(path, string(source))
		if err != nil {
			return nil, err
		}
		entries = append(entries, eps...)
	}

	return generate(name, entries, paths, cfg)
}

// GenerateSource is GenerateFiles for in-memory shader source, keyed by
// file name for diagnostics. Sources are processed in the given order.
func GenerateSource(name string, sources []NamedSource, cfg Config) (*Artifact, error) {
	if len(sources) == 0 {
		return nil, &Error{Phase: PhaseRead, Err: errors.New("no shader sources given")}
	}

	var entries []model.EntryPoint
	paths := make([]string, 0, len(sources))
	for _, src := range sources {
		paths = append(paths, src.Path)
		eps, err := extractSource(src.Path, src.Source)
		if err != nil {
			return nil, err
		}
		entries = append(entries, eps...)
	}

	return generate(name, entries, paths, cfg)
}

// NamedSource is shader source text with the path it came from.
type NamedSource struct {
	Path   string
	Source string
}

func extractSource(path, source string) ([]model.EntryPoint, error) {
	mod, err := compiler.CompileSource(path, source)
	if err != nil {
		return nil, &Error{Phase: PhaseCompile, Path: path, Err: err}
	}

	entries, err := reflection.Extract(mod)
	if err != nil {
		return nil, &Error{Phase: PhaseExtract, Path: path, Err: err}
	}
	return entries, nil
}

func generate(name string, entries []model.EntryPoint, paths []string, cfg Config) (*Artifact, error) {
	p, err := model.Build(name, entries, paths)
	if err != nil {
		return nil, &Error{Phase: PhaseBuild, Err: err}
	}

	target := cfg.Target
	if target == "" {
		target = "go"
	}
	gen, ok := generator.Get(target)
	if !ok {
		return nil, &Error{Phase: PhaseEmit, Err: fmt.Errorf("unknown generator target %q (registered: %s)",
			target, strings.Join(generator.List(), ", "))}
	}

	gcfg := cfg.Config
	if gcfg.Source == "" {
		gcfg.Source = strings.Join(paths, ", ")
	}

	out, err := gen.Generate(context.Background(), p, gcfg)
	if err != nil {
		return nil, &Error{Phase: PhaseEmit, Err: err}
	}
	if len(out.Files) != 1 {
		return nil, &Error{Phase: PhaseEmit, Err: fmt.Errorf("generator %q produced %d files, want 1",
			target, len(out.Files))}
	}

	for path, source := range out.Files {
		return &Artifact{Source: source, Path: path}, nil
	}
	return nil, nil // unreachable
}
