// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command pipewriter generates pipeline code from WGSL shaders.
//
// Usage:
//
//	pipewriter [flags] shader.wgsl [shader2.wgsl ...]
//
// Flags:
//
//	-o          Output directory or file (default: stdout)
//	-p          Package name for generated code (default: pipelines)
//	-name       Pipeline name (default: derived from the first shader file)
//	-prefix     Generated type name prefix (default: Pipeline)
//	-target     Generator target: go, json (default: go)
//	-doc        Emit doc comments on generated literals (default: true)
//	--dry-run   Print to stdout without writing files
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/pipewriter"
	"github.com/gogpu/pipewriter/generator"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	showVersion := flag.Bool("version", false, "Show version information")
	showHelp := flag.Bool("help", false, "Show help")

	output := flag.String("o", "", "Output directory or file (default: stdout)")
	packageName := flag.String("p", "pipelines", "Package name for generated code")
	name := flag.String("name", "", "Pipeline name (default: derived from the first shader file)")
	prefix := flag.String("prefix", "Pipeline", "Generated type name prefix")
	target := flag.String("target", "go", "Generator target")
	doc := flag.Bool("doc", true, "Emit doc comments on generated literals")
	supportTypes := flag.Bool("support-types", true, "Emit shared support types (disable when several pipelines with the same prefix share a package)")
	dryRun := flag.Bool("dry-run", false, "Print to stdout without writing files")
	verbose := flag.Bool("verbose", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `pipewriter - WGSL Pipeline Code Generator

Compile WGSL shaders, reflect their entry points and resource bindings,
and generate pipeline code for the cogentcore/webgpu API.

Usage:
  pipewriter [flags] shader.wgsl [shader2.wgsl ...]

Stages may be split across files: pass the vertex and fragment shaders
as separate arguments and they are merged into one pipeline.

Flags:
  -o string        Output directory or file (default: stdout)
  -p string        Package name for generated code (default: pipelines)
  -name string     Pipeline name (default: derived from the first shader file)
  -prefix string   Generated type name prefix (default: Pipeline)
  -target string   Generator target: %s (default: go)
  -doc             Emit doc comments on generated literals (default: true)
  -support-types   Emit shared support types (default: true)
  --dry-run        Print to stdout without writing files
  --verbose        Verbose output
  --version        Show version information
  --help           Show this help

Examples:
  # Generate pipeline code to stdout
  pipewriter shader.wgsl

  # Generate into a package directory
  pipewriter -o ./pipelines/ shader.wgsl

  # Vertex and fragment stages in separate files
  pipewriter -name Simple -o ./pipelines/ simple.vert.wgsl simple.frag.wgsl

  # Emit pipeline metadata as JSON
  pipewriter -target json -o ./build/ shader.wgsl

`, strings.Join(generator.List(), ", "))
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		return nil
	}

	if *showVersion {
		fmt.Printf("pipewriter %s (commit: %s, built: %s)\n", version, commit, date)
		return nil
	}

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		return fmt.Errorf("no shader files given")
	}

	cfg := pipewriter.DefaultConfig()
	cfg.Target = *target
	cfg.PackageName = *packageName
	cfg.BindingStructPrefix = *prefix
	cfg.EmitDocComments = *doc
	if !*supportTypes {
		cfg.Options = map[string]string{"support_types": "omit"}
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s\n", strings.Join(paths, ", "))
	}

	var artifact *pipewriter.Artifact
	var err error
	if *name != "" {
		artifact, err = pipewriter.GenerateFiles(*name, paths, cfg)
	} else if len(paths) == 1 {
		artifact, err = pipewriter.Generate(paths[0], cfg)
	} else {
		return fmt.Errorf("-name is required when passing multiple shader files")
	}
	if err != nil {
		return err
	}

	if *dryRun || *output == "" {
		fmt.Println(string(artifact.Source))
		return nil
	}

	outputPath := *output
	if strings.HasSuffix(outputPath, "/") || isDir(outputPath) {
		if err := os.MkdirAll(outputPath, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		outputPath = filepath.Join(outputPath, artifact.Path)
	} else if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, artifact.Source, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outputPath)
	}

	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
