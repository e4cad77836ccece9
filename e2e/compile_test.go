// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

//go:build e2e

// Package e2e provides end-to-end compile verification tests.
// These tests verify that generated code is valid and compilable.
//
// Run with: go test -tags e2e ./e2e/... -v
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

const testShader = `
var<push_constant> transform: mat4x4<f32>;

@group(0) @binding(0) var albedo: texture_2d<f32>;
@group(0) @binding(1) var albedoSampler: sampler;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vsMain(@location(0) position: vec3<f32>, @location(1) uv: vec2<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = transform * vec4<f32>(position, 1.0);
    out.uv = uv;
    return out;
}

@fragment
fn fsMain(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    return textureSample(albedo, albedoSampler, uv);
}
`

// TestGoOutputCompiles verifies that generated Go code compiles and passes
// vet inside a fresh module that depends on cogentcore/webgpu.
func TestGoOutputCompiles(t *testing.T) {
	requireTool(t, "go")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	moduleRoot, err := findModuleRoot()
	if err != nil {
		t.Fatalf("find module root: %v", err)
	}

	tmpDir := t.TempDir()

	binaryPath := filepath.Join(tmpDir, "pipewriter")
	if err := buildBinary(ctx, moduleRoot, binaryPath); err != nil {
		t.Fatalf("build binary: %v", err)
	}

	shaderPath := filepath.Join(tmpDir, "sprite.wgsl")
	if err := os.WriteFile(shaderPath, []byte(testShader), 0o644); err != nil {
		t.Fatalf("write shader: %v", err)
	}

	goModDir := filepath.Join(tmpDir, "gotest")
	if err := os.MkdirAll(goModDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	goModContent := `module pipelinetest

go 1.25
`
	if err := os.WriteFile(filepath.Join(goModDir, "go.mod"), []byte(goModContent), 0o644); err != nil {
		t.Fatalf("write go.mod: %v", err)
	}

	outputFile := filepath.Join(goModDir, "sprite_pipeline.go")
	cmd := exec.CommandContext(ctx, binaryPath,
		"-p", "pipelinetest",
		"-o", outputFile,
		shaderPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("pipewriter: %v\n%s", err, stderr.String())
	}

	// Pull in the wgpu dependency the generated code imports.
	t.Run("go_mod_tidy", func(t *testing.T) {
		cmd := exec.CommandContext(ctx, "go", "mod", "tidy")
		cmd.Dir = goModDir
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			t.Fatalf("go mod tidy failed: %v\n%s", err, stderr.String())
		}
	})

	t.Run("go_build", func(t *testing.T) {
		start := time.Now()
		cmd := exec.CommandContext(ctx, "go", "build", "./...")
		cmd.Dir = goModDir
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			t.Fatalf("go build failed: %v\n%s", err, stderr.String())
		}
		t.Logf("go build: %v", time.Since(start))
	})

	t.Run("go_vet", func(t *testing.T) {
		start := time.Now()
		cmd := exec.CommandContext(ctx, "go", "vet", "./...")
		cmd.Dir = goModDir
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			t.Fatalf("go vet failed: %v\n%s", err, stderr.String())
		}
		t.Logf("go vet: %v", time.Since(start))
	})
}

// TestJSONOutputValid verifies that the json target produces parseable
// output with the expected top-level shape.
func TestJSONOutputValid(t *testing.T) {
	requireTool(t, "go")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	moduleRoot, err := findModuleRoot()
	if err != nil {
		t.Fatalf("find module root: %v", err)
	}

	tmpDir := t.TempDir()

	binaryPath := filepath.Join(tmpDir, "pipewriter")
	if err := buildBinary(ctx, moduleRoot, binaryPath); err != nil {
		t.Fatalf("build binary: %v", err)
	}

	shaderPath := filepath.Join(tmpDir, "sprite.wgsl")
	if err := os.WriteFile(shaderPath, []byte(testShader), 0o644); err != nil {
		t.Fatalf("write shader: %v", err)
	}

	jsonPath := filepath.Join(tmpDir, "sprite.pipeline.json")
	cmd := exec.CommandContext(ctx, binaryPath,
		"-target", "json",
		"-o", jsonPath,
		shaderPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("pipewriter: %v\n%s", err, stderr.String())
	}

	content, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}

	var doc struct {
		Pipeline string            `json:"pipeline"`
		Stages   []json.RawMessage `json:"stages"`
		Bindings []json.RawMessage `json:"bindings"`
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("generated JSON does not parse: %v", err)
	}
	if doc.Pipeline != "Sprite" {
		t.Errorf("pipeline = %q, want Sprite", doc.Pipeline)
	}
	if len(doc.Stages) != 2 {
		t.Errorf("stages = %d, want 2", len(doc.Stages))
	}
	if len(doc.Bindings) != 3 {
		t.Errorf("bindings = %d, want 3", len(doc.Bindings))
	}
}

// requireTool fails the test if the tool is not available.
func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Fatalf("%s not found in PATH", name)
	}
}

// buildBinary builds the pipewriter CLI.
func buildBinary(ctx context.Context, moduleRoot, outputPath string) error {
	cmd := exec.CommandContext(ctx, "go", "build",
		"-o", outputPath,
		"./cmd/pipewriter",
	)
	cmd.Dir = moduleRoot
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build: %w: %s", err, stderr.String())
	}
	return nil
}

// findModuleRoot finds the root of the Go module by looking for go.mod.
func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}
