// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.

package reflection

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/naga/ir"

	"github.com/gogpu/pipewriter/internal/compiler"
	"github.com/gogpu/pipewriter/model"
)

// Type arena layout shared by the test modules.
const (
	tyF32 = ir.TypeHandle(iota)
	tyMat4
	tyCamera
	tyTexture2D
	tySampler
	tyRuntimeF32
	tyParticles
	tyBadUniform
)

// buildModule assembles a hand-written IR module; tests drive the extractor
// with it instead of running the WGSL frontend.
func buildModule() *ir.Module {
	f32 := ir.ScalarType{Kind: ir.ScalarFloat, Width: 4}

	types := []ir.Type{
		tyF32:        {Inner: f32},
		tyMat4:       {Inner: ir.MatrixType{Columns: ir.Vec4, Rows: ir.Vec4, Scalar: f32}},
		tyCamera:     {Name: "Camera", Inner: ir.StructType{Members: []ir.StructMember{{Name: "mvp", Type: tyMat4}}, Span: 64}},
		tyTexture2D:  {Inner: ir.ImageType{Dim: ir.Dim2D, Class: ir.ImageClassSampled}},
		tySampler:    {Inner: ir.SamplerType{}},
		tyRuntimeF32: {Inner: ir.ArrayType{Base: tyF32, Size: ir.ArraySize{}}}, // nil Constant = runtime-sized
		tyParticles: {Name: "Particles", Inner: ir.StructType{Members: []ir.StructMember{
			{Name: "count", Type: tyF32},
			{Name: "data", Type: tyRuntimeF32, Offset: 4},
		}}},
		tyBadUniform: {Name: "Bad", Inner: ir.StructType{Members: []ir.StructMember{
			{Name: "data", Type: tyRuntimeF32},
			{Name: "count", Type: tyF32},
		}}},
	}

	globalExpr := func(h ir.GlobalVariableHandle) ir.Expression {
		return ir.Expression{Kind: ir.ExprGlobalVariable{Variable: h}}
	}

	return &ir.Module{
		Types: types,
		GlobalVariables: []ir.GlobalVariable{
			0: {Name: "camera", Space: ir.SpaceUniform, Binding: &ir.ResourceBinding{Group: 0, Binding: 0}, Type: tyCamera},
			1: {Name: "tex", Space: ir.SpaceHandle, Binding: &ir.ResourceBinding{Group: 0, Binding: 1}, Type: tyTexture2D},
			2: {Name: "samp", Space: ir.SpaceHandle, Binding: &ir.ResourceBinding{Group: 0, Binding: 2}, Type: tySampler},
			3: {Name: "scratch", Space: ir.SpacePrivate, Type: tyF32},
		},
		Functions: []ir.Function{
			// 0: vertex main, touches camera directly.
			{Name: "vsMain", Expressions: []ir.Expression{globalExpr(0)}},
			// 1: fragment main, touches tex/samp only through sampleColor.
			{Name: "fsMain", Body: []ir.Statement{
				{Kind: ir.StmtIf{Accept: ir.Block{
					{Kind: ir.StmtCall{Function: 2}},
				}}},
			}},
			// 2: helper.
			{Name: "sampleColor", Expressions: []ir.Expression{globalExpr(1), globalExpr(2), globalExpr(3)}},
		},
		EntryPoints: []ir.EntryPoint{
			{Name: "fsMain", Stage: ir.StageFragment, Function: 1},
			{Name: "vsMain", Stage: ir.StageVertex, Function: 0},
		},
	}
}

func extract(t *testing.T, m *ir.Module) []model.EntryPoint {
	t.Helper()
	entries, err := Extract(compiler.NewModule("test.wgsl", m))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	return entries
}

func TestExtractEntryPoints(t *testing.T) {
	entries := extract(t, buildModule())

	if len(entries) != 2 {
		t.Fatalf("got %d entry points, want 2", len(entries))
	}
	// Module declaration order is preserved; canonical ordering is the
	// model builder's job.
	if entries[0].Name != "fsMain" || entries[0].Stage != model.StageFragment {
		t.Errorf("entries[0] = %q/%s, want fsMain/Fragment", entries[0].Name, entries[0].Stage)
	}
	if entries[1].Name != "vsMain" || entries[1].Stage != model.StageVertex {
		t.Errorf("entries[1] = %q/%s, want vsMain/Vertex", entries[1].Name, entries[1].Stage)
	}
}

func TestExtractVertexBindings(t *testing.T) {
	entries := extract(t, buildModule())

	vs := entries[1]
	want := []model.Binding{{
		Name: "camera",
		Kind: model.UniformBuffer,
		Type: model.StructType{
			Name:   "Camera",
			Fields: []model.Field{{Name: "mvp", Type: model.MatrixType{Cols: 4, Rows: 4, Scalar: model.ScalarType{Kind: model.ScalarFloat, Width: 4}}}},
			Span:   64,
		},
		Visibility: model.StageVertex.Mask(),
	}}
	if diff := cmp.Diff(want, vs.Bindings); diff != "" {
		t.Errorf("vertex bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractTransitiveGlobals(t *testing.T) {
	entries := extract(t, buildModule())

	// fsMain reaches tex and samp only through the sampleColor helper; the
	// private scratch variable is not a resource and must not appear.
	fs := entries[0]
	var names []string
	for _, b := range fs.Bindings {
		names = append(names, b.Name)
	}
	want := []string{"tex", "samp"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("fragment binding names mismatch (-want +got):\n%s", diff)
	}
	if fs.Bindings[0].Kind != model.SampledTexture {
		t.Errorf("tex kind = %s, want SampledTexture", fs.Bindings[0].Kind)
	}
	if fs.Bindings[1].Kind != model.Sampler {
		t.Errorf("samp kind = %s, want Sampler", fs.Bindings[1].Kind)
	}
}

func TestExtractUnsupportedStage(t *testing.T) {
	m := buildModule()
	m.EntryPoints = append(m.EntryPoints, ir.EntryPoint{Name: "weird", Stage: ir.ShaderStage(9), Function: 0})

	_, err := Extract(compiler.NewModule("test.wgsl", m))
	var unsupported *UnsupportedStageError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Extract() error = %v, want UnsupportedStageError", err)
	}
	if unsupported.Tag != 9 || unsupported.EntryPoint != "weird" {
		t.Errorf("UnsupportedStageError = %+v", unsupported)
	}
}

func TestExtractMissingLayout(t *testing.T) {
	m := buildModule()
	m.GlobalVariables[0].Binding = nil // camera loses its @group/@binding

	_, err := Extract(compiler.NewModule("test.wgsl", m))
	var missing *MissingLayoutError
	if !errors.As(err, &missing) {
		t.Fatalf("Extract() error = %v, want MissingLayoutError", err)
	}
	if missing.Variable != "camera" {
		t.Errorf("Variable = %q, want %q", missing.Variable, "camera")
	}
}

func TestExtractPushConstantWithoutLayout(t *testing.T) {
	m := buildModule()
	m.GlobalVariables[0] = ir.GlobalVariable{Name: "pc", Space: ir.SpacePushConstant, Type: tyMat4}

	entries := extract(t, m)
	vs := entries[1]
	if len(vs.Bindings) != 1 {
		t.Fatalf("got %d bindings, want 1", len(vs.Bindings))
	}
	b := vs.Bindings[0]
	if b.Kind != model.PushConstant || b.Set != 0 || b.Binding != 0 {
		t.Errorf("push constant = %+v, want PushConstant at (0, 0)", b)
	}
}

func TestExtractComputeWorkgroup(t *testing.T) {
	m := buildModule()
	m.EntryPoints = []ir.EntryPoint{
		{Name: "csMain", Stage: ir.StageCompute, Function: 0, Workgroup: [3]uint32{8, 8, 1}},
	}

	entries := extract(t, m)
	if entries[0].Workgroup != [3]uint32{8, 8, 1} {
		t.Errorf("Workgroup = %v, want [8 8 1]", entries[0].Workgroup)
	}
}

func TestExtractRuntimeArray(t *testing.T) {
	t.Run("trailing in storage buffer", func(t *testing.T) {
		m := buildModule()
		m.GlobalVariables[0] = ir.GlobalVariable{
			Name:    "particles",
			Space:   ir.SpaceStorage,
			Binding: &ir.ResourceBinding{Group: 0, Binding: 0},
			Type:    tyParticles,
		}

		entries := extract(t, m)
		b := entries[1].Bindings[0]
		if b.Kind != model.StorageBuffer {
			t.Fatalf("kind = %s, want StorageBuffer", b.Kind)
		}
		st, ok := b.Type.(model.StructType)
		if !ok {
			t.Fatalf("type = %T, want StructType", b.Type)
		}
		tail, ok := st.Fields[len(st.Fields)-1].Type.(model.ArrayType)
		if !ok || !tail.Runtime {
			t.Fatalf("trailing field = %+v, want runtime array", st.Fields[len(st.Fields)-1].Type)
		}
	})

	t.Run("non-trailing rejected", func(t *testing.T) {
		m := buildModule()
		m.GlobalVariables[0] = ir.GlobalVariable{
			Name:    "bad",
			Space:   ir.SpaceStorage,
			Binding: &ir.ResourceBinding{Group: 0, Binding: 0},
			Type:    tyBadUniform,
		}

		_, err := Extract(compiler.NewModule("test.wgsl", m))
		var invalid *InvalidArrayUsageError
		if !errors.As(err, &invalid) {
			t.Fatalf("Extract() error = %v, want InvalidArrayUsageError", err)
		}
		if invalid.Variable != "bad" {
			t.Errorf("Variable = %q, want %q", invalid.Variable, "bad")
		}
	})

	t.Run("rejected in uniform buffer", func(t *testing.T) {
		m := buildModule()
		m.GlobalVariables[0] = ir.GlobalVariable{
			Name:    "particles",
			Space:   ir.SpaceUniform,
			Binding: &ir.ResourceBinding{Group: 0, Binding: 0},
			Type:    tyParticles,
		}

		_, err := Extract(compiler.NewModule("test.wgsl", m))
		var invalid *InvalidArrayUsageError
		if !errors.As(err, &invalid) {
			t.Fatalf("Extract() error = %v, want InvalidArrayUsageError", err)
		}
	})
}
