// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package reflection walks a compiled module's reflection data and
// normalizes it into model entry point records.
//
// Everything is copied out of the compiler's IR into plain model values;
// nothing extracted here retains a reference into the compiled module.
package reflection

import (
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/pipewriter/internal/compiler"
	"github.com/gogpu/pipewriter/model"
)

// Extract recovers the entry points and their resource interfaces from a
// compiled module. Entry points keep module declaration order; each entry
// point's bindings are sorted ascending by (set, binding).
func Extract(mod *compiler.Module) ([]model.EntryPoint, error) {
	refl := mod.Reflection()
	entries := make([]model.EntryPoint, 0, len(refl.EntryPoints))

	for _, ep := range refl.EntryPoints {
		stage, ok := mapStage(ep.Stage)
		if !ok {
			return nil, &UnsupportedStageError{Tag: uint8(ep.Stage), EntryPoint: ep.Name}
		}

		bindings, err := entryBindings(refl, ep, stage)
		if err != nil {
			return nil, err
		}

		entry := model.EntryPoint{
			Name:     ep.Name,
			Stage:    stage,
			Bindings: bindings,
		}
		if stage == model.StageCompute {
			entry.Workgroup = ep.Workgroup
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// mapStage converts the toolchain stage tag to the closed model stage set.
func mapStage(s ir.ShaderStage) (model.Stage, bool) {
	switch s {
	case ir.StageVertex:
		return model.StageVertex, true
	case ir.StageFragment:
		return model.StageFragment, true
	case ir.StageCompute:
		return model.StageCompute, true
	}
	return 0, false
}

// entryBindings classifies every resource global the entry point can reach
// into a model binding.
func entryBindings(refl *ir.Module, ep ir.EntryPoint, stage model.Stage) ([]model.Binding, error) {
	var bindings []model.Binding
	for _, gv := range usedGlobals(refl, ep.Function) {
		b, isResource, err := classifyGlobal(refl, gv)
		if err != nil {
			return nil, err
		}
		if !isResource {
			continue
		}
		b.Visibility = stage.Mask()
		bindings = append(bindings, b)
	}
	return model.SortBindings(bindings), nil
}

// classifyGlobal turns a module-scope variable into a binding record.
// Non-resource address spaces (private, workgroup, function) report
// isResource false.
func classifyGlobal(refl *ir.Module, gv ir.GlobalVariable) (b model.Binding, isResource bool, err error) {
	var kind model.BindingKind
	switch gv.Space {
	case ir.SpaceUniform:
		kind = model.UniformBuffer
	case ir.SpaceStorage:
		kind = model.StorageBuffer
	case ir.SpacePushConstant:
		kind = model.PushConstant
	case ir.SpaceHandle:
		switch inner := refl.Types[gv.Type].Inner.(type) {
		case ir.SamplerType:
			kind = model.Sampler
		case ir.ImageType:
			if inner.Class == ir.ImageClassStorage {
				kind = model.Image
			} else {
				kind = model.SampledTexture
			}
		default:
			return b, false, nil
		}
	default:
		return b, false, nil
	}

	b = model.Binding{Name: gv.Name, Kind: kind, Type: buildType(refl, gv.Type)}

	switch {
	case gv.Binding != nil:
		b.Set = gv.Binding.Group
		b.Binding = gv.Binding.Binding
	case kind == model.PushConstant:
		// Push constants live outside the set/binding scheme; (0, 0) by
		// convention.
	default:
		return b, false, &MissingLayoutError{Variable: gv.Name}
	}

	if !runtimeArraysValid(b.Type, kind == model.StorageBuffer) {
		return b, false, &InvalidArrayUsageError{Variable: gv.Name}
	}

	return b, true, nil
}

// buildType copies the IR type tree rooted at h into an owned model
// descriptor. Reflection layouts are acyclic, so plain recursion suffices.
func buildType(refl *ir.Module, h ir.TypeHandle) model.TypeDesc {
	t := refl.Types[h]
	switch inner := t.Inner.(type) {
	case ir.ScalarType:
		return scalarType(inner)
	case ir.VectorType:
		return model.VectorType{Size: uint8(inner.Size), Scalar: scalarType(inner.Scalar)}
	case ir.MatrixType:
		return model.MatrixType{
			Cols:   uint8(inner.Columns),
			Rows:   uint8(inner.Rows),
			Scalar: scalarType(inner.Scalar),
		}
	case ir.ArrayType:
		arr := model.ArrayType{Element: buildType(refl, inner.Base)}
		if inner.Size.Constant != nil {
			arr.Count = *inner.Size.Constant
		} else {
			arr.Runtime = true
		}
		return arr
	case ir.StructType:
		st := model.StructType{Name: t.Name, Span: inner.Span}
		for _, m := range inner.Members {
			st.Fields = append(st.Fields, model.Field{
				Name:   m.Name,
				Type:   buildType(refl, m.Type),
				Offset: m.Offset,
			})
		}
		return st
	case ir.SamplerType:
		return model.SamplerType{Comparison: inner.Comparison}
	case ir.ImageType:
		return model.TextureType{
			Dim:          textureDim(inner.Dim),
			Class:        textureClass(inner.Class),
			Arrayed:      inner.Arrayed,
			Multisampled: inner.Multisampled,
		}
	case ir.AtomicType:
		return scalarType(inner.Scalar)
	case ir.PointerType:
		return buildType(refl, inner.Base)
	}
	// Remaining inner kinds never appear as resource types.
	return model.StructType{Name: t.Name}
}

func scalarType(s ir.ScalarType) model.ScalarType {
	var kind model.ScalarKind
	switch s.Kind {
	case ir.ScalarSint:
		kind = model.ScalarSint
	case ir.ScalarUint:
		kind = model.ScalarUint
	case ir.ScalarFloat:
		kind = model.ScalarFloat
	case ir.ScalarBool:
		kind = model.ScalarBool
	}
	return model.ScalarType{Kind: kind, Width: s.Width}
}

func textureDim(d ir.ImageDimension) model.TextureDim {
	switch d {
	case ir.Dim1D:
		return model.Dim1D
	case ir.Dim3D:
		return model.Dim3D
	case ir.DimCube:
		return model.DimCube
	default:
		return model.Dim2D
	}
}

func textureClass(c ir.ImageClass) model.TextureClass {
	switch c {
	case ir.ImageClassDepth:
		return model.TextureDepth
	case ir.ImageClassStorage:
		return model.TextureStorage
	default:
		return model.TextureSampled
	}
}

// runtimeArraysValid walks t and reports whether every runtime-sized array
// sits at a legal position: the root of a storage buffer, or the trailing
// field of its root struct.
func runtimeArraysValid(t model.TypeDesc, tailOK bool) bool {
	switch t := t.(type) {
	case model.ArrayType:
		if t.Runtime && !tailOK {
			return false
		}
		return runtimeArraysValid(t.Element, false)
	case model.StructType:
		for i, f := range t.Fields {
			fieldTailOK := tailOK && i == len(t.Fields)-1
			if !runtimeArraysValid(f.Type, fieldTailOK) {
				return false
			}
		}
	}
	return true
}

// usedGlobals collects the module-scope variables an entry point's call
// graph references, in module declaration order.
func usedGlobals(refl *ir.Module, entry ir.FunctionHandle) []ir.GlobalVariable {
	used := make(map[ir.GlobalVariableHandle]bool)
	visited := make(map[ir.FunctionHandle]bool)
	collectGlobals(refl, entry, used, visited)

	var out []ir.GlobalVariable
	for i, gv := range refl.GlobalVariables {
		if used[ir.GlobalVariableHandle(i)] {
			out = append(out, gv)
		}
	}
	return out
}

// collectGlobals records the globals referenced by fn's expressions and
// recurses through called functions. This mirrors the transitive dependency
// walk a descriptor-set planner needs: a helper function touching a texture
// makes that texture part of the calling entry point's interface.
func collectGlobals(refl *ir.Module, fn ir.FunctionHandle, used map[ir.GlobalVariableHandle]bool, visited map[ir.FunctionHandle]bool) {
	if visited[fn] || int(fn) >= len(refl.Functions) {
		return
	}
	visited[fn] = true

	f := refl.Functions[fn]
	for _, expr := range f.Expressions {
		if g, ok := expr.Kind.(ir.ExprGlobalVariable); ok {
			used[g.Variable] = true
		}
	}
	for _, callee := range calledFunctions(f.Body) {
		collectGlobals(refl, callee, used, visited)
	}
}

// calledFunctions finds every StmtCall target in a statement tree.
func calledFunctions(block ir.Block) []ir.FunctionHandle {
	var out []ir.FunctionHandle
	for _, stmt := range block {
		switch s := stmt.Kind.(type) {
		case ir.StmtCall:
			out = append(out, s.Function)
		case ir.StmtBlock:
			out = append(out, calledFunctions(s.Block)...)
		case ir.StmtIf:
			out = append(out, calledFunctions(s.Accept)...)
			out = append(out, calledFunctions(s.Reject)...)
		case ir.StmtSwitch:
			for _, c := range s.Cases {
				out = append(out, calledFunctions(c.Body)...)
			}
		case ir.StmtLoop:
			out = append(out, calledFunctions(s.Body)...)
			out = append(out, calledFunctions(s.Continuing)...)
		}
	}
	return out
}
