// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package model defines the pipeline model: the normalized, validated
// aggregate of shader stages and resource bindings for one graphics or
// compute pipeline.
//
// Values in this package are produced once per generation run from shader
// reflection data, validated by [Build], and then treated as immutable by
// downstream code generators.
package model

import "github.com/cogentcore/webgpu/wgpu"

// Stage identifies a shader pipeline stage.
//
// The declaration order is the canonical emission order: generators emit
// stages sorted by Stage value, never by reflection discovery order.
type Stage uint8

const (
	StageVertex Stage = iota
	StageTessControl
	StageTessEval
	StageGeometry
	StageFragment
	StageCompute
	StageMesh
	StageTask

	stageCount
)

var stageNames = [stageCount]string{
	StageVertex:      "Vertex",
	StageTessControl: "TessControl",
	StageTessEval:    "TessEval",
	StageGeometry:    "Geometry",
	StageFragment:    "Fragment",
	StageCompute:     "Compute",
	StageMesh:        "Mesh",
	StageTask:        "Task",
}

// String returns the canonical stage name (e.g. "Vertex").
func (s Stage) String() string {
	if s < stageCount {
		return stageNames[s]
	}
	return "Unknown"
}

// Valid reports whether s is a member of the closed stage set.
func (s Stage) Valid() bool {
	return s < stageCount
}

// IsCompute reports whether s is the compute stage.
func (s Stage) IsCompute() bool {
	return s == StageCompute
}

// IsRaster reports whether s belongs to the rasterization pipeline family.
// Mesh and Task stages feed the rasterizer and count as raster stages for
// pipeline-shape validation.
func (s Stage) IsRaster() bool {
	return s.Valid() && s != StageCompute
}

// StageMask is a bit set of stages, used to record which stages of a
// pipeline can see a merged resource binding.
type StageMask uint16

// Mask returns the single-stage mask for s.
func (s Stage) Mask() StageMask {
	return 1 << s
}

// Add returns m with stage s included.
func (m StageMask) Add(s Stage) StageMask {
	return m | s.Mask()
}

// Has reports whether stage s is included in m.
func (m StageMask) Has(s Stage) bool {
	return m&s.Mask() != 0
}

// String returns the included stage names joined by "|", or "None".
func (m StageMask) String() string {
	if m == 0 {
		return "None"
	}
	out := ""
	for s := Stage(0); s < stageCount; s++ {
		if !m.Has(s) {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += s.String()
	}
	return out
}

// WGPU converts the mask to the wgpu visibility flags used by bind group
// layout entries. Stages with no wgpu equivalent (tessellation, geometry,
// mesh, task) contribute nothing; callers targeting wgpu never see them
// because WGSL reflection cannot produce those stages.
func (m StageMask) WGPU() wgpu.ShaderStage {
	v := wgpu.ShaderStageNone
	if m.Has(StageVertex) {
		v |= wgpu.ShaderStageVertex
	}
	if m.Has(StageFragment) {
		v |= wgpu.ShaderStageFragment
	}
	if m.Has(StageCompute) {
		v |= wgpu.ShaderStageCompute
	}
	return v
}

// BindingKind classifies a resource binding.
type BindingKind uint8

const (
	UniformBuffer BindingKind = iota
	StorageBuffer
	SampledTexture
	Sampler
	CombinedImageSampler
	PushConstant
	Image

	bindingKindCount
)

var bindingKindNames = [bindingKindCount]string{
	UniformBuffer:        "UniformBuffer",
	StorageBuffer:        "StorageBuffer",
	SampledTexture:       "SampledTexture",
	Sampler:              "Sampler",
	CombinedImageSampler: "CombinedImageSampler",
	PushConstant:         "PushConstant",
	Image:                "Image",
}

// String returns the canonical kind name (e.g. "UniformBuffer").
func (k BindingKind) String() string {
	if k < bindingKindCount {
		return bindingKindNames[k]
	}
	return "Unknown"
}

// Binding describes one resource interface of a shader stage: a named,
// located (set, binding) slot through which the stage accesses a buffer,
// texture, sampler or inline constant block.
type Binding struct {
	// Name is the shader-source variable name.
	Name string

	// Kind classifies the resource.
	Kind BindingKind

	// Set is the descriptor set (bind group) index. Always 0 for push
	// constants, which live outside the set/binding addressing scheme.
	Set uint32

	// Binding is the slot index within Set.
	Binding uint32

	// Type describes the bound value's layout.
	Type TypeDesc

	// Visibility records which stages see this binding. A binding extracted
	// from a single entry point has exactly one stage set; the model builder
	// widens it when merging identical bindings across stages.
	Visibility StageMask
}

// Slot returns the (set, binding) address as a comparable pair.
func (b Binding) Slot() [2]uint32 {
	return [2]uint32{b.Set, b.Binding}
}

// EntryPoint is a named shader function designated as the executable unit
// for one pipeline stage, together with the resource interface it uses.
type EntryPoint struct {
	// Name is the entry function name. Non-empty; unique per stage within
	// a module.
	Name string

	// Stage is the pipeline stage this entry point executes in.
	Stage Stage

	// Workgroup is the compute workgroup size. Zero for non-compute stages.
	Workgroup [3]uint32

	// Bindings lists the resources the entry point uses, in ascending
	// (set, binding) order.
	Bindings []Binding
}

// Pipeline is the validated aggregate of all stages and bindings for one
// pipeline. Built by [Build]; immutable afterwards.
type Pipeline struct {
	// Name is the pipeline name chosen by the caller (e.g. "Main").
	Name string

	// Stages holds at most one entry point per stage, in canonical
	// stage order.
	Stages []EntryPoint

	// Bindings is the merged cross-stage binding list in ascending
	// (set, binding) order, with push constants last. Bindings identical in
	// kind and type that appear in several stages occur once here, with
	// combined visibility.
	Bindings []Binding

	// SourcePaths records the shader files the pipeline was reflected from.
	SourcePaths []string
}

// Stage returns the entry point for stage s, or nil if the pipeline has no
// such stage.
func (p *Pipeline) Stage(s Stage) *EntryPoint {
	for i := range p.Stages {
		if p.Stages[i].Stage == s {
			return &p.Stages[i]
		}
	}
	return nil
}
