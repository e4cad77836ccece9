// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package golang generates Go source code from a pipeline model, targeting
// the cogentcore/webgpu API.
package golang

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/pipewriter/internal/ident"
	"github.com/gogpu/pipewriter/model"
)

// Config controls code generation behavior.
type Config struct {
	// PackageName is the Go package name for generated code.
	PackageName string

	// Prefix names the generated types: the pipeline type is
	// Prefix+PipelineName, the support types Prefix+"Stage" and
	// Prefix+"Binding".
	Prefix string

	// EmitDocComments annotates generated literals with shader-source
	// names and types.
	EmitDocComments bool

	// EmitSupportTypes controls whether the shared Stage/Binding support
	// structs are included. Disable when several generated files with the
	// same prefix live in one package.
	EmitSupportTypes bool

	// Source describes where the shader came from (for the header comment).
	Source string
}

// codegen renders one pipeline into a single Go source file.
type codegen struct {
	pipeline *model.Pipeline
	config   Config
	buf      bytes.Buffer
}

// generate renders the pipeline and formats the result. A formatting
// failure means the emitter produced invalid Go and is reported as an
// emit error rather than ignored.
func (g *codegen) generate() ([]byte, error) {
	g.header()
	g.supportTypes()
	g.pipelineType()
	g.constructor()
	g.bindGroupLayouts()

	src, err := format.Source(g.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

func (g *codegen) typeName() string {
	return g.config.Prefix + ident.Export(g.pipeline.Name)
}

func (g *codegen) stageType() string {
	return g.config.Prefix + "Stage"
}

func (g *codegen) bindingType() string {
	return g.config.Prefix + "Binding"
}

func (g *codegen) header() {
	g.buf.WriteString("// Code generated by pipewriter. DO NOT EDIT.\n")
	if g.config.Source != "" {
		fmt.Fprintf(&g.buf, "// Source: %s\n", g.config.Source)
	}
	fmt.Fprintf(&g.buf, "\npackage %s\n\n", g.config.PackageName)
	g.buf.WriteString("import \"github.com/cogentcore/webgpu/wgpu\"\n\n")
}

func (g *codegen) supportTypes() {
	if !g.config.EmitSupportTypes {
		return
	}

	fmt.Fprintf(&g.buf, "// %s describes one shader stage of a generated pipeline.\n", g.stageType())
	fmt.Fprintf(&g.buf, "type %s struct {\n", g.stageType())
	g.buf.WriteString("\tStage string\n")
	g.buf.WriteString("\tEntryPoint string\n")
	g.buf.WriteString("\tWorkgroup [3]uint32\n")
	g.buf.WriteString("}\n\n")

	fmt.Fprintf(&g.buf, "// %s describes one resource binding of a generated pipeline.\n", g.bindingType())
	fmt.Fprintf(&g.buf, "type %s struct {\n", g.bindingType())
	g.buf.WriteString("\tName string\n")
	g.buf.WriteString("\tKind string\n")
	g.buf.WriteString("\tSet uint32\n")
	g.buf.WriteString("\tBinding uint32\n")
	g.buf.WriteString("\tSize uint32\n")
	g.buf.WriteString("\tVisibility wgpu.ShaderStage\n")
	g.buf.WriteString("}\n\n")
}

func (g *codegen) pipelineType() {
	name := g.typeName()
	fmt.Fprintf(&g.buf, "// %s is the %s pipeline", name, g.pipeline.Name)
	if len(g.pipeline.SourcePaths) > 0 {
		fmt.Fprintf(&g.buf, " reflected from %s", strings.Join(g.pipeline.SourcePaths, ", "))
	}
	g.buf.WriteString(".\n")
	fmt.Fprintf(&g.buf, "type %s struct {\n", name)
	fmt.Fprintf(&g.buf, "\tStages []%s\n", g.stageType())
	fmt.Fprintf(&g.buf, "\tBindings []%s\n", g.bindingType())
	g.buf.WriteString("}\n\n")
}

func (g *codegen) constructor() {
	name := g.typeName()
	fmt.Fprintf(&g.buf, "// New%s returns the %s pipeline's reflected metadata.\n", name, g.pipeline.Name)
	fmt.Fprintf(&g.buf, "func New%s() *%s {\n", name, name)
	fmt.Fprintf(&g.buf, "\treturn &%s{\n", name)

	fmt.Fprintf(&g.buf, "\t\tStages: []%s{\n", g.stageType())
	for _, ep := range g.pipeline.Stages {
		if g.config.EmitDocComments {
			fmt.Fprintf(&g.buf, "\t\t\t// %s entry point %q\n", ep.Stage, ep.Name)
		}
		fmt.Fprintf(&g.buf, "\t\t\t{Stage: %q, EntryPoint: %q", ep.Stage, ep.Name)
		if ep.Workgroup != [3]uint32{} {
			fmt.Fprintf(&g.buf, ", Workgroup: [3]uint32{%d, %d, %d}",
				ep.Workgroup[0], ep.Workgroup[1], ep.Workgroup[2])
		}
		g.buf.WriteString("},\n")
	}
	g.buf.WriteString("\t\t},\n")

	fmt.Fprintf(&g.buf, "\t\tBindings: []%s{\n", g.bindingType())
	for _, b := range g.pipeline.Bindings {
		if g.config.EmitDocComments {
			fmt.Fprintf(&g.buf, "\t\t\t// %s: %s\n", b.Name, b.Type)
		}
		fmt.Fprintf(&g.buf, "\t\t\t{Name: %q, Kind: %q, Set: %d, Binding: %d", b.Name, b.Kind, b.Set, b.Binding)
		if size, ok := model.Size(b.Type); ok {
			fmt.Fprintf(&g.buf, ", Size: %d", size)
		}
		fmt.Fprintf(&g.buf, ", Visibility: %s},\n", visibilityExpr(b.Visibility))
	}
	g.buf.WriteString("\t\t},\n")

	g.buf.WriteString("\t}\n}\n\n")
}

// bindGroupLayouts emits a method building wgpu bind group layout entries
// grouped by descriptor set. Push constants live outside the set/binding
// scheme and are excluded.
func (g *codegen) bindGroupLayouts() {
	name := g.typeName()
	fmt.Fprintf(&g.buf, "// BindGroupLayoutEntries returns the pipeline's bind group layout\n")
	fmt.Fprintf(&g.buf, "// entries grouped by descriptor set index.\n")
	fmt.Fprintf(&g.buf, "func (p *%s) BindGroupLayoutEntries() [][]wgpu.BindGroupLayoutEntry {\n", name)

	sets := groupBySet(g.pipeline.Bindings)
	if len(sets) == 0 {
		g.buf.WriteString("\treturn nil\n}\n")
		return
	}

	g.buf.WriteString("\treturn [][]wgpu.BindGroupLayoutEntry{\n")
	for set, bindings := range sets {
		fmt.Fprintf(&g.buf, "\t\t%d: {\n", set)
		for _, b := range bindings {
			if g.config.EmitDocComments {
				fmt.Fprintf(&g.buf, "\t\t\t// %s: %s\n", b.Name, b.Type)
			}
			fmt.Fprintf(&g.buf, "\t\t\t%s,\n", layoutEntryExpr(b))
		}
		g.buf.WriteString("\t\t},\n")
	}
	g.buf.WriteString("\t}\n}\n")
}

// groupBySet buckets addressed bindings by set index. The result is dense:
// sets with no bindings get an empty bucket so set indices stay positional.
func groupBySet(bindings []model.Binding) [][]model.Binding {
	maxSet := -1
	for _, b := range bindings {
		if b.Kind == model.PushConstant {
			continue
		}
		if int(b.Set) > maxSet {
			maxSet = int(b.Set)
		}
	}
	if maxSet < 0 {
		return nil
	}

	sets := make([][]model.Binding, maxSet+1)
	for _, b := range bindings {
		if b.Kind == model.PushConstant {
			continue
		}
		sets[b.Set] = append(sets[b.Set], b)
	}
	return sets
}

// visibilityExpr renders a stage mask as an expression over wgpu stage
// constants. The model mask is first narrowed to the stages wgpu knows.
func visibilityExpr(m model.StageMask) string {
	v := m.WGPU()
	var parts []string
	if v&wgpu.ShaderStageVertex != 0 {
		parts = append(parts, "wgpu.ShaderStageVertex")
	}
	if v&wgpu.ShaderStageFragment != 0 {
		parts = append(parts, "wgpu.ShaderStageFragment")
	}
	if v&wgpu.ShaderStageCompute != 0 {
		parts = append(parts, "wgpu.ShaderStageCompute")
	}
	if len(parts) == 0 {
		return "wgpu.ShaderStageNone"
	}
	return strings.Join(parts, "|")
}

// layoutEntryExpr renders one binding as a wgpu.BindGroupLayoutEntry
// composite literal.
func layoutEntryExpr(b model.Binding) string {
	var layout string
	switch b.Kind {
	case model.UniformBuffer:
		layout = bufferLayoutExpr("wgpu.BufferBindingTypeUniform", b.Type)
	case model.StorageBuffer:
		layout = bufferLayoutExpr("wgpu.BufferBindingTypeStorage", b.Type)
	case model.Sampler:
		layout = samplerLayoutExpr(b.Type)
	case model.SampledTexture, model.CombinedImageSampler:
		// WGSL has no combined image samplers; if one arrives from another
		// frontend it binds as a texture, with the sampler supplied
		// separately as wgpu requires.
		layout = textureLayoutExpr(b.Type)
	case model.Image:
		layout = storageTextureLayoutExpr(b.Type)
	}

	expr := fmt.Sprintf("{Binding: %d, Visibility: %s", b.Binding, visibilityExpr(b.Visibility))
	if layout != "" {
		expr += ", " + layout
	}
	return expr + "}"
}

func bufferLayoutExpr(bindingType string, t model.TypeDesc) string {
	expr := "Buffer: wgpu.BufferBindingLayout{Type: " + bindingType
	if size, ok := model.Size(t); ok {
		expr += fmt.Sprintf(", MinBindingSize: %d", size)
	}
	return expr + "}"
}

func samplerLayoutExpr(t model.TypeDesc) string {
	samplerType := "wgpu.SamplerBindingTypeFiltering"
	if s, ok := t.(model.SamplerType); ok && s.Comparison {
		samplerType = "wgpu.SamplerBindingTypeComparison"
	}
	return "Sampler: wgpu.SamplerBindingLayout{Type: " + samplerType + "}"
}

func textureLayoutExpr(t model.TypeDesc) string {
	tex, _ := t.(model.TextureType)

	sampleType := "wgpu.TextureSampleTypeFloat"
	if tex.Class == model.TextureDepth {
		sampleType = "wgpu.TextureSampleTypeDepth"
	}

	expr := "Texture: wgpu.TextureBindingLayout{SampleType: " + sampleType +
		", ViewDimension: " + viewDimensionExpr(tex)
	if tex.Multisampled {
		expr += ", Multisampled: true"
	}
	return expr + "}"
}

func storageTextureLayoutExpr(t model.TypeDesc) string {
	tex, _ := t.(model.TextureType)
	// The reflection data carries no texel format; the caller patches the
	// format before creating the layout.
	return "StorageTexture: wgpu.StorageTextureBindingLayout{Access: wgpu.StorageTextureAccessWriteOnly" +
		", Format: wgpu.TextureFormatUndefined" +
		", ViewDimension: " + viewDimensionExpr(tex) + "}"
}

func viewDimensionExpr(tex model.TextureType) string {
	switch tex.Dim {
	case model.Dim1D:
		return "wgpu.TextureViewDimension1D"
	case model.Dim3D:
		return "wgpu.TextureViewDimension3D"
	case model.DimCube:
		if tex.Arrayed {
			return "wgpu.TextureViewDimensionCubeArray"
		}
		return "wgpu.TextureViewDimensionCube"
	default:
		if tex.Arrayed {
			return "wgpu.TextureViewDimension2DArray"
		}
		return "wgpu.TextureViewDimension2D"
	}
}
