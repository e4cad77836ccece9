// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package json serializes a pipeline model as a JSON document, for build
// tooling and non-Go consumers.
package json

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gogpu/pipewriter/generator"
	"github.com/gogpu/pipewriter/internal/ident"
	"github.com/gogpu/pipewriter/model"
)

// Generator implements [generator.Generator] for JSON output.
type Generator struct{}

// NewGenerator creates a new JSON generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           "json",
		Version:        "1.0.0",
		Description:    "Serialize reflected pipeline metadata as JSON",
		FileExtensions: []string{".json"},
		URL:            "https://github.com/gogpu/pipewriter",
	}
}

// document is the serialized pipeline. Field order here is the field order
// in the output.
type document struct {
	Pipeline string    `json:"pipeline"`
	Sources  []string  `json:"sources,omitempty"`
	Stages   []stage   `json:"stages"`
	Bindings []binding `json:"bindings"`
}

type stage struct {
	Stage      string     `json:"stage"`
	EntryPoint string     `json:"entryPoint"`
	Workgroup  *[3]uint32 `json:"workgroup,omitempty"`
}

type binding struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Set        uint32   `json:"set"`
	Binding    uint32   `json:"binding"`
	Type       string   `json:"type"`
	Size       *uint32  `json:"size,omitempty"`
	Visibility []string `json:"visibility"`
}

// Generate produces one JSON file describing the pipeline.
func (g *Generator) Generate(ctx context.Context, p *model.Pipeline, cfg generator.Config) (*generator.Output, error) {
	doc := document{
		Pipeline: p.Name,
		Sources:  p.SourcePaths,
		Stages:   make([]stage, 0, len(p.Stages)),
		Bindings: make([]binding, 0, len(p.Bindings)),
	}

	for _, ep := range p.Stages {
		s := stage{Stage: ep.Stage.String(), EntryPoint: ep.Name}
		if ep.Workgroup != [3]uint32{} {
			wg := ep.Workgroup
			s.Workgroup = &wg
		}
		doc.Stages = append(doc.Stages, s)
	}

	for _, b := range p.Bindings {
		entry := binding{
			Name:       b.Name,
			Kind:       b.Kind.String(),
			Set:        b.Set,
			Binding:    b.Binding,
			Type:       b.Type.String(),
			Visibility: stageNames(b.Visibility),
		}
		if size, ok := model.Size(b.Type); ok {
			entry.Size = &size
		}
		doc.Bindings = append(doc.Bindings, entry)
	}

	// WGSL type strings carry < and >; keep them readable instead of
	// HTML-escaped.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshal pipeline %q: %w", p.Name, err)
	}
	data := buf.Bytes()

	filename := fmt.Sprintf("%s.pipeline.json", ident.SnakeCase(ident.Export(p.Name)))
	return generator.Single(filename, data), nil
}

// stageNames expands a stage mask into the stage names it covers, in
// canonical stage order.
func stageNames(m model.StageMask) []string {
	var names []string
	for s := model.StageVertex; s.Valid(); s++ {
		if m.Has(s) {
			names = append(names, s.String())
		}
	}
	return names
}
