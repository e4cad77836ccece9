// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"cmp"
	"slices"
)

// Build assembles validated entry point records into a Pipeline.
//
// It enforces the pipeline-shape invariants:
//   - at most one entry point per stage ([DuplicateStageError])
//   - compute is mutually exclusive with rasterization stages
//     ([IncompatibleStagesError])
//   - no two bindings may share a (set, binding) slot unless they are
//     identical in kind and type ([BindingConflictError]); identical
//     bindings shared across stages merge into one record with combined
//     visibility
//
// Stages and bindings in the result follow the canonical order regardless
// of discovery order, so downstream emission is deterministic.
func Build(name string, entries []EntryPoint, sourcePaths []string) (*Pipeline, error) {
	byStage := make(map[Stage]string, len(entries))
	for _, ep := range entries {
		if prev, dup := byStage[ep.Stage]; dup {
			return nil, &DuplicateStageError{Stage: ep.Stage, First: prev, Second: ep.Name}
		}
		byStage[ep.Stage] = ep.Name
	}

	if compute, ok := byStage[StageCompute]; ok {
		for _, ep := range entries {
			if ep.Stage.IsRaster() {
				return nil, &IncompatibleStagesError{Compute: compute, Raster: ep.Name, Stage: ep.Stage}
			}
		}
	}

	p := &Pipeline{
		Name:        name,
		Stages:      slices.Clone(entries),
		SourcePaths: slices.Clone(sourcePaths),
	}
	slices.SortFunc(p.Stages, func(a, b EntryPoint) int {
		return cmp.Compare(a.Stage, b.Stage)
	})
	for i := range p.Stages {
		p.Stages[i].Bindings = SortBindings(p.Stages[i].Bindings)
	}

	merged, err := mergeBindings(p.Stages)
	if err != nil {
		return nil, err
	}
	p.Bindings = merged
	return p, nil
}

// bindingKey addresses a binding slot. Push constants live outside the
// set/binding scheme, so they never collide with a resource at (0, 0).
type bindingKey struct {
	set, binding uint32
	pushConstant bool
}

// mergeBindings folds per-stage binding lists into one cross-stage list.
// Stages must already be in canonical order so that merge results are
// deterministic.
func mergeBindings(stages []EntryPoint) ([]Binding, error) {
	var out []Binding
	index := make(map[bindingKey]int)

	for _, ep := range stages {
		for _, b := range ep.Bindings {
			b.Visibility = b.Visibility.Add(ep.Stage)
			key := bindingKey{set: b.Set, binding: b.Binding, pushConstant: b.Kind == PushConstant}
			i, seen := index[key]
			if !seen {
				index[key] = len(out)
				out = append(out, b)
				continue
			}
			prev := &out[i]
			if prev.Kind != b.Kind || !EqualTypes(prev.Type, b.Type) {
				return nil, &BindingConflictError{Set: b.Set, Binding: b.Binding, A: prev.Name, B: b.Name}
			}
			prev.Visibility |= b.Visibility
		}
	}

	return SortBindings(out), nil
}

// SortBindings orders bindings ascending by (set, binding), with push
// constants after addressed resources. Sorting is stable so same-slot merge
// survivors keep their discovery identity. It sorts in place and returns
// the slice for convenience.
func SortBindings(bindings []Binding) []Binding {
	slices.SortStableFunc(bindings, func(a, b Binding) int {
		if c := boolCompare(a.Kind == PushConstant, b.Kind == PushConstant); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Set, b.Set); c != 0 {
			return c
		}
		return cmp.Compare(a.Binding, b.Binding)
	})
	return bindings
}

func boolCompare(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}
