// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import "fmt"

// DuplicateStageError reports two entry points claiming the same pipeline
// stage.
type DuplicateStageError struct {
	Stage Stage
	// First and Second are the entry point names in discovery order.
	First, Second string
}

func (e *DuplicateStageError) Error() string {
	return fmt.Sprintf("duplicate %s stage: entry points %q and %q", e.Stage, e.First, e.Second)
}

// IncompatibleStagesError reports a pipeline mixing compute with
// rasterization stages.
type IncompatibleStagesError struct {
	Compute string // compute entry point name
	Raster  string // conflicting raster entry point name
	Stage   Stage  // the raster stage involved
}

func (e *IncompatibleStagesError) Error() string {
	return fmt.Sprintf("incompatible stages: compute entry point %q cannot share a pipeline with %s entry point %q",
		e.Compute, e.Stage, e.Raster)
}

// BindingConflictError reports two bindings at the same (set, binding) slot
// that differ in kind or type.
type BindingConflictError struct {
	Set     uint32
	Binding uint32
	// A and B are the conflicting binding names.
	A, B string
}

func (e *BindingConflictError) Error() string {
	return fmt.Sprintf("binding conflict at (set=%d, binding=%d): %q and %q differ in kind or type",
		e.Set, e.Binding, e.A, e.B)
}
