// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package reflection

import "fmt"

// UnsupportedStageError reports an entry point whose stage tag falls
// outside the closed stage set. Unknown stages are an error, never
// silently dropped.
type UnsupportedStageError struct {
	// Tag is the toolchain's raw stage tag.
	Tag uint8
	// EntryPoint is the entry point carrying the tag.
	EntryPoint string
}

func (e *UnsupportedStageError) Error() string {
	return fmt.Sprintf("entry point %q: unsupported shader stage tag %d", e.EntryPoint, e.Tag)
}

// MissingLayoutError reports a resource variable with no @group/@binding
// layout. Only push constants may omit layout indices.
type MissingLayoutError struct {
	// Variable is the shader-source variable name.
	Variable string
}

func (e *MissingLayoutError) Error() string {
	return fmt.Sprintf("resource %q has no group/binding layout", e.Variable)
}

// InvalidArrayUsageError reports a runtime-sized array anywhere other than
// the tail of a storage buffer.
type InvalidArrayUsageError struct {
	// Variable is the shader-source variable name of the offending binding.
	Variable string
}

func (e *InvalidArrayUsageError) Error() string {
	return fmt.Sprintf("resource %q: runtime-sized array is only permitted at the end of a storage buffer", e.Variable)
}
