// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package pipewriter

import "fmt"

// Phase identifies the pipeline generation stage an error originated in,
// so callers can tell toolchain failures from model-logic failures.
type Phase uint8

const (
	// PhaseRead covers reading shader source from disk.
	PhaseRead Phase = iota

	// PhaseCompile covers the shader frontend (parse, lower, validate).
	PhaseCompile

	// PhaseReflect covers obtaining the reflection handle from a compiled
	// module.
	PhaseReflect

	// PhaseExtract covers normalizing reflection data into entry-point
	// records.
	PhaseExtract

	// PhaseBuild covers assembling and validating the pipeline model.
	PhaseBuild

	// PhaseEmit covers code generation and formatting.
	PhaseEmit
)

var phaseNames = [...]string{
	PhaseRead:    "read",
	PhaseCompile: "compile",
	PhaseReflect: "reflect",
	PhaseExtract: "extract",
	PhaseBuild:   "build",
	PhaseEmit:    "emit",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", p)
}

// Error wraps a failure with the phase it originated in. Path is the shader
// source file being processed when the failure occurred, if any.
type Error struct {
	Phase Phase
	Path  string
	Err   error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Phase, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
