// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"fmt"
	"strings"
)

// TypeDesc describes the layout of a bound value as a recursive tagged
// tree. Reflection data is acyclic by construction, so child nodes are
// owned directly.
type TypeDesc interface {
	typeDesc()

	// String returns a compact, shader-flavored rendering of the type,
	// used in diagnostics and generated doc comments.
	String() string
}

// ScalarKind classifies scalar leaf types.
type ScalarKind uint8

const (
	ScalarSint ScalarKind = iota
	ScalarUint
	ScalarFloat
	ScalarBool
)

// String returns the WGSL-style scalar prefix ("i", "u", "f", "bool").
func (k ScalarKind) String() string {
	switch k {
	case ScalarSint:
		return "i"
	case ScalarUint:
		return "u"
	case ScalarFloat:
		return "f"
	case ScalarBool:
		return "bool"
	}
	return "?"
}

// ScalarType is a scalar leaf.
type ScalarType struct {
	Kind  ScalarKind
	Width uint8 // in bytes
}

func (ScalarType) typeDesc() {}

func (t ScalarType) String() string {
	if t.Kind == ScalarBool {
		return "bool"
	}
	return fmt.Sprintf("%s%d", t.Kind, uint32(t.Width)*8)
}

// VectorType is a fixed-size vector of scalars.
type VectorType struct {
	Size   uint8 // 2, 3 or 4
	Scalar ScalarType
}

func (VectorType) typeDesc() {}

func (t VectorType) String() string {
	return fmt.Sprintf("vec%d<%s>", t.Size, t.Scalar)
}

// MatrixType is a column-major matrix of scalars.
type MatrixType struct {
	Cols   uint8
	Rows   uint8
	Scalar ScalarType
}

func (MatrixType) typeDesc() {}

func (t MatrixType) String() string {
	return fmt.Sprintf("mat%dx%d<%s>", t.Cols, t.Rows, t.Scalar)
}

// ArrayType is a homogeneous array. Runtime-sized arrays (Runtime true,
// Count 0) are legal only as the trailing field of a storage buffer.
type ArrayType struct {
	Element TypeDesc
	Count   uint32
	Runtime bool
}

func (ArrayType) typeDesc() {}

func (t ArrayType) String() string {
	if t.Runtime {
		return fmt.Sprintf("array<%s>", t.Element)
	}
	return fmt.Sprintf("array<%s, %d>", t.Element, t.Count)
}

// Field is one member of a StructType. Field order carries memory-layout
// meaning and is never reordered.
type Field struct {
	Name   string
	Type   TypeDesc
	Offset uint32
}

// StructType is a struct-of-fields composite.
type StructType struct {
	// Name is the shader-source struct name; may be empty for anonymous
	// blocks.
	Name   string
	Fields []Field
	// Span is the struct size in bytes including trailing padding, as
	// reported by reflection. Zero when the reflection data carries no
	// span (e.g. structs ending in a runtime-sized array).
	Span uint32
}

func (StructType) typeDesc() {}

func (t StructType) String() string {
	if t.Name != "" {
		return t.Name
	}
	var b strings.Builder
	b.WriteString("struct{")
	for i, f := range t.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", f.Name, f.Type)
	}
	b.WriteString("}")
	return b.String()
}

// SamplerType is a sampler handle leaf.
type SamplerType struct {
	Comparison bool
}

func (SamplerType) typeDesc() {}

func (t SamplerType) String() string {
	if t.Comparison {
		return "sampler_comparison"
	}
	return "sampler"
}

// TextureDim is the dimensionality of a texture.
type TextureDim uint8

const (
	Dim1D TextureDim = iota
	Dim2D
	Dim3D
	DimCube
)

// String returns the WGSL dimension suffix ("1d", "2d", "3d", "cube").
func (d TextureDim) String() string {
	switch d {
	case Dim1D:
		return "1d"
	case Dim2D:
		return "2d"
	case Dim3D:
		return "3d"
	case DimCube:
		return "cube"
	}
	return "?"
}

// TextureClass distinguishes how a texture is accessed.
type TextureClass uint8

const (
	TextureSampled TextureClass = iota
	TextureDepth
	TextureStorage
)

// TextureType is a texture handle leaf.
type TextureType struct {
	Dim          TextureDim
	Class        TextureClass
	Arrayed      bool
	Multisampled bool
}

func (TextureType) typeDesc() {}

func (t TextureType) String() string {
	var b strings.Builder
	b.WriteString("texture")
	if t.Multisampled {
		b.WriteString("_multisampled")
	}
	switch t.Class {
	case TextureDepth:
		b.WriteString("_depth")
	case TextureStorage:
		b.WriteString("_storage")
	}
	b.WriteString("_")
	b.WriteString(t.Dim.String())
	if t.Arrayed {
		b.WriteString("_array")
	}
	return b.String()
}

// Size returns the byte size of t where the layout defines one: scalars,
// vectors, matrices, fixed arrays of sized elements and structs with a
// known span. It returns 0, false for runtime-sized arrays, spanless
// structs and handle types (samplers, textures), which occupy no buffer
// memory.
func Size(t TypeDesc) (uint32, bool) {
	switch t := t.(type) {
	case ScalarType:
		return uint32(t.Width), true
	case VectorType:
		return uint32(t.Size) * uint32(t.Scalar.Width), true
	case MatrixType:
		return uint32(t.Cols) * uint32(t.Rows) * uint32(t.Scalar.Width), true
	case ArrayType:
		if t.Runtime {
			return 0, false
		}
		n, ok := Size(t.Element)
		if !ok {
			return 0, false
		}
		return n * t.Count, true
	case StructType:
		if t.Span == 0 {
			return 0, false
		}
		return t.Span, true
	}
	return 0, false
}

// EqualTypes reports whether two type descriptors describe the same layout.
// Struct names are ignored: two structs with identical fields at identical
// offsets are the same layout even if reflected under different names.
func EqualTypes(a, b TypeDesc) bool {
	switch a := a.(type) {
	case ScalarType:
		b, ok := b.(ScalarType)
		return ok && a == b
	case VectorType:
		b, ok := b.(VectorType)
		return ok && a == b
	case MatrixType:
		b, ok := b.(MatrixType)
		return ok && a == b
	case SamplerType:
		b, ok := b.(SamplerType)
		return ok && a == b
	case TextureType:
		b, ok := b.(TextureType)
		return ok && a == b
	case ArrayType:
		other, ok := b.(ArrayType)
		if !ok || a.Count != other.Count || a.Runtime != other.Runtime {
			return false
		}
		return EqualTypes(a.Element, other.Element)
	case StructType:
		other, ok := b.(StructType)
		if !ok || len(a.Fields) != len(other.Fields) || a.Span != other.Span {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != other.Fields[i].Name ||
				a.Fields[i].Offset != other.Fields[i].Offset ||
				!EqualTypes(a.Fields[i].Type, other.Fields[i].Type) {
				return false
			}
		}
		return true
	}
	return false
}
