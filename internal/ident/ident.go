// SPDX-License-Identifier: MIT
//
// Copyright 2026 The gogpu Authors. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package ident sanitizes shader-source names into valid Go identifiers.
//
// The mapping is one-directional (model to text): it only needs to be
// injective enough that distinct source names rarely collide, never to
// round-trip back to source names.
package ident

import (
	"strings"
	"unicode"
)

// goKeywords are reserved words that may not be used as identifiers.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true,
	"continue": true, "default": true, "defer": true, "else": true,
	"fallthrough": true, "for": true, "func": true, "go": true,
	"goto": true, "if": true, "import": true, "interface": true,
	"map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true,
	"var": true,
}

// Sanitize returns name as a valid Go identifier: invalid characters are
// replaced with underscores, a leading digit is prefixed with "X", and
// reserved words get a trailing underscore. Empty input yields "X".
func Sanitize(name string) string {
	if name == "" {
		return "X"
	}

	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	out := b.String()

	if r := rune(out[0]); unicode.IsDigit(r) {
		out = "X" + out
	}
	if goKeywords[out] {
		out += "_"
	}
	return out
}

// Export returns name sanitized and with its first letter uppercased, for
// use as an exported Go identifier. Names starting with an underscore are
// prefixed with "X" instead, since capitalizing an underscore is a no-op.
func Export(name string) string {
	out := Sanitize(name)
	if out[0] == '_' {
		return "X" + out
	}
	runes := []rune(out)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// SnakeCase converts a CamelCase name to snake_case for output filenames.
// Fully uppercase names (like "HDR") are lowered as a single word.
func SnakeCase(name string) string {
	allUpper := true
	for _, r := range name {
		if !unicode.IsUpper(r) && unicode.IsLetter(r) {
			allUpper = false
			break
		}
	}
	if allUpper {
		return strings.ToLower(name)
	}

	var result strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
