// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quote

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// decimalPrefix matches the longest leading decimal literal. Trailing
// garbage ("12kg") is ignored.
var decimalPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseDecimal parses a user-typed decimal number.
//
// Only the first comma is treated as a decimal separator, so "1,5" is 1.5.
// Empty, unparseable or non-finite input yields 0. Negative zero is folded
// to 0.
func ParseDecimal(s string) float64 {
	s = strings.Replace(s, ",", ".", 1)
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	lit := decimalPrefix.FindString(s)
	if lit == "" {
		return 0
	}

	v, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) || v == 0 {
		return 0
	}
	return v
}

// RawInput holds the four quote form fields exactly as typed.
type RawInput struct {
	Weight string // kg
	Length string // cm
	Width  string // cm
	Height string // cm
}

// Parse converts every field with ParseDecimal.
func (r RawInput) Parse() Input {
	return Input{
		Weight: ParseDecimal(r.Weight),
		Length: ParseDecimal(r.Length),
		Width:  ParseDecimal(r.Width),
		Height: ParseDecimal(r.Height),
	}
}

// Input is a parsed quote request.
type Input struct {
	Weight float64 // actual weight, kg
	Length float64 // cm
	Width  float64 // cm
	Height float64 // cm
}
