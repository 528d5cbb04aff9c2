// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package quote computes shipping quotes from parcel weight and dimensions.
//
// The price is driven by the billable weight, which is the greater of the
// actual weight and the volumetric weight (L*W*H divided by a divisor).
//
// # Key Types
//
//   - Policy: the pricing constants (divisor, base price, included kg, price per kg)
//   - RawInput: the four free-text form fields as typed by the user
//   - Input: the parsed numeric values
//   - Result: actual, volumetric and billable weight plus the final price
//
// # Usage
//
//	in := quote.RawInput{Weight: "2", Length: "50", Width: "40", Height: "30"}.Parse()
//	res := quote.DefaultPolicy().Compute(in)
//	fmt.Println(res.Markup())
//
// Parsing never fails: fields that are empty or not a number count as zero,
// and a comma is accepted as the decimal separator.
package quote
