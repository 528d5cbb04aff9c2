// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quote

import (
	"math"
	"math/big"
	"strings"
)

// FormatFixed renders x with exactly digits decimals.
//
// Halfway cases are decided on the exact binary value and round away from
// zero, so 0.125 becomes "0.13" (fmt's %.2f would print "0.12").
func FormatFixed(x float64, digits int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "0." + strings.Repeat("0", digits)
	}
	if digits < 0 {
		digits = 0
	}

	neg := x < 0
	r := new(big.Rat).SetFloat64(math.Abs(x))
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))

	// n = floor(r); bump when the remainder is at least one half.
	n, rem := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if rem.Lsh(rem, 1).Cmp(r.Denom()) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	s := n.String()
	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat("0", digits-len(s)+1) + s
		}
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// Format2 is FormatFixed with two decimals, the precision every quote
// figure is shown with.
func Format2(x float64) string {
	return FormatFixed(x, 2)
}

// Markup renders the quote as the assistant message body.
func (r Result) Markup() string {
	currency := r.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	var b strings.Builder
	b.WriteString("Preventivo:\n\n")
	b.WriteString("- Peso reale: " + Format2(r.ActualWeight) + " kg\n")
	b.WriteString("- Peso volumetrico: " + Format2(r.VolumetricWeight) + " kg\n")
	b.WriteString("- Peso tassabile: " + Format2(r.BillableWeight) + " kg\n\n")
	b.WriteString("➡️ Totale stimato: " + currency + " " + Format2(r.Price))
	return b.String()
}
