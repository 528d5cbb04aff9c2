// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quote

import "math"

// ============================================================================
// PRICING POLICY
// ============================================================================

// Default pricing constants. They have no documented unit rationale and are
// reproduced literally.
const (
	DefaultVolumetricDivisor = 5000.0
	DefaultBasePrice         = 10.0
	DefaultIncludedWeight    = 1.0
	DefaultPricePerKg        = 1.2
	DefaultCurrency          = "€"
)

// Policy holds the constants used to turn a parcel into a price.
type Policy struct {
	// VolumetricDivisor converts cm³ into volumetric kg.
	VolumetricDivisor float64
	// BasePrice is charged for every parcel and covers IncludedWeight.
	BasePrice float64
	// IncludedWeight is the billable weight covered by BasePrice.
	IncludedWeight float64
	// PricePerKg is charged for each billable kg above IncludedWeight.
	PricePerKg float64
	// Currency is the symbol printed before the total.
	Currency string
}

// DefaultPolicy returns the stock pricing policy.
func DefaultPolicy() Policy {
	return Policy{
		VolumetricDivisor: DefaultVolumetricDivisor,
		BasePrice:         DefaultBasePrice,
		IncludedWeight:    DefaultIncludedWeight,
		PricePerKg:        DefaultPricePerKg,
		Currency:          DefaultCurrency,
	}
}

// ============================================================================
// COMPUTATION
// ============================================================================

// Result is a computed quote. Values keep full precision; rounding happens
// only when formatting.
type Result struct {
	Input            Input
	ActualWeight     float64
	VolumetricWeight float64
	BillableWeight   float64
	Price            float64
	Currency         string
}

// VolumetricWeight returns L*W*H divided by the policy divisor.
func (p Policy) VolumetricWeight(length, width, height float64) float64 {
	return (length * width * height) / p.VolumetricDivisor
}

// Compute prices a parcel:
//
//	volumetric = L*W*H / divisor
//	billable   = max(actual, volumetric)
//	price      = base + max(0, billable - included) * perKg
func (p Policy) Compute(in Input) Result {
	vol := p.VolumetricWeight(in.Length, in.Width, in.Height)
	billable := math.Max(in.Weight, vol)
	price := p.BasePrice + math.Max(0, billable-p.IncludedWeight)*p.PricePerKg

	return Result{
		Input:            in,
		ActualWeight:     in.Weight,
		VolumetricWeight: vol,
		BillableWeight:   billable,
		Price:            price,
		Currency:         p.Currency,
	}
}
