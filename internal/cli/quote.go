// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solebot/preventivatore/internal/quote"
)

// =============================================================================
// QUOTE COMMAND
// =============================================================================

// quoteJSON is the machine-readable form of a quote. Numbers carry the
// same two decimals the chat shows.
type quoteJSON struct {
	Weight           json.Number `json:"weight_kg"`
	Length           json.Number `json:"length_cm"`
	Width            json.Number `json:"width_cm"`
	Height           json.Number `json:"height_cm"`
	VolumetricWeight json.Number `json:"volumetric_weight_kg"`
	BillableWeight   json.Number `json:"billable_weight_kg"`
	Price            json.Number `json:"price"`
	Currency         string      `json:"currency"`
}

func newQuoteCmd(opts *globalOptions) *cobra.Command {
	var (
		raw    quote.RawInput
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Calculate a shipping quote",
		Long: `Calculate a shipping quote without opening the chat.

Values are read the same way as the chat form: a comma is accepted as the
decimal separator and anything unreadable counts as zero.`,
		Example: `  preventivatore quote --weight 2 --length 50 --width 40 --height 30
  preventivatore quote -w 1,5 -l 30 -W 20 -H 10 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.loadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			res := cfg.Pricing.Policy().Compute(raw.Parse())
			if asJSON {
				return writeQuoteJSON(cmd, res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Markup())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&raw.Weight, "weight", "w", "", "actual weight in kg")
	f.StringVarP(&raw.Length, "length", "l", "", "length in cm")
	f.StringVarP(&raw.Width, "width", "W", "", "width in cm")
	f.StringVarP(&raw.Height, "height", "H", "", "height in cm")
	f.BoolVar(&asJSON, "json", false, "print the quote as JSON")
	return cmd
}

func writeQuoteJSON(cmd *cobra.Command, res quote.Result) error {
	out := quoteJSON{
		Weight:           num(res.Input.Weight),
		Length:           num(res.Input.Length),
		Width:            num(res.Input.Width),
		Height:           num(res.Input.Height),
		VolumetricWeight: num(res.VolumetricWeight),
		BillableWeight:   num(res.BillableWeight),
		Price:            num(res.Price),
		Currency:         res.Currency,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode quote: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func num(x float64) json.Number {
	return json.Number(quote.Format2(x))
}
