// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// FieldKey identifies a quote form field.
type FieldKey string

const (
	FieldWeight FieldKey = "weight"
	FieldLength FieldKey = "len"
	FieldWidth  FieldKey = "wid"
	FieldHeight FieldKey = "hei"
)

// FormField describes one text input of the quote form.
type FormField struct {
	Key         FieldKey
	Placeholder string
}

// QuoteForm is the inline form embedded in an assistant message.
type QuoteForm struct {
	Fields      []FormField
	SubmitLabel string

	// Closed is set once the form has been submitted; a closed form is
	// rendered read-only and never submits again.
	Closed bool
}

// NewQuoteForm returns the standard four-field quote form.
func NewQuoteForm() *QuoteForm {
	return &QuoteForm{
		Fields: []FormField{
			{Key: FieldWeight, Placeholder: "Peso (kg)"},
			{Key: FieldLength, Placeholder: "Lunghezza (cm)"},
			{Key: FieldWidth, Placeholder: "Larghezza (cm)"},
			{Key: FieldHeight, Placeholder: "Altezza (cm)"},
		},
		SubmitLabel: "Calcola",
	}
}
