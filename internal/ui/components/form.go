// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solebot/preventivatore/internal/model"
	"github.com/solebot/preventivatore/internal/quote"
	"github.com/solebot/preventivatore/internal/ui/styles"
)

// =============================================================================
// QUOTE FORM INPUT
// =============================================================================

// fieldWidth is the visible width of each form input.
const fieldWidth = 14

// QuoteFormInput holds the editable state of one inline quote form.
// The focus index runs over the fields and then the submit button.
type QuoteFormInput struct {
	form   *model.QuoteForm
	inputs []textinput.Model
	focus  int
	active bool
	theme  *styles.Theme
}

// NewQuoteFormInput creates inputs for form.
func NewQuoteFormInput(form *model.QuoteForm, theme *styles.Theme) *QuoteFormInput {
	if form == nil {
		form = model.NewQuoteForm()
	}
	inputs := make([]textinput.Model, len(form.Fields))
	for i, f := range form.Fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.Prompt = ""
		ti.CharLimit = 16
		ti.Width = fieldWidth
		ti.PlaceholderStyle = theme.Placeholder
		inputs[i] = ti
	}
	return &QuoteFormInput{form: form, inputs: inputs, theme: theme}
}

// Closed reports whether the form has been submitted.
func (f *QuoteFormInput) Closed() bool {
	return f.form.Closed
}

// Focused reports whether the form holds keyboard focus.
func (f *QuoteFormInput) Focused() bool {
	return f.active
}

// OnSubmit reports whether the submit button is the focused element.
func (f *QuoteFormInput) OnSubmit() bool {
	return f.active && f.focus == len(f.inputs)
}

// Focus gives keyboard focus to the first field.
func (f *QuoteFormInput) Focus() tea.Cmd {
	if f.Closed() {
		return nil
	}
	f.active = true
	return f.setFocus(0)
}

// Blur removes keyboard focus.
func (f *QuoteFormInput) Blur() {
	f.active = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// Next moves focus forward. It reports false when focus leaves the form.
func (f *QuoteFormInput) Next() (tea.Cmd, bool) {
	if f.focus >= len(f.inputs) {
		f.Blur()
		return nil, false
	}
	return f.setFocus(f.focus + 1), true
}

// Prev moves focus backward. It reports false when focus leaves the form.
func (f *QuoteFormInput) Prev() (tea.Cmd, bool) {
	if f.focus <= 0 {
		f.Blur()
		return nil, false
	}
	return f.setFocus(f.focus - 1), true
}

// FocusLast gives focus to the submit button.
func (f *QuoteFormInput) FocusLast() tea.Cmd {
	if f.Closed() {
		return nil
	}
	f.active = true
	return f.setFocus(len(f.inputs))
}

// FocusField gives focus to the field at index i, or the button for i == len(fields).
func (f *QuoteFormInput) FocusField(i int) tea.Cmd {
	if f.Closed() || i < 0 || i > len(f.inputs) {
		return nil
	}
	f.active = true
	return f.setFocus(i)
}

func (f *QuoteFormInput) setFocus(i int) tea.Cmd {
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// Update forwards a message to the focused field.
func (f *QuoteFormInput) Update(msg tea.Msg) tea.Cmd {
	if !f.active || f.Closed() || f.focus >= len(f.inputs) {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// SetValue sets the raw text of field key.
func (f *QuoteFormInput) SetValue(key model.FieldKey, value string) {
	for i, field := range f.form.Fields {
		if field.Key == key {
			f.inputs[i].SetValue(value)
		}
	}
}

// Values returns the raw field text.
func (f *QuoteFormInput) Values() quote.RawInput {
	var raw quote.RawInput
	for i, field := range f.form.Fields {
		v := f.inputs[i].Value()
		switch field.Key {
		case model.FieldWeight:
			raw.Weight = v
		case model.FieldLength:
			raw.Length = v
		case model.FieldWidth:
			raw.Width = v
		case model.FieldHeight:
			raw.Height = v
		}
	}
	return raw
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the form within width cells. Fields sit on one row when
// they fit and wrap otherwise.
func (f *QuoteFormInput) View(width int) string {
	cells := make([]string, 0, len(f.inputs))
	for i := range f.inputs {
		cells = append(cells, f.renderField(i))
	}

	rows := flowRow(cells, width)
	return lipgloss.JoinVertical(lipgloss.Left, rows, f.renderButton())
}

func (f *QuoteFormInput) renderField(i int) string {
	if f.Closed() {
		v := f.inputs[i].Value()
		if v == "" {
			v = "-"
		}
		return f.theme.FormField.Foreground(styles.TextMuted).Render(f.form.Fields[i].Placeholder + ": " + v)
	}

	style := f.theme.FormField
	if f.active && f.focus == i {
		style = f.theme.FormFieldFocused
	}
	return style.Width(fieldWidth + 2).Render(f.inputs[i].View())
}

func (f *QuoteFormInput) renderButton() string {
	label := f.form.SubmitLabel
	switch {
	case f.Closed():
		return f.theme.FormButtonDisabled.Render(label)
	case f.OnSubmit():
		return f.theme.FormButtonFocused.Render("▶ " + label)
	default:
		return f.theme.FormButton.Render(label)
	}
}

// flowRow lays out blocks left to right, starting a new row when the
// next block would exceed width.
func flowRow(blocks []string, width int) string {
	var rows []string
	var current []string
	used := 0
	for _, b := range blocks {
		w := lipgloss.Width(b)
		if len(current) > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current, used = nil, 0
		}
		current = append(current, b)
		used += w
	}
	if len(current) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
	}
	return strings.Join(rows, "\n")
}
