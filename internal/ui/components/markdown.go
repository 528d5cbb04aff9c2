// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// Markdown renders assistant markup with glamour. Renderers are cached per
// wrap width; a renderer that fails to build falls back to plain text.
type Markdown struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdown creates a renderer using glamour's "dark" or "light" style.
func NewMarkdown(dark bool) *Markdown {
	style := "light"
	if dark {
		style = "dark"
	}
	return &Markdown{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

// NewAutoMarkdown creates a renderer that asks the terminal for its
// background. Only for line mode: the query would race the TUI's input reader.
func NewAutoMarkdown() *Markdown {
	return &Markdown{style: "auto", renderers: make(map[int]*glamour.TermRenderer)}
}

func (m *Markdown) renderer(width int) *glamour.TermRenderer {
	if r, ok := m.renderers[width]; ok {
		return r
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if m.style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(m.style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		r = nil
	}
	m.renderers[width] = r
	return r
}

// Render renders content wrapped at width cells. Returns the content
// word-wrapped as plain text if rendering fails.
func (m *Markdown) Render(content string, width int) string {
	if width < 10 {
		width = 10
	}
	if m == nil {
		return wordWrap(content, width)
	}

	r := m.renderer(width)
	if r == nil {
		return wordWrap(content, width)
	}
	out, err := r.Render(content)
	if err != nil {
		return wordWrap(content, width)
	}
	return strings.Trim(out, "\n")
}
