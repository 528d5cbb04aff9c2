// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// ==========================================================================
// UTILITY FUNCTIONS
// ==========================================================================

// wordWrap wraps text to fit within width display cells.
// Words wider than width are hard-broken.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for lineIdx, line := range strings.Split(text, "\n") {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		current := ""
		for _, word := range strings.Fields(line) {
			for runewidth.StringWidth(word) > width {
				if current != "" {
					result.WriteString(current + "\n")
					current = ""
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					// a single rune wider than width
					head = string([]rune(word)[:1])
				}
				result.WriteString(head + "\n")
				word = word[len(head):]
			}
			switch {
			case current == "":
				current = word
			case runewidth.StringWidth(current)+1+runewidth.StringWidth(word) <= width:
				current += " " + word
			default:
				result.WriteString(current + "\n")
				current = word
			}
		}
		result.WriteString(current)
	}

	return result.String()
}

// maxLineWidth returns the display width of the longest line.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runewidth.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// padRight pads s with spaces to width display cells, truncating if longer.
func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}
