// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/solebot/preventivatore/internal/ui/styles"
)

// StatusBar renders the shortcut hints for the given bindings, dropping
// hints from the end until the line fits width.
func StatusBar(theme *styles.Theme, width int, bindings ...key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, theme.ShortcutKey.Render(h.Key)+" "+theme.ShortcutDesc.Render(h.Desc))
	}

	sep := theme.ShortcutDesc.Render(" • ")
	line := strings.Join(hints, sep)
	for len(hints) > 1 && lipgloss.Width(line) > width-2 {
		hints = hints[:len(hints)-1]
		line = strings.Join(hints, sep)
	}
	return theme.StatusBar.Width(width).Render(line)
}
