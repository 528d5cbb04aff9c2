// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/solebot/preventivatore/internal/ui/styles"
)

// HamburgerWidth is the number of cells the hamburger occupies at the left
// of the header, including its trailing space.
const HamburgerWidth = 4

// Header renders the title bar. The hamburger shows ☰ while the sidebar is
// closed and ✕ while it is open, mirroring its expanded state.
func Header(theme *styles.Theme, title string, width int, sidebarOpen bool) string {
	icon := theme.Hamburger.Render(" ☰ ")
	if sidebarOpen {
		icon = theme.HamburgerActive.Render(" ✕ ")
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, icon, " ", theme.HeaderTitle.Render(title))
	return theme.Header.Width(width).Render(bar)
}
