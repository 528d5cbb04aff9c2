// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/solebot/preventivatore/internal/ui/components"
)

// Title is shown in the header bar.
const Title = "SoleBot · Preventivatore"

// =============================================================================
// LAYOUT
// =============================================================================

// layout holds the row count of each horizontal band, top to bottom.
type layout struct {
	header   int
	log      int
	banner   int
	composer int
	status   int
}

func (m *Model) layout() layout {
	l := layout{header: 1, status: 1}
	if m.surface.banner != nil {
		l.banner = lipgloss.Height(m.banner.View(m.width))
	}
	l.composer = m.composer.Rows() + m.theme.Composer.GetVerticalFrameSize()
	l.log = m.height - l.header - l.banner - l.composer - l.status
	if l.log < 1 {
		l.log = 1
	}
	return l
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Caricamento..."
	}

	l := m.layout()
	header := components.Header(m.theme, Title, m.width, m.surface.sidebarOpen)
	status := components.StatusBar(m.theme, m.width, m.keys.ShortHelp(m.surface.sidebarOpen, m.widget.IsLocked())...)

	var body string
	if m.surface.sidebarOpen {
		body = m.renderSidebar(m.height - l.header - l.status)
	} else {
		parts := []string{m.viewport.View()}
		if m.surface.banner != nil {
			parts = append(parts, m.banner.View(m.width))
		}
		parts = append(parts, m.composer.View())
		body = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

// renderSidebar draws the sidebar over the body with the backdrop beside it.
func (m Model) renderSidebar(height int) string {
	sb := m.sidebar.View(height)
	backdrop := components.Backdrop(m.theme, m.width-lipgloss.Width(sb), height)
	return lipgloss.JoinHorizontal(lipgloss.Top, sb, backdrop)
}
