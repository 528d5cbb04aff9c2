// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/solebot/preventivatore/internal/ui/styles"
)

// =============================================================================
// SIDEBAR COMPONENT
// =============================================================================

// SidebarAction is one button of the sidebar.
type SidebarAction struct {
	ID    string
	Label string
}

// DefaultSidebarActions returns the stock sidebar buttons. Every one of
// them opens the quote form.
func DefaultSidebarActions() []SidebarAction {
	return []SidebarAction{
		{ID: "preventivo", Label: "📦 Nuovo preventivo"},
		{ID: "spedizione", Label: "🚚 Spedizione"},
		{ID: "ritiro", Label: "🏠 Ritiro a domicilio"},
	}
}

// sidebarHeaderRows is the number of rows above the first action:
// top padding, title and its margin.
const sidebarHeaderRows = 3

// Sidebar is the slide-in action list.
type Sidebar struct {
	Title    string
	Actions  []SidebarAction
	Width    int
	Disabled bool

	cursor  int
	focused bool
	theme   *styles.Theme
}

// NewSidebar creates a sidebar with the stock actions.
func NewSidebar(theme *styles.Theme, width int) *Sidebar {
	return &Sidebar{
		Title:   "SoleBot",
		Actions: DefaultSidebarActions(),
		Width:   width,
		theme:   theme,
	}
}

// Focus gives keyboard focus to the sidebar.
func (s *Sidebar) Focus() { s.focused = true }

// Blur removes keyboard focus.
func (s *Sidebar) Blur() { s.focused = false }

// Focused reports whether the sidebar has keyboard focus.
func (s *Sidebar) Focused() bool { return s.focused }

// Cursor returns the highlighted action index.
func (s *Sidebar) Cursor() int { return s.cursor }

// MoveUp moves the highlight up, wrapping around.
func (s *Sidebar) MoveUp() {
	if len(s.Actions) == 0 {
		return
	}
	s.cursor = (s.cursor - 1 + len(s.Actions)) % len(s.Actions)
}

// MoveDown moves the highlight down, wrapping around.
func (s *Sidebar) MoveDown() {
	if len(s.Actions) == 0 {
		return
	}
	s.cursor = (s.cursor + 1) % len(s.Actions)
}

// Selected returns the highlighted action.
func (s *Sidebar) Selected() (SidebarAction, bool) {
	if s.cursor < 0 || s.cursor >= len(s.Actions) {
		return SidebarAction{}, false
	}
	return s.Actions[s.cursor], true
}

// ItemAt returns the action index at row y, counted from the sidebar's top
// row, or -1.
func (s *Sidebar) ItemAt(y int) int {
	i := y - sidebarHeaderRows
	if i < 0 || i >= len(s.Actions) {
		return -1
	}
	return i
}

// View renders the sidebar with the given height.
func (s *Sidebar) View(height int) string {
	inner := s.Width - 3 // padding and right border
	if inner < 4 {
		inner = 4
	}

	lines := make([]string, 0, len(s.Actions)+1)
	lines = append(lines, s.theme.SidebarTitle.Render(padRight(s.Title, inner)))
	for i, a := range s.Actions {
		text := padRight(a.Label, inner-2)
		switch {
		case s.Disabled:
			lines = append(lines, s.theme.SidebarItemDisabled.Render(text))
		case s.focused && i == s.cursor:
			lines = append(lines, s.theme.SidebarItemFocused.Render(text))
		default:
			lines = append(lines, s.theme.SidebarItem.Render(text))
		}
	}

	style := s.theme.Sidebar.Width(s.Width - 1)
	if height > 0 {
		style = style.Height(height - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// =============================================================================
// BACKDROP
// =============================================================================

// Backdrop renders the dimmed region covering the chat while the sidebar is
// open. Clicking it closes the sidebar.
func Backdrop(theme *styles.Theme, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	row := strings.Repeat("░", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return theme.Backdrop.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
