// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat surface.
type KeyMap struct {
	Send          key.Binding
	Newline       key.Binding
	NextFocus     key.Binding
	PrevFocus     key.Binding
	ToggleSidebar key.Binding
	CloseSidebar  key.Binding
	Reset         key.Binding
	Up            key.Binding
	Down          key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "invia"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("A-Enter/C-j", "a capo"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "campo successivo"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "campo precedente"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "menu"),
		),
		CloseSidebar: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "chiudi menu"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "reset"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "su"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "giù"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scorri su"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scorri giù"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "esci"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the status bar for the given
// surface state.
func (k KeyMap) ShortHelp(sidebarOpen, locked bool) []key.Binding {
	switch {
	case sidebarOpen:
		return []key.Binding{k.Send, k.CloseSidebar, k.Up, k.Down, k.Quit}
	case locked:
		return []key.Binding{k.Reset, k.ToggleSidebar, k.PageUp, k.Quit}
	default:
		return []key.Binding{k.Send, k.Newline, k.ToggleSidebar, k.NextFocus, k.PageUp, k.Quit}
	}
}
