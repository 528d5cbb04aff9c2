// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/solebot/preventivatore/internal/ui/styles"
)

// =============================================================================
// LOCK BANNER
// =============================================================================

// LockBanner is the persistent notice shown above the composer while locked.
type LockBanner struct {
	Note       string
	ResetLabel string
	Focused    bool

	theme *styles.Theme
}

// NewLockBanner creates a banner.
func NewLockBanner(theme *styles.Theme, note, resetLabel string) *LockBanner {
	return &LockBanner{Note: note, ResetLabel: resetLabel, theme: theme}
}

// View renders the banner across width cells. The reset button sits to the
// right of the note, or below it when the line is too narrow.
func (b *LockBanner) View(width int) string {
	note := b.theme.BannerNote.Render(b.Note)

	btnStyle := b.theme.BannerButton
	if b.Focused {
		btnStyle = b.theme.BannerButtonFocused
	}
	button := btnStyle.Render(b.ResetLabel)

	inner := width - b.theme.Banner.GetHorizontalFrameSize()
	var body string
	if lipgloss.Width(note)+2+lipgloss.Width(button) <= inner {
		body = lipgloss.JoinHorizontal(lipgloss.Center, note, "  ", button)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, note, button)
	}
	return b.theme.Banner.Width(width - b.theme.Banner.GetHorizontalBorderSize()).Render(body)
}
