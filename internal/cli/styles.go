// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/solebot/preventivatore/internal/ui/styles"
)

// =============================================================================
// CLI OUTPUT STYLES
// =============================================================================

var (
	// labelStyle marks the speaker of a line in line mode
	labelStyle = lipgloss.NewStyle().
			Foreground(styles.Sun).
			Bold(true)

	// promptStyle is the REPL prompt
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Sky).
			Bold(true)

	// bannerStyle is the lock notice shown in line mode
	bannerStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// dimStyle is used for hints
	dimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// errorStyle is used for errors printed by the REPL
	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)
)
