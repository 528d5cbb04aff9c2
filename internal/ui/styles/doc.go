// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the preventivatore TUI.

All colors use Lip Gloss AdaptiveColor so the same palette works on dark and
light terminals.

# Color System (colors.go)

  - Sun - Brand color, assistant label and focus ring
  - Sky - User bubbles and the send control
  - Rose - The lock banner
  - Emerald - Success states

# Theme System (theme.go)

NewTheme resolves the configured mode ("auto", "dark", "light") against the
terminal and builds every style the chat view needs:

	theme := styles.NewTheme("auto")
	bubble := theme.AssistantBubble.Width(theme.BubbleWidth())

# Animation System (animations.go)

TypingDots drives the placeholder shown while the assistant is "typing".
*/
package styles
