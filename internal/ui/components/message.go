// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/solebot/preventivatore/internal/model"
	"github.com/solebot/preventivatore/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one message of the chat log.
type MessageBubble struct {
	Message *model.Message
	Width   int

	// TypingFrame is the current frame of the typing animation.
	TypingFrame string
	// FormView is the rendered inline form, if the message carries one.
	FormView string

	theme    *styles.Theme
	markdown *Markdown
}

// NewMessageBubble creates a bubble for msg.
func NewMessageBubble(msg *model.Message, theme *styles.Theme, md *Markdown) *MessageBubble {
	if msg == nil {
		msg = &model.Message{Role: model.RoleAssistant}
	}
	return &MessageBubble{
		Message:     msg,
		Width:       80,
		TypingFrame: styles.TypingDots.Frames[0],
		theme:       theme,
		markdown:    md,
	}
}

// View renders the message bubble
func (b *MessageBubble) View() string {
	if b.Message.Role == model.RoleUser {
		return b.renderUserBubble()
	}
	return b.renderAssistantBubble()
}

// ==========================================================================
// USER BUBBLE - right-aligned, no label
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	maxContent := b.theme.BubbleWidth() - 4
	if maxContent < 10 {
		maxContent = 10
	}

	var content string
	if b.Message.IsTyping {
		content = b.theme.TypingDots.Render(b.TypingFrame)
	} else {
		content = wordWrap(b.Message.Content, maxContent)
	}

	bubble := b.theme.UserBubble.Render(content)
	return lipgloss.PlaceHorizontal(b.Width, lipgloss.Right, bubble)
}

// ==========================================================================
// ASSISTANT BUBBLE - left-aligned, labelled
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	maxContent := b.theme.BubbleWidth() - 4
	if maxContent < 10 {
		maxContent = 10
	}

	var body string
	switch {
	case b.Message.IsTyping:
		body = b.theme.TypingDots.Render(b.TypingFrame)
	default:
		parts := make([]string, 0, 2)
		if b.Message.Content != "" {
			parts = append(parts, b.markdown.Render(b.Message.Content, maxContent))
		}
		if b.FormView != "" {
			parts = append(parts, b.FormView)
		}
		body = strings.Join(parts, "\n")
	}

	label := b.theme.AssistantLabel.Render(b.Message.Role.DisplayName())
	bubble := b.theme.AssistantBubble.Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

// =============================================================================
// MESSAGE LIST
// =============================================================================

// RenderLog renders a list of messages separated by blank lines. forms maps
// message IDs to rendered form views.
func RenderLog(msgs []*model.Message, theme *styles.Theme, md *Markdown, width int, typingFrame string, forms map[string]string) string {
	rendered := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		b := NewMessageBubble(msg, theme, md)
		b.Width = width
		b.TypingFrame = typingFrame
		b.FormView = forms[msg.ID]
		rendered = append(rendered, b.View())
	}
	return strings.Join(rendered, "\n\n")
}
