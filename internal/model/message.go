// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat log.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns the default label for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "Tu"
	case RoleAssistant:
		return "SoleBot"
	default:
		return string(r)
	}
}

// HasLabel reports whether bubbles of this role are rendered with a label.
// Only assistant bubbles carry one.
func (r Role) HasLabel() bool {
	return r == RoleAssistant
}

// =============================================================================
// CONTENT TYPE
// =============================================================================

// Content is a message body: markup text plus an optional inline form.
type Content struct {
	Markup string
	Form   *QuoteForm
}

// Text wraps plain markup into a Content.
func Text(markup string) Content {
	return Content{Markup: markup}
}

// IsEmpty reports whether the content has neither text nor a form.
func (c Content) IsEmpty() bool {
	return c.Markup == "" && c.Form == nil
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single bubble in the chat log.
type Message struct {
	// Identity
	ID        string
	Role      Role
	Timestamp time.Time

	// Content
	Content string
	Form    *QuoteForm

	// IsTyping marks a placeholder waiting for ReplaceTyping.
	IsTyping bool
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content Content, typing bool) *Message {
	msg := &Message{
		ID:        uuid.NewString(),
		Role:      role,
		Timestamp: time.Now(),
		IsTyping:  typing,
	}
	if !typing {
		msg.Content = content.Markup
		msg.Form = content.Form
	}
	return msg
}

// NewUserMessage creates a new user message.
func NewUserMessage(text string) *Message {
	return NewMessage(RoleUser, Text(text), false)
}

// NewTypingMessage creates an assistant placeholder.
func NewTypingMessage() *Message {
	return NewMessage(RoleAssistant, Content{}, true)
}

// Resolve swaps the typing placeholder for real content.
// It is a no-op on a message that is not typing.
func (m *Message) Resolve(content Content) bool {
	if !m.IsTyping {
		return false
	}
	m.Content = content.Markup
	m.Form = content.Form
	m.IsTyping = false
	return true
}

// HasOpenForm reports whether the message carries a form still accepting input.
func (m *Message) HasOpenForm() bool {
	return m.Form != nil && !m.Form.Closed
}
