// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the ordered chat log shown by a surface.
// It is not safe for concurrent use; the owning UI loop serializes access.
type Conversation struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	Messages []*Message
	byID     map[string]*Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
		byID:      make(map[string]*Message),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage adds a message to the conversation.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.byID[msg.ID] = msg
	c.UpdatedAt = time.Now()
}

// Append creates a message and adds it.
func (c *Conversation) Append(role Role, content Content, typing bool) *Message {
	msg := NewMessage(role, content, typing)
	c.AddMessage(msg)
	return msg
}

// ReplaceTyping resolves the typing placeholder with the given ID.
// Unknown IDs and messages that are no longer typing are left alone.
func (c *Conversation) ReplaceTyping(id string, content Content) bool {
	msg := c.byID[id]
	if msg == nil {
		return false
	}
	if !msg.Resolve(content) {
		return false
	}
	c.UpdatedAt = time.Now()
	return true
}

// CloseForm marks the form carried by the message as submitted.
func (c *Conversation) CloseForm(id string) bool {
	msg := c.byID[id]
	if msg == nil || msg.Form == nil || msg.Form.Closed {
		return false
	}
	msg.Form.Closed = true
	c.UpdatedAt = time.Now()
	return true
}

// GetMessageByID returns the message with the given ID, or nil.
func (c *Conversation) GetMessageByID(id string) *Message {
	return c.byID[id]
}

// GetLastMessage returns the most recent message, or nil if empty.
func (c *Conversation) GetLastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// LastOpenForm returns the newest message whose form still accepts input.
func (c *Conversation) LastOpenForm() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].HasOpenForm() {
			return c.Messages[i]
		}
	}
	return nil
}

// ClearHistory removes every message.
func (c *Conversation) ClearHistory() {
	c.Messages = make([]*Message, 0)
	c.byID = make(map[string]*Message)
	c.UpdatedAt = time.Now()
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if the conversation has no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}
