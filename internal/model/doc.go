// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat log.
//
// # Key Types
//
//   - Conversation: ordered chat log owned by a rendering surface
//   - Message: single bubble with role, content and typing state
//   - Content: message body, markup plus an optional quote form
//   - QuoteForm: the four-field form shown inside an assistant bubble
//   - Role: user or assistant
//
// # Usage
//
//	conv := model.NewConversation()
//	msg := conv.Append(model.RoleAssistant, model.Content{}, true)
//	conv.ReplaceTyping(msg.ID, model.Text("Sto elaborando..."))
package model
