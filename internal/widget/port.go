// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import "github.com/solebot/preventivatore/internal/model"

// Handle identifies a message appended through a Renderer.
// The zero Handle means nothing was rendered.
type Handle string

// Banner is the persistent lock notice with its reset action.
type Banner struct {
	Note       string
	ResetLabel string
}

// Renderer is the port through which the widget draws. Implementations must
// treat unknown handles and unmounted parts as silent no-ops.
type Renderer interface {
	// AppendMessage adds a bubble and scrolls to it. When typing is set the
	// content is ignored and an animated placeholder is shown instead.
	AppendMessage(role model.Role, content model.Content, typing bool) Handle
	// ReplaceTyping swaps a placeholder for real content and scrolls.
	ReplaceTyping(h Handle, content model.Content)
	// CloseForm turns the form inside a message read-only.
	CloseForm(h Handle)
	// ClearLog removes every bubble.
	ClearLog()

	// SetControlsDisabled disables or enables the sidebar actions, the send
	// control and the composer together.
	SetControlsDisabled(disabled bool)
	ShowBanner(b Banner)
	HideBanner()

	// SetSidebarOpen shows or hides the sidebar and syncs the expanded
	// state of the hamburger control.
	SetSidebarOpen(open bool)
	// ResetComposer clears the composer, shrinks it back and focuses it.
	ResetComposer()
}

// nopRenderer is used when no surface is mounted.
type nopRenderer struct{}

func (nopRenderer) AppendMessage(model.Role, model.Content, bool) Handle { return "" }
func (nopRenderer) ReplaceTyping(Handle, model.Content)                 {}
func (nopRenderer) CloseForm(Handle)                                    {}
func (nopRenderer) ClearLog()                                           {}
func (nopRenderer) SetControlsDisabled(bool)                            {}
func (nopRenderer) ShowBanner(Banner)                                   {}
func (nopRenderer) HideBanner()                                         {}
func (nopRenderer) SetSidebarOpen(bool)                                 {}
func (nopRenderer) ResetComposer()                                      {}
