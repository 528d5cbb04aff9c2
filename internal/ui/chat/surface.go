// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/solebot/preventivatore/internal/model"
	"github.com/solebot/preventivatore/internal/ui/components"
	"github.com/solebot/preventivatore/internal/ui/styles"
	"github.com/solebot/preventivatore/internal/widget"
)

// =============================================================================
// RENDER SURFACE
// =============================================================================

// surface records what the widget asks to draw. The Model reads it back in
// sync after every update; the flags below are edge-triggered and cleared there.
type surface struct {
	conv  *model.Conversation
	forms map[string]*components.QuoteFormInput
	theme *styles.Theme

	controlsDisabled bool
	banner           *widget.Banner
	sidebarOpen      bool

	// edge-triggered
	logChanged    bool
	composerReset bool
	newForm       string
}

var _ widget.Renderer = (*surface)(nil)

func newSurface(theme *styles.Theme) *surface {
	return &surface{
		conv:  model.NewConversation(),
		forms: make(map[string]*components.QuoteFormInput),
		theme: theme,
	}
}

// AppendMessage implements widget.Renderer.
func (s *surface) AppendMessage(role model.Role, content model.Content, typing bool) widget.Handle {
	msg := s.conv.Append(role, content, typing)
	if !typing && content.Form != nil {
		s.mountForm(msg)
	}
	s.logChanged = true
	return widget.Handle(msg.ID)
}

// ReplaceTyping implements widget.Renderer.
func (s *surface) ReplaceTyping(h widget.Handle, content model.Content) {
	if !s.conv.ReplaceTyping(string(h), content) {
		return
	}
	if msg := s.conv.GetMessageByID(string(h)); msg != nil && msg.Form != nil {
		s.mountForm(msg)
	}
	s.logChanged = true
}

// CloseForm implements widget.Renderer.
func (s *surface) CloseForm(h widget.Handle) {
	s.conv.CloseForm(string(h))
	if f := s.forms[string(h)]; f != nil {
		f.Blur()
	}
	if s.newForm == string(h) {
		s.newForm = ""
	}
	s.logChanged = true
}

// ClearLog implements widget.Renderer.
func (s *surface) ClearLog() {
	s.conv.ClearHistory()
	s.forms = make(map[string]*components.QuoteFormInput)
	s.newForm = ""
	s.logChanged = true
}

// SetControlsDisabled implements widget.Renderer.
func (s *surface) SetControlsDisabled(disabled bool) {
	s.controlsDisabled = disabled
}

// ShowBanner implements widget.Renderer.
func (s *surface) ShowBanner(b widget.Banner) {
	s.banner = &b
}

// HideBanner implements widget.Renderer.
func (s *surface) HideBanner() {
	s.banner = nil
}

// SetSidebarOpen implements widget.Renderer.
func (s *surface) SetSidebarOpen(open bool) {
	s.sidebarOpen = open
}

// ResetComposer implements widget.Renderer.
func (s *surface) ResetComposer() {
	s.composerReset = true
}

func (s *surface) mountForm(msg *model.Message) {
	s.forms[msg.ID] = components.NewQuoteFormInput(msg.Form, s.theme)
	s.newForm = msg.ID
}

// =============================================================================
// QUERIES
// =============================================================================

// openForm returns the most recent form that can still be submitted.
func (s *surface) openForm() (string, *components.QuoteFormInput) {
	msg := s.conv.LastOpenForm()
	if msg == nil {
		return "", nil
	}
	f := s.forms[msg.ID]
	if f == nil {
		return "", nil
	}
	return msg.ID, f
}

// hasTyping reports whether any placeholder is still animating.
func (s *surface) hasTyping() bool {
	for _, msg := range s.conv.Messages {
		if msg.IsTyping {
			return true
		}
	}
	return false
}

// formViews renders every mounted form at width.
func (s *surface) formViews(width int) map[string]string {
	views := make(map[string]string, len(s.forms))
	for id, f := range s.forms {
		views[id] = f.View(width)
	}
	return views
}
