// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/solebot/preventivatore/internal/model"
	"github.com/solebot/preventivatore/internal/ui/components"
	"github.com/solebot/preventivatore/internal/widget"
)

// =============================================================================
// TEXT SURFACE
// =============================================================================

// textSurface implements widget.Renderer by printing to a writer. Printed
// lines cannot change, so a resolved placeholder is printed as a new line.
type textSurface struct {
	out   io.Writer
	md    *components.Markdown
	width int

	seq      int
	roles    map[widget.Handle]model.Role
	forms    map[widget.Handle]*model.QuoteForm
	order    []widget.Handle
	disabled bool

	sidebarOpen bool
	actions     []components.SidebarAction
}

var _ widget.Renderer = (*textSurface)(nil)

func newTextSurface(out io.Writer, md *components.Markdown, width int) *textSurface {
	return &textSurface{
		out:     out,
		md:      md,
		width:   width,
		roles:   make(map[widget.Handle]model.Role),
		forms:   make(map[widget.Handle]*model.QuoteForm),
		actions: components.DefaultSidebarActions(),
	}
}

// AppendMessage implements widget.Renderer.
func (s *textSurface) AppendMessage(role model.Role, content model.Content, typing bool) widget.Handle {
	s.seq++
	h := widget.Handle("line-" + strconv.Itoa(s.seq))
	s.roles[h] = role

	if typing {
		fmt.Fprintln(s.out, labelStyle.Render(role.DisplayName())+" "+dimStyle.Render("sta scrivendo..."))
		return h
	}
	s.print(role, content)
	if content.Form != nil {
		s.mountForm(h, content.Form)
	}
	return h
}

// ReplaceTyping implements widget.Renderer.
func (s *textSurface) ReplaceTyping(h widget.Handle, content model.Content) {
	role, ok := s.roles[h]
	if !ok {
		return
	}
	s.print(role, content)
	if content.Form != nil {
		s.mountForm(h, content.Form)
	}
}

// CloseForm implements widget.Renderer.
func (s *textSurface) CloseForm(h widget.Handle) {
	if f := s.forms[h]; f != nil {
		f.Closed = true
	}
}

// ClearLog implements widget.Renderer.
func (s *textSurface) ClearLog() {
	s.roles = make(map[widget.Handle]model.Role)
	s.forms = make(map[widget.Handle]*model.QuoteForm)
	s.order = nil
	fmt.Fprintln(s.out, dimStyle.Render("────────────────"))
}

// SetControlsDisabled implements widget.Renderer.
func (s *textSurface) SetControlsDisabled(disabled bool) {
	s.disabled = disabled
}

// ShowBanner implements widget.Renderer.
func (s *textSurface) ShowBanner(b widget.Banner) {
	fmt.Fprintln(s.out, bannerStyle.Render(b.Note)+"  "+dimStyle.Render("/reset → "+b.ResetLabel))
}

// HideBanner implements widget.Renderer.
func (s *textSurface) HideBanner() {}

// SetSidebarOpen implements widget.Renderer.
func (s *textSurface) SetSidebarOpen(open bool) {
	if open == s.sidebarOpen {
		return
	}
	s.sidebarOpen = open
	if !open {
		return
	}
	for i, a := range s.actions {
		fmt.Fprintf(s.out, "  %d) %s\n", i+1, a.Label)
	}
	fmt.Fprintln(s.out, dimStyle.Render("Scegli un numero, oppure /menu per chiudere."))
}

// ResetComposer implements widget.Renderer. A line prompt is always empty.
func (s *textSurface) ResetComposer() {}

func (s *textSurface) print(role model.Role, content model.Content) {
	body := content.Markup
	if s.md != nil {
		body = s.md.Render(body, s.width)
	}
	if role.HasLabel() {
		fmt.Fprintln(s.out, labelStyle.Render(role.DisplayName()))
	} else {
		fmt.Fprint(s.out, labelStyle.Render(role.DisplayName())+": ")
	}
	fmt.Fprintln(s.out, body)
}

func (s *textSurface) mountForm(h widget.Handle, f *model.QuoteForm) {
	s.forms[h] = f
	s.order = append(s.order, h)
}

// openForm returns the newest form that has not been submitted.
func (s *textSurface) openForm() (widget.Handle, *model.QuoteForm) {
	for i := len(s.order) - 1; i >= 0; i-- {
		h := s.order[i]
		if f := s.forms[h]; f != nil && !f.Closed {
			return h, f
		}
	}
	return "", nil
}
