// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/solebot/preventivatore/internal/config"
	"github.com/solebot/preventivatore/internal/ui/components"
	"github.com/solebot/preventivatore/internal/widget"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	dirty := false

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.composer.SetWidth(msg.Width)
		m.ready = true
		m.surface.logChanged = true

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
		dirty = true

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))
		dirty = true

	case taskDueMsg:
		m.sched.run(msg.id)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		dirty = m.surface.hasTyping()

	case ConfigReloadedMsg:
		m.applyConfig(msg.Update)
		cmds = append(cmds, waitForConfig(m.updates))
		dirty = true

	default:
		// cursor blink and other component messages
		cmds = append(cmds, m.composer.Update(msg))
		if _, f := m.surface.openForm(); f != nil && m.focus == focusForm {
			cmds = append(cmds, f.Update(msg))
			dirty = true
		}
	}

	if m.quitting {
		return m, tea.Quit
	}

	cmds = append(cmds, m.sync(dirty), m.sched.drain())
	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEYBOARD
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.widget.Close()
		m.quitting = true
		return nil

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.widget.ToggleSidebar()
		return nil

	case key.Matches(msg, m.keys.CloseSidebar) && m.surface.sidebarOpen:
		m.widget.OverlayClicked()
		return nil

	case key.Matches(msg, m.keys.Reset) && m.surface.banner != nil:
		m.widget.Reset()
		return nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return nil
	}

	if m.surface.sidebarOpen {
		return m.handleSidebarKey(msg)
	}

	switch m.focus {
	case focusSend:
		return m.handleSendKey(msg)
	case focusForm:
		return m.handleFormKey(msg)
	case focusBanner:
		return m.handleBannerKey(msg)
	default:
		return m.handleComposerKey(msg)
	}
}

func (m *Model) handleComposerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Send):
		m.widget.Submit(m.composer.Value())
		return nil
	case key.Matches(msg, m.keys.NextFocus):
		return m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevFocus):
		return m.cycleFocus(-1)
	}
	return m.composer.Update(msg)
}

func (m *Model) handleSendKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Send):
		m.widget.Submit(m.composer.Value())
		return nil
	case key.Matches(msg, m.keys.NextFocus):
		return m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevFocus):
		return m.cycleFocus(-1)
	}
	return nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	id, f := m.surface.openForm()
	if f == nil {
		return m.setFocus(m.restingFocus())
	}

	switch {
	case key.Matches(msg, m.keys.Send):
		if f.OnSubmit() {
			m.widget.SubmitQuote(widget.Handle(id), f.Values())
			return nil
		}
		cmd, _ := f.Next()
		return cmd
	case key.Matches(msg, m.keys.NextFocus):
		if cmd, inside := f.Next(); inside {
			return cmd
		}
		return m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevFocus):
		if cmd, inside := f.Prev(); inside {
			return cmd
		}
		return m.cycleFocus(-1)
	}
	return f.Update(msg)
}

func (m *Model) handleBannerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Send):
		m.widget.Reset()
		return nil
	case key.Matches(msg, m.keys.NextFocus):
		return m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevFocus):
		return m.cycleFocus(-1)
	}
	return nil
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.PrevFocus):
		m.sidebar.MoveUp()
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.NextFocus):
		m.sidebar.MoveDown()
	case key.Matches(msg, m.keys.Send):
		// disabled actions still reach the widget, which explains the lock once
		if a, ok := m.sidebar.Selected(); ok {
			m.widget.SidebarAction(a.ID)
		}
	}
	return nil
}

// =============================================================================
// MOUSE
// =============================================================================

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Type {
	case tea.MouseWheelUp:
		m.viewport.LineUp(3)
		return nil
	case tea.MouseWheelDown:
		m.viewport.LineDown(3)
		return nil
	case tea.MouseLeft:
	default:
		return nil
	}

	l := m.layout()
	if msg.Y < l.header {
		if msg.X < components.HamburgerWidth {
			m.widget.ToggleSidebar()
		}
		return nil
	}

	if m.surface.sidebarOpen {
		if msg.X >= m.sidebar.Width {
			m.widget.OverlayClicked()
			return nil
		}
		if i := m.sidebar.ItemAt(msg.Y - l.header); i >= 0 {
			m.widget.SidebarAction(m.sidebar.Actions[i].ID)
		}
		return nil
	}

	y := msg.Y - l.header
	switch {
	case y < l.log:
		return nil
	case y < l.log+l.banner:
		m.widget.Reset()
		return nil
	case y < l.log+l.banner+l.composer:
		if from, to := m.composer.SendBounds(); msg.X >= from && msg.X < to {
			m.widget.Submit(m.composer.Value())
			return nil
		}
		return m.setFocus(focusComposer)
	}
	return nil
}

// =============================================================================
// FOCUS
// =============================================================================

// focusOrder lists the targets Tab visits, in order.
func (m *Model) focusOrder() []focusTarget {
	var order []focusTarget
	if !m.surface.controlsDisabled {
		order = append(order, focusComposer, focusSend)
	}
	if _, f := m.surface.openForm(); f != nil {
		order = append(order, focusForm)
	}
	if m.surface.banner != nil {
		order = append(order, focusBanner)
	}
	return order
}

// cycleFocus moves focus by dir steps through focusOrder. Entering a form
// backwards lands on its submit button.
func (m *Model) cycleFocus(dir int) tea.Cmd {
	order := m.focusOrder()
	if len(order) == 0 {
		return nil
	}
	idx := 0
	for i, t := range order {
		if t == m.focus {
			idx = i
		}
	}
	next := order[(idx+dir+len(order))%len(order)]
	cmd := m.setFocus(next)
	if next == focusForm && dir < 0 {
		if _, f := m.surface.openForm(); f != nil {
			cmd = f.FocusLast()
		}
	}
	return cmd
}

// restingFocus is where focus goes when its current target disappears.
func (m *Model) restingFocus() focusTarget {
	if m.surface.controlsDisabled && m.surface.banner != nil {
		return focusBanner
	}
	return focusComposer
}

func (m *Model) setFocus(t focusTarget) tea.Cmd {
	m.composer.Blur()
	m.composer.SendFocused = false
	m.banner.Focused = false
	m.sidebar.Blur()
	for _, f := range m.surface.forms {
		f.Blur()
	}

	m.focus = t
	switch t {
	case focusComposer:
		return m.composer.Focus()
	case focusSend:
		if !m.composer.Disabled() {
			m.composer.SendFocused = true
		}
	case focusForm:
		if _, f := m.surface.openForm(); f != nil {
			return f.Focus()
		}
	case focusBanner:
		m.banner.Focused = true
	case focusSidebar:
		m.sidebar.Focus()
	}
	return nil
}

// =============================================================================
// SYNC
// =============================================================================

// sync applies what the widget drew during this update to the components.
func (m *Model) sync(dirty bool) tea.Cmd {
	s := m.surface
	var cmds []tea.Cmd

	m.composer.SetDisabled(s.controlsDisabled)
	m.sidebar.Disabled = s.controlsDisabled
	if s.banner != nil {
		m.banner.Note = s.banner.Note
		m.banner.ResetLabel = s.banner.ResetLabel
	}

	if s.composerReset {
		s.composerReset = false
		m.composer.Reset()
		if !s.sidebarOpen {
			cmds = append(cmds, m.setFocus(focusComposer))
		}
	}

	if s.newForm != "" {
		s.newForm = ""
		if !s.sidebarOpen && m.composer.Value() == "" {
			cmds = append(cmds, m.setFocus(focusForm))
		}
	}

	switch {
	case s.sidebarOpen && m.focus != focusSidebar:
		cmds = append(cmds, m.setFocus(focusSidebar))
	case !s.sidebarOpen && m.focus == focusSidebar:
		cmds = append(cmds, m.setFocus(m.restingFocus()))
	case m.focus == focusBanner && s.banner == nil:
		cmds = append(cmds, m.setFocus(m.restingFocus()))
	case s.controlsDisabled && (m.focus == focusComposer || m.focus == focusSend):
		cmds = append(cmds, m.setFocus(m.restingFocus()))
	case m.focus == focusForm:
		if _, f := s.openForm(); f == nil {
			cmds = append(cmds, m.setFocus(m.restingFocus()))
		}
	}

	l := m.layout()
	m.viewport.Width = m.width
	m.viewport.Height = l.log

	switch {
	case s.logChanged:
		s.logChanged = false
		m.refreshLog(true)
	case dirty:
		m.refreshLog(false)
	}
	return tea.Batch(cmds...)
}

// refreshLog re-renders the message log, optionally scrolling to the end.
func (m *Model) refreshLog(bottom bool) {
	if !m.ready {
		return
	}
	formWidth := m.theme.BubbleWidth() - 4
	content := components.RenderLog(
		m.surface.conv.Messages,
		m.theme,
		m.markdown,
		m.width,
		m.spin.View(),
		m.surface.formViews(formWidth),
	)
	m.viewport.SetContent(content)
	if bottom {
		m.viewport.GotoBottom()
	}
}

// applyConfig swaps in a reloaded configuration. Invalid reloads keep the
// current settings. Theme and mouse capture take effect on the next start.
func (m *Model) applyConfig(u config.Update) {
	if u.Err != nil {
		m.log.Warn().Err(u.Err).Msg("config reload rejected")
		return
	}
	if u.Config == nil {
		return
	}
	cfg := u.Config
	m.cfg = cfg
	m.widget.SetPolicy(cfg.Pricing.Policy())
	m.widget.SetDelays(cfg.Timing.FormDelay(), cfg.Timing.ReplyDelay())
	m.composer.SetLimits(widget.Composer{
		LineHeight: cfg.UI.ComposerLineHeight,
		MaxHeight:  cfg.UI.ComposerMaxHeight,
	})
	m.sidebar.Width = cfg.UI.SidebarWidth
	m.log.Info().Msg("config reloaded")
}
