// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solebot/preventivatore/internal/config"
	"github.com/solebot/preventivatore/internal/ui/styles"
	"github.com/solebot/preventivatore/internal/widget"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(styles.NewTheme("dark"))
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(t *testing.T, m Model, k tea.KeyType) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: k})
}

func click(t *testing.T, m Model, x, y int) Model {
	t.Helper()
	return update(t, m, tea.MouseMsg{X: x, Y: y, Type: tea.MouseLeft})
}

// runTasks delivers every scheduled task as if its delay had elapsed.
func runTasks(t *testing.T, m Model) Model {
	t.Helper()
	for m.sched.pending() > 0 {
		ids := make([]uint64, 0, len(m.sched.tasks))
		for id := range m.sched.tasks {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		m = update(t, m, taskDueMsg{id: ids[0]})
	}
	return m
}

func lastContent(m Model) string {
	msg := m.surface.conv.GetLastMessage()
	if msg == nil {
		return ""
	}
	return msg.Content
}

// openForm opens a quote form through the sidebar and waits for it.
func openForm(t *testing.T, m Model) Model {
	t.Helper()
	m = press(t, m, tea.KeyCtrlB)
	require.True(t, m.SidebarOpen())
	m = press(t, m, tea.KeyEnter)
	require.False(t, m.SidebarOpen())
	return runTasks(t, m)
}

// fillAndSubmit types the four values into the focused form and submits it.
func fillAndSubmit(t *testing.T, m Model, values ...string) Model {
	t.Helper()
	require.Equal(t, focusForm, m.focus)
	for _, v := range values {
		m = typeText(t, m, v)
		m = press(t, m, tea.KeyEnter)
	}
	return press(t, m, tea.KeyEnter)
}

// =============================================================================
// PROMPTS
// =============================================================================

func TestModel_InitialState(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, 0, m.Messages())
	assert.False(t, m.Locked())
	assert.False(t, m.SidebarOpen())
	assert.Equal(t, focusComposer, m.focus)
	assert.True(t, m.composer.Focused())
}

func TestModel_SendPrompt(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "ciao")
	assert.Equal(t, "ciao", m.ComposerValue())

	m = press(t, m, tea.KeyEnter)
	assert.Equal(t, 2, m.Messages())
	assert.Equal(t, "", m.ComposerValue())
	assert.True(t, m.surface.conv.GetLastMessage().IsTyping)
	assert.Equal(t, 1, m.sched.pending())

	m = runTasks(t, m)
	assert.Equal(t, widget.DefaultCopy().Processing, lastContent(m))
	assert.False(t, m.surface.conv.GetLastMessage().IsTyping)
}

func TestModel_BlankEnterIsIgnored(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "   ")
	m = press(t, m, tea.KeyEnter)
	assert.Equal(t, 0, m.Messages())
	assert.Equal(t, "", m.ComposerValue())
}

func TestModel_AltEnterInsertsNewline(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "a")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	m = typeText(t, m, "b")

	assert.Equal(t, "a\nb", m.ComposerValue())
	assert.Equal(t, 0, m.Messages())
	assert.Equal(t, 2, m.composer.Rows())
}

func TestModel_TabCyclesComposerAndSend(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.KeyTab)
	assert.Equal(t, focusSend, m.focus)
	assert.True(t, m.composer.SendFocused)

	m = press(t, m, tea.KeyTab)
	assert.Equal(t, focusComposer, m.focus)

	m = press(t, m, tea.KeyShiftTab)
	assert.Equal(t, focusSend, m.focus)
}

// =============================================================================
// QUOTE FLOW
// =============================================================================

func TestModel_QuoteFlowLocks(t *testing.T) {
	m := newTestModel(t)
	m = openForm(t, m)

	id, f := m.surface.openForm()
	require.NotNil(t, f)
	assert.NotEmpty(t, id)
	assert.Equal(t, focusForm, m.focus)

	m = fillAndSubmit(t, m, "2", "40", "30", "20")

	assert.True(t, m.Locked())
	assert.Contains(t, lastContent(m), "€ 14.56")
	require.NotNil(t, m.surface.banner)
	assert.True(t, m.surface.controlsDisabled)
	assert.True(t, m.composer.Disabled())
	assert.Equal(t, focusBanner, m.focus)

	_, open := m.surface.openForm()
	assert.Nil(t, open)
}

func TestModel_LockedSidebarActionNotifiesOnce(t *testing.T) {
	m := newTestModel(t)
	m = openForm(t, m)
	m = fillAndSubmit(t, m, "1", "1", "1", "1")
	require.True(t, m.Locked())
	before := m.Messages()

	m = press(t, m, tea.KeyCtrlB)
	m = press(t, m, tea.KeyEnter)
	assert.False(t, m.SidebarOpen())
	assert.Equal(t, before+1, m.Messages())
	assert.Equal(t, widget.DefaultCopy().LockNotice, lastContent(m))

	m = press(t, m, tea.KeyCtrlB)
	m = press(t, m, tea.KeyEnter)
	assert.Equal(t, before+1, m.Messages())
	assert.Equal(t, 0, m.sched.pending())
}

func TestModel_ResetFromBanner(t *testing.T) {
	m := newTestModel(t)
	m = openForm(t, m)
	m = fillAndSubmit(t, m, "2", "50", "40", "30")
	require.True(t, m.Locked())
	require.Equal(t, focusBanner, m.focus)

	m = press(t, m, tea.KeyEnter)

	assert.False(t, m.Locked())
	assert.Nil(t, m.surface.banner)
	assert.Equal(t, 1, m.Messages())
	assert.Equal(t, widget.DefaultCopy().ResetDone, lastContent(m))
	assert.Equal(t, focusComposer, m.focus)
	assert.True(t, m.composer.Focused())
	assert.False(t, m.composer.Disabled())
}

func TestModel_CtrlRResetsOnlyWhenLocked(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.KeyCtrlR)
	assert.Equal(t, 0, m.Messages())

	m = openForm(t, m)
	m = fillAndSubmit(t, m, "", "", "", "")
	require.True(t, m.Locked())
	assert.Contains(t, lastContent(m), "€ 10.00")

	m = press(t, m, tea.KeyCtrlR)
	assert.False(t, m.Locked())
	assert.Equal(t, 1, m.Messages())
}

func TestModel_ResetCancelsPendingTasks(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "ciao")
	m = press(t, m, tea.KeyEnter)
	require.Equal(t, 1, m.sched.pending())

	m.Widget().Reset()
	m = update(t, m, taskDueMsg{id: 1})

	assert.Equal(t, 0, m.sched.pending())
	assert.Equal(t, 1, m.Messages())
	assert.Equal(t, widget.DefaultCopy().ResetDone, lastContent(m))
}

// =============================================================================
// SIDEBAR
// =============================================================================

func TestModel_SidebarToggleAndEscape(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.KeyCtrlB)
	assert.True(t, m.SidebarOpen())
	assert.Equal(t, focusSidebar, m.focus)

	m = press(t, m, tea.KeyEsc)
	assert.False(t, m.SidebarOpen())
	assert.Equal(t, focusComposer, m.focus)

	// esc with the sidebar closed is harmless
	m = press(t, m, tea.KeyEsc)
	assert.False(t, m.SidebarOpen())
}

func TestModel_MouseHamburgerAndBackdrop(t *testing.T) {
	m := newTestModel(t)
	m = click(t, m, 1, 0)
	assert.True(t, m.SidebarOpen())

	m = click(t, m, 90, 10)
	assert.False(t, m.SidebarOpen())

	m = click(t, m, 90, 10)
	assert.False(t, m.SidebarOpen())
}

func TestModel_MouseSidebarItemOpensForm(t *testing.T) {
	m := newTestModel(t)
	m = click(t, m, 1, 0)
	require.True(t, m.SidebarOpen())

	m = click(t, m, 3, 1+3)
	assert.False(t, m.SidebarOpen())
	assert.Equal(t, 1, m.Messages())
	assert.True(t, m.surface.conv.GetLastMessage().IsTyping)

	m = runTasks(t, m)
	_, f := m.surface.openForm()
	assert.NotNil(t, f)
}

func TestModel_MouseSendControl(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "ciao")

	l := m.layout()
	from, _ := m.composer.SendBounds()
	m = click(t, m, from, l.header+l.log+l.banner)

	assert.Equal(t, 2, m.Messages())
	assert.Equal(t, "", m.ComposerValue())
}

// =============================================================================
// VIEW
// =============================================================================

func TestModel_ViewBeforeSize(t *testing.T) {
	m := New(styles.NewTheme("dark"))
	assert.Equal(t, "Caricamento...", m.View())
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "ciao")
	m = press(t, m, tea.KeyEnter)
	m = runTasks(t, m)

	out := ansi.Strip(m.View())
	assert.Contains(t, out, Title)
	assert.Contains(t, out, "ciao")
	assert.Contains(t, out, "Sto elaborando...")
	assert.Contains(t, out, "Invia")
}

func TestModel_ViewSidebar(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.KeyCtrlB)

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Nuovo preventivo")
	assert.Contains(t, out, "✕")
}

func TestModel_ViewBanner(t *testing.T) {
	m := newTestModel(t)
	m = openForm(t, m)
	m = fillAndSubmit(t, m, "2", "40", "30", "20")

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Reset preventivo")
	assert.Contains(t, out, "Totale stimato")
}

// =============================================================================
// CONFIG AND LIFECYCLE
// =============================================================================

func TestModel_ConfigReload(t *testing.T) {
	ch := make(chan config.Update, 1)
	m := New(styles.NewTheme("dark"), WithConfigUpdates(ch))
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	cfg := config.Default()
	cfg.Pricing.BasePrice = 20
	m = update(t, m, ConfigReloadedMsg{Update: config.Update{Config: cfg}})
	assert.InDelta(t, 20, m.Widget().Policy().BasePrice, 1e-9)

	m = update(t, m, ConfigReloadedMsg{Update: config.Update{Err: errors.New("bad file")}})
	assert.InDelta(t, 20, m.Widget().Policy().BasePrice, 1e-9)
}

func TestModel_ConfigReloadAppliesTimingAndLayout(t *testing.T) {
	m := newTestModel(t)
	m.composer.SetValue(strings.Repeat("riga\n", 6))
	require.Equal(t, 7, m.composer.Rows())

	cfg := config.Default()
	cfg.Timing.FormDelayMs = 40
	cfg.Timing.ReplyDelayMs = 70
	cfg.UI.ComposerMaxHeight = 60
	cfg.UI.SidebarWidth = 30
	m = update(t, m, ConfigReloadedMsg{Update: config.Update{Config: cfg}})

	form, reply := m.Widget().Delays()
	assert.Equal(t, 40*time.Millisecond, form)
	assert.Equal(t, 70*time.Millisecond, reply)
	assert.Equal(t, 3, m.composer.Rows())
	assert.Equal(t, 30, m.sidebar.Width)
}

func TestWaitForConfig(t *testing.T) {
	assert.Nil(t, waitForConfig(nil))

	ch := make(chan config.Update, 1)
	ch <- config.Update{Config: config.Default()}
	msg := waitForConfig(ch)()
	reload, ok := msg.(ConfigReloadedMsg)
	require.True(t, ok)
	assert.NotNil(t, reload.Update.Config)

	close(ch)
	assert.Nil(t, waitForConfig(ch)())
}

func TestModel_ConfiguredDelays(t *testing.T) {
	cfg := config.Default()
	cfg.Timing.ReplyDelayMs = 50
	m := New(styles.NewTheme("dark"), WithConfig(cfg))
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m = typeText(t, m, "x")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)

	m = next.(Model)
	assert.Equal(t, "", m.View())
	assert.False(t, m.Widget().SendPrompt("ciao"))
}

// =============================================================================
// SCHEDULER
// =============================================================================

func TestTeaScheduler(t *testing.T) {
	s := newTeaScheduler()
	ran := 0
	s.After(time.Millisecond, func() { ran++ })
	cancel := s.After(time.Millisecond, func() { ran += 10 })

	assert.Equal(t, 2, s.pending())
	assert.NotNil(t, s.drain())
	assert.Nil(t, s.drain())

	cancel()
	cancel()
	assert.False(t, s.run(2))
	assert.True(t, s.run(1))
	assert.False(t, s.run(1))
	assert.Equal(t, 1, ran)
	assert.Equal(t, 0, s.pending())
}
