// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/solebot/preventivatore/internal/config"
	"github.com/solebot/preventivatore/internal/ui/components"
	"github.com/solebot/preventivatore/internal/ui/styles"
	"github.com/solebot/preventivatore/internal/widget"
)

// =============================================================================
// FOCUS
// =============================================================================

// focusTarget is the element receiving keyboard input.
type focusTarget int

const (
	focusComposer focusTarget = iota // prompt text box
	focusSend                        // send control
	focusForm                        // the newest open quote form
	focusBanner                      // lock banner reset button
	focusSidebar                     // sidebar actions
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat surface.
// All pointer fields are shared between the copies Bubble Tea makes.
type Model struct {
	theme *styles.Theme
	keys  KeyMap
	log   zerolog.Logger
	cfg   *config.Config

	surface *surface
	sched   *teaScheduler
	widget  *widget.Widget

	viewport viewport.Model
	composer *components.Composer
	sidebar  *components.Sidebar
	banner   *components.LockBanner
	markdown *components.Markdown
	spin     spinner.Model

	focus   focusTarget
	updates <-chan config.Update

	width    int
	height   int
	ready    bool
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithConfig sets the configuration used for pricing, delays and layout.
func WithConfig(cfg *config.Config) Option {
	return func(m *Model) {
		if cfg != nil {
			m.cfg = cfg
		}
	}
}

// WithLogger sets the logger shared with the widget.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithConfigUpdates feeds configuration reloads into the model.
func WithConfigUpdates(ch <-chan config.Update) Option {
	return func(m *Model) { m.updates = ch }
}

// WithKeyMap overrides the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// New creates a new chat model.
func New(theme *styles.Theme, opts ...Option) Model {
	m := Model{
		theme: theme,
		keys:  DefaultKeyMap(),
		log:   zerolog.Nop(),
		cfg:   config.Default(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.surface = newSurface(theme)
	m.sched = newTeaScheduler()
	m.widget = widget.New(m.surface,
		widget.WithScheduler(m.sched),
		widget.WithPolicy(m.cfg.Pricing.Policy()),
		widget.WithDelays(m.cfg.Timing.FormDelay(), m.cfg.Timing.ReplyDelay()),
		widget.WithLogger(m.log),
	)

	m.viewport = viewport.New(80, 20)
	m.viewport.MouseWheelEnabled = true
	m.composer = components.NewComposer(theme, widget.Composer{
		LineHeight: m.cfg.UI.ComposerLineHeight,
		MaxHeight:  m.cfg.UI.ComposerMaxHeight,
	})
	m.sidebar = components.NewSidebar(theme, m.cfg.UI.SidebarWidth)
	m.banner = components.NewLockBanner(theme, "", "")
	m.markdown = components.NewMarkdown(theme.IsDark)
	m.spin = spinner.New(spinner.WithSpinner(styles.TypingDots.Spinner()))

	m.composer.Focus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spin.Tick,
		waitForConfig(m.updates),
	)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Widget returns the widget driven by this model.
func (m Model) Widget() *widget.Widget { return m.widget }

// Locked reports whether the widget is locked.
func (m Model) Locked() bool { return m.widget.IsLocked() }

// SidebarOpen reports sidebar visibility.
func (m Model) SidebarOpen() bool { return m.surface.sidebarOpen }

// Messages returns the number of messages in the log.
func (m Model) Messages() int { return m.surface.conv.MessageCount() }

// ComposerValue returns the composer text.
func (m Model) ComposerValue() string { return m.composer.Value() }

// =============================================================================
// CONFIG RELOAD
// =============================================================================

// ConfigReloadedMsg carries a configuration reload from the watcher.
type ConfigReloadedMsg struct {
	Update config.Update
}

// waitForConfig waits for the next reload on ch.
func waitForConfig(ch <-chan config.Update) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Update: u}
	}
}
