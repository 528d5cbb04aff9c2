// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/solebot/preventivatore/internal/model"
	"github.com/solebot/preventivatore/internal/quote"
)

// =============================================================================
// WIDGET
// =============================================================================

// Widget is the quote chat component. All methods must be called from the
// UI goroutine that also runs the Scheduler callbacks.
type Widget struct {
	r      Renderer
	sched  Scheduler
	log    zerolog.Logger
	policy quote.Policy
	copy   Copy

	formDelay  time.Duration
	replyDelay time.Duration

	state       ConversationState
	sidebarOpen bool

	// forms holds the handles of rendered forms that may still submit.
	forms map[Handle]struct{}

	// epoch is cancelled on every Reset and on Close; tasks scheduled under
	// an older epoch never run.
	epoch    context.Context
	endEpoch context.CancelFunc
	pending  map[uint64]func()
	taskSeq  uint64
	closed   bool
}

// Option configures a Widget.
type Option func(*Widget)

// WithScheduler sets the scheduler used for delayed updates.
func WithScheduler(s Scheduler) Option {
	return func(w *Widget) {
		if s != nil {
			w.sched = s
		}
	}
}

// WithPolicy sets the pricing policy.
func WithPolicy(p quote.Policy) Option {
	return func(w *Widget) { w.policy = p }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Widget) { w.log = l }
}

// WithDelays sets the simulated latency before the form and before the stub reply.
func WithDelays(form, reply time.Duration) Option {
	return func(w *Widget) {
		w.formDelay = form
		w.replyDelay = reply
	}
}

// WithCopy replaces the posted text.
func WithCopy(c Copy) Option {
	return func(w *Widget) { w.copy = c }
}

// New creates a widget drawing on r. A nil r yields a widget whose output
// goes nowhere. Without WithScheduler a ManualScheduler is used.
func New(r Renderer, opts ...Option) *Widget {
	if r == nil {
		r = nopRenderer{}
	}
	w := &Widget{
		r:          r,
		sched:      NewManualScheduler(),
		log:        zerolog.Nop(),
		policy:     quote.DefaultPolicy(),
		copy:       DefaultCopy(),
		formDelay:  DefaultFormDelay,
		replyDelay: DefaultReplyDelay,
		forms:      make(map[Handle]struct{}),
		pending:    make(map[uint64]func()),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.epoch, w.endEpoch = context.WithCancel(context.Background())
	return w
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the lock state.
func (w *Widget) State() LockState { return w.state.State() }

// IsLocked reports whether the widget is locked.
func (w *Widget) IsLocked() bool { return w.state.IsLocked() }

// Conversation returns a copy of the lock flags.
func (w *Widget) Conversation() ConversationState { return w.state }

// SidebarOpen reports sidebar visibility.
func (w *Widget) SidebarOpen() bool { return w.sidebarOpen }

// Policy returns the pricing policy in use.
func (w *Widget) Policy() quote.Policy { return w.policy }

// SetPolicy swaps the pricing policy; quotes already shown are unaffected.
func (w *Widget) SetPolicy(p quote.Policy) {
	w.policy = p
	w.log.Info().
		Float64("divisor", p.VolumetricDivisor).
		Float64("base", p.BasePrice).
		Float64("per_kg", p.PricePerKg).
		Msg("pricing policy updated")
}

// Delays returns the form and reply latencies.
func (w *Widget) Delays() (form, reply time.Duration) { return w.formDelay, w.replyDelay }

// SetDelays changes the latencies of later requests. Updates already
// scheduled keep their timing.
func (w *Widget) SetDelays(form, reply time.Duration) {
	w.formDelay, w.replyDelay = form, reply
	w.log.Debug().Dur("form", form).Dur("reply", reply).Msg("delays updated")
}

// PendingTasks returns how many delayed updates are still scheduled.
func (w *Widget) PendingTasks() int { return len(w.pending) }

// IsFormOpen reports whether the form rendered under h can still submit.
func (w *Widget) IsFormOpen(h Handle) bool {
	_, ok := w.forms[h]
	return ok
}

// =============================================================================
// LOCK / RESET
// =============================================================================

// CheckLock reports whether the current action must be suppressed. The first
// suppressed attempt after locking posts the lock notice.
func (w *Widget) CheckLock() bool {
	blocked, notify := w.state.suppress()
	if notify {
		w.r.AppendMessage(model.RoleAssistant, model.Text(w.copy.LockNotice), false)
		w.log.Debug().Msg("action blocked while locked, notice posted")
	}
	return blocked
}

func (w *Widget) setLocked(lock bool) {
	w.state.setLocked(lock)

	w.r.SetControlsDisabled(lock)
	w.r.HideBanner()
	if lock {
		w.r.ShowBanner(Banner{Note: w.copy.LockNotice, ResetLabel: w.copy.ResetLabel})
	}
	w.log.Info().Str("state", w.state.State().String()).Msg("lock state changed")
}

// Reset clears the chat and unlocks the widget. Delayed updates still
// pending are cancelled.
func (w *Widget) Reset() {
	if w.closed {
		return
	}
	w.cancelPending()
	w.forms = make(map[Handle]struct{})

	w.r.ClearLog()
	w.setLocked(false)
	w.r.ResetComposer()
	w.r.AppendMessage(model.RoleAssistant, model.Text(w.copy.ResetDone), false)
}

// Close tears the widget down. Pending updates are cancelled and every
// later call is ignored.
func (w *Widget) Close() {
	if w.closed {
		return
	}
	w.cancelPending()
	w.closed = true
}

// =============================================================================
// PROMPTS
// =============================================================================

// SendPrompt posts a user message followed by the stub reply. Blank text is
// ignored before the lock is consulted. It reports whether the prompt was posted.
func (w *Widget) SendPrompt(text string) bool {
	if w.closed {
		return false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if w.CheckLock() {
		return false
	}

	w.r.AppendMessage(model.RoleUser, model.Text(text), false)
	h := w.r.AppendMessage(model.RoleAssistant, model.Content{}, true)
	w.schedule(w.replyDelay, func() {
		w.r.ReplaceTyping(h, model.Text(w.copy.Processing))
	})
	return true
}

// Submit is the send control: it sends text, then clears, shrinks and
// refocuses the composer whatever the outcome.
func (w *Widget) Submit(text string) bool {
	sent := w.SendPrompt(text)
	if !w.closed {
		w.r.ResetComposer()
	}
	return sent
}

// =============================================================================
// QUOTE FORM
// =============================================================================

// OpenQuoteForm shows a typing placeholder and, after the form delay, the
// quote form. Suppressed while locked.
func (w *Widget) OpenQuoteForm() {
	if w.closed || w.CheckLock() {
		return
	}

	h := w.r.AppendMessage(model.RoleAssistant, model.Content{}, true)
	w.schedule(w.formDelay, func() {
		w.r.ReplaceTyping(h, model.Content{Markup: w.copy.FormIntro, Form: model.NewQuoteForm()})
		if h != "" {
			w.forms[h] = struct{}{}
		}
	})
}

// SubmitQuote is the "Calcola" action of the form rendered under h. A form
// submits at most once; the computed quote locks the widget.
func (w *Widget) SubmitQuote(h Handle, raw quote.RawInput) (quote.Result, bool) {
	if w.closed {
		return quote.Result{}, false
	}
	if _, ok := w.forms[h]; !ok {
		return quote.Result{}, false
	}
	if w.CheckLock() {
		return quote.Result{}, false
	}

	delete(w.forms, h)
	w.r.CloseForm(h)

	res := w.policy.Compute(raw.Parse())
	w.r.AppendMessage(model.RoleAssistant, model.Text(res.Markup()), false)
	w.log.Info().
		Str("billable_kg", quote.Format2(res.BillableWeight)).
		Str("price", quote.Format2(res.Price)).
		Msg("quote computed")

	w.setLocked(true)
	return res, true
}

// =============================================================================
// SIDEBAR
// =============================================================================

// ToggleSidebar inverts sidebar visibility.
func (w *Widget) ToggleSidebar() {
	w.SetSidebarOpen(!w.sidebarOpen)
}

// SetSidebarOpen sets sidebar visibility explicitly.
func (w *Widget) SetSidebarOpen(open bool) {
	if w.closed {
		return
	}
	w.sidebarOpen = open
	w.r.SetSidebarOpen(open)
}

// OverlayClicked force-closes the sidebar.
func (w *Widget) OverlayClicked() {
	w.SetSidebarOpen(false)
}

// SidebarAction runs a sidebar button: close the sidebar, then open the
// quote form (subject to the lock).
func (w *Widget) SidebarAction(name string) {
	if w.closed {
		return
	}
	w.log.Debug().Str("action", name).Msg("sidebar action")
	w.SetSidebarOpen(false)
	w.OpenQuoteForm()
}

// =============================================================================
// DELAYED TASKS
// =============================================================================

func (w *Widget) schedule(d time.Duration, fn func()) {
	if w.closed {
		return
	}
	epoch := w.epoch
	w.taskSeq++
	id := w.taskSeq

	ran := false
	cancel := w.sched.After(d, func() {
		ran = true
		delete(w.pending, id)
		if epoch.Err() != nil {
			return
		}
		fn()
	})
	if !ran {
		w.pending[id] = cancel
	}
}

func (w *Widget) cancelPending() {
	w.endEpoch()
	for id, cancel := range w.pending {
		cancel()
		delete(w.pending, id)
	}
	if n := w.taskSeq; n > 0 {
		w.log.Debug().Uint64("tasks_scheduled", n).Msg("pending updates cancelled")
	}
	w.epoch, w.endEpoch = context.WithCancel(context.Background())
}
