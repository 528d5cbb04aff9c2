// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// TEA SCHEDULER
// =============================================================================

// taskDueMsg fires when the delay of a scheduled task has elapsed.
type taskDueMsg struct {
	id uint64
}

// teaScheduler implements widget.Scheduler on top of tea.Tick. Tasks run in
// Update, so widget code never leaves the UI loop. Not safe for concurrent use.
type teaScheduler struct {
	seq    uint64
	tasks  map[uint64]func()
	queued []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{tasks: make(map[uint64]func())}
}

// After implements widget.Scheduler. The tick command is queued until the
// next drain.
func (s *teaScheduler) After(d time.Duration, fn func()) func() {
	s.seq++
	id := s.seq
	s.tasks[id] = fn
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return taskDueMsg{id: id}
	}))
	return func() { delete(s.tasks, id) }
}

// run executes the task with the given ID. Cancelled or already-run IDs
// report false.
func (s *teaScheduler) run(id uint64) bool {
	fn, ok := s.tasks[id]
	if !ok {
		return false
	}
	delete(s.tasks, id)
	fn()
	return true
}

// pending returns the number of live tasks.
func (s *teaScheduler) pending() int {
	return len(s.tasks)
}

// drain returns the tick commands queued since the last drain.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
