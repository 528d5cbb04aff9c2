// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"sort"
	"time"
)

// =============================================================================
// SCHEDULER PORT
// =============================================================================

// Scheduler runs fn on the UI goroutine once d has elapsed. The returned
// function cancels the task if it has not run yet; calling it twice is safe.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// =============================================================================
// MANUAL SCHEDULER
// =============================================================================

// ManualScheduler is a deterministic Scheduler driven by Advance. It backs
// the line-mode REPL (through Drain) and the tests. Not safe for concurrent use.
type ManualScheduler struct {
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

// NewManualScheduler creates a scheduler with its clock at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// After implements Scheduler.
func (s *ManualScheduler) After(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTask{due: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	return func() { t.cancelled = true }
}

// Pending returns the number of tasks that have neither run nor been cancelled.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Now returns the scheduler clock.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Advance moves the clock forward by d and runs every task that became due,
// including tasks scheduled by tasks run during this call. It returns the
// number of tasks executed.
func (s *ManualScheduler) Advance(d time.Duration) int {
	target := s.now + d
	ran := 0
	for {
		t := s.popDue(target)
		if t == nil {
			break
		}
		if t.due > s.now {
			s.now = t.due
		}
		t.fn()
		ran++
	}
	s.now = target
	return ran
}

// Drain runs all pending tasks in due order. Before each task it calls sleep
// with the time left until the task is due; sleep may be nil.
func (s *ManualScheduler) Drain(sleep func(time.Duration)) int {
	ran := 0
	for {
		next := s.next()
		if next == nil {
			return ran
		}
		if wait := next.due - s.now; wait > 0 && sleep != nil {
			sleep(wait)
		}
		ran += s.Advance(next.due - s.now)
	}
}

func (s *ManualScheduler) next() *manualTask {
	for _, t := range s.tasks {
		if !t.cancelled {
			return t
		}
	}
	return nil
}

// popDue removes and returns the earliest live task due at or before target.
func (s *ManualScheduler) popDue(target time.Duration) *manualTask {
	for i, t := range s.tasks {
		if t.cancelled {
			continue
		}
		if t.due > target {
			return nil
		}
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
		return t
	}
	s.compact()
	return nil
}

// compact drops cancelled tasks.
func (s *ManualScheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	s.tasks = live
}
