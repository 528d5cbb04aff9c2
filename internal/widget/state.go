// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

// LockState is the widget lock state.
type LockState int

const (
	StateUnlocked LockState = iota // accepting input
	StateLocked                    // quote computed, waiting for reset
)

// String returns the state name.
func (s LockState) String() string {
	switch s {
	case StateUnlocked:
		return "UNLOCKED"
	case StateLocked:
		return "LOCKED"
	default:
		return "UNKNOWN"
	}
}

// ConversationState holds the lock flags.
// lockNotified is only ever true while locked is true.
type ConversationState struct {
	locked       bool
	lockNotified bool
}

// State returns the lock state.
func (c ConversationState) State() LockState {
	if c.locked {
		return StateLocked
	}
	return StateUnlocked
}

// IsLocked reports whether the conversation is locked.
func (c ConversationState) IsLocked() bool {
	return c.locked
}

// LockNotified reports whether the lock notice has been shown.
func (c ConversationState) LockNotified() bool {
	return c.lockNotified
}

// setLocked changes the lock state; the notice flag always starts over.
func (c *ConversationState) setLocked(lock bool) {
	c.locked = lock
	c.lockNotified = false
}

// suppress reports whether an action must be blocked, and whether this is
// the first blocked attempt since locking (the one that gets a notice).
func (c *ConversationState) suppress() (blocked, notify bool) {
	if !c.locked {
		return false, false
	}
	if c.lockNotified {
		return true, false
	}
	c.lockNotified = true
	return true, true
}
