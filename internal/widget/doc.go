// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget implements the SoleBot quote chat component independent of
// any UI toolkit.
//
// A Widget owns the conversation state (lock flags, open forms, sidebar
// visibility) and drives a Renderer port. The terminal UI and the line-mode
// REPL are both Renderers; tests use a recording fake.
//
// # State machine
//
//	UNLOCKED --quote computed--> LOCKED --Reset()--> UNLOCKED
//
// While LOCKED every send or sidebar action is suppressed. The first
// suppressed attempt posts one explanatory message; later ones are silent.
//
// # Delayed updates
//
// Typing placeholders are resolved through a Scheduler. Every task is bound
// to the widget lifecycle: Reset and Close cancel whatever is still pending.
package widget
