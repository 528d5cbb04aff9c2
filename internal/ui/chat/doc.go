// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the full-screen terminal surface of the quote widget.

The package binds a widget.Widget to the Bubble Tea runtime. The widget owns
the lock state and the conversation rules; this package only draws and routes
input.

# Key Components

## Surface (surface.go)

surface implements widget.Renderer over a model.Conversation. Render calls
mutate the surface; the Model applies them to its components after every
update.

## Scheduler (scheduler.go)

teaScheduler implements widget.Scheduler with tea.Tick. Each task becomes a
taskDueMsg keyed by ID; cancelled IDs are dropped when their tick arrives.

## Model (model.go, update.go, view.go)

The Model lays out the header, the message log, the lock banner, the
composer and the status bar. The sidebar is drawn over the log with a
backdrop that closes it on click.

# Usage

	m := chat.New(theme, chat.WithConfig(cfg), chat.WithLogger(log))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
*/
package chat
