// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual UI components for the preventivatore TUI.

Components are plain structs with View methods; the ones holding bubbles
models (Composer, QuoteFormInput) also have Update methods. None of them know
about the lock rules: the chat model tells them when they are disabled.

# Components

  - MessageBubble: one chat bubble, with the assistant label and typing dots
  - QuoteFormInput: the four-field inline form with its "Calcola" button
  - Sidebar: the action list shown when the hamburger is open
  - LockBanner: the persistent notice with the reset action
  - Composer: the auto-growing prompt box and send control
  - Header, StatusBar: top and bottom chrome
  - Markdown: glamour rendering of assistant markup
*/
package components
