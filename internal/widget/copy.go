// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import "time"

// Default delays for the simulated assistant latency.
const (
	DefaultFormDelay  = 300 * time.Millisecond
	DefaultReplyDelay = 500 * time.Millisecond
)

// Copy is the fixed text the widget posts.
type Copy struct {
	LockNotice string // posted on the first blocked attempt and shown in the banner
	ResetLabel string // banner reset action
	ResetDone  string // posted after a reset
	FormIntro  string // heading above the quote form
	Processing string // stub reply to free-text prompts
}

// DefaultCopy returns the stock Italian copy.
func DefaultCopy() Copy {
	return Copy{
		LockNotice: "❌ Se non resetti, non posso andare avanti.",
		ResetLabel: "🔄 Reset preventivo",
		ResetDone:  "✅ Chat azzerata. Puoi ripartire con un nuovo preventivo.",
		FormIntro:  "Ok! Compila i dati per il calcolo:",
		Processing: "Sto elaborando...",
	}
}
