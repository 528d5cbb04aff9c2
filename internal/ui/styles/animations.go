// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// TypingDots - The three-dot animation shown in typing placeholders
var TypingDots = SpinnerConfig{
	Frames: []string{"●∙∙", "∙●∙", "∙∙●", "∙●∙"},
	FPS:    6,
}

// ASCIIDots - TypingDots for terminals without unicode
var ASCIIDots = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// Spinner converts the config into a bubbles spinner definition.
func (s SpinnerConfig) Spinner() spinner.Spinner {
	return spinner.Spinner{Frames: s.Frames, FPS: s.Duration()}
}

// Frame returns the frame to show after elapsed time.
func (s SpinnerConfig) Frame(elapsed time.Duration) string {
	if len(s.Frames) == 0 {
		return ""
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return s.Frames[int(elapsed/s.Duration())%len(s.Frames)]
}
