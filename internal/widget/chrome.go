// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

// Composer autogrow limits, in height units. A terminal row counts as
// DefaultLineHeight units.
const (
	DefaultLineHeight = 20
	DefaultMaxHeight  = 180
)

// Composer computes the height of the auto-growing prompt box.
type Composer struct {
	LineHeight int
	MaxHeight  int
}

// DefaultComposer returns the stock composer limits.
func DefaultComposer() Composer {
	return Composer{LineHeight: DefaultLineHeight, MaxHeight: DefaultMaxHeight}
}

// Height returns the height in units for content spanning rows lines:
// the content height clamped to MaxHeight. Zero rows still take one line.
func (c Composer) Height(rows int) int {
	c = c.normalized()
	if rows < 1 {
		rows = 1
	}
	h := rows * c.LineHeight
	if h > c.MaxHeight {
		h = c.MaxHeight
	}
	return h
}

// Rows returns the visible row count for content spanning rows lines.
func (c Composer) Rows(rows int) int {
	c = c.normalized()
	return c.Height(rows) / c.LineHeight
}

func (c Composer) normalized() Composer {
	if c.LineHeight <= 0 {
		c.LineHeight = DefaultLineHeight
	}
	if c.MaxHeight <= 0 {
		c.MaxHeight = DefaultMaxHeight
	}
	if c.MaxHeight < c.LineHeight {
		c.MaxHeight = c.LineHeight
	}
	return c
}
