// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/solebot/preventivatore/internal/ui/styles"
	"github.com/solebot/preventivatore/internal/widget"
)

// =============================================================================
// COMPOSER COMPONENT
// =============================================================================

// SendLabel is the text of the send control.
const SendLabel = "Invia ➤"

// Composer is the auto-growing prompt box with its send control.
type Composer struct {
	ta       textarea.Model
	grow     widget.Composer
	theme    *styles.Theme
	width    int
	disabled bool

	// SendFocused highlights the send control.
	SendFocused bool
}

// NewComposer creates an empty, one-row composer.
func NewComposer(theme *styles.Theme, grow widget.Composer) *Composer {
	ta := textarea.New()
	ta.Placeholder = "Scrivi un messaggio..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 2000
	ta.MaxHeight = 0 // content is unbounded; resize caps the visible rows
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = theme.Placeholder
	ta.BlurredStyle.Placeholder = theme.Placeholder
	// Enter sends; these insert a line break instead
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.SetHeight(1)

	c := &Composer{ta: ta, grow: grow, theme: theme}
	c.SetWidth(60)
	return c
}

// SetWidth sets the total width including the send control.
func (c *Composer) SetWidth(width int) {
	c.width = width
	inner := width - lipgloss.Width(c.sendView()) - c.theme.Composer.GetHorizontalFrameSize() - 1
	if inner < 8 {
		inner = 8
	}
	c.ta.SetWidth(inner)
	c.resize()
}

// SetLimits replaces the autogrow limits and regrows the box.
func (c *Composer) SetLimits(grow widget.Composer) {
	c.grow = grow
	c.resize()
}

// Focus focuses the text box. A disabled composer cannot take focus.
func (c *Composer) Focus() tea.Cmd {
	if c.disabled {
		return nil
	}
	c.SendFocused = false
	return c.ta.Focus()
}

// Blur removes focus from the text box.
func (c *Composer) Blur() { c.ta.Blur() }

// Focused reports whether the text box has focus.
func (c *Composer) Focused() bool { return c.ta.Focused() }

// SetDisabled disables or enables the text box and the send control.
func (c *Composer) SetDisabled(disabled bool) {
	c.disabled = disabled
	if disabled {
		c.ta.Blur()
		c.SendFocused = false
	}
}

// Disabled reports whether the composer is disabled.
func (c *Composer) Disabled() bool { return c.disabled }

// Value returns the current text.
func (c *Composer) Value() string { return c.ta.Value() }

// SetValue replaces the text and regrows the box.
func (c *Composer) SetValue(s string) {
	c.ta.SetValue(s)
	c.resize()
}

// Reset clears the text and shrinks the box back to one row.
func (c *Composer) Reset() {
	c.ta.Reset()
	c.resize()
}

// Update forwards input to the text box. Input is dropped while disabled.
func (c *Composer) Update(msg tea.Msg) tea.Cmd {
	if c.disabled {
		return nil
	}
	var cmd tea.Cmd
	c.ta, cmd = c.ta.Update(msg)
	c.resize()
	return cmd
}

// ContentRows returns the number of visual rows the text spans at the
// current width, soft wraps included.
func (c *Composer) ContentRows() int {
	w := c.ta.Width()
	if w <= 0 {
		return 1
	}
	rows := 0
	for _, line := range strings.Split(c.ta.Value(), "\n") {
		rows += wrappedRows([]rune(line), w)
	}
	return rows
}

// wrappedRows counts the rows the text box lays line out on. Words move to
// the next row whole; a word wider than the row is split. Every row but the
// last carries its trailing spaces, and a full last row pushes the cursor
// onto a new one.
func wrappedRows(line []rune, width int) int {
	var (
		rows      = 1
		rowWidth  int
		wordWidth int
		lastWidth int
		spaces    int
	)

	for _, r := range line {
		if unicode.IsSpace(r) {
			spaces++
		} else {
			wordWidth += runewidth.RuneWidth(r)
			lastWidth = runewidth.RuneWidth(r)
		}

		if spaces > 0 {
			if rowWidth+wordWidth+spaces > width {
				rows++
				rowWidth = 0
			}
			rowWidth += wordWidth + spaces
			wordWidth, spaces = 0, 0
			continue
		}

		if wordWidth > 0 && wordWidth+lastWidth > width {
			if rowWidth > 0 {
				rows++
			}
			rowWidth = wordWidth
			wordWidth = 0
		}
	}

	if rowWidth+wordWidth+spaces >= width {
		rows++
	}
	return rows
}

// HeightUnits returns the composer height in layout units, capped at the
// configured maximum.
func (c *Composer) HeightUnits() int {
	return c.grow.Height(c.ContentRows())
}

// Rows returns the number of rows the text box shows.
func (c *Composer) Rows() int {
	return c.grow.Rows(c.ContentRows())
}

func (c *Composer) resize() {
	c.ta.SetHeight(c.Rows())
}

// View renders the text box and the send control side by side.
func (c *Composer) View() string {
	box := c.theme.Composer
	switch {
	case c.disabled:
		box = c.theme.ComposerDisabled
	case c.ta.Focused():
		box = c.theme.ComposerFocused
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, box.Render(c.ta.View()), " ", c.sendView())
}

// SendBounds returns the column range [from, to) of the send control
// within the composer row.
func (c *Composer) SendBounds() (from, to int) {
	send := lipgloss.Width(c.sendView())
	return c.width - send, c.width
}

func (c *Composer) sendView() string {
	switch {
	case c.disabled:
		return c.theme.SendButtonDisabled.Render(SendLabel)
	case c.SendFocused:
		return c.theme.SendButtonFocused.Render(SendLabel)
	default:
		return c.theme.SendButton.Render(SendLabel)
	}
}
