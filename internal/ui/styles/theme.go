// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal background and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark bool

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header          lipgloss.Style
	HeaderTitle     lipgloss.Style
	Hamburger       lipgloss.Style
	HamburgerActive lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	AssistantLabel  lipgloss.Style
	TypingDots      lipgloss.Style

	// ==========================================================================
	// QUOTE FORM STYLES
	// ==========================================================================

	FormField          lipgloss.Style
	FormFieldFocused   lipgloss.Style
	FormButton         lipgloss.Style
	FormButtonFocused  lipgloss.Style
	FormButtonDisabled lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar             lipgloss.Style
	SidebarTitle        lipgloss.Style
	SidebarItem         lipgloss.Style
	SidebarItemFocused  lipgloss.Style
	SidebarItemDisabled lipgloss.Style
	Backdrop            lipgloss.Style

	// ==========================================================================
	// LOCK BANNER STYLES
	// ==========================================================================

	Banner              lipgloss.Style
	BannerNote          lipgloss.Style
	BannerButton        lipgloss.Style
	BannerButtonFocused lipgloss.Style

	// ==========================================================================
	// COMPOSER STYLES
	// ==========================================================================

	Composer           lipgloss.Style
	ComposerFocused    lipgloss.Style
	ComposerDisabled   lipgloss.Style
	SendButton         lipgloss.Style
	SendButtonFocused  lipgloss.Style
	SendButtonDisabled lipgloss.Style
	Placeholder        lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a new theme with all styles configured. mode is "dark",
// "light" or "auto"; auto asks the terminal for its background.
func NewTheme(mode string) *Theme {
	var isDark bool
	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{IsDark: isDark}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextPrimary).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Sun)

	t.Hamburger = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.HamburgerActive = lipgloss.NewStyle().
		Foreground(Sun).
		Bold(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1)

	t.AssistantLabel = lipgloss.NewStyle().
		Foreground(Sun).
		Bold(true)

	t.TypingDots = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Quote form
	t.FormField = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.FormFieldFocused = t.FormField.
		BorderForeground(FocusRing)

	t.FormButton = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Sun).
		Bold(true).
		Padding(0, 2)

	t.FormButtonFocused = t.FormButton.
		Underline(true)

	t.FormButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 2)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		Padding(1, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Foreground(Sun).
		Bold(true).
		MarginBottom(1)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.SidebarItemFocused = t.SidebarItem.
		Foreground(TextInverse).
		Background(Sun)

	t.SidebarItemDisabled = t.SidebarItem.
		Foreground(TextMuted)

	t.Backdrop = lipgloss.NewStyle().
		Foreground(OverlayDim).
		Faint(true)

	// Lock banner
	t.Banner = lipgloss.NewStyle().
		Background(RoseDeep).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(Rose).
		Padding(0, 1)

	t.BannerNote = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.BannerButton = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)

	t.BannerButtonFocused = t.BannerButton.
		Foreground(TextInverse).
		Background(Rose)

	// Composer
	t.Composer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay)

	t.ComposerFocused = t.Composer.
		BorderForeground(FocusRing)

	t.ComposerDisabled = t.Composer.
		BorderForeground(OverlayDim).
		Foreground(TextMuted)

	t.SendButton = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Sky).
		Bold(true).
		Padding(0, 1)

	t.SendButtonFocused = t.SendButton.
		Underline(true)

	t.SendButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 1)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Sun).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)

// BubbleWidth returns the maximum bubble width for the current layout.
// Bubbles take most of a narrow terminal and about 70% of a wide one.
func (t *Theme) BubbleWidth() int {
	switch t.GetLayoutMode() {
	case LayoutNarrow:
		return max(t.Width-2, 10)
	case LayoutMedium:
		return t.Width * 4 / 5
	default:
		return t.Width * 7 / 10
	}
}
