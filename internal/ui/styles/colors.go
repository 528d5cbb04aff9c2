// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Sun - Brand color, assistant label, focus ring
var Sun = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// SunDeep - Darker sun for backgrounds
var SunDeep = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#78350F"}

// Sky - User highlights, links
var Sky = lipgloss.AdaptiveColor{Light: "#0284C7", Dark: "#38BDF8"}

// Emerald - Success states, the computed total
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Errors and the lock notice
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// RoseDeep - Darker rose for the lock banner background
var RoseDeep = lipgloss.AdaptiveColor{Light: "#FFE4E6", Dark: "#4C0519"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1C1917"}

// SurfaceDim - Header, status bar and sidebar background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F4", Dark: "#0C0A09"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E7E5E4", Dark: "#44403C"}

// OverlayDim - The dimmed backdrop behind the open sidebar
var OverlayDim = lipgloss.AdaptiveColor{Light: "#D6D3D1", Dark: "#292524"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1C1917", Dark: "#F5F5F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#57534E", Dark: "#A8A29E"}

// TextMuted - Hints, placeholders, disabled controls
var TextMuted = lipgloss.AdaptiveColor{Light: "#A8A29E", Dark: "#57534E"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1C1917"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User message bubble - Sky tones
var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#E0F2FE", Dark: "#0C4A6E"}
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#075985", Dark: "#E0F2FE"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#38BDF8", Dark: "#0EA5E9"}

// Assistant message bubble - Warm sand tones
var AssistantBubbleBg = lipgloss.AdaptiveColor{Light: "#FFFBEB", Dark: "#292524"}
var AssistantBubbleFg = lipgloss.AdaptiveColor{Light: "#44403C", Dark: "#F5F5F4"}
var AssistantBubbleBorder = lipgloss.AdaptiveColor{Light: "#FCD34D", Dark: "#B45309"}

// Focus ring color
var FocusRing = Sun
