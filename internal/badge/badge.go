// Package badge renders task labels as compact colored units for
// terminal display.
package badge

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/randalmurphal/boardctx/internal/board"
)

// Size selects the badge width variant.
type Size string

const (
	SizeSmall   Size = "small"
	SizeDefault Size = "default"
)

// DefaultMaxDisplay caps how many badges RenderList shows before
// collapsing the remainder into a "+N" marker.
const DefaultMaxDisplay = 3

// Name truncation widths per size variant. Cosmetic; badges just need
// to stay bounded so a board row doesn't wrap.
const (
	smallNameWidth   = 10
	defaultNameWidth = 18
)

// Badge is a rendered label. Text is the styled, possibly truncated
// rendering; Title always carries the full label name, even when the
// visible text was cut.
type Badge struct {
	Text  string
	Title string
}

// overflowStyle renders the "+N" marker for collapsed labels.
var overflowStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("241")).
	Padding(0, 1)

// Render renders a single label badge. Labels without a color get the
// neutral gray default; text color is chosen by perceived luminance of
// the background.
func Render(label board.Label, size Size) Badge {
	background := label.Color
	if background == "" {
		background = board.DefaultLabelColor
	}

	style := lipgloss.NewStyle().
		Background(lipgloss.Color(background)).
		Foreground(lipgloss.Color(board.BadgeTextColor(background))).
		Padding(0, 1)

	return Badge{
		Text:  style.Render(truncate(label.Name, nameWidth(size))),
		Title: label.Name,
	}
}

// RenderList renders up to maxDisplay badges in input order, followed
// by a "+N" marker when more labels exist. An empty label slice renders
// nothing. maxDisplay <= 0 falls back to DefaultMaxDisplay.
func RenderList(labels []board.Label, maxDisplay int, size Size) string {
	if len(labels) == 0 {
		return ""
	}
	if maxDisplay <= 0 {
		maxDisplay = DefaultMaxDisplay
	}

	shown := labels
	if len(shown) > maxDisplay {
		shown = shown[:maxDisplay]
	}

	parts := make([]string, 0, len(shown)+1)
	for _, l := range shown {
		parts = append(parts, Render(l, size).Text)
	}
	if hidden := len(labels) - maxDisplay; hidden > 0 {
		parts = append(parts, overflowStyle.Render("+"+strconv.Itoa(hidden)))
	}
	return strings.Join(parts, " ")
}

func nameWidth(size Size) int {
	if size == SizeSmall {
		return smallNameWidth
	}
	return defaultNameWidth
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
