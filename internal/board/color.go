package board

import (
	"math"
	"strconv"
	"strings"
)

// Colors used for label badge rendering.
const (
	// DefaultLabelColor is the badge background for labels without a color.
	DefaultLabelColor = "#6b7280"
	// DarkText is used on light backgrounds.
	DarkText = "#1f2937"
	// LightText is used on dark backgrounds.
	LightText = "#ffffff"
)

// IsLightColor reports whether dark text should be used on the given
// background color. The input is a 6-hex-digit color, with or without a
// leading '#'.
//
// Luminance is the ITU-R 601 weighted sum (0.299R + 0.587G + 0.114B)/255
// with a strict > 0.5 threshold. Malformed input (short string, non-hex
// digits) produces a NaN luminance, and NaN > 0.5 is false: unparseable
// colors are treated as dark backgrounds. That fallback is load-bearing
// for badge text contrast and must not be "fixed" into an error.
func IsLightColor(hex string) bool {
	hex = strings.TrimPrefix(hex, "#")
	r := channelAt(hex, 0)
	g := channelAt(hex, 2)
	b := channelAt(hex, 4)
	luminance := (0.299*r + 0.587*g + 0.114*b) / 255
	return luminance > 0.5
}

// BadgeTextColor returns the text color to render on the given badge
// background.
func BadgeTextColor(background string) string {
	if IsLightColor(background) {
		return DarkText
	}
	return LightText
}

// channelAt parses the 2-digit hex channel at the given offset, or NaN
// when the string is too short or not hex.
func channelAt(hex string, offset int) float64 {
	if len(hex) < offset+2 {
		return math.NaN()
	}
	v, err := strconv.ParseUint(hex[offset:offset+2], 16, 16)
	if err != nil {
		return math.NaN()
	}
	return float64(v)
}
