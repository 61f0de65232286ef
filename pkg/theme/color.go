package theme

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL is a colour in integer degrees and percentages, the precision the
// palette maths works in.
type HSL struct {
	H int `json:"h" yaml:"h"` // 0-359
	S int `json:"s" yaml:"s"` // 0-100
	L int `json:"l" yaml:"l"` // 0-100
}

// HexToHSL converts "#rrggbb" or "#rgb" (leading # optional) to HSL.
// Malformed input yields the zero HSL.
func HexToHSL(hex string) HSL {
	c, ok := parseHex(hex)
	if !ok {
		return HSL{}
	}

	h, s, l := c.Hsl()
	return HSL{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// Hex renders the colour as lowercase "#rrggbb". Out of range components are
// wrapped (hue) or clamped (saturation, lightness).
func (c HSL) Hex() string {
	h := ((c.H % 360) + 360) % 360
	s := clamp(c.S, 0, 100)
	l := clamp(c.L, 0, 100)
	return colorful.Hsl(float64(h), float64(s)/100, float64(l)/100).Clamped().Hex()
}

// NormalizeHex returns the canonical lowercase "#rrggbb" form of hex, or
// ok=false when it does not parse.
func NormalizeHex(hex string) (string, bool) {
	c, ok := parseHex(hex)
	if !ok {
		return "", false
	}
	return c.Clamped().Hex(), true
}

func parseHex(hex string) (colorful.Color, bool) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return colorful.Color{}, false
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return colorful.Color{}, false
	}

	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// scaled returns pct percent of v, rounded and capped at limit.
func scaled(v, pct, limit int) int {
	return min(int(math.Round(float64(v)*float64(pct)/100)), limit)
}
