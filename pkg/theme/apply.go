package theme

import (
	"fmt"
	"strings"
	"unicode"
)

// Mode selects which palette is applied.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// ParseMode maps user input to a Mode, defaulting to ModeSystem.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight:
		return ModeLight
	case ModeDark:
		return ModeDark
	default:
		return ModeSystem
	}
}

// PropertySetter receives CSS custom properties, e.g. a document root style
// or a terminal renderer's colour table.
type PropertySetter interface {
	SetProperty(name, value string)
}

// StyleMap is an in-memory PropertySetter.
type StyleMap map[string]string

func (m StyleMap) SetProperty(name, value string) { m[name] = value }

// Resolve turns ModeSystem into light or dark using prefersDark. A nil
// prefersDark resolves to light.
func Resolve(mode Mode, prefersDark func() bool) Mode {
	switch mode {
	case ModeLight, ModeDark:
		return mode
	}
	if prefersDark != nil && prefersDark() {
		return ModeDark
	}
	return ModeLight
}

// Palette returns the palette for a resolved mode.
func (t Theme) Palette(mode Mode) Palette {
	if mode == ModeDark {
		return t.Dark
	}
	return t.Light
}

// Apply writes the 21 --custom-properties of the palette selected by mode to
// target and returns the mode that was actually applied.
func Apply(target PropertySetter, t Theme, mode Mode, prefersDark func() bool) Mode {
	resolved := Resolve(mode, prefersDark)
	for _, e := range t.Palette(resolved).Entries() {
		target.SetProperty(PropertyName(e.Key), e.Value)
	}
	return resolved
}

// PropertyName converts a camelCase palette key to its CSS custom property
// name, e.g. "cardForeground" -> "--card-foreground".
func PropertyName(key string) string {
	return "--" + kebab(key)
}

func kebab(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %s", PropertyName(e.Key), e.Value)
}
