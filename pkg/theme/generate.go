package theme

// Lightness above which text on a surface is drawn near-black.
const foregroundThreshold = 55

// Palette is one colour scheme. Every value is a "#rrggbb" string.
type Palette struct {
	Background            string `json:"background" yaml:"background"`
	Foreground            string `json:"foreground" yaml:"foreground"`
	Card                  string `json:"card" yaml:"card"`
	CardForeground        string `json:"cardForeground" yaml:"cardForeground"`
	Popover               string `json:"popover" yaml:"popover"`
	PopoverForeground     string `json:"popoverForeground" yaml:"popoverForeground"`
	Primary               string `json:"primary" yaml:"primary"`
	PrimaryForeground     string `json:"primaryForeground" yaml:"primaryForeground"`
	Secondary             string `json:"secondary" yaml:"secondary"`
	SecondaryForeground   string `json:"secondaryForeground" yaml:"secondaryForeground"`
	Muted                 string `json:"muted" yaml:"muted"`
	MutedForeground       string `json:"mutedForeground" yaml:"mutedForeground"`
	Accent                string `json:"accent" yaml:"accent"`
	AccentForeground      string `json:"accentForeground" yaml:"accentForeground"`
	Destructive           string `json:"destructive" yaml:"destructive"`
	DestructiveForeground string `json:"destructiveForeground" yaml:"destructiveForeground"`
	Border                string `json:"border" yaml:"border"`
	Input                 string `json:"input" yaml:"input"`
	Ring                  string `json:"ring" yaml:"ring"`
	Sidebar               string `json:"sidebar" yaml:"sidebar"`
	SidebarForeground     string `json:"sidebarForeground" yaml:"sidebarForeground"`
}

// Theme is a named light/dark palette pair.
type Theme struct {
	Name  string  `json:"name" yaml:"name"`
	Seed  string  `json:"seed" yaml:"seed"`
	Light Palette `json:"light" yaml:"light"`
	Dark  Palette `json:"dark" yaml:"dark"`
}

// Entry is a single palette key and its colour.
type Entry struct {
	Key   string
	Value string
}

// Entries returns the palette in its canonical order, keyed by camelCase
// name.
func (p Palette) Entries() []Entry {
	return []Entry{
		{"background", p.Background},
		{"foreground", p.Foreground},
		{"card", p.Card},
		{"cardForeground", p.CardForeground},
		{"popover", p.Popover},
		{"popoverForeground", p.PopoverForeground},
		{"primary", p.Primary},
		{"primaryForeground", p.PrimaryForeground},
		{"secondary", p.Secondary},
		{"secondaryForeground", p.SecondaryForeground},
		{"muted", p.Muted},
		{"mutedForeground", p.MutedForeground},
		{"accent", p.Accent},
		{"accentForeground", p.AccentForeground},
		{"destructive", p.Destructive},
		{"destructiveForeground", p.DestructiveForeground},
		{"border", p.Border},
		{"input", p.Input},
		{"ring", p.Ring},
		{"sidebar", p.Sidebar},
		{"sidebarForeground", p.SidebarForeground},
	}
}

// Generate derives a full light and dark palette from one seed colour.
// A malformed seed is treated as black.
func Generate(seedHex, name string) Theme {
	seed := HexToHSL(seedHex)

	primary, ok := NormalizeHex(seedHex)
	if !ok {
		primary = seed.Hex()
	}

	return Theme{
		Name:  name,
		Seed:  primary,
		Light: lightPalette(seed, primary),
		Dark:  darkPalette(seed),
	}
}

func lightPalette(seed HSL, primary string) Palette {
	h, s := seed.H, seed.S

	surface := HSL{h, scaled(s, 20, 20), 100}
	text := HSL{h, scaled(s, 20, 20), 9}
	secondary := HSL{h, scaled(s, 50, 40), 92}
	muted := HSL{h, scaled(s, 30, 25), 95}
	accent := HSL{h + 30, scaled(s, 60, 60), 90}
	border := HSL{h, scaled(s, 30, 30), 88}
	sidebar := HSL{h, scaled(s, 25, 25), 97}
	destructive := HSL{0, 72, 51}

	return Palette{
		Background:            surface.Hex(),
		Foreground:            text.Hex(),
		Card:                  surface.Hex(),
		CardForeground:        text.Hex(),
		Popover:               surface.Hex(),
		PopoverForeground:     text.Hex(),
		Primary:               primary,
		PrimaryForeground:     foregroundFor(seed),
		Secondary:             secondary.Hex(),
		SecondaryForeground:   foregroundFor(secondary),
		Muted:                 muted.Hex(),
		MutedForeground:       HSL{h, scaled(s, 20, 15), 45}.Hex(),
		Accent:                accent.Hex(),
		AccentForeground:      foregroundFor(accent),
		Destructive:           destructive.Hex(),
		DestructiveForeground: foregroundFor(destructive),
		Border:                border.Hex(),
		Input:                 border.Hex(),
		Ring:                  primary,
		Sidebar:               sidebar.Hex(),
		SidebarForeground:     text.Hex(),
	}
}

func darkPalette(seed HSL) Palette {
	h, s := seed.H, seed.S

	primary := seed
	if primary.L < 45 {
		primary.L = 65
	}

	// Dark surfaces take a little of the seed's saturation, never more than 25%.
	ds := scaled(s, 40, 25)

	background := HSL{h, ds, 8}
	card := HSL{h, ds, 11}
	secondary := HSL{h, ds, 18}
	muted := HSL{h, ds, 16}
	accent := HSL{h + 30, ds, 22}
	border := HSL{h, ds, 22}
	sidebar := HSL{h, ds, 10}
	text := HSL{h, scaled(s, 10, 10), 96}
	destructive := HSL{0, 63, 45}

	return Palette{
		Background:            background.Hex(),
		Foreground:            text.Hex(),
		Card:                  card.Hex(),
		CardForeground:        text.Hex(),
		Popover:               card.Hex(),
		PopoverForeground:     text.Hex(),
		Primary:               primary.Hex(),
		PrimaryForeground:     foregroundFor(primary),
		Secondary:             secondary.Hex(),
		SecondaryForeground:   foregroundFor(secondary),
		Muted:                 muted.Hex(),
		MutedForeground:       HSL{h, scaled(s, 20, 15), 65}.Hex(),
		Accent:                accent.Hex(),
		AccentForeground:      foregroundFor(accent),
		Destructive:           destructive.Hex(),
		DestructiveForeground: foregroundFor(destructive),
		Border:                border.Hex(),
		Input:                 border.Hex(),
		Ring:                  primary.Hex(),
		Sidebar:               sidebar.Hex(),
		SidebarForeground:     text.Hex(),
	}
}

// foregroundFor picks near-black text for light surfaces and near-white
// text for dark ones.
func foregroundFor(surface HSL) string {
	if surface.L > foregroundThreshold {
		return HSL{surface.H, 10, 9}.Hex()
	}
	return HSL{surface.H, 10, 98}.Hex()
}
