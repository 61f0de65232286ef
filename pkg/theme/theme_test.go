package theme

import (
	"regexp"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func requireValidPalette(t *testing.T, p Palette) {
	t.Helper()
	entries := p.Entries()
	require.Len(t, entries, 21)
	for _, e := range entries {
		require.Regexp(t, hexPattern, e.Value, "key %s", e.Key)
	}
}

func TestHexToHSL(t *testing.T) {
	t.Parallel()

	cases := map[string]HSL{
		"#ffffff": {0, 0, 100},
		"#000000": {0, 0, 0},
		"#ff0000": {0, 100, 50},
		"#00ff00": {120, 100, 50},
		"#0000ff": {240, 100, 50},
		"#FFF":    {0, 0, 100},
		"3b82f6":  {217, 91, 60},
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			require.Equal(t, want, HexToHSL(in))
		})
	}

	for _, bad := range []string{"", "#", "#12", "#12345", "#zzzzzz", "blue", "#1234567"} {
		t.Run("malformed "+bad, func(t *testing.T) {
			require.Equal(t, HSL{}, HexToHSL(bad))
		})
	}
}

func TestHSLHexRoundTrip(t *testing.T) {
	t.Parallel()

	require.Equal(t, "#ffffff", HSL{0, 0, 100}.Hex())
	require.Equal(t, "#ff0000", HSL{0, 100, 50}.Hex())
	require.Equal(t, "#ff0000", HSL{360, 100, 50}.Hex())
	require.Equal(t, "#000000", HSL{-30, 150, -5}.Hex())
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("white seed keeps a white background", func(t *testing.T) {
		th := Generate("#ffffff", "Snow")
		require.Equal(t, "Snow", th.Name)
		require.Equal(t, "#ffffff", th.Light.Background)
		require.Equal(t, "#ffffff", th.Light.Primary)
	})

	t.Run("seed is the light primary", func(t *testing.T) {
		th := Generate("#3B82F6", "Ocean")
		require.Equal(t, "#3b82f6", th.Light.Primary)
		require.Equal(t, th.Light.Primary, th.Light.Ring)
	})

	t.Run("dark backgrounds stay dark", func(t *testing.T) {
		for _, seed := range []string{"#ff0000", "#3b82f6", "#ffffff", "#000000", "#22c55e"} {
			th := Generate(seed, "dark")
			require.LessOrEqual(t, strings.ToLower(th.Dark.Background[1:3]), "2f", seed)
			require.LessOrEqual(t, strings.ToLower(th.Dark.Card[1:3]), "2f", seed)
		}
	})

	t.Run("dark seed is relightened for dark mode", func(t *testing.T) {
		th := Generate("#1e3a8a", "Navy")
		require.Greater(t, HexToHSL(th.Dark.Primary).L, HexToHSL("#1e3a8a").L)
	})

	t.Run("foreground contrast follows lightness", func(t *testing.T) {
		light := Generate("#fde047", "Lemon")
		require.Less(t, HexToHSL(light.Light.PrimaryForeground).L, 20)

		dark := Generate("#1e3a8a", "Navy")
		require.Greater(t, HexToHSL(dark.Light.PrimaryForeground).L, 90)
	})

	t.Run("malformed seed does not panic", func(t *testing.T) {
		th := Generate("not-a-colour", "Broken")
		require.Equal(t, "#000000", th.Light.Primary)
		requireValidPalette(t, th.Light)
		requireValidPalette(t, th.Dark)
	})

	t.Run("every value is a hex colour", func(t *testing.T) {
		faker := gofakeit.New(42)
		for range 200 {
			seed := faker.HexColor()
			th := Generate(seed, faker.Color())
			requireValidPalette(t, th.Light)
			requireValidPalette(t, th.Dark)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		require.Equal(t, Generate("#7c3aed", "x"), Generate("#7c3aed", "x"))
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	th := Generate("#7c3aed", "Violet")

	t.Run("light", func(t *testing.T) {
		styles := StyleMap{}
		mode := Apply(styles, th, ModeLight, nil)
		require.Equal(t, ModeLight, mode)
		require.Len(t, styles, 21)
		require.Equal(t, th.Light.Background, styles["--background"])
		require.Equal(t, th.Light.SidebarForeground, styles["--sidebar-foreground"])
	})

	t.Run("system follows preference", func(t *testing.T) {
		styles := StyleMap{}
		mode := Apply(styles, th, ModeSystem, func() bool { return true })
		require.Equal(t, ModeDark, mode)
		require.Equal(t, th.Dark.Background, styles["--background"])

		mode = Apply(styles, th, ModeSystem, nil)
		require.Equal(t, ModeLight, mode)
		require.Equal(t, th.Light.Background, styles["--background"])
	})

	t.Run("parse mode", func(t *testing.T) {
		require.Equal(t, ModeDark, ParseMode(" DARK "))
		require.Equal(t, ModeLight, ParseMode("light"))
		require.Equal(t, ModeSystem, ParseMode("auto"))
	})
}

func TestExport(t *testing.T) {
	t.Parallel()

	th := Generate("#0ea5e9", "Sky")

	t.Run("css", func(t *testing.T) {
		css := ExportCSS(th)
		require.True(t, strings.HasPrefix(css, "/* Theme: Sky */\n:root {\n"))
		require.Contains(t, css, ".dark {\n")
		require.Contains(t, css, "  --card-foreground: "+th.Light.CardForeground+";\n")
		require.Contains(t, css, "  --destructive-foreground: "+th.Dark.DestructiveForeground+";\n")
		require.NotContains(t, css, "cardForeground")
		require.Equal(t, 42, strings.Count(css, "--"))
	})

	t.Run("yaml round trip", func(t *testing.T) {
		out, err := ExportYAML(th)
		require.NoError(t, err)
		require.Contains(t, string(out), "cardForeground:")

		back, err := ImportYAML(out)
		require.NoError(t, err)
		require.Equal(t, th, back)
	})

	t.Run("kebab", func(t *testing.T) {
		require.Equal(t, "--background", PropertyName("background"))
		require.Equal(t, "--primary-foreground", PropertyName("primaryForeground"))
	})
}
