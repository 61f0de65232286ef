package theme

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExportCSS renders both palettes as a stylesheet: light under :root and
// dark under .dark.
func ExportCSS(t Theme) string {
	var b strings.Builder

	if t.Name != "" {
		fmt.Fprintf(&b, "/* Theme: %s */\n", t.Name)
	}

	writeBlock(&b, ":root", t.Light)
	b.WriteString("\n")
	writeBlock(&b, ".dark", t.Dark)

	return b.String()
}

func writeBlock(b *strings.Builder, selector string, p Palette) {
	fmt.Fprintf(b, "%s {\n", selector)
	for _, e := range p.Entries() {
		fmt.Fprintf(b, "  %s;\n", e)
	}
	b.WriteString("}\n")
}

// ExportYAML serialises the theme for storing alongside site config.
func ExportYAML(t Theme) ([]byte, error) {
	out, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode theme: %w", err)
	}
	return out, nil
}

// ImportYAML reads a theme previously written by ExportYAML.
func ImportYAML(data []byte) (Theme, error) {
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("failed to decode theme: %w", err)
	}
	return t, nil
}
