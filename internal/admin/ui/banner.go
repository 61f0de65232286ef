package ui

import (
	"github.com/aussiebroadwan/cmsadmin/pkg/runtimeconfig"
	"github.com/charmbracelet/lipgloss"
)

const logo = `  ___ _ __ ___  ___  __ _  __| |_ __ ___ (_)_ __
 / __| '_ ` + "`" + ` _ \/ __|/ _` + "`" + ` |/ _` + "`" + ` | '_ ` + "`" + ` _ \| | '_ \
| (__| | | | | \__ \ (_| | (_| | | | | | | | | | |
 \___|_| |_| |_|___/\__,_|\__,_|_| |_| |_|_|_| |_|`

// Banner is the CLI's landing screen: logo, version and the resolved API
// endpoints.
func (s Styles) Banner(version string, endpoints runtimeconfig.Config) string {
	info := s.KeyValues([][2]string{
		{"version", version},
		{"cms api", endpoints.CMSAPIURL},
		{"platform api", endpoints.PlatformAPIURL},
	})

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(logo),
		"",
		info,
		"",
		s.Subtle.Render("Run `cmsadmin login` to sign in, `cmsadmin --help` for commands."),
	)
}
