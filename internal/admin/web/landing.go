package web

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/cmsadmin/pkg/httpx"
	"github.com/aussiebroadwan/cmsadmin/pkg/runtimeconfig"
	"github.com/aussiebroadwan/cmsadmin/pkg/theme"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var landingTemplate = template.Must(template.ParseFS(templateFS, "templates/landing.html.tmpl"))

type landingData struct {
	Title         string
	Version       string
	Endpoints     runtimeconfig.Config
	RuntimeScript template.HTML
	ThemeCSS      template.CSS
	ThemeName     string
	Swatches      []theme.Entry
}

// LandingHandler serves the console landing page with the runtime config
// injected and the theme stylesheet inlined.
type LandingHandler struct {
	Version   string
	Endpoints runtimeconfig.Config
	Theme     theme.Theme
	Logger    *slog.Logger
}

// ServeHTTP godoc
//
//	@Summary		Landing page
//	@Description	HTML landing page. Publishes window.__RUNTIME_CONFIG__ for the console.
//	@Tags			Pages
//	@Produce		html
//	@Success		200	{string}	string
//	@Router			/ [get].
func (h *LandingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	script, err := runtimeconfig.Script(h.Endpoints)
	if err != nil {
		h.Logger.Error("failed to render runtime config", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
		return
	}

	data := landingData{
		Title:         "CMS Admin",
		Version:       h.Version,
		Endpoints:     h.Endpoints,
		RuntimeScript: script,
		ThemeCSS:      template.CSS(theme.ExportCSS(h.Theme)), // #nosec G203 - generated from validated hex values
		ThemeName:     h.Theme.Name,
		Swatches:      h.Theme.Light.Entries(),
	}

	// Render into a buffer so a template error never sends a half page
	var buf bytes.Buffer
	if err := landingTemplate.Execute(&buf, data); err != nil {
		h.Logger.Error("failed to render landing page", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "")
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
