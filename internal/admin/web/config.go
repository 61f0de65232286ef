package web

import (
	"net/http"
	"unicode"

	"github.com/aussiebroadwan/cmsadmin/internal/admin/worker"
	"github.com/aussiebroadwan/cmsadmin/pkg/httpx"
	"github.com/aussiebroadwan/cmsadmin/pkg/runtimeconfig"
	"github.com/aussiebroadwan/cmsadmin/pkg/theme"
)

// RuntimeConfigHandler godoc
//
//	@Summary		Runtime configuration
//	@Description	The API base URLs the console should talk to, resolved when the server started.
//	@Tags			Config
//	@Produce		json
//	@Success		200	{object}	runtimeconfig.Config
//	@Router			/api/runtime-config [get].
func RuntimeConfigHandler(cfg runtimeconfig.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, cfg)
	}
}

// ThemeCSSHandler godoc
//
//	@Summary		Theme stylesheet
//	@Description	CSS custom properties for the light (:root) and dark (.dark) palettes.
//	@Description	With no seed the server's configured theme is returned.
//	@Tags			Config
//	@Produce		text/css
//	@Param			seed	query		string	false	"seed colour, e.g. #6d28d9"
//	@Param			name	query		string	false	"theme name"
//	@Success		200		{string}	string
//	@Failure		400		{object}	httpx.ErrorBody
//	@Router			/api/theme.css [get].
func ThemeCSSHandler(fallback theme.Theme) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		th := fallback

		if seed := r.URL.Query().Get("seed"); seed != "" {
			if _, ok := theme.NormalizeHex(seed); !ok {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "seed must be a #rgb or #rrggbb colour")
				return
			}
			name := r.URL.Query().Get("name")
			if name == "" {
				name = "custom"
			}
			if !validThemeName(name) {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "name may only contain letters, digits, spaces, - and _")
				return
			}
			th = theme.Generate(seed, name)
		}

		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=300")
		_, _ = w.Write([]byte(theme.ExportCSS(th)))
	}
}

// InventoryStatusHandler godoc
//
//	@Summary		Inventory sync status
//	@Description	Outcome of the most recent background inventory sync.
//	@Tags			Inventory
//	@Produce		json
//	@Success		200	{object}	worker.SyncStatus
//	@Router			/api/inventory/status [get].
func InventoryStatusHandler(status func() worker.SyncStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, status())
	}
}

// Theme names end up inside a CSS comment.
func validThemeName(name string) bool {
	if len(name) > 64 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
