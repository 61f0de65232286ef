package runtimeconfig_test

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/cmsadmin/pkg/runtimeconfig"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) runtimeconfig.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestResolveServerContext(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		cfg := runtimeconfig.Resolver{Lookup: env(nil)}.Resolve()
		require.Equal(t, runtimeconfig.DefaultCMSAPIURL, cfg.CMSAPIURL)
		require.Equal(t, runtimeconfig.DefaultPlatformAPIURL, cfg.PlatformAPIURL)
	})

	t.Run("unprefixed variables", func(t *testing.T) {
		cfg := runtimeconfig.Resolver{Lookup: env(map[string]string{
			"CMS_API_URL":      "http://cms.internal:9000/",
			"PLATFORM_API_URL": "http://platform.internal:9001",
		})}.Resolve()
		require.Equal(t, "http://cms.internal:9000", cfg.CMSAPIURL)
		require.Equal(t, "http://platform.internal:9001", cfg.PlatformAPIURL)
	})

	t.Run("public prefix wins", func(t *testing.T) {
		cfg := runtimeconfig.Resolver{Lookup: env(map[string]string{
			"PUBLIC_CMS_API_URL": "https://cms.example.com",
			"CMS_API_URL":        "http://cms.internal:9000",
		})}.Resolve()
		require.Equal(t, "https://cms.example.com", cfg.CMSAPIURL)
		require.Equal(t, runtimeconfig.DefaultPlatformAPIURL, cfg.PlatformAPIURL)
	})

	t.Run("blank values are ignored", func(t *testing.T) {
		cfg := runtimeconfig.Resolver{Lookup: env(map[string]string{
			"PUBLIC_CMS_API_URL": "  ",
			"CMS_API_URL":        "http://cms.internal",
		})}.Resolve()
		require.Equal(t, "http://cms.internal", cfg.CMSAPIURL)
	})
}

func TestResolveClientContext(t *testing.T) {
	t.Parallel()

	vars := env(map[string]string{
		"PUBLIC_PLATFORM_API_URL": "https://platform.example.com",
		"CMS_API_URL":             "http://cms.internal",
		"PLATFORM_API_URL":        "http://platform.internal",
	})

	t.Run("injected wins", func(t *testing.T) {
		cfg := runtimeconfig.Resolver{
			Lookup:   vars,
			Injected: &runtimeconfig.Config{CMSAPIURL: "https://cms.injected", PlatformAPIURL: "https://platform.injected"},
		}.Resolve()
		require.Equal(t, "https://cms.injected", cfg.CMSAPIURL)
		require.Equal(t, "https://platform.injected", cfg.PlatformAPIURL)
	})

	t.Run("falls back to public then default", func(t *testing.T) {
		cfg := runtimeconfig.Resolver{Lookup: vars, Injected: &runtimeconfig.Config{}}.Resolve()
		require.Equal(t, "https://platform.example.com", cfg.PlatformAPIURL)
		// Unprefixed variables are not visible to the client.
		require.Equal(t, runtimeconfig.DefaultCMSAPIURL, cfg.CMSAPIURL)
	})
}

func TestScript(t *testing.T) {
	t.Parallel()

	html, err := runtimeconfig.Script(runtimeconfig.Config{
		CMSAPIURL:      "https://cms.example.com",
		PlatformAPIURL: "https://x</script><script>alert(1)",
	})
	require.NoError(t, err)

	s := string(html)
	require.True(t, strings.HasPrefix(s, "<script>window.__RUNTIME_CONFIG__ = {"))
	require.True(t, strings.HasSuffix(s, ";</script>"))
	require.Contains(t, s, `"cmsApiUrl":"https://cms.example.com"`)
	require.Equal(t, 1, strings.Count(s, "</script>"))

	payload := strings.TrimSuffix(strings.TrimPrefix(s, "<script>window.__RUNTIME_CONFIG__ = "), ";</script>")
	cfg, err := runtimeconfig.ParseInjected([]byte(payload))
	require.NoError(t, err)
	require.Equal(t, "https://x</script><script>alert(1)", cfg.PlatformAPIURL)

	_, err = runtimeconfig.ParseInjected([]byte("{"))
	require.Error(t, err)
}
