// Package runtimeconfig resolves the CMS and platform API base URLs.
//
// Values come from, in order: a config object injected into served HTML at
// request time, PUBLIC_* environment variables, unprefixed environment
// variables, and finally localhost defaults.
package runtimeconfig

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"strings"
)

const (
	DefaultCMSAPIURL      = "http://localhost:8080"
	DefaultPlatformAPIURL = "http://localhost:8081"

	// GlobalName is the window property the admin server injects.
	GlobalName = "__RUNTIME_CONFIG__"
)

// Environment variable names.
const (
	EnvPublicCMSAPIURL      = "PUBLIC_CMS_API_URL"
	EnvCMSAPIURL            = "CMS_API_URL"
	EnvPublicPlatformAPIURL = "PUBLIC_PLATFORM_API_URL"
	EnvPlatformAPIURL       = "PLATFORM_API_URL"
)

// Config holds the backend base URLs. Neither has a trailing slash.
type Config struct {
	CMSAPIURL      string `json:"cmsApiUrl"`
	PlatformAPIURL string `json:"platformApiUrl"`
}

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Resolver resolves a Config. The zero value reads the process environment
// in server context.
type Resolver struct {
	// Lookup overrides environment access, mostly for tests.
	Lookup LookupFunc

	// Injected is the config written into the served page, if any. When set
	// the resolver runs in client context, where unprefixed variables are not
	// visible.
	Injected *Config
}

// Resolve returns the process-wide config in server context.
func Resolve() Config {
	return Resolver{}.Resolve()
}

// Resolve never fails; every field falls back to its localhost default.
func (r Resolver) Resolve() Config {
	lookup := r.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var injected Config
	if r.Injected != nil {
		injected = *r.Injected
	}
	serverSide := r.Injected == nil

	return Config{
		CMSAPIURL: pick(lookup, serverSide, injected.CMSAPIURL,
			EnvPublicCMSAPIURL, EnvCMSAPIURL, DefaultCMSAPIURL),
		PlatformAPIURL: pick(lookup, serverSide, injected.PlatformAPIURL,
			EnvPublicPlatformAPIURL, EnvPlatformAPIURL, DefaultPlatformAPIURL),
	}
}

func pick(lookup LookupFunc, serverSide bool, injected, publicKey, privateKey, fallback string) string {
	if v := strings.TrimSpace(injected); v != "" {
		return normalize(v)
	}
	if v, ok := lookup(publicKey); ok && strings.TrimSpace(v) != "" {
		return normalize(v)
	}
	if serverSide {
		if v, ok := lookup(privateKey); ok && strings.TrimSpace(v) != "" {
			return normalize(v)
		}
	}
	return fallback
}

func normalize(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}

// Script renders the <script> tag that publishes cfg to the page as
// window.__RUNTIME_CONFIG__.
func Script(cfg Config) (template.HTML, error) {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode runtime config: %w", err)
	}

	// json.Marshal escapes <, > and & so the payload cannot close the tag.
	return template.HTML(fmt.Sprintf( // #nosec G203 - payload is JSON encoded
		"<script>window.%s = %s;</script>", GlobalName, payload,
	)), nil
}

// ParseInjected decodes an injected config object.
func ParseInjected(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid runtime config: %w", err)
	}
	return &cfg, nil
}
