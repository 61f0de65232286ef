package cmssdk

import (
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
	"github.com/aussiebroadwan/cmsadmin/pkg/paginate"
)

// Page is the envelope returned by list endpoints.
type Page[T any] = paginate.Page[T]

// ListParams are the query parameters accepted by list endpoints.
type ListParams = apiclient.ListParams

// ============================================================================
// Identity
// ============================================================================

type User struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	AvatarURL        string     `json:"avatar_url,omitempty"`
	OrganizationID   string     `json:"organization_id,omitempty"`
	Role             *Role      `json:"role,omitempty"`
	RoleID           string     `json:"role_id,omitempty"`
	Status           string     `json:"status,omitempty"` // active, invited, suspended
	TwoFactorEnabled bool       `json:"two_factor_enabled"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description,omitempty"`
	IsSystem    bool         `json:"is_system"`
	Permissions []Permission `json:"permissions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Permission struct {
	ID          string `json:"id"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
	Description string `json:"description,omitempty"`
}

// Key returns "resource:action".
func (p Permission) Key() string { return p.Resource + ":" + p.Action }

type Organization struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Domain    string          `json:"domain,omitempty"`
	Plan      string          `json:"plan,omitempty"`
	Settings  json.RawMessage `json:"settings,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ============================================================================
// Content
// ============================================================================

type FieldDefinition struct {
	Name         string          `json:"name"`
	Label        string          `json:"label"`
	Type         string          `json:"type"` // text, richtext, number, boolean, date, media, reference, json
	Required     bool            `json:"required"`
	Localized    bool            `json:"localized"`
	Options      json.RawMessage `json:"options,omitempty"`
	DefaultValue json.RawMessage `json:"default_value,omitempty"`
}

type ContentType struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	Fields      []FieldDefinition `json:"fields"`
	IsSingleton bool              `json:"is_singleton"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type ContentEntry struct {
	ID            string         `json:"id"`
	ContentTypeID string         `json:"content_type_id"`
	Slug          string         `json:"slug"`
	Title         string         `json:"title"`
	Locale        string         `json:"locale"`
	Status        string         `json:"status"` // draft, published, archived
	Data          map[string]any `json:"data"`
	Version       int            `json:"version"`
	AuthorID      string         `json:"author_id,omitempty"`
	PublishedAt   *time.Time     `json:"published_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type ContentVersion struct {
	ID        string         `json:"id"`
	EntryID   string         `json:"entry_id"`
	Version   int            `json:"version"`
	Data      map[string]any `json:"data"`
	AuthorID  string         `json:"author_id,omitempty"`
	Comment   string         `json:"comment,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type Media struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	URL       string    `json:"url"`
	Thumbnail string    `json:"thumbnail_url,omitempty"`
	AltText   string    `json:"alt_text,omitempty"`
	Caption   string    `json:"caption,omitempty"`
	Folder    string    `json:"folder,omitempty"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ============================================================================
// Localisation
// ============================================================================

type Locale struct {
	ID        string `json:"id"`
	Code      string `json:"code"` // e.g. "en-AU"
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
	Enabled   bool   `json:"enabled"`
}

type Translation struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Locale    string    `json:"locale"`
	Value     string    `json:"value"`
	Namespace string    `json:"namespace,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ============================================================================
// Presentation
// ============================================================================

type Template struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	ContentTypeID string    `json:"content_type_id,omitempty"`
	Body          string    `json:"body"`
	Engine        string    `json:"engine,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TemplatePreview struct {
	HTML     string `json:"html"`
	Markdown string `json:"markdown,omitempty"`
}

// Theme is a stored palette. Light and Dark hold the 21 colour tokens keyed
// by their camelCase names.
type Theme struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Seed      string            `json:"seed,omitempty"`
	Light     map[string]string `json:"light"`
	Dark      map[string]string `json:"dark"`
	IsActive  bool              `json:"is_active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ============================================================================
// Search and analytics
// ============================================================================

type SearchHit struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"` // content, media, user
	Title     string  `json:"title"`
	Snippet   string  `json:"snippet,omitempty"`
	Score     float64 `json:"score"`
	URL       string  `json:"url,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

type SearchResult struct {
	Query  string      `json:"query"`
	Hits   []SearchHit `json:"hits"`
	Total  int         `json:"total"`
	TookMS int         `json:"took_ms"`
}

type AnalyticsOverview struct {
	TotalContent     int `json:"total_content"`
	PublishedContent int `json:"published_content"`
	DraftContent     int `json:"draft_content"`
	TotalMedia       int `json:"total_media"`
	TotalUsers       int `json:"total_users"`
	ActiveUsers      int `json:"active_users"`
	PageViews        int `json:"page_views"`
	APIRequests      int `json:"api_requests"`
}

type ContentStat struct {
	Date      string `json:"date"`
	Created   int    `json:"created"`
	Published int    `json:"published"`
	Updated   int    `json:"updated"`
}

type TopContent struct {
	EntryID string `json:"entry_id"`
	Title   string `json:"title"`
	Views   int    `json:"views"`
}

// ============================================================================
// Security
// ============================================================================

type AuditLog struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id,omitempty"`
	UserEmail    string         `json:"user_email,omitempty"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id,omitempty"`
	IPAddress    string         `json:"ip_address,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

type APIScope struct {
	ID          string `json:"id"`
	Name        string `json:"name"` // e.g. "content:read"
	Description string `json:"description,omitempty"`
}

type APIKey struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Prefix     string     `json:"prefix"`
	Scopes     []string   `json:"scopes"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`

	// Key is the full secret. Only present in the create response.
	Key string `json:"key,omitempty"`
}

type Device struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Platform   string    `json:"platform"`
	PushToken  string    `json:"push_token,omitempty"`
	Trusted    bool      `json:"trusted"`
	LastSeenAt time.Time `json:"last_seen_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	DeviceID   string    `json:"device_id,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Current    bool      `json:"current"`
	LastSeenAt time.Time `json:"last_seen_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}
