package jwtx

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// segmentParser decodes base64url segments. Padded segments are tolerated
// since some issuers still emit them.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Parse decodes the payload segment of a compact JWT without verifying it.
// It returns nil when the token is not exactly three dot separated segments
// or the middle segment is not base64 encoded JSON.
func Parse(token string) *Claims {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil
	}

	claims := fromRaw(raw)
	return &claims
}

// fromRaw maps claims one at a time, so a claim of an unexpected type only
// loses itself. Numeric ids are kept as their decimal string.
func fromRaw(raw map[string]any) Claims {
	c := Claims{
		OrganizationID: stringClaim(raw["organization_id"]),
		UserID:         stringClaim(raw["user_id"]),
		Email:          stringClaim(raw["email"]),
		Role:           stringClaim(raw["role"]),
		Scopes:         scopesClaim(raw["scopes"]),
		Raw:            raw,
	}

	reg := &c.RegisteredClaims
	decodeClaim(raw, "iss", &reg.Issuer)
	decodeClaim(raw, "sub", &reg.Subject)
	decodeClaim(raw, "aud", &reg.Audience)
	decodeClaim(raw, "exp", &reg.ExpiresAt)
	decodeClaim(raw, "nbf", &reg.NotBefore)
	decodeClaim(raw, "iat", &reg.IssuedAt)
	decodeClaim(raw, "jti", &reg.ID)
	if reg.Subject == "" {
		reg.Subject = stringClaim(raw["sub"])
	}

	return c
}

// decodeClaim re-decodes one raw claim into dst, leaving dst untouched when
// the value does not fit.
func decodeClaim[T any](raw map[string]any, name string, dst *T) {
	v, ok := raw[name]
	if !ok || v == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return
	}
	*dst = out
}

func stringClaim(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// scopesClaim accepts a JSON array or a space separated string.
func scopesClaim(v any) []string {
	switch v := v.(type) {
	case string:
		return strings.Fields(v)
	case []any:
		scopes := make([]string, 0, len(v))
		for _, s := range v {
			if s := stringClaim(s); s != "" {
				scopes = append(scopes, s)
			}
		}
		return scopes
	default:
		return nil
	}
}

// IsExpired reports whether the token's exp claim, shifted earlier by
// buffer, is in the past. Tokens that fail to parse or have no exp are
// treated as expired.
func IsExpired(token string, buffer time.Duration) bool {
	return isExpiredAt(token, buffer, time.Now())
}

func isExpiredAt(token string, buffer time.Duration, now time.Time) bool {
	claims := Parse(token)
	if claims == nil || claims.ExpiresAt == nil {
		return true
	}

	expMillis := claims.ExpiresAt.UnixMilli() - buffer.Milliseconds()
	return expMillis < now.UnixMilli()
}

// ExpiresAt returns the token's expiry, or the zero time if absent.
func ExpiresAt(token string) time.Time {
	claims := Parse(token)
	if claims == nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// OrganizationID returns the organization claim or "" when absent.
func OrganizationID(token string) string {
	claims := Parse(token)
	if claims == nil {
		return ""
	}
	return claims.OrganizationID
}

// UserID returns the user id claim ("user_id", then "sub") or "" when absent.
func UserID(token string) string {
	claims := Parse(token)
	if claims == nil {
		return ""
	}
	return claims.EffectiveUserID()
}
