package cmssdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
)

// ErrTwoFactorRequired is returned by Login when the account has two-factor
// authentication enabled. Complete the login with VerifyTwoFactor using the
// challenge token from the returned *LoginResponse.
var ErrTwoFactorRequired = errors.New("cmssdk: two-factor code required")

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember,omitempty"`
}

type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Name             string `json:"name"`
	OrganizationName string `json:"organization_name,omitempty"`
}

// LoginResponse is returned by login, register, 2FA verification and the
// social callback.
type LoginResponse struct {
	apiclient.TokenPair

	User *User `json:"user,omitempty"`

	RequiresTwoFactor bool   `json:"requires_two_factor,omitempty"`
	TwoFactorToken    string `json:"two_factor_token,omitempty"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type ResetTokenStatus struct {
	Valid     bool   `json:"valid"`
	Email     string `json:"email,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Session lifecycle
// ============================================================================

// Login authenticates with email and password and persists the tokens and
// user in the client's store. When the account needs a second factor
// nothing is stored and ErrTwoFactorRequired is returned with the response.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	resp, err := postOne[LoginResponse](ctx, c, "/auth/login", req)
	if err != nil {
		return nil, err
	}
	if resp.RequiresTwoFactor {
		return resp, ErrTwoFactorRequired
	}
	if err := c.persistSession(ctx, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Register creates an account and signs in with it.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	resp, err := postOne[LoginResponse](ctx, c, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	if err := c.persistSession(ctx, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// VerifyTwoFactor completes a login that returned ErrTwoFactorRequired.
func (c *Client) VerifyTwoFactor(ctx context.Context, challenge, code string) (*LoginResponse, error) {
	resp, err := postOne[LoginResponse](ctx, c, "/auth/2fa/verify", map[string]string{
		"two_factor_token": challenge,
		"code":             code,
	})
	if err != nil {
		return nil, err
	}
	if err := c.persistSession(ctx, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Logout revokes the refresh token server side and clears the local
// session. The local session is cleared even when the call fails; the
// server error is still returned.
func (c *Client) Logout(ctx context.Context) error {
	store := c.api.Store()

	refresh, _ := store.Get(ctx, apiclient.KeyRefreshToken)
	callErr := c.api.Post(ctx, "/auth/logout", map[string]string{"refresh_token": refresh}, nil)

	if err := apiclient.ClearSession(ctx, store); err != nil {
		return errors.Join(callErr, fmt.Errorf("failed to clear session: %w", err))
	}
	return callErr
}

// Me returns the signed in user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	return getOne[User](ctx, c, "/auth/me")
}

// CachedUser returns the user saved at login without calling the backend.
// It returns nil when no user is stored.
func (c *Client) CachedUser(ctx context.Context) (*User, error) {
	raw, err := c.api.Store().Get(ctx, apiclient.KeyUser)
	if err != nil || raw == "" {
		return nil, err
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("stored user is corrupt: %w", err)
	}
	return &u, nil
}

func (c *Client) persistSession(ctx context.Context, resp *LoginResponse) error {
	store := c.api.Store()

	if err := apiclient.SaveTokens(ctx, store, resp.AccessToken, resp.RefreshToken); err != nil {
		return fmt.Errorf("failed to store tokens: %w", err)
	}
	if resp.User == nil {
		return nil
	}

	user, err := json.Marshal(resp.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := store.Set(ctx, apiclient.KeyUser, string(user)); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

// ============================================================================
// Password recovery
// ============================================================================

// ForgotPassword asks the backend to email a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	return postOne[MessageResponse](ctx, c, "/auth/forgot-password", map[string]string{"email": email})
}

// ResetPassword sets a new password using a reset token.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResponse, error) {
	return postOne[MessageResponse](ctx, c, "/auth/reset-password", req)
}

// ValidateResetToken reports whether a reset token can still be used. Any
// failure, including network errors, yields {Valid: false}.
func (c *Client) ValidateResetToken(ctx context.Context, token string) *ResetTokenStatus {
	var status ResetTokenStatus
	q := url.Values{"token": {token}}
	if err := c.api.Get(ctx, "/auth/reset-password/validate", q, &status); err != nil {
		return &ResetTokenStatus{Valid: false}
	}
	return &status
}

// ChangePassword changes the signed in user's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.api.Post(ctx, "/auth/change-password", map[string]string{
		"current_password": current,
		"new_password":     next,
	}, nil)
}
