package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aussiebroadwan/cmsadmin/pkg/cryptox"
	"github.com/aussiebroadwan/cmsadmin/pkg/jwtx"
)

// TokenPair is the body returned by the refresh and login endpoints.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// refreshAndRetry runs the 401 path: refresh once, persist, retry once.
// usedToken is the access token the failing request carried.
func (c *Client) refreshAndRetry(
	ctx context.Context,
	req Request,
	payload []byte,
	contentType string,
	usedToken string,
	original *APIError,
) (*Response, error) {
	refreshToken, err := c.store.Get(ctx, KeyRefreshToken)
	if err != nil || refreshToken == "" {
		c.observer.ObserveRefresh(c.name, RefreshMissing)
		return nil, original
	}

	pair, err := c.refresh(ctx, refreshToken)
	if err != nil && ctx.Err() != nil {
		// The caller gave up; the shared refresh may still succeed.
		return nil, original
	}
	if err != nil {
		c.observer.ObserveRefresh(c.name, RefreshFailed)
		c.logger.Warn("token refresh failed",
			"api", c.name,
			"refresh_fp", fingerprint(refreshToken),
			"error", err,
		)
		if c.expireSession(ctx, usedToken) {
			return nil, fmt.Errorf("%w: %w", ErrSessionExpired, original)
		}
		return nil, original
	}
	c.observer.ObserveRefresh(c.name, RefreshSucceeded)

	resp, err := c.send(ctx, req, payload, contentType, pair.AccessToken)
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return nil, c.toAPIError(req, resp)
	}
	return resp, nil
}

// Refresh exchanges the stored refresh token for a new pair and persists it.
func (c *Client) Refresh(ctx context.Context) (*TokenPair, error) {
	refreshToken, err := c.store.Get(ctx, KeyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh token: %w", err)
	}
	if refreshToken == "" {
		return nil, errors.New("no refresh token stored")
	}
	return c.refresh(ctx, refreshToken)
}

// refresh coalesces concurrent refreshes of the same token into one call.
// The shared call is detached from any single caller's context; each caller
// stops waiting when its own context ends.
func (c *Client) refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	ch := c.refreshes.DoChan(refreshToken, func() (any, error) {
		timeout := c.httpClient.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		pair, err := c.postRefresh(rctx, refreshToken)
		if err != nil {
			return nil, err
		}
		if err := SaveTokens(rctx, c.store, pair.AccessToken, pair.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed tokens: %w", err)
		}
		c.logger.Info("token refreshed",
			"api", c.name,
			"access_fp", fingerprint(pair.AccessToken),
		)
		return pair, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.logger.Debug("joined in-flight token refresh", "api", c.name)
		}
		return res.Val.(*TokenPair), nil
	}
}

// postRefresh calls the refresh endpoint directly, bypassing the
// interceptors so a 401 here cannot recurse.
func (c *Client) postRefresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL()+refreshPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send refresh request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh response: %w", err)
	}
	if !isSuccess(httpResp.StatusCode) {
		return nil, parseErrorResponse(http.MethodPost, refreshPath, httpResp.StatusCode, httpResp.Header, respBody)
	}

	var pair TokenPair
	if err := json.Unmarshal(respBody, &pair); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if pair.AccessToken == "" {
		return nil, fmt.Errorf("%w: refresh response has no access_token", ErrMalformedResponse)
	}
	return &pair, nil
}

// expireSession clears the session and redirects to login, unless another
// request has already stored a different, still valid access token. It
// reports whether the session was cleared.
func (c *Client) expireSession(ctx context.Context, usedToken string) bool {
	current, err := c.store.Get(ctx, KeyAccessToken)
	if err == nil && current != "" && current != usedToken && !jwtx.IsExpired(current, 0) {
		c.logger.Debug("newer session present, keeping it", "api", c.name)
		return false
	}

	if err := ClearSession(ctx, c.store); err != nil {
		c.logger.Error("failed to clear session", "api", c.name, "error", err)
	}

	if c.navigator != nil && c.navigator.CurrentPath() != c.loginPath {
		c.navigator.Redirect(c.loginPath)
	}
	return true
}

func fingerprint(token string) string {
	if token == "" {
		return ""
	}
	return cryptox.FingerprintToken(token)[:12]
}
