/*
Package apiclient is the HTTP core shared by the CMS and platform SDKs.

# Overview

A Client sends JSON requests to one backend under {baseURL}/api/v1, plus
the GraphQL endpoint at {baseURL}/graphql. The session lives in a
TokenStore under the keys access_token, refresh_token and user, so several
clients (or processes, with a shared store) see the same login.

	store := apiclient.NewMemoryStore()
	cms := apiclient.New("https://cms.example.com",
		apiclient.WithName("cms"),
		apiclient.WithTokenStore(store),
	)

	var entry ContentEntry
	err := cms.Get(ctx, "/content/entries/42", nil, &entry)

# Request Headers

Every request carries:

  - Authorization: Bearer <access_token>, when a token is stored
  - X-Tenant-ID: the organization_id claim of the token, or WithTenant
  - X-Request-ID: a fresh ULID

# Token Refresh

When a request fails with 401 and its path is not an auth endpoint
(/auth/login, /auth/register, /auth/refresh, /auth/social/...):

 1. If no refresh token is stored the 401 is returned unchanged.
 2. Otherwise the refresh token is POSTed to /auth/refresh. Concurrent
    refreshes of the same token share one call.
 3. On success the new pair is stored and the request is retried once
    with the new access token.
 4. On failure, if another request has meanwhile stored a different access
    token that has not expired, the 401 is returned and the session is left
    alone. Otherwise the session is cleared, the Navigator is sent to the
    login page (unless already there) and the error wraps ErrSessionExpired.

# Errors

Non-2xx responses are returned as *APIError:

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
		// handle
	}

IsNotFound, IsUnauthorized and IsStatus cover the common checks. Bodies
that cannot be decoded wrap ErrMalformedResponse, and GraphQL responses with
an errors array return GraphQLErrors.
*/
package apiclient
