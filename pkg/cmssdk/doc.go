/*
Package cmssdk is a typed client for the CMS backend's REST API.

# Overview

Every resource the admin console manages has a file here with one method
per endpoint: content types and entries, media, users, roles and
permissions, organizations, locales and translations, templates, themes,
search, analytics, audit logs, API keys, devices and sessions. Each method
performs a single HTTP call through an apiclient.Client, so bearer tokens,
the X-Tenant-ID header and the refresh-on-401 retry are handled there.

	cms := cmssdk.NewFromURL(cfg.CMSAPIURL,
		apiclient.WithTokenStore(store),
		apiclient.WithLogger(logger),
	)

	if _, err := cms.Login(ctx, cmssdk.LoginRequest{Email: email, Password: pw}); err != nil {
		return err
	}

	page, err := cms.ListContent(ctx, cmssdk.ListParams{Page: 1, PageSize: 20})

# Sessions

Login, Register, VerifyTwoFactor and SocialCallback store the returned
tokens and the user in the client's TokenStore. Logout always clears the
store, even when the backend call fails.

When an account has two-factor authentication enabled Login returns
ErrTwoFactorRequired together with the response carrying the challenge:

	resp, err := cms.Login(ctx, req)
	if errors.Is(err, cmssdk.ErrTwoFactorRequired) {
		resp, err = cms.VerifyTwoFactor(ctx, resp.TwoFactorToken, code)
	}

# Errors

Backend errors are returned unchanged as *apiclient.APIError. Use
apiclient.IsNotFound and friends, or errors.As, to inspect them. A few
lookups never fail and return a safe value instead:

  - ValidateResetToken returns {Valid: false}
  - Healthy returns false
*/
package cmssdk
