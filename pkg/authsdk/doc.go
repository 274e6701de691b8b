/*
Package authsdk provides a client SDK for the password + TOTP authentication service.

# Overview

The package is organized around two types:

  - SDKClient: unauthenticated operations (register, login, health)
  - Session: operations that need a bearer token (me, 2FA management)

Create an SDKClient with the base URL including the API prefix:

	client := authsdk.NewSDKClient("http://localhost:3001/api")

	if err := client.Register(ctx, "a@b.co", "password1"); err != nil {
		return err
	}

	session, err := client.Login(ctx, "a@b.co", "password1")
	if errors.Is(err, authsdk.ErrTOTPRequired) {
		session, err = client.LoginWithTOTP(ctx, "a@b.co", "password1", code)
	}

# Two-factor enrollment

	setup, err := session.SetupTOTP(ctx)
	// show setup.QRCode, then confirm with a code from the app
	err = session.VerifyTOTP(ctx, code)

# Errors

Every non-2xx response is returned as an *APIError carrying the status code and
the server's "error" message. Use IsStatus for quick checks:

	if authsdk.IsStatus(err, http.StatusTooManyRequests) {
		// back off
	}
*/
package authsdk
