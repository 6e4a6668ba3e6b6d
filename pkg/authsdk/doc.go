/*
Package authsdk provides a client SDK for the storefront authentication service.

# Overview

The package is organized around two main types:

  - SDKClient: unauthenticated operations (signup, login, password reset)
    and the entry point for creating authenticated sessions
  - Session: authenticated operations with automatic access token renewal

Create an SDKClient to interact with public endpoints and log in:

	client := authsdk.NewSDKClient("https://auth.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Authenticate to create a session
	session, err := client.Login(ctx, "jane@example.com", "Secret-1")

# Signup Flow

Accounts are created in two steps. Signup stages the account and emails a
six-digit code; VerifySignup redeems the code, creates the account and
returns an authenticated session:

	_, err := client.Signup(ctx, authsdk.SignupRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "Secret-1",
	})

	// ... user reads the code from their inbox ...

	session, err := client.VerifySignup(ctx, "jane@example.com", "482913")

# Tokens and the Cookie Jar

The service issues two tokens per login. The short-lived access token is
returned in the response body and held by the Session. The long-lived
refresh token never appears in a body: the server sets it as an HttpOnly
cookie scoped to /v1, and the SDKClient's cookie jar carries it on every
subsequent request. Client code never sees or handles the refresh token.

# Automatic Renewal

Session methods keep the access token fresh three ways:

 1. Proactively: before each request the session checks the token's local
    expiry (with a 30-second buffer) and refreshes through the cookie jar
    if needed. Concurrent callers coalesce into a single refresh request.
 2. Transparently: when the server renews an expired token mid-request, it
    returns the replacement in the X-New-Access-Token header and the
    session adopts it.
 3. Reactively: a 401 or 403 triggers one forced refresh and retry before
    the error is returned. The refreshed token carries the role currently
    stored for the account, so a role change takes effect here too.

When the refresh cookie itself is spent, methods return ErrSessionExpired,
the session drops its cached token and user, and the caller must log in
again.

Subscribe registers a listener for token changes. It fires with each
renewed token, and with an empty string when the session dies or logs out:

	cancel := session.Subscribe(func(token string) {
		// persist or forward the new token; "" means signed out
	})
	defer cancel()

# Error Handling

Endpoints report failures with a shared JSON envelope. The SDK parses it
back into *APIError values that match the package sentinels under
errors.Is:

	_, err := client.Login(ctx, email, password)
	if errors.Is(err, authsdk.ErrInvalidCredentials) {
		// wrong email or password (the service never says which)
	}

# Thread Safety

Sessions are safe for concurrent use. Multiple goroutines can share a
single Session and make authenticated requests concurrently.
*/
package authsdk
