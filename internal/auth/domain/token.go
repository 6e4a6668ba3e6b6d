package domain

// TokenPair is the result of a successful login or signup verification:
// a short-lived access token handed to the client body and a long-lived
// refresh token that only ever travels in an HttpOnly cookie.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
