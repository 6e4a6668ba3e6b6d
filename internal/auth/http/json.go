package http

import (
	"encoding/json"
	"net/http"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/pkg/authsdk"
)

func publicUser(u domain.User) authsdk.User {
	p := u.Public()
	return authsdk.User{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Role:  p.Role,
	}
}

// decodeBody parses a JSON request body into dst. Unknown fields are
// rejected so client typos surface as 400s instead of silently-zero fields.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
