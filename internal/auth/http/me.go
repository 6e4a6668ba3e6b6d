package http

import (
	"net/http"

	"github.com/cartloop/storefront-auth/internal/auth/service"
	"github.com/cartloop/storefront-auth/pkg/authsdk"
	"github.com/cartloop/storefront-auth/pkg/httpx"
)

// MeHandler serves GET /v1/me.
type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Current user
//	@Description	Returns the account behind the presented access token.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	authsdk.User		"id, name, email, role"
//	@Failure		401	{object}	authsdk.APIError	"unauthorized"
//	@Security		BearerAuth
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	if userID == "" {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(r.Context(), userID)
	if err != nil {
		authsdk.ErrNotFound.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, publicUser(user))
}
