package http

import (
	"errors"
	"net/http"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/internal/auth/service"
	"github.com/cartloop/storefront-auth/pkg/authsdk"
	"github.com/cartloop/storefront-auth/pkg/httpx"
)

// UsersHandler serves the admin account-management endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleList godoc
//
//	@Summary		List accounts
//	@Description	Returns every account, newest first. Admin and superadmin only.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	authsdk.UsersResponse	"users"
//	@Failure		401	{object}	authsdk.APIError		"unauthorized"
//	@Failure		403	{object}	authsdk.APIError		"forbidden"
//	@Security		BearerAuth
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		authsdk.ErrServerError.WriteError(w)
		return
	}

	out := make([]authsdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, publicUser(u))
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.UsersResponse{Users: out})
}

// HandleUpdateRole godoc
//
//	@Summary		Change an account's role
//	@Description	Assigns a new role to the given account. Superadmin only.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Account ID"
//	@Param			body	body		authsdk.UpdateRoleRequest	true	"New role"
//	@Success		200		{object}	authsdk.MessageResponse		"message"
//	@Failure		400		{object}	authsdk.APIError			"invalid_request"
//	@Failure		401		{object}	authsdk.APIError			"unauthorized"
//	@Failure		403		{object}	authsdk.APIError			"forbidden"
//	@Failure		404		{object}	authsdk.APIError			"not_found"
//	@Security		BearerAuth
//	@Router			/v1/users/{id}/role [put].
func (h *UsersHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	targetID := r.PathValue("id")
	if targetID == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	var req authsdk.UpdateRoleRequest
	if err := decodeBody(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.UserService.UpdateRole(r.Context(), targetID, role); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			authsdk.ErrNotFound.WriteError(w)
			return
		}
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "role updated"})
}
