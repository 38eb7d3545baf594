// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/enniomrk/wendessen-api/internal/platform/constants"
	"github.com/enniomrk/wendessen-api/internal/platform/middleware"
	requestutil "github.com/enniomrk/wendessen-api/internal/platform/request"
	"github.com/enniomrk/wendessen-api/internal/platform/respond"
)

// Handler implements the HTTP layer for authentication.
type Handler struct {
	service *Service
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the authentication endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)

	// Password changes only require a valid token, never a permission, so
	// freshly provisioned accounts can escape the change-required lockout.
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/change-password", handler.changePassword)
	})

	return router
}

/*
POST /api/v1/auth/login.

Description: Verifies credentials and issues an RS256 access token together
with the account's resolved permission set.

Request (Body):
  - { "username": "string", "password": "string" }

Response:
  - 200: LoginResult: Token, expiry, permissions
  - 401: 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
POST /api/v1/auth/change-password.

Description: Replaces the caller's own password and clears the
change-required flag.

Request (Body):
  - { "current_password": "string", "new_password": "string" }

Response:
  - 200: Message: Success
  - 401: 401: ErrUnauthorized: Wrong current password or missing token
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Password changed"})
}
