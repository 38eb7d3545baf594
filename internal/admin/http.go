// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package admin

// # Routing Strategy
//
//   - Every route requires authentication plus a users.* permission.
//   - Access edits (role, custom grants) are separate from password resets,
//     mirroring the two panels of the account editor.

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/enniomrk/wendessen-api/internal/platform/constants"
	"github.com/enniomrk/wendessen-api/internal/platform/middleware"
	requestutil "github.com/enniomrk/wendessen-api/internal/platform/request"
	"github.com/enniomrk/wendessen-api/internal/platform/respond"
	"github.com/enniomrk/wendessen-api/pkg/pagination"
)

// Handler implements the HTTP layer for account management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new admin [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the account management endpoints, each gated by its
// permission.
func (handler *Handler) Routes(authorizer middleware.Authorizer) chi.Router {
	router := chi.NewRouter()

	router.Group(func(view chi.Router) {
		view.Use(middleware.RequirePermission(authorizer, PermUsersView))
		view.Get("/users", handler.listUsers)
		view.Get("/users/{id}", handler.getUser)
		view.Get("/roles", handler.listRoles)
		view.Get("/permissions", handler.listPermissions)
	})

	router.Group(func(edit chi.Router) {
		edit.Use(middleware.RequirePermission(authorizer, PermUsersEdit))
		edit.Post("/users", handler.createUser)
		edit.Patch("/users/{id}/access", handler.updateAccess)
		edit.Post("/users/{id}/reset-password", handler.resetPassword)
	})

	router.Group(func(remove chi.Router) {
		remove.Use(middleware.RequirePermission(authorizer, PermUsersDelete))
		remove.Delete("/users/{id}", handler.deleteUser)
	})

	return router
}

// # Account Endpoints

/*
GET /api/v1/admin/users.

Description: Retrieves the paginated account listing with roles and grants.

Request:
  - limit: int
  - page: int

Response:
  - 200: []AdminUser: Paginated list
  - 403: 403: ErrForbidden: Missing users.view
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	users, total, err := handler.service.ListUsers(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/admin/users/{id}.

Response:
  - 200: AdminUser: Hydrated account
  - 404: 404: ErrNotFound: Account not found
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.GetUser(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
POST /api/v1/admin/users.

Description: Provisions a new editorial account with a provisional password.

Request (Body):
  - CreateUserInput JSON object

Response:
  - 201: AdminUser: The created account
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: 409: ErrConflict: Username already taken
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input CreateUserInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.CreateUser(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
PATCH /api/v1/admin/users/{id}/access.

Description: Partially updates the role assignment, custom grants, and club
association. Omitted fields stay untouched; an empty role_id or verein_id
detaches the account from its role or club.

Request (Body):
  - UpdateAccessInput JSON object

Response:
  - 200: AdminUser: The account after the update
  - 404: ErrNotFound: Account or role not found
*/
func (handler *Handler) updateAccess(writer http.ResponseWriter, request *http.Request) {
	var input UpdateAccessInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateUserAccess(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
POST /api/v1/admin/users/{id}/reset-password.

Description: Sets a new provisional password. The account must change it on
its next login.

Request (Body):
  - { "password": "string" }

Response:
  - 200: Message: Success
  - 400: 400: Validation: Password too short
  - 404: 404: ErrNotFound: Account not found
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Password string `json:"password"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ResetPassword(request.Context(), requestutil.ID(request, "id"), input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Password reset"})
}

/*
DELETE /api/v1/admin/users/{id}.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Account not found
  - 409: 409: ErrConflict: Self-deletion attempt
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	actingUserID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteUser(request.Context(), requestutil.ID(request, "id"), actingUserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Catalog Endpoints

/*
GET /api/v1/admin/roles.

Response:
  - 200: []Role: Roles with their default permissions
*/
func (handler *Handler) listRoles(writer http.ResponseWriter, request *http.Request) {
	roles, err := handler.service.ListRoles(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, roles)
}

/*
GET /api/v1/admin/permissions.

Description: Returns the grantable permission catalog, wildcard included.

Response:
  - 200: []Permission: The catalog
*/
func (handler *Handler) listPermissions(writer http.ResponseWriter, request *http.Request) {
	permissions, err := handler.service.ListGrantablePermissions(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, permissions)
}
