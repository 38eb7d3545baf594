// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package verein

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/enniomrk/wendessen-api/internal/admin"
	"github.com/enniomrk/wendessen-api/internal/platform/middleware"
	requestutil "github.com/enniomrk/wendessen-api/internal/platform/request"
	"github.com/enniomrk/wendessen-api/internal/platform/respond"
	"github.com/enniomrk/wendessen-api/pkg/pagination"
)

// Handler implements the HTTP layer for the club directory.
type Handler struct {
	service *Service
}

// NewHandler constructs a new verein [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public directory endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPublic)
	router.Get("/{slug}", handler.getBySlug)

	return router
}

// AdminRoutes returns the directory maintenance endpoints, each gated by its permission.
func (handler *Handler) AdminRoutes(authorizer middleware.Authorizer) chi.Router {
	router := chi.NewRouter()

	router.Group(func(view chi.Router) {
		view.Use(middleware.RequirePermission(authorizer, admin.PermVereineView))
		view.Get("/", handler.list)
		view.Get("/{id}", handler.get)
	})

	router.Group(func(edit chi.Router) {
		edit.Use(middleware.RequirePermission(authorizer, admin.PermVereineEdit))
		edit.Post("/", handler.create)
		edit.Put("/{id}", handler.update)
	})

	router.Group(func(remove chi.Router) {
		remove.Use(middleware.RequirePermission(authorizer, admin.PermVereineDelete))
		remove.Delete("/{id}", handler.delete)
	})

	return router
}

// # Public Endpoints

/*
GET /api/v1/vereine.

Description: Retrieves the club directory, ordered by name.

Response:
  - 200: []Verein: Paginated list
*/
func (handler *Handler) listPublic(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	clubs, total, err := handler.service.ListPublic(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, clubs, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/vereine/{slug}.

Response:
  - 200: Verein: The club profile
  - 404: 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	club, err := handler.service.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, club)
}

// # Maintenance Endpoints

/*
GET /api/v1/admin/vereine.

Response:
  - 200: []Verein: Paginated list
  - 403: 403: ErrForbidden: Missing vereine.view
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	clubs, total, err := handler.service.List(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, clubs, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/admin/vereine/{id}.

Response:
  - 200: Verein: Hydrated entity
  - 404: 404: ErrNotFound: Verein not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	club, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, club)
}

/*
POST /api/v1/admin/vereine.

Description: Registers a new club. The slug is derived from the name.

Request (Body):
  - VereinInput JSON object

Response:
  - 201: Verein: The created club
  - 409: 409: ErrConflict: Slug collision
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input VereinInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	club, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, club)
}

/*
PUT /api/v1/admin/vereine/{id}.

Request (Body):
  - VereinInput JSON object

Response:
  - 200: Verein: The updated club
  - 404: 404: ErrNotFound: Verein not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input VereinInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	club, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, club)
}

/*
DELETE /api/v1/admin/vereine/{id}.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Verein not found
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
