// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package event

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/enniomrk/wendessen-api/internal/admin"
	"github.com/enniomrk/wendessen-api/internal/platform/middleware"
	requestutil "github.com/enniomrk/wendessen-api/internal/platform/request"
	"github.com/enniomrk/wendessen-api/internal/platform/respond"
	"github.com/enniomrk/wendessen-api/internal/platform/validate"
	"github.com/enniomrk/wendessen-api/pkg/convert"
	"github.com/enniomrk/wendessen-api/pkg/pagination"
)

// Handler implements the HTTP layer for the event calendar.
type Handler struct {
	service *Service
}

// NewHandler constructs a new event [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public calendar endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listUpcoming)
	return router
}

// AdminRoutes returns the editorial endpoints, each gated by its permission.
func (handler *Handler) AdminRoutes(authorizer middleware.Authorizer) chi.Router {
	router := chi.NewRouter()

	router.Group(func(view chi.Router) {
		view.Use(middleware.RequirePermission(authorizer, admin.PermEventsView))
		view.Get("/", handler.list)
		view.Get("/{id}", handler.get)
	})

	router.Group(func(edit chi.Router) {
		edit.Use(middleware.RequirePermission(authorizer, admin.PermEventsEdit))
		edit.Post("/", handler.create)
		edit.Put("/{id}", handler.update)
	})

	router.Group(func(remove chi.Router) {
		remove.Use(middleware.RequirePermission(authorizer, admin.PermEventsDelete))
		remove.Delete("/{id}", handler.delete)
	})

	return router
}

// # Public Endpoints

/*
GET /api/v1/events.

Description: Retrieves upcoming events inside a look-ahead window.

Request:
  - from: string (YYYY-MM-DD, defaults to today)
  - days: int (Look-ahead horizon, defaults to one year)
  - limit: int
  - page: int

Response:
  - 200: []Event: Paginated list, soonest first
*/
func (handler *Handler) listUpcoming(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	from := time.Now().UTC()
	if raw := queryParams.Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError("from", "Must be a YYYY-MM-DD date"))
			return
		}
		from = parsed
	}

	days := convert.ToIntD(queryParams.Get("days"), 0)

	events, total, err := handler.service.ListUpcoming(request.Context(), from, days, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, events, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// # Editorial Endpoints

/*
GET /api/v1/admin/events.

Response:
  - 200: []Event: Paginated list, soonest first
  - 403: 403: ErrForbidden: Missing events.view
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	events, total, err := handler.service.List(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, events, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/admin/events/{id}.

Response:
  - 200: Event: Hydrated entity
  - 404: 404: ErrNotFound: Event not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
POST /api/v1/admin/events.

Request (Body):
  - EventInput JSON object

Response:
  - 201: Event: The created entry
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input EventInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

/*
PUT /api/v1/admin/events/{id}.

Request (Body):
  - EventInput JSON object

Response:
  - 200: Event: The updated entry
  - 404: 404: ErrNotFound: Event not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input EventInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
DELETE /api/v1/admin/events/{id}.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Event not found
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
