// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package portrait

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/enniomrk/wendessen-api/internal/admin"
	"github.com/enniomrk/wendessen-api/internal/moderation"
	"github.com/enniomrk/wendessen-api/internal/platform/middleware"
	requestutil "github.com/enniomrk/wendessen-api/internal/platform/request"
	"github.com/enniomrk/wendessen-api/internal/platform/respond"
	"github.com/enniomrk/wendessen-api/internal/platform/validate"
	"github.com/enniomrk/wendessen-api/pkg/pagination"
	"github.com/enniomrk/wendessen-api/pkg/query"
)

// Handler implements the HTTP layer for portrait operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new portrait [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public portrait endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPublic)

	router.Group(func(limited chi.Router) {
		limited.Use(middleware.ThrottleSubmissions())
		limited.Post("/submissions", handler.submit)
	})

	return router
}

// AdminRoutes returns the review endpoints, each gated by its permission.
func (handler *Handler) AdminRoutes(authorizer middleware.Authorizer) chi.Router {
	router := chi.NewRouter()

	router.Group(func(view chi.Router) {
		view.Use(middleware.RequirePermission(authorizer, admin.PermPortraitsView))
		view.Get("/", handler.list)
		view.Get("/{id}", handler.get)
	})

	router.Group(func(edit chi.Router) {
		edit.Use(middleware.RequirePermission(authorizer, admin.PermPortraitsEdit))
		edit.Post("/{id}/approve", handler.approve)
		edit.Post("/{id}/reject", handler.reject)
		edit.Post("/{id}/reset", handler.reset)
		edit.Post("/selection/approve", handler.approveSelected)
		edit.Post("/selection/reject", handler.rejectSelected)
		edit.Post("/selection/reset", handler.resetSelected)
	})

	router.Group(func(remove chi.Router) {
		remove.Use(middleware.RequirePermission(authorizer, admin.PermPortraitsDelete))
		remove.Delete("/{id}", handler.delete)
	})

	return router
}

// # Public Endpoints

/*
GET /api/v1/portraits.

Description: Retrieves the paginated public page of approved portraits.

Response:
  - 200: []Portrait: Paginated list
*/
func (handler *Handler) listPublic(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	portraits, total, err := handler.service.ListPublic(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, portraits, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/portraits/submissions.

Description: Accepts a visitor's portrait for review.

Request (Body):
  - SubmitInput JSON object

Response:
  - 201: Portrait: The pending row
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 429: 429: ErrRateLimited: Submission rate exceeded
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input SubmitInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	portrait, err := handler.service.Submit(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, portrait)
}

// # Admin Endpoints

/*
GET /api/v1/admin/portraits.

Request:
  - status: string (Comma-separated status filter)
  - limit: int
  - page: int

Response:
  - 200: []Portrait: Paginated review queue
  - 403: 403: ErrForbidden: Missing portraits.view
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	var statuses []moderation.Status
	for _, raw := range query.StringSlice(request.URL.Query().Get("status")) {
		status := moderation.Status(raw)
		if !status.IsValid() {
			respond.Error(writer, request, validate.RequiredError(FieldStatus, "Unknown status: "+raw))
			return
		}
		statuses = append(statuses, status)
	}

	portraits, total, err := handler.service.List(request.Context(), statuses, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, portraits, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/admin/portraits/{id}.

Response:
  - 200: Portrait: Hydrated entity
  - 404: 404: ErrNotFound: Portrait not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	portrait, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, portrait)
}

/*
POST /api/v1/admin/portraits/{id}/approve.

Response:
  - 200: Portrait: The updated row
  - 404: 404: ErrNotFound: Portrait not found
*/
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	portrait, err := handler.service.Approve(request.Context(), requestutil.ID(request, "id"), claims.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, portrait)
}

// rejectInput is the optional body of reject endpoints.
type rejectInput struct {
	Reason *string `json:"reason,omitempty"`
}

/*
POST /api/v1/admin/portraits/{id}/reject.

Request (Body):
  - { "reason": "string" } (Optional)

Response:
  - 200: Portrait: The updated row
  - 404: 404: ErrNotFound: Portrait not found
*/
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := rejectInput{}
	_ = requestutil.DecodeJSON(request, &input)

	portrait, err := handler.service.Reject(request.Context(), requestutil.ID(request, "id"), claims.Username, input.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, portrait)
}

/*
POST /api/v1/admin/portraits/{id}/reset.

Response:
  - 200: Portrait: The updated row
  - 404: 404: ErrNotFound: Portrait not found
*/
func (handler *Handler) reset(writer http.ResponseWriter, request *http.Request) {
	portrait, err := handler.service.ResetToPending(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, portrait)
}

// selectionInput carries the explicit id list of selection verdicts.
type selectionInput struct {
	IDs    []string `json:"ids"`
	Reason *string  `json:"reason,omitempty"`
}

// changedResponse reports how many rows a bulk verdict touched.
type changedResponse struct {
	Changed int `json:"changed"`
}

/*
POST /api/v1/admin/portraits/selection/approve.

Request (Body):
  - { "ids": ["string"] }

Response:
  - 200: { "changed": int }: Portraits changed
*/
func (handler *Handler) approveSelected(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input selectionInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	changed, err := handler.service.ApproveSelected(request.Context(), input.IDs, claims.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, changedResponse{Changed: changed})
}

/*
POST /api/v1/admin/portraits/selection/reject.

Request (Body):
  - { "ids": ["string"], "reason": "string" }

Response:
  - 200: { "changed": int }: Portraits changed
*/
func (handler *Handler) rejectSelected(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input selectionInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	changed, err := handler.service.RejectSelected(request.Context(), input.IDs, claims.Username, input.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, changedResponse{Changed: changed})
}

/*
POST /api/v1/admin/portraits/selection/reset.

Request (Body):
  - { "ids": ["string"] }

Response:
  - 200: { "changed": int }: Portraits changed
*/
func (handler *Handler) resetSelected(writer http.ResponseWriter, request *http.Request) {
	var input selectionInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	changed, err := handler.service.ResetSelected(request.Context(), input.IDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, changedResponse{Changed: changed})
}

/*
DELETE /api/v1/admin/portraits/{id}.

Description: Permanently removes one portrait. Deleting an already-gone
portrait succeeds.

Response:
  - 204: No Content: Success
  - 403: 403: ErrForbidden: Missing portraits.delete
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
