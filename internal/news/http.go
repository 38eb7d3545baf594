// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package news

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/enniomrk/wendessen-api/internal/admin"
	"github.com/enniomrk/wendessen-api/internal/platform/middleware"
	requestutil "github.com/enniomrk/wendessen-api/internal/platform/request"
	"github.com/enniomrk/wendessen-api/internal/platform/respond"
	"github.com/enniomrk/wendessen-api/pkg/pagination"
)

// Handler implements the HTTP layer for news articles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new news [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public news endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPublic)
	router.Get("/{slug}", handler.getBySlug)

	return router
}

// AdminRoutes returns the editorial endpoints, each gated by its permission.
func (handler *Handler) AdminRoutes(authorizer middleware.Authorizer) chi.Router {
	router := chi.NewRouter()

	router.Group(func(view chi.Router) {
		view.Use(middleware.RequirePermission(authorizer, admin.PermNewsView))
		view.Get("/", handler.list)
		view.Get("/{id}", handler.get)
	})

	router.Group(func(edit chi.Router) {
		edit.Use(middleware.RequirePermission(authorizer, admin.PermNewsEdit))
		edit.Post("/", handler.create)
		edit.Put("/{id}", handler.update)
		edit.Post("/{id}/publish", handler.publish)
		edit.Post("/{id}/unpublish", handler.unpublish)
		edit.Post("/{id}/pin", handler.pin)
		edit.Post("/{id}/unpin", handler.unpin)
	})

	router.Group(func(remove chi.Router) {
		remove.Use(middleware.RequirePermission(authorizer, admin.PermNewsDelete))
		remove.Delete("/{id}", handler.delete)
	})

	return router
}

// # Public Endpoints

/*
GET /api/v1/news.

Description: Retrieves the published articles, pinned first.

Response:
  - 200: []Article: Paginated list
*/
func (handler *Handler) listPublic(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	articles, total, err := handler.service.ListPublic(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, articles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/news/{slug}.

Response:
  - 200: Article: The published article
  - 404: 404: ErrNotFound: Unknown slug or unpublished draft
*/
func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

// # Editorial Endpoints

/*
GET /api/v1/admin/news.

Description: Retrieves every article, drafts included.

Response:
  - 200: []Article: Paginated list
  - 403: 403: ErrForbidden: Missing news.view
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	articles, total, err := handler.service.List(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, articles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/admin/news/{id}.

Response:
  - 200: Article: Hydrated entity
  - 404: 404: ErrNotFound: Article not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
POST /api/v1/admin/news.

Description: Drafts a new article. The slug is derived from the title.

Request (Body):
  - ArticleInput JSON object

Response:
  - 201: Article: The created draft
  - 409: 409: ErrConflict: Slug collision
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input ArticleInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, article)
}

/*
PUT /api/v1/admin/news/{id}.

Request (Body):
  - ArticleInput JSON object

Response:
  - 200: Article: The updated article
  - 404: 404: ErrNotFound: Article not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input ArticleInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
POST /api/v1/admin/news/{id}/publish.

Response:
  - 200: Article: The published article
  - 404: 404: ErrNotFound: Article not found
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.Publish(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
POST /api/v1/admin/news/{id}/unpublish.

Response:
  - 200: Article: The article, now a draft
  - 404: 404: ErrNotFound: Article not found
*/
func (handler *Handler) unpublish(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.Unpublish(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
POST /api/v1/admin/news/{id}/pin.

Response:
  - 200: Article: The pinned article
  - 404: 404: ErrNotFound: Article not found
  - 409: 409: ErrLimitExceeded: Pin cap reached
*/
func (handler *Handler) pin(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.Pin(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
POST /api/v1/admin/news/{id}/unpin.

Response:
  - 200: Article: The unpinned article
  - 404: 404: ErrNotFound: Article not found
*/
func (handler *Handler) unpin(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.Unpin(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
DELETE /api/v1/admin/news/{id}.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Article not found
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
