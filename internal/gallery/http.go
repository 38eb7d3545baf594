// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package gallery

// # Routing Strategy
//
//   - Public: approved photo listing, batch submission, photo reports.
//   - Admin: the moderation queue with single, batch, and selection verdicts,
//     plus the report review queue. Every admin route is gated by a named
//     permission resolved per request.

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

// # Handler Implementation

// Handler implements the HTTP layer for gallery operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new gallery [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public gallery endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPublic)

	// Visitor submissions are rate limited separately from general traffic.
	router.Group(func(limited chi.Router) {
		limited.Use(middleware.ThrottleSubmissions())
		limited.Post("/submissions", handler.submit)
		limited.Post("/submissions/{id}/report", handler.createReport)
	})

	return router
}

// AdminRoutes returns the moderation endpoints, each gated by its permission.
func (handler *Handler) AdminRoutes(authorizer middleware.Authorizer) chi.Router {
	router := chi.NewRouter()

	router.Group(func(view chi.Router) {
		view.Use(middleware.RequirePermission(authorizer, admin.PermGalleryView))
		view.Get("/submissions", handler.listSubmissions)
		view.Get("/groups", handler.listGroups)
		view.Get("/groups/{groupID}", handler.getGroup)
		view.Get("/reports", handler.listReports)
		view.Get("/reports/{id}", handler.getReport)
	})

	router.Group(func(edit chi.Router) {
		edit.Use(middleware.RequirePermission(authorizer, admin.PermGalleryEdit))
		edit.Post("/submissions/{id}/approve", handler.approve)
		edit.Post("/submissions/{id}/reject", handler.reject)
		edit.Post("/submissions/{id}/reset", handler.reset)
		edit.Post("/groups/{groupID}/approve", handler.approveGroup)
		edit.Post("/groups/{groupID}/reject", handler.rejectGroup)
		edit.Post("/groups/{groupID}/reset", handler.resetGroup)
		edit.Post("/selection/approve", handler.approveSelected)
		edit.Post("/selection/reject", handler.rejectSelected)
		edit.Post("/selection/reset", handler.resetSelected)
		edit.Post("/reports/{id}/resolve", handler.resolveReport)
		edit.Post("/reports/{id}/reset", handler.resetReport)
		edit.Post("/reports/{id}/resolve-remove", handler.resolveAndRemove)
	})

	router.Group(func(remove chi.Router) {
		remove.Use(middleware.RequirePermission(authorizer, admin.PermGalleryDelete))
		remove.Delete("/submissions/{id}", handler.deleteSubmission)
		remove.Delete("/groups/{groupID}", handler.deleteGroup)
		remove.Delete("/reports/{id}", handler.deleteReport)
	})

	return router
}

// # Public Endpoints

/*
GET /api/v1/gallery.

Description: Retrieves the paginated public page of approved photos.

Request:
  - limit: int
  - page: int

Response:
  - 200: []Submission: Paginated list
*/
func (handler *Handler) listPublic(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	photos, total, err := handler.service.ListPublic(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, photos, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/gallery/submissions.

Description: Accepts a visitor's photo batch for moderation. All photos of
the batch enter the queue as one pending group.

Request (Body):
  - SubmitInput JSON object

Response:
  - 201: []Submission: The pending rows
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 429: 429: ErrRateLimited: Submission rate exceeded
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input SubmitInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	submissions, err := handler.service.Submit(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, submissions)
}

/*
POST /api/v1/gallery/submissions/{id}/report.

Description: Records a visitor complaint against a published photo.

Request:
  - id: string (Photo UUID)
  - body: { "reason": "string", "reporter_info": "string" }

Response:
  - 201: Report: The stored pending report
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: 404: ErrNotFound: Photo not found
*/
func (handler *Handler) createReport(writer http.ResponseWriter, request *http.Request) {
	submissionID := requestutil.ID(request, "id")

	var input struct {
		Reason       string  `json:"reason"`
		ReporterInfo *string `json:"reporter_info,omitempty"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.CreateReport(request.Context(), submissionID, input.Reason, input.ReporterInfo)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, report)
}

// # Moderation Queue Endpoints

// parseFilter reads the status and group query parameters.
func parseFilter(request *http.Request) (Filter, error) {
	queryParams := request.URL.Query()

	filter := Filter{GroupID: queryParams.Get("group")}

	for _, raw := range query.StringSlice(queryParams.Get("status")) {
		status := moderation.Status(raw)
		if !status.IsValid() {
			return Filter{}, validate.RequiredError(FieldStatus, "Unknown status: "+raw)
		}
		filter.Status = append(filter.Status, status)
	}

	return filter, nil
}

/*
GET /api/v1/admin/gallery/submissions.

Description: Retrieves the flat moderation queue.

Request:
  - status: string (Comma-separated status filter)
  - group: string (Group UUID filter)
  - limit: int
  - page: int

Response:
  - 200: []Submission: Paginated list
  - 403: 403: ErrForbidden: Missing shared_gallery.view
*/
func (handler *Handler) listSubmissions(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter, err := parseFilter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	submissions, total, err := handler.service.ListSubmissions(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, submissions, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/admin/gallery/groups.

Description: Retrieves the moderation queue folded into batch views with
per-status counts.

Response:
  - 200: []Group: Paginated derived groups
*/
func (handler *Handler) listGroups(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter, err := parseFilter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	groups, total, err := handler.service.ListGroups(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, groups, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/admin/gallery/groups/{groupID}.

Description: Retrieves one complete batch for the detail modal.

Response:
  - 200: Group: The aggregation of all members
  - 404: 404: ErrNotFound: Group has no members
*/
func (handler *Handler) getGroup(writer http.ResponseWriter, request *http.Request) {
	group, err := handler.service.GetGroup(request.Context(), requestutil.ID(request, "groupID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, group)
}

// # Verdict Endpoints

// rejectInput is the optional body of reject endpoints.
type rejectInput struct {
	Reason *string `json:"reason,omitempty"`
}

// changedResponse reports how many rows a bulk verdict touched.
type changedResponse struct {
	Changed int `json:"changed"`
}

/*
POST /api/v1/admin/gallery/submissions/{id}/approve.

Response:
  - 200: Submission: The updated row
  - 404: 404: ErrNotFound: Photo not found
*/
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	submission, err := handler.service.Approve(request.Context(), requestutil.ID(request, "id"), claims.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, submission)
}

/*
POST /api/v1/admin/gallery/submissions/{id}/reject.

Request (Body):
  - { "reason": "string" } (Optional)

Response:
  - 200: Submission: The updated row
  - 404: 404: ErrNotFound: Photo not found
*/
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := rejectInput{}
	_ = requestutil.DecodeJSON(request, &input)

	submission, err := handler.service.Reject(request.Context(), requestutil.ID(request, "id"), claims.Username, input.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, submission)
}

/*
POST /api/v1/admin/gallery/submissions/{id}/reset.

Description: Returns a reviewed photo to the pending queue.

Response:
  - 200: Submission: The updated row
  - 404: 404: ErrNotFound: Photo not found
*/
func (handler *Handler) reset(writer http.ResponseWriter, request *http.Request) {
	submission, err := handler.service.ResetToPending(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, submission)
}

/*
POST /api/v1/admin/gallery/groups/{groupID}/approve.

Response:
  - 200: { "changed": int }: Photos changed
*/
func (handler *Handler) approveGroup(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	changed, err := handler.service.ApproveGroup(request.Context(), requestutil.ID(request, "groupID"), claims.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, changedResponse{Changed: changed})
}

/*
POST /api/v1/admin/gallery/groups/{groupID}/reject.

Request (Body):
  - { "reason": "string" } (Optional, applied to every changed photo)

Response:
  - 200: { "changed": int }: Photos changed
*/
func (handler *Handler) rejectGroup(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := rejectInput{}
	_ = requestutil.DecodeJSON(request, &input)

	changed, err := handler.service.RejectGroup(request.Context(), requestutil.ID(request, "groupID"), claims.Username, input.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, changedResponse{Changed: changed})
}

/*
POST /api/v1/admin/gallery/groups/{groupID}/reset.

Response:
  - 200: { "changed": int }: Photos changed
*/
func (handler *Handler) resetGroup(writer http.ResponseWriter, request *http.Request) {
	changed, err := handler.service.ResetGroup(request.Context(), requestutil.ID(request, "groupID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, changedResponse{Changed: changed})
}

// selectionInput carries the explicit id list of selection verdicts.
type selectionInput struct {
	IDs    []string `json:"ids"`
	Reason *string  `json:"reason,omitempty"`
}

/*
POST /api/v1/admin/gallery/selection/approve.

Request (Body):
  - { "ids": ["string"] }

Response:
  - 200: { "changed": int }: Photos changed
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
POST /api/v1/admin/gallery/selection/reject.

Request (Body):
  - { "ids": ["string"], "reason": "string" }

Response:
  - 200: { "changed": int }: Photos changed
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
POST /api/v1/admin/gallery/selection/reset.

Request (Body):
  - { "ids": ["string"] }

Response:
  - 200: { "changed": int }: Photos changed
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

// # Removal Endpoints

/*
DELETE /api/v1/admin/gallery/submissions/{id}.

Description: Permanently removes one photo. Deleting an already-gone photo
succeeds, matching the moderation UI's retry behavior.

Response:
  - 204: No Content: Success
  - 403: 403: ErrForbidden: Missing shared_gallery.delete
*/
func (handler *Handler) deleteSubmission(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/admin/gallery/groups/{groupID}.

Response:
  - 200: { "changed": int }: Photos removed
*/
func (handler *Handler) deleteGroup(writer http.ResponseWriter, request *http.Request) {
	removed, err := handler.service.DeleteGroup(request.Context(), requestutil.ID(request, "groupID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, changedResponse{Changed: removed})
}

// # Report Endpoints

/*
GET /api/v1/admin/gallery/reports.

Request:
  - status: string (pending, reviewed, or dismissed; empty lists all)
  - limit: int
  - page: int

Response:
  - 200: []Report: Paginated list
*/
func (handler *Handler) listReports(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	status := ReportStatus(request.URL.Query().Get("status"))

	reports, total, err := handler.service.ListReports(request.Context(), status, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reports, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/admin/gallery/reports/{id}.

Response:
  - 200: Report: The report
  - 404: 404: ErrNotFound: Report not found
*/
func (handler *Handler) getReport(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.service.GetReport(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

/*
POST /api/v1/admin/gallery/reports/{id}/resolve.

Description: Closes a report as reviewed or dismissed without touching the
reported photo.

Request (Body):
  - { "status": "reviewed" | "dismissed" }

Response:
  - 200: Report: The updated report
  - 400: 400: Validation: Status is not a resolution
  - 404: 404: ErrNotFound: Report not found
*/
func (handler *Handler) resolveReport(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Status ReportStatus `json:"status"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.ResolveReport(request.Context(), requestutil.ID(request, "id"), input.Status, claims.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

/*
POST /api/v1/admin/gallery/reports/{id}/reset.

Description: Returns a closed report to the pending queue.

Response:
  - 200: Report: The updated report
  - 404: 404: ErrNotFound: Report not found
*/
func (handler *Handler) resetReport(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.service.ResetReport(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

/*
POST /api/v1/admin/gallery/reports/{id}/resolve-remove.

Description: Closes a report as reviewed and takes the reported photo off
the public gallery in one action.

Request (Body):
  - { "action": "reject" | "delete", "reason": "string" }

Response:
  - 200: Report: The resolved report
  - 400: 400: Validation: Unknown action
  - 404: 404: ErrNotFound: Report not found
*/
func (handler *Handler) resolveAndRemove(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Action RemoveAction `json:"action"`
		Reason *string      `json:"reason,omitempty"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.ResolveAndRemove(request.Context(), requestutil.ID(request, "id"), claims.Username, input.Action, input.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

/*
DELETE /api/v1/admin/gallery/reports/{id}.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Report not found
*/
func (handler *Handler) deleteReport(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteReport(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
