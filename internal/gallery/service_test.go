// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package gallery_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enniomrk/wendessen-api/internal/gallery"
	"github.com/enniomrk/wendessen-api/internal/moderation"
	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
	"github.com/enniomrk/wendessen-api/pkg/pointer"
	"github.com/enniomrk/wendessen-api/pkg/uuidv7"
)

// # Fakes

// memoryStore is an in-memory implementation of both gallery repositories.
type memoryStore struct {
	submissions []*gallery.Submission
	reports     []*gallery.Report
}

func (store *memoryStore) find(id string) *gallery.Submission {
	for _, submission := range store.submissions {
		if submission.ID == id {
			return submission
		}
	}
	return nil
}

func (store *memoryStore) List(_ context.Context, filter gallery.Filter, limit, offset int) ([]*gallery.Submission, int, error) {
	var matched []*gallery.Submission
	for _, submission := range store.submissions {
		if filter.GroupID != "" && submission.SubmissionGroupID != filter.GroupID {
			continue
		}
		if len(filter.Status) > 0 {
			keep := false
			for _, status := range filter.Status {
				if submission.Status == status {
					keep = true
				}
			}
			if !keep {
				continue
			}
		}
		matched = append(matched, submission)
	}

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (store *memoryStore) ListApproved(context context.Context, limit, offset int) ([]*gallery.Submission, int, error) {
	return store.List(context, gallery.Filter{Status: []moderation.Status{moderation.StatusApproved}}, limit, offset)
}

func (store *memoryStore) ListByGroup(_ context.Context, groupID string) ([]*gallery.Submission, error) {
	var members []*gallery.Submission
	for _, submission := range store.submissions {
		if submission.SubmissionGroupID == groupID {
			members = append(members, submission)
		}
	}
	return members, nil
}

func (store *memoryStore) FindByID(_ context.Context, id string) (*gallery.Submission, error) {
	if submission := store.find(id); submission != nil {
		return submission, nil
	}
	return nil, apperr.NotFound("Resource")
}

func (store *memoryStore) CreateBatch(_ context.Context, submissions []*gallery.Submission) error {
	store.submissions = append(store.submissions, submissions...)
	return nil
}

func apply(submission *gallery.Submission, review moderation.Review) {
	submission.Status = review.Status
	submission.ReviewedAt = review.ReviewedAt
	submission.ReviewedBy = review.ReviewedBy
	submission.RejectionReason = review.RejectionReason
	submission.UpdatedAt = time.Now()
}

func (store *memoryStore) ApplyReview(_ context.Context, id string, review moderation.Review) (*gallery.Submission, error) {
	submission := store.find(id)
	if submission == nil {
		return nil, apperr.NotFound("Resource")
	}
	apply(submission, review)
	return submission, nil
}

func (store *memoryStore) ApplyReviewToGroup(_ context.Context, groupID string, review moderation.Review) (int, error) {
	changed := 0
	for _, submission := range store.submissions {
		if submission.SubmissionGroupID == groupID && review.Applies(submission.Status) {
			apply(submission, review)
			changed++
		}
	}
	return changed, nil
}

func (store *memoryStore) ApplyReviewToIDs(_ context.Context, ids []string, review moderation.Review) (int, error) {
	changed := 0
	for _, id := range ids {
		if submission := store.find(id); submission != nil && review.Applies(submission.Status) {
			apply(submission, review)
			changed++
		}
	}
	return changed, nil
}

func (store *memoryStore) Delete(_ context.Context, id string) (bool, error) {
	for index, submission := range store.submissions {
		if submission.ID == id {
			store.submissions = append(store.submissions[:index], store.submissions[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (store *memoryStore) DeleteGroup(_ context.Context, groupID string) (int, error) {
	var kept []*gallery.Submission
	removed := 0
	for _, submission := range store.submissions {
		if submission.SubmissionGroupID == groupID {
			removed++
			continue
		}
		kept = append(kept, submission)
	}
	store.submissions = kept
	return removed, nil
}

func (store *memoryStore) ListReports(_ context.Context, status gallery.ReportStatus, limit, offset int) ([]*gallery.Report, int, error) {
	var matched []*gallery.Report
	for _, report := range store.reports {
		if status != "" && report.Status != status {
			continue
		}
		matched = append(matched, report)
	}
	return matched, len(matched), nil
}

func (store *memoryStore) FindReportByID(_ context.Context, id string) (*gallery.Report, error) {
	for _, report := range store.reports {
		if report.ID == id {
			return report, nil
		}
	}
	return nil, apperr.NotFound("Report")
}

func (store *memoryStore) CreateReport(_ context.Context, report *gallery.Report) error {
	store.reports = append(store.reports, report)
	return nil
}

func (store *memoryStore) SetReportStatus(context context.Context, id string, status gallery.ReportStatus, reviewedBy *string) (*gallery.Report, error) {
	report, err := store.FindReportByID(context, id)
	if err != nil {
		return nil, err
	}

	report.Status = status
	report.ReviewedBy = reviewedBy
	if status == gallery.ReportStatusPending {
		report.ReviewedAt = nil
	} else {
		now := time.Now()
		report.ReviewedAt = &now
	}
	return report, nil
}

func (store *memoryStore) DeleteReport(_ context.Context, id string) (bool, error) {
	for index, report := range store.reports {
		if report.ID == id {
			store.reports = append(store.reports[:index], store.reports[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// noopCache never hits and swallows writes.
type noopCache struct{}

func (noopCache) Get(context.Context, string, any) error                           { return apperr.NotFound("Cache") }
func (noopCache) Set(context.Context, string, any, time.Duration, ...string) error { return nil }
func (noopCache) Invalidate(context.Context, ...string) error                      { return nil }

func newTestService() (*gallery.Service, *memoryStore) {
	store := &memoryStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return gallery.NewService(store, store, noopCache{}, logger), store
}

// seedGroup submits one batch and returns its members.
func seedGroup(t *testing.T, service *gallery.Service, count int) []*gallery.Submission {
	t.Helper()

	input := gallery.SubmitInput{
		Title:         "Dorffest 2026",
		SubmitterName: "Anna Schmidt",
	}
	for range count {
		input.Images = append(input.Images, gallery.SubmitImage{
			URL:      "https://cdn.wendessen.de/" + uuidv7.New() + ".jpg",
			MIME:     "image/jpeg",
			Filename: "dorffest.jpg",
		})
	}

	submissions, err := service.Submit(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, submissions, count)
	return submissions
}

// # Submission Tests

/*
TestSubmit verifies that a batch lands as pending rows sharing one group id.
*/
func TestSubmit(t *testing.T) {
	service, _ := newTestService()

	submissions := seedGroup(t, service, 3)

	groupID := submissions[0].SubmissionGroupID
	for _, submission := range submissions {
		assert.Equal(t, moderation.StatusPending, submission.Status)
		assert.Equal(t, groupID, submission.SubmissionGroupID)
		assert.NotEqual(t, groupID, submission.ID)
		assert.Nil(t, submission.ReviewedAt)
	}
}

func TestSubmit_Validation(t *testing.T) {
	service, _ := newTestService()

	tests := []struct {
		name  string
		input gallery.SubmitInput
	}{
		{"missing_title", gallery.SubmitInput{SubmitterName: "Anna", Images: []gallery.SubmitImage{{URL: "https://x/1.jpg"}}}},
		{"no_images", gallery.SubmitInput{Title: "Fest", SubmitterName: "Anna"}},
		{"image_without_url", gallery.SubmitInput{Title: "Fest", SubmitterName: "Anna", Images: []gallery.SubmitImage{{MIME: "image/png"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Submit(context.Background(), tt.input)
			assert.Error(t, err)
		})
	}
}

/*
TestSingleReviewLifecycle walks one photo through approve, re-approve,
reject and reset, checking the review metadata at every step.
*/
func TestSingleReviewLifecycle(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	submission := seedGroup(t, service, 1)[0]

	approved, err := service.Approve(ctx, submission.ID, "anna")
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "anna", *approved.ReviewedBy)

	// Single-row actions may repeat; the metadata just refreshes.
	again, err := service.Approve(ctx, submission.ID, "bernd")
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, again.Status)
	assert.Equal(t, "bernd", *again.ReviewedBy)

	reason := "duplicate upload"
	rejected, err := service.Reject(ctx, submission.ID, "anna", &reason)
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, reason, *rejected.RejectionReason)

	reset, err := service.ResetToPending(ctx, submission.ID)
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusPending, reset.Status)
	assert.Nil(t, reset.ReviewedAt)
	assert.Nil(t, reset.ReviewedBy)
	assert.Nil(t, reset.RejectionReason)
}

/*
TestApproveGroup_SkipsReviewedMembers verifies that a bulk approval only
advances the pending members, leaving earlier per-photo decisions intact.
*/
func TestApproveGroup_SkipsReviewedMembers(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	submissions := seedGroup(t, service, 3)
	groupID := submissions[0].SubmissionGroupID

	_, err := service.Approve(ctx, submissions[0].ID, "anna")
	require.NoError(t, err)
	_, err = service.Reject(ctx, submissions[1].ID, "anna", pointer.To("out of focus"))
	require.NoError(t, err)

	changed, err := service.ApproveGroup(ctx, groupID, "bernd")
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	group, err := service.GetGroup(ctx, groupID)
	require.NoError(t, err)
	assert.Equal(t, 2, group.Counts.Approved)
	assert.Equal(t, 1, group.Counts.Rejected)

	// The earlier reviewer is preserved on the member anna already approved.
	refetched, _, err := service.ListSubmissions(ctx, gallery.Filter{GroupID: groupID}, 50, 0)
	require.NoError(t, err)
	for _, member := range refetched {
		if member.ID == submissions[0].ID {
			assert.Equal(t, "anna", *member.ReviewedBy)
		}
		if member.ID == submissions[1].ID {
			assert.Equal(t, moderation.StatusRejected, member.Status)
		}
	}
}

/*
TestResetGroup clears the review metadata of every reviewed member and
leaves already-pending rows uncounted.
*/
func TestResetGroup(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	submissions := seedGroup(t, service, 3)
	groupID := submissions[0].SubmissionGroupID

	_, err := service.Approve(ctx, submissions[0].ID, "anna")
	require.NoError(t, err)
	_, err = service.Reject(ctx, submissions[1].ID, "anna", pointer.To("blurry"))
	require.NoError(t, err)

	changed, err := service.ResetGroup(ctx, groupID)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	members, _, err := service.ListSubmissions(ctx, gallery.Filter{GroupID: groupID}, 50, 0)
	require.NoError(t, err)
	for _, member := range members {
		assert.Equal(t, moderation.StatusPending, member.Status)
		assert.Nil(t, member.ReviewedAt)
		assert.Nil(t, member.ReviewedBy)
		assert.Nil(t, member.RejectionReason)
	}
}

/*
TestSelection verifies that selection actions cut across groups, skip
ineligible rows and treat an empty selection as a no-op.
*/
func TestSelection(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	first := seedGroup(t, service, 2)
	second := seedGroup(t, service, 1)

	_, err := service.Approve(ctx, first[0].ID, "anna")
	require.NoError(t, err)

	t.Run("empty_selection_is_noop", func(t *testing.T) {
		changed, err := service.ApproveSelected(ctx, nil, "anna")
		require.NoError(t, err)
		assert.Zero(t, changed)
	})

	t.Run("skips_reviewed_and_missing", func(t *testing.T) {
		ids := []string{first[0].ID, first[1].ID, second[0].ID, uuidv7.New()}
		changed, err := service.ApproveSelected(ctx, ids, "bernd")
		require.NoError(t, err)
		assert.Equal(t, 2, changed)
	})

	t.Run("reset_only_touches_reviewed", func(t *testing.T) {
		changed, err := service.ResetSelected(ctx, []string{first[0].ID, first[1].ID, second[0].ID})
		require.NoError(t, err)
		assert.Equal(t, 3, changed)
	})
}

func TestDelete_IsIdempotent(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()
	submission := seedGroup(t, service, 1)[0]

	require.NoError(t, service.Delete(ctx, submission.ID))
	assert.Empty(t, store.submissions)

	// Deleting the same id again is still a success.
	assert.NoError(t, service.Delete(ctx, submission.ID))
}

func TestListPublic_OnlyApproved(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	submissions := seedGroup(t, service, 3)

	_, err := service.Approve(ctx, submissions[1].ID, "anna")
	require.NoError(t, err)

	items, total, err := service.ListPublic(ctx, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, submissions[1].ID, items[0].ID)
}

// # Report Tests

func TestCreateReport(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	submission := seedGroup(t, service, 1)[0]

	report, err := service.CreateReport(ctx, submission.ID, "inappropriate content", nil)
	require.NoError(t, err)
	assert.Equal(t, gallery.ReportStatusPending, report.Status)
	assert.Equal(t, submission.ID, report.SubmissionID)

	t.Run("unknown_submission", func(t *testing.T) {
		_, err := service.CreateReport(ctx, uuidv7.New(), "whatever", nil)
		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	})

	t.Run("missing_reason", func(t *testing.T) {
		_, err := service.CreateReport(ctx, submission.ID, "", nil)
		assert.Error(t, err)
	})
}

/*
TestReportLifecycle resolves and reopens a report without ever touching the
reported submission.
*/
func TestReportLifecycle(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	submission := seedGroup(t, service, 1)[0]

	report, err := service.CreateReport(ctx, submission.ID, "spam", nil)
	require.NoError(t, err)

	dismissed, err := service.ResolveReport(ctx, report.ID, gallery.ReportStatusDismissed, "anna")
	require.NoError(t, err)
	assert.Equal(t, gallery.ReportStatusDismissed, dismissed.Status)
	require.NotNil(t, dismissed.ReviewedBy)
	assert.Equal(t, "anna", *dismissed.ReviewedBy)

	reopened, err := service.ResetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, gallery.ReportStatusPending, reopened.Status)
	assert.Nil(t, reopened.ReviewedAt)
	assert.Nil(t, reopened.ReviewedBy)

	// The submission never left pending.
	current, _, err := service.ListSubmissions(ctx, gallery.Filter{}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusPending, current[0].Status)

	t.Run("pending_is_not_a_resolution", func(t *testing.T) {
		_, err := service.ResolveReport(ctx, report.ID, gallery.ReportStatusPending, "anna")
		assert.Error(t, err)
	})
}

func TestReport_SurvivesSubmissionDeletion(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	submission := seedGroup(t, service, 1)[0]

	report, err := service.CreateReport(ctx, submission.ID, "spam", nil)
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, submission.ID))

	kept, err := service.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, submission.ID, kept.SubmissionID)
}

/*
TestResolveAndRemove covers the compound action: the report is marked
reviewed and the photo is rejected or deleted in one call.
*/
func TestResolveAndRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("reject_keeps_the_row", func(t *testing.T) {
		service, store := newTestService()
		submission := seedGroup(t, service, 1)[0]
		report, err := service.CreateReport(ctx, submission.ID, "spam", nil)
		require.NoError(t, err)

		resolved, err := service.ResolveAndRemove(ctx, report.ID, "anna", gallery.RemoveActionReject, pointer.To("reported by a visitor"))
		require.NoError(t, err)
		assert.Equal(t, gallery.ReportStatusReviewed, resolved.Status)

		require.Len(t, store.submissions, 1)
		assert.Equal(t, moderation.StatusRejected, store.submissions[0].Status)
	})

	t.Run("delete_removes_the_row", func(t *testing.T) {
		service, store := newTestService()
		submission := seedGroup(t, service, 1)[0]
		report, err := service.CreateReport(ctx, submission.ID, "spam", nil)
		require.NoError(t, err)

		resolved, err := service.ResolveAndRemove(ctx, report.ID, "anna", gallery.RemoveActionDelete, nil)
		require.NoError(t, err)
		assert.Equal(t, gallery.ReportStatusReviewed, resolved.Status)
		assert.Empty(t, store.submissions)
	})

	t.Run("tolerates_concurrently_deleted_submission", func(t *testing.T) {
		service, _ := newTestService()
		submission := seedGroup(t, service, 1)[0]
		report, err := service.CreateReport(ctx, submission.ID, "spam", nil)
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, submission.ID))

		resolved, err := service.ResolveAndRemove(ctx, report.ID, "anna", gallery.RemoveActionReject, nil)
		require.NoError(t, err)
		assert.Equal(t, gallery.ReportStatusReviewed, resolved.Status)
	})

	t.Run("unknown_action", func(t *testing.T) {
		service, _ := newTestService()
		submission := seedGroup(t, service, 1)[0]
		report, err := service.CreateReport(ctx, submission.ID, "spam", nil)
		require.NoError(t, err)

		_, err = service.ResolveAndRemove(ctx, report.ID, "anna", gallery.RemoveAction("archive"), nil)
		assert.Error(t, err)
	})
}
