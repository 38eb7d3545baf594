// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package portrait_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enniomrk/wendessen-api/internal/moderation"
	"github.com/enniomrk/wendessen-api/internal/platform/apperr"
	"github.com/enniomrk/wendessen-api/internal/portrait"
	"github.com/enniomrk/wendessen-api/pkg/pointer"
)

// memoryStore is an in-memory portrait repository.
type memoryStore struct {
	portraits []*portrait.Portrait
}

func (store *memoryStore) find(id string) *portrait.Portrait {
	for _, entry := range store.portraits {
		if entry.ID == id {
			return entry
		}
	}
	return nil
}

func (store *memoryStore) List(_ context.Context, status []moderation.Status, limit, offset int) ([]*portrait.Portrait, int, error) {
	var matched []*portrait.Portrait
	for _, entry := range store.portraits {
		if len(status) > 0 {
			keep := false
			for _, wanted := range status {
				if entry.Status == wanted {
					keep = true
				}
			}
			if !keep {
				continue
			}
		}
		matched = append(matched, entry)
	}
	return matched, len(matched), nil
}

func (store *memoryStore) ListApproved(context context.Context, limit, offset int) ([]*portrait.Portrait, int, error) {
	return store.List(context, []moderation.Status{moderation.StatusApproved}, limit, offset)
}

func (store *memoryStore) FindByID(_ context.Context, id string) (*portrait.Portrait, error) {
	if entry := store.find(id); entry != nil {
		return entry, nil
	}
	return nil, apperr.NotFound("Portrait")
}

func (store *memoryStore) Create(_ context.Context, entry *portrait.Portrait) error {
	store.portraits = append(store.portraits, entry)
	return nil
}

func (store *memoryStore) ApplyReview(_ context.Context, id string, review moderation.Review) (*portrait.Portrait, error) {
	entry := store.find(id)
	if entry == nil {
		return nil, apperr.NotFound("Portrait")
	}
	entry.Status = review.Status
	entry.ReviewedAt = review.ReviewedAt
	entry.ReviewedBy = review.ReviewedBy
	entry.RejectionReason = review.RejectionReason
	return entry, nil
}

func (store *memoryStore) ApplyReviewToIDs(context context.Context, ids []string, review moderation.Review) (int, error) {
	changed := 0
	for _, id := range ids {
		if entry := store.find(id); entry != nil && review.Applies(entry.Status) {
			_, _ = store.ApplyReview(context, id, review)
			changed++
		}
	}
	return changed, nil
}

func (store *memoryStore) Delete(_ context.Context, id string) (bool, error) {
	for index, entry := range store.portraits {
		if entry.ID == id {
			store.portraits = append(store.portraits[:index], store.portraits[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, any) error                           { return apperr.NotFound("Cache") }
func (noopCache) Set(context.Context, string, any, time.Duration, ...string) error { return nil }
func (noopCache) Invalidate(context.Context, ...string) error                      { return nil }

func newTestService() (*portrait.Service, *memoryStore) {
	store := &memoryStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return portrait.NewService(store, noopCache{}, logger), store
}

func submit(t *testing.T, service *portrait.Service, name string) *portrait.Portrait {
	t.Helper()

	entry, err := service.Submit(context.Background(), portrait.SubmitInput{
		Name:          name,
		Quote:         "Hier kennt jeder jeden.",
		SubmitterName: "Anna Schmidt",
		ImageURL:      "https://cdn.wendessen.de/portraits/" + name + ".jpg",
	})
	require.NoError(t, err)
	return entry
}

func TestSubmit(t *testing.T) {
	service, _ := newTestService()

	entry := submit(t, service, "heinz")
	assert.Equal(t, moderation.StatusPending, entry.Status)
	assert.Nil(t, entry.ReviewedAt)

	t.Run("missing_quote", func(t *testing.T) {
		_, err := service.Submit(context.Background(), portrait.SubmitInput{
			Name:          "Heinz",
			SubmitterName: "Anna",
			ImageURL:      "https://cdn.wendessen.de/x.jpg",
		})
		assert.Error(t, err)
	})
}

func TestReviewLifecycle(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	entry := submit(t, service, "heinz")

	approved, err := service.Approve(ctx, entry.ID, "anna")
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, approved.Status)

	items, total, err := service.ListPublic(ctx, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)

	rejected, err := service.Reject(ctx, entry.ID, "anna", pointer.To("kein Portrait"))
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)

	reset, err := service.ResetToPending(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusPending, reset.Status)
	assert.Nil(t, reset.ReviewedBy)
	assert.Nil(t, reset.RejectionReason)
}

func TestSelection_BulkPolicy(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	first := submit(t, service, "heinz")
	second := submit(t, service, "gerda")

	_, err := service.Approve(ctx, first.ID, "anna")
	require.NoError(t, err)

	// Bulk approval skips the already-approved entry.
	changed, err := service.ApproveSelected(ctx, []string{first.ID, second.ID}, "bernd")
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	// Both rows are approved now, so a bulk reset touches both.
	changed, err = service.ResetSelected(ctx, []string{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	changed, err = service.ApproveSelected(ctx, nil, "anna")
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestDelete_IsIdempotent(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()
	entry := submit(t, service, "heinz")

	require.NoError(t, service.Delete(ctx, entry.ID))
	assert.Empty(t, store.portraits)
	assert.NoError(t, service.Delete(ctx, entry.ID))
}
