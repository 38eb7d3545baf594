// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

package moderation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enniomrk/wendessen-api/internal/moderation"
)

/*
TestReview_Invariants verifies that review metadata is present exactly when
a submission has been reviewed, and a reason only survives on rejections.
*/
func TestReview_Invariants(t *testing.T) {
	now := time.Now()
	reason := "blurry photo"

	tests := []struct {
		name         string
		review       moderation.Review
		wantStatus   moderation.Status
		wantReviewed bool
		wantReason   bool
	}{
		{"approve", moderation.Approve("anna", now), moderation.StatusApproved, true, false},
		{"reject_with_reason", moderation.Reject("anna", &reason, now), moderation.StatusRejected, true, true},
		{"reject_without_reason", moderation.Reject("anna", nil, now), moderation.StatusRejected, true, false},
		{"reset", moderation.Reset(), moderation.StatusPending, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.review.Status)

			if tt.wantReviewed {
				require.NotNil(t, tt.review.ReviewedAt)
				require.NotNil(t, tt.review.ReviewedBy)
				assert.Equal(t, "anna", *tt.review.ReviewedBy)
			} else {
				assert.Nil(t, tt.review.ReviewedAt)
				assert.Nil(t, tt.review.ReviewedBy)
			}

			if tt.wantReason {
				require.NotNil(t, tt.review.RejectionReason)
				assert.Equal(t, reason, *tt.review.RejectionReason)
			} else {
				assert.Nil(t, tt.review.RejectionReason)
			}
		})
	}
}

/*
TestReview_EmptyReasonIsDropped ensures an empty rejection reason is stored
as NULL rather than an empty string.
*/
func TestReview_EmptyReasonIsDropped(t *testing.T) {
	empty := ""
	review := moderation.Reject("anna", &empty, time.Now())

	assert.Nil(t, review.RejectionReason)
}

/*
TestReview_Applies checks the bulk policy: approve/reject only advance
pending rows, reset only touches reviewed rows.
*/
func TestReview_Applies(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		review  moderation.Review
		current moderation.Status
		want    bool
	}{
		{"approve_hits_pending", moderation.Approve("anna", now), moderation.StatusPending, true},
		{"approve_skips_approved", moderation.Approve("anna", now), moderation.StatusApproved, false},
		{"approve_skips_rejected", moderation.Approve("anna", now), moderation.StatusRejected, false},
		{"reject_hits_pending", moderation.Reject("anna", nil, now), moderation.StatusPending, true},
		{"reject_skips_rejected", moderation.Reject("anna", nil, now), moderation.StatusRejected, false},
		{"reset_skips_pending", moderation.Reset(), moderation.StatusPending, false},
		{"reset_hits_approved", moderation.Reset(), moderation.StatusApproved, true},
		{"reset_hits_rejected", moderation.Reset(), moderation.StatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.review.Applies(tt.current))
		})
	}
}

/*
TestCountByStatus verifies the group aggregation partitions correctly.
*/
func TestCountByStatus(t *testing.T) {
	counts := moderation.CountByStatus([]moderation.Status{
		moderation.StatusPending,
		moderation.StatusApproved,
		moderation.StatusPending,
		moderation.StatusRejected,
	})

	assert.Equal(t, 4, counts.Total)
	assert.Equal(t, 2, counts.Pending)
	assert.Equal(t, 1, counts.Approved)
	assert.Equal(t, 1, counts.Rejected)
}

/*
TestStatus_IsValid rejects unknown states.
*/
func TestStatus_IsValid(t *testing.T) {
	assert.True(t, moderation.StatusPending.IsValid())
	assert.True(t, moderation.StatusApproved.IsValid())
	assert.True(t, moderation.StatusRejected.IsValid())
	assert.False(t, moderation.Status("archived").IsValid())
	assert.False(t, moderation.Status("").IsValid())
}
