package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	all := []KycStatus{
		StatusNew, StatusDocUploaded, StatusLiveUploaded,
		StatusReadyForReview, StatusApproved, StatusRejected, StatusNeedsRetry,
	}

	t.Run("after document added", func(t *testing.T) {
		for _, s := range all {
			got := s.AfterDocumentAdded()
			if s == StatusNew {
				assert.Equal(t, StatusDocUploaded, got)
			} else {
				assert.Equal(t, s, got, "document must not regress %s", s)
			}
		}
	})

	t.Run("after liveness set", func(t *testing.T) {
		for _, s := range all {
			got := s.AfterLivenessSet()
			if s == StatusNew || s == StatusDocUploaded {
				assert.Equal(t, StatusLiveUploaded, got)
			} else {
				assert.Equal(t, s, got, "liveness must not regress %s", s)
			}
		}
	})

	t.Run("after match upserted", func(t *testing.T) {
		for _, s := range all {
			assert.Equal(t, StatusReadyForReview, s.AfterMatchUpserted())
		}
	})
}

func TestStatusForDecision(t *testing.T) {
	assert.Equal(t, StatusApproved, StatusForDecision(DecisionApproved))
	assert.Equal(t, StatusRejected, StatusForDecision(DecisionRejected))
	assert.Equal(t, StatusNeedsRetry, StatusForDecision(DecisionNeedsRetry))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, StatusReadyForReview.Valid())
	assert.False(t, KycStatus("PENDING").Valid())

	assert.True(t, DecisionNeedsRetry.Valid())
	assert.False(t, Decision("ESCALATE").Valid())

	assert.True(t, DocumentTypeNric.Valid())
	assert.False(t, DocumentType("VISA").Valid())

	assert.True(t, EmbeddingKindDocument.Valid())
	assert.False(t, EmbeddingKind("VOICE").Valid())
}
