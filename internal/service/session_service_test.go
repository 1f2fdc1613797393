package service

import (
	"context"
	"testing"

	"kyc-verification-be/internal/dto"
	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/pkg/serverutils"
	"kyc-verification-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionServiceUnderTest() (ISessionService, *fakeFactory, *fakePublisher) {
	factory := newFakeFactory()
	publisher := &fakePublisher{}
	return NewSessionService(factory, publisher), factory, publisher
}

func mustCreateSession(t *testing.T, svc ISessionService, externalUserId string) *dto.SessionResponse {
	t.Helper()
	res, err := svc.Create(context.Background(), &dto.CreateSessionRequest{ExternalUserId: externalUserId})
	require.NoError(t, err)
	return res
}

func TestSessionService_Create(t *testing.T) {
	svc, _, publisher := newSessionServiceUnderTest()

	res := mustCreateSession(t, svc, "user-1")

	assert.Equal(t, uint(1), res.Id)
	assert.Equal(t, "user-1", res.ExternalUserId)
	assert.Equal(t, string(entity.StatusNew), res.Status)
	assert.Equal(t, []string{events.TypeSessionCreated}, publisher.types())

	// Ids are monotonically increasing
	second := mustCreateSession(t, svc, "user-1")
	assert.Greater(t, second.Id, res.Id)
}

func TestSessionService_AddDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("bumps NEW to DOC_UPLOADED", func(t *testing.T) {
		svc, _, publisher := newSessionServiceUnderTest()
		session := mustCreateSession(t, svc, "user-1")

		doc, err := svc.AddDocument(ctx, &dto.AddDocumentRequest{
			SessionId: session.Id,
			Type:      "PASSPORT",
			FileKey:   "docs/a.jpg",
		})
		require.NoError(t, err)
		assert.Equal(t, "PASSPORT", doc.Type)

		detail, err := svc.Show(ctx, session.Id)
		require.NoError(t, err)
		assert.Equal(t, string(entity.StatusDocUploaded), detail.Status)
		assert.Len(t, detail.Documents, 1)
		assert.Contains(t, publisher.types(), events.TypeDocumentAdded)
	})

	t.Run("later documents never regress the status", func(t *testing.T) {
		svc, _, _ := newSessionServiceUnderTest()
		session := mustCreateSession(t, svc, "user-1")

		_, err := svc.SetLiveness(ctx, &dto.SetLivenessRequest{SessionId: session.Id, VideoKey: "v.mp4"})
		require.NoError(t, err)

		_, err = svc.AddDocument(ctx, &dto.AddDocumentRequest{SessionId: session.Id, Type: "NRIC", FileKey: "docs/b.jpg"})
		require.NoError(t, err)

		detail, err := svc.Show(ctx, session.Id)
		require.NoError(t, err)
		assert.Equal(t, string(entity.StatusLiveUploaded), detail.Status)
		assert.Len(t, detail.Documents, 1)
	})

	t.Run("unknown session", func(t *testing.T) {
		svc, _, _ := newSessionServiceUnderTest()

		_, err := svc.AddDocument(ctx, &dto.AddDocumentRequest{SessionId: 999, Type: "OTHER", FileKey: "x"})
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "SESSION_NOT_FOUND", appErr.Code)
	})

	t.Run("unknown document type", func(t *testing.T) {
		svc, _, _ := newSessionServiceUnderTest()
		session := mustCreateSession(t, svc, "user-1")

		_, err := svc.AddDocument(ctx, &dto.AddDocumentRequest{SessionId: session.Id, Type: "DRIVERS_LICENSE", FileKey: "x"})
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_INPUT", appErr.Code)
	})
}

func TestSessionService_SetLiveness(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces single artifact in place", func(t *testing.T) {
		svc, _, _ := newSessionServiceUnderTest()
		session := mustCreateSession(t, svc, "user-1")

		_, err := svc.SetLiveness(ctx, &dto.SetLivenessRequest{SessionId: session.Id, VideoKey: "v1.mp4"})
		require.NoError(t, err)
		res, err := svc.SetLiveness(ctx, &dto.SetLivenessRequest{SessionId: session.Id, VideoKey: "v2.mp4"})
		require.NoError(t, err)
		assert.Equal(t, "v2.mp4", res.VideoKey)

		detail, err := svc.Show(ctx, session.Id)
		require.NoError(t, err)
		require.NotNil(t, detail.Liveness)
		assert.Equal(t, "v2.mp4", detail.Liveness.VideoKey)
		assert.Equal(t, string(entity.StatusLiveUploaded), detail.Status)
	})

	t.Run("does not regress READY_FOR_REVIEW", func(t *testing.T) {
		svc, _, _ := newSessionServiceUnderTest()
		session := mustCreateSession(t, svc, "user-1")

		_, err := svc.UpsertMatchResult(ctx, &dto.UpsertMatchRequest{SessionId: session.Id, MatchScore: 0.5, MatchPercent: 75})
		require.NoError(t, err)

		_, err = svc.SetLiveness(ctx, &dto.SetLivenessRequest{SessionId: session.Id, VideoKey: "again.mp4"})
		require.NoError(t, err)

		detail, err := svc.Show(ctx, session.Id)
		require.NoError(t, err)
		assert.Equal(t, string(entity.StatusReadyForReview), detail.Status)
	})
}

func TestSessionService_UpsertMatchResult(t *testing.T) {
	ctx := context.Background()
	svc, _, publisher := newSessionServiceUnderTest()
	session := mustCreateSession(t, svc, "user-1")

	version := "cosine-v1"
	res, err := svc.UpsertMatchResult(ctx, &dto.UpsertMatchRequest{
		SessionId:    session.Id,
		MatchScore:   0.82,
		MatchPercent: 91,
		ModelVersion: &version,
	})
	require.NoError(t, err)
	require.NotNil(t, res.MatchScore)
	assert.InDelta(t, 0.82, *res.MatchScore, 1e-9)
	require.NotNil(t, res.MatchPercent)
	assert.Equal(t, 91, *res.MatchPercent)
	assert.Nil(t, res.OperatorDecision)

	detail, err := svc.Show(ctx, session.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusReadyForReview), detail.Status)
	assert.Contains(t, publisher.types(), events.TypeMatchComputed)

	// Re-upsert overwrites in place
	res, err = svc.UpsertMatchResult(ctx, &dto.UpsertMatchRequest{SessionId: session.Id, MatchScore: -0.1, MatchPercent: 45})
	require.NoError(t, err)
	assert.InDelta(t, -0.1, *res.MatchScore, 1e-9)
	assert.Equal(t, 45, *res.MatchPercent)
}

func TestSessionService_RecordDecision(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		decision string
		status   entity.KycStatus
	}{
		{"APPROVED", entity.StatusApproved},
		{"REJECTED", entity.StatusRejected},
		{"NEEDS_RETRY", entity.StatusNeedsRetry},
	}

	for _, tc := range cases {
		t.Run(tc.decision, func(t *testing.T) {
			svc, _, publisher := newSessionServiceUnderTest()
			session := mustCreateSession(t, svc, "user-1")

			note := "reviewed manually"
			res, err := svc.RecordDecision(ctx, &dto.RecordDecisionRequest{
				SessionId:        session.Id,
				OperatorDecision: tc.decision,
				OperatorNote:     &note,
			})
			require.NoError(t, err)
			require.NotNil(t, res.OperatorDecision)
			assert.Equal(t, tc.decision, *res.OperatorDecision)
			require.NotNil(t, res.DecidedAt)
			// Decision without a prior match leaves score fields null
			assert.Nil(t, res.MatchScore)
			assert.Nil(t, res.MatchPercent)

			detail, err := svc.Show(ctx, session.Id)
			require.NoError(t, err)
			assert.Equal(t, string(tc.status), detail.Status)
			assert.Contains(t, publisher.types(), events.TypeDecisionRecorded)
		})
	}

	t.Run("decision preserves match fields", func(t *testing.T) {
		svc, _, _ := newSessionServiceUnderTest()
		session := mustCreateSession(t, svc, "user-1")

		_, err := svc.UpsertMatchResult(ctx, &dto.UpsertMatchRequest{SessionId: session.Id, MatchScore: 0.9, MatchPercent: 95})
		require.NoError(t, err)

		res, err := svc.RecordDecision(ctx, &dto.RecordDecisionRequest{SessionId: session.Id, OperatorDecision: "APPROVED"})
		require.NoError(t, err)
		require.NotNil(t, res.MatchPercent)
		assert.Equal(t, 95, *res.MatchPercent)
	})

	t.Run("unknown decision", func(t *testing.T) {
		svc, _, _ := newSessionServiceUnderTest()
		session := mustCreateSession(t, svc, "user-1")

		_, err := svc.RecordDecision(ctx, &dto.RecordDecisionRequest{SessionId: session.Id, OperatorDecision: "MAYBE"})
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_INPUT", appErr.Code)
	})
}

func TestSessionService_List(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionServiceUnderTest()

	for i := 0; i < 5; i++ {
		mustCreateSession(t, svc, "user-1")
	}

	res, err := svc.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Total)
	require.Len(t, res.Items, 2)
	// Newest first
	assert.Equal(t, uint(5), res.Items[0].Id)
	assert.Equal(t, uint(4), res.Items[1].Id)

	res, err = svc.List(ctx, 2, 4)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, uint(1), res.Items[0].Id)

	// Out-of-range limits are clamped
	res, err = svc.List(ctx, -5, -3)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Limit)
	assert.Equal(t, 0, res.Offset)
}

func TestSessionService_ShowUnknown(t *testing.T) {
	svc, _, _ := newSessionServiceUnderTest()

	_, err := svc.Show(context.Background(), 42)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SESSION_NOT_FOUND", appErr.Code)
}
