package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"kyc-verification-be/internal/dto"
	"kyc-verification-be/internal/repository/memory"
	"kyc-verification-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	mu       sync.Mutex
	messages [][]byte
}

func (f *fakeFeed) Broadcast(data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, data)
}

func (f *fakeFeed) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func TestNotifierService_ConsumesBus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	factory := newFakeFactory()
	publisher := NewPublisherService(nil, nopLogger{})
	defer publisher.Close()

	feed := &fakeFeed{}
	subjects := NewSubjectService(factory, memory.NewSummaryCache(time.Minute))
	notifier := NewNotifierService(publisher, factory, subjects, feed, nil, "", nopLogger{})

	require.NoError(t, notifier.Start(ctx))

	note := map[string]interface{}{"decision": "APPROVED"}
	publisher.Publish(ctx, events.NewSessionEvent(events.TypeDecisionRecorded, 7, "user-1", note))

	require.Eventually(t, func() bool {
		rows, err := factory.NewUnitOfWork(ctx).AuditLogRepository().FindAll(ctx)
		return err == nil && len(rows) == 1
	}, 2*time.Second, 10*time.Millisecond, "audit row never appeared")

	rows, err := factory.NewUnitOfWork(ctx).AuditLogRepository().FindAll(ctx)
	require.NoError(t, err)
	row := rows[0]
	assert.Equal(t, events.TypeDecisionRecorded, row.EventType)
	require.NotNil(t, row.SessionId)
	assert.Equal(t, uint(7), *row.SessionId)
	require.NotNil(t, row.ExternalUserId)
	assert.Equal(t, "user-1", *row.ExternalUserId)
	assert.Equal(t, "APPROVED", row.Details["decision"])

	assert.Eventually(t, func() bool { return feed.count() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestNotifierService_MatchComputedRefreshesSummary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	factory := newFakeFactory()
	publisher := NewPublisherService(nil, nopLogger{})
	defer publisher.Close()

	sessions := NewSessionService(factory, &fakePublisher{})
	subjects := NewSubjectService(factory, memory.NewSummaryCache(time.Minute))
	notifier := NewNotifierService(publisher, factory, subjects, &fakeFeed{}, nil, "", nopLogger{})
	require.NoError(t, notifier.Start(ctx))

	session := mustCreateSession(t, sessions, "user-1")

	// Warm the cache before any match exists.
	warm, err := subjects.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, warm.Items, 1)
	assert.Nil(t, warm.Items[0].Percent)

	_, err = sessions.UpsertMatchResult(ctx, &dto.UpsertMatchRequest{
		SessionId: session.Id, MatchScore: 0.82, MatchPercent: 91,
	})
	require.NoError(t, err)
	publisher.Publish(ctx, events.NewSessionEvent(events.TypeMatchComputed, session.Id, "user-1",
		map[string]interface{}{"percent": 91}))

	require.Eventually(t, func() bool {
		res, err := subjects.Summary(ctx)
		if err != nil || len(res.Items) != 1 {
			return false
		}
		return res.Items[0].Percent != nil && *res.Items[0].Percent == 91
	}, 2*time.Second, 10*time.Millisecond, "summary kept serving the pre-match percent")
}
