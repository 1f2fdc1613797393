package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/repository/contract"
	"kyc-verification-be/internal/repository/specification"
	"kyc-verification-be/internal/repository/unitofwork"
	"kyc-verification-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// In-memory repository fakes backing the service tests. They honor the
// same contracts as the GORM implementations: append-only embeddings,
// one liveness/result row per session, guarded status transitions.

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeStore struct {
	mu sync.Mutex

	sessions   map[uint]*entity.KycSession
	documents  []*entity.Document
	liveness   map[uint]*entity.LivenessArtifact
	embeddings []*entity.Embedding
	results    map[uint]*entity.KycResult
	audits     []*entity.AuditLog

	nextSessionId   uint
	nextDocumentId  uint
	nextLivenessId  uint
	nextEmbeddingId uint
	nextResultId    uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: make(map[uint]*entity.KycSession),
		liveness: make(map[uint]*entity.LivenessArtifact),
		results:  make(map[uint]*entity.KycResult),
	}
}

type fakeFactory struct {
	store *fakeStore
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: newFakeStore()}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) KycSessionRepository() contract.KycSessionRepository {
	return &fakeSessionRepo{store: u.store}
}
func (u *fakeUow) DocumentRepository() contract.DocumentRepository {
	return &fakeDocumentRepo{store: u.store}
}
func (u *fakeUow) LivenessArtifactRepository() contract.LivenessArtifactRepository {
	return &fakeLivenessRepo{store: u.store}
}
func (u *fakeUow) EmbeddingRepository() contract.EmbeddingRepository {
	return &fakeEmbeddingRepo{store: u.store}
}
func (u *fakeUow) KycResultRepository() contract.KycResultRepository {
	return &fakeResultRepo{store: u.store}
}
func (u *fakeUow) AuditLogRepository() contract.AuditLogRepository {
	return &fakeAuditRepo{store: u.store}
}

// --- sessions ---

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.KycSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextSessionId++
	session.Id = r.store.nextSessionId
	session.CreatedAt = time.Now()
	cp := *session
	r.store.sessions[session.Id] = &cp
	return nil
}

func (r *fakeSessionRepo) AdvanceStatus(ctx context.Context, id uint, to entity.KycStatus, onlyFrom ...entity.KycStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	session, ok := r.store.sessions[id]
	if !ok {
		return nil
	}
	if len(onlyFrom) > 0 {
		allowed := false
		for _, from := range onlyFrom {
			if session.Status == from {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil
		}
	}
	session.Status = to
	now := time.Now()
	session.UpdatedAt = &now
	return nil
}

func (r *fakeSessionRepo) FindById(ctx context.Context, id uint) (*entity.KycSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	session, ok := r.store.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KycSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var subjectFilter *string
	desc := false
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByExternalUserID:
			id := s.ExternalUserID
			subjectFilter = &id
		case specification.OrderBy:
			desc = s.Desc
		}
	}

	var match *entity.KycSession
	for _, session := range r.store.sessions {
		if subjectFilter != nil && session.ExternalUserId != *subjectFilter {
			continue
		}
		if match == nil || (desc && session.Id > match.Id) || (!desc && session.Id < match.Id) {
			match = session
		}
	}
	if match == nil {
		return nil, nil
	}
	cp := *match
	return &cp, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KycSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]*entity.KycSession, 0, len(r.store.sessions))
	for _, session := range r.store.sessions {
		cp := *session
		out = append(out, &cp)
	}
	desc := false
	limit, offset := 0, 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			desc = s.Desc
		case specification.Pagination:
			limit, offset = s.Limit, s.Offset
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].Id > out[j].Id
		}
		return out[i].Id < out[j].Id
	})
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.sessions)), nil
}

func (r *fakeSessionRepo) LatestByExternalUserId(ctx context.Context, externalUserId string) (*entity.KycSession, error) {
	return r.FindOne(ctx,
		specification.ByExternalUserID{ExternalUserID: externalUserId},
		specification.OrderBy{Field: "id", Desc: true},
	)
}

func (r *fakeSessionRepo) DistinctExternalUserIds(ctx context.Context) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seen := make(map[string]struct{})
	var ids []string
	for _, session := range r.store.sessions {
		if _, ok := seen[session.ExternalUserId]; !ok {
			seen[session.ExternalUserId] = struct{}{}
			ids = append(ids, session.ExternalUserId)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// --- documents ---

type fakeDocumentRepo struct {
	store *fakeStore
}

func (r *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextDocumentId++
	document.Id = r.store.nextDocumentId
	document.UploadedAt = time.Now()
	cp := *document
	r.store.documents = append(r.store.documents, &cp)
	return nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var sessionFilter *uint
	for _, spec := range specs {
		if s, ok := spec.(specification.BySessionID); ok {
			id := s.SessionID
			sessionFilter = &id
		}
	}

	var out []*entity.Document
	for _, doc := range r.store.documents {
		if sessionFilter != nil && doc.SessionId != *sessionFilter {
			continue
		}
		cp := *doc
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	docs, _ := r.FindAll(ctx, specs...)
	return int64(len(docs)), nil
}

// --- liveness ---

type fakeLivenessRepo struct {
	store *fakeStore
}

func (r *fakeLivenessRepo) Upsert(ctx context.Context, artifact *entity.LivenessArtifact) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.liveness[artifact.SessionId]
	if ok {
		existing.VideoKey = artifact.VideoKey
		existing.UploadedAt = time.Now()
		*artifact = *existing
		return nil
	}

	r.store.nextLivenessId++
	artifact.Id = r.store.nextLivenessId
	artifact.UploadedAt = time.Now()
	cp := *artifact
	r.store.liveness[artifact.SessionId] = &cp
	return nil
}

func (r *fakeLivenessRepo) FindBySessionId(ctx context.Context, sessionId uint) (*entity.LivenessArtifact, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	artifact, ok := r.store.liveness[sessionId]
	if !ok {
		return nil, nil
	}
	cp := *artifact
	return &cp, nil
}

// --- embeddings ---

type fakeEmbeddingRepo struct {
	store *fakeStore
}

func (r *fakeEmbeddingRepo) Create(ctx context.Context, embedding *entity.Embedding) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextEmbeddingId++
	embedding.Id = r.store.nextEmbeddingId
	embedding.CreatedAt = time.Now()
	cp := *embedding
	r.store.embeddings = append(r.store.embeddings, &cp)
	return nil
}

func (r *fakeEmbeddingRepo) Latest(ctx context.Context, sessionId uint, kind entity.EmbeddingKind) (*entity.Embedding, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var latest *entity.Embedding
	for _, row := range r.store.embeddings {
		if row.SessionId != sessionId || row.Kind != kind {
			continue
		}
		if latest == nil || row.Id > latest.Id {
			latest = row
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *fakeEmbeddingRepo) LatestForSubject(ctx context.Context, externalUserId string, kind entity.EmbeddingKind) (*entity.Embedding, error) {
	r.store.mu.Lock()
	subjectSessions := make(map[uint]struct{})
	for _, session := range r.store.sessions {
		if session.ExternalUserId == externalUserId {
			subjectSessions[session.Id] = struct{}{}
		}
	}

	var latest *entity.Embedding
	for _, row := range r.store.embeddings {
		if _, ok := subjectSessions[row.SessionId]; !ok || row.Kind != kind {
			continue
		}
		if latest == nil || row.Id > latest.Id {
			latest = row
		}
	}
	r.store.mu.Unlock()

	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *fakeEmbeddingRepo) HasKindForSubject(ctx context.Context, externalUserId string, kind entity.EmbeddingKind) (bool, error) {
	latest, err := r.LatestForSubject(ctx, externalUserId, kind)
	return latest != nil, err
}

func (r *fakeEmbeddingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Embedding, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var sessionFilter *uint
	desc := false
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BySessionID:
			id := s.SessionID
			sessionFilter = &id
		case specification.OrderBy:
			desc = s.Desc
		}
	}

	var out []*entity.Embedding
	for _, row := range r.store.embeddings {
		if sessionFilter != nil && row.SessionId != *sessionFilter {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].Id > out[j].Id
		}
		return out[i].Id < out[j].Id
	})
	return out, nil
}

func (r *fakeEmbeddingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rows, _ := r.FindAll(ctx, specs...)
	return int64(len(rows)), nil
}

// --- results ---

type fakeResultRepo struct {
	store *fakeStore
}

func (r *fakeResultRepo) UpsertMatch(ctx context.Context, sessionId uint, score float64, percent int, modelVersion string) (*entity.KycResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	result, ok := r.store.results[sessionId]
	if !ok {
		r.store.nextResultId++
		result = &entity.KycResult{Id: r.store.nextResultId, SessionId: sessionId, CreatedAt: now}
		r.store.results[sessionId] = result
	}
	result.MatchScore = &score
	result.MatchPercent = &percent
	result.ModelVersion = &modelVersion
	result.UpdatedAt = &now

	cp := *result
	return &cp, nil
}

func (r *fakeResultRepo) UpsertDecision(ctx context.Context, sessionId uint, decision entity.Decision, note *string, decidedAt time.Time) (*entity.KycResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	result, ok := r.store.results[sessionId]
	if !ok {
		r.store.nextResultId++
		result = &entity.KycResult{Id: r.store.nextResultId, SessionId: sessionId, CreatedAt: now}
		r.store.results[sessionId] = result
	}
	d := decision
	result.OperatorDecision = &d
	result.OperatorNote = note
	result.DecidedAt = &decidedAt
	result.UpdatedAt = &now

	cp := *result
	return &cp, nil
}

func (r *fakeResultRepo) FindBySessionId(ctx context.Context, sessionId uint) (*entity.KycResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result, ok := r.store.results[sessionId]
	if !ok {
		return nil, nil
	}
	cp := *result
	return &cp, nil
}

func (r *fakeResultRepo) LatestPercentForSubject(ctx context.Context, externalUserId string) (*int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var latest *entity.KycResult
	for sessionId, result := range r.store.results {
		session, ok := r.store.sessions[sessionId]
		if !ok || session.ExternalUserId != externalUserId {
			continue
		}
		if latest == nil || (result.UpdatedAt != nil && latest.UpdatedAt != nil && result.UpdatedAt.After(*latest.UpdatedAt)) {
			latest = result
		}
	}
	if latest == nil {
		return nil, nil
	}
	return latest.MatchPercent, nil
}

// --- audit ---

type fakeAuditRepo struct {
	store *fakeStore
}

func (r *fakeAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	log.CreatedAt = time.Now()
	cp := *log
	r.store.audits = append(r.store.audits, &cp)
	return nil
}

func (r *fakeAuditRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]*entity.AuditLog, 0, len(r.store.audits))
	for _, row := range r.store.audits {
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAuditRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.audits)), nil
}

// --- publisher ---

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(ctx context.Context, event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *fakePublisher) Bus() *gochannel.GoChannel { return nil }
func (p *fakePublisher) Close()                    {}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}
