package service

import (
	"context"
	"time"

	"kyc-verification-be/internal/dto"
	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/pkg/serverutils"
	"kyc-verification-be/internal/repository/specification"
	"kyc-verification-be/internal/repository/unitofwork"
	"kyc-verification-be/pkg/events"
)

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Show(ctx context.Context, id uint) (*dto.SessionDetailResponse, error)
	List(ctx context.Context, limit, offset int) (*dto.SessionListResponse, error)
	AddDocument(ctx context.Context, req *dto.AddDocumentRequest) (*dto.DocumentResponse, error)
	SetLiveness(ctx context.Context, req *dto.SetLivenessRequest) (*dto.LivenessResponse, error)
	UpsertMatchResult(ctx context.Context, req *dto.UpsertMatchRequest) (*dto.ResultResponse, error)
	RecordDecision(ctx context.Context, req *dto.RecordDecisionRequest) (*dto.ResultResponse, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := entity.KycSession{
		ExternalUserId: req.ExternalUserId,
		Status:         entity.StatusNew,
	}
	if err := uow.KycSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewSessionEvent(events.TypeSessionCreated, session.Id, session.ExternalUserId, nil))

	return toSessionResponse(&session), nil
}

func (s *sessionService) Show(ctx context.Context, id uint) (*dto.SessionDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.KycSessionRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewSessionNotFound()
	}

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.BySessionID{SessionID: id},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, err
	}

	liveness, err := uow.LivenessArtifactRepository().FindBySessionId(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := uow.KycResultRepository().FindBySessionId(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.SessionDetailResponse{
		SessionResponse: *toSessionResponse(session),
		Documents:       make([]*dto.DocumentResponse, 0, len(documents)),
	}
	for _, d := range documents {
		detail.Documents = append(detail.Documents, toDocumentResponse(d))
	}
	if liveness != nil {
		detail.Liveness = &dto.LivenessResponse{
			VideoKey:   liveness.VideoKey,
			UploadedAt: liveness.UploadedAt,
		}
	}
	if result != nil {
		detail.Result = toResultResponse(result)
	}

	return detail, nil
}

func (s *sessionService) List(ctx context.Context, limit, offset int) (*dto.SessionListResponse, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.KycSessionRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := uow.KycSessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "id", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, toSessionResponse(session))
	}

	return &dto.SessionListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *sessionService) AddDocument(ctx context.Context, req *dto.AddDocumentRequest) (*dto.DocumentResponse, error) {
	docType := entity.DocumentType(req.Type)
	if !docType.Valid() {
		return nil, serverutils.NewInvalidInput("unknown document type")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := uow.KycSessionRepository().FindById(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewSessionNotFound()
	}

	document := entity.Document{
		SessionId: req.SessionId,
		Type:      docType,
		FileKey:   req.FileKey,
	}
	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}

	// Only NEW advances; documents added later never regress the status.
	if err := uow.KycSessionRepository().AdvanceStatus(ctx, req.SessionId, entity.StatusDocUploaded, entity.StatusNew); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewSessionEvent(events.TypeDocumentAdded, session.Id, session.ExternalUserId, map[string]interface{}{
		"document_type": string(docType),
		"file_key":      document.FileKey,
	}))

	return toDocumentResponse(&document), nil
}

func (s *sessionService) SetLiveness(ctx context.Context, req *dto.SetLivenessRequest) (*dto.LivenessResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := uow.KycSessionRepository().FindById(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewSessionNotFound()
	}

	artifact := entity.LivenessArtifact{
		SessionId: req.SessionId,
		VideoKey:  req.VideoKey,
	}
	if err := uow.LivenessArtifactRepository().Upsert(ctx, &artifact); err != nil {
		return nil, err
	}

	if err := uow.KycSessionRepository().AdvanceStatus(ctx, req.SessionId, entity.StatusLiveUploaded,
		entity.StatusNew, entity.StatusDocUploaded); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewSessionEvent(events.TypeLivenessSet, session.Id, session.ExternalUserId, map[string]interface{}{
		"video_key": artifact.VideoKey,
	}))

	return &dto.LivenessResponse{
		VideoKey:   artifact.VideoKey,
		UploadedAt: artifact.UploadedAt,
	}, nil
}

func (s *sessionService) UpsertMatchResult(ctx context.Context, req *dto.UpsertMatchRequest) (*dto.ResultResponse, error) {
	modelVersion := ""
	if req.ModelVersion != nil {
		modelVersion = *req.ModelVersion
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := uow.KycSessionRepository().FindById(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewSessionNotFound()
	}

	result, err := uow.KycResultRepository().UpsertMatch(ctx, req.SessionId, req.MatchScore, req.MatchPercent, modelVersion)
	if err != nil {
		return nil, err
	}

	// A score implies both artifacts exist, so review-readiness supersedes
	// any upload-driven state.
	if err := uow.KycSessionRepository().AdvanceStatus(ctx, req.SessionId, entity.StatusReadyForReview); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewSessionEvent(events.TypeMatchComputed, session.Id, session.ExternalUserId, map[string]interface{}{
		"score":   req.MatchScore,
		"percent": req.MatchPercent,
		"status":  string(entity.StatusReadyForReview),
	}))

	return toResultResponse(result), nil
}

func (s *sessionService) RecordDecision(ctx context.Context, req *dto.RecordDecisionRequest) (*dto.ResultResponse, error) {
	decision := entity.Decision(req.OperatorDecision)
	if !decision.Valid() {
		return nil, serverutils.NewInvalidInput("unknown operator decision")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := uow.KycSessionRepository().FindById(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewSessionNotFound()
	}

	result, err := uow.KycResultRepository().UpsertDecision(ctx, req.SessionId, decision, req.OperatorNote, time.Now())
	if err != nil {
		return nil, err
	}

	status := entity.StatusForDecision(decision)
	if err := uow.KycSessionRepository().AdvanceStatus(ctx, req.SessionId, status); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewSessionEvent(events.TypeDecisionRecorded, session.Id, session.ExternalUserId, map[string]interface{}{
		"decision": string(decision),
		"status":   string(status),
	}))

	return toResultResponse(result), nil
}

func toSessionResponse(session *entity.KycSession) *dto.SessionResponse {
	updatedAt := session.CreatedAt
	if session.UpdatedAt != nil {
		updatedAt = *session.UpdatedAt
	}
	return &dto.SessionResponse{
		Id:             session.Id,
		ExternalUserId: session.ExternalUserId,
		Status:         string(session.Status),
		CreatedAt:      session.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func toDocumentResponse(document *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:         document.Id,
		Type:       string(document.Type),
		FileKey:    document.FileKey,
		UploadedAt: document.UploadedAt,
	}
}

func toResultResponse(result *entity.KycResult) *dto.ResultResponse {
	var decision *string
	if result.OperatorDecision != nil {
		d := string(*result.OperatorDecision)
		decision = &d
	}
	updatedAt := result.CreatedAt
	if result.UpdatedAt != nil {
		updatedAt = *result.UpdatedAt
	}
	return &dto.ResultResponse{
		MatchScore:       result.MatchScore,
		MatchPercent:     result.MatchPercent,
		ModelVersion:     result.ModelVersion,
		OperatorDecision: decision,
		OperatorNote:     result.OperatorNote,
		DecidedAt:        result.DecidedAt,
		UpdatedAt:        updatedAt,
	}
}
