package service

import (
	"context"
	"errors"

	"kyc-verification-be/internal/dto"
	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/pkg/logger"
	"kyc-verification-be/internal/pkg/serverutils"
	"kyc-verification-be/internal/repository/unitofwork"
	"kyc-verification-be/pkg/matching"
)

// IMatchingService compares the latest FACE embedding against the latest
// DOCUMENT embedding and records the outcome on the session result. A
// missing embedding or a dimension fault is a structured not-ok response;
// nothing is written in that case.
type IMatchingService interface {
	ComputeSessionMatch(ctx context.Context, sessionId uint) (*dto.MatchComputeResponse, error)
	ComputeSubjectMatch(ctx context.Context, externalUserId string) (*dto.MatchComputeResponse, error)
}

type matchingService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   ISessionService
	logger     logger.ILogger
}

func NewMatchingService(uowFactory unitofwork.RepositoryFactory, sessions ISessionService, log logger.ILogger) IMatchingService {
	return &matchingService{
		uowFactory: uowFactory,
		sessions:   sessions,
		logger:     log,
	}
}

func (s *matchingService) ComputeSessionMatch(ctx context.Context, sessionId uint) (*dto.MatchComputeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.KycSessionRepository().FindById(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewSessionNotFound()
	}

	face, err := uow.EmbeddingRepository().Latest(ctx, sessionId, entity.EmbeddingKindFace)
	if err != nil {
		return nil, err
	}
	document, err := uow.EmbeddingRepository().Latest(ctx, sessionId, entity.EmbeddingKindDocument)
	if err != nil {
		return nil, err
	}

	return s.compute(ctx, sessionId, face, document)
}

func (s *matchingService) ComputeSubjectMatch(ctx context.Context, externalUserId string) (*dto.MatchComputeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Subject matches land on the subject's most recent session.
	session, err := uow.KycSessionRepository().LatestByExternalUserId(ctx, externalUserId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewSessionNotFound()
	}

	face, err := uow.EmbeddingRepository().LatestForSubject(ctx, externalUserId, entity.EmbeddingKindFace)
	if err != nil {
		return nil, err
	}
	document, err := uow.EmbeddingRepository().LatestForSubject(ctx, externalUserId, entity.EmbeddingKindDocument)
	if err != nil {
		return nil, err
	}

	return s.compute(ctx, session.Id, face, document)
}

func (s *matchingService) compute(ctx context.Context, sessionId uint, face, document *entity.Embedding) (*dto.MatchComputeResponse, error) {
	var faceVec, docVec []float32
	if face != nil {
		faceVec = face.Vector
	}
	if document != nil {
		docVec = document.Vector
	}

	score, percent, err := matching.Compute(faceVec, docVec)
	if err != nil {
		if errors.Is(err, matching.ErrInsufficientEmbeddings) {
			return notOk(err.Error()), nil
		}
		var mismatch *matching.DimensionMismatchError
		if errors.As(err, &mismatch) {
			s.logger.Error("Matching", "Embedding dimension mismatch", map[string]interface{}{
				"session_id": sessionId, "face_dim": mismatch.FaceDim, "document_dim": mismatch.DocumentDim,
			})
			return notOk(err.Error()), nil
		}
		return nil, err
	}

	modelVersion := matching.ModelVersion
	if _, err := s.sessions.UpsertMatchResult(ctx, &dto.UpsertMatchRequest{
		SessionId:    sessionId,
		MatchScore:   score,
		MatchPercent: percent,
		ModelVersion: &modelVersion,
	}); err != nil {
		return nil, err
	}

	return &dto.MatchComputeResponse{
		Ok:      true,
		Score:   &score,
		Percent: &percent,
	}, nil
}

func notOk(message string) *dto.MatchComputeResponse {
	return &dto.MatchComputeResponse{Ok: false, Message: &message}
}
