package service

import (
	"context"

	"kyc-verification-be/internal/dto"
	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/repository/memory"
	"kyc-verification-be/internal/repository/unitofwork"
)

const summaryCacheKey = "subject_summary"

// ISubjectService serves the operator dashboard's per-subject rollup:
// which subjects have uploaded a document, which have a face on file, and
// their latest match percent.
type ISubjectService interface {
	Summary(ctx context.Context) (*dto.SubjectSummaryListResponse, error)
	InvalidateSummary()
}

type subjectService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.SummaryCache
}

func NewSubjectService(uowFactory unitofwork.RepositoryFactory, cache *memory.SummaryCache) ISubjectService {
	return &subjectService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *subjectService) Summary(ctx context.Context) (*dto.SubjectSummaryListResponse, error) {
	if cached, found := s.cache.Get(summaryCacheKey); found {
		if resp, ok := cached.(*dto.SubjectSummaryListResponse); ok {
			return resp, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	subjectIds, err := uow.KycSessionRepository().DistinctExternalUserIds(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SubjectSummaryResponse, 0, len(subjectIds))
	for _, id := range subjectIds {
		docUploaded, err := uow.EmbeddingRepository().HasKindForSubject(ctx, id, entity.EmbeddingKindDocument)
		if err != nil {
			return nil, err
		}
		kycUploaded, err := uow.EmbeddingRepository().HasKindForSubject(ctx, id, entity.EmbeddingKindFace)
		if err != nil {
			return nil, err
		}
		percent, err := uow.KycResultRepository().LatestPercentForSubject(ctx, id)
		if err != nil {
			return nil, err
		}

		items = append(items, &dto.SubjectSummaryResponse{
			ExternalUserId: id,
			DocUploaded:    docUploaded,
			KycUploaded:    kycUploaded,
			Percent:        percent,
		})
	}

	resp := &dto.SubjectSummaryListResponse{Items: items}
	s.cache.Set(summaryCacheKey, resp)
	return resp, nil
}

func (s *subjectService) InvalidateSummary() {
	s.cache.Invalidate(summaryCacheKey)
}
