package service

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"kyc-verification-be/internal/dto"
	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/pkg/logger"
	"kyc-verification-be/internal/pkg/serverutils"
	"kyc-verification-be/internal/repository/specification"
	"kyc-verification-be/internal/repository/unitofwork"
	"kyc-verification-be/pkg/embedding"
	"kyc-verification-be/pkg/events"
	"kyc-verification-be/pkg/storage"
)

const (
	categoryFaces     = "faces"
	categoryDocuments = "documents"
	categoryLiveness  = "liveness"
)

// IUploadService handles raw artifact ingestion. Files always persist;
// embedding computation is best-effort and its failures degrade into the
// response instead of failing the upload.
type IUploadService interface {
	UploadFaceImage(ctx context.Context, sessionId uint, ext string, data []byte) (*dto.UploadResponse, error)
	UploadDocumentImage(ctx context.Context, sessionId uint, docType string, ext string, data []byte) (*dto.UploadResponse, error)
	UploadLivenessVideo(ctx context.Context, sessionId uint, ext string, data []byte) (*dto.UploadResponse, error)
	ListEmbeddings(ctx context.Context, sessionId uint) ([]*dto.EmbeddingSummaryResponse, error)
}

type uploadService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   ISessionService
	store      storage.FileStore
	provider   embedding.Provider
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewUploadService(
	uowFactory unitofwork.RepositoryFactory,
	sessions ISessionService,
	store storage.FileStore,
	provider embedding.Provider,
	publisher IPublisherService,
	log logger.ILogger,
) IUploadService {
	return &uploadService{
		uowFactory: uowFactory,
		sessions:   sessions,
		store:      store,
		provider:   provider,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *uploadService) UploadFaceImage(ctx context.Context, sessionId uint, ext string, data []byte) (*dto.UploadResponse, error) {
	session, err := s.findSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	fileKey, err := s.store.Save(ctx, categoryFaces, sessionId, ext, data)
	if err != nil {
		return nil, err
	}

	resp := &dto.UploadResponse{Ok: true, FileKey: fileKey}

	vec, err := s.provider.ComputeEmbedding(ctx, data, embedding.KindFace)
	if err != nil {
		// The image stays persisted; the caller sees a null dim and a
		// diagnostic message.
		resp.Message = providerMessage(err)
		s.logger.Warn("Upload", "Face embedding unavailable", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
		return resp, nil
	}

	dim, err := s.appendEmbedding(ctx, session, entity.EmbeddingKindFace, vec, fileKey)
	if err != nil {
		return nil, err
	}
	resp.EmbeddingDim = &dim
	return resp, nil
}

func (s *uploadService) UploadDocumentImage(ctx context.Context, sessionId uint, docType string, ext string, data []byte) (*dto.UploadResponse, error) {
	if !entity.DocumentType(docType).Valid() {
		return nil, serverutils.NewInvalidInput("unknown document type")
	}

	session, err := s.findSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	fileKey, err := s.store.Save(ctx, categoryDocuments, sessionId, ext, data)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessions.AddDocument(ctx, &dto.AddDocumentRequest{
		SessionId: sessionId,
		Type:      docType,
		FileKey:   fileKey,
	}); err != nil {
		return nil, err
	}

	resp := &dto.UploadResponse{Ok: true, FileKey: fileKey}

	// A document image without an extractable face cannot participate in
	// matching, so that case is reported as not-ok even though the file
	// and document row are kept.
	vec, err := s.provider.ComputeEmbedding(ctx, data, embedding.KindDocument)
	if err != nil {
		resp.Ok = false
		resp.Message = providerMessage(err)
		s.logger.Warn("Upload", "Document embedding unavailable", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
		return resp, nil
	}

	dim, err := s.appendEmbedding(ctx, session, entity.EmbeddingKindDocument, vec, fileKey)
	if err != nil {
		return nil, err
	}
	resp.EmbeddingDim = &dim
	return resp, nil
}

func (s *uploadService) UploadLivenessVideo(ctx context.Context, sessionId uint, ext string, data []byte) (*dto.UploadResponse, error) {
	session, err := s.findSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	fileKey, err := s.store.Save(ctx, categoryLiveness, sessionId, ext, data)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessions.SetLiveness(ctx, &dto.SetLivenessRequest{
		SessionId: sessionId,
		VideoKey:  fileKey,
	}); err != nil {
		return nil, err
	}

	resp := &dto.UploadResponse{Ok: true, FileKey: fileKey}

	frame, err := extractFrame(ctx, data, ext)
	if err != nil {
		resp.Message = strPtr(fmt.Sprintf("frame extraction failed: %s", err.Error()))
		s.logger.Warn("Upload", "Liveness frame extraction failed", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
		return resp, nil
	}

	vec, err := s.provider.ComputeEmbedding(ctx, frame, embedding.KindFace)
	if err != nil {
		resp.Message = providerMessage(err)
		s.logger.Warn("Upload", "Liveness face embedding unavailable", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
		return resp, nil
	}

	dim, err := s.appendEmbedding(ctx, session, entity.EmbeddingKindFace, vec, fileKey)
	if err != nil {
		return nil, err
	}
	resp.EmbeddingDim = &dim
	return resp, nil
}

func (s *uploadService) ListEmbeddings(ctx context.Context, sessionId uint) ([]*dto.EmbeddingSummaryResponse, error) {
	if _, err := s.findSession(ctx, sessionId); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.EmbeddingRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "id", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.EmbeddingSummaryResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, &dto.EmbeddingSummaryResponse{
			Id:        row.Id,
			SessionId: row.SessionId,
			Kind:      string(row.Kind),
			FileKey:   row.FileKey,
			Dim:       row.Dim,
			CreatedAt: row.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return items, nil
}

func (s *uploadService) findSession(ctx context.Context, sessionId uint) (*entity.KycSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.KycSessionRepository().FindById(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewSessionNotFound()
	}
	return session, nil
}

func (s *uploadService) appendEmbedding(ctx context.Context, session *entity.KycSession, kind entity.EmbeddingKind, vec []float32, fileKey string) (int, error) {
	normalized := embedding.Normalize(vec)

	row := entity.Embedding{
		SessionId: session.Id,
		Kind:      kind,
		Vector:    normalized,
		Dim:       len(normalized),
		FileKey:   fileKey,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.EmbeddingRepository().Create(ctx, &row); err != nil {
		return 0, err
	}

	s.publisher.Publish(ctx, events.NewSessionEvent(events.TypeEmbeddingAppended, session.Id, session.ExternalUserId, map[string]interface{}{
		"kind": string(kind),
		"dim":  row.Dim,
	}))

	return row.Dim, nil
}

// extractFrame grabs the first video frame as a JPEG via ffmpeg. The video
// bytes go through a temp file because ffmpeg needs a seekable input for
// most container formats.
func extractFrame(ctx context.Context, video []byte, ext string) ([]byte, error) {
	if ext == "" {
		ext = ".mp4"
	}
	if ext[0] != '.' {
		ext = "." + ext
	}

	in, err := os.CreateTemp("", "liveness-*"+ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(in.Name())

	if _, err := in.Write(video); err != nil {
		in.Close()
		return nil, err
	}
	in.Close()

	out := filepath.Join(os.TempDir(), filepath.Base(in.Name())+".jpg")
	defer os.Remove(out)

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-i", in.Name(),
		"-frames:v", "1",
		"-q:v", "2",
		out,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, string(output))
	}

	return os.ReadFile(out)
}

func providerMessage(err error) *string {
	if pe, ok := embedding.AsProviderError(err); ok {
		return strPtr(fmt.Sprintf("%s: %s", pe.Reason, pe.Message))
	}
	return strPtr(err.Error())
}

func strPtr(s string) *string {
	return &s
}
