package controller

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"

	"kyc-verification-be/internal/dto"
	"kyc-verification-be/internal/pkg/serverutils"
	"kyc-verification-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	AddDocument(ctx *fiber.Ctx) error
	SetLiveness(ctx *fiber.Ctx) error
	UpsertMatch(ctx *fiber.Ctx) error
	RecordDecision(ctx *fiber.Ctx) error
	UploadFaceImage(ctx *fiber.Ctx) error
	UploadDocumentImage(ctx *fiber.Ctx) error
	UploadLivenessVideo(ctx *fiber.Ctx) error
	ListEmbeddings(ctx *fiber.Ctx) error
	ComputeMatch(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessions service.ISessionService
	uploads  service.IUploadService
	matching service.IMatchingService
}

func NewSessionController(
	sessions service.ISessionService,
	uploads service.IUploadService,
	matching service.IMatchingService,
) ISessionController {
	return &sessionController{
		sessions: sessions,
		uploads:  uploads,
		matching: matching,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/kyc/v1")
	h.Post("/sessions", c.Create)
	h.Get("/sessions", c.List)
	h.Get("/sessions/:id", c.Show)
	h.Post("/sessions/:id/documents", c.AddDocument)
	h.Put("/sessions/:id/liveness", c.SetLiveness)
	h.Put("/sessions/:id/match", c.UpsertMatch)
	h.Post("/sessions/:id/match/compute", c.ComputeMatch)
	h.Post("/sessions/:id/face-image", c.UploadFaceImage)
	h.Post("/sessions/:id/document-image", c.UploadDocumentImage)
	h.Post("/sessions/:id/liveness-video", c.UploadLivenessVideo)
	h.Get("/sessions/:id/embeddings", c.ListEmbeddings)

	// Decisions are operator-only.
	h.Post("/sessions/:id/decision", serverutils.JwtMiddleware, c.RecordDecision)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewInvalidInput("malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessions.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessions.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.sessions.List(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *sessionController) AddDocument(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AddDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewInvalidInput("malformed request body")
	}
	req.SessionId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessions.AddDocument(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add document", res))
}

func (c *sessionController) SetLiveness(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SetLivenessRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewInvalidInput("malformed request body")
	}
	req.SessionId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessions.SetLiveness(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set liveness", res))
}

func (c *sessionController) UpsertMatch(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpsertMatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewInvalidInput("malformed request body")
	}
	req.SessionId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessions.UpsertMatchResult(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upsert match result", res))
}

func (c *sessionController) RecordDecision(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.RecordDecisionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewInvalidInput("malformed request body")
	}
	req.SessionId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessions.RecordDecision(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record decision", res))
}

func (c *sessionController) UploadFaceImage(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	data, ext, err := readUpload(ctx)
	if err != nil {
		return err
	}

	res, err := c.uploads.UploadFaceImage(ctx.Context(), id, ext, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload face image", res))
}

func (c *sessionController) UploadDocumentImage(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	docType := ctx.FormValue("type", "OTHER")

	data, ext, err := readUpload(ctx)
	if err != nil {
		return err
	}

	res, err := c.uploads.UploadDocumentImage(ctx.Context(), id, docType, ext, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload document image", res))
}

func (c *sessionController) UploadLivenessVideo(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	data, ext, err := readUpload(ctx)
	if err != nil {
		return err
	}

	res, err := c.uploads.UploadLivenessVideo(ctx.Context(), id, ext, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload liveness video", res))
}

func (c *sessionController) ListEmbeddings(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.uploads.ListEmbeddings(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list embeddings", res))
}

func (c *sessionController) ComputeMatch(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.matching.ComputeSessionMatch(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success compute match", res))
}

func sessionIdParam(ctx *fiber.Ctx) (uint, error) {
	idParam := ctx.Params("id")
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil || id == 0 {
		return 0, serverutils.NewInvalidInput("session id must be a positive integer")
	}
	return uint(id), nil
}

func readUpload(ctx *fiber.Ctx) ([]byte, string, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, "", serverutils.NewInvalidInput("multipart field 'file' is required")
	}

	data, err := readMultipartFile(fileHeader)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", serverutils.NewInvalidInput("uploaded file is empty")
	}

	return data, filepath.Ext(fileHeader.Filename), nil
}

func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
