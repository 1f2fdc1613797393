package controller

import (
	"kyc-verification-be/internal/pkg/serverutils"
	"kyc-verification-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISubjectController interface {
	RegisterRoutes(r fiber.Router)
	Summary(ctx *fiber.Ctx) error
	ComputeMatch(ctx *fiber.Ctx) error
}

type subjectController struct {
	subjects service.ISubjectService
	matching service.IMatchingService
}

func NewSubjectController(subjects service.ISubjectService, matching service.IMatchingService) ISubjectController {
	return &subjectController{
		subjects: subjects,
		matching: matching,
	}
}

func (c *subjectController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/kyc/v1/users")
	h.Get("/summary", serverutils.JwtMiddleware, c.Summary)
	h.Post("/:external_user_id/match/compute", c.ComputeMatch)
}

func (c *subjectController) Summary(ctx *fiber.Ctx) error {
	res, err := c.subjects.Summary(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get subject summary", res))
}

func (c *subjectController) ComputeMatch(ctx *fiber.Ctx) error {
	externalUserId := ctx.Params("external_user_id")
	if externalUserId == "" {
		return serverutils.NewInvalidInput("external_user_id is required")
	}

	res, err := c.matching.ComputeSubjectMatch(ctx.Context(), externalUserId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success compute subject match", res))
}
