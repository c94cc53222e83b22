package controller

import (
	"ai-studybuddy-be/internal/apperr"
	"ai-studybuddy-be/internal/dto"
	"ai-studybuddy-be/internal/pkg/serverutils"
	"ai-studybuddy-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Session(ctx *fiber.Ctx) error
}

type generationController struct {
	generationService service.IGenerationService
}

func NewGenerationController(generationService service.IGenerationService) IGenerationController {
	return &generationController{
		generationService: generationService,
	}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generation/v1")
	h.Post("", c.Generate)
	h.Get("session", c.Session)
}

func (c *generationController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	session, err := c.generationService.Generate(ctx.Context(), identityFrom(ctx), req.Text)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate flashcards", toSessionResponse(session)))
}

func (c *generationController) Session(ctx *fiber.Ctx) error {
	session, ok := c.generationService.ActiveSession(identityFrom(ctx))
	if !ok {
		return apperr.New(apperr.KindNotFound, "no active session")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session", toSessionResponse(session)))
}
