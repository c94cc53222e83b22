package controller

import (
	"ai-studybuddy-be/internal/dto"
	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/pkg/serverutils"
	"ai-studybuddy-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReviewController interface {
	RegisterRoutes(r fiber.Router)
	Flip(ctx *fiber.Ctx) error
	Next(ctx *fiber.Ctx) error
	Previous(ctx *fiber.Ctx) error
	Shuffle(ctx *fiber.Ctx) error
	MarkStatus(ctx *fiber.Ctx) error
}

type reviewController struct {
	reviewService service.IReviewService
}

func NewReviewController(reviewService service.IReviewService) IReviewController {
	return &reviewController{
		reviewService: reviewService,
	}
}

func (c *reviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/review/v1")
	h.Post("flip", c.Flip)
	h.Post("next", c.Next)
	h.Post("previous", c.Previous)
	h.Post("shuffle", c.Shuffle)
	h.Post("status", c.MarkStatus)
}

func (c *reviewController) Flip(ctx *fiber.Ctx) error {
	session, err := c.reviewService.Flip(identityFrom(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success flip card", toSessionResponse(session)))
}

func (c *reviewController) Next(ctx *fiber.Ctx) error {
	session, err := c.reviewService.Next(identityFrom(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success move to next card", toSessionResponse(session)))
}

func (c *reviewController) Previous(ctx *fiber.Ctx) error {
	session, err := c.reviewService.Previous(identityFrom(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success move to previous card", toSessionResponse(session)))
}

func (c *reviewController) Shuffle(ctx *fiber.Ctx) error {
	session, err := c.reviewService.Shuffle(identityFrom(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success shuffle cards", toSessionResponse(session)))
}

func (c *reviewController) MarkStatus(ctx *fiber.Ctx) error {
	var req dto.MarkStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	session, completed, err := c.reviewService.MarkStatus(identityFrom(ctx), entity.CardStatus(req.Status))
	if err != nil {
		return err
	}

	res := dto.MarkStatusResponse{
		Completed: completed,
		Session:   toSessionResponse(session),
	}
	return ctx.JSON(serverutils.SuccessResponse("Success mark card status", res))
}
