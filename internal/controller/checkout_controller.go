package controller

import (
	"ai-studybuddy-be/internal/dto"
	"ai-studybuddy-be/internal/pkg/serverutils"
	"ai-studybuddy-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICheckoutController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
}

type checkoutController struct {
	checkoutService service.ICheckoutService
}

func NewCheckoutController(checkoutService service.ICheckoutService) ICheckoutController {
	return &checkoutController{
		checkoutService: checkoutService,
	}
}

func (c *checkoutController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/checkout/v1")
	h.Post("", c.Start)
	h.Get(":intentId", c.Status)
	h.Post(":intentId/resolve", c.Resolve)
	h.Post(":intentId/cancel", c.Cancel)
}

func (c *checkoutController) Start(ctx *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	flow, err := c.checkoutService.Start(ctx.Context(), identityFrom(ctx), req.BillingPeriod)
	if err != nil {
		return err
	}

	res := dto.CheckoutResponse{
		IntentId:    flow.IntentId,
		CheckoutURL: flow.CheckoutURL,
		State:       string(flow.State),
	}
	return ctx.JSON(serverutils.SuccessResponse("Success start checkout", res))
}

func (c *checkoutController) Status(ctx *fiber.Ctx) error {
	flow, err := c.checkoutService.Status(ctx.Params("intentId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get checkout status", toCheckoutStatus(flow)))
}

func (c *checkoutController) Resolve(ctx *fiber.Ctx) error {
	var req dto.CheckoutResolveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	flow, err := c.checkoutService.Resolve(ctx.Context(), ctx.Params("intentId"), req.Outcome)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success resolve checkout", toCheckoutStatus(flow)))
}

func (c *checkoutController) Cancel(ctx *fiber.Ctx) error {
	flow, err := c.checkoutService.Cancel(ctx.Params("intentId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success cancel checkout polling", toCheckoutStatus(flow)))
}

func toCheckoutStatus(flow *service.CheckoutFlow) dto.CheckoutStatusResponse {
	return dto.CheckoutStatusResponse{
		IntentId: flow.IntentId,
		State:    string(flow.State),
		Message:  flow.Message,
	}
}
