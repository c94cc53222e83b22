package controller

import (
	"ai-studybuddy-be/internal/dto"
	"ai-studybuddy-be/internal/pkg/serverutils"
	"ai-studybuddy-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITierController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type tierController struct {
	entitlementService service.IEntitlementService
}

func NewTierController(entitlementService service.IEntitlementService) ITierController {
	return &tierController{
		entitlementService: entitlementService,
	}
}

func (c *tierController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tier/v1")
	h.Get("", c.Show)
}

func (c *tierController) Show(ctx *fiber.Ctx) error {
	ent := c.entitlementService.ResolveTier(ctx.Context(), identityFrom(ctx))

	res := dto.EntitlementResponse{
		Identity: ent.Identity,
		Tier:     string(ent.Tier),
		Limits: dto.TierLimitsResponse{
			MaxCardsPerGeneration: ent.Limits.MaxCardsPerGeneration,
			MaxSavedSets:          ent.Limits.MaxSavedSets,
			MaxLifetimeGenerated:  ent.Limits.MaxLifetimeGenerated,
		},
		Unconfirmed: ent.Unconfirmed,
		ExpiresAt:   ent.ExpiresAt,
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get entitlement", res))
}
