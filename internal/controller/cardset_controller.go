package controller

import (
	"ai-studybuddy-be/internal/dto"
	"ai-studybuddy-be/internal/entity"
	"ai-studybuddy-be/internal/pkg/serverutils"
	"ai-studybuddy-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICardSetController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Load(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type cardSetController struct {
	cardSetService service.ICardSetService
}

func NewCardSetController(cardSetService service.ICardSetService) ICardSetController {
	return &cardSetController{
		cardSetService: cardSetService,
	}
}

func (c *cardSetController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cardset/v1")
	h.Post("", c.Save)
	h.Get("", c.List)
	h.Post(":ref/load", c.Load)
	h.Delete(":ref", c.Delete)
}

func (c *cardSetController) Save(ctx *fiber.Ctx) error {
	var req dto.SaveCardSetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	set, err := c.cardSetService.Save(ctx.Context(), identityFrom(ctx), req.Title)
	if err != nil {
		return err
	}

	res := dto.SaveCardSetResponse{
		Id:            set.Id,
		Title:         set.Title,
		TotalCards:    set.TotalCards,
		StoredLocally: set.StoredLocally,
	}
	message := "Success save set"
	if set.StoredLocally {
		message = "Remote store unavailable, set saved locally"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *cardSetController) List(ctx *fiber.Ctx) error {
	summaries, storage, err := c.cardSetService.List(ctx.Context(), identityFrom(ctx))
	if err != nil {
		return err
	}

	res := dto.CardSetListResponse{
		Sets:      toSummaryResponses(summaries),
		TotalSets: len(summaries),
		Storage:   storage,
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list sets", res))
}

func (c *cardSetController) Load(ctx *fiber.Ctx) error {
	ref := ctx.Params("ref")

	session, err := c.cardSetService.Load(ctx.Context(), identityFrom(ctx), ref)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success load set", toSessionResponse(session)))
}

func (c *cardSetController) Delete(ctx *fiber.Ctx) error {
	ref := ctx.Params("ref")
	confirmed := ctx.Query("confirm") == "true"

	if err := c.cardSetService.Delete(ctx.Context(), identityFrom(ctx), ref, confirmed); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete set", fiber.Map{"deleted": ref}))
}

func toSummaryResponses(summaries []*entity.CardSetSummary) []dto.CardSetSummaryResponse {
	res := make([]dto.CardSetSummaryResponse, len(summaries))
	for i, s := range summaries {
		res[i] = dto.CardSetSummaryResponse{
			Id:            s.Id,
			Title:         s.Title,
			TotalCards:    s.TotalCards,
			TierRequired:  string(s.TierRequired),
			IsLocked:      s.IsLocked,
			StoredLocally: s.StoredLocally,
			CreatedAt:     s.CreatedAt,
		}
	}
	return res
}
