package controller

import (
	"context"
	"time"

	"ai-studybuddy-be/internal/dto"
	"ai-studybuddy-be/internal/pkg/serverutils"
	"ai-studybuddy-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const appVersion = "1.0.0"

type IStatusController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type statusController struct {
	remote    service.RemoteStore
	aiEnabled bool
}

func NewStatusController(remote service.RemoteStore, aiEnabled bool) IStatusController {
	return &statusController{
		remote:    remote,
		aiEnabled: aiEnabled,
	}
}

func (c *statusController) RegisterRoutes(r fiber.Router) {
	r.Get("/status", c.Status)
	r.Get("/health", c.Health)
}

func (c *statusController) Status(ctx *fiber.Ctx) error {
	res := dto.StatusResponse{
		Message:   "StudyBuddy API is running",
		Version:   appVersion,
		Storage:   c.storageMode(ctx.Context()),
		AiEnabled: c.aiEnabled,
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get status", res))
}

func (c *statusController) Health(ctx *fiber.Ctx) error {
	res := dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Storage:   c.storageMode(ctx.Context()),
		AiEnabled: c.aiEnabled,
	}
	return ctx.JSON(serverutils.SuccessResponse("Success health check", res))
}

// storageMode probes the remote store to report which store writes would
// land in right now.
func (c *statusController) storageMode(parent context.Context) string {
	probeCtx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if _, err := c.remote.ListSets(probeCtx, "health-probe", false); err != nil {
		return service.StorageLocal
	}
	return service.StorageRemote
}
