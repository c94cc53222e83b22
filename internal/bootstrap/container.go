package bootstrap

import (
	"ai-studybuddy-be/internal/config"
	"ai-studybuddy-be/internal/controller"
	"ai-studybuddy-be/internal/pkg/logger"
	"ai-studybuddy-be/internal/repository/implementation"
	"ai-studybuddy-be/internal/repository/memory"
	"ai-studybuddy-be/internal/service"
	"ai-studybuddy-be/pkg/cardgen"
	"ai-studybuddy-be/pkg/cardgen/gemini"
	"ai-studybuddy-be/pkg/payment"
	"ai-studybuddy-be/pkg/remotestore"
	"ai-studybuddy-be/pkg/tierapi"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	GenerationController controller.IGenerationController
	CardSetController    controller.ICardSetController
	ReviewController     controller.IReviewController
	TierController       controller.ITierController
	CheckoutController   controller.ICheckoutController
	StatusController     controller.IStatusController
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. External Collaborators
	remoteStore := remotestore.NewClient(cfg.Remote.StoreBaseURL, cfg.Remote.Timeout)
	tierLookup := tierapi.NewClient(cfg.Remote.TierBaseURL, cfg.Remote.Timeout)
	gateway := payment.NewMidtransGateway(cfg.Payment.MidtransServerKey, cfg.Payment.MidtransProduction)

	var provider cardgen.Provider = gemini.NewGeminiProvider(cfg.Ai.GeminiAPIKey, cfg.Ai.GeminiModel)

	// 3. Repositories
	sessionRepo := memory.NewSessionRepository()
	cardSetRepo := implementation.NewCardSetRepository(db)
	entitlementRepo := implementation.NewEntitlementRepository(db)

	// 4. Services
	entitlementService := service.NewEntitlementService(tierLookup, entitlementRepo, sysLogger)
	generationService := service.NewGenerationService(provider, sessionRepo, entitlementService, sysLogger)
	cardSetService := service.NewCardSetService(remoteStore, cardSetRepo, sessionRepo, entitlementService, sysLogger)
	reviewService := service.NewReviewService(sessionRepo, sysLogger)
	checkoutService := service.NewCheckoutService(
		gateway,
		entitlementService,
		sysLogger,
		cfg.Payment.PollInterval,
		cfg.Payment.PollTimeout,
	)

	// 5. Controllers
	return &Container{
		GenerationController: controller.NewGenerationController(generationService),
		CardSetController:    controller.NewCardSetController(cardSetService),
		ReviewController:     controller.NewReviewController(reviewService),
		TierController:       controller.NewTierController(entitlementService),
		CheckoutController:   controller.NewCheckoutController(checkoutService),
		StatusController:     controller.NewStatusController(remoteStore, cfg.Ai.GeminiAPIKey != ""),
	}
}
