package app

import (
	"fmt"

	"oakfield-backend/app/controller"
	"oakfield-backend/app/router"
	"oakfield-backend/db"
	"oakfield-backend/repository"
	"oakfield-backend/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	developmentRepo := repository.NewDevelopmentRepository()
	houseTypeRepo := repository.NewHouseTypeRepository()
	optionRepo := repository.NewOptionRepository()
	bundleRepo := repository.NewBundleRepository()
	bundleRuleRepo := repository.NewBundleRuleRepository()
	basketRepo := repository.NewBasketRepository()
	chatRepo := repository.NewChatRepository()

	// Initialize services
	llmService := service.NewLLMServiceFromEnv()
	strategistService := service.NewStrategistService(
		developmentRepo, houseTypeRepo, optionRepo, bundleRepo, basketRepo, llmService)

	// Create controllers
	controllers := &router.Controllers{
		Development: controller.NewDevelopmentController(developmentRepo),
		HouseType:   controller.NewHouseTypeController(houseTypeRepo),
		Option:      controller.NewOptionController(optionRepo),
		Bundle:      controller.NewBundleController(bundleRepo),
		BundleRule:  controller.NewBundleRuleController(bundleRuleRepo, bundleRepo),
		Basket:      controller.NewBasketController(basketRepo, developmentRepo, bundleRepo, bundleRuleRepo),
		Analytics:   controller.NewAnalyticsController(basketRepo, bundleRepo),
		Chat:        controller.NewChatController(chatRepo, strategistService),
		Strategist:  controller.NewStrategistController(strategistService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
