package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"stride-store/app/controller"
	"stride-store/app/router"
	"stride-store/cart"
	"stride-store/db"
	"stride-store/repository"
	"stride-store/service"
)

// Initialize wires the application and returns its HTTP handler.
func Initialize(log *logrus.Logger) (http.Handler, error) {
	if err := db.InitDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := service.EnsureCacheDir(); err != nil {
		return nil, err
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Cart persistence: redis when configured, in-memory otherwise.
	var cartPersistence cart.Persistence
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisStore := cart.NewRedisStore(redisAddr, log)
		if err := redisStore.Initialize(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		cartPersistence = redisStore
	} else {
		log.Warn("REDIS_ADDR not set, carts are kept in memory and lost on restart")
		cartPersistence = cart.NewMemoryStore()
	}

	// Drive access is optional: without credentials the import and image
	// endpoints report failures but the storefront still runs.
	var driveService service.DriveServiceInterface
	if credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsPath != "" {
		ds, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return nil, err
		}
		driveService = ds
	} else {
		log.Warn("GOOGLE_APPLICATION_CREDENTIALS not set, Drive import is disabled")
		driveService = service.DisabledDriveService{}
	}

	productRepo := repository.NewProductRepository()
	orderRepo := repository.NewOrderRepository()
	userRepo := repository.NewUserRepository()
	wishlistRepo := repository.NewWishlistRepository()

	authService := service.NewAuthService(userRepo, jwtSecret)

	// Bootstrap admin account: Register only creates regular users, so the
	// admin surface is unreachable until one account is seeded.
	if adminEmail := os.Getenv("ADMIN_EMAIL"); adminEmail != "" {
		adminPassword := os.Getenv("ADMIN_PASSWORD")
		if adminPassword == "" {
			return nil, fmt.Errorf("ADMIN_EMAIL is set but ADMIN_PASSWORD is not")
		}
		if err := authService.EnsureAdmin(context.Background(), adminEmail, adminPassword); err != nil {
			return nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
		}
		log.WithField("email", adminEmail).Info("admin account ensured")
	}
	gateway := service.NewHostedGateway(os.Getenv("PAYMENT_API_URL"), os.Getenv("PAYMENT_API_KEY"))
	checkoutService := service.NewCheckoutService(orderRepo, gateway, cartPersistence, baseURL, log)
	importService := service.NewImportService(driveService, productRepo, log)
	catalogService := service.NewCatalogExportService(productRepo, driveService, log)

	controllers := &router.Controllers{
		Auth:         controller.NewAuthController(authService, userRepo),
		Product:      controller.NewProductController(productRepo, driveService, log),
		Cart:         controller.NewCartController(productRepo, cartPersistence, log),
		Checkout:     controller.NewCheckoutController(checkoutService, userRepo, cartPersistence, log),
		Order:        controller.NewOrderController(orderRepo),
		Wishlist:     controller.NewWishlistController(wishlistRepo, productRepo),
		AdminProduct: controller.NewAdminProductController(productRepo, importService, catalogService, log),
	}

	return router.New(controllers, authService, log), nil
}
