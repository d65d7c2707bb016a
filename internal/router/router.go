package router

import (
	"log"

	"github.com/aurafeed/backend/internal/cache"
	"github.com/aurafeed/backend/internal/handlers"
	"github.com/aurafeed/backend/internal/middleware"
	"github.com/aurafeed/backend/internal/models"
	"github.com/aurafeed/backend/internal/queries"
	"github.com/aurafeed/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, storage queries.ObjectStorage) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.Profile{},
		&models.Like{},
		&models.Vibe{},
		&models.Follow{},
		&models.Bookmark{},
		&models.Attachment{},
		&models.Poll{},
		&models.PollOption{},
		&models.PollVote{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database("aurafeed"))
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	vibeRepo := repositories.NewPostgresVibeRepository(pgdb)
	pollRepo := repositories.NewPostgresPollRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(pgdb)
	attachmentRepo := repositories.NewPostgresAttachmentRepository(pgdb)

	// --- Query layer over the stores, sharing one cache ---
	queryCache := cache.New()
	q := queries.New(
		postRepo,
		profileRepo,
		likeRepo,
		vibeRepo,
		pollRepo,
		followRepo,
		bookmarkRepo,
		attachmentRepo,
		storage,
		queryCache,
	)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(profileRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// Profile routes
	profileHandler := handlers.NewProfileHandler(q)
	profileHandler.RegisterProfileRoutes(api)
	log.Println("Profile routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(q)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(q, queryCache)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Interaction routes
	interactionHandler := handlers.NewInteractionHandler(q)
	interactionHandler.RegisterInteractionRoutes(api)
	log.Println("Interaction routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(q)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Bookmark routes
	bookmarkHandler := handlers.NewBookmarkHandler(q)
	bookmarkHandler.RegisterBookmarkRoutes(api)
	log.Println("Bookmark routes configured.")

	log.Println("All routes configured.")
}
