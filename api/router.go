// api/router.go
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/versehub/versehub/api/handlers"
	"github.com/versehub/versehub/api/middleware"
	"github.com/versehub/versehub/config"
	"github.com/versehub/versehub/internal/events"
	"github.com/versehub/versehub/internal/store"
	"github.com/versehub/versehub/internal/ws"
)

// Stores bundles the process-memory state the router wires into handlers.
type Stores struct {
	Creds   *store.CredentialStore
	Courses *store.CourseStore
	Files   *store.FileStore
}

// NewStores builds and seeds all in-memory stores. Everything here resets
// on process restart.
func NewStores() (*Stores, error) {
	creds := store.NewCredentialStore()
	if err := creds.Seed(); err != nil {
		return nil, err
	}
	courses := store.NewCourseStore()
	courses.Seed()
	return &Stores{
		Creds:   creds,
		Courses: courses,
		Files:   store.NewFileStore(),
	}, nil
}

// SetupRouter initializes the Gin router and sets up all routes.
func SetupRouter(stores *Stores, cfg *config.Config) *gin.Engine {
	router := gin.Default() // Includes Logger and Recovery

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	ratelimiter := middleware.NewRateLimiter(cfg.RateLimitPerMin)
	router.Use(middleware.RateLimitMiddleware(ratelimiter))
	router.Use(middleware.RequestTimer())
	// Runs after the basic middleware but wraps every handler, so errors
	// attached with c.Error end up mapped exactly once.
	router.Use(middleware.ErrorHandler())

	// Shared infrastructure
	broker := events.NewBroker()
	hub := ws.NewHub()

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(stores.Creds, cfg)
	userHandler := handlers.NewUserHandler(stores.Creds)
	courseHandler := handlers.NewCourseHandler(stores.Courses, broker)
	uploadHandler := handlers.NewUploadHandler(stores.Files, cfg, broker)
	wsHandler := handlers.NewWSHandler(hub, stores.Creds, cfg)
	eventsHandler := handlers.NewEventsHandler(broker, stores.Creds, cfg)

	// --- Public Routes ---
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/refresh", authHandler.Refresh) // resolves its own bearer token
	}

	router.GET("/ws/connect", wsHandler.Connect)
	router.GET("/events/stream", eventsHandler.Stream)

	courseRoutes := router.Group("/api/v1/courses")
	{
		courseRoutes.GET("", courseHandler.List)
		courseRoutes.GET("/:course_id", courseHandler.Get)
	}

	// --- Protected Routes ---
	authGuard := middleware.AuthMiddleware(cfg, stores.Creds)

	protectedAuth := router.Group("/auth")
	protectedAuth.Use(authGuard)
	{
		protectedAuth.GET("/me", authHandler.Me)
		protectedAuth.POST("/logout", authHandler.Logout)
		protectedAuth.POST("/change-password", authHandler.ChangePassword)
	}

	apiRoutes := router.Group("/api/v1")
	apiRoutes.Use(authGuard)
	{
		apiRoutes.GET("/users/me", userHandler.Me)
		apiRoutes.GET("/users", middleware.RequireScope("admin"), userHandler.List)

		apiRoutes.POST("/courses", courseHandler.Create)
		apiRoutes.PUT("/courses/:course_id", courseHandler.Update)
		apiRoutes.DELETE("/courses/:course_id", courseHandler.Delete)

		apiRoutes.POST("/uploads", uploadHandler.Upload)
		apiRoutes.GET("/uploads", uploadHandler.List)
		apiRoutes.GET("/uploads/:file_id", uploadHandler.Download)
		apiRoutes.DELETE("/uploads/:file_id", uploadHandler.Delete)
	}

	return router
}
