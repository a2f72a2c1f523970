package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/devconnector/social-api/docs"
	"github.com/devconnector/social-api/internal/api/handler"
	"github.com/devconnector/social-api/internal/api/metrics"
	"github.com/devconnector/social-api/internal/api/middleware"
	"github.com/devconnector/social-api/internal/core/ports"
)

// Deps carries everything the router needs. Services are built by the
// caller so the router stays free of storage concerns.
type Deps struct {
	Log      zerolog.Logger
	Tokens   ports.TokenVerifier
	Auth     ports.AuthService
	Profiles ports.ProfileService
	Posts    ports.PostService
	Github   ports.GithubService
	Checks   []handler.DependencyCheck

	// Metrics receives the HTTP request collectors. Nil means the default
	// registry, which is what /metrics serves.
	Metrics prometheus.Registerer

	// AuthRate and AuthBurst throttle POST /auth and POST /users per client IP.
	AuthRate  float64
	AuthBurst int
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(metrics.Middleware(d.Metrics, responseStatus))

	// --- Handlers ---
	userHandler := handler.NewUserHandler(d.Auth)
	authHandler := handler.NewAuthHandler(d.Auth)
	profileHandler := handler.NewProfileHandler(d.Profiles, d.Github)
	postHandler := handler.NewPostHandler(d.Posts)
	healthHandler := handler.NewHealthHandler(d.Checks...)

	requireAuth := middleware.Auth(d.Tokens)
	throttle := middleware.RateLimit(d.AuthRate, d.AuthBurst)

	// --- Users & auth ---
	e.GET("/users", userHandler.Ping)
	e.POST("/users", userHandler.Register, throttle)
	e.POST("/auth", authHandler.Login, throttle)
	e.GET("/auth", authHandler.Me, requireAuth)

	// --- Profile ---
	profile := e.Group("/profile")
	profile.GET("", profileHandler.List)
	profile.GET("/user/:user_id", profileHandler.ByUser)
	profile.GET("/github/:username", profileHandler.GithubRepos)
	profile.GET("/me", profileHandler.Me, requireAuth)
	profile.POST("", profileHandler.Upsert, requireAuth)
	profile.DELETE("", profileHandler.Delete, requireAuth)
	profile.PUT("/experience", profileHandler.AddExperience, requireAuth)
	profile.DELETE("/experience/:exp_id", profileHandler.RemoveExperience, requireAuth)
	profile.PUT("/education", profileHandler.AddEducation, requireAuth)
	profile.DELETE("/education/:edu_id", profileHandler.RemoveEducation, requireAuth)

	// --- Posts (all authenticated) ---
	posts := e.Group("/posts", requireAuth)
	posts.POST("", postHandler.Create)
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.DELETE("/:id", postHandler.Delete)
	posts.PUT("/like/:id", postHandler.Like)
	posts.PUT("/unlike/:id", postHandler.Unlike)
	posts.PUT("/comment/:id", postHandler.AddComment)
	posts.DELETE("/comment/:id/:comment_id", postHandler.DeleteComment)

	// --- Operational (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
