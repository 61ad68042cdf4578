// Package server contains the HTTP handlers for the BucksBuddy and RecipeVault APIs.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "barrique/docs" // swagger docs
	"barrique/internal/auth"
	"barrique/internal/cache"
	"barrique/internal/config"
	"barrique/internal/database"
	"barrique/internal/featureflags"
	"barrique/internal/middleware"
	"barrique/internal/models"
	"barrique/internal/repository"
	"barrique/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	featureFlags   *featureflags.Manager
	rateLimiter    *middleware.RateLimiter

	userRepo           repository.UserRepository
	authService        *service.AuthService
	userService        *service.UserService
	journeyService     *service.JourneyService
	expenditureService *service.ExpenditureService
	recipeService      *service.RecipeService
	ingredientService  *service.IngredientService
	nutritionService   *service.NutritionalValueService
	stepService        *service.RecipeStepService
	toolService        *service.ToolService
	tagService         *service.TagService
}

// NewServer connects to the database and Redis and wires every service.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil, in which case logout revocation and rate limiting are off.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	opts := []auth.TokenOption{}
	if redisClient != nil {
		opts = append(opts, auth.WithRevocationStore(cache.NewTokenRevocations(redisClient)))
	}
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL(), opts...)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	userRepo := repository.NewUserRepository(db, redisClient)
	journeyRepo := repository.NewJourneyRepository(db)
	expenditureRepo := repository.NewExpenditureRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	authz := service.NewAuthorizer(journeyRepo, expenditureRepo, recipeRepo)

	models.ExposeErrorDetails = !cfg.IsProduction()

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("barrique-api"),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		rateLimiter: middleware.NewRateLimiter(redisClient,
			middleware.RateLimitEnabledFor(cfg.Env), middleware.FailOpen),

		userRepo:           userRepo,
		authService:        service.NewAuthService(userRepo, auth.NewPasswordHasher(cfg.BcryptCost), tokens),
		userService:        service.NewUserService(userRepo),
		journeyService:     service.NewJourneyService(journeyRepo, authz),
		expenditureService: service.NewExpenditureService(expenditureRepo, authz),
		recipeService:      service.NewRecipeService(recipeRepo, authz),
		ingredientService: service.NewComponentService[models.Ingredient](
			repository.NewComponentRepository[models.Ingredient](db, "Ingredient"), authz),
		nutritionService: service.NewComponentService[models.NutritionalValue](
			repository.NewComponentRepository[models.NutritionalValue](db, "NutritionalValue"), authz),
		stepService: service.NewComponentService[models.RecipeStep](
			repository.NewComponentRepository[models.RecipeStep](db, "RecipeStep"), authz),
		toolService: service.NewComponentService[models.Tool](
			repository.NewComponentRepository[models.Tool](db, "Tool"), authz),
		tagService: service.NewComponentService[models.Tag](
			repository.NewComponentRepository[models.Tag](db, "Tag"), authz),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS must run before anything that can short-circuit so that error
	// responses still carry the headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Barrique Backend Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Public user routes. Specific paths are registered before /user/:id.
	user := api.Group("/user")
	user.Post("/register", s.rateLimiter.Limit(s.registerLimit(), 10*time.Minute, "register"), s.Register)
	user.Post("/login", s.rateLimiter.Limit(s.loginLimit(), 5*time.Minute, "login"), s.Login)
	api.Get("/tags/types", s.RequireFeature(featureflags.RecipeVault), s.GetTagTypes)

	// Auth is attached per route so unknown /api paths still answer 404.
	protected := authRouter{Router: api, auth: s.AuthRequired()}
	protected.Post("/user/logout", s.Logout)
	protected.Get("/user/me", s.GetMe)
	protected.Get("/feature-flags", s.GetFeatureFlags)

	// Subsystem gates are attached per route: a Group with an empty prefix
	// would install them for every later /api route.
	bucks := s.RequireFeature(featureflags.BucksBuddy)
	protected.Get("/user/journey", bucks, s.GetMyJourneys)
	protected.Post("/journey", bucks, s.CreateJourney)
	protected.Get("/journey/:journeyId/expenditure", bucks, s.GetExpenditures)
	protected.Post("/journey/:journeyId/expenditure", bucks, s.CreateExpenditure)
	protected.Get("/journey/:journeyId/expenditure/:expenditureId", bucks, s.GetExpenditure)
	protected.Put("/journey/:journeyId/expenditure/:expenditureId", bucks, s.UpdateExpenditure)
	protected.Delete("/journey/:journeyId/expenditure/:expenditureId", bucks, s.DeleteExpenditure)
	protected.Get("/journey/:id", bucks, s.GetJourney)
	protected.Put("/journey/:id", bucks, s.UpdateJourney)
	protected.Delete("/journey/:id", bucks, s.DeleteJourney)
	protected.Get("/users/expenditures", bucks, s.GetMyExpenditures)

	vault := s.RequireFeature(featureflags.RecipeVault)
	protected.Get("/user/recipe", vault, s.GetMyRecipes)
	protected.Post("/recipe", vault, s.CreateRecipe)
	protected.Get("/recipe/:id", vault, s.GetRecipe)
	protected.Put("/recipe/:id", vault, s.UpdateRecipe)
	protected.Delete("/recipe/:id", vault, s.DeleteRecipe)
	registerComponentRoutes(protected, "ingredients", s.ingredientService, vault)
	registerComponentRoutes(protected, "nutritionalValues", s.nutritionService, vault)
	registerComponentRoutes(protected, "steps", s.stepService, vault)
	registerComponentRoutes(protected, "tools", s.toolService, vault)
	registerComponentRoutes(protected, "tags", s.tagService, vault)

	// Generic /user/:id routes must come after the /user/* routes above.
	protected.Get("/user", s.GetAllUsers)
	protected.Get("/user/:id<int>", s.GetUser)
	protected.Delete("/user/:username", s.DeleteUser)
}

func (s *Server) loginLimit() int {
	if s.config.LoginRateLimit > 0 {
		return s.config.LoginRateLimit
	}
	return 10
}

func (s *Server) registerLimit() int {
	if s.config.RegisterRateLimit > 0 {
		return s.config.RegisterRateLimit
	}
	return 3
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports database and Redis health. Redis is optional, so a
// missing client is reported but does not fail the probe.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.db == nil {
		dbStatus = "unhealthy"
	} else if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// authRouter registers routes with the auth handler in front of their own.
type authRouter struct {
	fiber.Router
	auth fiber.Handler
}

func (r authRouter) with(handlers []fiber.Handler) []fiber.Handler {
	return append([]fiber.Handler{r.auth}, handlers...)
}

func (r authRouter) Get(path string, handlers ...fiber.Handler) fiber.Router {
	r.Router.Get(path, r.with(handlers)...)
	return r
}

func (r authRouter) Post(path string, handlers ...fiber.Handler) fiber.Router {
	r.Router.Post(path, r.with(handlers)...)
	return r
}

func (r authRouter) Put(path string, handlers ...fiber.Handler) fiber.Router {
	r.Router.Put(path, r.with(handlers)...)
	return r
}

func (r authRouter) Delete(path string, handlers ...fiber.Handler) fiber.Router {
	r.Router.Delete(path, r.with(handlers)...)
	return r
}

// AuthRequired resolves the bearer token to a caller and stores it in locals
// ("userID", "username") and in the request context for logging.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := middleware.BearerToken(c)
		if !ok {
			return models.RespondWithAppError(c, models.NewUnauthorizedError("Authorization required"))
		}

		caller, err := s.authService.ResolveCaller(c.UserContext(), token)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}

		c.Locals("userID", caller.ID)
		c.Locals("username", caller.Username)
		c.SetUserContext(middleware.WithCaller(c.UserContext(), caller.ID, caller.Username))
		return c.Next()
	}
}

// RequireFeature answers 404 for every route of a subsystem that is switched off.
func (s *Server) RequireFeature(flag string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.featureFlags.Enabled(flag, callerID(c)) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
				Error: "Not found",
				Code:  models.CodeNotFound,
			})
		}
		return c.Next()
	}
}

// NewApp builds the Fiber application with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Barrique API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithAppError(c, err)
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.NewApp()
	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
			}
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
