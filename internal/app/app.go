package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/hefica/hefica-backend/internal/config"
	"github.com/hefica/hefica-backend/internal/handler"
	"github.com/hefica/hefica-backend/internal/mailer"
	"github.com/hefica/hefica-backend/internal/repository"
	"github.com/hefica/hefica-backend/internal/service"
	"github.com/hefica/hefica-backend/internal/utils"
	"github.com/hefica/hefica-backend/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra       Infrastructure
	config      *config.Config
	router      *gin.Engine
	server      *http.Server
	rateLimiter *service.RateLimiter
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())

	sessionManager := utils.NewSessionManager(cfg.Session.Secret, cfg.Session.Expiry.Duration)
	denylist := service.NewSessionDenylist(infra.Redis())
	rateLimiter := service.NewRateLimiter(cfg.RateLimit.SweepInterval.Duration)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP, cfg.App)
	healthChecker := NewHealthChecker(infra)

	authMetrics, err := observability.NewAuthMetrics()
	if err != nil {
		infra.Logger().Warn("auth metrics disabled", zap.Error(err))
	}

	authService := service.NewAuthService(
		repos.Account,
		smtpMailer,
		rateLimiter,
		sessionManager,
		denylist,
		cfg.Security,
		cfg.RateLimit,
		authMetrics,
		infra.Logger(),
	)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(authService)
	workoutHandler := handler.NewWorkoutHandler(repos.Workout)
	exerciseHandler := handler.NewExerciseHandler(repos.Exercise)
	mealPlanHandler := handler.NewMealPlanHandler(repos.MealPlan)
	mealHandler := handler.NewMealHandler(repos.Meal, repos.MealPlan)
	progressHandler := handler.NewProgressHandler(repos.ProgressLog)
	dashboardHandler := handler.NewDashboardHandler(repos.Workout, repos.Meal, repos.ProgressLog, repos.Account)

	router := gin.Default()
	router.Use(otelgin.Middleware("hefica-backend"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS))

	setupRoutes(router, routeHandlers{
		auth:      authHandler,
		profile:   profileHandler,
		workouts:  workoutHandler,
		exercises: exerciseHandler,
		mealPlans: mealPlanHandler,
		meals:     mealHandler,
		progress:  progressHandler,
		dashboard: dashboardHandler,
		health:    healthChecker,
		metrics:   infra.MetricsHandler(),
	}, authService)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:       infra,
		config:      cfg,
		router:      router,
		server:      srv,
		rateLimiter: rateLimiter,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

type routeHandlers struct {
	auth      *handler.AuthHandler
	profile   *handler.ProfileHandler
	workouts  *handler.WorkoutHandler
	exercises *handler.ExerciseHandler
	mealPlans *handler.MealPlanHandler
	meals     *handler.MealHandler
	progress  *handler.ProgressHandler
	dashboard *handler.DashboardHandler
	health    *HealthChecker
	metrics   http.Handler
}

func setupRoutes(router *gin.Engine, h routeHandlers, authService service.AuthService) {
	router.GET("/metrics", observability.MetricsHandler(h.metrics))
	router.GET("/health", h.health.Handler)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.auth.Signup)
			auth.POST("/login", h.auth.Login)
			auth.POST("/logout", h.auth.Logout)
			auth.POST("/resend-verification", h.auth.ResendVerification)
			auth.POST("/verify-email", h.auth.VerifyEmail)
			auth.POST("/forgot-password", h.auth.ForgotPassword)
			auth.POST("/reset-password", h.auth.ResetPassword)
		}

		protected := api.Group("")
		protected.Use(handler.AuthMiddleware(authService))
		{
			protected.GET("/user/profile", h.profile.GetProfile)
			protected.PUT("/user/profile", h.profile.UpdateProfile)

			protected.GET("/workouts", h.workouts.List)
			protected.POST("/workouts", h.workouts.Create)
			protected.GET("/workouts/:id", h.workouts.Get)
			protected.PUT("/workouts/:id", h.workouts.Update)
			protected.DELETE("/workouts/:id", h.workouts.Delete)

			protected.GET("/exercises", h.exercises.List)
			protected.POST("/exercises", h.exercises.Create)
			protected.GET("/exercises/:id", h.exercises.Get)
			protected.PUT("/exercises/:id", h.exercises.Update)
			protected.DELETE("/exercises/:id", h.exercises.Delete)

			protected.GET("/meal-plans", h.mealPlans.List)
			protected.POST("/meal-plans", h.mealPlans.Create)
			protected.GET("/meal-plans/:id", h.mealPlans.Get)
			protected.PUT("/meal-plans/:id", h.mealPlans.Update)
			protected.DELETE("/meal-plans/:id", h.mealPlans.Delete)

			protected.GET("/meals", h.meals.List)
			protected.POST("/meals", h.meals.Create)
			protected.GET("/meals/:id", h.meals.Get)
			protected.PUT("/meals/:id", h.meals.Update)
			protected.DELETE("/meals/:id", h.meals.Delete)

			protected.GET("/progress-logs", h.progress.List)
			protected.POST("/progress-logs", h.progress.Create)
			protected.GET("/progress-logs/:id", h.progress.Get)
			protected.PUT("/progress-logs/:id", h.progress.Update)
			protected.DELETE("/progress-logs/:id", h.progress.Delete)

			protected.GET("/dashboard/stats", h.dashboard.Stats)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	a.rateLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
