package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bluefood/survey/internal/config"
	"github.com/bluefood/survey/internal/domain/identity"
	"github.com/bluefood/survey/internal/domain/intake"
	"github.com/bluefood/survey/internal/domain/nutrition"
	"github.com/bluefood/survey/internal/domain/progress"
	"github.com/bluefood/survey/internal/domain/satisfaction"
	"github.com/bluefood/survey/internal/platform/auth"
	"github.com/bluefood/survey/internal/platform/db"
	"github.com/bluefood/survey/internal/platform/manifest"
	"github.com/bluefood/survey/internal/platform/middleware"
	"github.com/bluefood/survey/internal/wizard"
)

// devSessionSecret is only used when ENV=development and SESSION_SECRET
// is unset. Config validation rejects an empty secret everywhere else.
const devSessionSecret = "development-only-secret-0123456789abcdef"

func main() {
	rootCmd := &cobra.Command{
		Use:   "survey-server",
		Short: "Nursing home meal survey API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the survey API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample facilities, surveyors and residents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := seedSampleData(ctx, pool); err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			fmt.Println("Sample data seeded.")
			return nil
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	secret := cfg.SessionSecret
	if secret == "" {
		secret = devSessionSecret
		logger.Warn().Msg("SESSION_SECRET not set; using the built-in development secret")
	}

	// Field manifests are checked up front so a drifted manifest fails
	// the boot instead of a surveyor's submit.
	if err := manifest.ValidateAll(intake.Manifest(), nutrition.Manifest(), satisfaction.Manifest()); err != nil {
		logger.Fatal().Err(err).Msg("invalid questionnaire manifest")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Services
	issuer := auth.NewIssuer([]byte(secret), cfg.SessionTTL())

	identitySvc := identity.NewService(identity.NewRepoPG(pool), cfg.AdminPassword)
	identityHandler := identity.NewHandler(identitySvc, issuer)

	progressSvc := progress.NewService(progress.NewRepoPG(pool))
	progressHandler := progress.NewHandler(progressSvc)

	intakeSvc := intake.NewService(intake.NewRepoPG(pool), progressSvc)

	// The nutrition screen seeds its BMI category from the intake row
	// when the surveyor has already measured the resident.
	bmiLookup := func(ctx context.Context, elderlyID string) (float64, bool) {
		rec, err := intakeSvc.Get(ctx, elderlyID)
		if err != nil || rec.BMI <= 0 {
			return 0, false
		}
		return rec.BMI, true
	}
	nutritionSvc := nutrition.NewService(nutrition.NewRepoPG(pool), progressSvc, bmiLookup)

	satisfactionSvc := satisfaction.NewService(satisfaction.NewRepoPG(pool), progressSvc)

	wizardHandler := wizard.NewHandler(wizard.NewRegistry(), intakeSvc, nutritionSvc, satisfactionSvc)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// API groups
	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Public routes: surveyor and admin login
	identityHandler.RegisterPublic(apiV1)

	// Session-guarded surveyor routes
	session := apiV1.Group("", auth.SessionMiddleware(issuer))
	progressHandler.Register(session)
	wizardHandler.Register(session)

	// Admin routes
	adminGroup := session.Group("/admin", auth.RequireRole(auth.RoleAdmin))
	identityHandler.RegisterAdmin(adminGroup)
	progressHandler.RegisterAdmin(adminGroup)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
