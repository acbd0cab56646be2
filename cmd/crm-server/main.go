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

	"github.com/clinic/crm/internal/config"
	"github.com/clinic/crm/internal/domain/account"
	"github.com/clinic/crm/internal/domain/catalog"
	"github.com/clinic/crm/internal/domain/department"
	"github.com/clinic/crm/internal/domain/history"
	"github.com/clinic/crm/internal/domain/patient"
	"github.com/clinic/crm/internal/domain/slot"
	"github.com/clinic/crm/internal/domain/specialty"
	"github.com/clinic/crm/internal/platform/auth"
	"github.com/clinic/crm/internal/platform/db"
	"github.com/clinic/crm/internal/platform/middleware"
	"github.com/clinic/crm/internal/platform/phone"
)

func main() {
	root := &cobra.Command{
		Use:   "crm-server",
		Short: "Clinic CRM backend",
	}
	root.AddCommand(serveCmd(), migrateCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, db.PoolConfig{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	var denylist auth.Denylist
	if cfg.RedisURL != "" {
		denylist, err = auth.NewRedisDenylist(cfg.RedisURL)
		if err != nil {
			return err
		}
		logger.Info().Msg("using redis denylist")
	} else {
		denylist = auth.NewMemoryDenylist()
		logger.Info().Msg("using in-memory denylist")
	}
	defer denylist.Close()

	issuer := auth.NewTokenIssuer(cfg.JWTSecret,
		time.Duration(cfg.AccessTokenTTLMin)*time.Minute,
		time.Duration(cfg.RefreshTokenTTLHrs)*time.Hour)
	phones := phone.NewValidator(cfg.PhoneRegion)

	specialtyRepo := specialty.NewRepo(pool)
	departmentRepo := department.NewRepo(pool)
	catalogRepo := catalog.NewRepo(pool)
	slotRepo := slot.NewRepo(pool)
	accountRepo := account.NewRepo(pool)
	patientRepo := patient.NewRepo(pool)
	historyRepo := history.NewRepo(pool)

	specialtySvc := specialty.NewService(specialtyRepo)
	departmentSvc := department.NewService(departmentRepo)
	catalogSvc := catalog.NewCatalog(catalogRepo, departmentRepo, cfg.ServicePriceMax)
	slotSvc := slot.NewService(slotRepo)
	accountSvc := account.NewService(accountRepo, issuer, denylist, phones, departmentRepo, specialtyRepo)
	patientSvc := patient.NewService(patientRepo, phones, departmentRepo, catalogRepo, slotRepo, accountRepo)
	historySvc := history.NewService(historyRepo, patientRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	}
	e.Use(auth.Middleware(issuer, auth.Skipper))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")
	account.NewHandler(accountSvc).RegisterRoutes(api)
	specialty.NewHandler(specialtySvc).RegisterRoutes(api)
	department.NewHandler(departmentSvc).RegisterRoutes(api)
	catalog.NewHandler(catalogSvc).RegisterRoutes(api)
	slot.NewHandler(slotSvc).RegisterRoutes(api)
	patient.NewHandler(patientSvc).RegisterRoutes(api)
	history.NewHandler(historySvc).RegisterRoutes(api)

	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func migrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "migrations", "migrations directory")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(dir, func(ctx context.Context, m *db.Migrator, logger zerolog.Logger) error {
				n, err := m.Up(ctx)
				if err != nil {
					return err
				}
				logger.Info().Int("applied", n).Msg("migrations applied")
				return nil
			})
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(dir, func(ctx context.Context, m *db.Migrator, logger zerolog.Logger) error {
				statuses, err := m.Status(ctx)
				if err != nil {
					return err
				}
				for _, s := range statuses {
					state := "pending"
					if s.Applied {
						state = "applied"
					}
					fmt.Printf("%3d  %-40s %s\n", s.Version, s.Name, state)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(up, status)
	return cmd
}

func withMigrator(dir string, fn func(context.Context, *db.Migrator, zerolog.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := db.NewPool(ctx, db.PoolConfig{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, db.NewMigrator(pool, dir), logger)
}
