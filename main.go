package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	database "github.com/tmendes/go-smartcity-services/app/db"
	appLogger "github.com/tmendes/go-smartcity-services/app/logger"
	"github.com/tmendes/go-smartcity-services/app/observability/metrics"
	"github.com/tmendes/go-smartcity-services/app/tracer"
	"github.com/tmendes/go-smartcity-services/config"
	"github.com/tmendes/go-smartcity-services/internal/api/atm"
	"github.com/tmendes/go-smartcity-services/internal/api/attraction"
	"github.com/tmendes/go-smartcity-services/internal/api/auth"
	"github.com/tmendes/go-smartcity-services/internal/api/booking"
	"github.com/tmendes/go-smartcity-services/internal/api/business"
	"github.com/tmendes/go-smartcity-services/internal/api/education"
	"github.com/tmendes/go-smartcity-services/internal/api/hotel"
	"github.com/tmendes/go-smartcity-services/internal/api/job"
	"github.com/tmendes/go-smartcity-services/internal/api/restaurant"
	"github.com/tmendes/go-smartcity-services/internal/api/theatre"
	"github.com/tmendes/go-smartcity-services/internal/api/user"
	"github.com/tmendes/go-smartcity-services/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tracer.InitTracingAndMetrics(cfg.Server.MetricsPort)
	metrics.InitAppMetrics()

	// --- Database Setup ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	// Run migrations before opening the main pool
	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Dependency Injection ---
	tokenIssuer := auth.NewTokenIssuer(cfg.JWT)
	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	authService := auth.NewAuthService(authRepo, tokenIssuer, logger)
	authHandler := auth.NewAuthHandler(authService, logger)

	hotelRepo := hotel.NewPostgresHotelRepository(pool, logger)
	restaurantRepo := restaurant.NewPostgresRestaurantRepository(pool, logger)
	theatreRepo := theatre.NewPostgresTheatreRepository(pool, logger)
	attractionRepo := attraction.NewPostgresAttractionRepository(pool, logger)
	atmRepo := atm.NewPostgresATMRepository(pool, logger)
	bookingRepo := booking.NewPostgresBookingRepository(pool, logger)
	businessRepo := business.NewPostgresBusinessRepository(pool, logger)
	jobRepo := job.NewPostgresJobRepository(pool, logger)
	educationRepo := education.NewPostgresEducationRepository(pool, logger)
	userRepo := user.NewPostgresUserRepository(pool, logger)

	routerConfig := &router.Config{
		Logger:            logger,
		AuthHandler:       authHandler,
		UserHandler:       user.NewHandlerImpl(user.NewServiceImpl(userRepo, logger), logger),
		HotelHandler:      hotel.NewHandlerImpl(hotel.NewServiceImpl(hotelRepo, logger), logger),
		RestaurantHandler: restaurant.NewHandlerImpl(restaurant.NewServiceImpl(restaurantRepo, logger), logger),
		TheatreHandler:    theatre.NewHandlerImpl(theatre.NewServiceImpl(theatreRepo, logger), logger),
		AttractionHandler: attraction.NewHandlerImpl(attraction.NewServiceImpl(attractionRepo, logger), logger),
		ATMHandler:        atm.NewHandlerImpl(atm.NewServiceImpl(atmRepo, logger), logger),
		BookingHandler: booking.NewHandlerImpl(
			booking.NewServiceImpl(bookingRepo, hotelRepo, restaurantRepo, theatreRepo, logger), logger),
		BusinessHandler:  business.NewHandlerImpl(business.NewServiceImpl(businessRepo, logger), logger),
		JobHandler:       job.NewHandlerImpl(job.NewServiceImpl(jobRepo, logger), logger),
		EducationHandler: education.NewHandlerImpl(education.NewServiceImpl(educationRepo, logger), logger),
		Authenticate:     auth.Authenticate(authRepo, tokenIssuer, router.PublicPrefixes, logger),
	}
	apiRouter := router.SetupRouter(routerConfig)

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(60 * time.Second))
	mux.Use(middleware.Compress(5, "application/json"))

	mux.Mount("/", apiRouter)

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
