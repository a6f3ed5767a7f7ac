package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	authconfig "video-studio/internal/auth/config"
	"video-studio/internal/di"
	generationconfig "video-studio/internal/generation/config"
	historyconfig "video-studio/internal/history/config"
	"video-studio/internal/shared/logger"
	"video-studio/internal/shared/utils"

	"github.com/caarlos0/env/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Host        string `env:"SERVER_HOST" envDefault:"localhost"`
	Port        string `env:"SERVER_PORT" envDefault:"3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

func main() {
	fmt.Println("🚀 Video Studio - Starting Application...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load server configuration
	serverCfg := &ServerConfig{}
	if err := env.Parse(serverCfg); err != nil {
		log.Fatalf("Failed to load server configuration: %v", err)
	}

	// Initialize loggers: logrus for application logs, zap for the HTTP
	// access log and the realtime module.
	appLogger := logger.NewLogger()
	accessLogger, err := newZapLogger(serverCfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize access logger: %v", err)
	}
	defer accessLogger.Sync()

	appLogger.Info("Application configuration loaded successfully")

	// Initialize Dependency Injection Container
	container := di.NewContainer(appLogger)
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Errorf("Failed to close container: %v", err)
		}
	}()

	// Load module configurations
	authConfig, err := authconfig.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load auth configuration: %v", err)
	}
	historyConfig, err := historyconfig.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load history configuration: %v", err)
	}
	generationConfig, err := generationconfig.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load generation configuration: %v", err)
	}

	// Initialize modules through the container
	if err := container.InitializeAuth(authConfig); err != nil {
		log.Fatalf("Failed to initialize Auth module: %v", err)
	}
	appLogger.Info("Auth module initialized successfully")

	if err := container.InitializeHistory(historyConfig); err != nil {
		log.Fatalf("Failed to initialize History module: %v", err)
	}
	appLogger.Info("History module initialized successfully")

	if err := container.InitializeGeneration(generationConfig); err != nil {
		log.Fatalf("Failed to initialize Generation module: %v", err)
	}
	appLogger.Info("Generation module initialized successfully")

	if err := container.InitializeRealtime(accessLogger.Named("realtime")); err != nil {
		log.Fatalf("Failed to initialize Realtime module: %v", err)
	}
	appLogger.Info("Realtime module initialized successfully")

	// Seed demo data where the configuration asks for it
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelSeed()
	if authConfig.SeedDemoData {
		if err := container.AuthModule.SeedDemoData(seedCtx); err != nil {
			appLogger.Warnf("Failed to seed demo user: %v", err)
		}
	}
	if historyConfig.SeedDemoData {
		if err := container.HistoryModule.SeedDemoData(seedCtx); err != nil {
			appLogger.Warnf("Failed to seed demo history: %v", err)
		}
	}

	// Start background work (session sweeper)
	backgroundCtx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()
	container.StartBackgroundTasks(backgroundCtx)

	// Setup HTTP server (Fiber) with middleware
	app := fiber.New(fiber.Config{
		AppName:      "Video Studio API v1.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fiberErr, ok := err.(*fiber.Error); ok {
				return c.Status(fiberErr.Code).JSON(fiber.Map{
					"success": false,
					"error":   fiberErr.Message,
				})
			}
			appLogger.Errorf("HTTP Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Internal Server Error",
			})
		},
	})

	// Add middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	// Propagate the request ID into the user context so context-aware
	// loggers pick it up.
	app.Use(func(c *fiber.Ctx) error {
		if rid, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && rid != "" {
			c.SetUserContext(utils.WithRequestID(c.UserContext(), rid))
		}
		return c.Next()
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(newAccessLogMiddleware(accessLogger.Named("http")))

	// Add health check endpoint with container health status
	app.Get("/health", func(c *fiber.Ctx) error {
		healthCtx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		if err := container.HealthCheck(healthCtx); err != nil {
			appLogger.Errorf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "UNHEALTHY",
				"error":   err.Error(),
				"message": "One or more services are unhealthy",
			})
		}

		return c.JSON(fiber.Map{
			"status":    "HEALTHY",
			"message":   "Video Studio API is running",
			"timestamp": time.Now().UTC(),
			"modules": fiber.Map{
				"auth":       "initialized",
				"history":    "initialized",
				"generation": "initialized",
				"realtime":   "initialized",
			},
		})
	})

	// Register module routes under /api
	api := app.Group("/api")
	container.AuthModule.RegisterRoutes(api)
	appLogger.Info("Auth routes registered")
	container.HistoryModule.RegisterRoutes(api)
	appLogger.Info("History routes registered")
	container.GenerationModule.RegisterRoutes(api)
	appLogger.Info("Generation routes registered")
	container.RealtimeModule.RegisterRoutes(app)
	appLogger.Info("Realtime routes registered")

	serverAddr := fmt.Sprintf("%s:%s", serverCfg.Host, serverCfg.Port)
	appLogger.Infof("🌟 All modules initialized. Starting HTTP server on %s", serverAddr)

	// Start server in a goroutine for graceful shutdown
	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(serverAddr)
	}()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		if err != nil {
			appLogger.Errorf("Server failed to start: %v", err)
			log.Fatalf("Server startup failed: %v", err)
		}
	case sig := <-quit:
		appLogger.Infof("Received shutdown signal: %v", sig)
		fmt.Println("🛑 Shutting down server gracefully...")

		// Shutdown the server with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Errorf("Server forced to shutdown: %v", err)
		}

		appLogger.Info("HTTP server stopped")
	}

	fmt.Println("✅ Application stopped gracefully.")
}

// newZapLogger builds the structured logger used for HTTP access logs and
// the realtime module.
func newZapLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newAccessLogMiddleware logs one line per request with latency and status.
func newAccessLogMiddleware(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("requestId", rid),
			zap.String("ip", c.IP()),
		)
		return err
	}
}
