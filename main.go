package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"koranku_backend/internals/configs"
	database "koranku_backend/internals/databases"
	editionService "koranku_backend/internals/features/epapers/editions/service"
	scheduler "koranku_backend/internals/features/epapers/shares/scheduler"
	middlewares "koranku_backend/internals/middlewares"
	routes "koranku_backend/internals/route"
)

// 500MB: a full broadsheet PDF plus headroom, or up to 100 page images.
const uploadBodyLimit = 500 * 1024 * 1024

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 fast JSON
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		BodyLimit:               uploadBodyLimit,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ baseline + performance middleware
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// Rasterizing a thick PDF takes a while; the guard is generous.
		ctx, cancel := context.WithTimeout(c.Context(), 120*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + schema
	database.ConnectDB()
	database.TunePool()
	database.AutoMigrate()

	// 📂 artifact store (papers/pages/thumbnails/crops buckets)
	store := editionService.NewArtifactStore(configs.UploadDir)
	if err := store.EnsureDirs(); err != nil {
		log.Fatalf("❌ Failed to prepare upload directories: %v", err)
	}
	app.Static(editionService.WebPrefix, configs.UploadDir)

	// ⏱ scheduler after DB is ready
	scheduler.StartShareCleanupScheduler(database.DB, store)

	// ❤️ Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, store)

	// 🔒 Keep-Alive & server connection timeouts
	app.Server().ReadTimeout = 120 * time.Second
	app.Server().WriteTimeout = 120 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + close DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
