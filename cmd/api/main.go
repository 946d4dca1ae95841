package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"tech-invent-api/config"
	"tech-invent-api/mailer"
	"tech-invent-api/middleware"
	"tech-invent-api/routes"
	"tech-invent-api/storage"
)

func main() {
	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	mail := mailer.New(cfg)

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatal("Failed to initialize object store: ", err)
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		log.Printf("Warning: object store bucket check failed: %v", err)
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Security headers
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	router.Use(middleware.CORSMiddleware())

	routes.Setup(router, cfg, db, mail, store)

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
