package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rwangliu/library-lending-server/internal/api"
	"github.com/rwangliu/library-lending-server/internal/config"
	"github.com/rwangliu/library-lending-server/internal/logger"
	"github.com/rwangliu/library-lending-server/internal/repository"
	"github.com/rwangliu/library-lending-server/internal/service"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Set up logging
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	// Set up database connection
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}
	defer db.Close()

	// Create repository
	repo := repository.NewPostgresRepository(db)

	// Create service
	tokenDuration := time.Duration(cfg.Auth.TokenExpiryHours) * time.Hour
	svc := service.NewDefaultService(repo, cfg.Auth.JWTSecret, tokenDuration)

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	router := gin.Default()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
