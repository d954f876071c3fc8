package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"luxe-commerce/config"
	_ "luxe-commerce/docs"
	"luxe-commerce/middleware"
	"luxe-commerce/routes"
	"luxe-commerce/services"
)

// @title LUXE Commerce API
// @version 1.0
// @description Storefront backend: catalog, session carts, bank-transfer checkout, reviews, and admin management.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	config.ConnectDB()
	defer config.CloseDB()

	config.InitRedis()
	defer config.CloseRedis()

	if err := os.MkdirAll(config.AppConfig.UploadDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	cartStore := services.NewCartStore(config.RedisClient, 24*time.Hour)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router, cartStore)

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
