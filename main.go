package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"markboard-server-go/config"
	"markboard-server-go/db"
	"markboard-server-go/handlers"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Initialize Redis Client
	redisClient, err := db.InitializeRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisClient.Close()

	// Create the dataset cache
	redisService := db.NewRedisService(redisClient, cfg.DatasetTTL)

	if cfg.SeedSample {
		checkAndSeedData(redisService)
	}

	// Create API Handler (injecting the cache)
	apiHandler := handlers.NewAPIHandler(redisService, cfg.MaxUploadMB<<20)

	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadMB << 20
	handlers.RegisterRoutes(router, apiHandler)

	log.Printf("Starting server on %s", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

// checkAndSeedData caches the sample dataset when the cache is empty
func checkAndSeedData(service *db.RedisService) {
	ctx := context.Background()
	count, err := service.DatasetCount(ctx)
	if err != nil {
		log.Printf("Warning: could not check for cached datasets: %v. Skipping sample data.", err)
		return
	}
	if count == 0 {
		log.Println("No cached datasets found. Adding sample dataset...")
		service.SeedData(ctx)
	} else {
		log.Printf("Found %d cached datasets. Skipping sample data.", count)
	}
}
