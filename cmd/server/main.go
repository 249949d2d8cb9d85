package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/api"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/config"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/repository/mongo"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/service"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title Meal Budget Planner API
// @version 1.0
// @description API for meal plans, macro targets, daily progress tracking and the food catalog.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Meal Budget Planner Server...")
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if strings.HasPrefix(pair[0], "JWT_") || strings.HasPrefix(pair[0], "S3_") || strings.HasPrefix(pair[0], "DATABASE_") || strings.HasPrefix(pair[0], "SERVER_") {
			log.Printf("ENV: %s = %s", pair[0], pair[1])
		}
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureFoodIndexes(ctx, appDB.Collection("foods"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("plans"))
		mongo.EnsureDailyProgressIndexes(ctx, appDB.Collection("daily_progress"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	foodRepo := mongo.NewMongoFoodRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	progressRepo := mongo.NewMongoDailyProgressRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo)
	foodService := service.NewFoodService(foodRepo, fileStorage)
	planService := service.NewPlanService(planRepo, userRepo, foodRepo)
	progressService := service.NewDailyProgressService(progressRepo, planRepo, foodRepo, exerciseRepo)
	exerciseService := service.NewExerciseService(exerciseRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, userService, foodService, planService, progressService, exerciseService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
