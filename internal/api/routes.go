package api

import (
	"net/http"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	foodService service.FoodService,
	planService service.PlanService,
	progressService service.DailyProgressService,
	exerciseService service.ExerciseService,
) {

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	foodHandler := NewFoodHandler(foodService)
	planHandler := NewPlanHandler(planService)
	progressHandler := NewProgressHandler(progressService)
	exerciseHandler := NewExerciseHandler(exerciseService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Anonymous macro calculation; no account required.
		apiV1.POST("/macros/compute", userHandler.ComputeMacros)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		userGroup := protected.Group("/users")
		{
			// PUT /api/v1/users/macros - update biometrics and recompute targets
			userGroup.PUT("/macros", userHandler.UpdateMacros)
		}

		foodGroup := protected.Group("/foods")
		{
			foodGroup.GET("", foodHandler.ListFoods)
			foodGroup.POST("", foodHandler.CreateFood)
			foodGroup.GET("/:foodId", foodHandler.GetFoodByID)
			foodGroup.POST("/:foodId/picture/upload-url", foodHandler.RequestPictureUpload)
			foodGroup.POST("/:foodId/picture/confirm", foodHandler.ConfirmPicture)
		}

		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("", planHandler.GetUserPlans)
			// POST /api/v1/plans/preview-macros - dry-run target calculation
			planGroup.POST("/preview-macros", planHandler.PreviewMacros)
			planGroup.GET("/:planId", planHandler.GetPlanByID)
			planGroup.POST("/:planId/meals", planHandler.AddMealToPlan)
			planGroup.DELETE("/:planId/meals/:foodId", planHandler.RemoveMealFromPlan)
		}

		progressGroup := protected.Group("/progress")
		{
			// GET /api/v1/progress/{planId}/today - lazy get-or-create for the current day
			progressGroup.GET("/:planId/today", progressHandler.GetTodayProgress)
			progressGroup.GET("/:planId/stats", progressHandler.GetPlanStats)
			progressGroup.PUT("/records/:progressId/track", progressHandler.UpdateTracking)
			progressGroup.POST("/records/:progressId/complete", progressHandler.CompleteTracking)
			progressGroup.POST("/records/:progressId/save", progressHandler.SaveProgress)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.GetExercises)
			exerciseGroup.POST("/seed", exerciseHandler.SeedExercises)
		}
	}
}
