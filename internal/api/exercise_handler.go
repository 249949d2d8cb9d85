package api

import (
	"net/http"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// GetExercises returns the exercise catalog.
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	exercises, err := h.exerciseService.GetExercises(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list exercises")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// SeedExercises upserts the default catalog. Safe to call repeatedly.
func (h *ExerciseHandler) SeedExercises(c *gin.Context) {
	exercises, err := h.exerciseService.SeedDefaults(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to seed exercises")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Exercises seeded successfully!",
		"data":    exercises,
	})
}
