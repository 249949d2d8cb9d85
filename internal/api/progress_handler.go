package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressHandler holds the daily progress service dependency.
type ProgressHandler struct {
	progressService service.DailyProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.DailyProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// --- DTOs ---

// UpdateTrackingRequest replaces lists wholesale; an omitted field
// leaves the stored list untouched, an empty array clears it.
type UpdateTrackingRequest struct {
	EatenTemplateMenus *[]string            `json:"eaten_template_menus"`
	ExcessDailyFoods   *[]ExcessFoodRequest `json:"excess_daily_foods"`
}

type ExcessFoodRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"gte=0"`
	Calories float64 `json:"calories" binding:"gte=0"`
	Carbs    float64 `json:"carbs" binding:"gte=0"`
	Protein  float64 `json:"protein" binding:"gte=0"`
	Fat      float64 `json:"fat" binding:"gte=0"`
	Sugar    float64 `json:"sugar" binding:"gte=0"`
}

type SaveProgressRequest struct {
	ExerciseSelected    *string  `json:"exercise_selected"`
	ExerciseTimeMinutes *float64 `json:"exercise_time_minutes" binding:"omitempty,gt=0"`
	ActuallyExercised   *bool    `json:"actually_exercised"`
}

// --- Handler Methods ---

// GetTodayProgress returns (creating if needed) today's tracking
// record for a plan.
func (h *ProgressHandler) GetTodayProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	progress, err := h.progressService.GetTodayProgress(c.Request.Context(), userID, planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load today's progress")
		}
		return
	}
	c.JSON(http.StatusOK, progress)
}

// UpdateTracking ticks planned meals and records excess foods.
func (h *ProgressHandler) UpdateTracking(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	progressID, err := primitive.ObjectIDFromHex(c.Param("progressId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid progress ID format.")
		return
	}

	var req UpdateTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.TrackingUpdateInput{}
	if req.EatenTemplateMenus != nil {
		eaten := make([]primitive.ObjectID, 0, len(*req.EatenTemplateMenus))
		for _, idStr := range *req.EatenTemplateMenus {
			foodID, err := primitive.ObjectIDFromHex(idStr)
			if err != nil {
				abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid food ID in eaten_template_menus: %s", idStr))
				return
			}
			eaten = append(eaten, foodID)
		}
		input.EatenTemplateMenus = &eaten
	}
	if req.ExcessDailyFoods != nil {
		excess := make([]domain.ExcessFood, 0, len(*req.ExcessDailyFoods))
		for _, f := range *req.ExcessDailyFoods {
			excess = append(excess, domain.ExcessFood{
				Name:     f.Name,
				Price:    f.Price,
				Calories: f.Calories,
				Carbs:    f.Carbs,
				Protein:  f.Protein,
				Fat:      f.Fat,
				Sugar:    f.Sugar,
			})
		}
		input.ExcessDailyFoods = &excess
	}

	progress, err := h.progressService.UpdateTracking(c.Request.Context(), userID, progressID, input)
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrProgressLocked) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update tracking")
		}
		return
	}
	c.JSON(http.StatusOK, progress)
}

// CompleteTracking computes the day's totals and variance against the
// plan targets and advances the record to the recommendation state.
func (h *ProgressHandler) CompleteTracking(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	progressID, err := primitive.ObjectIDFromHex(c.Param("progressId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid progress ID format.")
		return
	}

	result, err := h.progressService.CompleteTracking(c.Request.Context(), userID, progressID)
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) || errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrProgressLocked) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to complete tracking")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Daily tracking completed. Ready for review.",
		"summary":     result.Summary,
		"suggestions": result.Suggestions,
		"data":        result.Progress,
	})
}

// SaveProgress finalizes the day, optionally recording the exercise
// outcome.
func (h *ProgressHandler) SaveProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	progressID, err := primitive.ObjectIDFromHex(c.Param("progressId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid progress ID format.")
		return
	}

	var req SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.SaveProgressInput{
		ExerciseTimeMinutes: req.ExerciseTimeMinutes,
		ActuallyExercised:   req.ActuallyExercised,
	}
	if req.ExerciseSelected != nil {
		exerciseID, err := primitive.ObjectIDFromHex(*req.ExerciseSelected)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
			return
		}
		input.ExerciseSelected = &exerciseID
	}

	progress, err := h.progressService.SaveProgress(c.Request.Context(), userID, progressID, input)
	if err != nil {
		if errors.Is(err, service.ErrProgressNotFound) || errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrProgressNotReady) || errors.Is(err, service.ErrProgressLocked) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save progress")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Day finalized and saved!",
		"data":    progress,
	})
}

// GetPlanStats returns the saved history of a plan for charting.
func (h *ProgressHandler) GetPlanStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	stats, err := h.progressService.GetPlanStats(c.Request.Context(), userID, planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load plan stats")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_days_tracked": len(stats),
		"data":               stats,
	})
}
