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

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

type CreatePlanRequest struct {
	FitnessGoal   domain.FitnessGoal   `json:"fitness_goal" binding:"required"`
	ActivityLevel domain.ActivityLevel `json:"activity_level" binding:"required"`
	Priority      domain.PlanPriority  `json:"priority" binding:"required,oneof=budget nutrient"`
	BudgetLimit   *float64             `json:"budget_limit"`
	Duration      int                  `json:"duration" binding:"required,gte=1"`
	TemplateMenus []string             `json:"template_menus"`
}

type PreviewMacrosRequest struct {
	FitnessGoal   domain.FitnessGoal   `json:"fitness_goal" binding:"required"`
	ActivityLevel domain.ActivityLevel `json:"activity_level" binding:"required"`
}

type AddMealRequest struct {
	FoodID string `json:"foodId" binding:"required"`
}

// --- Handler Methods ---

// CreatePlan creates a plan with a macro snapshot frozen from the
// submitted goal/activity and the owner's current biometrics.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	templateMenus := make([]primitive.ObjectID, 0, len(req.TemplateMenus))
	for _, idStr := range req.TemplateMenus {
		foodID, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid food ID in template_menus: %s", idStr))
			return
		}
		templateMenus = append(templateMenus, foodID)
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), userID, service.CreatePlanInput{
		FitnessGoal:   req.FitnessGoal,
		ActivityLevel: req.ActivityLevel,
		Priority:      req.Priority,
		BudgetLimit:   req.BudgetLimit,
		Duration:      req.Duration,
		TemplateMenus: templateMenus,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBudgetLimitRequired),
			errors.Is(err, service.ErrInvalidDuration),
			errors.Is(err, service.ErrInvalidPriority):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create plan")
		}
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// GetUserPlans lists all plans of the authenticated user, newest first.
func (h *PlanHandler) GetUserPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plans, err := h.planService.GetUserPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlanByID returns one of the user's plans.
func (h *PlanHandler) GetPlanByID(c *gin.Context) {
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

	plan, err := h.planService.GetPlanByID(c.Request.Context(), userID, planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load plan")
		}
		return
	}
	c.JSON(http.StatusOK, plan)
}

// AddMealToPlan appends a food to the plan's template.
func (h *PlanHandler) AddMealToPlan(c *gin.Context) {
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

	var req AddMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	foodID, err := primitive.ObjectIDFromHex(req.FoodID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid food ID format.")
		return
	}

	plan, err := h.planService.AddMealToPlan(c.Request.Context(), userID, planID, foodID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) || errors.Is(err, service.ErrFoodNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to add meal to plan")
		}
		return
	}
	c.JSON(http.StatusOK, plan)
}

// RemoveMealFromPlan removes a food from the plan's template.
func (h *PlanHandler) RemoveMealFromPlan(c *gin.Context) {
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
	foodID, err := primitive.ObjectIDFromHex(c.Param("foodId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid food ID format.")
		return
	}

	plan, err := h.planService.RemoveMealFromPlan(c.Request.Context(), userID, planID, foodID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to remove meal from plan")
		}
		return
	}
	c.JSON(http.StatusOK, plan)
}

// PreviewMacros returns the targets a plan with the submitted
// goal/activity would freeze, without persisting anything. Uses the
// identical arithmetic as CreatePlan.
func (h *PlanHandler) PreviewMacros(c *gin.Context) {
	var req PreviewMacrosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	computation, err := h.planService.PreviewMacros(c.Request.Context(), userID, req.FitnessGoal, req.ActivityLevel)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to preview macros")
		}
		return
	}

	c.JSON(http.StatusOK, mapComputationToResponse(computation))
}
