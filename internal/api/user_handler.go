package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- DTOs ---

// UpdateMacrosRequest is a full biometric/goal submission. All fields
// are required: the calculator cannot run on a partial profile.
type UpdateMacrosRequest struct {
	Gender        domain.Gender        `json:"gender" binding:"required,oneof=male female"`
	Age           int                  `json:"age" binding:"required,gt=0"`
	Weight        float64              `json:"weight" binding:"required,gt=0"`
	Height        float64              `json:"height" binding:"required,gt=0"`
	FitnessGoal   domain.FitnessGoal   `json:"fitness_goal" binding:"required"`
	ActivityLevel domain.ActivityLevel `json:"activity_level" binding:"required"`
}

// MacrosResponse mirrors the calculator output for display.
type MacrosResponse struct {
	BMR      float64 `json:"bmr"`
	TDEE     float64 `json:"tdee"`
	DailyCal float64 `json:"daily_cal"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Sugar    float64 `json:"sugar"`
}

func mapComputationToResponse(comp *service.MacroComputation) MacrosResponse {
	return MacrosResponse{
		BMR:      comp.BMR,
		TDEE:     comp.TDEE,
		DailyCal: comp.Targets.DailyCal,
		Carbs:    comp.Targets.Carbohydrate,
		Protein:  comp.Targets.Protein,
		Fat:      comp.Targets.Fat,
		Sugar:    comp.Targets.Sugar,
	}
}

// --- Handler Methods ---

// ComputeMacros runs the calculator over a fully submitted profile
// without touching any account. Public: nothing is read or persisted.
func (h *UserHandler) ComputeMacros(c *gin.Context) {
	var req UpdateMacrosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	computation, err := h.userService.ComputeMacros(service.ProfileUpdateInput{
		Gender:        req.Gender,
		Age:           req.Age,
		Weight:        req.Weight,
		Height:        req.Height,
		FitnessGoal:   req.FitnessGoal,
		ActivityLevel: req.ActivityLevel,
	})
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, mapComputationToResponse(computation))
}

// GetMe returns the authenticated user's profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateMacros recomputes and persists the user's display macro
// targets from a submitted profile. Existing plans are unaffected.
func (h *UserHandler) UpdateMacros(c *gin.Context) {
	var req UpdateMacrosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	user, computation, err := h.userService.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdateInput{
		Gender:        req.Gender,
		Age:           req.Age,
		Weight:        req.Weight,
		Height:        req.Height,
		FitnessGoal:   req.FitnessGoal,
		ActivityLevel: req.ActivityLevel,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrInvalidBiometrics) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update macro targets")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Macros calculated",
		"data":    mapComputationToResponse(computation),
		"user":    MapUserToResponse(user),
	})
}
