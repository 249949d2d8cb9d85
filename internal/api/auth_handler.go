package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Username      string               `json:"username" binding:"required"`
	Email         string               `json:"email" binding:"required,email"`
	Password      string               `json:"password" binding:"required,min=8"`
	Gender        domain.Gender        `json:"gender" binding:"required,oneof=male female"`
	Age           int                  `json:"age" binding:"required,gt=0"`
	Weight        float64              `json:"weight" binding:"required,gt=0"`
	Height        float64              `json:"height" binding:"required,gt=0"`
	FitnessGoal   domain.FitnessGoal   `json:"fitness_goal" binding:"required"`
	ActivityLevel domain.ActivityLevel `json:"activity_level" binding:"required"`
}

// UserResponse excludes sensitive info like the password hash.
type UserResponse struct {
	ID            string               `json:"id"`
	Username      string               `json:"username"`
	Email         string               `json:"email"`
	Gender        domain.Gender        `json:"gender"`
	Age           int                  `json:"age"`
	Weight        float64              `json:"weight"`
	Height        float64              `json:"height"`
	FitnessGoal   domain.FitnessGoal   `json:"fitness_goal"`
	ActivityLevel domain.ActivityLevel `json:"activity_level"`
	Targets       domain.MacroTargets  `json:"targets"`
	CreatedAt     time.Time            `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// --- Handler Methods ---

// Register creates a new user account with its biometric profile and
// the initial macro target snapshot.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		Gender:        req.Gender,
		Age:           req.Age,
		Weight:        req.Weight,
		Height:        req.Height,
		FitnessGoal:   req.FitnessGoal,
		ActivityLevel: req.ActivityLevel,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrInvalidBiometrics) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, service.ErrHashingFailed) {
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login authenticates a user and returns a JWT token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else if errors.Is(err, service.ErrTokenGeneration) {
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:            user.ID.Hex(),
		Username:      user.Username,
		Email:         user.Email,
		Gender:        user.Gender,
		Age:           user.Age,
		Weight:        user.Weight,
		Height:        user.Height,
		FitnessGoal:   user.FitnessGoal,
		ActivityLevel: user.ActivityLevel,
		Targets:       user.Targets,
		CreatedAt:     user.CreatedAt,
	}
}
