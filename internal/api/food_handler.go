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

// FoodHandler holds the food service dependency.
type FoodHandler struct {
	foodService service.FoodService
}

// NewFoodHandler creates a new FoodHandler.
func NewFoodHandler(foodService service.FoodService) *FoodHandler {
	return &FoodHandler{foodService: foodService}
}

// --- DTOs ---

type CreateFoodRequest struct {
	Name    string            `json:"name" binding:"required"`
	Price   float64           `json:"price" binding:"gte=0"`
	Canteen string            `json:"canteen" binding:"required"`
	Macros  FoodMacrosRequest `json:"macros" binding:"required"`
}

type FoodMacrosRequest struct {
	Calories float64 `json:"calories" binding:"gte=0"`
	Carbs    float64 `json:"carbs" binding:"gte=0"`
	Protein  float64 `json:"protein" binding:"gte=0"`
	Fat      float64 `json:"fat" binding:"gte=0"`
	Sugar    float64 `json:"sugar" binding:"gte=0"`
}

type RequestPictureUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmPictureRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// --- Handler Methods ---

// ListFoods returns catalog foods, optionally filtered by ?search= and
// ?canteen= substrings.
func (h *FoodHandler) ListFoods(c *gin.Context) {
	search := c.Query("search")
	canteen := c.Query("canteen")

	foods, err := h.foodService.ListFoods(c.Request.Context(), search, canteen)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list foods")
		return
	}
	c.JSON(http.StatusOK, foods)
}

// GetFoodByID returns a single catalog food.
func (h *FoodHandler) GetFoodByID(c *gin.Context) {
	foodID, err := primitive.ObjectIDFromHex(c.Param("foodId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid food ID format.")
		return
	}

	food, err := h.foodService.GetFoodByID(c.Request.Context(), foodID)
	if err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load food")
		}
		return
	}
	c.JSON(http.StatusOK, food)
}

// CreateFood adds a new catalog entry.
func (h *FoodHandler) CreateFood(c *gin.Context) {
	var req CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	food, err := h.foodService.CreateFood(c.Request.Context(), service.CreateFoodInput{
		Name:    req.Name,
		Price:   req.Price,
		Canteen: req.Canteen,
		Macros: domain.FoodMacros{
			Calories: req.Macros.Calories,
			Carbs:    req.Macros.Carbs,
			Protein:  req.Macros.Protein,
			Fat:      req.Macros.Fat,
			Sugar:    req.Macros.Sugar,
		},
	})
	if err != nil {
		if errors.Is(err, service.ErrFoodValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create food")
		}
		return
	}
	c.JSON(http.StatusCreated, food)
}

// RequestPictureUpload hands out a presigned PUT URL for the food's
// picture. The client uploads directly to object storage and then
// confirms the key.
func (h *FoodHandler) RequestPictureUpload(c *gin.Context) {
	foodID, err := primitive.ObjectIDFromHex(c.Param("foodId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid food ID format.")
		return
	}

	var req RequestPictureUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	resp, err := h.foodService.RequestPictureUploadURL(c.Request.Context(), foodID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrInvalidContentType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmPicture links an uploaded object key to the food.
func (h *FoodHandler) ConfirmPicture(c *gin.Context) {
	foodID, err := primitive.ObjectIDFromHex(c.Param("foodId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid food ID format.")
		return
	}

	var req ConfirmPictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	food, err := h.foodService.ConfirmPictureUpload(c.Request.Context(), foodID, req.ObjectKey)
	if err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrFoodValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm picture upload")
		}
		return
	}
	c.JSON(http.StatusOK, food)
}
