package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/repository"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrFoodNotFound       = errors.New("food not found")
	ErrFoodValidation     = errors.New("food validation failed")
	ErrUploadURLError     = errors.New("failed to generate upload URL")
	ErrDownloadURLError   = errors.New("failed to generate download URL")
	ErrInvalidContentType = errors.New("content type must be an image type")
)

// CreateFoodInput carries a new catalog entry.
type CreateFoodInput struct {
	Name    string
	Price   float64
	Canteen string
	Macros  domain.FoodMacros
}

// FoodDetails is a catalog food enriched with a temporary picture URL
// when a picture has been uploaded.
type FoodDetails struct {
	domain.Food
	PictureURL *string `json:"picture_url,omitempty"`
}

// UploadURLResponse carries a presigned PUT URL and the object key the
// client must report back on confirm.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type FoodService interface {
	CreateFood(ctx context.Context, input CreateFoodInput) (*domain.Food, error)
	GetFoodByID(ctx context.Context, foodID primitive.ObjectID) (*FoodDetails, error)
	ListFoods(ctx context.Context, name, canteen string) ([]FoodDetails, error)

	// Picture upload flow: request a presigned PUT URL, upload directly
	// to the store, then confirm the key so it is linked to the food.
	RequestPictureUploadURL(ctx context.Context, foodID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmPictureUpload(ctx context.Context, foodID primitive.ObjectID, objectKey string) (*FoodDetails, error)
}

type foodService struct {
	foodRepo    repository.FoodRepository
	fileStorage storage.FileStorage
}

// NewFoodService creates a new instance of foodService.
func NewFoodService(foodRepo repository.FoodRepository, fileStorage storage.FileStorage) FoodService {
	return &foodService{
		foodRepo:    foodRepo,
		fileStorage: fileStorage,
	}
}

func (s *foodService) CreateFood(ctx context.Context, input CreateFoodInput) (*domain.Food, error) {
	if input.Name == "" || input.Canteen == "" {
		return nil, ErrFoodValidation
	}
	if input.Price < 0 {
		return nil, ErrFoodValidation
	}
	m := input.Macros
	if m.Calories < 0 || m.Carbs < 0 || m.Protein < 0 || m.Fat < 0 || m.Sugar < 0 {
		return nil, ErrFoodValidation
	}

	food := &domain.Food{
		Name:    input.Name,
		Price:   input.Price,
		Canteen: input.Canteen,
		Macros:  input.Macros,
	}

	foodID, err := s.foodRepo.Create(ctx, food)
	if err != nil {
		return nil, err
	}
	food.ID = foodID
	return food, nil
}

func (s *foodService) GetFoodByID(ctx context.Context, foodID primitive.ObjectID) (*FoodDetails, error) {
	food, err := s.foodRepo.GetByID(ctx, foodID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}
	return s.withPictureURL(ctx, food), nil
}

func (s *foodService) ListFoods(ctx context.Context, name, canteen string) ([]FoodDetails, error) {
	foods, err := s.foodRepo.List(ctx, name, canteen)
	if err != nil {
		return nil, err
	}

	details := make([]FoodDetails, 0, len(foods))
	for i := range foods {
		details = append(details, *s.withPictureURL(ctx, &foods[i]))
	}
	return details, nil
}

func (s *foodService) RequestPictureUploadURL(ctx context.Context, foodID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrInvalidContentType
	}

	// Existence check before handing out a URL.
	if _, err := s.foodRepo.GetByID(ctx, foodID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}

	ext := extensionForContentType(contentType)
	objectKey := path.Join("foods", foodID.Hex(), fmt.Sprintf("%s%s", uuid.NewString(), ext))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

func (s *foodService) ConfirmPictureUpload(ctx context.Context, foodID primitive.ObjectID, objectKey string) (*FoodDetails, error) {
	if objectKey == "" {
		return nil, ErrFoodValidation
	}
	// The key must be one we would have issued for this food.
	if !strings.HasPrefix(objectKey, path.Join("foods", foodID.Hex())+"/") {
		return nil, ErrFoodValidation
	}

	food, err := s.foodRepo.GetByID(ctx, foodID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}

	// Replacing an existing picture orphans the old object; clean it up.
	if food.PictureKey != "" && food.PictureKey != objectKey {
		_ = s.fileStorage.DeleteObject(ctx, food.PictureKey)
	}

	if err := s.foodRepo.SetPictureKey(ctx, foodID, objectKey); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}
	food.PictureKey = objectKey

	return s.withPictureURL(ctx, food), nil
}

// withPictureURL resolves the stored object key to a presigned download
// URL. URL generation failures degrade to a food without a picture
// rather than failing the read.
func (s *foodService) withPictureURL(ctx context.Context, food *domain.Food) *FoodDetails {
	details := &FoodDetails{Food: *food}
	if food.PictureKey == "" || s.fileStorage == nil {
		return details
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, food.PictureKey, storage.DefaultPresignedURLExpiry)
	if err == nil {
		details.PictureURL = &url
	}
	return details
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
