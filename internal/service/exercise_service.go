package service

import (
	"context"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/repository"
)

// Default exercise catalog with typical energy burn rates.
var defaultExercises = []struct {
	Name       string
	CalPerHour float64
}{
	{"Running (Moderate)", 600},
	{"Walking (Brisk)", 300},
	{"Cycling", 480},
	{"Swimming", 660},
	{"Weightlifting", 360},
}

type ExerciseService interface {
	GetExercises(ctx context.Context) ([]domain.Exercise, error)
	// SeedDefaults upserts the default catalog; safe to call repeatedly.
	SeedDefaults(ctx context.Context) ([]domain.Exercise, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

func (s *exerciseService) GetExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

func (s *exerciseService) SeedDefaults(ctx context.Context) ([]domain.Exercise, error) {
	for _, ex := range defaultExercises {
		if err := s.exerciseRepo.UpsertByName(ctx, ex.Name, ex.CalPerHour); err != nil {
			return nil, err
		}
	}
	return s.exerciseRepo.List(ctx)
}
