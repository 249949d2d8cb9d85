package service

import (
	"context"
	"errors"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/nutrition"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// ProfileUpdateInput carries a biometric/goal update. All numeric
// fields are required; partially specified profiles can't be fed to
// the calculator.
type ProfileUpdateInput struct {
	Gender        domain.Gender
	Age           int
	Weight        float64
	Height        float64
	FitnessGoal   domain.FitnessGoal
	ActivityLevel domain.ActivityLevel
}

// MacroComputation is the full calculator output returned to callers
// that also want bmr/tdee for display.
type MacroComputation struct {
	BMR     float64             `json:"bmr"`
	TDEE    float64             `json:"tdee"`
	Targets domain.MacroTargets `json:"targets"`
}

type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	// UpdateProfile persists the new biometrics and the recomputed
	// display targets, and returns the computation. Existing plans keep
	// their own frozen snapshots.
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, input ProfileUpdateInput) (*domain.User, *MacroComputation, error)
	// ComputeMacros runs the calculator over an arbitrary submitted
	// profile without reading or writing anything — the anonymous
	// preview shape.
	ComputeMacros(input ProfileUpdateInput) (*MacroComputation, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input ProfileUpdateInput) (*domain.User, *MacroComputation, error) {
	computation, err := s.ComputeMacros(input)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	user.Gender = input.Gender
	user.Age = input.Age
	user.Weight = input.Weight
	user.Height = input.Height
	user.FitnessGoal = input.FitnessGoal
	user.ActivityLevel = input.ActivityLevel
	user.Targets = computation.Targets

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	user.PasswordHash = ""
	return user, computation, nil
}

func (s *userService) ComputeMacros(input ProfileUpdateInput) (*MacroComputation, error) {
	if input.Gender != domain.GenderMale && input.Gender != domain.GenderFemale {
		return nil, errors.New("gender must be male or female")
	}
	if input.Age <= 0 || input.Weight <= 0 || input.Height <= 0 {
		return nil, ErrInvalidBiometrics
	}

	result := nutrition.Calculate(nutrition.Profile{
		Gender: input.Gender,
		Age:    input.Age,
		Weight: input.Weight,
		Height: input.Height,
	}, input.ActivityLevel, input.FitnessGoal)

	return &MacroComputation{
		BMR:     result.BMR,
		TDEE:    result.TDEE,
		Targets: result.Targets,
	}, nil
}
