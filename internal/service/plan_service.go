package service

import (
	"context"
	"errors"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/nutrition"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound        = errors.New("plan not found")
	ErrInvalidPriority     = errors.New("priority must be budget or nutrient")
	ErrBudgetLimitRequired = errors.New("a positive budget limit is required when priority is budget")
	ErrInvalidDuration     = errors.New("plan duration must be at least one day")
)

// CreatePlanInput carries a new plan request. BudgetLimit is only
// meaningful for budget priority; for nutrient priority any supplied
// value is discarded.
type CreatePlanInput struct {
	FitnessGoal   domain.FitnessGoal
	ActivityLevel domain.ActivityLevel
	Priority      domain.PlanPriority
	BudgetLimit   *float64
	Duration      int
	TemplateMenus []primitive.ObjectID
}

type PlanService interface {
	// CreatePlan computes macro targets from the owner's current
	// biometrics combined with the plan's own goal/activity selection
	// and freezes them into the stored plan. Later profile edits never
	// change an existing plan's targets.
	CreatePlan(ctx context.Context, ownerID primitive.ObjectID, input CreatePlanInput) (*domain.Plan, error)
	// PreviewMacros runs the identical arithmetic without persisting, so
	// the preview can never diverge from what CreatePlan would freeze.
	PreviewMacros(ctx context.Context, ownerID primitive.ObjectID, goal domain.FitnessGoal, activity domain.ActivityLevel) (*MacroComputation, error)
	GetUserPlans(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Plan, error)
	GetPlanByID(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.Plan, error)
	AddMealToPlan(ctx context.Context, ownerID, planID, foodID primitive.ObjectID) (*domain.Plan, error)
	RemoveMealFromPlan(ctx context.Context, ownerID, planID, foodID primitive.ObjectID) (*domain.Plan, error)
}

type planService struct {
	planRepo repository.PlanRepository
	userRepo repository.UserRepository
	foodRepo repository.FoodRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, userRepo repository.UserRepository, foodRepo repository.FoodRepository) PlanService {
	return &planService{
		planRepo: planRepo,
		userRepo: userRepo,
		foodRepo: foodRepo,
	}
}

func (s *planService) CreatePlan(ctx context.Context, ownerID primitive.ObjectID, input CreatePlanInput) (*domain.Plan, error) {
	if input.Duration < 1 {
		return nil, ErrInvalidDuration
	}

	var budgetLimit *float64
	switch input.Priority {
	case domain.PriorityBudget:
		if input.BudgetLimit == nil || *input.BudgetLimit <= 0 {
			return nil, ErrBudgetLimitRequired
		}
		limit := *input.BudgetLimit
		budgetLimit = &limit
	case domain.PriorityNutrient:
		// Forced null regardless of any supplied value.
		budgetLimit = nil
	default:
		return nil, ErrInvalidPriority
	}

	user, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// The plan's own goal/activity, not the profile defaults, drive the
	// snapshot. This is what keeps concurrent plans independent.
	result := nutrition.Calculate(nutrition.Profile{
		Gender: user.Gender,
		Age:    user.Age,
		Weight: user.Weight,
		Height: user.Height,
	}, input.ActivityLevel, input.FitnessGoal)

	templateMenus := input.TemplateMenus
	if templateMenus == nil {
		templateMenus = []primitive.ObjectID{}
	}

	plan := &domain.Plan{
		Owner:         ownerID,
		FitnessGoal:   input.FitnessGoal,
		ActivityLevel: input.ActivityLevel,
		Priority:      input.Priority,
		BudgetLimit:   budgetLimit,
		Duration:      input.Duration,
		TemplateMenus: templateMenus,
		MacroTargets:  result.Targets,
		Status:        domain.PlanActive,
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID
	return plan, nil
}

func (s *planService) PreviewMacros(ctx context.Context, ownerID primitive.ObjectID, goal domain.FitnessGoal, activity domain.ActivityLevel) (*MacroComputation, error) {
	user, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	result := nutrition.Calculate(nutrition.Profile{
		Gender: user.Gender,
		Age:    user.Age,
		Weight: user.Weight,
		Height: user.Height,
	}, activity, goal)

	return &MacroComputation{
		BMR:     result.BMR,
		TDEE:    result.TDEE,
		Targets: result.Targets,
	}, nil
}

func (s *planService) GetUserPlans(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Plan, error) {
	return s.planRepo.GetByOwner(ctx, ownerID)
}

func (s *planService) GetPlanByID(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByIDAndOwner(ctx, planID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) AddMealToPlan(ctx context.Context, ownerID, planID, foodID primitive.ObjectID) (*domain.Plan, error) {
	if _, err := s.foodRepo.GetByID(ctx, foodID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}

	if err := s.planRepo.AddTemplateMenu(ctx, planID, ownerID, foodID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.GetPlanByID(ctx, ownerID, planID)
}

func (s *planService) RemoveMealFromPlan(ctx context.Context, ownerID, planID, foodID primitive.ObjectID) (*domain.Plan, error) {
	if err := s.planRepo.RemoveTemplateMenu(ctx, planID, ownerID, foodID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.GetPlanByID(ctx, ownerID, planID)
}
