package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProgressNotFound = errors.New("daily progress record not found")
	ErrProgressLocked   = errors.New("day is already saved and finalized")
	ErrProgressNotReady = errors.New("tracking must be completed before saving progress")
	ErrExerciseNotFound = errors.New("exercise not found")
)

// TrackingUpdateInput replaces the tracked lists wholesale. A nil
// pointer means "leave this list as it is"; an empty non-nil slice
// clears it.
type TrackingUpdateInput struct {
	EatenTemplateMenus *[]primitive.ObjectID
	ExcessDailyFoods   *[]domain.ExcessFood
}

// CompletionSummary is the totals payload returned alongside the
// record when tracking is completed, for immediate display.
type CompletionSummary struct {
	TotalCalories float64  `json:"totalCalories"`
	TotalPrice    float64  `json:"totalPrice"`
	CalTarget     float64  `json:"calTarget"`
	BudgetLimit   *float64 `json:"budgetLimit"`
}

// ExerciseSuggestion is an advisory offset recommendation: how long
// the exercise would take to burn the day's calorie excess. It never
// changes anything stored.
type ExerciseSuggestion struct {
	ExerciseID primitive.ObjectID `json:"exercise_id"`
	Name       string             `json:"name"`
	CalPerHour float64            `json:"cal_per_hour"`
	Minutes    float64            `json:"minutes"`
}

// CompletionResult bundles the updated record with the summary and the
// offset suggestions.
type CompletionResult struct {
	Summary     CompletionSummary     `json:"summary"`
	Suggestions []ExerciseSuggestion  `json:"suggestions"`
	Progress    *domain.DailyProgress `json:"data"`
}

// SaveProgressInput carries the optional exercise outcome recorded
// when a day is finalized. Absent fields are left untouched.
type SaveProgressInput struct {
	ExerciseSelected    *primitive.ObjectID
	ExerciseTimeMinutes *float64
	ActuallyExercised   *bool
}

// DayStat is one saved day projected for charting.
type DayStat struct {
	DayNumber        int       `json:"day_number"`
	Date             time.Time `json:"date"`
	CaloriesExceeded float64   `json:"calories_exceeded"`
	BudgetExceeded   float64   `json:"budget_exceeded"`
	Exercised        bool      `json:"exercised"`
}

type DailyProgressService interface {
	// GetTodayProgress returns today's tracking record for a plan,
	// creating it lazily on first call. Repeated calls on the same day
	// return the same record.
	GetTodayProgress(ctx context.Context, userID, planID primitive.ObjectID) (*domain.DailyProgress, error)
	UpdateTracking(ctx context.Context, userID, progressID primitive.ObjectID, input TrackingUpdateInput) (*domain.DailyProgress, error)
	CompleteTracking(ctx context.Context, userID, progressID primitive.ObjectID) (*CompletionResult, error)
	SaveProgress(ctx context.Context, userID, progressID primitive.ObjectID, input SaveProgressInput) (*domain.DailyProgress, error)
	GetPlanStats(ctx context.Context, userID, planID primitive.ObjectID) ([]DayStat, error)
}

type dailyProgressService struct {
	progressRepo repository.DailyProgressRepository
	planRepo     repository.PlanRepository
	foodRepo     repository.FoodRepository
	exerciseRepo repository.ExerciseRepository
	now          func() time.Time
}

// NewDailyProgressService creates a new instance of dailyProgressService.
func NewDailyProgressService(
	progressRepo repository.DailyProgressRepository,
	planRepo repository.PlanRepository,
	foodRepo repository.FoodRepository,
	exerciseRepo repository.ExerciseRepository,
) DailyProgressService {
	return &dailyProgressService{
		progressRepo: progressRepo,
		planRepo:     planRepo,
		foodRepo:     foodRepo,
		exerciseRepo: exerciseRepo,
		now:          time.Now,
	}
}

func (s *dailyProgressService) GetTodayProgress(ctx context.Context, userID, planID primitive.ObjectID) (*domain.DailyProgress, error) {
	// Ownership mismatch reads the same as absence.
	if _, err := s.planRepo.GetByIDAndOwner(ctx, planID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	progress, err := s.progressRepo.FindByPlanAndDateRange(ctx, planID, userID, dayStart, dayEnd)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// Day numbers follow creation order, not elapsed calendar days, so
	// skipped days never leave gaps.
	count, err := s.progressRepo.CountByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	progress = &domain.DailyProgress{
		PlanID:             planID,
		UserID:             userID,
		DayNumber:          int(count) + 1,
		Date:               dayStart,
		EatenTemplateMenus: []primitive.ObjectID{},
		ExcessDailyFoods:   []domain.ExcessFood{},
		Status:             domain.ProgressTracking,
	}

	progressID, err := s.progressRepo.Create(ctx, progress)
	if err != nil {
		// A concurrent call created today's record first; the unique
		// (plan_id, date) index guarantees there is exactly one winner.
		if errors.Is(err, repository.ErrDuplicate) {
			return s.progressRepo.FindByPlanAndDateRange(ctx, planID, userID, dayStart, dayEnd)
		}
		return nil, err
	}
	progress.ID = progressID
	return progress, nil
}

func (s *dailyProgressService) UpdateTracking(ctx context.Context, userID, progressID primitive.ObjectID, input TrackingUpdateInput) (*domain.DailyProgress, error) {
	progress, err := s.progressRepo.GetByIDAndUser(ctx, progressID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	if progress.Status == domain.ProgressSaved {
		return nil, ErrProgressLocked
	}

	if input.EatenTemplateMenus == nil && input.ExcessDailyFoods == nil {
		// Nothing to change.
		return progress, nil
	}

	err = s.progressRepo.ReplaceTracking(ctx, progressID, input.EatenTemplateMenus, input.ExcessDailyFoods)
	if err != nil {
		// The record was saved between our read and the write.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrProgressLocked
		}
		return nil, err
	}

	return s.progressRepo.GetByIDAndUser(ctx, progressID, userID)
}

func (s *dailyProgressService) CompleteTracking(ctx context.Context, userID, progressID primitive.ObjectID) (*CompletionResult, error) {
	progress, err := s.progressRepo.GetByIDAndUser(ctx, progressID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	if progress.Status == domain.ProgressSaved {
		return nil, ErrProgressLocked
	}

	plan, err := s.planRepo.GetByIDAndOwner(ctx, progress.PlanID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	eaten, err := s.foodRepo.GetByIDs(ctx, progress.EatenTemplateMenus)
	if err != nil {
		return nil, err
	}

	var totalCalories, totalPrice float64
	for _, food := range eaten {
		totalCalories += food.Macros.Calories
		totalPrice += food.Price
	}
	for _, food := range progress.ExcessDailyFoods {
		totalCalories += food.Calories
		totalPrice += food.Price
	}

	caloriesExceeded := math.Max(0, totalCalories-plan.MacroTargets.DailyCal)

	var budgetExceeded float64
	if plan.Priority == domain.PriorityBudget && plan.BudgetLimit != nil {
		budgetExceeded = math.Max(0, totalPrice-*plan.BudgetLimit)
	}

	err = s.progressRepo.Complete(ctx, progressID, caloriesExceeded, budgetExceeded)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrProgressLocked
		}
		return nil, err
	}

	updated, err := s.progressRepo.GetByIDAndUser(ctx, progressID, userID)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.offsetSuggestions(ctx, caloriesExceeded)
	if err != nil {
		return nil, err
	}

	return &CompletionResult{
		Summary: CompletionSummary{
			TotalCalories: totalCalories,
			TotalPrice:    totalPrice,
			CalTarget:     plan.MacroTargets.DailyCal,
			BudgetLimit:   plan.BudgetLimit,
		},
		Suggestions: suggestions,
		Progress:    updated,
	}, nil
}

// offsetSuggestions proposes, per catalog exercise, the minutes needed
// to burn the calorie excess. Advisory only: the stored exceedance is
// never adjusted by exercise.
func (s *dailyProgressService) offsetSuggestions(ctx context.Context, caloriesExceeded float64) ([]ExerciseSuggestion, error) {
	if caloriesExceeded <= 0 {
		return []ExerciseSuggestion{}, nil
	}

	exercises, err := s.exerciseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	suggestions := make([]ExerciseSuggestion, 0, len(exercises))
	for _, ex := range exercises {
		if ex.CalPerHour <= 0 {
			continue
		}
		suggestions = append(suggestions, ExerciseSuggestion{
			ExerciseID: ex.ID,
			Name:       ex.Name,
			CalPerHour: ex.CalPerHour,
			Minutes:    math.Ceil(caloriesExceeded / ex.CalPerHour * 60),
		})
	}
	return suggestions, nil
}

func (s *dailyProgressService) SaveProgress(ctx context.Context, userID, progressID primitive.ObjectID, input SaveProgressInput) (*domain.DailyProgress, error) {
	progress, err := s.progressRepo.GetByIDAndUser(ctx, progressID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	if progress.Status == domain.ProgressSaved {
		return nil, ErrProgressLocked
	}
	if progress.Status != domain.ProgressRecommendation {
		return nil, ErrProgressNotReady
	}

	if input.ExerciseSelected != nil {
		if _, err := s.exerciseRepo.GetByID(ctx, *input.ExerciseSelected); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrExerciseNotFound
			}
			return nil, err
		}
	}

	err = s.progressRepo.Save(ctx, progressID, input.ExerciseSelected, input.ExerciseTimeMinutes, input.ActuallyExercised)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrProgressNotReady
		}
		return nil, err
	}

	return s.progressRepo.GetByIDAndUser(ctx, progressID, userID)
}

func (s *dailyProgressService) GetPlanStats(ctx context.Context, userID, planID primitive.ObjectID) ([]DayStat, error) {
	if _, err := s.planRepo.GetByIDAndOwner(ctx, planID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	history, err := s.progressRepo.ListSavedByPlan(ctx, planID, userID)
	if err != nil {
		return nil, err
	}

	stats := make([]DayStat, 0, len(history))
	for _, day := range history {
		stats = append(stats, DayStat{
			DayNumber:        day.DayNumber,
			Date:             day.Date,
			CaloriesExceeded: day.RecommendationData.CaloriesExceeded,
			BudgetExceeded:   day.RecommendationData.BudgetExceeded,
			Exercised:        day.RecommendationData.ActuallyExercised,
		})
	}
	return stats, nil
}
