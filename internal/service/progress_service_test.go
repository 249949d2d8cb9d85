package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type progressFixture struct {
	svc          *dailyProgressService
	progressRepo *memProgressRepo
	foodRepo     *memFoodRepo
	exerciseRepo *memExerciseRepo
	userID       primitive.ObjectID
	planID       primitive.ObjectID
}

// newProgressFixture seeds a user and a plan with a 2000 kcal daily
// target and hands back the service with a controllable clock.
func newProgressFixture(t *testing.T, priority domain.PlanPriority, budgetLimit *float64) *progressFixture {
	t.Helper()
	ctx := context.Background()

	userRepo := newMemUserRepo()
	foodRepo := newMemFoodRepo()
	planRepo := newMemPlanRepo()
	progressRepo := newMemProgressRepo()
	exerciseRepo := newMemExerciseRepo()

	userID, err := userRepo.Create(ctx, &domain.User{
		Username: "thiri", Email: "thiri@example.com",
		Gender: domain.GenderFemale, Age: 28, Weight: 55, Height: 160,
	})
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}

	planID, err := planRepo.Create(ctx, &domain.Plan{
		Owner:         userID,
		FitnessGoal:   domain.GoalMaintenance,
		ActivityLevel: domain.ActivitySedentary,
		Priority:      priority,
		BudgetLimit:   budgetLimit,
		Duration:      30,
		TemplateMenus: []primitive.ObjectID{},
		MacroTargets:  domain.MacroTargets{DailyCal: 2000, Carbohydrate: 250, Protein: 110, Fat: 55, Sugar: 50},
		Status:        domain.PlanActive,
	})
	if err != nil {
		t.Fatalf("seeding plan: %v", err)
	}

	svc := NewDailyProgressService(progressRepo, planRepo, foodRepo, exerciseRepo).(*dailyProgressService)

	return &progressFixture{
		svc:          svc,
		progressRepo: progressRepo,
		foodRepo:     foodRepo,
		exerciseRepo: exerciseRepo,
		userID:       userID,
		planID:       planID,
	}
}

func (fx *progressFixture) setClock(t time.Time) {
	fx.svc.now = func() time.Time { return t }
}

func TestGetTodayProgressCreatesOncePerDay(t *testing.T) {
	fx := newProgressFixture(t, domain.PriorityNutrient, nil)
	ctx := context.Background()
	fx.setClock(time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC))

	first, err := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)
	if err != nil {
		t.Fatalf("GetTodayProgress: %v", err)
	}
	if first.DayNumber != 1 {
		t.Errorf("DayNumber = %d, want 1", first.DayNumber)
	}
	if first.Status != domain.ProgressTracking {
		t.Errorf("Status = %q, want tracking", first.Status)
	}
	wantDate := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	if !first.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want day-start %v", first.Date, wantDate)
	}

	// Later the same day: same record, no second insert.
	fx.setClock(time.Date(2026, time.March, 10, 22, 0, 0, 0, time.UTC))
	second, err := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)
	if err != nil {
		t.Fatalf("GetTodayProgress (same day): %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second call returned a different record: %s != %s", second.ID.Hex(), first.ID.Hex())
	}

	count, _ := fx.progressRepo.CountByPlan(ctx, fx.planID)
	if count != 1 {
		t.Errorf("record count = %d, want 1", count)
	}
}

func TestGetTodayProgressDayNumbersSkipNoGaps(t *testing.T) {
	fx := newProgressFixture(t, domain.PriorityNutrient, nil)
	ctx := context.Background()

	fx.setClock(time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC))
	first, err := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)
	if err != nil {
		t.Fatalf("day one: %v", err)
	}

	// The user skips three calendar days; day numbering follows creation
	// order, not elapsed time.
	fx.setClock(time.Date(2026, time.March, 14, 8, 0, 0, 0, time.UTC))
	second, err := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)
	if err != nil {
		t.Fatalf("day after gap: %v", err)
	}

	if first.DayNumber != 1 || second.DayNumber != 2 {
		t.Errorf("day numbers = %d, %d, want 1, 2", first.DayNumber, second.DayNumber)
	}
}

func TestGetTodayProgressRejectsForeignPlan(t *testing.T) {
	fx := newProgressFixture(t, domain.PriorityNutrient, nil)
	ctx := context.Background()

	if _, err := fx.svc.GetTodayProgress(ctx, primitive.NewObjectID(), fx.planID); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("err = %v, want ErrPlanNotFound", err)
	}
}

func TestUpdateTrackingReplacesListsWholesale(t *testing.T) {
	fx := newProgressFixture(t, domain.PriorityNutrient, nil)
	ctx := context.Background()
	fx.setClock(time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC))

	foodID, _ := fx.foodRepo.Create(ctx, &domain.Food{Name: "Mohinga", Price: 2})

	progress, err := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)
	if err != nil {
		t.Fatalf("GetTodayProgress: %v", err)
	}

	eaten := []primitive.ObjectID{foodID, foodID}
	excess := []domain.ExcessFood{{Name: "Bubble Tea", Price: 3, Calories: 350, Sugar: 40}}
	updated, err := fx.svc.UpdateTracking(ctx, fx.userID, progress.ID, TrackingUpdateInput{
		EatenTemplateMenus: &eaten,
		ExcessDailyFoods:   &excess,
	})
	if err != nil {
		t.Fatalf("UpdateTracking: %v", err)
	}
	if len(updated.EatenTemplateMenus) != 2 || len(updated.ExcessDailyFoods) != 1 {
		t.Fatalf("lists = %d eaten / %d excess, want 2 / 1", len(updated.EatenTemplateMenus), len(updated.ExcessDailyFoods))
	}

	// Nil pointer leaves the other list untouched.
	empty := []domain.ExcessFood{}
	updated, err = fx.svc.UpdateTracking(ctx, fx.userID, progress.ID, TrackingUpdateInput{
		ExcessDailyFoods: &empty,
	})
	if err != nil {
		t.Fatalf("UpdateTracking (clear excess): %v", err)
	}
	if len(updated.EatenTemplateMenus) != 2 {
		t.Errorf("eaten list touched by excess-only update: %d entries, want 2", len(updated.EatenTemplateMenus))
	}
	if len(updated.ExcessDailyFoods) != 0 {
		t.Errorf("excess list = %d entries, want cleared", len(updated.ExcessDailyFoods))
	}
}

func TestCompleteTrackingComputesCalorieExceedance(t *testing.T) {
	fx := newProgressFixture(t, domain.PriorityNutrient, nil)
	ctx := context.Background()
	fx.setClock(time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC))

	// 2 x 900 kcal template foods + 500 kcal excess = 2300 against 2000.
	foodID, _ := fx.foodRepo.Create(ctx, &domain.Food{
		Name: "Fried Rice", Price: 4,
		Macros: domain.FoodMacros{Calories: 900},
	})

	progress, _ := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)
	eaten := []primitive.ObjectID{foodID, foodID}
	excess := []domain.ExcessFood{{Name: "Cake", Price: 2.5, Calories: 500}}
	if _, err := fx.svc.UpdateTracking(ctx, fx.userID, progress.ID, TrackingUpdateInput{
		EatenTemplateMenus: &eaten,
		ExcessDailyFoods:   &excess,
	}); err != nil {
		t.Fatalf("UpdateTracking: %v", err)
	}

	result, err := fx.svc.CompleteTracking(ctx, fx.userID, progress.ID)
	if err != nil {
		t.Fatalf("CompleteTracking: %v", err)
	}

	if result.Summary.TotalCalories != 2300 {
		t.Errorf("TotalCalories = %v, want 2300", result.Summary.TotalCalories)
	}
	if result.Summary.TotalPrice != 10.5 {
		t.Errorf("TotalPrice = %v, want 10.5", result.Summary.TotalPrice)
	}
	if result.Progress.RecommendationData.CaloriesExceeded != 300 {
		t.Errorf("CaloriesExceeded = %v, want 300", result.Progress.RecommendationData.CaloriesExceeded)
	}
	if result.Progress.RecommendationData.BudgetExceeded != 0 {
		t.Errorf("BudgetExceeded = %v, want 0 for nutrient priority", result.Progress.RecommendationData.BudgetExceeded)
	}
	if result.Progress.Status != domain.ProgressRecommendation {
		t.Errorf("Status = %q, want recommendation", result.Progress.Status)
	}
}

func TestCompleteTrackingExceedanceFloorsAtZero(t *testing.T) {
	fx := newProgressFixture(t, domain.PriorityNutrient, nil)
	ctx := context.Background()
	fx.setClock(time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC))

	foodID, _ := fx.foodRepo.Create(ctx, &domain.Food{
		Name: "Salad", Price: 3,
		Macros: domain.FoodMacros{Calories: 400},
	})

	progress, _ := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)
	eaten := []primitive.ObjectID{foodID}
	if _, err := fx.svc.UpdateTracking(ctx, fx.userID, progress.ID, TrackingUpdateInput{EatenTemplateMenus: &eaten}); err != nil {
		t.Fatalf("UpdateTracking: %v", err)
	}

	result, err := fx.svc.CompleteTracking(ctx, fx.userID, progress.ID)
	if err != nil {
		t.Fatalf("CompleteTracking: %v", err)
	}
	if result.Progress.RecommendationData.CaloriesExceeded != 0 {
		t.Errorf("CaloriesExceeded = %v, want 0 for an under-target day", result.Progress.RecommendationData.CaloriesExceeded)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("suggestions = %d, want none when nothing was exceeded", len(result.Suggestions))
	}
}

func TestCompleteTrackingBudgetExceedance(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		wantOver float64
	}{
		{"under budget", 85, 0},
		{"over budget", 130, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newProgressFixture(t, domain.PriorityBudget, floatPtr(100))
			ctx := context.Background()
			fx.setClock(time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC))

			foodID, _ := fx.foodRepo.Create(ctx, &domain.Food{
				Name: "Set Meal", Price: tc.price,
				Macros: domain.FoodMacros{Calories: 700},
			})

			progress, _ := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)
			eaten := []primitive.ObjectID{foodID}
			if _, err := fx.svc.UpdateTracking(ctx, fx.userID, progress.ID, TrackingUpdateInput{EatenTemplateMenus: &eaten}); err != nil {
				t.Fatalf("UpdateTracking: %v", err)
			}

			result, err := fx.svc.CompleteTracking(ctx, fx.userID, progress.ID)
			if err != nil {
				t.Fatalf("CompleteTracking: %v", err)
			}
			if result.Progress.RecommendationData.BudgetExceeded != tc.wantOver {
				t.Errorf("BudgetExceeded = %v, want %v", result.Progress.RecommendationData.BudgetExceeded, tc.wantOver)
			}
			if result.Summary.BudgetLimit == nil || *result.Summary.BudgetLimit != 100 {
				t.Errorf("Summary.BudgetLimit = %v, want 100", result.Summary.BudgetLimit)
			}
		})
	}
}

func TestCompleteTrackingSuggestsOffsetMinutes(t *testing.T) {
	fx := newProgressFixture(t, domain.PriorityNutrient, nil)
	ctx := context.Background()
	fx.setClock(time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC))

	if err := fx.exerciseRepo.UpsertByName(ctx, "Running (Moderate)", 600); err != nil {
		t.Fatalf("seeding exercise: %v", err)
	}
	if err := fx.exerciseRepo.UpsertByName(ctx, "Walking (Brisk)", 300); err != nil {
		t.Fatalf("seeding exercise: %v", err)
	}

	foodID, _ := fx.foodRepo.Create(ctx, &domain.Food{
		Name: "Biryani", Price: 5,
		Macros: domain.FoodMacros{Calories: 2300},
	})

	progress, _ := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)
	eaten := []primitive.ObjectID{foodID}
	if _, err := fx.svc.UpdateTracking(ctx, fx.userID, progress.ID, TrackingUpdateInput{EatenTemplateMenus: &eaten}); err != nil {
		t.Fatalf("UpdateTracking: %v", err)
	}

	result, err := fx.svc.CompleteTracking(ctx, fx.userID, progress.ID)
	if err != nil {
		t.Fatalf("CompleteTracking: %v", err)
	}

	// 300 kcal over: 30 min at 600 kcal/h, 60 min at 300 kcal/h.
	minutes := map[string]float64{}
	for _, s := range result.Suggestions {
		minutes[s.Name] = s.Minutes
	}
	if minutes["Running (Moderate)"] != 30 {
		t.Errorf("running minutes = %v, want 30", minutes["Running (Moderate)"])
	}
	if minutes["Walking (Brisk)"] != 60 {
		t.Errorf("walking minutes = %v, want 60", minutes["Walking (Brisk)"])
	}
}

func TestEditsStillAllowedAtRecommendation(t *testing.T) {
	fx := newProgressFixture(t, domain.PriorityNutrient, nil)
	ctx := context.Background()
	fx.setClock(time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC))

	foodID, _ := fx.foodRepo.Create(ctx, &domain.Food{
		Name: "Noodles", Price: 3,
		Macros: domain.FoodMacros{Calories: 2500},
	})

	progress, _ := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)
	eaten := []primitive.ObjectID{foodID}
	if _, err := fx.svc.UpdateTracking(ctx, fx.userID, progress.ID, TrackingUpdateInput{EatenTemplateMenus: &eaten}); err != nil {
		t.Fatalf("UpdateTracking: %v", err)
	}
	if _, err := fx.svc.CompleteTracking(ctx, fx.userID, progress.ID); err != nil {
		t.Fatalf("CompleteTracking: %v", err)
	}

	// Forgot to untick a meal: fix the list and re-complete.
	cleared := []primitive.ObjectID{}
	if _, err := fx.svc.UpdateTracking(ctx, fx.userID, progress.ID, TrackingUpdateInput{EatenTemplateMenus: &cleared}); err != nil {
		t.Fatalf("UpdateTracking at recommendation: %v", err)
	}
	result, err := fx.svc.CompleteTracking(ctx, fx.userID, progress.ID)
	if err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	if result.Progress.RecommendationData.CaloriesExceeded != 0 {
		t.Errorf("CaloriesExceeded after correction = %v, want 0", result.Progress.RecommendationData.CaloriesExceeded)
	}
}

func TestSaveProgressRequiresRecommendation(t *testing.T) {
	fx := newProgressFixture(t, domain.PriorityNutrient, nil)
	ctx := context.Background()
	fx.setClock(time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC))

	progress, _ := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)

	if _, err := fx.svc.SaveProgress(ctx, fx.userID, progress.ID, SaveProgressInput{}); !errors.Is(err, ErrProgressNotReady) {
		t.Errorf("save while tracking: err = %v, want ErrProgressNotReady", err)
	}

	// The refused save must leave the record as it was.
	reloaded, _ := fx.progressRepo.GetByIDAndUser(ctx, progress.ID, fx.userID)
	if reloaded.Status != domain.ProgressTracking {
		t.Errorf("status after refused save = %q, want tracking", reloaded.Status)
	}
}

func TestSavedRecordIsImmutable(t *testing.T) {
	fx := newProgressFixture(t, domain.PriorityNutrient, nil)
	ctx := context.Background()
	fx.setClock(time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC))

	progress, _ := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)
	if _, err := fx.svc.CompleteTracking(ctx, fx.userID, progress.ID); err != nil {
		t.Fatalf("CompleteTracking: %v", err)
	}
	exercised := true
	saved, err := fx.svc.SaveProgress(ctx, fx.userID, progress.ID, SaveProgressInput{ActuallyExercised: &exercised})
	if err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	if saved.Status != domain.ProgressSaved {
		t.Fatalf("Status = %q, want saved", saved.Status)
	}

	eaten := []primitive.ObjectID{primitive.NewObjectID()}
	if _, err := fx.svc.UpdateTracking(ctx, fx.userID, progress.ID, TrackingUpdateInput{EatenTemplateMenus: &eaten}); !errors.Is(err, ErrProgressLocked) {
		t.Errorf("update after save: err = %v, want ErrProgressLocked", err)
	}
	if _, err := fx.svc.CompleteTracking(ctx, fx.userID, progress.ID); !errors.Is(err, ErrProgressLocked) {
		t.Errorf("complete after save: err = %v, want ErrProgressLocked", err)
	}
	if _, err := fx.svc.SaveProgress(ctx, fx.userID, progress.ID, SaveProgressInput{}); !errors.Is(err, ErrProgressLocked) {
		t.Errorf("double save: err = %v, want ErrProgressLocked", err)
	}

	reloaded, _ := fx.progressRepo.GetByIDAndUser(ctx, progress.ID, fx.userID)
	if len(reloaded.EatenTemplateMenus) != 0 {
		t.Errorf("saved record was mutated: %d eaten entries, want 0", len(reloaded.EatenTemplateMenus))
	}
	if !reloaded.RecommendationData.ActuallyExercised {
		t.Errorf("ActuallyExercised lost after refused writes")
	}
}

func TestSaveProgressRecordsExerciseChoice(t *testing.T) {
	fx := newProgressFixture(t, domain.PriorityNutrient, nil)
	ctx := context.Background()
	fx.setClock(time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC))

	if err := fx.exerciseRepo.UpsertByName(ctx, "Cycling", 480); err != nil {
		t.Fatalf("seeding exercise: %v", err)
	}
	exercises, _ := fx.exerciseRepo.List(ctx)
	cyclingID := exercises[0].ID

	progress, _ := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)
	if _, err := fx.svc.CompleteTracking(ctx, fx.userID, progress.ID); err != nil {
		t.Fatalf("CompleteTracking: %v", err)
	}

	minutes := 45.0
	exercised := true
	saved, err := fx.svc.SaveProgress(ctx, fx.userID, progress.ID, SaveProgressInput{
		ExerciseSelected:    &cyclingID,
		ExerciseTimeMinutes: &minutes,
		ActuallyExercised:   &exercised,
	})
	if err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}

	data := saved.RecommendationData
	if data.ExerciseSelected == nil || *data.ExerciseSelected != cyclingID {
		t.Errorf("ExerciseSelected = %v, want %s", data.ExerciseSelected, cyclingID.Hex())
	}
	if data.ExerciseTimeMinutes == nil || *data.ExerciseTimeMinutes != 45 {
		t.Errorf("ExerciseTimeMinutes = %v, want 45", data.ExerciseTimeMinutes)
	}
	if !data.ActuallyExercised {
		t.Errorf("ActuallyExercised = false, want true")
	}
}

func TestSaveProgressRejectsUnknownExercise(t *testing.T) {
	fx := newProgressFixture(t, domain.PriorityNutrient, nil)
	ctx := context.Background()
	fx.setClock(time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC))

	progress, _ := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)
	if _, err := fx.svc.CompleteTracking(ctx, fx.userID, progress.ID); err != nil {
		t.Fatalf("CompleteTracking: %v", err)
	}

	bogus := primitive.NewObjectID()
	if _, err := fx.svc.SaveProgress(ctx, fx.userID, progress.ID, SaveProgressInput{ExerciseSelected: &bogus}); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("err = %v, want ErrExerciseNotFound", err)
	}
}

func TestGetPlanStatsListsOnlySavedDays(t *testing.T) {
	fx := newProgressFixture(t, domain.PriorityNutrient, nil)
	ctx := context.Background()

	// Day one: complete and save.
	fx.setClock(time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC))
	dayOne, _ := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID)
	if _, err := fx.svc.CompleteTracking(ctx, fx.userID, dayOne.ID); err != nil {
		t.Fatalf("complete day one: %v", err)
	}
	if _, err := fx.svc.SaveProgress(ctx, fx.userID, dayOne.ID, SaveProgressInput{}); err != nil {
		t.Fatalf("save day one: %v", err)
	}

	// Day two: still mid-tracking.
	fx.setClock(time.Date(2026, time.March, 11, 8, 0, 0, 0, time.UTC))
	if _, err := fx.svc.GetTodayProgress(ctx, fx.userID, fx.planID); err != nil {
		t.Fatalf("day two: %v", err)
	}

	stats, err := fx.svc.GetPlanStats(ctx, fx.userID, fx.planID)
	if err != nil {
		t.Fatalf("GetPlanStats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("stats length = %d, want 1 (unsaved days excluded)", len(stats))
	}
	if stats[0].DayNumber != 1 {
		t.Errorf("DayNumber = %d, want 1", stats[0].DayNumber)
	}
}
