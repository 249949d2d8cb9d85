package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressStatus is the per-day state machine:
// tracking -> recommendation -> saved. No state is skipped and saved is
// terminal.
type ProgressStatus string

const (
	ProgressTracking       ProgressStatus = "tracking"
	ProgressRecommendation ProgressStatus = "recommendation"
	ProgressSaved          ProgressStatus = "saved"
)

// ExcessFood is an ad-hoc food logged during tracking that was not part
// of the plan template (snacks, drinks). Free-form, not a catalog entry.
type ExcessFood struct {
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Calories float64 `bson:"calories" json:"calories"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Protein  float64 `bson:"protein" json:"protein"`
	Fat      float64 `bson:"fat" json:"fat"`
	Sugar    float64 `bson:"sugar" json:"sugar"`
}

// RecommendationData holds the end-of-day variance computed by complete
// tracking plus the exercise choice recorded on save. The exercise
// fields are informational only: they never reduce CaloriesExceeded.
type RecommendationData struct {
	CaloriesExceeded    float64             `bson:"calories_exceeded" json:"calories_exceeded"`
	BudgetExceeded      float64             `bson:"budget_exceeded" json:"budget_exceeded"`
	ExerciseSelected    *primitive.ObjectID `bson:"exercise_selected" json:"exercise_selected"`
	ExerciseTimeMinutes *float64            `bson:"exercise_time_minutes" json:"exercise_time_minutes"`
	ActuallyExercised   bool                `bson:"actually_exercised" json:"actually_exercised"`
}

// DailyProgress is one tracking record per plan per calendar day,
// enforced by a unique (plan_id, date) index. DayNumber is assigned by
// creation order, so gaps in tracking do not create gaps in numbering.
type DailyProgress struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID    primitive.ObjectID `bson:"plan_id" json:"plan_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	DayNumber int                `bson:"day_number" json:"day_number"`
	Date      time.Time          `bson:"date" json:"date"`

	// EatenTemplateMenus are the plan template foods actually ticked off
	// this day.
	EatenTemplateMenus []primitive.ObjectID `bson:"eaten_template_menus" json:"eaten_template_menus"`
	ExcessDailyFoods   []ExcessFood         `bson:"excess_daily_foods" json:"excess_daily_foods"`

	Status             ProgressStatus     `bson:"status" json:"status"`
	RecommendationData RecommendationData `bson:"recommendation_data" json:"recommendation_data"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
