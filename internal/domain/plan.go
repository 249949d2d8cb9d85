package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanPriority is the constraint a plan optimizes: a monetary spend
// ceiling or unconstrained macro adherence.
type PlanPriority string

const (
	PriorityBudget   PlanPriority = "budget"
	PriorityNutrient PlanPriority = "nutrient"
)

// PlanStatus of a plan's overall lifecycle.
type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
	PlanAbandoned PlanStatus = "abandoned"
)

// Plan is a recurring daily meal template over a number of days.
//
// MacroTargets is frozen at creation from the plan's own goal/activity
// combined with the owner's biometrics at that moment. Later profile
// edits never touch it, which is what lets a user run concurrent plans
// with different goals and keeps historical plans stable.
type Plan struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner primitive.ObjectID `bson:"owner" json:"owner"`

	FitnessGoal   FitnessGoal   `bson:"fitness_goal" json:"fitness_goal"`
	ActivityLevel ActivityLevel `bson:"activity_level" json:"activity_level"`

	Priority PlanPriority `bson:"priority" json:"priority"`
	// BudgetLimit is nil iff Priority is nutrient.
	BudgetLimit *float64 `bson:"budget_limit" json:"budget_limit"`
	Duration    int      `bson:"duration" json:"duration"` // days

	// TemplateMenus may reference the same food multiple times, meaning
	// repeated daily consumption.
	TemplateMenus []primitive.ObjectID `bson:"template_menus" json:"template_menus"`

	MacroTargets MacroTargets `bson:"macro_targets" json:"macro_targets"`
	Status       PlanStatus   `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
