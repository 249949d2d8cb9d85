package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender of a user, used by the macro target calculator.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// FitnessGoal selects how daily calories and macros are scaled.
type FitnessGoal string

const (
	GoalWeightLoss  FitnessGoal = "Weight Loss"
	GoalMaintenance FitnessGoal = "Maintenance"
	GoalMuscleGain  FitnessGoal = "Muscle Gain"
)

// ActivityLevel selects the TDEE multiplier.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "Sedentary"
	ActivityLightlyActive    ActivityLevel = "Lightly Active"
	ActivityModeratelyActive ActivityLevel = "Moderately Active"
	ActivityVeryActive       ActivityLevel = "Very Active"
	ActivityExtremelyActive  ActivityLevel = "Extremely Active"
)

// User represents a registered user with the biometric profile the
// nutrition calculator reads.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"` // Unique
	Email        string             `bson:"email" json:"email"`       // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"`    // Never expose via JSON

	Gender   Gender  `bson:"gender" json:"gender"`
	Age      int     `bson:"age" json:"age"`       // years
	Weight   float64 `bson:"weight" json:"weight"` // kilograms
	Height   float64 `bson:"height" json:"height"` // centimeters

	FitnessGoal   FitnessGoal   `bson:"fitness_goal" json:"fitness_goal"`
	ActivityLevel ActivityLevel `bson:"activity_level" json:"activity_level"`

	// Targets is the display snapshot recomputed whenever the profile
	// changes. Plans freeze their own copy at creation and are not
	// affected by updates here.
	Targets MacroTargets `bson:"targets" json:"targets"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
