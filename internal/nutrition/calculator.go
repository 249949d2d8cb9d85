// Package nutrition derives daily energy and macro targets from a
// biometric profile. Everything here is pure arithmetic: no I/O, no
// side effects, safe from any number of goroutines.
package nutrition

import (
	"math"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"
)

// Profile is the biometric input to the calculator. Callers are
// responsible for rejecting non-positive age, weight and height before
// invoking; the calculator itself never fails.
type Profile struct {
	Gender domain.Gender
	Age    int     // years
	Weight float64 // kilograms
	Height float64 // centimeters
}

// Result carries the computed energy expenditure and macro targets.
// BMR and TDEE are rounded for display; the targets are derived from
// the full-precision intermediates so rounding error does not compound.
type Result struct {
	BMR     float64             `json:"bmr"`
	TDEE    float64             `json:"tdee"`
	Targets domain.MacroTargets `json:"targets"`
}

// Activity multipliers applied to BMR. Unknown levels fall back to
// sedentary.
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:        1.20,
	domain.ActivityLightlyActive:    1.375,
	domain.ActivityModeratelyActive: 1.55,
	domain.ActivityVeryActive:       1.725,
	domain.ActivityExtremelyActive:  1.90,
	// Alias used by some callers for the highest level.
	domain.ActivityLevel("Extra Active"): 1.90,
}

// goalScaling holds the per-goal calorie factor, protein coefficient
// (grams per kg bodyweight) and the shares of daily calories allotted
// to fat and sugar.
type goalScaling struct {
	calFactor float64
	proteinK  float64
	fatPct    float64
	sugarPct  float64
}

var goalScalings = map[domain.FitnessGoal]goalScaling{
	domain.GoalMuscleGain:  {calFactor: 1.20, proteinK: 2.0, fatPct: 0.25, sugarPct: 0.10},
	domain.GoalWeightLoss:  {calFactor: 0.80, proteinK: 2.0, fatPct: 0.20, sugarPct: 0.05},
	domain.GoalMaintenance: {calFactor: 1.00, proteinK: 1.6, fatPct: 0.25, sugarPct: 0.10},
}

const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarb    = 4.0
	kcalPerGramFat     = 9.0
)

// Calculate computes BMR (Mifflin-St Jeor), TDEE and the goal-scaled
// daily targets for calories, protein, fat, sugar and carbohydrate.
// Each gram target is rounded to the nearest integer independently;
// carbohydrate fills the caloric budget left after protein and fat.
func Calculate(p Profile, activity domain.ActivityLevel, goal domain.FitnessGoal) Result {
	var bmr float64
	if p.Gender == domain.GenderMale {
		bmr = 10*p.Weight + 6.25*p.Height - 5*float64(p.Age) + 5
	} else {
		bmr = 10*p.Weight + 6.25*p.Height - 5*float64(p.Age) - 161
	}

	multiplier, ok := activityMultipliers[activity]
	if !ok {
		multiplier = activityMultipliers[domain.ActivitySedentary]
	}
	tdee := bmr * multiplier

	scaling, ok := goalScalings[goal]
	if !ok {
		scaling = goalScalings[domain.GoalMaintenance]
	}
	dailyCal := tdee * scaling.calFactor

	proteinG := math.Round(p.Weight * scaling.proteinK)
	fatG := math.Round(dailyCal * scaling.fatPct / kcalPerGramFat)
	sugarG := math.Round(dailyCal * scaling.sugarPct / kcalPerGramCarb)

	// Remaining calories after protein and fat are fixed go to carbs.
	carbG := math.Round((dailyCal - proteinG*kcalPerGramProtein - fatG*kcalPerGramFat) / kcalPerGramCarb)
	if carbG < 0 {
		carbG = 0
	}

	return Result{
		BMR:  math.Round(bmr),
		TDEE: math.Round(tdee),
		Targets: domain.MacroTargets{
			DailyCal:     math.Round(dailyCal),
			Carbohydrate: carbG,
			Protein:      proteinG,
			Fat:          fatG,
			Sugar:        sugarG,
		},
	}
}
