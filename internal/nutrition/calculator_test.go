package nutrition

import (
	"testing"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"
)

var referenceMale = Profile{
	Gender: domain.GenderMale,
	Age:    25,
	Weight: 70,
	Height: 175,
}

func TestCalculateMaintenanceSedentary(t *testing.T) {
	// BMR = 10*70 + 6.25*175 - 5*25 + 5 = 1673.75
	got := Calculate(referenceMale, domain.ActivitySedentary, domain.GoalMaintenance)

	if got.BMR != 1674 {
		t.Errorf("BMR = %v, want 1674", got.BMR)
	}
	if got.TDEE != 2009 {
		t.Errorf("TDEE = %v, want 2009", got.TDEE)
	}
	if got.Targets.DailyCal != 2009 {
		t.Errorf("DailyCal = %v, want 2009", got.Targets.DailyCal)
	}
	if got.Targets.Protein != 112 {
		t.Errorf("Protein = %v, want 112", got.Targets.Protein)
	}
	if got.Targets.Fat != 56 {
		t.Errorf("Fat = %v, want 56", got.Targets.Fat)
	}
	if got.Targets.Sugar != 50 {
		t.Errorf("Sugar = %v, want 50", got.Targets.Sugar)
	}
	// Carbs absorb what protein and fat leave: (2008.5 - 448 - 504)/4.
	if got.Targets.Carbohydrate != 264 {
		t.Errorf("Carbohydrate = %v, want 264", got.Targets.Carbohydrate)
	}
}

func TestCalculateMuscleGainSedentary(t *testing.T) {
	got := Calculate(referenceMale, domain.ActivitySedentary, domain.GoalMuscleGain)

	if got.Targets.DailyCal != 2410 {
		t.Errorf("DailyCal = %v, want 2410", got.Targets.DailyCal)
	}
	if got.Targets.Protein != 140 {
		t.Errorf("Protein = %v, want 140", got.Targets.Protein)
	}
	if got.Targets.Fat != 67 {
		t.Errorf("Fat = %v, want 67", got.Targets.Fat)
	}
	if got.Targets.Sugar != 60 {
		t.Errorf("Sugar = %v, want 60", got.Targets.Sugar)
	}
	if got.Targets.Carbohydrate != 312 {
		t.Errorf("Carbohydrate = %v, want 312", got.Targets.Carbohydrate)
	}
}

func TestCalculateWeightLossFemale(t *testing.T) {
	p := Profile{Gender: domain.GenderFemale, Age: 40, Weight: 80, Height: 160}
	got := Calculate(p, domain.ActivityModeratelyActive, domain.GoalWeightLoss)

	// BMR = 800 + 1000 - 200 - 161 = 1439; TDEE = 1439*1.55 = 2230.45.
	if got.BMR != 1439 {
		t.Errorf("BMR = %v, want 1439", got.BMR)
	}
	if got.TDEE != 2230 {
		t.Errorf("TDEE = %v, want 2230", got.TDEE)
	}
	if got.Targets.DailyCal != 1784 {
		t.Errorf("DailyCal = %v, want 1784", got.Targets.DailyCal)
	}
	if got.Targets.Protein != 160 {
		t.Errorf("Protein = %v, want 160", got.Targets.Protein)
	}
	if got.Targets.Fat != 40 {
		t.Errorf("Fat = %v, want 40", got.Targets.Fat)
	}
	if got.Targets.Sugar != 22 {
		t.Errorf("Sugar = %v, want 22", got.Targets.Sugar)
	}
	if got.Targets.Carbohydrate != 196 {
		t.Errorf("Carbohydrate = %v, want 196", got.Targets.Carbohydrate)
	}
}

func TestCalculateGenderOffset(t *testing.T) {
	female := referenceMale
	female.Gender = domain.GenderFemale

	m := Calculate(referenceMale, domain.ActivitySedentary, domain.GoalMaintenance)
	f := Calculate(female, domain.ActivitySedentary, domain.GoalMaintenance)

	if m.BMR-f.BMR != 166 {
		t.Errorf("male-female BMR difference = %v, want 166", m.BMR-f.BMR)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	first := Calculate(referenceMale, domain.ActivityVeryActive, domain.GoalMuscleGain)
	for i := 0; i < 10; i++ {
		if got := Calculate(referenceMale, domain.ActivityVeryActive, domain.GoalMuscleGain); got != first {
			t.Fatalf("run %d produced %+v, first run produced %+v", i, got, first)
		}
	}
}

func TestCalculateActivityMonotonic(t *testing.T) {
	levels := []domain.ActivityLevel{
		domain.ActivitySedentary,
		domain.ActivityLightlyActive,
		domain.ActivityModeratelyActive,
		domain.ActivityVeryActive,
		domain.ActivityExtremelyActive,
	}

	prev := -1.0
	for _, level := range levels {
		got := Calculate(referenceMale, level, domain.GoalMaintenance)
		if got.TDEE <= prev {
			t.Errorf("TDEE at %q = %v, not greater than previous level's %v", level, got.TDEE, prev)
		}
		prev = got.TDEE
	}
}

func TestCalculateUnknownActivityDefaultsToSedentary(t *testing.T) {
	want := Calculate(referenceMale, domain.ActivitySedentary, domain.GoalMaintenance)
	got := Calculate(referenceMale, domain.ActivityLevel("couch potato"), domain.GoalMaintenance)
	if got != want {
		t.Errorf("unknown activity produced %+v, want sedentary result %+v", got, want)
	}
}

func TestCalculateExtraActiveAlias(t *testing.T) {
	want := Calculate(referenceMale, domain.ActivityExtremelyActive, domain.GoalMuscleGain)
	got := Calculate(referenceMale, domain.ActivityLevel("Extra Active"), domain.GoalMuscleGain)
	if got != want {
		t.Errorf("alias produced %+v, want %+v", got, want)
	}
}

func TestCalculateUnknownGoalDefaultsToMaintenance(t *testing.T) {
	want := Calculate(referenceMale, domain.ActivitySedentary, domain.GoalMaintenance)
	got := Calculate(referenceMale, domain.ActivitySedentary, domain.FitnessGoal("Bulking"))
	if got != want {
		t.Errorf("unknown goal produced %+v, want maintenance result %+v", got, want)
	}
}

func TestCalculateCarbsNeverNegative(t *testing.T) {
	// A very heavy, short, old profile on a cut pushes protein+fat
	// calories past the daily budget.
	p := Profile{Gender: domain.GenderFemale, Age: 90, Weight: 300, Height: 30}
	got := Calculate(p, domain.ActivitySedentary, domain.GoalWeightLoss)

	if got.Targets.Carbohydrate != 0 {
		t.Errorf("Carbohydrate = %v, want 0 when protein and fat exceed the budget", got.Targets.Carbohydrate)
	}
}

func TestCalculateGoalScalesCalories(t *testing.T) {
	maintenance := Calculate(referenceMale, domain.ActivityLightlyActive, domain.GoalMaintenance)
	gain := Calculate(referenceMale, domain.ActivityLightlyActive, domain.GoalMuscleGain)
	loss := Calculate(referenceMale, domain.ActivityLightlyActive, domain.GoalWeightLoss)

	if gain.Targets.DailyCal <= maintenance.Targets.DailyCal {
		t.Errorf("muscle gain calories %v not above maintenance %v", gain.Targets.DailyCal, maintenance.Targets.DailyCal)
	}
	if loss.Targets.DailyCal >= maintenance.Targets.DailyCal {
		t.Errorf("weight loss calories %v not below maintenance %v", loss.Targets.DailyCal, maintenance.Targets.DailyCal)
	}
	// The goal never changes TDEE itself, only the calorie budget.
	if gain.TDEE != maintenance.TDEE || loss.TDEE != maintenance.TDEE {
		t.Errorf("TDEE varied with goal: %v / %v / %v", gain.TDEE, maintenance.TDEE, loss.TDEE)
	}
}
