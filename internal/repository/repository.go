package repository

import (
	"context"
	"time"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate record")
	// ErrConflict is returned when a conditional update matched no
	// document because its status precondition did not hold.
	ErrConflict = RepositoryError("conflicting record state")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// UpdateProfile persists biometrics, goal/activity selection and the
	// recomputed display targets. Identity fields are never touched.
	UpdateProfile(ctx context.Context, user *domain.User) error
}

// FoodRepository defines the interface for interacting with the food catalog.
type FoodRepository interface {
	Create(ctx context.Context, food *domain.Food) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Food, error)
	// GetByIDs resolves a list of references. The same ID appearing more
	// than once in ids yields the food that many times in the result, so
	// repeated template entries aggregate correctly.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Food, error)
	// List returns foods filtered by optional case-insensitive name and
	// canteen substrings, sorted by name.
	List(ctx context.Context, name, canteen string) ([]domain.Food, error)
	SetPictureKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
}

// PlanRepository defines the interface for interacting with plan data.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	// GetByIDAndOwner treats an ownership mismatch identically to absence.
	GetByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (*domain.Plan, error)
	GetByOwner(ctx context.Context, owner primitive.ObjectID) ([]domain.Plan, error)
	AddTemplateMenu(ctx context.Context, id, owner, foodID primitive.ObjectID) error
	RemoveTemplateMenu(ctx context.Context, id, owner, foodID primitive.ObjectID) error
}

// DailyProgressRepository defines the interface for daily tracking records.
//
// The mutation methods are atomic conditional updates: the status
// precondition and the write happen as one step, so concurrent
// completes/saves on the same record cannot both succeed on stale
// state. A failed precondition surfaces as ErrConflict.
type DailyProgressRepository interface {
	// Create inserts a new record; the unique (plan_id, date) index makes
	// this insert-if-absent. A same-day duplicate returns ErrDuplicate.
	Create(ctx context.Context, progress *domain.DailyProgress) (primitive.ObjectID, error)
	GetByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*domain.DailyProgress, error)
	FindByPlanAndDateRange(ctx context.Context, planID, userID primitive.ObjectID, from, to time.Time) (*domain.DailyProgress, error)
	CountByPlan(ctx context.Context, planID primitive.ObjectID) (int64, error)
	// ReplaceTracking swaps eaten/excess wholesale (nil slice pointer =
	// leave unchanged) unless the record is already saved.
	ReplaceTracking(ctx context.Context, id primitive.ObjectID, eaten *[]primitive.ObjectID, excess *[]domain.ExcessFood) error
	// Complete writes the exceedance figures and moves the record to
	// recommendation unless it is already saved.
	Complete(ctx context.Context, id primitive.ObjectID, caloriesExceeded, budgetExceeded float64) error
	// Save finalizes the record, merging any provided exercise fields.
	// Only a record currently in recommendation can be saved.
	Save(ctx context.Context, id primitive.ObjectID, exercise *primitive.ObjectID, minutes *float64, exercised *bool) error
	// ListSavedByPlan returns saved records ordered by day_number asc.
	ListSavedByPlan(ctx context.Context, planID, userID primitive.ObjectID) ([]domain.DailyProgress, error)
}

// ExerciseRepository defines the interface for the exercise catalog.
type ExerciseRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	// UpsertByName creates or updates an exercise keyed by its unique
	// name, so seeding is idempotent.
	UpsertByName(ctx context.Context, name string, calPerHour float64) error
}
