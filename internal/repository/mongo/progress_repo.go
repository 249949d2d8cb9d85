package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/domain"
	"github.com/Phyo-Arkar-Win/Meal-Budget-Planning-Webapp/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const progressCollectionName = "daily_progress"

// mongoDailyProgressRepository implements repository.DailyProgressRepository
//
// All status-dependent mutations are single UpdateOne calls whose filter
// carries the status precondition, so check-and-write is atomic at the
// document level.
type mongoDailyProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoDailyProgressRepository creates a new DailyProgress repository.
func NewMongoDailyProgressRepository(db *mongo.Database) repository.DailyProgressRepository {
	return &mongoDailyProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// Create inserts a new tracking record. The unique (plan_id, date)
// index turns a same-day race into ErrDuplicate so the caller can
// re-fetch the winner instead of creating two records.
func (r *mongoDailyProgressRepository) Create(ctx context.Context, progress *domain.DailyProgress) (primitive.ObjectID, error) {
	if progress.PlanID == primitive.NilObjectID || progress.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("progress requires plan_id and user_id")
	}

	progress.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	progress.CreatedAt = now
	progress.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, progress)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted progress ID")
	}
	return insertedID, nil
}

// GetByIDAndUser retrieves a record only if it belongs to the user.
func (r *mongoDailyProgressRepository) GetByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*domain.DailyProgress, error) {
	var progress domain.DailyProgress
	filter := bson.M{"_id": id, "user_id": userID}

	err := r.collection.FindOne(ctx, filter).Decode(&progress)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// FindByPlanAndDateRange looks up the record whose date falls in
// [from, to) for the given plan and user.
func (r *mongoDailyProgressRepository) FindByPlanAndDateRange(ctx context.Context, planID, userID primitive.ObjectID, from, to time.Time) (*domain.DailyProgress, error) {
	var progress domain.DailyProgress
	filter := bson.M{
		"plan_id": planID,
		"user_id": userID,
		"date":    bson.M{"$gte": from, "$lt": to},
	}

	err := r.collection.FindOne(ctx, filter).Decode(&progress)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// CountByPlan counts all progress records of a plan, used to assign the
// next day_number.
func (r *mongoDailyProgressRepository) CountByPlan(ctx context.Context, planID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"plan_id": planID})
}

// ReplaceTracking swaps the eaten/excess lists wholesale. A nil slice
// pointer leaves that list untouched. Saved records are immutable; the
// status filter makes the check-and-write atomic.
func (r *mongoDailyProgressRepository) ReplaceTracking(ctx context.Context, id primitive.ObjectID, eaten *[]primitive.ObjectID, excess *[]domain.ExcessFood) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if eaten != nil {
		set["eaten_template_menus"] = *eaten
	}
	if excess != nil {
		set["excess_daily_foods"] = *excess
	}

	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$ne": domain.ProgressSaved},
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrConflict
	}
	return nil
}

// Complete writes the exceedance figures and advances the record to
// recommendation, unless it has already been saved.
func (r *mongoDailyProgressRepository) Complete(ctx context.Context, id primitive.ObjectID, caloriesExceeded, budgetExceeded float64) error {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$ne": domain.ProgressSaved},
	}
	update := bson.M{
		"$set": bson.M{
			"status": domain.ProgressRecommendation,
			"recommendation_data.calories_exceeded": caloriesExceeded,
			"recommendation_data.budget_exceeded":   budgetExceeded,
			"updatedAt":                             time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrConflict
	}
	return nil
}

// Save finalizes the record. Only a record currently in recommendation
// matches the filter, so saving from tracking or re-saving both fail
// with ErrConflict and leave the document untouched.
func (r *mongoDailyProgressRepository) Save(ctx context.Context, id primitive.ObjectID, exercise *primitive.ObjectID, minutes *float64, exercised *bool) error {
	set := bson.M{
		"status":    domain.ProgressSaved,
		"updatedAt": time.Now().UTC(),
	}
	if exercise != nil {
		set["recommendation_data.exercise_selected"] = *exercise
	}
	if minutes != nil {
		set["recommendation_data.exercise_time_minutes"] = *minutes
	}
	if exercised != nil {
		set["recommendation_data.actually_exercised"] = *exercised
	}

	filter := bson.M{
		"_id":    id,
		"status": domain.ProgressRecommendation,
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrConflict
	}
	return nil
}

// ListSavedByPlan returns the saved history of a plan ordered by
// day_number ascending.
func (r *mongoDailyProgressRepository) ListSavedByPlan(ctx context.Context, planID, userID primitive.ObjectID) ([]domain.DailyProgress, error) {
	filter := bson.M{
		"plan_id": planID,
		"user_id": userID,
		"status":  domain.ProgressSaved,
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "day_number", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var history []domain.DailyProgress
	if err = cursor.All(ctx, &history); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

// EnsureDailyProgressIndexes creates necessary indexes for the
// daily_progress collection. The unique (plan_id, date) index is the
// one-record-per-plan-per-day invariant.
func EnsureDailyProgressIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "plan_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "plan_id", Value: 1}, {Key: "status", Value: 1}, {Key: "day_number", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Non-fatal; see EnsureUserIndexes.
	}
}
