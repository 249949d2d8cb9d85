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

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new Plan repository backed by MongoDB.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a new plan with its frozen macro snapshot.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if plan.Owner == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan owner is required")
	}

	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByIDAndOwner retrieves a plan only if it belongs to the given
// owner. An ownership mismatch is indistinguishable from absence.
func (r *mongoPlanRepository) GetByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (*domain.Plan, error) {
	var plan domain.Plan
	filter := bson.M{"_id": id, "owner": owner}

	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByOwner retrieves all plans of a user, newest first.
func (r *mongoPlanRepository) GetByOwner(ctx context.Context, owner primitive.ObjectID) ([]domain.Plan, error) {
	filter := bson.M{"owner": owner}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domain.Plan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

// AddTemplateMenu appends a food reference to the plan template. $push
// rather than $addToSet: the same food may legitimately appear multiple
// times, meaning repeated daily consumption.
func (r *mongoPlanRepository) AddTemplateMenu(ctx context.Context, id, owner, foodID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "owner": owner}
	update := bson.M{
		"$push": bson.M{"template_menus": foodID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RemoveTemplateMenu removes all occurrences of a food reference from
// the plan template.
func (r *mongoPlanRepository) RemoveTemplateMenu(ctx context.Context, id, owner, foodID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "owner": owner}
	update := bson.M{
		"$pull": bson.M{"template_menus": foodID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes for the plans collection.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Non-fatal; see EnsureUserIndexes.
	}
}
