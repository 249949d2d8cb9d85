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

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// List retrieves the whole exercise catalog sorted by name.
func (r *mongoExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// UpsertByName creates or updates an exercise keyed by its unique name.
// Upserting instead of inserting keeps seeding idempotent under the
// unique name index.
func (r *mongoExerciseRepository) UpsertByName(ctx context.Context, name string, calPerHour float64) error {
	if name == "" {
		return errors.New("exercise name is required")
	}

	now := time.Now().UTC()
	filter := bson.M{"name": name}
	update := bson.M{
		"$set": bson.M{
			"cal_per_hour": calPerHour,
			"updatedAt":    now,
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID(),
			"name":      name,
			"createdAt": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Non-fatal; see EnsureUserIndexes.
	}
}
