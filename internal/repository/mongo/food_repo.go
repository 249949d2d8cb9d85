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

const foodCollectionName = "foods"

// mongoFoodRepository implements repository.FoodRepository
type mongoFoodRepository struct {
	collection *mongo.Collection
}

// NewMongoFoodRepository creates a new Food repository backed by MongoDB.
func NewMongoFoodRepository(db *mongo.Database) repository.FoodRepository {
	return &mongoFoodRepository{
		collection: db.Collection(foodCollectionName),
	}
}

// Create inserts a new food into the catalog.
func (r *mongoFoodRepository) Create(ctx context.Context, food *domain.Food) (primitive.ObjectID, error) {
	if food.Name == "" {
		return primitive.NilObjectID, errors.New("food name is required")
	}

	food.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	food.CreatedAt = now
	food.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, food)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a food by its ID.
func (r *mongoFoodRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Food, error) {
	var food domain.Food
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&food)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &food, nil
}

// GetByIDs resolves a list of food references, preserving multiplicity:
// an ID listed twice yields the food twice. Unknown IDs are skipped
// rather than failing the whole lookup.
func (r *mongoFoodRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Food, error) {
	if len(ids) == 0 {
		return []domain.Food{}, nil
	}

	filter := bson.M{"_id": bson.M{"$in": ids}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []domain.Food
	if err = cursor.All(ctx, &found); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]domain.Food, len(found))
	for _, f := range found {
		byID[f.ID] = f
	}

	foods := make([]domain.Food, 0, len(ids))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			foods = append(foods, f)
		}
	}
	return foods, nil
}

// List returns catalog foods matching the optional name and canteen
// substring filters, sorted by name.
func (r *mongoFoodRepository) List(ctx context.Context, name, canteen string) ([]domain.Food, error) {
	filter := bson.M{}
	if name != "" {
		filter["name"] = bson.M{"$regex": name, "$options": "i"}
	}
	if canteen != "" {
		filter["canteen"] = bson.M{"$regex": canteen, "$options": "i"}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var foods []domain.Food
	if err = cursor.All(ctx, &foods); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return foods, nil
}

// SetPictureKey records the S3 object key of the food's picture.
func (r *mongoFoodRepository) SetPictureKey(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"pictureKey": objectKey,
			"updatedAt":  time.Now().UTC(),
		},
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

// EnsureFoodIndexes creates necessary indexes for the foods collection.
func EnsureFoodIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "canteen", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Non-fatal; see EnsureUserIndexes.
	}
}
