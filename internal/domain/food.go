package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodMacros holds per-serving nutrition values for a catalog food.
type FoodMacros struct {
	Calories float64 `bson:"calories" json:"calories"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Protein  float64 `bson:"protein" json:"protein"`
	Fat      float64 `bson:"fat" json:"fat"`
	Sugar    float64 `bson:"sugar" json:"sugar"`
}

// Food is a catalog entry users pick into plan templates and tick off
// during daily tracking.
type Food struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Price   float64            `bson:"price" json:"price"`
	Canteen string             `bson:"canteen" json:"canteen"`

	// PictureKey is the S3 object key of the food photo; handlers resolve
	// it to a presigned download URL when serving the food.
	PictureKey string `bson:"pictureKey,omitempty" json:"-"`

	Macros FoodMacros `bson:"macros" json:"macros"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
