package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a catalog entry with an energy burn rate. The progress
// reconciler only needs CalPerHour to label a day's exercise selection
// and suggest offset minutes.
type Exercise struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"` // Unique
	CalPerHour float64            `bson:"cal_per_hour" json:"cal_per_hour"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
