package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is priced per kilogram; InStock is the remaining stock in kilograms.
type Product struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Price     float64            `json:"price" bson:"price"`
	InStock   float64            `json:"inStock" bson:"inStock"`
	ImageUrl  string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	FarmerID  primitive.ObjectID `json:"farmerId" bson:"farmerId"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
