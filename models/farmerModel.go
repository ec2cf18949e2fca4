package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Farmer struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Mobile       string             `json:"mobile" bson:"mobile"`
	Email        string             `json:"email,omitempty" bson:"email,omitempty"`
	Password     string             `json:"-" bson:"password"`
	Address      string             `json:"address" bson:"address"`
	City         string             `json:"city" bson:"city"`
	State        string             `json:"state" bson:"state"`
	Pincode      string             `json:"pincode" bson:"pincode"`
	Latitude     float64            `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude    float64            `json:"longitude,omitempty" bson:"longitude,omitempty"`
	ProfilePhoto string             `json:"profilePhoto,omitempty" bson:"profilePhoto,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}
