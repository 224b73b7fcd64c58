package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is a merchant entity. Products reference their owning store.
type Store struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description" bson:"description"`
	Owner        primitive.ObjectID `json:"owner" bson:"owner"`
	Category     string             `json:"category" bson:"category"`
	Address      string             `json:"address,omitempty" bson:"address,omitempty"`
	RefundPolicy string             `json:"refundPolicy,omitempty" bson:"refundPolicy,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// StoreCreateRequest is the payload for creating a store.
type StoreCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
}

// StoreUpdateRequest is the payload for editing a store.
type StoreUpdateRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Address      *string `json:"address"`
	Category     *string `json:"category"`
	RefundPolicy *string `json:"refundPolicy"`
}
