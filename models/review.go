package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review types discriminate whether the review targets a product or a
// store. Exactly one of the two references is set accordingly.
const (
	ReviewTypeProduct = "product"
	ReviewTypeStore   = "store"
)

// Review is a verified-purchase review: it can only be created by a user
// with a prior order referencing the target product or store.
type Review struct {
	ID         primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	User       primitive.ObjectID  `json:"user" bson:"user"`
	Product    *primitive.ObjectID `json:"product,omitempty" bson:"product,omitempty"`
	Store      *primitive.ObjectID `json:"store,omitempty" bson:"store,omitempty"`
	Rating     int                 `json:"rating" bson:"rating"`
	Comment    string              `json:"comment,omitempty" bson:"comment,omitempty"`
	ReviewType string              `json:"reviewType" bson:"reviewType"`
	CreatedAt  time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// ReviewCreateRequest is the payload for posting a review.
type ReviewCreateRequest struct {
	ReviewType string `json:"reviewType" binding:"required,oneof=product store"`
	Product    string `json:"product"`
	Store      string `json:"store"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}
