package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Delivered and cancelled are terminal.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem is a line item copied by value from the cart at checkout.
// Only the product reference and quantity are kept; the price paid lives
// in the order's OrderPrice, captured at creation time.
type OrderItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Quantity int                `json:"quantity" bson:"quantity"`
}

// TrackingInfo holds optional carrier details once an order ships.
type TrackingInfo struct {
	TrackingNumber string `json:"trackingNumber,omitempty" bson:"trackingNumber,omitempty"`
	Carrier        string `json:"carrier,omitempty" bson:"carrier,omitempty"`
}

// Order is an immutable snapshot of a cart at checkout time, plus a
// mutable status. Orders are never deleted.
type Order struct {
	ID              primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	User            primitive.ObjectID   `json:"user" bson:"user"`
	Name            string               `json:"name" bson:"name"`
	Surname         string               `json:"surname" bson:"surname"`
	Stores          []primitive.ObjectID `json:"stores" bson:"stores"`
	ShippingAddress string               `json:"shippingAddress" bson:"shippingAddress"`
	Products        []OrderItem          `json:"products" bson:"products"`
	Status          string               `json:"status" bson:"status"`
	OrderPrice      float64              `json:"orderPrice" bson:"orderPrice"`
	PaymentMethod   string               `json:"paymentMethod" bson:"paymentMethod"`
	TrackingInfo    *TrackingInfo        `json:"trackingInfo,omitempty" bson:"trackingInfo,omitempty"`
	AdditionalNotes string               `json:"additionalNotes,omitempty" bson:"additionalNotes,omitempty"`
	CreatedAt       time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// PopulatedOrderItem is an order line item with the product document
// resolved. Product is nil when the product has since been deleted.
type PopulatedOrderItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// PopulatedOrder is an order with its product and store references
// resolved on read.
type PopulatedOrder struct {
	Order
	PopulatedProducts []PopulatedOrderItem `json:"populatedProducts"`
	PopulatedStores   []Store              `json:"populatedStores"`
}

// CheckoutRequest is the payload for placing an order from a cart.
type CheckoutRequest struct {
	Name            string `json:"name" binding:"required"`
	Surname         string `json:"surname" binding:"required"`
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	PaymentMethod   string `json:"paymentMethod" binding:"required"`
}

// OrderStatusUpdateRequest is the payload for moving an order forward in
// its lifecycle.
type OrderStatusUpdateRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}
