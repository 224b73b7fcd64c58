package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/raulgarrigos/tapiocraft-server/models"
)

// OrderRepository persists orders. Orders are append-only: status is the
// only mutable field and documents are never deleted.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	// UpdateStatusFrom moves the status in a single compare-and-swap
	// write. Returns ErrNotFound when the order is missing or its status
	// no longer matches from, so exactly one of two concurrent
	// transitions can win.
	UpdateStatusFrom(ctx context.Context, id primitive.ObjectID, from, to string) error
	// ExistsByUserAndProduct reports whether the user has any order
	// containing the product. Backs verified-purchase reviews.
	ExistsByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (bool, error)
	// ExistsByUserAndStore reports whether the user has any order touching
	// the store.
	ExistsByUserAndStore(ctx context.Context, userID, storeID primitive.ObjectID) (bool, error)
}

type mongoOrderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository creates a Mongo-backed order repository.
func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{collection: db.Collection("orders")}
}

func (r *mongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}

	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

func (r *mongoOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

func (r *mongoOrderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (r *mongoOrderRepository) UpdateStatusFrom(ctx context.Context, id primitive.ObjectID, from, to string) error {
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "status": from}, update)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoOrderRepository) ExistsByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (bool, error) {
	filter := bson.M{"user": userID, "products.product": productID}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count orders: %w", err)
	}
	return count > 0, nil
}

func (r *mongoOrderRepository) ExistsByUserAndStore(ctx context.Context, userID, storeID primitive.ObjectID) (bool, error) {
	filter := bson.M{"user": userID, "stores": storeID}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count orders: %w", err)
	}
	return count > 0, nil
}
