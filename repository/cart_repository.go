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

// CartRepository persists per-user carts. Line-item mutations are single
// conditional update expressions ($inc guarded by an items.product match)
// rather than read-modify-save, so concurrent requests for the same cart
// cannot lose updates.
type CartRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	// IncrementItem adds delta to the quantity of an existing line item.
	// Returns false when the cart has no line item for the product, or
	// when a negative delta would drive the quantity below zero.
	IncrementItem(ctx context.Context, userID, productID primitive.ObjectID, delta int) (bool, error)
	// PushItem appends a new line item with quantity 1, upserting the cart
	// if absent. The filter guards against a duplicate line item; a
	// concurrent duplicate surfaces as ErrDuplicate.
	PushItem(ctx context.Context, userID, productID primitive.ObjectID) error
	// PruneEmptyItems removes line items whose quantity has reached zero.
	PruneEmptyItems(ctx context.Context, userID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoCartRepository struct {
	collection *mongo.Collection
}

// NewCartRepository creates a Mongo-backed cart repository.
func NewCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{collection: db.Collection("carts")}
}

func (r *mongoCartRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return &cart, nil
}

func (r *mongoCartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return &cart, nil
}

// GetOrCreate returns the user's cart, lazily creating an empty one. The
// upsert relies on the unique index on carts.user, so concurrent calls
// converge on a single document.
func (r *mongoCartRepository) GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	now := time.Now().UTC()
	filter := bson.M{"user": userID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"user":      userID,
			"items":     []models.CartItem{},
			"createdAt": now,
		},
		"$set": bson.M{"updatedAt": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cart models.Cart
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart); err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}
	return &cart, nil
}

func (r *mongoCartRepository) IncrementItem(ctx context.Context, userID, productID primitive.ObjectID, delta int) (bool, error) {
	filter := bson.M{"user": userID, "items.product": productID}
	if delta < 0 {
		// Decrements must not push the quantity below zero: a concurrent
		// removal of the same line item has to miss the filter, not
		// release stock that was never reserved.
		filter = bson.M{"user": userID, "items": bson.M{"$elemMatch": bson.M{
			"product":  productID,
			"quantity": bson.M{"$gte": -delta},
		}}}
	}
	update := bson.M{
		"$inc": bson.M{"items.$.quantity": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("increment cart item: %w", err)
	}
	return result.MatchedCount > 0, nil
}

func (r *mongoCartRepository) PushItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	now := time.Now().UTC()
	filter := bson.M{"user": userID, "items.product": bson.M{"$ne": productID}}
	update := bson.M{
		"$push":        bson.M{"items": models.CartItem{Product: productID, Quantity: 1}},
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent request created the line item first; the caller
		// retries as an increment.
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("push cart item: %w", err)
	}
	return nil
}

func (r *mongoCartRepository) PruneEmptyItems(ctx context.Context, userID primitive.ObjectID) error {
	filter := bson.M{"user": userID}
	update := bson.M{
		"$pull": bson.M{"items": bson.M{"quantity": bson.M{"$lte": 0}}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("prune cart items: %w", err)
	}
	return nil
}

func (r *mongoCartRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
