package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/raulgarrigos/tapiocraft-server/models"
)

// StoreRepository persists merchant stores.
type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Store, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Store, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoStoreRepository struct {
	collection *mongo.Collection
}

// NewStoreRepository creates a Mongo-backed store repository.
func NewStoreRepository(db *mongo.Database) StoreRepository {
	return &mongoStoreRepository{collection: db.Collection("stores")}
}

func (r *mongoStoreRepository) Create(ctx context.Context, store *models.Store) error {
	now := time.Now().UTC()
	store.CreatedAt = now
	store.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, store)
	if err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		store.ID = oid
	}
	return nil
}

func (r *mongoStoreRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Store, error) {
	var store models.Store
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&store)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find store: %w", err)
	}
	return &store, nil
}

func (r *mongoStoreRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Store, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find stores: %w", err)
	}
	defer cursor.Close(ctx)

	var stores []models.Store
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, fmt.Errorf("decode stores: %w", err)
	}
	return stores, nil
}

func (r *mongoStoreRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
	updates["updatedAt"] = time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoStoreRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
