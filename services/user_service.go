package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raulgarrigos/tapiocraft-server/models"
	"github.com/raulgarrigos/tapiocraft-server/repository"
)

// UserService serves profile reads and updates.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetProfile returns a user's profile.
func (s *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile applies the caller's profile changes.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *models.ProfileUpdate) error {
	updates := bson.M{}
	if req.FirstName != nil {
		updates["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["lastName"] = *req.LastName
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.DateOfBirth != nil {
		updates["dateOfBirth"] = *req.DateOfBirth
	}
	if req.PhoneNumber != nil {
		updates["phoneNumber"] = *req.PhoneNumber
	}
	if len(updates) == 0 {
		return nil
	}
	return s.users.Update(ctx, userID, updates)
}
