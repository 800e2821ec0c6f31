package services

import (
	"context"

	"github.com/google/uuid"

	"bistro/apperrors"
	"bistro/authz"
	"bistro/models"
	"bistro/store"
)

// Groups manages manager and delivery-crew membership.
type Groups struct {
	Users store.UserStore
}

func NewGroups(users store.UserStore) *Groups {
	return &Groups{Users: users}
}

func (s *Groups) Members(ctx context.Context, actor authz.Actor, group models.Group) ([]models.User, error) {
	if !authz.Can(actor, authz.ManageGroups, uuid.Nil) {
		return nil, apperrors.ErrForbidden
	}
	members, err := s.Users.GroupMembers(ctx, group)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []models.User{}
	}
	return members, nil
}

// Add puts the named user into the group. Adding an existing member is a
// no-op.
func (s *Groups) Add(ctx context.Context, actor authz.Actor, group models.Group, username string) (models.User, error) {
	if !authz.Can(actor, authz.ManageGroups, uuid.Nil) {
		return models.User{}, apperrors.ErrForbidden
	}
	if username == "" {
		return models.User{}, apperrors.Validationf("username is required")
	}
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	if err := s.Users.AddToGroup(ctx, user.ID, group); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *Groups) Remove(ctx context.Context, actor authz.Actor, group models.Group, userID uuid.UUID) error {
	if !authz.Can(actor, authz.ManageGroups, uuid.Nil) {
		return apperrors.ErrForbidden
	}
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.Users.RemoveFromGroup(ctx, userID, group)
}
