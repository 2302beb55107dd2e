package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/repository"
	"gorm.io/gorm"
)

// IdentityResolver maps an authenticated principal to its user record.
type IdentityResolver struct {
	store repository.Store
}

// NewIdentityResolver creates a new IdentityResolver.
func NewIdentityResolver(store repository.Store) *IdentityResolver {
	return &IdentityResolver{store: store}
}

// Resolve returns the user whose email is the principal.
func (r *IdentityResolver) Resolve(ctx context.Context, email string) (*models.User, error) {
	var user *models.User
	err := r.store.ReadOnly(ctx, func(tx repository.Store) error {
		found, err := tx.Users().FindByEmail(email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIdentityInconsistency
			}
			return fmt.Errorf("failed to find user: %w", err)
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
