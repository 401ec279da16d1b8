package repositories

import (
	"context"
	"errors"
	"fmt"

	"blueline/reservehub/internal/constants"
	models "blueline/reservehub/internal/models/gorm"

	"gorm.io/gorm"
)

type UserRepositoryGORM struct {
	db *gorm.DB
}

// NewUserRepositoryGORM creates a new GORM-based user repository
func NewUserRepositoryGORM(db *gorm.DB) *UserRepositoryGORM {
	return &UserRepositoryGORM{db: db}
}

// GetByID retrieves a user by id
func (r *UserRepositoryGORM) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by the email the identity provider asserts
func (r *UserRepositoryGORM) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// FindOrCreateByEmail returns the user for an authenticated principal,
// creating the row on first access. New users start as active guests.
func (r *UserRepositoryGORM) FindOrCreateByEmail(ctx context.Context, email, name string) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	user = models.User{
		Email:    email,
		Name:     name,
		Role:     constants.RoleGuest,
		Position: constants.PositionCandidate,
		Status:   constants.UserActive,
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// List retrieves all users ordered by name, for the admin roster
func (r *UserRepositoryGORM) List(ctx context.Context) ([]models.User, error) {
	var users []models.User

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&users).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, nil
}

// Update persists profile or admin edits
func (r *UserRepositoryGORM) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// IDsByRole returns ids of active users holding the given role.
// Recomputed at call time so audiences reflect the current roster.
func (r *UserRepositoryGORM) IDsByRole(ctx context.Context, role constants.Role) ([]string, error) {
	var ids []string

	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ? AND status = ?", role, constants.UserActive).
		Pluck("id", &ids).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch users by role: %w", err)
	}

	return ids, nil
}

// IDsByPosition returns ids of active users holding the given position
func (r *UserRepositoryGORM) IDsByPosition(ctx context.Context, position constants.Position) ([]string, error) {
	var ids []string

	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("position = ? AND status = ?", position, constants.UserActive).
		Pluck("id", &ids).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch users by position: %w", err)
	}

	return ids, nil
}

// ActiveIDs returns ids of every active user
func (r *UserRepositoryGORM) ActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string

	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("status = ?", constants.UserActive).
		Pluck("id", &ids).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch active users: %w", err)
	}

	return ids, nil
}
