package services

import (
	"context"
	"fmt"

	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/db/repositories"
	"blueline/reservehub/internal/models/dtos"
	models "blueline/reservehub/internal/models/gorm"
)

// UserService handles member records. Accounts are created lazily on first
// authenticated access from the identity provider's claims; nothing here
// verifies credentials.
type UserService struct {
	repo *repositories.UserRepositoryGORM
}

func NewUserService(repo *repositories.UserRepositoryGORM) *UserService {
	return &UserService{repo: repo}
}

// GetOrCreate resolves the authenticated principal to a user row, creating
// one on first access.
func (s *UserService) GetOrCreate(ctx context.Context, email, name string) (*models.User, error) {
	return s.repo.FindOrCreateByEmail(ctx, email, name)
}

// Get retrieves a user by id
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the full roster
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// UpdateProfile applies a user's own edits (name, phone)
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req dtos.UpdateProfileReq) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AdminUpdate applies role/position/status edits. Users are never
// hard-deleted; deactivation is the status flip to inactive.
func (s *UserService) AdminUpdate(ctx context.Context, userID string, req dtos.AdminUpdateUserReq) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Role != "" {
		role := constants.Role(req.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("invalid role: %q", req.Role)
		}
		user.Role = role
	}
	if req.Position != "" {
		position := constants.Position(req.Position)
		if !position.Valid() {
			return nil, fmt.Errorf("invalid position: %q", req.Position)
		}
		user.Position = position
	}
	if req.Status != "" {
		switch constants.UserStatus(req.Status) {
		case constants.UserActive, constants.UserInactive:
			user.Status = constants.UserStatus(req.Status)
		default:
			return nil, fmt.Errorf("invalid status: %q", req.Status)
		}
	}
	if req.BadgeNumber != nil {
		user.BadgeNumber = req.BadgeNumber
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetResumePath stores the object-storage path after an upload
func (s *UserService) SetResumePath(ctx context.Context, userID, path string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.ResumePath = &path
	return s.repo.Update(ctx, user)
}
