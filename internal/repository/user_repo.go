package repository

import (
	"context"
	"fmt"
	"strings"

	"fambalance/internal/models"
	"fambalance/internal/store"
)

// UserRepository handles storage of user profiles
type UserRepository struct {
	users collection[models.User]
}

// NewUserRepository creates a new user repository
func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{users: collection[models.User]{
		store: s,
		key:   store.KeyUsers,
		id:    func(u *models.User) string { return u.ID },
	}}
}

// CreateUser appends a new user
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.users.insert(ctx, *user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateUser overwrites the user with the same id
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	if err := r.users.replace(ctx, *user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by id, or nil when none exists
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := r.users.getByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail finds a user by email, ignoring case
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	user, err := r.users.find(ctx, func(u *models.User) bool {
		return u.Email != "" && strings.EqualFold(u.Email, email)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUsersByName returns every user with exactly this name, across families
func (r *UserRepository) GetUsersByName(ctx context.Context, name string) ([]models.User, error) {
	users, err := r.users.filter(ctx, func(u *models.User) bool { return u.Name == name })
	if err != nil {
		return nil, fmt.Errorf("failed to get users by name: %w", err)
	}
	return users, nil
}

// GetFamilyMemberByName finds a member of familyID with the given name
func (r *UserRepository) GetFamilyMemberByName(ctx context.Context, familyID, name string) (*models.User, error) {
	user, err := r.users.find(ctx, func(u *models.User) bool {
		return u.FamilyID == familyID && u.Name == name
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get family member: %w", err)
	}
	return user, nil
}

// GetUsersByIDs returns the users for ids in the order given, skipping unknown ids
func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	all, err := r.users.all(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	byID := make(map[string]models.User, len(all))
	for _, u := range all {
		byID[u.ID] = u
	}

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

// GetAllUsers returns every stored user
func (r *UserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := r.users.all(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}
