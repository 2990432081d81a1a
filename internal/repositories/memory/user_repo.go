package memory

import (
	"context"

	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/repositories"
	"github.com/privacyweave/backend/internal/utils"
)

type userRepo struct {
	s *Store
}

func (s *Store) Users() repositories.UserRepository { return &userRepo{s: s} }

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u.ID = r.s.userSeq.Next()
	u.CreatedAt = r.s.now()
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, utils.ErrNotFound
}
