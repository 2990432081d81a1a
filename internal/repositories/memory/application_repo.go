package memory

import (
	"context"
	"time"

	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/repositories"
	"github.com/privacyweave/backend/internal/utils"
)

type applicationRepo struct {
	s *Store
}

func (s *Store) JobApplications() repositories.JobApplicationRepository {
	return &applicationRepo{s: s}
}

func (r *applicationRepo) Create(ctx context.Context, a *models.JobApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a.ID = r.s.applicationSeq.Next()
	a.CreatedAt = r.s.now()
	r.s.applications[a.ID] = *a
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int) (*models.JobApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.applications[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &a, nil
}

func (r *applicationRepo) List(ctx context.Context) ([]models.JobApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := make([]int, 0, len(r.s.applications))
	for id := range r.s.applications {
		ids = append(ids, id)
	}
	newestFirst(ids, func(id int) time.Time { return r.s.applications[id].CreatedAt })

	out := make([]models.JobApplication, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.applications[id])
	}
	return out, nil
}

func (r *applicationRepo) AttachResumePath(ctx context.Context, id int, path string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.applications[id]
	if !ok {
		return utils.ErrNotFound
	}
	a.ResumePath = &path
	r.s.applications[id] = a
	return nil
}
