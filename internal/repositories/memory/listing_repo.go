package memory

import (
	"context"
	"time"

	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/repositories"
	"github.com/privacyweave/backend/internal/utils"
)

type listingRepo struct {
	s *Store
}

func (s *Store) JobListings() repositories.JobListingRepository { return &listingRepo{s: s} }

func (r *listingRepo) Create(ctx context.Context, l *models.JobListing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l.ID = r.s.listingSeq.Next()
	l.CreatedAt = r.s.now()
	r.s.listings[l.ID] = *l
	return nil
}

func (r *listingRepo) GetByID(ctx context.Context, id int) (*models.JobListing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.listings[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &l, nil
}

func (r *listingRepo) List(ctx context.Context) ([]models.JobListing, error) {
	return r.list(func(models.JobListing) bool { return true }), nil
}

func (r *listingRepo) ListActive(ctx context.Context) ([]models.JobListing, error) {
	return r.list(func(l models.JobListing) bool { return l.IsActive }), nil
}

func (r *listingRepo) list(keep func(models.JobListing) bool) []models.JobListing {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := make([]int, 0, len(r.s.listings))
	for id, l := range r.s.listings {
		if keep(l) {
			ids = append(ids, id)
		}
	}
	newestFirst(ids, func(id int) time.Time { return r.s.listings[id].CreatedAt })

	out := make([]models.JobListing, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.listings[id])
	}
	return out
}
