package memory

import (
	"context"
	"time"

	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/repositories"
	"github.com/privacyweave/backend/internal/utils"
)

type inquiryRepo struct {
	s *Store
}

func (s *Store) Inquiries() repositories.InquiryRepository { return &inquiryRepo{s: s} }

func (r *inquiryRepo) Create(ctx context.Context, inq *models.Inquiry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inq.ID = r.s.inquirySeq.Next()
	inq.CreatedAt = r.s.now()
	r.s.inquiries[inq.ID] = *inq
	return nil
}

func (r *inquiryRepo) GetByID(ctx context.Context, id int) (*models.Inquiry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inq, ok := r.s.inquiries[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &inq, nil
}

func (r *inquiryRepo) List(ctx context.Context) ([]models.Inquiry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := make([]int, 0, len(r.s.inquiries))
	for id := range r.s.inquiries {
		ids = append(ids, id)
	}
	newestFirst(ids, func(id int) time.Time { return r.s.inquiries[id].CreatedAt })

	out := make([]models.Inquiry, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.inquiries[id])
	}
	return out, nil
}
