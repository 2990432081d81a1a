package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/repositories"
	"github.com/privacyweave/backend/internal/utils"
)

type listingRepo struct {
	db *gorm.DB
}

func NewJobListingRepo(db *gorm.DB) repositories.JobListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) Create(ctx context.Context, l *models.JobListing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *listingRepo) GetByID(ctx context.Context, id int) (*models.JobListing, error) {
	var l models.JobListing
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &l, err
}

func (r *listingRepo) List(ctx context.Context) ([]models.JobListing, error) {
	var rows []models.JobListing
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *listingRepo) ListActive(ctx context.Context) ([]models.JobListing, error) {
	var rows []models.JobListing
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}
