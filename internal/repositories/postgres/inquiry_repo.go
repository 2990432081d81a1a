package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/repositories"
	"github.com/privacyweave/backend/internal/utils"
)

type inquiryRepo struct {
	db *gorm.DB
}

func NewInquiryRepo(db *gorm.DB) repositories.InquiryRepository {
	return &inquiryRepo{db: db}
}

func (r *inquiryRepo) Create(ctx context.Context, inq *models.Inquiry) error {
	return r.db.WithContext(ctx).Create(inq).Error
}

func (r *inquiryRepo) GetByID(ctx context.Context, id int) (*models.Inquiry, error) {
	var inq models.Inquiry
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&inq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &inq, err
}

func (r *inquiryRepo) List(ctx context.Context) ([]models.Inquiry, error) {
	var rows []models.Inquiry
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}
