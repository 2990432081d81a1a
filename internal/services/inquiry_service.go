package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/notifier"
	"github.com/privacyweave/backend/internal/repositories"
	"github.com/privacyweave/backend/internal/utils"
)

type InquiryInput struct {
	FirstName string
	LastName  string
	Email     string
	Company   string
	Industry  string
	Message   string
}

type InquiryService interface {
	Submit(ctx context.Context, in InquiryInput) (*models.Inquiry, error)
	List(ctx context.Context) ([]models.Inquiry, error)
	Get(ctx context.Context, id int) (*models.Inquiry, error)
}

type inquiryService struct {
	inquiries repositories.InquiryRepository
	notify    notifier.Notifier
	log       *logrus.Logger
}

func NewInquiryService(inquiries repositories.InquiryRepository, notify notifier.Notifier, log *logrus.Logger) InquiryService {
	return &inquiryService{inquiries: inquiries, notify: notify, log: log}
}

func (s *inquiryService) Submit(ctx context.Context, in InquiryInput) (*models.Inquiry, error) {
	const op = "InquiryService.Submit"

	inq := &models.Inquiry{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Company:   in.Company,
		Industry:  in.Industry,
		Message:   in.Message,
	}
	if err := s.inquiries.Create(ctx, inq); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store inquiry", err)
	}

	// best-effort: a lost notification never fails the submission
	if err := s.notify.InquiryReceived(ctx, inq); err != nil {
		s.log.WithError(err).WithField("inquiry_id", inq.ID).Warn("inquiry notification failed")
	}
	return inq, nil
}

func (s *inquiryService) List(ctx context.Context) ([]models.Inquiry, error) {
	const op = "InquiryService.List"

	rows, err := s.inquiries.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list inquiries", err)
	}
	return rows, nil
}

func (s *inquiryService) Get(ctx context.Context, id int) (*models.Inquiry, error) {
	const op = "InquiryService.Get"

	inq, err := s.inquiries.GetByID(ctx, id)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "inquiry not found", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to get inquiry", err)
	}
	return inq, nil
}
