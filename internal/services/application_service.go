package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/notifier"
	"github.com/privacyweave/backend/internal/repositories"
	"github.com/privacyweave/backend/internal/storage"
	"github.com/privacyweave/backend/internal/utils"
)

type ApplicationInput struct {
	FullName   string
	Email      string
	Phone      string
	Position   string
	Experience string
	Message    *string
}

// ResumeUpload carries an uploaded resume file alongside an application.
type ResumeUpload struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

type ApplicationService interface {
	Submit(ctx context.Context, in ApplicationInput, resume *ResumeUpload) (*models.JobApplication, error)
	List(ctx context.Context) ([]models.JobApplication, error)
	Get(ctx context.Context, id int) (*models.JobApplication, error)
}

type applicationService struct {
	applications repositories.JobApplicationRepository
	uploader     storage.Uploader
	notify       notifier.Notifier
	log          *logrus.Logger
}

func NewApplicationService(
	applications repositories.JobApplicationRepository,
	uploader storage.Uploader,
	notify notifier.Notifier,
	log *logrus.Logger,
) ApplicationService {
	return &applicationService{applications: applications, uploader: uploader, notify: notify, log: log}
}

func (s *applicationService) Submit(ctx context.Context, in ApplicationInput, resume *ResumeUpload) (*models.JobApplication, error) {
	const op = "ApplicationService.Submit"

	app := &models.JobApplication{
		FullName:   in.FullName,
		Email:      in.Email,
		Phone:      in.Phone,
		Position:   in.Position,
		Experience: in.Experience,
		Message:    in.Message,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store application", err)
	}

	// the resume path is attached after creation, mirroring the upload
	// happening after the record exists
	if resume != nil {
		objectName := fmt.Sprintf("resume-%s%s", uuid.NewString(), filepath.Ext(resume.FileName))
		path, err := s.uploader.Upload(ctx, objectName, resume.ContentType, resume.Reader)
		if err != nil {
			return nil, utils.E(utils.CodeUnavailable, op, "failed to store resume file", err)
		}
		if err := s.applications.AttachResumePath(ctx, app.ID, path); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to attach resume path", err)
		}
		app.ResumePath = &path
	}

	if err := s.notify.ApplicationReceived(ctx, app); err != nil {
		s.log.WithError(err).WithField("application_id", app.ID).Warn("application notification failed")
	}
	return app, nil
}

func (s *applicationService) List(ctx context.Context) ([]models.JobApplication, error) {
	const op = "ApplicationService.List"

	rows, err := s.applications.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return rows, nil
}

func (s *applicationService) Get(ctx context.Context, id int) (*models.JobApplication, error) {
	const op = "ApplicationService.Get"

	app, err := s.applications.GetByID(ctx, id)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}
	return app, nil
}
