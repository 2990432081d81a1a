package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/privacyweave/backend/internal/cache"
	"github.com/privacyweave/backend/internal/models"
	"github.com/privacyweave/backend/internal/repositories"
	"github.com/privacyweave/backend/internal/utils"
)

const (
	activeListingsKey = "listings:active"
	activeListingsTTL = 5 * time.Minute
)

type ListingInput struct {
	Title        string
	Description  string
	Requirements string
	Type         string
	Location     string
	Experience   string
	IsActive     *bool // nil defaults to active
}

type ListingService interface {
	ListActive(ctx context.Context) ([]models.JobListing, error)
	List(ctx context.Context) ([]models.JobListing, error)
	Get(ctx context.Context, id int) (*models.JobListing, error)
	Create(ctx context.Context, in ListingInput) (*models.JobListing, error)
}

type listingService struct {
	listings repositories.JobListingRepository
	cache    cache.Cache
	log      *logrus.Logger
}

func NewListingService(listings repositories.JobListingRepository, c cache.Cache, log *logrus.Logger) ListingService {
	return &listingService{listings: listings, cache: c, log: log}
}

func (s *listingService) ListActive(ctx context.Context) ([]models.JobListing, error) {
	const op = "ListingService.ListActive"

	var cached []models.JobListing
	hit, err := s.cache.GetJSON(ctx, activeListingsKey, &cached)
	if err != nil {
		// cache trouble degrades to a repository read
		s.log.WithError(err).Warn("listing cache read failed")
	} else if hit {
		return cached, nil
	}

	rows, err := s.listings.ListActive(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list active job listings", err)
	}

	if err := s.cache.SetJSON(ctx, activeListingsKey, rows, activeListingsTTL); err != nil {
		s.log.WithError(err).Warn("listing cache write failed")
	}
	return rows, nil
}

func (s *listingService) List(ctx context.Context) ([]models.JobListing, error) {
	const op = "ListingService.List"

	rows, err := s.listings.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list job listings", err)
	}
	return rows, nil
}

func (s *listingService) Get(ctx context.Context, id int) (*models.JobListing, error) {
	const op = "ListingService.Get"

	l, err := s.listings.GetByID(ctx, id)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "job listing not found", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to get job listing", err)
	}
	return l, nil
}

func (s *listingService) Create(ctx context.Context, in ListingInput) (*models.JobListing, error) {
	const op = "ListingService.Create"

	if in.Title == "" || in.Description == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title and description are required", nil)
	}

	l := &models.JobListing{
		Title:        in.Title,
		Description:  in.Description,
		Requirements: in.Requirements,
		Type:         in.Type,
		Location:     in.Location,
		Experience:   in.Experience,
		IsActive:     true,
	}
	if in.IsActive != nil {
		l.IsActive = *in.IsActive
	}

	if err := s.listings.Create(ctx, l); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job listing", err)
	}

	if err := s.cache.Del(ctx, activeListingsKey); err != nil {
		s.log.WithError(err).Warn("listing cache invalidation failed")
	}
	return l, nil
}
