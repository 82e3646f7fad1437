package service

import (
	"context"
	"fmt"
	"strings"

	"tour-booking-api/internal/tour/model"
	appErrors "tour-booking-api/pkg/errors"
	"tour-booking-api/pkg/utils"

	"github.com/google/uuid"
)

// Repository is the persistence surface the service needs. Implemented by
// repository.TourRepository.
type Repository interface {
	Create(ctx context.Context, tour *model.Tour) error
	GetByID(ctx context.Context, tourID uuid.UUID) (*model.Tour, error)
	List(ctx context.Context, opts model.ListOptions) ([]model.Tour, error)
	Update(ctx context.Context, tour *model.Tour) error
	Delete(ctx context.Context, tourID uuid.UUID) error
	Stats(ctx context.Context) ([]model.DifficultyStats, error)
}

type TourService struct {
	repo Repository
}

func NewService(repo Repository) *TourService {
	return &TourService{repo: repo}
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

func (s *TourService) Create(ctx context.Context, request *model.CreateTourRequest) (*model.Tour, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.Validation(utils.FormatValidationError(err), err)
	}

	if request.PriceDiscount != nil && *request.PriceDiscount >= request.Price {
		return nil, appErrors.Validation("discount price should be below the regular price", nil)
	}

	tour := &model.Tour{
		Name:            request.Name,
		Slug:            slugify(request.Name),
		Duration:        request.Duration,
		MaxGroupSize:    request.MaxGroupSize,
		Difficulty:      model.Difficulty(request.Difficulty),
		RatingsAverage:  4.5,
		RatingsQuantity: 0,
		Price:           request.Price,
		PriceDiscount:   request.PriceDiscount,
		Summary:         request.Summary,
		Description:     request.Description,
		ImageCover:      request.ImageCover,
		Images:          request.Images,
		StartDates:      request.StartDates,
	}

	if err := s.repo.Create(ctx, tour); err != nil {
		return nil, err
	}
	return tour, nil
}

func (s *TourService) Get(ctx context.Context, tourID uuid.UUID) (*model.Tour, error) {
	return s.repo.GetByID(ctx, tourID)
}

func (s *TourService) List(ctx context.Context, opts model.ListOptions) ([]model.Tour, error) {
	return s.repo.List(ctx, opts)
}

func (s *TourService) Update(ctx context.Context, tourID uuid.UUID, request *model.UpdateTourRequest) (*model.Tour, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.Validation(utils.FormatValidationError(err), err)
	}

	tour, err := s.repo.GetByID(ctx, tourID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		tour.Name = *request.Name
		tour.Slug = slugify(*request.Name)
	}
	if request.Duration != nil {
		tour.Duration = *request.Duration
	}
	if request.MaxGroupSize != nil {
		tour.MaxGroupSize = *request.MaxGroupSize
	}
	if request.Difficulty != nil {
		tour.Difficulty = model.Difficulty(*request.Difficulty)
	}
	if request.Price != nil {
		tour.Price = *request.Price
	}
	if request.PriceDiscount != nil {
		tour.PriceDiscount = request.PriceDiscount
	}
	if request.Summary != nil {
		tour.Summary = *request.Summary
	}
	if request.Description != nil {
		tour.Description = request.Description
	}
	if request.ImageCover != nil {
		tour.ImageCover = *request.ImageCover
	}
	if request.Images != nil {
		tour.Images = *request.Images
	}
	if request.StartDates != nil {
		tour.StartDates = *request.StartDates
	}

	if tour.PriceDiscount != nil && *tour.PriceDiscount >= tour.Price {
		return nil, appErrors.Validation("discount price should be below the regular price", nil)
	}

	if err := s.repo.Update(ctx, tour); err != nil {
		return nil, err
	}
	return tour, nil
}

func (s *TourService) Delete(ctx context.Context, tourID uuid.UUID) error {
	return s.repo.Delete(ctx, tourID)
}

func (s *TourService) Stats(ctx context.Context) ([]model.DifficultyStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}
