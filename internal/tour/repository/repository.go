package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tour-booking-api/internal/database"
	"tour-booking-api/internal/tour/model"
	appErrors "tour-booking-api/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TourRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *TourRepository {
	return &TourRepository{db: db}
}

func (r *TourRepository) Create(ctx context.Context, tour *model.Tour) error {
	if tour.ID == uuid.Nil {
		tour.ID = uuid.New()
	}
	tour.CreatedAt = time.Now()
	tour.UpdatedAt = tour.CreatedAt

	if err := r.db.DB.WithContext(ctx).Create(tour).Error; err != nil {
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "duplicate key") && strings.Contains(errStr, "name") {
			return appErrors.ErrNameTaken
		}
		return fmt.Errorf("failed to create tour: %w", err)
	}

	return nil
}

func (r *TourRepository) GetByID(ctx context.Context, tourID uuid.UUID) (*model.Tour, error) {
	var tour model.Tour
	err := r.db.DB.WithContext(ctx).First(&tour, "id = ?", tourID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrTourNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tour: %w", err)
	}
	return &tour, nil
}

func (r *TourRepository) List(ctx context.Context, opts model.ListOptions) ([]model.Tour, error) {
	query := r.db.DB.WithContext(ctx).Model(&model.Tour{})

	if opts.Difficulty != "" {
		query = query.Where("difficulty = ?", opts.Difficulty)
	}
	if opts.MinPrice != nil {
		query = query.Where("price >= ?", *opts.MinPrice)
	}
	if opts.MaxPrice != nil {
		query = query.Where("price <= ?", *opts.MaxPrice)
	}
	if opts.MinDuration != nil {
		query = query.Where("duration >= ?", *opts.MinDuration)
	}
	if opts.MaxDuration != nil {
		query = query.Where("duration <= ?", *opts.MaxDuration)
	}

	for _, key := range opts.Sort {
		direction := "ASC"
		if key.Desc {
			direction = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", key.Column, direction))
	}
	if len(opts.Sort) == 0 {
		query = query.Order("created_at DESC")
	}

	var tours []model.Tour
	err := query.Offset(opts.Offset()).Limit(opts.Limit).Find(&tours).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}
	return tours, nil
}

func (r *TourRepository) Update(ctx context.Context, tour *model.Tour) error {
	tour.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&model.Tour{}).
		Where("id = ?", tour.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(tour)

	if result.Error != nil {
		errStr := strings.ToLower(result.Error.Error())
		if strings.Contains(errStr, "duplicate key") && strings.Contains(errStr, "name") {
			return appErrors.ErrNameTaken
		}
		return fmt.Errorf("failed to update tour: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrTourNotFound
	}
	return nil
}

func (r *TourRepository) Delete(ctx context.Context, tourID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&model.Tour{}, "id = ?", tourID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete tour: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrTourNotFound
	}
	return nil
}

// Stats aggregates the catalogue grouped by difficulty.
func (r *TourRepository) Stats(ctx context.Context) ([]model.DifficultyStats, error) {
	var stats []model.DifficultyStats
	err := r.db.DB.WithContext(ctx).Model(&model.Tour{}).
		Select("difficulty",
			"COUNT(*) AS num_tours",
			"AVG(ratings_average) AS avg_rating",
			"AVG(price) AS avg_price",
			"MIN(price) AS min_price",
			"MAX(price) AS max_price").
		Group("difficulty").
		Order("avg_price ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tour stats: %w", err)
	}
	return stats, nil
}
