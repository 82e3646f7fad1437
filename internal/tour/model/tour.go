package model

import (
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

type Tour struct {
	ID              uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	Name            string      `json:"name" gorm:"type:varchar(40);not null;uniqueIndex"`
	Slug            string      `json:"slug" gorm:"type:varchar(60);index"`
	Duration        int         `json:"duration" gorm:"not null"`
	MaxGroupSize    int         `json:"maxGroupSize" gorm:"not null"`
	Difficulty      Difficulty  `json:"difficulty" gorm:"type:varchar(20);not null"`
	RatingsAverage  float64     `json:"ratingsAverage" gorm:"not null;default:4.5"`
	RatingsQuantity int         `json:"ratingsQuantity" gorm:"not null;default:0"`
	Price           float64     `json:"price" gorm:"not null"`
	PriceDiscount   *float64    `json:"priceDiscount,omitempty"`
	Summary         string      `json:"summary" gorm:"type:text;not null"`
	Description     *string     `json:"description,omitempty" gorm:"type:text"`
	ImageCover      string      `json:"imageCover" gorm:"type:varchar(255)"`
	Images          []string    `json:"images" gorm:"serializer:json;type:jsonb"`
	StartDates      []time.Time `json:"startDates" gorm:"serializer:json;type:jsonb"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"-"`
}

func (Tour) TableName() string {
	return "tours"
}

// DifficultyStats is one row of the per-difficulty aggregate view.
type DifficultyStats struct {
	Difficulty Difficulty `json:"difficulty"`
	NumTours   int64      `json:"numTours"`
	AvgRating  float64    `json:"avgRating"`
	AvgPrice   float64    `json:"avgPrice"`
	MinPrice   float64    `json:"minPrice"`
	MaxPrice   float64    `json:"maxPrice"`
}
