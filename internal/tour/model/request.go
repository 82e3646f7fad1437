package model

import "time"

type CreateTourRequest struct {
	Name          string      `json:"name" validate:"required,min=10,max=40"`
	Duration      int         `json:"duration" validate:"required,gt=0"`
	MaxGroupSize  int         `json:"maxGroupSize" validate:"required,gt=0"`
	Difficulty    string      `json:"difficulty" validate:"required,tour_difficulty"`
	Price         float64     `json:"price" validate:"required,gt=0"`
	PriceDiscount *float64    `json:"priceDiscount" validate:"omitempty,gt=0"`
	Summary       string      `json:"summary" validate:"required"`
	Description   *string     `json:"description"`
	ImageCover    string      `json:"imageCover"`
	Images        []string    `json:"images"`
	StartDates    []time.Time `json:"startDates"`
}

type UpdateTourRequest struct {
	Name          *string      `json:"name" validate:"omitempty,min=10,max=40"`
	Duration      *int         `json:"duration" validate:"omitempty,gt=0"`
	MaxGroupSize  *int         `json:"maxGroupSize" validate:"omitempty,gt=0"`
	Difficulty    *string      `json:"difficulty" validate:"omitempty,tour_difficulty"`
	Price         *float64     `json:"price" validate:"omitempty,gt=0"`
	PriceDiscount *float64     `json:"priceDiscount" validate:"omitempty,gt=0"`
	Summary       *string      `json:"summary"`
	Description   *string      `json:"description"`
	ImageCover    *string      `json:"imageCover"`
	Images        *[]string    `json:"images"`
	StartDates    *[]time.Time `json:"startDates"`
}
