package dto

import (
	"github.com/shopspring/decimal"

	"roomrent/models"
)

type CreateRoomRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Address     string           `json:"address" binding:"required"`
	City        string           `json:"city" binding:"required"`
	State       string           `json:"state" binding:"required"`
	ZipCode     string           `json:"zipCode" binding:"required"`
	MonthlyRent *decimal.Decimal `json:"monthlyRent" binding:"required"`
	Bedrooms    *int             `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms   *float64         `json:"bathrooms" binding:"omitempty,min=0"`
	Area        *float64         `json:"area" binding:"omitempty,min=0"`
	Amenities   string           `json:"amenities"`
	Images      []string         `json:"images"`
}

// UpdateRoomRequest carries only the fields to change; availability is not editable
type UpdateRoomRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Address     *string          `json:"address"`
	City        *string          `json:"city"`
	State       *string          `json:"state"`
	ZipCode     *string          `json:"zipCode"`
	MonthlyRent *decimal.Decimal `json:"monthlyRent"`
	Bedrooms    *int             `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms   *float64         `json:"bathrooms" binding:"omitempty,min=0"`
	Area        *float64         `json:"area" binding:"omitempty,min=0"`
	Amenities   *string          `json:"amenities"`
	Images      []string         `json:"images"`
}

// RoomSearchQuery is the public listing filter, read from the query string
type RoomSearchQuery struct {
	City     string `form:"city"`
	MinPrice string `form:"minPrice"`
	MaxPrice string `form:"maxPrice"`
	Bedrooms *int   `form:"bedrooms" binding:"omitempty,min=0"`
}

type RoomSearchResponse struct {
	Rooms []models.Room `json:"rooms"`
	// Suggestion is a listed city close to the requested one, set when nothing matched
	Suggestion string `json:"suggestion,omitempty"`
}
