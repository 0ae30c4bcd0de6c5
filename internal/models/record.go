package models

import (
	"strings"
	"time"
)

// Location is the place a record was logged at. Latitude/longitude default
// to 0 when unknown, which is indistinguishable from the actual point (0,0);
// callers must use HasPlace instead of checking coordinates.
type Location struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PlaceID   string  `json:"place_id,omitempty"`
	PlaceName string  `json:"place_name,omitempty"`
}

// HasPlace reports whether the location carries an actual place, judged by
// address/place id presence rather than the (0,0) coordinate sentinel.
func (l Location) HasPlace() bool {
	return l.PlaceID != "" || strings.TrimSpace(l.Address) != ""
}

// FoodRecord is one logged restaurant visit.
type FoodRecord struct {
	ID             int64     `json:"id,omitempty"` // 0 before first persist
	Date           string    `json:"date"`         // YYYY-MM-DD, user-asserted visit date
	Time           string    `json:"time"`         // HH:MM
	RestaurantName string    `json:"restaurant_name"`
	FoodName       string    `json:"food_name"`
	Location       Location  `json:"location"`
	Category       string    `json:"category,omitempty"`
	Rating         float64   `json:"rating"` // 0-5, one decimal step in capture UI
	Review         string    `json:"review,omitempty"`
	Photo          string    `json:"photo,omitempty"` // base64 data URI, never a raw file handle
	Price          *int64    `json:"price,omitempty"` // whole currency units
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RecordPatch carries a partial update. Nil fields are left untouched.
// ID, CreatedAt and UpdatedAt are never patchable; the store stamps them.
type RecordPatch struct {
	Date           *string   `json:"date,omitempty"`
	Time           *string   `json:"time,omitempty"`
	RestaurantName *string   `json:"restaurant_name,omitempty"`
	FoodName       *string   `json:"food_name,omitempty"`
	Location       *Location `json:"location,omitempty"`
	Category       *string   `json:"category,omitempty"`
	Rating         *float64  `json:"rating,omitempty"`
	Review         *string   `json:"review,omitempty"`
	Photo          *string   `json:"photo,omitempty"`
	Price          *int64    `json:"price,omitempty"`
}

// Apply merges the patch into a copy of rec and returns it. Timestamps are
// not touched here; the store restamps UpdatedAt on every write.
func (p RecordPatch) Apply(rec FoodRecord) FoodRecord {
	if p.Date != nil {
		rec.Date = *p.Date
	}
	if p.Time != nil {
		rec.Time = *p.Time
	}
	if p.RestaurantName != nil {
		rec.RestaurantName = *p.RestaurantName
	}
	if p.FoodName != nil {
		rec.FoodName = *p.FoodName
	}
	if p.Location != nil {
		rec.Location = *p.Location
	}
	if p.Category != nil {
		rec.Category = *p.Category
	}
	if p.Rating != nil {
		rec.Rating = *p.Rating
	}
	if p.Review != nil {
		rec.Review = *p.Review
	}
	if p.Photo != nil {
		rec.Photo = *p.Photo
	}
	if p.Price != nil {
		rec.Price = p.Price
	}
	return rec
}
