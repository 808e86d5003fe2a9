package models

import (
	"math"

	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	BookingID  uint    `json:"bookingId" gorm:"not null;index"`
	ReviewerID uint    `json:"reviewerId" gorm:"not null;index"`
	RevieweeID uint    `json:"revieweeId" gorm:"not null;index"`
	Rating     float64 `json:"rating" gorm:"not null"`
	Comment    string  `json:"comment"`
}

// TableName specifies the table name
func (Review) TableName() string {
	return "reviews"
}

// ClampRating forces a rating into the [1,5] range.
func ClampRating(r float64) float64 {
	return math.Min(5, math.Max(1, r))
}

// AggregateRating returns the arithmetic mean of the given reviews rounded to
// one decimal, or 0 when there are none. Always recomputed on read, never
// stored.
func AggregateRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(sum/float64(len(reviews))*10) / 10
}
