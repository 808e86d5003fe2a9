package handlers

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/novarides/nova-backend/internal/models"
	"gorm.io/gorm"
)

// SearchCriteria are the catalog query filters
type SearchCriteria struct {
	City      string
	StartDate *time.Time
	EndDate   *time.Time
	MinPrice  *float64
	MaxPrice  *float64
	Class     string
}

// SearchVehicles implements the filtered and sorted catalog query
func SearchVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		criteria := SearchCriteria{
			City:  c.Query("city"),
			Class: c.Query("vehicleType"),
		}
		if v := c.Query("startDate"); v != "" {
			if t, err := time.Parse("2006-01-02", v); err == nil {
				criteria.StartDate = &t
			}
		}
		if v := c.Query("endDate"); v != "" {
			if t, err := time.Parse("2006-01-02", v); err == nil {
				criteria.EndDate = &t
			}
		}
		if v := c.Query("minPrice"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				criteria.MinPrice = &f
			}
		}
		if v := c.Query("maxPrice"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				criteria.MaxPrice = &f
			}
		}

		var vehicles []models.Vehicle
		if err := db.Where("status = ?", models.VehicleStatusActive).Find(&vehicles).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to fetch vehicles"})
			return
		}

		vehicles = FilterVehicles(vehicles, criteria)

		sortKey := c.DefaultQuery("sort", "featured")
		ratings := map[uint]float64{}
		if sortKey == "rating" {
			ratings = vehicleRatings(db, vehicles)
		}
		SortVehicles(vehicles, sortKey, ratings)

		// Public endpoint: always redact registration fields
		for i := range vehicles {
			vehicles[i] = vehicles[i].Redacted()
		}

		c.JSON(200, gin.H{"success": true, "data": vehicles})
	}
}

// FilterVehicles applies the search criteria to an active-catalog slice.
// Date filtering is an overlap proxy: the vehicle must offer at least one
// availability date inside the requested interval.
func FilterVehicles(vehicles []models.Vehicle, criteria SearchCriteria) []models.Vehicle {
	out := vehicles[:0]
	city := strings.ToLower(criteria.City)

	for _, v := range vehicles {
		if city != "" && !strings.Contains(strings.ToLower(v.City), city) {
			continue
		}
		if criteria.MinPrice != nil && v.PricePerDay < *criteria.MinPrice {
			continue
		}
		if criteria.MaxPrice != nil && v.PricePerDay > *criteria.MaxPrice {
			continue
		}
		if criteria.Class != "" && v.VehicleClass != criteria.Class {
			continue
		}
		if criteria.StartDate != nil && criteria.EndDate != nil &&
			!hasAvailableDateWithin(v.Availability, *criteria.StartDate, *criteria.EndDate) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func hasAvailableDateWithin(availability []string, start, end time.Time) bool {
	for _, d := range availability {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		if !t.Before(start) && !t.After(end) {
			return true
		}
	}
	return false
}

// SortVehicles orders the result set in place. Unknown keys fall back to
// featured-first.
func SortVehicles(vehicles []models.Vehicle, key string, ratings map[uint]float64) {
	switch key {
	case "price_asc":
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].PricePerDay < vehicles[j].PricePerDay
		})
	case "price_desc":
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].PricePerDay > vehicles[j].PricePerDay
		})
	case "rating":
		sort.SliceStable(vehicles, func(i, j int) bool {
			return ratings[vehicles[i].ID] > ratings[vehicles[j].ID]
		})
	default:
		sort.SliceStable(vehicles, func(i, j int) bool {
			return vehicles[i].Featured && !vehicles[j].Featured
		})
	}
}

// vehicleRatings computes the mean review rating per vehicle, joined through
// that vehicle's bookings.
func vehicleRatings(db *gorm.DB, vehicles []models.Vehicle) map[uint]float64 {
	ratings := make(map[uint]float64, len(vehicles))
	for _, v := range vehicles {
		var reviews []models.Review
		if err := db.
			Joins("JOIN bookings ON bookings.id = reviews.booking_id").
			Where("bookings.vehicle_id = ?", v.ID).
			Find(&reviews).Error; err != nil {
			continue
		}
		ratings[v.ID] = models.AggregateRating(reviews)
	}
	return ratings
}
