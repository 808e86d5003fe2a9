package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/novarides/nova-backend/internal/models"
	"gorm.io/gorm"
)

// GetVehicles lists vehicles, optionally filtered by owner and status
func GetVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.DefaultQuery("status", string(models.VehicleStatusActive))

		query := db.Where("status = ?", status)
		if hostId := c.Query("hostId"); hostId != "" {
			query = query.Where("host_id = ?", hostId)
		}

		var vehicles []models.Vehicle
		if err := query.Find(&vehicles).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to fetch vehicles"})
			return
		}

		viewerID := c.GetUint("userId")
		viewerRole := c.GetString("userRole")
		for i := range vehicles {
			if !canViewSensitiveFields(db, &vehicles[i], viewerID, viewerRole) {
				vehicles[i] = vehicles[i].Redacted()
			}
		}

		c.JSON(200, gin.H{"success": true, "data": vehicles})
	}
}

// VehicleInput carries the listing fields a host may set. Ownership and
// status are never taken from the payload.
type VehicleInput struct {
	Title                string   `json:"title" binding:"required"`
	Description          string   `json:"description"`
	Year                 int      `json:"year"`
	Make                 string   `json:"make"`
	Model                string   `json:"model"`
	Mileage              int      `json:"mileage"`
	VehicleClass         string   `json:"vehicleClass"`
	PricePerDay          float64  `json:"pricePerDay" binding:"required,gt=0"`
	PricePerWeek         float64  `json:"pricePerWeek"`
	Currency             string   `json:"currency"`
	Images               []string `json:"images"`
	City                 string   `json:"city" binding:"required"`
	State                string   `json:"state"`
	Address              string   `json:"address"`
	Lat                  float64  `json:"lat"`
	Lng                  float64  `json:"lng"`
	Availability         []string `json:"availability"`
	MinRentalDays        int      `json:"minRentalDays"`
	BookingType          string   `json:"bookingType" binding:"omitempty,oneof=instant approval"`
	LicensePlate         string   `json:"licensePlate"`
	VIN                  string   `json:"vin"`
	Color                string   `json:"color"`
	RoadworthinessDocURL string   `json:"roadworthinessDocUrl"`
}

// CreateVehicle creates a new listing owned by the calling host
func CreateVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input VehicleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		vehicle := models.Vehicle{
			HostID:               userId,
			Title:                input.Title,
			Description:          input.Description,
			Year:                 input.Year,
			Make:                 input.Make,
			VehicleModel:         input.Model,
			Mileage:              input.Mileage,
			VehicleClass:         input.VehicleClass,
			PricePerDay:          input.PricePerDay,
			PricePerWeek:         input.PricePerWeek,
			Currency:             input.Currency,
			Images:               input.Images,
			City:                 input.City,
			State:                input.State,
			Address:              input.Address,
			Lat:                  input.Lat,
			Lng:                  input.Lng,
			Availability:         input.Availability,
			MinRentalDays:        input.MinRentalDays,
			BookingType:          models.BookingType(input.BookingType),
			Status:               models.VehicleStatusActive,
			LicensePlate:         input.LicensePlate,
			VIN:                  input.VIN,
			Color:                input.Color,
			RoadworthinessDocURL: input.RoadworthinessDocURL,
		}
		if vehicle.VehicleClass == "" {
			vehicle.VehicleClass = "midsize"
		}
		if vehicle.Currency == "" {
			vehicle.Currency = "NGN"
		}
		if vehicle.MinRentalDays < 1 {
			vehicle.MinRentalDays = 1
		}
		if vehicle.BookingType == "" {
			vehicle.BookingType = models.BookingTypeApproval
		}

		if err := db.Create(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to create vehicle"})
			return
		}

		c.JSON(201, gin.H{"success": true, "data": vehicle})
	}
}

// GetVehicle retrieves one listing with viewer-aware field redaction
func GetVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicleId := c.Param("id")

		var vehicle models.Vehicle
		if err := db.First(&vehicle, vehicleId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Vehicle not found"})
			return
		}

		viewerID := c.GetUint("userId")
		viewerRole := c.GetString("userRole")
		if !canViewSensitiveFields(db, &vehicle, viewerID, viewerRole) {
			vehicle = vehicle.Redacted()
		}

		c.JSON(200, gin.H{"success": true, "data": vehicle})
	}
}

// UpdateVehicle updates a listing; only the owning host or an admin
func UpdateVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicleId := c.Param("id")
		userId := c.GetUint("userId")
		userRole := c.GetString("userRole")

		var vehicle models.Vehicle
		if err := db.First(&vehicle, vehicleId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Vehicle not found"})
			return
		}

		if vehicle.HostID != userId && userRole != string(models.RoleAdmin) {
			c.JSON(403, gin.H{"success": false, "error": "Forbidden"})
			return
		}

		var input struct {
			Title                *string   `json:"title"`
			Description          *string   `json:"description"`
			PricePerDay          *float64  `json:"pricePerDay"`
			PricePerWeek         *float64  `json:"pricePerWeek"`
			Images               *[]string `json:"images"`
			Availability         *[]string `json:"availability"`
			MinRentalDays        *int      `json:"minRentalDays"`
			BookingType          *string   `json:"bookingType" binding:"omitempty,oneof=instant approval"`
			Status               *string   `json:"status" binding:"omitempty,oneof=active inactive pending_approval"`
			Featured             *bool     `json:"featured"`
			Promoted             *bool     `json:"promoted"`
			LicensePlate         *string   `json:"licensePlate"`
			VIN                  *string   `json:"vin"`
			Color                *string   `json:"color"`
			RoadworthinessDocURL *string   `json:"roadworthinessDocUrl"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "error": err.Error()})
			return
		}

		if input.Title != nil {
			vehicle.Title = *input.Title
		}
		if input.Description != nil {
			vehicle.Description = *input.Description
		}
		if input.PricePerDay != nil {
			vehicle.PricePerDay = *input.PricePerDay
		}
		if input.PricePerWeek != nil {
			vehicle.PricePerWeek = *input.PricePerWeek
		}
		if input.Images != nil {
			vehicle.Images = *input.Images
		}
		if input.Availability != nil {
			vehicle.Availability = *input.Availability
		}
		if input.MinRentalDays != nil && *input.MinRentalDays >= 1 {
			vehicle.MinRentalDays = *input.MinRentalDays
		}
		if input.BookingType != nil {
			vehicle.BookingType = models.BookingType(*input.BookingType)
		}
		if input.Status != nil {
			vehicle.Status = models.VehicleStatus(*input.Status)
		}
		// Only platform staff curate the featured/promoted shelves
		if userRole == string(models.RoleAdmin) {
			if input.Featured != nil {
				vehicle.Featured = *input.Featured
			}
			if input.Promoted != nil {
				vehicle.Promoted = *input.Promoted
			}
		}
		if input.LicensePlate != nil {
			vehicle.LicensePlate = *input.LicensePlate
		}
		if input.VIN != nil {
			vehicle.VIN = *input.VIN
		}
		if input.Color != nil {
			vehicle.Color = *input.Color
		}
		if input.RoadworthinessDocURL != nil {
			vehicle.RoadworthinessDocURL = *input.RoadworthinessDocURL
		}

		if err := db.Save(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to update vehicle"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": vehicle})
	}
}

// DeleteVehicle removes a listing unless any booking still references it
func DeleteVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicleId := c.Param("id")
		userId := c.GetUint("userId")
		userRole := c.GetString("userRole")

		var vehicle models.Vehicle
		if err := db.First(&vehicle, vehicleId).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "error": "Vehicle not found"})
			return
		}

		if vehicle.HostID != userId && userRole != string(models.RoleAdmin) {
			c.JSON(403, gin.H{"success": false, "error": "Forbidden"})
			return
		}

		var bookingCount int64
		if err := db.Model(&models.Booking{}).Where("vehicle_id = ?", vehicle.ID).Count(&bookingCount).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to check bookings"})
			return
		}
		if bookingCount > 0 {
			c.JSON(400, gin.H{"success": false, "error": "Vehicle has existing bookings and cannot be deleted"})
			return
		}

		if err := db.Delete(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "error": "Failed to delete vehicle"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": nil})
	}
}

// canViewSensitiveFields reports whether the viewer may see the plate, VIN
// and roadworthiness document: the owner, an admin, or a renter holding a
// confirmed, in-progress or completed booking for this vehicle.
func canViewSensitiveFields(db *gorm.DB, vehicle *models.Vehicle, viewerID uint, viewerRole string) bool {
	if viewerID == 0 {
		return false
	}
	if vehicle.HostID == viewerID || viewerRole == string(models.RoleAdmin) {
		return true
	}

	var count int64
	db.Model(&models.Booking{}).
		Where("vehicle_id = ? AND renter_id = ? AND status IN ?", vehicle.ID, viewerID,
			[]models.BookingStatus{models.BookingStatusConfirmed, models.BookingStatusInProgress, models.BookingStatusCompleted}).
		Count(&count)
	return count > 0
}
