package models

import (
	"gorm.io/gorm"
)

type BookingType string

const (
	BookingTypeInstant  BookingType = "instant"
	BookingTypeApproval BookingType = "approval"
)

type VehicleStatus string

const (
	VehicleStatusActive          VehicleStatus = "active"
	VehicleStatusInactive        VehicleStatus = "inactive"
	VehicleStatusPendingApproval VehicleStatus = "pending_approval"
)

type Vehicle struct {
	gorm.Model
	HostID       uint   `json:"hostId" gorm:"not null;index"`
	Host         *User  `json:"host,omitempty" gorm:"foreignKey:HostID"`
	Title        string `json:"title" gorm:"not null"`
	Description  string `json:"description"`
	Year         int    `json:"year"`
	Make         string `json:"make"`
	VehicleModel string `json:"model" gorm:"column:vehicle_model"`
	Mileage      int    `json:"mileage"`
	VehicleClass string `json:"vehicleClass" gorm:"column:vehicle_class;default:'midsize'"`

	PricePerDay  float64 `json:"pricePerDay" gorm:"not null"`
	PricePerWeek float64 `json:"pricePerWeek,omitempty"`
	Currency     string  `json:"currency" gorm:"default:'NGN'"`

	Images []string `json:"images" gorm:"serializer:json"`

	City    string  `json:"city" gorm:"not null"`
	State   string  `json:"state"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`

	// ISO dates the vehicle is offered on
	Availability []string `json:"availability" gorm:"serializer:json"`

	MinRentalDays int           `json:"minRentalDays" gorm:"not null;default:1"`
	BookingType   BookingType   `json:"bookingType" gorm:"not null;default:'approval'"`
	Featured      bool          `json:"featured" gorm:"not null;default:false"`
	Promoted      bool          `json:"promoted" gorm:"not null;default:false"`
	Status        VehicleStatus `json:"status" gorm:"not null;default:'active'"`

	// Visible only to the owner, an admin, or a renter with a
	// confirmed/in_progress/completed booking for this vehicle.
	LicensePlate         string `json:"licensePlate,omitempty"`
	VIN                  string `json:"vin,omitempty" gorm:"column:vin"`
	Color                string `json:"color,omitempty"`
	RoadworthinessDocURL string `json:"roadworthinessDocUrl,omitempty" gorm:"column:roadworthiness_doc_url"`
}

// TableName specifies the table name
func (Vehicle) TableName() string {
	return "vehicles"
}

// Redacted returns a copy with the sensitive registration fields cleared.
func (v Vehicle) Redacted() Vehicle {
	v.LicensePlate = ""
	v.VIN = ""
	v.RoadworthinessDocURL = ""
	return v
}
