package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusRejected   BookingStatus = "rejected"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Booking struct {
	gorm.Model
	VehicleID uint     `json:"vehicleId" gorm:"not null;index"`
	Vehicle   *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	RenterID  uint     `json:"renterId" gorm:"not null;index"`
	Renter    *User    `json:"renter,omitempty" gorm:"foreignKey:RenterID"`
	// Denormalized copy of vehicle.HostID taken at creation time.
	HostID uint  `json:"hostId" gorm:"not null;index"`
	Host   *User `json:"host,omitempty" gorm:"foreignKey:HostID"`

	StartDate time.Time `json:"startDate" gorm:"not null"`
	EndDate   time.Time `json:"endDate" gorm:"not null"`

	TotalPrice      float64 `json:"totalPrice" gorm:"not null"`
	SecurityDeposit float64 `json:"securityDeposit" gorm:"not null"`

	// Status and PaymentStatus move independently; confirming a booking does
	// not imply payment and marking paid does not require confirmation.
	Status        BookingStatus `json:"status" gorm:"not null;default:'pending'"`
	PaymentStatus PaymentStatus `json:"paymentStatus" gorm:"not null;default:'pending'"`
	BookingType   BookingType   `json:"bookingType" gorm:"not null"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}

// Terminal reports whether no further status transitions are allowed.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusRejected, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from one status to another.
// Any non-terminal status may be cancelled.
func CanTransition(from, to BookingStatus) bool {
	if from.Terminal() {
		return false
	}
	if to == BookingStatusCancelled {
		return true
	}
	switch from {
	case BookingStatusPending:
		return to == BookingStatusConfirmed || to == BookingStatusRejected
	case BookingStatusConfirmed:
		return to == BookingStatusInProgress
	case BookingStatusInProgress:
		return to == BookingStatusCompleted
	}
	return false
}

// HostOnlyTransition reports whether the target status may only be requested
// by the booking's host. Confirm/reject answer a rental request; start and
// complete happen at key handover and return.
func HostOnlyTransition(to BookingStatus) bool {
	switch to {
	case BookingStatusConfirmed, BookingStatusRejected, BookingStatusInProgress, BookingStatusCompleted:
		return true
	}
	return false
}
