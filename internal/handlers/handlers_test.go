package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/novarides/nova-backend/internal/database"
	"github.com/novarides/nova-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// withIdentity stands in for the auth middleware in handler tests.
func withIdentity(id uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", id)
		c.Set("userRole", role)
		c.Next()
	}
}

func jsonRequest(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func seedUser(t *testing.T, db *gorm.DB, email, role string, licensed bool) models.User {
	t.Helper()
	user := models.User{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	require.NoError(t, user.HashPassword())
	if licensed {
		expiry := time.Now().AddDate(1, 0, 0)
		user.LicenseVerified = true
		user.LicenseExpiryDate = &expiry
		user.LicenseDocFront = "http://localhost/uploads/documents/licenses/front.jpg"
		user.LicenseDocBack = "http://localhost/uploads/documents/licenses/back.jpg"
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedVehicle(t *testing.T, db *gorm.DB, hostID uint, bookingType models.BookingType, minDays int) models.Vehicle {
	t.Helper()
	vehicle := models.Vehicle{
		HostID:        hostID,
		Title:         "Toyota Corolla 2021",
		VehicleClass:  "midsize",
		PricePerDay:   15000,
		Currency:      "NGN",
		City:          "Lagos",
		MinRentalDays: minDays,
		BookingType:   bookingType,
		Status:        models.VehicleStatusActive,
		LicensePlate:  "LAG-123-XY",
		VIN:           "1HGBH41JXMN109186",
	}
	require.NoError(t, db.Create(&vehicle).Error)
	return vehicle
}

func seedBooking(t *testing.T, db *gorm.DB, vehicle models.Vehicle, renterID uint, status models.BookingStatus) models.Booking {
	t.Helper()
	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	booking := models.Booking{
		VehicleID:       vehicle.ID,
		RenterID:        renterID,
		HostID:          vehicle.HostID,
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, 4),
		TotalPrice:      60000,
		SecurityDeposit: 7500,
		Status:          status,
		PaymentStatus:   models.PaymentStatusPending,
		BookingType:     vehicle.BookingType,
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}

func bookingPath(id uint) string {
	return fmt.Sprintf("/bookings/%d/status", id)
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}
