package handlers

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/novarides/nova-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func adminRouter(db *gorm.DB, adminID uint) *gin.Engine {
	r := gin.New()
	r.Use(withIdentity(adminID, "admin"))
	r.GET("/admin/users", ListUsers(db))
	r.PATCH("/admin/users/:id/verify-license", VerifyLicense(db))
	r.PATCH("/admin/users/:id/ban", BanUser(db))
	r.PATCH("/admin/users/:id/unban", UnbanUser(db))
	r.PATCH("/admin/vehicles/:id/approve", ApproveVehicle(db))
	return r
}

func TestBanUser(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", "admin", false)
	target := seedUser(t, db, "target@example.com", "renter", false)

	router := adminRouter(db, admin.ID)

	w := jsonRequest(t, router, "PATCH", "/admin/users/"+itoa(target.ID)+"/ban", gin.H{"reason": "Chargeback abuse"})
	require.Equal(t, 200, w.Code)

	var banned models.User
	require.NoError(t, db.First(&banned, target.ID).Error)
	assert.True(t, banned.Banned)
	assert.Equal(t, "Chargeback abuse", banned.BannedReason)
	assert.Equal(t, admin.ID, banned.BannedBy)
	assert.NotNil(t, banned.BannedAt)

	w = jsonRequest(t, router, "PATCH", "/admin/users/"+itoa(target.ID)+"/unban", nil)
	require.Equal(t, 200, w.Code)

	// Reset the struct: gorm leaves stale values in fields whose column is NULL.
	banned = models.User{}
	require.NoError(t, db.First(&banned, target.ID).Error)
	assert.False(t, banned.Banned)
	assert.Nil(t, banned.BannedAt)
	assert.Empty(t, banned.BannedReason)
}

func TestBanUser_DefaultReason(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", "admin", false)
	target := seedUser(t, db, "target@example.com", "host", false)

	w := jsonRequest(t, adminRouter(db, admin.ID), "PATCH", "/admin/users/"+itoa(target.ID)+"/ban", nil)
	require.Equal(t, 200, w.Code)

	var banned models.User
	require.NoError(t, db.First(&banned, target.ID).Error)
	assert.Equal(t, "Rule violation", banned.BannedReason)
}

func TestBanUser_CannotBanAdmin(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", "admin", false)
	other := seedUser(t, db, "other-admin@example.com", "admin", false)

	w := jsonRequest(t, adminRouter(db, admin.ID), "PATCH", "/admin/users/"+itoa(other.ID)+"/ban", nil)
	require.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot ban an admin")
}

func TestVerifyLicense(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", "admin", false)

	router := adminRouter(db, admin.ID)

	t.Run("no documents on file", func(t *testing.T) {
		bare := seedUser(t, db, "bare@example.com", "renter", false)
		w := jsonRequest(t, router, "PATCH", "/admin/users/"+itoa(bare.ID)+"/verify-license", nil)
		assert.Equal(t, 400, w.Code)
	})

	t.Run("approves uploaded documents", func(t *testing.T) {
		applicant := seedUser(t, db, "applicant@example.com", "renter", true)
		applicant.LicenseVerified = false
		require.NoError(t, db.Save(&applicant).Error)

		w := jsonRequest(t, router, "PATCH", "/admin/users/"+itoa(applicant.ID)+"/verify-license", nil)
		require.Equal(t, 200, w.Code)

		var verified models.User
		require.NoError(t, db.First(&verified, applicant.ID).Error)
		assert.True(t, verified.LicenseVerified)
	})
}

func TestApproveVehicle(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", "admin", false)
	host := seedUser(t, db, "host@example.com", "host", false)

	vehicle := seedVehicle(t, db, host.ID, models.BookingTypeApproval, 1)
	vehicle.Status = models.VehicleStatusPendingApproval
	require.NoError(t, db.Save(&vehicle).Error)

	w := jsonRequest(t, adminRouter(db, admin.ID), "PATCH", "/admin/vehicles/"+itoa(vehicle.ID)+"/approve", nil)
	require.Equal(t, 200, w.Code)

	var approved models.Vehicle
	require.NoError(t, db.First(&approved, vehicle.ID).Error)
	assert.Equal(t, models.VehicleStatusActive, approved.Status)
}

func TestCheckLicenseExpiry(t *testing.T) {
	db := newTestDB(t)

	// Expiring in 10 days, never reminded
	expiring := seedUser(t, db, "expiring@example.com", "renter", true)
	soon := time.Now().AddDate(0, 0, 10)
	expiring.LicenseExpiryDate = &soon
	require.NoError(t, db.Save(&expiring).Error)

	// Expiring in a year, out of the window
	seedUser(t, db, "fine@example.com", "renter", true)

	// Already reminded inside this window
	reminded := seedUser(t, db, "reminded@example.com", "renter", true)
	soon2 := time.Now().AddDate(0, 0, 5)
	sent := time.Now().AddDate(0, 0, -2)
	reminded.LicenseExpiryDate = &soon2
	reminded.LicenseExpiryReminderSentAt = &sent
	require.NoError(t, db.Save(&reminded).Error)

	r := gin.New()
	r.GET("/cron/check-license-expiry", CheckLicenseExpiry(db))

	w := jsonRequest(t, r, "GET", "/cron/check-license-expiry", nil)
	require.Equal(t, 200, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(2), data["checked"])
	// SMTP is unconfigured in tests, so no reminder actually lands
	assert.Equal(t, float64(0), data["reminded"])
}
