package middleware

import (
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/novarides/nova-backend/internal/database"
	"github.com/novarides/nova-backend/internal/models"
	"github.com/novarides/nova-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func newAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func protectedRoute(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(db))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "data": gin.H{"userId": c.GetUint("userId")}})
	})
	return r
}

func getWithToken(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	db := newAuthTestDB(t)
	user := models.User{Email: "renter@example.com", FirstName: "Ada", LastName: "Obi", Role: "renter"}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(&user)
	require.NoError(t, err)

	w := getWithToken(protectedRoute(db), token)
	assert.Equal(t, 200, w.Code)
}

func TestAuthMiddleware_MissingOrInvalidToken(t *testing.T) {
	db := newAuthTestDB(t)
	r := protectedRoute(db)

	w := getWithToken(r, "")
	assert.Equal(t, 401, w.Code)

	w = getWithToken(r, "not-a-jwt")
	assert.Equal(t, 401, w.Code)
}

// A token issued before a ban must stop working the moment the ban lands,
// not when the token expires.
func TestAuthMiddleware_BannedUserTokenRefused(t *testing.T) {
	db := newAuthTestDB(t)
	user := models.User{Email: "renter@example.com", FirstName: "Ada", LastName: "Obi", Role: "renter"}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(&user)
	require.NoError(t, err)

	r := protectedRoute(db)

	// Token works before the ban
	w := getWithToken(r, token)
	require.Equal(t, 200, w.Code)

	require.NoError(t, db.Model(&user).Updates(map[string]any{
		"banned":        true,
		"banned_reason": "Chargeback abuse",
	}).Error)

	w = getWithToken(r, token)
	require.Equal(t, 403, w.Code)
	assert.Contains(t, w.Body.String(), "Account banned: Chargeback abuse")
}

func TestAuthMiddleware_DeletedAccountRefused(t *testing.T) {
	db := newAuthTestDB(t)
	user := models.User{Email: "gone@example.com", FirstName: "Ada", LastName: "Obi", Role: "renter"}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(&user)
	require.NoError(t, err)

	require.NoError(t, db.Unscoped().Delete(&user).Error)

	w := getWithToken(protectedRoute(db), token)
	assert.Equal(t, 401, w.Code)
}
