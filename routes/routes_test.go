package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vph-backend/cache"
	"vph-backend/config"
	"vph-backend/controllers"
	"vph-backend/middleware"
	"vph-backend/models"
	"vph-backend/notify"
	"vph-backend/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "routes-test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	cfg := &config.Config{
		CORSOrigins: []string{"*"},
		JWTSecret:   testSecret,
		TokenTTL:    time.Hour,
	}
	log := zap.NewNop()
	c := cache.New("", "", 0, log)
	n := notify.New("", log)

	bookingSvc := services.NewBookingService(db, c, n, log)
	roomSvc := services.NewRoomService(db, c, log)
	guestSvc := services.NewGuestService(db)
	authSvc := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, log)
	staffSvc := services.NewStaffService(db, log)
	reportSvc := services.NewReportService(db, c, log)

	r := SetupRouter(cfg, db, log,
		controllers.NewAuthController(authSvc),
		controllers.NewRoomController(roomSvc),
		controllers.NewBookingController(bookingSvc),
		controllers.NewGuestController(guestSvc),
		controllers.NewStaffController(staffSvc),
		controllers.NewReportController(reportSvc),
	)
	return r, mock
}

func signedToken(t *testing.T, userID uint) string {
	t.Helper()
	claims := &middleware.Claims{
		UserID:   userID,
		Username: "somchai",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// expectIdentity scripts the per-request user and role lookups.
func expectIdentity(mock sqlmock.Sqlmock, userID uint, roles ...string) {
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_uid", "username", "is_active"}).
			AddRow(userID, "c0ffee", "somchai", true))
	assignments := sqlmock.NewRows([]string{"id", "user_id", "role"})
	for i, role := range roles {
		assignments.AddRow(i+1, userID, role)
	}
	mock.ExpectQuery("SELECT (.+) FROM `role_assignments`").WillReturnRows(assignments)
}

func TestInventorySummaryRequiresLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/inventory/room-summary", nil))

	// 401 with a login redirect, not 404: the route exists and is gated.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "/login")
}

func TestInventorySummaryRejectsOtherDepartments(t *testing.T) {
	r, mock := newTestRouter(t)
	expectIdentity(mock, 4, models.RoleReception)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/inventory/room-summary", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, 4))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "/unauthorized")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventorySummaryServesInventoryRole(t *testing.T) {
	r, mock := newTestRouter(t)
	expectIdentity(mock, 4, models.RoleInventory)
	mock.ExpectQuery("SELECT status, COUNT(.+) FROM `rooms`").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow(models.RoomCleaning, 2).
			AddRow(models.RoomAvailable, 4))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/inventory/room-summary", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, 4))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cleaning":2`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
