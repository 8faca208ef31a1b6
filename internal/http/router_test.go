package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intconfig "tourdesk/internal/config"
	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	h "tourdesk/internal/http/handlers"
	"tourdesk/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

type stubAdmins struct{ rows []models.Admin }

func (s *stubAdmins) GetByUsername(ctx context.Context, username string) (models.Admin, error) {
	for _, a := range s.rows {
		if a.Username == username {
			return a, nil
		}
	}
	return models.Admin{}, sql.ErrNoRows
}

func (s *stubAdmins) Count(ctx context.Context) (int, error) { return len(s.rows), nil }

func (s *stubAdmins) Create(ctx context.Context, a models.Admin) (int64, error) {
	a.ID = int64(len(s.rows) + 1)
	s.rows = append(s.rows, a)
	return a.ID, nil
}

// stubBookings only answers List; other calls are not expected here.
type stubBookings struct {
	services.BookingStore
	rows []models.Booking
}

func (s stubBookings) List(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	return s.rows, nil
}

type stubDrivers struct {
	services.DriverStore
	rows []models.Driver
}

func (s stubDrivers) List(ctx context.Context) ([]models.Driver, error) { return s.rows, nil }

type stubSettings struct{ s models.Settings }

func (s *stubSettings) Get(ctx context.Context) (models.Settings, bool, error) { return s.s, true, nil }
func (s *stubSettings) Save(ctx context.Context, v models.Settings) error {
	s.s = v
	return nil
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	now := func() time.Time { return testNow }

	admins := &stubAdmins{rows: []models.Admin{
		{ID: 1, Username: "owner", PasswordHash: hashed(t, "pw-owner"), Role: domain.RoleOwner},
		{ID: 2, Username: "staff", PasswordHash: hashed(t, "pw-staff"), Role: domain.RoleStaff},
	}}
	bookings := stubBookings{rows: []models.Booking{
		{ID: 1, Status: models.BookingConfirmed, Price: 100, DriverID: 1, DriverName: "Wayan", TourTitle: "Bromo", CreatedAt: testNow.Add(-time.Hour)},
		{ID: 2, Status: models.BookingPending, Price: 50, CreatedAt: testNow.Add(-time.Hour)},
	}}
	drivers := stubDrivers{rows: []models.Driver{{ID: 1, Status: models.DriverActive}}}
	settings := &stubSettings{s: models.Settings{CommissionRate: 0.13, Currency: "IDR"}}

	analytics := services.AnalyticsService{Bookings: bookings, Drivers: drivers, Settings: settings, Now: now}
	hs := &h.Handlers{
		Bookings:  services.BookingService{Bookings: bookings, Settings: settings, Now: now},
		Settings:  services.SettingsService{Repo: settings},
		Analytics: analytics,
		Docs:      services.DocsService{Bookings: bookings, Analytics: analytics, Settings: settings, Now: now},
		Auth:      services.AuthService{Admins: admins, Secret: []byte("router-test"), Now: now},
	}
	return NewRouter(intconfig.Env{}, hs)
}

func call(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler, user, pw string) string {
	t.Helper()
	w := call(r, http.MethodPost, "/api/auth/login", "", `{"username":"`+user+`","password":"`+pw+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestHealthAndNoRoute(t *testing.T) {
	r := newTestRouter(t)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/health", "", "").Code)

	w := call(r, http.MethodGet, "/api/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"request_id"`)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/api/bookings", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/api/analytics/summary", "garbage", "").Code)

	w := call(r, http.MethodPost, "/api/auth/login", "", `{"username":"owner","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginAndMe(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "owner", "pw-owner")

	w := call(r, http.MethodGet, "/api/auth/me", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"owner"`)
	assert.Contains(t, w.Body.String(), `"role":"owner"`)
}

func TestAnalyticsSummaryEndpoint(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r, "staff", "pw-staff")

	w := call(r, http.MethodGet, "/api/analytics/summary?range=today", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sum domain.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.Equal(t, domain.RangeToday, sum.Range)
	assert.Equal(t, int64(100), sum.TotalGross)
	assert.Equal(t, int64(13), sum.TotalCommission)
	assert.Equal(t, int64(87), sum.NetRevenue)
	assert.Equal(t, 1, sum.PendingCount)
	assert.Equal(t, 1, sum.ActiveDrivers)

	w = call(r, http.MethodGet, "/api/analytics/report?range=week", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
}

func TestManagerOnlyRoutes(t *testing.T) {
	r := newTestRouter(t)
	staff := login(t, r, "staff", "pw-staff")
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodDelete, "/api/bookings/1", staff, "").Code)
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodPut, "/api/settings", staff, `{"smsEnabled":true}`).Code)
}

func TestSettingsUpdateValidation(t *testing.T) {
	r := newTestRouter(t)
	owner := login(t, r, "owner", "pw-owner")

	w := call(r, http.MethodPut, "/api/settings", owner, `{"commissionRate":2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"commissionRate"`)

	w = call(r, http.MethodPut, "/api/settings", owner, `{"commissionRate":0.2,"currency":"usd"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var st models.Settings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, 0.2, st.CommissionRate)
	assert.Equal(t, "USD", st.Currency)
}

func TestPublicBookingRejectsBadPayload(t *testing.T) {
	r := newTestRouter(t)
	w := call(r, http.MethodPost, "/api/public/bookings", "", `{"customerName": 12}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, http.MethodPost, "/api/public/bookings", "", `{"customerName":"Ana"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"validation_error"`)
}

func TestPublicBookingUnavailableDuringMaintenance(t *testing.T) {
	r := newTestRouter(t)
	owner := login(t, r, "owner", "pw-owner")

	w := call(r, http.MethodPut, "/api/settings", owner, `{"maintenanceMode":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = call(r, http.MethodPost, "/api/public/bookings", "", `{"customerName":"Ana","customerPhone":"0811"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"maintenance"`)
}
