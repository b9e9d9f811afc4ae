package routes

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"roomrent/constants"
	"roomrent/models"
	"roomrent/repositories"
	"roomrent/services"
	"roomrent/testutil"
	"roomrent/validator"
)

type envelope struct {
	Code    int                    `json:"code"`
	Mess    string                 `json:"mess"`
	Error   string                 `json:"error"`
	Data    json.RawMessage        `json:"data"`
	Field   string                 `json:"field"`
	Details map[string]interface{} `json:"details"`
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterBindings())

	db := testutil.OpenDB(t)
	store := repositories.NewStore(db)
	tokens := services.NewTokenService("test-secret", time.Hour)
	locker := services.NewLocalRoomLocker()

	router := gin.New()
	SetupRoutes(router, Deps{
		Store:    store,
		Tokens:   tokens,
		Auth:     services.NewAuthService(services.AuthServiceOptions{Store: store, Tokens: tokens}),
		Rooms:    services.NewRoomService(services.RoomServiceOptions{Store: store, Locker: locker}),
		Bookings: services.NewBookingService(services.BookingServiceOptions{Store: store, Locker: locker}),
		Admin:    services.NewAdminService(services.AdminServiceOptions{Store: store}),
	})
	return &testServer{t: t, db: db, router: router}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *testServer) register(email, role string) (string, uint) {
	s.t.Helper()
	status, env := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "password": "password1", "name": email, "role": role,
	})
	require.Equal(s.t, http.StatusCreated, status, env.Mess)

	var res struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &res))
	return res.Token, res.User.ID
}

func (s *testServer) adminToken() string {
	s.t.Helper()
	hash, err := services.HashPassword("admin-pass")
	require.NoError(s.t, err)
	require.NoError(s.t, s.db.Create(&models.User{
		Email: "admin@example.test", Name: "Admin", PasswordHash: hash, Role: constants.RoleAdmin,
	}).Error)

	status, env := s.do(http.MethodPost, "/api/auth/signin", "", gin.H{"email": "admin@example.test", "password": "admin-pass"})
	require.Equal(s.t, http.StatusOK, status, env.Mess)
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &res))
	return res.Token
}

func dataID(t *testing.T, env envelope) uint {
	t.Helper()
	var v struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v.ID
}

func TestRentalFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken()
	owner, ownerID := s.register("owner@example.test", "OWNER")
	tenantA, _ := s.register("a@example.test", "TENANT")
	tenantB, _ := s.register("b@example.test", "")

	room := gin.H{
		"title": "Lake view", "description": "bright", "address": "Lakeside 1", "city": "Pokhara",
		"state": "Gandaki", "zipCode": "33700", "monthlyRent": "1000",
	}

	status, env := s.do(http.MethodPost, "/api/owner/rooms", owner, room)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "owner account not approved yet", env.Mess)

	status, _ = s.do(http.MethodPost, fmt.Sprintf("/api/admin/approve-owner/%d", ownerID), admin, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = s.do(http.MethodPost, "/api/owner/rooms", owner, room)
	require.Equal(t, http.StatusCreated, status, env.Mess)
	roomID := dataID(t, env)

	status, env = s.do(http.MethodGet, "/api/tenant/rooms", tenantA, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"rooms":[]}`, string(env.Data), "pending rooms are hidden")

	status, _ = s.do(http.MethodPost, fmt.Sprintf("/api/admin/approve-room/%d", roomID), admin, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = s.do(http.MethodPost, "/api/tenant/bookings", tenantA, gin.H{"roomId": roomID, "startMonth": "2024-01", "endMonth": "2024-03"})
	require.Equal(t, http.StatusCreated, status, env.Mess)
	bookingID := dataID(t, env)
	var booking struct {
		Status      string `json:"status"`
		TotalAmount string `json:"totalAmount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, constants.BookingStatusPending, booking.Status)
	assert.Equal(t, "2000", booking.TotalAmount)

	status, env = s.do(http.MethodPut, fmt.Sprintf("/api/owner/bookings/%d/status", bookingID), owner, gin.H{"status": "CONFIRMED"})
	require.Equal(t, http.StatusOK, status, env.Mess)

	status, env = s.do(http.MethodPost, "/api/tenant/bookings", tenantB, gin.H{"roomId": roomID, "startMonth": "2024-02", "endMonth": "2024-04"})
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.Error)
	assert.EqualValues(t, bookingID, env.Details["bookingId"])

	status, env = s.do(http.MethodPost, fmt.Sprintf("/api/tenant/bookings/%d/cancel", bookingID), tenantB, nil)
	require.Equal(t, http.StatusForbidden, status)

	status, env = s.do(http.MethodPost, fmt.Sprintf("/api/tenant/bookings/%d/cancel", bookingID), tenantA, nil)
	require.Equal(t, http.StatusOK, status, env.Mess)

	status, env = s.do(http.MethodPost, fmt.Sprintf("/api/tenant/bookings/%d/cancel", bookingID), tenantA, nil)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INVALID_STATE", env.Error)

	status, env = s.do(http.MethodGet, fmt.Sprintf("/api/tenant/rooms/%d", roomID), tenantB, nil)
	require.Equal(t, http.StatusOK, status)
	var got struct {
		IsAvailable bool `json:"isAvailable"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.True(t, got.IsAvailable)

	status, env = s.do(http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"totalUsers":4,"totalRooms":1,"totalBookings":1,"pendingOwners":0,"pendingRooms":0}`, string(env.Data))
}

func TestBookingRequestValidation(t *testing.T) {
	s := newTestServer(t)
	tenant, _ := s.register("t@example.test", "TENANT")

	status, env := s.do(http.MethodPost, "/api/tenant/bookings", tenant, gin.H{"roomId": 1, "startMonth": "2024-1", "endMonth": "2024-03"})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)
	assert.Equal(t, "startMonth", env.Field)

	status, env = s.do(http.MethodPost, "/api/tenant/bookings", tenant, gin.H{"roomId": 1, "startMonth": "2024-03", "endMonth": "2024-03"})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "endMonth", env.Field)

	status, _ = s.do(http.MethodPost, "/api/tenant/bookings", tenant, gin.H{"roomId": 99, "startMonth": "2024-03", "endMonth": "2024-04"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAccessControl(t *testing.T) {
	s := newTestServer(t)
	tenant, _ := s.register("t@example.test", "TENANT")

	status, _ := s.do(http.MethodGet, "/api/tenant/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := s.do(http.MethodGet, "/api/tenant/bookings", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", env.Error)

	status, _ = s.do(http.MethodGet, "/api/owner/rooms", tenant, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(http.MethodGet, "/api/admin/stats", tenant, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "x@example.test", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "password", env.Field)

	status, _ = s.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "t@example.test", "password": "password1"})
	assert.Equal(t, http.StatusConflict, status)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"db":true}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
