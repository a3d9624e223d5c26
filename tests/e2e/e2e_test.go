package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studioreserve/internal/database"
	"studioreserve/internal/domain"
	"studioreserve/internal/middleware"
	"studioreserve/internal/modules/auth"
	"studioreserve/internal/modules/booking"
	"studioreserve/internal/modules/catalog"
	"studioreserve/internal/modules/equipment"
	"studioreserve/internal/modules/payment"
	jwtsvc "studioreserve/internal/pkg/jwt"
	"studioreserve/internal/repository"
)

type testSuite struct {
	router         *gin.Engine
	db             *gorm.DB
	bookingService *booking.Service
}

type testResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   *errorDetail   `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var dbSeq atomic.Int64

func setupSuite(t *testing.T) *testSuite {
	// A named in-memory database per suite: shared cache keeps every pooled
	// connection on the same store, the unique name isolates suites from
	// each other.
	dsn := fmt.Sprintf("file:e2e%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	studioRepo := repository.NewStudioRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)
	gateway := payment.FakeGateway{}
	log := zerolog.Nop()

	bookingService := booking.NewService(bookingRepo, roomRepo, userRepo, nil, log)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService, 4))
	catalogHandler := catalog.NewHandler(catalog.NewService(studioRepo, roomRepo))
	bookingHandler := booking.NewHandler(bookingService)
	equipmentHandler := equipment.NewHandler(equipment.NewService(equipmentRepo, studioRepo))
	paymentHandler := payment.NewHandler(
		payment.NewService(paymentRepo, bookingRepo, userRepo, gateway, nil, log),
		gateway,
	)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api/v1")
	authHandler.RegisterRoutes(api)
	catalogHandler.RegisterPublicRoutes(api)
	paymentHandler.RegisterCallbackRoutes(api)

	protected := api.Group("", middleware.Auth(jwtService))
	catalogHandler.RegisterProtectedRoutes(protected)
	bookingHandler.RegisterRoutes(protected)
	equipmentHandler.RegisterRoutes(protected)
	paymentHandler.RegisterRoutes(protected)

	return &testSuite{router: r, db: db, bookingService: bookingService}
}

func (s *testSuite) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parse(t *testing.T, w *httptest.ResponseRecorder) *testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return &resp
}

func (s *testSuite) register(t *testing.T, email, role string) string {
	t.Helper()
	w := s.request(t, "POST", "/api/v1/auth/register", map[string]any{
		"email":    email,
		"password": "Password123!",
		"name":     email,
		"phone":    "+7700" + email[:4],
		"role":     role,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return parse(t, w).Data["token"].(string)
}

func idFrom(t *testing.T, resp *testResponse, key string) int64 {
	t.Helper()
	obj, ok := resp.Data[key].(map[string]any)
	require.True(t, ok, "missing %q in %+v", key, resp.Data)
	return int64(obj["id"].(float64))
}

func TestBookingLifecycle(t *testing.T) {
	suite := setupSuite(t)

	ownerToken := suite.register(t, "owner@test.com", "studio_owner")
	photogToken := suite.register(t, "photog@test.com", "photographer")

	var studioID, roomID, bookingID int64

	t.Run("owner builds the catalog", func(t *testing.T) {
		w := suite.request(t, "POST", "/api/v1/studios", map[string]any{
			"name":    "Daylight Studio",
			"address": "12 Panfilov St",
			"city":    "Almaty",
		}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
		studioID = idFrom(t, parse(t, w), "studio")

		w = suite.request(t, "POST", fmt.Sprintf("/api/v1/studios/%d/rooms", studioID), map[string]any{
			"name":         "Main Hall",
			"hourly_price": 100000,
		}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
		roomID = idFrom(t, parse(t, w), "room")
	})

	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	end := start.Add(90 * time.Minute)

	t.Run("photographer books and a partial hour bills whole", func(t *testing.T) {
		w := suite.request(t, "POST", "/api/v1/bookings", map[string]any{
			"room_id":    roomID,
			"start_time": start.Format(time.RFC3339),
			"end_time":   end.Format(time.RFC3339),
		}, photogToken)
		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

		resp := parse(t, w)
		bookingID = idFrom(t, resp, "booking")
		b := resp.Data["booking"].(map[string]any)
		assert.Equal(t, "pending", b["status"])
		assert.Equal(t, "pending", b["payment_status"])
		assert.InDelta(t, 200000.00, b["total_price"].(float64), 0.001)
	})

	t.Run("overlapping request is rejected", func(t *testing.T) {
		w := suite.request(t, "POST", "/api/v1/bookings", map[string]any{
			"room_id":    roomID,
			"start_time": start.Add(time.Hour).Format(time.RFC3339),
			"end_time":   start.Add(2 * time.Hour).Format(time.RFC3339),
		}, photogToken)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "BOOKING_CONFLICT", parse(t, w).Error.Code)
	})

	t.Run("adjacent request is admitted", func(t *testing.T) {
		w := suite.request(t, "POST", "/api/v1/bookings", map[string]any{
			"room_id":    roomID,
			"start_time": end.Format(time.RFC3339),
			"end_time":   end.Add(time.Hour).Format(time.RFC3339),
		}, photogToken)
		assert.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	})

	t.Run("owner cannot be impersonated", func(t *testing.T) {
		w := suite.request(t, "PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", bookingID),
			map[string]any{"status": "accepted"}, photogToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner accepts", func(t *testing.T) {
		w := suite.request(t, "PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", bookingID),
			map[string]any{"status": "accepted"}, ownerToken)
		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
		b := parse(t, w).Data["booking"].(map[string]any)
		assert.Equal(t, "accepted", b["status"])
	})

	t.Run("accepted bookings still block the calendar", func(t *testing.T) {
		w := suite.request(t, "POST", "/api/v1/bookings", map[string]any{
			"room_id":    roomID,
			"start_time": start.Add(30 * time.Minute).Format(time.RFC3339),
			"end_time":   start.Add(time.Hour).Format(time.RFC3339),
		}, photogToken)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "BOOKING_CONFLICT", parse(t, w).Error.Code)
	})

	t.Run("terminal transitions are rejected", func(t *testing.T) {
		w := suite.request(t, "PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", bookingID),
			map[string]any{"status": "completed"}, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.request(t, "PATCH", fmt.Sprintf("/api/v1/bookings/%d/status", bookingID),
			map[string]any{"status": "accepted"}, ownerToken)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "INVALID_TRANSITION", parse(t, w).Error.Code)
	})
}

func TestPaymentFlow(t *testing.T) {
	suite := setupSuite(t)

	ownerToken := suite.register(t, "payowner@test.com", "studio_owner")
	photogToken := suite.register(t, "payer@test.com", "photographer")

	w := suite.request(t, "POST", "/api/v1/studios", map[string]any{"name": "Pay Studio"}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	studioID := idFrom(t, parse(t, w), "studio")

	w = suite.request(t, "POST", fmt.Sprintf("/api/v1/studios/%d/rooms", studioID),
		map[string]any{"name": "Room", "hourly_price": 50000}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	roomID := idFrom(t, parse(t, w), "room")

	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	w = suite.request(t, "POST", "/api/v1/bookings", map[string]any{
		"room_id":    roomID,
		"start_time": start.Format(time.RFC3339),
		"end_time":   start.Add(2 * time.Hour).Format(time.RFC3339),
	}, photogToken)
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := idFrom(t, parse(t, w), "booking")

	var ref string

	t.Run("initiation returns a redirect with the gateway reference", func(t *testing.T) {
		w := suite.request(t, "POST", "/api/v1/payments/initiate",
			map[string]any{"booking_id": bookingID}, photogToken)
		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

		payURL, err := url.Parse(parse(t, w).Data["payment_url"].(string))
		require.NoError(t, err)
		ref = payURL.Query().Get("ref")
		require.NotEmpty(t, ref)
	})

	t.Run("a second initiation while one is in flight is rejected", func(t *testing.T) {
		w := suite.request(t, "POST", "/api/v1/payments/initiate",
			map[string]any{"booking_id": bookingID}, photogToken)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "PAYMENT_IN_PROGRESS", parse(t, w).Error.Code)
	})

	t.Run("successful callback marks the booking paid", func(t *testing.T) {
		w := suite.request(t, "GET", "/api/v1/payments/callback?ref="+ref+"&status=OK", nil, "")
		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

		resp := parse(t, w)
		assert.Equal(t, true, resp.Data["paid"])
		assert.Equal(t, false, resp.Data["replayed"])

		w = suite.request(t, "GET", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, photogToken)
		require.Equal(t, http.StatusOK, w.Code)
		b := parse(t, w).Data["booking"].(map[string]any)
		assert.Equal(t, "paid", b["payment_status"])
	})

	t.Run("replayed callback changes nothing", func(t *testing.T) {
		w := suite.request(t, "GET", "/api/v1/payments/callback?ref="+ref+"&status=OK", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := parse(t, w)
		assert.Equal(t, true, resp.Data["paid"])
		assert.Equal(t, true, resp.Data["replayed"])
	})

	t.Run("re-initiating a paid booking is rejected", func(t *testing.T) {
		w := suite.request(t, "POST", "/api/v1/payments/initiate",
			map[string]any{"booking_id": bookingID}, photogToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_STATUS", parse(t, w).Error.Code)
	})

	t.Run("unknown reference", func(t *testing.T) {
		w := suite.request(t, "GET", "/api/v1/payments/callback?ref=ghost&status=OK", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEquipmentCustody(t *testing.T) {
	suite := setupSuite(t)

	ownerToken := suite.register(t, "gearowner@test.com", "studio_owner")
	photogToken := suite.register(t, "gearphoto@test.com", "photographer")

	w := suite.request(t, "POST", "/api/v1/studios", map[string]any{"name": "Gear Studio"}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	studioID := idFrom(t, parse(t, w), "studio")

	var scanCode string
	var equipmentID int64

	t.Run("owner registers an item", func(t *testing.T) {
		w := suite.request(t, "POST", "/api/v1/equipment", map[string]any{
			"studio_id": studioID,
			"name":      "Speedlight Kit",
			"brand":     "Godox",
			"category":  "lighting",
		}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

		resp := parse(t, w)
		equipmentID = idFrom(t, resp, "equipment")
		item := resp.Data["equipment"].(map[string]any)
		scanCode = item["scan_code"].(string)
		assert.Equal(t, "available", item["status"])
	})

	t.Run("scan round trip leaves two log entries", func(t *testing.T) {
		w := suite.request(t, "POST", "/api/v1/equipment/scan",
			map[string]any{"scan_code": scanCode, "action": "scan_out"}, ownerToken)
		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
		item := parse(t, w).Data["equipment"].(map[string]any)
		assert.Equal(t, "rented", item["status"])

		w = suite.request(t, "POST", "/api/v1/equipment/scan",
			map[string]any{"scan_code": scanCode, "action": "scan_in"}, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.request(t, "GET", fmt.Sprintf("/api/v1/equipment/%d/logs", equipmentID), nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)
		logs := parse(t, w).Data["logs"].([]any)
		require.Len(t, logs, 2)
		assert.Equal(t, "scan_out", logs[0].(map[string]any)["action"])
		assert.Equal(t, "scan_in", logs[1].(map[string]any)["action"])
	})

	t.Run("scanning in an available item is rejected without a log", func(t *testing.T) {
		w := suite.request(t, "POST", "/api/v1/equipment/scan",
			map[string]any{"scan_code": scanCode, "action": "scan_in"}, ownerToken)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "INVALID_STATUS", parse(t, w).Error.Code)

		w = suite.request(t, "GET", fmt.Sprintf("/api/v1/equipment/%d/logs", equipmentID), nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, parse(t, w).Data["logs"].([]any), 2)
	})

	t.Run("photographers cannot scan", func(t *testing.T) {
		w := suite.request(t, "POST", "/api/v1/equipment/scan",
			map[string]any{"scan_code": scanCode, "action": "scan_out"}, photogToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

// Two identical admissions raced through the service must resolve to exactly
// one booking.
func TestConcurrentAdmission(t *testing.T) {
	suite := setupSuite(t)

	ownerToken := suite.register(t, "raceowner@test.com", "studio_owner")
	suite.register(t, "racer@test.com", "photographer")

	var photographer domain.User
	require.NoError(t, suite.db.Where("email = ?", "racer@test.com").First(&photographer).Error)

	w := suite.request(t, "POST", "/api/v1/studios", map[string]any{"name": "Race Studio"}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	studioID := idFrom(t, parse(t, w), "studio")

	w = suite.request(t, "POST", fmt.Sprintf("/api/v1/studios/%d/rooms", studioID),
		map[string]any{"name": "Room", "hourly_price": 50000}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	roomID := idFrom(t, parse(t, w), "room")

	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	req := booking.CreateBookingRequest{
		RoomID:    roomID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = suite.bookingService.CreateBooking(context.Background(), photographer.ID, req)
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case err == booking.ErrConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
