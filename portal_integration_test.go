package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/holycrosscentre/booking-portal/models"
	"github.com/holycrosscentre/booking-portal/router"
	"github.com/holycrosscentre/booking-portal/services"
	"github.com/holycrosscentre/booking-portal/utils"
)

// TestBookingLifecycle walks the whole pipeline through the real router:
// public enquiry -> quote -> conversion -> approval -> portal access ->
// scheduling -> custom pricing link.
func TestBookingLifecycle(t *testing.T) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:lifecycle_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	autoMigrate(db)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.DefaultCost)
	admin := models.User{
		Name:     "Admin",
		Email:    "admin@holycross.example",
		Password: string(hashed),
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatal(err)
	}

	r := router.SetupRouter(db)

	do := func(method, path, jwt string, payload interface{}) *httptest.ResponseRecorder {
		var req *http.Request
		if payload != nil {
			body, err := json.Marshal(payload)
			assert.NoError(t, err)
			req, _ = http.NewRequest(method, path, bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req, _ = http.NewRequest(method, path, nil)
		}
		if jwt != "" {
			req.Header.Set("Authorization", "Bearer "+jwt)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// Staff login.
	w := do("POST", "/staff/login", "", map[string]string{
		"email":    "admin@holycross.example",
		"password": "admin-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	jwt := loginResp.Data.Token
	assert.NotEmpty(t, jwt)

	// A customer sends an enquiry through the public form.
	w = do("POST", "/enquiries", "", map[string]interface{}{
		"customer_name":  "Retreat Organiser",
		"customer_email": "organiser@retreats.example",
		"organisation":   "St Bede's",
		"event_type":     "retreat",
		"headcount":      18,
		"message":        "Two-night retreat with full catering.",
		"form_time":      time.Now().Add(-time.Minute).UnixMilli(),
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var enquiry models.Enquiry
	assert.NoError(t, db.Order("id DESC").First(&enquiry).Error)

	// Staff quote, then convert the enquiry into a booking.
	w = do("POST", fmt.Sprintf("/staff/enquiries/%d/quotes", enquiry.ID), jwt, map[string]interface{}{
		"amount":  1480.00,
		"details": "2 nights full board for 18",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do("POST", fmt.Sprintf("/staff/enquiries/%d/convert", enquiry.ID), jwt, map[string]interface{}{
		"arrival_date":   "2026-11-13",
		"departure_date": "2026-11-15",
		"overnight":      true,
		"catering":       true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var booking models.Booking
	assert.NoError(t, db.Where("enquiry_id = ?", enquiry.ID).First(&booking).Error)
	assert.Equal(t, models.BookingInTriage, booking.Status)
	assert.Equal(t, 1480.00, booking.QuotedAmount)

	// Approval provisions portal access.
	w = do("POST", fmt.Sprintf("/staff/bookings/%d/approve", booking.ID), jwt, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	db.First(&booking, booking.ID)
	assert.Equal(t, models.BookingApproved, booking.Status)
	assert.NotNil(t, booking.PortalTokenHash)

	// The raw portal token only exists in the email, so mint a known one.
	portalToken, err := utils.GenerateLinkToken()
	assert.NoError(t, err)
	hash := utils.HashToken(portalToken)
	db.Model(&booking).Update("portal_token_hash", hash)

	req, _ := http.NewRequest("GET", "/portal/booking", nil)
	req.Header.Set("X-Portal-Token", portalToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), booking.Reference)

	// Staff reserve a seeded space and assign a seeded room.
	var space models.Space
	assert.NoError(t, db.First(&space).Error)
	w = do("POST", fmt.Sprintf("/staff/bookings/%d/reservations", booking.ID), jwt, map[string]interface{}{
		"space_id":     space.ID,
		"service_date": "2026-11-13",
		"start_time":   "09:00",
		"end_time":     "17:00",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var room models.Room
	assert.NoError(t, db.First(&room).Error)
	w = do("POST", fmt.Sprintf("/staff/bookings/%d/assignments", booking.ID), jwt, map[string]interface{}{
		"room_id":     room.ID,
		"guest_names": []string{"First Guest", "Second Guest"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// The assigned room shows in_use on the status board mid-stay.
	w = do("GET", "/staff/rooms/status?date=2026-11-13", jwt, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "in_use")

	// No overlapping bookings yet, so the conflict report is clean.
	w = do("GET", fmt.Sprintf("/staff/bookings/%d/conflicts", booking.ID), jwt, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A custom pricing link confirms the booking and dies on first use.
	_, linkToken, err := services.NewBookingService(db).IssueCustomLink(booking.ID, 1400.00, 80.00, 0)
	assert.NoError(t, err)

	w = do("GET", "/bookings/link/"+linkToken, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do("POST", "/bookings/link/"+linkToken, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	db.First(&booking, booking.ID)
	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Nil(t, booking.CustomLinkHash)

	w = do("POST", "/bookings/link/"+linkToken, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Dashboard aggregates come back for staff with real counts.
	w = do("GET", "/staff/dashboard/stats", jwt, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var statsResp struct {
		Data struct {
			TotalBookings int64 `json:"total_bookings"`
			BookingStats  struct {
				Confirmed int64 `json:"confirmed"`
			} `json:"booking_stats"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &statsResp))
	assert.GreaterOrEqual(t, statsResp.Data.TotalBookings, int64(1))
	assert.GreaterOrEqual(t, statsResp.Data.BookingStats.Confirmed, int64(1))

	// API hardening headers ride on every response.
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
