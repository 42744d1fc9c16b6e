package Controllers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/holycrosscentre/booking-portal/controllers"
	"github.com/holycrosscentre/booking-portal/models"
	"github.com/holycrosscentre/booking-portal/services"
	"github.com/holycrosscentre/booking-portal/utils"
)

func setupTestDBForBookings(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:bookings_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Booking{},
		&models.Space{},
		&models.SpaceReservation{},
		&models.RoomType{},
		&models.Room{},
		&models.RoomAssignment{},
	)
	if err != nil {
		t.Fatal(err)
	}
	db.Exec("DELETE FROM space_reservations")
	db.Exec("DELETE FROM room_assignments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM spaces")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM room_types")
	return db
}

func setupBookingRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	bookingCtrl := controllers.NewBookingController(db)
	router.POST("/bookings", bookingCtrl.CreateBooking)
	router.GET("/bookings/link/:token", bookingCtrl.ResolveCustomLink)
	router.POST("/bookings/link/:token", bookingCtrl.AcceptCustomLink)

	staff := router.Group("/staff", func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Set("role", "staff")
	})
	staff.POST("/bookings/:booking_id/approve", bookingCtrl.ApproveBooking)
	staff.POST("/bookings/:booking_id/cancel", bookingCtrl.CancelBooking)
	staff.POST("/bookings/:booking_id/custom-link", bookingCtrl.IssueCustomLink)
	staff.GET("/bookings/:booking_id/conflicts", bookingCtrl.GetConflicts)
	return router
}

func TestCreateBookingRequest(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBookings(t)
	router := setupBookingRouter(db)

	w := postJSON(t, router, "/bookings", map[string]interface{}{
		"customer_name":  "Parish Weekend",
		"customer_email": "organiser@parish.example",
		"arrival_date":   "2026-10-09",
		"departure_date": "2026-10-11",
		"headcount":      30,
		"overnight":      true,
		"catering":       true,
		"accommodation_requests": map[string]interface{}{
			"single":    4,
			"twin":      13,
			"byo_linen": true,
		},
		"form_time": time.Now().Add(-time.Minute).UnixMilli(),
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var booking models.Booking
	assert.NoError(t, db.First(&booking).Error)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Contains(t, booking.Reference, "HCC-")
	assert.Equal(t, 2, booking.Nights())
	assert.NotEmpty(t, booking.AccommodationRequests)
}

func TestCreateBookingRejectsBadDateRange(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBookings(t)
	router := setupBookingRouter(db)

	w := postJSON(t, router, "/bookings", map[string]interface{}{
		"customer_name":  "Backwards",
		"customer_email": "backwards@parish.example",
		"arrival_date":   "2026-10-11",
		"departure_date": "2026-10-09",
		"headcount":      5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApproveBookingProvisionsPortalAccess(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBookings(t)
	router := setupBookingRouter(db)

	booking := models.Booking{
		Reference:     models.NewBookingReference(),
		CustomerName:  "Approve Me",
		CustomerEmail: "approve@parish.example",
		ArrivalDate:   time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC),
		DepartureDate: time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC),
		Headcount:     12,
		Status:        models.BookingInTriage,
	}
	db.Create(&booking)

	req, _ := http.NewRequest("POST", fmt.Sprintf("/staff/bookings/%d/approve", booking.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Booking
	db.First(&reloaded, booking.ID)
	assert.Equal(t, models.BookingApproved, reloaded.Status)
	assert.NotNil(t, reloaded.PortalTokenHash)
}

func TestCancelledBookingCannotBeApproved(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBookings(t)
	router := setupBookingRouter(db)

	booking := models.Booking{
		Reference:     models.NewBookingReference(),
		CustomerName:  "Gone",
		CustomerEmail: "gone@parish.example",
		ArrivalDate:   time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC),
		DepartureDate: time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC),
		Headcount:     5,
		Status:        models.BookingCancelled,
	}
	db.Create(&booking)

	req, _ := http.NewRequest("POST", fmt.Sprintf("/staff/bookings/%d/approve", booking.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCustomLinkIsSingleUse(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBookings(t)
	router := setupBookingRouter(db)

	booking := models.Booking{
		Reference:     models.NewBookingReference(),
		CustomerName:  "Discounted",
		CustomerEmail: "discount@parish.example",
		ArrivalDate:   time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC),
		DepartureDate: time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC),
		Headcount:     20,
		Status:        models.BookingApproved,
		QuotedAmount:  1500.00,
	}
	db.Create(&booking)

	// The raw token is only ever emailed, so drive the service directly.
	_, token, err := services.NewBookingService(db).IssueCustomLink(booking.ID, 1350.00, 150.00, 0)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Resolving shows the offer without consuming it.
	req, _ := http.NewRequest("GET", "/bookings/link/"+token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", "/bookings/link/"+token, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Accepting consumes the link.
	req, _ = http.NewRequest("POST", "/bookings/link/"+token, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Booking
	db.First(&reloaded, booking.ID)
	assert.Equal(t, models.BookingConfirmed, reloaded.Status)
	assert.Nil(t, reloaded.CustomLinkHash)
	assert.Equal(t, 1350.00, reloaded.FinalAmount)

	// The consumed link is dead, for resolve and accept alike.
	req, _ = http.NewRequest("POST", "/bookings/link/"+token, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req, _ = http.NewRequest("GET", "/bookings/link/"+token, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetConflictsFlagsDoubleBookedSpace(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForBookings(t)
	router := setupBookingRouter(db)

	chapel := models.Space{Name: "Chapel", Capacity: 60, Active: true}
	db.Create(&chapel)

	day := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)

	subject := models.Booking{
		Reference:     models.NewBookingReference(),
		CustomerName:  "Subject",
		CustomerEmail: "subject@parish.example",
		ArrivalDate:   day,
		DepartureDate: day.AddDate(0, 0, 1),
		Headcount:     20,
		Status:        models.BookingConfirmed,
	}
	db.Create(&subject)
	db.Create(&models.SpaceReservation{
		BookingID:   subject.ID,
		SpaceID:     chapel.ID,
		ServiceDate: day,
		StartTime:   strPtrT("09:00"),
		EndTime:     strPtrT("12:00"),
	})

	holder := models.Booking{
		Reference:     models.NewBookingReference(),
		CustomerName:  "Holder",
		CustomerEmail: "holder@parish.example",
		ArrivalDate:   day,
		DepartureDate: day.AddDate(0, 0, 1),
		Headcount:     15,
		Status:        models.BookingPending,
	}
	db.Create(&holder)
	db.Create(&models.SpaceReservation{
		BookingID:   holder.ID,
		SpaceID:     chapel.ID,
		ServiceDate: day,
		StartTime:   strPtrT("11:00"),
		EndTime:     strPtrT("14:00"),
	})

	// The confirmed subject outranks the merely pending holder, so the
	// overlap is suppressed.
	req, _ := http.NewRequest("GET", fmt.Sprintf("/staff/bookings/%d/conflicts", subject.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), holder.Reference)

	// Once the holder is confirmed too, the overlap is a real conflict.
	db.Model(&holder).Update("status", models.BookingConfirmed)
	req, _ = http.NewRequest("GET", fmt.Sprintf("/staff/bookings/%d/conflicts", subject.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), holder.Reference)
}

func strPtrT(s string) *string { return &s }
