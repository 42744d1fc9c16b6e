package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/holycrosscentre/booking-portal/models"
	"github.com/holycrosscentre/booking-portal/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats aggregates the numbers the back-office landing page
// shows. Role is enforced by the router group.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	// Half-open [dayStart, dayEnd) bounds; booking dates are stored as full
	// datetimes so equality against a date string would miss non-midnight
	// values.
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var stats struct {
		TotalBookings  int64 `json:"total_bookings"`
		ArrivingToday  int64 `json:"arriving_today"`
		DepartingToday int64 `json:"departing_today"`
		InHouse        int64 `json:"in_house"`
		BookingStats   struct {
			Pending   int64 `json:"pending"`
			InTriage  int64 `json:"in_triage"`
			Approved  int64 `json:"approved"`
			Confirmed int64 `json:"confirmed"`
			Cancelled int64 `json:"cancelled"`
		} `json:"booking_stats"`
		EnquiryStats struct {
			New          int64 `json:"new"`
			InDiscussion int64 `json:"in_discussion"`
			Quoted       int64 `json:"quoted"`
		} `json:"enquiry_stats"`
		MealJobsToday int64 `json:"meal_jobs_today"`
	}

	bookings := ac.DB.Model(&models.Booking{})
	bookings.Count(&stats.TotalBookings)

	ac.DB.Model(&models.Booking{}).Where("status <> ?", models.BookingCancelled).
		Where("arrival_date >= ? AND arrival_date < ?", dayStart, dayEnd).Count(&stats.ArrivingToday)
	ac.DB.Model(&models.Booking{}).Where("status <> ?", models.BookingCancelled).
		Where("departure_date >= ? AND departure_date < ?", dayStart, dayEnd).Count(&stats.DepartingToday)
	ac.DB.Model(&models.Booking{}).Where("status <> ?", models.BookingCancelled).
		Where("arrival_date < ? AND departure_date >= ?", dayEnd, dayEnd).Count(&stats.InHouse)

	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingPending).Count(&stats.BookingStats.Pending)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingInTriage).Count(&stats.BookingStats.InTriage)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingApproved).Count(&stats.BookingStats.Approved)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingConfirmed).Count(&stats.BookingStats.Confirmed)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingCancelled).Count(&stats.BookingStats.Cancelled)

	ac.DB.Model(&models.Enquiry{}).Where("status = ?", models.EnquiryNew).Count(&stats.EnquiryStats.New)
	ac.DB.Model(&models.Enquiry{}).Where("status = ?", models.EnquiryInDiscussion).Count(&stats.EnquiryStats.InDiscussion)
	ac.DB.Model(&models.Enquiry{}).Where("status = ?", models.EnquiryQuoted).Count(&stats.EnquiryStats.Quoted)

	ac.DB.Model(&models.MealJob{}).
		Where("service_date >= ? AND service_date < ?", dayStart, dayEnd).
		Where("status <> ?", models.MealJobCancelled).Count(&stats.MealJobsToday)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
