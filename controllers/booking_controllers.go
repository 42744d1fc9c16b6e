package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/holycrosscentre/booking-portal/models"
	"github.com/holycrosscentre/booking-portal/scheduling"
	"github.com/holycrosscentre/booking-portal/services"
	"github.com/holycrosscentre/booking-portal/utils"
)

type BookingController struct {
	DB *gorm.DB
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db}
}

// CreateBooking handles the public booking request form. The booking lands
// in Pending for staff triage.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	type request struct {
		utils.BotCheckFields
		CustomerName          string                 `json:"customer_name" binding:"required"`
		CustomerEmail         string                 `json:"customer_email" binding:"required,email"`
		CustomerPhone         string                 `json:"customer_phone"`
		Organisation          string                 `json:"organisation"`
		ArrivalDate           string                 `json:"arrival_date" binding:"required"`
		DepartureDate         string                 `json:"departure_date" binding:"required"`
		Headcount             int                    `json:"headcount" binding:"required,min=1"`
		Overnight             bool                   `json:"overnight"`
		Catering              bool                   `json:"catering"`
		AccommodationRequests map[string]interface{} `json:"accommodation_requests"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := utils.CheckBot(req.BotCheckFields); err != nil {
		utils.InfoLogger.Printf("Booking submission rejected by bot check from %s", c.ClientIP())
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	arrival, err := time.Parse("2006-01-02", req.ArrivalDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	departure, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if departure.Before(arrival) {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidDateRange)
		return
	}

	booking := models.Booking{
		Reference:     models.NewBookingReference(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Organisation:  req.Organisation,
		ArrivalDate:   arrival,
		DepartureDate: departure,
		Headcount:     req.Headcount,
		Overnight:     req.Overnight,
		Catering:      req.Catering,
		Status:        models.BookingPending,
	}
	if req.AccommodationRequests != nil {
		raw, _ := json.Marshal(req.AccommodationRequests)
		booking.AccommodationRequests = datatypes.JSON(raw)
	}

	if err := bc.DB.Create(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New booking %s from %s", booking.Reference, booking.CustomerEmail)
	services.GetMailerService().SendBookingConfirmation(&booking, "")

	utils.RespondJSON(c, http.StatusCreated, "Booking request received", gin.H{
		"booking_id": booking.ID,
		"reference":  booking.Reference,
	})
}

// GetAllBookings -> staff list, optional status and date filters.
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	query := bc.DB.Order("arrival_date ASC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		if d, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("departure_date >= ?", d)
		}
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

// GetBookingByID -> staff detail with all child rows.
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	id := c.Param("booking_id")

	var booking models.Booking
	err := bc.DB.
		Preload("SpaceReservations").
		Preload("SpaceReservations.Space").
		Preload("RoomAssignments").
		Preload("RoomAssignments.Room").
		Preload("MealJobs").
		Preload("RoomingGroups").
		Preload("RoomingGroups.Guests").
		First(&booking, id).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// UpdateBooking patches staff-editable fields.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	id := c.Param("booking_id")
	var body struct {
		CustomerPhone         *string                `json:"customer_phone"`
		Headcount             *int                   `json:"headcount"`
		Overnight             *bool                  `json:"overnight"`
		Catering              *bool                  `json:"catering"`
		QuotedAmount          *float64               `json:"quoted_amount"`
		AccommodationRequests map[string]interface{} `json:"accommodation_requests"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var booking models.Booking
	if err := bc.DB.First(&booking, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.CustomerPhone != nil {
		booking.CustomerPhone = *body.CustomerPhone
	}
	if body.Headcount != nil {
		booking.Headcount = *body.Headcount
	}
	if body.Overnight != nil {
		booking.Overnight = *body.Overnight
	}
	if body.Catering != nil {
		booking.Catering = *body.Catering
	}
	if body.QuotedAmount != nil {
		booking.QuotedAmount = *body.QuotedAmount
	}
	if body.AccommodationRequests != nil {
		raw, _ := json.Marshal(body.AccommodationRequests)
		booking.AccommodationRequests = datatypes.JSON(raw)
	}

	if err := bc.DB.Save(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking updated", booking)
}

// ApproveBooking -> Approved, provisions portal access and emails the link.
func (bc *BookingController) ApproveBooking(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("booking_id"))

	booking, err := services.NewBookingService(bc.DB).Approve(uint(id))
	if err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking approved", booking)
}

// ConfirmBooking -> Confirmed.
func (bc *BookingController) ConfirmBooking(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("booking_id"))

	booking, err := services.NewBookingService(bc.DB).Confirm(uint(id))
	if err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking confirmed", booking)
}

// RecordDeposit -> DepositPending or DepositReceived.
func (bc *BookingController) RecordDeposit(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("booking_id"))
	var body struct {
		Received bool `json:"received"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := services.NewBookingService(bc.DB).RecordDeposit(uint(id), body.Received)
	if err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Deposit recorded", booking)
}

// CancelBooking releases all held resources.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("booking_id"))

	booking, err := services.NewBookingService(bc.DB).Cancel(uint(id))
	if err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking cancelled", booking)
}

// IssueCustomLink creates a one-time pricing link for the booking.
func (bc *BookingController) IssueCustomLink(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("booking_id"))
	var body struct {
		FinalAmount    float64 `json:"final_amount" binding:"required,gt=0"`
		DiscountAmount float64 `json:"discount_amount"`
		ValidDays      int     `json:"valid_days"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	validFor := time.Duration(body.ValidDays) * 24 * time.Hour
	booking, _, err := services.NewBookingService(bc.DB).IssueCustomLink(uint(id), body.FinalAmount, body.DiscountAmount, validFor)
	if err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Custom link issued", gin.H{
		"booking_id":   booking.ID,
		"final_amount": booking.FinalAmount,
		"expires_at":   booking.CustomLinkExpiry,
	})
}

// ResolveCustomLink shows the offer behind a link without consuming it.
func (bc *BookingController) ResolveCustomLink(c *gin.Context) {
	token := c.Param("token")

	booking, err := services.NewBookingService(bc.DB).ResolveCustomLink(token)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking offer", gin.H{
		"reference":       booking.Reference,
		"customer_name":   booking.CustomerName,
		"arrival_date":    booking.ArrivalDate,
		"departure_date":  booking.DepartureDate,
		"final_amount":    booking.FinalAmount,
		"discount_amount": booking.DiscountAmount,
	})
}

// AcceptCustomLink consumes the link: the booking moves to Confirmed and the
// stored hash is nulled so the link cannot be replayed.
func (bc *BookingController) AcceptCustomLink(c *gin.Context) {
	token := c.Param("token")

	booking, err := services.NewBookingService(bc.DB).ConsumeCustomLink(token)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking confirmed", gin.H{
		"reference": booking.Reference,
		"status":    booking.Status,
	})
}

// GetConflicts runs both detectors for one booking and resolves the
// conflicting booking ids into display summaries.
func (bc *BookingController) GetConflicts(c *gin.Context) {
	id := c.Param("booking_id")

	var booking models.Booking
	if err := bc.DB.Preload("SpaceReservations").Preload("RoomAssignments").First(&booking, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	mine := make([]scheduling.ReservationSlot, 0, len(booking.SpaceReservations))
	for _, r := range booking.SpaceReservations {
		mine = append(mine, scheduling.ReservationSlot{
			BookingID:     booking.ID,
			BookingStatus: booking.Status,
			SpaceID:       r.SpaceID,
			ServiceDate:   r.ServiceDate,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
		})
	}

	// Other bookings' reservations falling within the subject's stay.
	var otherRes []models.SpaceReservation
	err := bc.DB.Joins("Booking").
		Where("space_reservations.booking_id <> ?", booking.ID).
		Where("space_reservations.service_date BETWEEN ? AND ?", booking.ArrivalDate, booking.DepartureDate).
		Where("Booking.status <> ?", models.BookingCancelled).
		Find(&otherRes).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	others := make([]scheduling.ReservationSlot, 0, len(otherRes))
	for _, r := range otherRes {
		others = append(others, scheduling.ReservationSlot{
			BookingID:     r.BookingID,
			BookingStatus: r.Booking.Status,
			SpaceID:       r.SpaceID,
			ServiceDate:   r.ServiceDate,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
		})
	}

	spaceConflicts := scheduling.DetectSpaceConflicts(booking.Status, mine, others)

	// Other bookings' assignments on this booking's rooms.
	roomIDs := make([]uint, 0, len(booking.RoomAssignments))
	for _, a := range booking.RoomAssignments {
		roomIDs = append(roomIDs, a.RoomID)
	}

	var roomConflicts []scheduling.RoomConflict
	if len(roomIDs) > 0 {
		var otherStays []models.RoomAssignment
		err = bc.DB.Joins("Booking").
			Where("room_assignments.booking_id <> ?", booking.ID).
			Where("room_assignments.room_id IN ?", roomIDs).
			Find(&otherStays).Error
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}

		stays := make([]scheduling.RoomStay, 0, len(otherStays))
		for _, a := range otherStays {
			stays = append(stays, scheduling.RoomStay{
				BookingID:     a.BookingID,
				BookingStatus: a.Booking.Status,
				RoomID:        a.RoomID,
				ArrivalDate:   a.Booking.ArrivalDate,
				DepartureDate: a.Booking.DepartureDate,
			})
		}
		roomConflicts = scheduling.DetectRoomConflicts(booking.ArrivalDate, booking.DepartureDate, roomIDs, stays)
	}

	// Second pass: resolve the distinct conflicting ids into summaries.
	summaries := make(map[uint]gin.H)
	if ids := scheduling.DistinctBookingIDs(spaceConflicts, roomConflicts); len(ids) > 0 {
		var conflicting []models.Booking
		if err := bc.DB.Where("id IN ?", ids).Find(&conflicting).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		for _, b := range conflicting {
			summaries[b.ID] = gin.H{
				"reference":      b.Reference,
				"display_name":   b.DisplayName(),
				"status":         b.Status,
				"arrival_date":   b.ArrivalDate,
				"departure_date": b.DepartureDate,
			}
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Conflicts for booking", gin.H{
		"space_conflicts": spaceConflicts,
		"room_conflicts":  roomConflicts,
		"bookings":        summaries,
	})
}
