package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/holycrosscentre/booking-portal/models"
	"github.com/holycrosscentre/booking-portal/utils"
)

type SpaceController struct {
	DB *gorm.DB
}

func NewSpaceController(db *gorm.DB) *SpaceController {
	return &SpaceController{DB: db}
}

// GetAllSpaces lists active venue spaces; the public enquiry form uses it.
func (sc *SpaceController) GetAllSpaces(c *gin.Context) {
	var spaces []models.Space
	if err := sc.DB.Where("active = ?", true).Find(&spaces).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of spaces", spaces)
}

// CreateSpace -> admin venue management.
func (sc *SpaceController) CreateSpace(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Capacity int    `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	space := models.Space{Name: req.Name, Capacity: req.Capacity, Active: true}
	if err := sc.DB.Create(&space).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New space created: %s", space.Name)
	utils.RespondJSON(c, http.StatusCreated, "Space created successfully", space)
}

// UpdateSpace patches name/capacity/active.
func (sc *SpaceController) UpdateSpace(c *gin.Context) {
	id := c.Param("space_id")
	var body struct {
		Name     *string `json:"name"`
		Capacity *int    `json:"capacity"`
		Active   *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var space models.Space
	if err := sc.DB.First(&space, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != nil {
		space.Name = *body.Name
	}
	if body.Capacity != nil {
		space.Capacity = *body.Capacity
	}
	if body.Active != nil {
		space.Active = *body.Active
	}

	if err := sc.DB.Save(&space).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Space updated", space)
}

// CreateReservation books a space for one booking on one day.
func (sc *SpaceController) CreateReservation(c *gin.Context) {
	bookingID, _ := strconv.Atoi(c.Param("booking_id"))
	var req struct {
		SpaceID     uint    `json:"space_id" binding:"required"`
		ServiceDate string  `json:"service_date" binding:"required"`
		StartTime   *string `json:"start_time"` // "15:04", empty = whole day
		EndTime     *string `json:"end_time"`
		Notes       string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	serviceDate, err := time.Parse("2006-01-02", req.ServiceDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Times are stored zero-padded ("09:00") and compared as strings by the
	// conflict detector, so anything else must be rejected here.
	for _, ts := range []*string{req.StartTime, req.EndTime} {
		if ts != nil && *ts != "" {
			if _, err := time.Parse("15:04", *ts); err != nil {
				utils.RespondError(c, http.StatusBadRequest, errors.New("times must be in HH:MM format"))
				return
			}
		}
	}

	var booking models.Booking
	if err := sc.DB.First(&booking, bookingID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	reservation := models.SpaceReservation{
		BookingID:   booking.ID,
		SpaceID:     req.SpaceID,
		ServiceDate: serviceDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Notes:       req.Notes,
	}
	if err := sc.DB.Create(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Space %d reserved for booking %s on %s", req.SpaceID, booking.Reference, req.ServiceDate)
	utils.RespondJSON(c, http.StatusCreated, "Space reservation created", reservation)
}

// GetReservations lists a booking's space reservations.
func (sc *SpaceController) GetReservations(c *gin.Context) {
	bookingID := c.Param("booking_id")

	var reservations []models.SpaceReservation
	if err := sc.DB.Preload("Space").Where("booking_id = ?", bookingID).
		Order("service_date ASC").Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Space reservations", reservations)
}

// DeleteReservation removes one reservation row.
func (sc *SpaceController) DeleteReservation(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("reservation_id"))

	if err := sc.DB.Delete(&models.SpaceReservation{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Space reservation deleted", gin.H{"reservation_id": id})
}
