package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/holycrosscentre/booking-portal/models"
	"github.com/holycrosscentre/booking-portal/utils"
)

// PortalController serves the customer self-service portal. Every handler
// runs behind PortalAuthMiddleware, which puts the authenticated booking id
// in the context.
type PortalController struct {
	DB *gorm.DB
}

func NewPortalController(db *gorm.DB) *PortalController {
	return &PortalController{DB: db}
}

func portalBookingID(c *gin.Context) (uint, error) {
	v, exists := c.Get("booking_id")
	if !exists {
		return 0, errors.New("booking not found in context")
	}
	id, ok := v.(uint)
	if !ok {
		return 0, errors.New("invalid booking id type")
	}
	return id, nil
}

// GetBooking shows the guest their own booking with rooming data.
func (pc *PortalController) GetBooking(c *gin.Context) {
	bookingID, err := portalBookingID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var booking models.Booking
	if err := pc.DB.
		Preload("RoomingGroups").
		Preload("RoomingGroups.Guests", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("MealJobs").
		First(&booking, bookingID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Your booking", booking)
}

// UpdateDetails lets the guest fill in contact and accommodation details.
func (pc *PortalController) UpdateDetails(c *gin.Context) {
	bookingID, err := portalBookingID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var body struct {
		CustomerPhone         *string                `json:"customer_phone"`
		Headcount             *int                   `json:"headcount"`
		AccommodationRequests map[string]interface{} `json:"accommodation_requests"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var booking models.Booking
	if err := pc.DB.First(&booking, bookingID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.CustomerPhone != nil {
		booking.CustomerPhone = *body.CustomerPhone
	}
	if body.Headcount != nil {
		booking.Headcount = *body.Headcount
	}
	if body.AccommodationRequests != nil {
		raw, _ := json.Marshal(body.AccommodationRequests)
		booking.AccommodationRequests = datatypes.JSON(raw)
	}
	if booking.Status == models.BookingAwaitingDetails {
		booking.Status = models.BookingInTriage
	}

	if err := pc.DB.Save(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Portal details updated for booking %s", booking.Reference)
	utils.RespondJSON(c, http.StatusOK, "Details updated", booking)
}

// CreateRoomingGroup adds a named group (usually one per room).
func (pc *PortalController) CreateRoomingGroup(c *gin.Context) {
	bookingID, err := portalBookingID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	group := models.RoomingGroup{BookingID: bookingID, Name: req.Name}
	if err := pc.DB.Create(&group).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Rooming group created", group)
}

// DeleteRoomingGroup removes a group; its guests return to the unassigned
// pool rather than being deleted.
func (pc *PortalController) DeleteRoomingGroup(c *gin.Context) {
	bookingID, err := portalBookingID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	groupID, _ := strconv.Atoi(c.Param("group_id"))

	var group models.RoomingGroup
	if err := pc.DB.Where("booking_id = ?", bookingID).First(&group, groupID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := pc.DB.Model(&models.Guest{}).
		Where("rooming_group_id = ?", group.ID).
		Update("rooming_group_id", nil).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := pc.DB.Delete(&group).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Rooming group deleted", gin.H{"group_id": group.ID})
}

// CreateGuest adds a named guest, initially unassigned.
func (pc *PortalController) CreateGuest(c *gin.Context) {
	bookingID, err := portalBookingID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req struct {
		Name    string `json:"name" binding:"required"`
		Dietary string `json:"dietary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	guest := models.Guest{BookingID: bookingID, Name: req.Name, Dietary: req.Dietary}
	if err := pc.DB.Create(&guest).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Guest added", guest)
}

// MoveGuest persists one drag-and-drop: the guest lands in the target group
// (or the unassigned pool) at the given position, and positions within the
// target group are re-sequenced. The portal client re-fetches after each
// move.
func (pc *PortalController) MoveGuest(c *gin.Context) {
	bookingID, err := portalBookingID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	guestID, _ := strconv.Atoi(c.Param("guest_id"))

	var req struct {
		GroupID  *uint `json:"group_id"` // nil = unassigned pool
		Position int   `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var guest models.Guest
	if err := pc.DB.Where("booking_id = ?", bookingID).First(&guest, guestID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.GroupID != nil {
		var group models.RoomingGroup
		if err := pc.DB.Where("booking_id = ?", bookingID).First(&group, *req.GroupID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
	}

	guest.RoomingGroupID = req.GroupID
	guest.Position = req.Position
	if err := pc.DB.Save(&guest).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Re-sequence the target group so positions stay dense.
	if req.GroupID != nil {
		var siblings []models.Guest
		if err := pc.DB.Where("rooming_group_id = ?", *req.GroupID).
			Order("position ASC, updated_at ASC").Find(&siblings).Error; err == nil {
			for i := range siblings {
				if siblings[i].Position != i {
					pc.DB.Model(&siblings[i]).Update("position", i)
				}
			}
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Guest moved", guest)
}

// DeleteGuest removes a guest from the booking.
func (pc *PortalController) DeleteGuest(c *gin.Context) {
	bookingID, err := portalBookingID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	guestID, _ := strconv.Atoi(c.Param("guest_id"))

	var guest models.Guest
	if err := pc.DB.Where("booking_id = ?", bookingID).First(&guest, guestID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := pc.DB.Delete(&guest).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Guest removed", gin.H{"guest_id": guest.ID})
}
