package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/holycrosscentre/booking-portal/models"
	"github.com/holycrosscentre/booking-portal/scheduling"
	"github.com/holycrosscentre/booking-portal/utils"
)

type RoomController struct {
	DB *gorm.DB
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{DB: db}
}

// GetRoomTypes lists room types; the public form shows them.
func (rc *RoomController) GetRoomTypes(c *gin.Context) {
	var types []models.RoomType
	if err := rc.DB.Find(&types).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of room types", types)
}

// GetAllRooms -> staff room list.
func (rc *RoomController) GetAllRooms(c *gin.Context) {
	var rooms []models.Room
	if err := rc.DB.Preload("RoomType").Where("active = ?", true).Find(&rooms).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of rooms", rooms)
}

// CreateRoom -> admin venue management.
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req struct {
		RoomNumber string `json:"room_number" binding:"required"`
		RoomTypeID uint   `json:"room_type_id" binding:"required"`
		Floor      int    `json:"floor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	room := models.Room{
		RoomNumber: req.RoomNumber,
		RoomTypeID: req.RoomTypeID,
		Floor:      req.Floor,
		Active:     true,
	}
	if err := rc.DB.Create(&room).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New room created: %s", room.RoomNumber)
	utils.RespondJSON(c, http.StatusCreated, "Room created successfully", room)
}

// CreateAssignment assigns a room to a booking for its whole stay.
func (rc *RoomController) CreateAssignment(c *gin.Context) {
	bookingID, _ := strconv.Atoi(c.Param("booking_id"))
	var req struct {
		RoomID       uint     `json:"room_id" binding:"required"`
		GuestNames   []string `json:"guest_names"`
		ExtraBed     bool     `json:"extra_bed"`
		Ensuite      bool     `json:"ensuite"`
		PrivateStudy bool     `json:"private_study"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var booking models.Booking
	if err := rc.DB.First(&booking, bookingID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if !booking.Overnight {
		utils.RespondError(c, http.StatusBadRequest, errors.New("booking has no overnight component"))
		return
	}

	assignment := models.RoomAssignment{
		BookingID:    booking.ID,
		RoomID:       req.RoomID,
		ExtraBed:     req.ExtraBed,
		Ensuite:      req.Ensuite,
		PrivateStudy: req.PrivateStudy,
	}
	if req.GuestNames != nil {
		raw, _ := json.Marshal(req.GuestNames)
		assignment.GuestNames = datatypes.JSON(raw)
	}

	if err := rc.DB.Create(&assignment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Room %d assigned to booking %s", req.RoomID, booking.Reference)
	utils.RespondJSON(c, http.StatusCreated, "Room assignment created", assignment)
}

// GetAssignments lists a booking's room assignments.
func (rc *RoomController) GetAssignments(c *gin.Context) {
	bookingID := c.Param("booking_id")

	var assignments []models.RoomAssignment
	if err := rc.DB.Preload("Room").Preload("Room.RoomType").
		Where("booking_id = ?", bookingID).Find(&assignments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Room assignments", assignments)
}

// DeleteAssignment removes one assignment row.
func (rc *RoomController) DeleteAssignment(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("assignment_id"))

	if err := rc.DB.Delete(&models.RoomAssignment{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Room assignment deleted", gin.H{"assignment_id": id})
}

// GetRoomStatusBoard derives the state of every active room for the selected
// date. Everything is re-read fresh per request; the derivation itself is
// pure.
func (rc *RoomController) GetRoomStatusBoard(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = time.Now().Format("2006-01-02")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var rooms []models.Room
	if err := rc.DB.Where("active = ?", true).Order("room_number ASC").Find(&rooms).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var assignments []models.RoomAssignment
	if err := rc.DB.Joins("Booking").
		Where("Booking.status <> ?", models.BookingCancelled).
		Find(&assignments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var logs []models.RoomStatusLog
	if err := rc.DB.Where("action_date = ?", date).Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	staysByRoom := make(map[uint][]scheduling.Stay)
	for _, a := range assignments {
		staysByRoom[a.RoomID] = append(staysByRoom[a.RoomID], stayFromAssignment(a))
	}
	logsByRoom := make(map[uint][]scheduling.LogEntry)
	for _, l := range logs {
		logsByRoom[l.RoomID] = append(logsByRoom[l.RoomID], scheduling.LogEntry{ActionType: l.ActionType})
	}

	reports := make([]scheduling.RoomReport, 0, len(rooms))
	for _, room := range rooms {
		reports = append(reports, scheduling.DeriveRoomStatus(
			date, room.ID, room.RoomNumber, staysByRoom[room.ID], logsByRoom[room.ID]))
	}

	utils.RespondJSON(c, http.StatusOK, "Room status for "+dateStr, reports)
}

// RecordRoomAction appends a cleaned/setup_complete log for a room and date.
func (rc *RoomController) RecordRoomAction(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("room_id"))
	var req struct {
		ActionType string `json:"action_type" binding:"required"` // cleaned | setup_complete
		ActionDate string `json:"action_date"`                    // defaults to today
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.ActionType != models.RoomActionCleaned && req.ActionType != models.RoomActionSetupComplete {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown action type"))
		return
	}

	// Default to the local calendar date, stored the same way the board
	// query parses its ?date= parameter (midnight UTC).
	now := time.Now()
	actionDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if req.ActionDate != "" {
		d, err := time.Parse("2006-01-02", req.ActionDate)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		actionDate = d
	}

	var room models.Room
	if err := rc.DB.First(&room, roomID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	userID, _ := c.Get("user_id")
	recordedBy, _ := userID.(uint)

	logEntry := models.RoomStatusLog{
		RoomID:     room.ID,
		ActionDate: actionDate,
		ActionType: req.ActionType,
		RecordedBy: recordedBy,
	}
	if err := rc.DB.Create(&logEntry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Room %s marked %s for %s", room.RoomNumber, req.ActionType, actionDate.Format("2006-01-02"))
	utils.RespondJSON(c, http.StatusCreated, "Room action recorded", logEntry)
}

// stayFromAssignment flattens an assignment and its booking for the status
// deriver, pulling byo_linen out of the accommodation_requests blob.
func stayFromAssignment(a models.RoomAssignment) scheduling.Stay {
	stay := scheduling.Stay{
		BookingID:    a.BookingID,
		BookingName:  a.Booking.DisplayName(),
		Cancelled:    a.Booking.IsCancelled(),
		Arrival:      a.Booking.ArrivalDate,
		Departure:    a.Booking.DepartureDate,
		ExtraBed:     a.ExtraBed,
		Ensuite:      a.Ensuite,
		PrivateStudy: a.PrivateStudy,
	}

	if len(a.GuestNames) > 0 {
		var names []string
		if err := json.Unmarshal(a.GuestNames, &names); err == nil {
			stay.GuestNames = names
		}
	}

	if len(a.Booking.AccommodationRequests) > 0 {
		var requests map[string]interface{}
		if err := json.Unmarshal(a.Booking.AccommodationRequests, &requests); err == nil {
			if byo, ok := requests["byo_linen"].(bool); ok {
				stay.BYOLinen = byo
			}
		}
	}

	return stay
}
