package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/holycrosscentre/booking-portal/models"
	"github.com/holycrosscentre/booking-portal/services"
	"github.com/holycrosscentre/booking-portal/utils"
)

type EnquiryController struct {
	DB *gorm.DB
}

func NewEnquiryController(db *gorm.DB) *EnquiryController {
	return &EnquiryController{DB: db}
}

// CreateEnquiry handles the public enquiry form.
func (ec *EnquiryController) CreateEnquiry(c *gin.Context) {
	type request struct {
		utils.BotCheckFields
		CustomerName  string `json:"customer_name" binding:"required"`
		CustomerEmail string `json:"customer_email" binding:"required,email"`
		CustomerPhone string `json:"customer_phone"`
		Organisation  string `json:"organisation"`
		EventType     string `json:"event_type"`
		PreferredFrom string `json:"preferred_from"` // YYYY-MM-DD
		PreferredTo   string `json:"preferred_to"`
		Headcount     int    `json:"headcount" binding:"required,min=1"`
		Message       string `json:"message"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := utils.CheckBot(req.BotCheckFields); err != nil {
		utils.InfoLogger.Printf("Enquiry submission rejected by bot check from %s", c.ClientIP())
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	enquiry := models.Enquiry{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Organisation:  req.Organisation,
		EventType:     req.EventType,
		Headcount:     req.Headcount,
		Message:       req.Message,
		Status:        models.EnquiryNew,
	}
	if from, err := time.Parse("2006-01-02", req.PreferredFrom); err == nil {
		enquiry.PreferredFrom = &from
	}
	if to, err := time.Parse("2006-01-02", req.PreferredTo); err == nil {
		enquiry.PreferredTo = &to
	}

	if err := ec.DB.Create(&enquiry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New enquiry #%d from %s", enquiry.ID, enquiry.CustomerEmail)
	services.GetMailerService().SendEnquiryReceipt(&enquiry)

	utils.RespondJSON(c, http.StatusCreated, "Enquiry received", gin.H{
		"enquiry_id": enquiry.ID,
	})
}

// GetAllEnquiries -> staff triage list, optionally filtered by status.
func (ec *EnquiryController) GetAllEnquiries(c *gin.Context) {
	query := ec.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var enquiries []models.Enquiry
	if err := query.Find(&enquiries).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of enquiries", enquiries)
}

// GetEnquiryByID -> detail with notes and quotes.
func (ec *EnquiryController) GetEnquiryByID(c *gin.Context) {
	id := c.Param("enquiry_id")

	var enquiry models.Enquiry
	if err := ec.DB.Preload("Notes").Preload("Notes.Author").Preload("Quotes").First(&enquiry, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Enquiry detail", enquiry)
}

// UpdateEnquiryStatus walks the enquiry pipeline.
func (ec *EnquiryController) UpdateEnquiryStatus(c *gin.Context) {
	id := c.Param("enquiry_id")
	var body struct {
		Status models.EnquiryStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var enquiry models.Enquiry
	if err := ec.DB.First(&enquiry, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	enquiry.Status = body.Status
	if err := ec.DB.Save(&enquiry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Enquiry %d status changed to %s", enquiry.ID, enquiry.Status)
	utils.RespondJSON(c, http.StatusOK, "Enquiry status updated", enquiry)
}

// AddNote appends a staff note to the enquiry thread.
func (ec *EnquiryController) AddNote(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("enquiry_id"))
	var body struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID, _ := c.Get("user_id")
	authorID, _ := userID.(uint)

	note := models.EnquiryNote{
		EnquiryID: uint(id),
		AuthorID:  authorID,
		Body:      body.Body,
	}
	if err := ec.DB.Create(&note).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Note added", note)
}

// AddQuote records a quote and moves the enquiry to quoted.
func (ec *EnquiryController) AddQuote(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("enquiry_id"))
	var body struct {
		Amount  float64 `json:"amount" binding:"required,gt=0"`
		Details string  `json:"details"`
		ValidTo string  `json:"valid_to"` // YYYY-MM-DD
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var enquiry models.Enquiry
	if err := ec.DB.First(&enquiry, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	quote := models.EnquiryQuote{
		EnquiryID: enquiry.ID,
		Amount:    body.Amount,
		Details:   body.Details,
	}
	if validTo, err := time.Parse("2006-01-02", body.ValidTo); err == nil {
		quote.ValidTo = &validTo
	}

	if err := ec.DB.Create(&quote).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if enquiry.Status == models.EnquiryNew || enquiry.Status == models.EnquiryInDiscussion {
		enquiry.Status = models.EnquiryQuoted
		ec.DB.Save(&enquiry)
	}

	utils.InfoLogger.Printf("Quote of %s added to enquiry %d", utils.FormatCurrency(quote.Amount), enquiry.ID)
	utils.RespondJSON(c, http.StatusCreated, "Quote added", quote)
}

// ConvertEnquiry turns a ready enquiry into a booking in triage.
func (ec *EnquiryController) ConvertEnquiry(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("enquiry_id"))
	var body struct {
		ArrivalDate   string `json:"arrival_date" binding:"required"`
		DepartureDate string `json:"departure_date" binding:"required"`
		Overnight     bool   `json:"overnight"`
		Catering      bool   `json:"catering"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	arrival, err := time.Parse("2006-01-02", body.ArrivalDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	departure, err := time.Parse("2006-01-02", body.DepartureDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !arrival.Before(departure) && !arrival.Equal(departure) {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidDateRange)
		return
	}

	svc := services.NewBookingService(ec.DB)
	booking, err := svc.ConvertEnquiry(uint(id), arrival, departure, body.Overnight, body.Catering)
	if err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Enquiry converted to booking", booking)
}

// ErrInvalidDateRange guards create/convert forms.
var ErrInvalidDateRange = &CustomError{"departure must not be before arrival"}
