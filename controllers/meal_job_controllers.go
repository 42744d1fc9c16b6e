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
	"github.com/holycrosscentre/booking-portal/utils"
)

type MealJobController struct {
	DB *gorm.DB
}

func NewMealJobController(db *gorm.DB) *MealJobController {
	return &MealJobController{DB: db}
}

// GetAllMealJobs -> catering board, optionally filtered by date or status.
func (mc *MealJobController) GetAllMealJobs(c *gin.Context) {
	query := mc.DB.Preload("Caterer").Order("service_date ASC, service_time ASC")
	if date := c.Query("date"); date != "" {
		if d, err := time.Parse("2006-01-02", date); err == nil {
			query = query.Where("service_date = ?", d)
		}
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var jobs []models.MealJob
	if err := query.Find(&jobs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of meal jobs", jobs)
}

// CreateMealJob attaches a catering job to a booking.
func (mc *MealJobController) CreateMealJob(c *gin.Context) {
	bookingID, _ := strconv.Atoi(c.Param("booking_id"))
	var req struct {
		MealType    string   `json:"meal_type" binding:"required"`
		ServiceDate string   `json:"service_date" binding:"required"`
		ServiceTime string   `json:"service_time" binding:"required"`
		CatererID   *uint    `json:"caterer_id"`
		MenuItems   []string `json:"menu_items"`
		Headcount   int      `json:"headcount"`
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

	var booking models.Booking
	if err := mc.DB.First(&booking, bookingID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	headcount := req.Headcount
	if headcount == 0 {
		headcount = booking.Headcount
	}

	job := models.MealJob{
		BookingID:   booking.ID,
		MealType:    req.MealType,
		ServiceDate: serviceDate,
		ServiceTime: req.ServiceTime,
		CatererID:   req.CatererID,
		Headcount:   headcount,
		Status:      models.MealJobDraft,
	}
	if req.CatererID != nil {
		job.Status = models.MealJobAssigned
	}
	if req.MenuItems != nil {
		raw, _ := json.Marshal(req.MenuItems)
		job.MenuItems = datatypes.JSON(raw)
	}

	if err := mc.DB.Create(&job).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Meal job %d (%s) created for booking %s", job.ID, job.MealType, booking.Reference)
	utils.RespondJSON(c, http.StatusCreated, "Meal job created", job)
}

// GetMealJobByID -> detail with comment thread.
func (mc *MealJobController) GetMealJobByID(c *gin.Context) {
	id := c.Param("job_id")

	var job models.MealJob
	if err := mc.DB.Preload("Caterer").Preload("Comments").Preload("Comments.Author").First(&job, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Meal job detail", job)
}

// UpdateMealJob patches assignment, menu and status.
func (mc *MealJobController) UpdateMealJob(c *gin.Context) {
	id := c.Param("job_id")
	var body struct {
		CatererID   *uint                 `json:"caterer_id"`
		ServiceTime *string               `json:"service_time"`
		MenuItems   []string              `json:"menu_items"`
		Headcount   *int                  `json:"headcount"`
		Status      *models.MealJobStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var job models.MealJob
	if err := mc.DB.First(&job, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.CatererID != nil {
		job.CatererID = body.CatererID
		if job.Status == models.MealJobDraft {
			job.Status = models.MealJobAssigned
		}
	}
	if body.ServiceTime != nil {
		job.ServiceTime = *body.ServiceTime
	}
	if body.MenuItems != nil {
		raw, _ := json.Marshal(body.MenuItems)
		job.MenuItems = datatypes.JSON(raw)
	}
	if body.Headcount != nil {
		job.Headcount = *body.Headcount
	}
	if body.Status != nil {
		job.Status = *body.Status
	}

	if err := mc.DB.Save(&job).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Meal job updated", job)
}

// AddComment appends to the meal job comment thread.
func (mc *MealJobController) AddComment(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("job_id"))
	var body struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID, _ := c.Get("user_id")
	authorID, _ := userID.(uint)

	comment := models.MealJobComment{
		MealJobID: uint(id),
		AuthorID:  authorID,
		Body:      body.Body,
	}
	if err := mc.DB.Create(&comment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Comment added", comment)
}

// DeleteMealJob removes a job outright (drafts only; otherwise cancel).
func (mc *MealJobController) DeleteMealJob(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("job_id"))

	var job models.MealJob
	if err := mc.DB.First(&job, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if job.Status != models.MealJobDraft {
		job.Status = models.MealJobCancelled
		if err := mc.DB.Save(&job).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Meal job cancelled", job)
		return
	}

	if err := mc.DB.Delete(&job).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Meal job deleted", gin.H{"job_id": id})
}

// CatererController manages the caterer directory.
type CatererController struct {
	DB *gorm.DB
}

func NewCatererController(db *gorm.DB) *CatererController {
	return &CatererController{DB: db}
}

func (cc *CatererController) GetAllCaterers(c *gin.Context) {
	var caterers []models.Caterer
	if err := cc.DB.Where("active = ?", true).Find(&caterers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of caterers", caterers)
}

func (cc *CatererController) CreateCaterer(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		ContactEmail string `json:"contact_email"`
		ContactPhone string `json:"contact_phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	caterer := models.Caterer{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Active:       true,
	}
	if err := cc.DB.Create(&caterer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Caterer created", caterer)
}
