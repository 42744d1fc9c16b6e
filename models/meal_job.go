package models

import (
	"time"

	"gorm.io/datatypes"
)

type MealJobStatus string

const (
	MealJobDraft     MealJobStatus = "Draft"
	MealJobAssigned  MealJobStatus = "Assigned"
	MealJobConfirmed MealJobStatus = "Confirmed"
	MealJobInPrep    MealJobStatus = "InPrep"
	MealJobServed    MealJobStatus = "Served"
	MealJobCancelled MealJobStatus = "Cancelled"
)

type MealJob struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	BookingID   uint           `gorm:"not null;index" json:"booking_id"`
	Booking     Booking        `gorm:"foreignKey:BookingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MealType    string         `gorm:"type:varchar(50);not null" json:"meal_type"` // breakfast, lunch, dinner, tea
	ServiceDate time.Time      `gorm:"type:date;not null;index" json:"service_date"`
	ServiceTime string         `gorm:"type:varchar(5);not null" json:"service_time"` // "15:04"
	CatererID   *uint          `gorm:"index" json:"caterer_id,omitempty"`
	Caterer     *Caterer       `gorm:"foreignKey:CatererID" json:"caterer,omitempty"`
	MenuItems   datatypes.JSON `gorm:"column:menu_items" json:"menu_items,omitempty"` // JSON array
	Headcount   int            `gorm:"not null;default:0" json:"headcount"`
	Status      MealJobStatus  `gorm:"type:varchar(20);not null;default:'Draft';index" json:"status"`
	Comments    []MealJobComment `gorm:"foreignKey:MealJobID" json:"comments,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

type MealJobComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MealJobID uint      `gorm:"not null;index" json:"meal_job_id"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"author,omitempty"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
