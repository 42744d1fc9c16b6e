package models

import "time"

type EnquiryStatus string

const (
	EnquiryNew          EnquiryStatus = "new"
	EnquiryInDiscussion EnquiryStatus = "in_discussion"
	EnquiryQuoted       EnquiryStatus = "quoted"
	EnquiryReadyToBook  EnquiryStatus = "ready_to_book"
	EnquiryConverted    EnquiryStatus = "converted_to_booking"
	EnquiryLost         EnquiryStatus = "lost"
)

type Enquiry struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	CustomerName  string        `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string        `gorm:"type:varchar(255);not null;index" json:"customer_email"`
	CustomerPhone string        `gorm:"type:varchar(50)" json:"customer_phone"`
	Organisation  string        `gorm:"type:varchar(255)" json:"organisation"`
	EventType     string        `gorm:"type:varchar(100)" json:"event_type"`
	PreferredFrom *time.Time    `gorm:"type:date" json:"preferred_from,omitempty"`
	PreferredTo   *time.Time    `gorm:"type:date" json:"preferred_to,omitempty"`
	Headcount     int           `gorm:"not null;default:1" json:"headcount"`
	Message       string        `gorm:"type:text" json:"message"`
	Status        EnquiryStatus `gorm:"type:varchar(30);not null;default:'new';index" json:"status"`
	Notes         []EnquiryNote `gorm:"foreignKey:EnquiryID" json:"notes,omitempty"`
	Quotes        []EnquiryQuote `gorm:"foreignKey:EnquiryID" json:"quotes,omitempty"`
	CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
}

type EnquiryNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EnquiryID uint      `gorm:"not null;index" json:"enquiry_id"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"author,omitempty"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type EnquiryQuote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EnquiryID uint      `gorm:"not null;index" json:"enquiry_id"`
	Amount    float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Details   string    `gorm:"type:text" json:"details"`
	ValidTo   *time.Time `gorm:"type:date" json:"valid_to,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
