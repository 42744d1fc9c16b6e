package models

import "time"

type Caterer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	ContactEmail string    `gorm:"type:varchar(255)" json:"contact_email"`
	ContactPhone string    `gorm:"type:varchar(50)" json:"contact_phone"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
