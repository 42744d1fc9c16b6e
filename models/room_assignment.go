package models

import (
	"time"

	"gorm.io/datatypes"
)

// RoomAssignment is a booking's claim on an overnight room for its whole
// stay. There is deliberately no per-night row; the date range comes from
// the parent booking.
type RoomAssignment struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	BookingID    uint           `gorm:"not null;index" json:"booking_id"`
	Booking      Booking        `gorm:"foreignKey:BookingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	RoomID       uint           `gorm:"not null;index" json:"room_id"`
	Room         Room           `gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"room,omitempty"`
	GuestNames   datatypes.JSON `gorm:"column:guest_names" json:"guest_names,omitempty"` // JSON array of names
	ExtraBed     bool           `gorm:"not null;default:false" json:"extra_bed"`
	Ensuite      bool           `gorm:"not null;default:false" json:"ensuite"`
	PrivateStudy bool           `gorm:"not null;default:false" json:"private_study"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}
