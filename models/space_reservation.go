package models

import "time"

// SpaceReservation is one booking's claim on a shared space for part of a
// day. One row per (booking, space, day); nil times mean the whole day.
// Note the granularity difference with RoomAssignment, which covers the
// whole stay in a single row.
type SpaceReservation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BookingID   uint      `gorm:"not null;index" json:"booking_id"`
	Booking     Booking   `gorm:"foreignKey:BookingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	SpaceID     uint      `gorm:"not null;index" json:"space_id"`
	Space       Space     `gorm:"foreignKey:SpaceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"space,omitempty"`
	ServiceDate time.Time `gorm:"type:date;not null;index" json:"service_date"`
	StartTime   *string   `gorm:"type:varchar(5)" json:"start_time,omitempty"` // "15:04", nil = from 00:00
	EndTime     *string   `gorm:"type:varchar(5)" json:"end_time,omitempty"`   // "15:04", nil = until 23:59
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
