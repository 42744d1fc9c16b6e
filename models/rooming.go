package models

import "time"

// RoomingGroup is the customer-facing grouping of named guests into rooms,
// managed from the portal via drag-and-drop. It is kept independent of
// RoomAssignment, which staff manage separately.
type RoomingGroup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookingID uint      `gorm:"not null;index" json:"booking_id"`
	Booking   Booking   `gorm:"foreignKey:BookingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	RoomID    *uint     `gorm:"index" json:"room_id,omitempty"`
	Room      *Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Guests    []Guest   `gorm:"foreignKey:RoomingGroupID" json:"guests,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

type Guest struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	BookingID      uint      `gorm:"not null;index" json:"booking_id"`
	RoomingGroupID *uint     `gorm:"index" json:"rooming_group_id,omitempty"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Dietary        string    `gorm:"type:varchar(255)" json:"dietary,omitempty"`
	Position       int       `gorm:"not null;default:0" json:"position"` // sort order within group
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}
