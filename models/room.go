package models

import "time"

type RoomType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Capacity  int       `gorm:"not null;default:1" json:"capacity"`
	Ensuite   bool      `gorm:"not null;default:false" json:"ensuite"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

type Room struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RoomNumber string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"room_number"`
	RoomTypeID uint      `gorm:"not null;index" json:"room_type_id"`
	RoomType   RoomType  `gorm:"foreignKey:RoomTypeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"room_type,omitempty"`
	Floor      int       `gorm:"not null;default:0" json:"floor"`
	Active     bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
