package models

import "time"

const (
	RoomActionCleaned       = "cleaned"
	RoomActionSetupComplete = "setup_complete"
)

// RoomStatusLog is an append-only record of operator actions on a room for a
// given calendar date. Logs override the date-derived default room state.
type RoomStatusLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RoomID     uint      `gorm:"not null;index" json:"room_id"`
	Room       Room      `gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ActionDate time.Time `gorm:"type:date;not null;index" json:"action_date"`
	ActionType string    `gorm:"type:varchar(20);not null" json:"action_type"` // cleaned | setup_complete
	RecordedBy uint      `gorm:"not null" json:"recorded_by"`
	User       User      `gorm:"foreignKey:RecordedBy;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
