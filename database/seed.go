package database

import (
	"gorm.io/gorm"

	"github.com/holycrosscentre/booking-portal/models"
	"github.com/holycrosscentre/booking-portal/utils"
)

// Seed creates the venue's spaces, room types and rooms on first run. It is
// idempotent: rows are only inserted when their table is empty.
func Seed(db *gorm.DB) error {
	var spaceCount int64
	if err := db.Model(&models.Space{}).Count(&spaceCount).Error; err != nil {
		return err
	}
	if spaceCount == 0 {
		spaces := []models.Space{
			{Name: "Chapel", Capacity: 120, Active: true},
			{Name: "Main Hall", Capacity: 80, Active: true},
			{Name: "Dining Room", Capacity: 60, Active: true},
			{Name: "Library", Capacity: 20, Active: true},
			{Name: "Garden Room", Capacity: 30, Active: true},
		}
		if err := db.Create(&spaces).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded %d venue spaces", len(spaces))
	}

	var typeCount int64
	if err := db.Model(&models.RoomType{}).Count(&typeCount).Error; err != nil {
		return err
	}
	if typeCount == 0 {
		types := []models.RoomType{
			{Name: "Single", Capacity: 1},
			{Name: "Twin", Capacity: 2},
			{Name: "Double Ensuite", Capacity: 2, Ensuite: true},
		}
		if err := db.Create(&types).Error; err != nil {
			return err
		}

		var rooms []models.Room
		for i := 1; i <= 10; i++ {
			typeID := types[0].ID
			if i > 6 {
				typeID = types[1].ID
			}
			if i > 8 {
				typeID = types[2].ID
			}
			rooms = append(rooms, models.Room{
				RoomNumber: roomNumber(i),
				RoomTypeID: typeID,
				Floor:      (i-1)/5 + 1,
				Active:     true,
			})
		}
		if err := db.Create(&rooms).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("Seeded %d room types and %d rooms", len(types), len(rooms))
	}

	return nil
}

func roomNumber(i int) string {
	floor := (i-1)/5 + 1
	return string(rune('0'+floor)) + "0" + string(rune('0'+(i-1)%5+1))
}
