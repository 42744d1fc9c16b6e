package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/holycrosscentre/booking-portal/config"
	"github.com/holycrosscentre/booking-portal/database"
	"github.com/holycrosscentre/booking-portal/models"
	"github.com/holycrosscentre/booking-portal/router"
	"github.com/holycrosscentre/booking-portal/services"
	"github.com/holycrosscentre/booking-portal/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	// Warn early about missing configuration rather than failing mid-request.
	requiredEnvVars := []string{
		"DB_HOST",
		"DB_USER",
		"DB_PASSWORD",
		"DB_NAME",
		"JWT_SECRET",
		"SMTP_HOST",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" {
			log.Printf("Warning: environment variable %s is not set", envVar)
		}
	}

	utils.InfoLogger = logrus.New()
	utils.ErrorLogger = logrus.New()

	utils.InfoLogger.SetOutput(os.Stdout)
	utils.ErrorLogger.SetOutput(os.Stderr)

	utils.InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
	utils.ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Warm the mailer singleton so config warnings show at startup.
	services.GetMailerService()

	r := router.SetupRouter(db)

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Space{},
		&models.RoomType{},
		&models.Room{},
		&models.Enquiry{},
		&models.EnquiryNote{},
		&models.EnquiryQuote{},
		&models.Booking{},
		&models.SpaceReservation{},
		&models.RoomAssignment{},
		&models.RoomStatusLog{},
		&models.Caterer{},
		&models.MealJob{},
		&models.MealJobComment{},
		&models.RoomingGroup{},
		&models.Guest{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if err := database.Seed(db); err != nil {
		utils.ErrorLogger.Printf("Error seeding venue data: %v", err)
	}
}
