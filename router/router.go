package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/holycrosscentre/booking-portal/controllers"
	"github.com/holycrosscentre/booking-portal/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	enquiryCtrl := controllers.NewEnquiryController(db)
	bookingCtrl := controllers.NewBookingController(db)
	spaceCtrl := controllers.NewSpaceController(db)
	roomCtrl := controllers.NewRoomController(db)
	mealJobCtrl := controllers.NewMealJobController(db)
	catererCtrl := controllers.NewCatererController(db)
	portalCtrl := controllers.NewPortalController(db)
	adminCtrl := controllers.NewAdminController(db)

	// Per-endpoint sliding windows for the public forms.
	enquiryLimiter := middlewares.NewRateLimiter("enquiry", 5, 15*time.Minute)
	bookingLimiter := middlewares.NewRateLimiter("booking", 3, 15*time.Minute)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.GET("/spaces", spaceCtrl.GetAllSpaces)
	r.GET("/room-types", roomCtrl.GetRoomTypes)

	r.POST("/enquiries", enquiryLimiter.RateLimit(), enquiryCtrl.CreateEnquiry)
	r.POST("/bookings", bookingLimiter.RateLimit(), bookingCtrl.CreateBooking)

	// One-time custom pricing links.
	r.GET("/bookings/link/:token", bookingCtrl.ResolveCustomLink)
	r.POST("/bookings/link/:token", bookingCtrl.AcceptCustomLink)

	// ----------------------------------------------------------------
	//                      CUSTOMER PORTAL
	// ----------------------------------------------------------------
	portal := r.Group("/portal")
	portal.Use(middlewares.PortalAuthMiddleware(db))
	{
		portal.GET("/booking", portalCtrl.GetBooking)
		portal.PATCH("/booking/details", portalCtrl.UpdateDetails)

		portal.POST("/rooming/groups", portalCtrl.CreateRoomingGroup)
		portal.DELETE("/rooming/groups/:group_id", portalCtrl.DeleteRoomingGroup)
		portal.POST("/rooming/guests", portalCtrl.CreateGuest)
		portal.PATCH("/rooming/guests/:guest_id/move", portalCtrl.MoveGuest)
		portal.DELETE("/rooming/guests/:guest_id", portalCtrl.DeleteGuest)
	}

	// ----------------------------------------------------------------
	//                      STAFF ROUTES
	// ----------------------------------------------------------------
	r.POST("/staff/login", middlewares.NewStrictRateLimiter(), userCtrl.Login)

	staff := r.Group("/staff")
	staff.Use(middlewares.AuthMiddleware())

	staff.GET("/profile", userCtrl.GetProfile)
	staff.GET("/users", userCtrl.GetAllUsers)
	staff.POST("/register", middlewares.RequireRole(), userCtrl.Register) // admin only

	// ENQUIRIES
	staff.GET("/enquiries", enquiryCtrl.GetAllEnquiries)
	staff.GET("/enquiries/:enquiry_id", enquiryCtrl.GetEnquiryByID)
	staff.PATCH("/enquiries/:enquiry_id", enquiryCtrl.UpdateEnquiryStatus)
	staff.POST("/enquiries/:enquiry_id/notes", enquiryCtrl.AddNote)
	staff.POST("/enquiries/:enquiry_id/quotes", enquiryCtrl.AddQuote)
	staff.POST("/enquiries/:enquiry_id/convert", enquiryCtrl.ConvertEnquiry)

	// BOOKINGS
	staff.GET("/bookings", bookingCtrl.GetAllBookings)
	staff.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
	staff.PATCH("/bookings/:booking_id", bookingCtrl.UpdateBooking)
	staff.POST("/bookings/:booking_id/approve", bookingCtrl.ApproveBooking)
	staff.POST("/bookings/:booking_id/confirm", bookingCtrl.ConfirmBooking)
	staff.POST("/bookings/:booking_id/deposit", bookingCtrl.RecordDeposit)
	staff.POST("/bookings/:booking_id/cancel", bookingCtrl.CancelBooking)
	staff.POST("/bookings/:booking_id/custom-link", bookingCtrl.IssueCustomLink)
	staff.GET("/bookings/:booking_id/conflicts", bookingCtrl.GetConflicts)

	// SPACE RESERVATIONS
	staff.GET("/bookings/:booking_id/reservations", spaceCtrl.GetReservations)
	staff.POST("/bookings/:booking_id/reservations", spaceCtrl.CreateReservation)
	staff.DELETE("/reservations/:reservation_id", spaceCtrl.DeleteReservation)
	staff.POST("/spaces", spaceCtrl.CreateSpace)
	staff.PATCH("/spaces/:space_id", spaceCtrl.UpdateSpace)

	// ROOMS
	staff.GET("/rooms", roomCtrl.GetAllRooms)
	staff.POST("/rooms", roomCtrl.CreateRoom)
	staff.GET("/bookings/:booking_id/assignments", roomCtrl.GetAssignments)
	staff.POST("/bookings/:booking_id/assignments", roomCtrl.CreateAssignment)
	staff.DELETE("/assignments/:assignment_id", roomCtrl.DeleteAssignment)

	// Room status board (operations, staff, admin).
	staff.GET("/rooms/status", middlewares.RequireRole("staff", "operations"), roomCtrl.GetRoomStatusBoard)
	staff.POST("/rooms/:room_id/actions", middlewares.RequireRole("staff", "operations"), roomCtrl.RecordRoomAction)

	// MEAL JOBS
	staff.GET("/meal-jobs", mealJobCtrl.GetAllMealJobs)
	staff.GET("/meal-jobs/:job_id", mealJobCtrl.GetMealJobByID)
	staff.PATCH("/meal-jobs/:job_id", mealJobCtrl.UpdateMealJob)
	staff.DELETE("/meal-jobs/:job_id", mealJobCtrl.DeleteMealJob)
	staff.POST("/meal-jobs/:job_id/comments", mealJobCtrl.AddComment)
	staff.POST("/bookings/:booking_id/meal-jobs", mealJobCtrl.CreateMealJob)
	staff.GET("/caterers", catererCtrl.GetAllCaterers)
	staff.POST("/caterers", catererCtrl.CreateCaterer)

	// DASHBOARD
	staff.GET("/dashboard/stats", adminCtrl.GetDashboardStats)

	return r
}
