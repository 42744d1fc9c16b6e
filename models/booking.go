package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingPending         BookingStatus = "Pending"
	BookingInTriage        BookingStatus = "InTriage"
	BookingApproved        BookingStatus = "Approved"
	BookingConfirmed       BookingStatus = "Confirmed"
	BookingDepositPending  BookingStatus = "DepositPending"
	BookingDepositReceived BookingStatus = "DepositReceived"
	BookingInProgress      BookingStatus = "InProgress"
	BookingCompleted       BookingStatus = "Completed"
	BookingCancelled       BookingStatus = "Cancelled"
	BookingAwaitingDetails BookingStatus = "AwaitingDetails"
)

type Booking struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Reference     string        `gorm:"type:varchar(20);uniqueIndex;not null" json:"reference"`
	CustomerName  string        `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string        `gorm:"type:varchar(255);not null;index" json:"customer_email"`
	CustomerPhone string        `gorm:"type:varchar(50)" json:"customer_phone"`
	Organisation  string        `gorm:"type:varchar(255)" json:"organisation"`
	ArrivalDate   time.Time     `gorm:"not null;index" json:"arrival_date"`
	DepartureDate time.Time     `gorm:"not null;index" json:"departure_date"`
	Headcount     int           `gorm:"not null;default:1" json:"headcount"`
	Status        BookingStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	Catering      bool          `gorm:"not null;default:false" json:"catering"`
	Overnight     bool          `gorm:"not null;default:false" json:"overnight"`

	// Counts and preferences entered on the enquiry/portal form,
	// e.g. {"single":4,"twin":2,"byo_linen":true}.
	AccommodationRequests datatypes.JSON `gorm:"column:accommodation_requests" json:"accommodation_requests,omitempty"`

	QuotedAmount   float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"quoted_amount"`
	DiscountAmount float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"discount_amount"`
	FinalAmount    float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"final_amount"`

	// Custom pricing link. Only the sha256 of the token is stored; the hash
	// is nulled when the link is consumed so it can never be replayed.
	CustomLinkHash   *string    `gorm:"type:varchar(64)" json:"-"`
	CustomLinkExpiry *time.Time `json:"custom_link_expiry,omitempty"`

	// Guest self-service portal access, same hashing scheme.
	PortalTokenHash *string `gorm:"type:varchar(64);index" json:"-"`

	EnquiryID *uint    `gorm:"index" json:"enquiry_id,omitempty"`
	Enquiry   *Enquiry `gorm:"foreignKey:EnquiryID" json:"enquiry,omitempty"`

	SpaceReservations []SpaceReservation `gorm:"foreignKey:BookingID" json:"space_reservations,omitempty"`
	RoomAssignments   []RoomAssignment   `gorm:"foreignKey:BookingID" json:"room_assignments,omitempty"`
	MealJobs          []MealJob          `gorm:"foreignKey:BookingID" json:"meal_jobs,omitempty"`
	RoomingGroups     []RoomingGroup     `gorm:"foreignKey:BookingID" json:"rooming_groups,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// NewBookingReference generates a short display reference, e.g. HCC-4F9A2C1B.
func NewBookingReference() string {
	id := uuid.New().String()
	return "HCC-" + strings.ToUpper(id[:8])
}

// DisplayName combines organisation and customer name for staff-facing lists.
func (b *Booking) DisplayName() string {
	if b.Organisation != "" {
		return fmt.Sprintf("%s (%s)", b.Organisation, b.CustomerName)
	}
	return b.CustomerName
}

// IsCancelled reports whether the booking no longer holds its resources.
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingCancelled
}

// Nights returns the number of overnight stays.
func (b *Booking) Nights() int {
	n := int(b.DepartureDate.Sub(b.ArrivalDate).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
