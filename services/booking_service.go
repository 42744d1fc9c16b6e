package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/holycrosscentre/booking-portal/models"
	"github.com/holycrosscentre/booking-portal/utils"
)

// BookingService owns the multi-step booking flows: status transitions,
// portal token provisioning and the follow-up email. The DB write commits
// first; the email is best-effort and never rolls it back.
type BookingService struct {
	db     *gorm.DB
	mailer *MailerService
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{
		db:     db,
		mailer: GetMailerService(),
	}
}

// Approve moves a booking out of triage, provisions portal access and emails
// the customer their portal link.
func (s *BookingService) Approve(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		return nil, fmt.Errorf("booking %s is cancelled", booking.Reference)
	}

	token, err := utils.GenerateLinkToken()
	if err != nil {
		return nil, err
	}
	hash := utils.HashToken(token)

	booking.Status = models.BookingApproved
	booking.PortalTokenHash = &hash
	if err := s.db.Save(&booking).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Booking %s approved", booking.Reference)
	s.mailer.SendBookingConfirmation(&booking, token)
	return &booking, nil
}

// Confirm marks an approved booking as confirmed.
func (s *BookingService) Confirm(bookingID uint) (*models.Booking, error) {
	return s.transition(bookingID, models.BookingConfirmed)
}

// RecordDeposit walks the deposit sub-states.
func (s *BookingService) RecordDeposit(bookingID uint, received bool) (*models.Booking, error) {
	status := models.BookingDepositPending
	if received {
		status = models.BookingDepositReceived
	}
	return s.transition(bookingID, status)
}

// Cancel releases the booking's claim on every resource. Rows stay in place;
// the conflict detectors and status board skip cancelled bookings.
func (s *BookingService) Cancel(bookingID uint) (*models.Booking, error) {
	return s.transition(bookingID, models.BookingCancelled)
}

func (s *BookingService) transition(bookingID uint, status models.BookingStatus) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		return nil, err
	}

	if booking.IsCancelled() && status != models.BookingCancelled {
		return nil, fmt.Errorf("booking %s is cancelled", booking.Reference)
	}

	booking.Status = status
	if err := s.db.Save(&booking).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Booking %s status changed to %s", booking.Reference, status)
	return &booking, nil
}

// IssueCustomLink creates a one-time pricing link for the booking and emails
// it to the customer. Expiry defaults to 14 days.
func (s *BookingService) IssueCustomLink(bookingID uint, finalAmount, discount float64, validFor time.Duration) (*models.Booking, string, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		return nil, "", err
	}

	if booking.IsCancelled() {
		return nil, "", fmt.Errorf("booking %s is cancelled", booking.Reference)
	}

	token, err := utils.GenerateLinkToken()
	if err != nil {
		return nil, "", err
	}
	hash := utils.HashToken(token)

	if validFor <= 0 {
		validFor = 14 * 24 * time.Hour
	}
	expiry := time.Now().Add(validFor)

	booking.DiscountAmount = discount
	booking.FinalAmount = finalAmount
	booking.CustomLinkHash = &hash
	booking.CustomLinkExpiry = &expiry
	if err := s.db.Save(&booking).Error; err != nil {
		return nil, "", err
	}

	utils.InfoLogger.Printf("Custom link issued for booking %s (expires %s)", booking.Reference, expiry.Format(time.RFC3339))
	s.mailer.SendCustomLink(&booking, token)
	return &booking, token, nil
}

// ResolveCustomLink validates a link token without consuming it.
func (s *BookingService) ResolveCustomLink(token string) (*models.Booking, error) {
	hash := utils.HashToken(token)

	var booking models.Booking
	if err := s.db.Where("custom_link_hash = ?", hash).First(&booking).Error; err != nil {
		return nil, fmt.Errorf("link not found")
	}

	if booking.CustomLinkHash == nil || !utils.VerifyTokenHash(token, *booking.CustomLinkHash) {
		return nil, fmt.Errorf("link not found")
	}
	if booking.CustomLinkExpiry != nil && time.Now().After(*booking.CustomLinkExpiry) {
		return nil, fmt.Errorf("link has expired")
	}

	return &booking, nil
}

// ConsumeCustomLink accepts the offer behind the link: the booking moves to
// Confirmed and the stored hash is nulled so the link is single-use.
func (s *BookingService) ConsumeCustomLink(token string) (*models.Booking, error) {
	booking, err := s.ResolveCustomLink(token)
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingConfirmed
	booking.CustomLinkHash = nil
	booking.CustomLinkExpiry = nil
	if err := s.db.Save(booking).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Custom link consumed for booking %s", booking.Reference)
	s.mailer.SendBookingConfirmation(booking, "")
	return booking, nil
}

// ConvertEnquiry creates a booking from a ready-to-book enquiry and marks
// the enquiry converted.
func (s *BookingService) ConvertEnquiry(enquiryID uint, arrival, departure time.Time, overnight, catering bool) (*models.Booking, error) {
	var enquiry models.Enquiry
	if err := s.db.First(&enquiry, enquiryID).Error; err != nil {
		return nil, err
	}

	if enquiry.Status == models.EnquiryConverted {
		return nil, fmt.Errorf("enquiry %d already converted", enquiry.ID)
	}
	if enquiry.Status == models.EnquiryLost {
		return nil, fmt.Errorf("enquiry %d is marked lost", enquiry.ID)
	}

	booking := models.Booking{
		Reference:     models.NewBookingReference(),
		CustomerName:  enquiry.CustomerName,
		CustomerEmail: enquiry.CustomerEmail,
		CustomerPhone: enquiry.CustomerPhone,
		Organisation:  enquiry.Organisation,
		ArrivalDate:   arrival,
		DepartureDate: departure,
		Headcount:     enquiry.Headcount,
		Status:        models.BookingInTriage,
		Overnight:     overnight,
		Catering:      catering,
		EnquiryID:     &enquiry.ID,
	}

	// Carry the latest quote across, if any.
	var quote models.EnquiryQuote
	if err := s.db.Where("enquiry_id = ?", enquiry.ID).Order("created_at DESC").First(&quote).Error; err == nil {
		booking.QuotedAmount = quote.Amount
		booking.FinalAmount = quote.Amount
	}

	if err := s.db.Create(&booking).Error; err != nil {
		return nil, err
	}

	enquiry.Status = models.EnquiryConverted
	if err := s.db.Save(&enquiry).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Enquiry %d converted to booking %s", enquiry.ID, booking.Reference)
	return &booking, nil
}
