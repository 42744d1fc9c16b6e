package services

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"gopkg.in/gomail.v2"

	"github.com/holycrosscentre/booking-portal/models"
	"github.com/holycrosscentre/booking-portal/utils"
)

// MailerConfig holds SMTP configuration
type MailerConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	BaseURL  string // public base URL used in links
	Enabled  bool
}

// MailerService sends transactional email. Every send is best-effort: a
// failure is logged and never rolls back the write that triggered it.
type MailerService struct {
	config *MailerConfig
	dialer *gomail.Dialer
}

var (
	mailerService *MailerService
	mailerOnce    sync.Once
)

// GetMailerService returns the singleton instance of MailerService
func GetMailerService() *MailerService {
	mailerOnce.Do(func() {
		host := os.Getenv("SMTP_HOST")
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if port == 0 {
			port = 587
		}
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")
		baseURL := os.Getenv("PORTAL_BASE_URL")

		if from == "" {
			from = "bookings@holycrosscentre.example"
		}
		if baseURL == "" {
			baseURL = "http://localhost:8080"
		}

		cfg := &MailerConfig{
			Host:     host,
			Port:     port,
			Username: username,
			Password: password,
			From:     from,
			BaseURL:  baseURL,
			Enabled:  host != "",
		}

		if !cfg.Enabled {
			fmt.Println("WARNING: SMTP_HOST is empty, outgoing email is disabled")
		}

		mailerService = &MailerService{
			config: cfg,
			dialer: gomail.NewDialer(host, port, username, password),
		}
	})
	return mailerService
}

func (ms *MailerService) send(to, subject, body string) error {
	if !ms.config.Enabled {
		utils.InfoLogger.Printf("Email disabled, skipping send to %s: %s", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", ms.config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return ms.dialer.DialAndSend(m)
}

// SendBestEffort logs failures instead of returning them; callers have
// already committed their write.
func (ms *MailerService) SendBestEffort(to, subject, body string) {
	if err := ms.send(to, subject, body); err != nil {
		utils.ErrorLogger.Printf("Failed to send email %q to %s: %v", subject, to, err)
	}
}

// SendEnquiryReceipt confirms receipt of a public enquiry.
func (ms *MailerService) SendEnquiryReceipt(enquiry *models.Enquiry) {
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for your enquiry about the Holy Cross Centre. "+
			"Our team will be in touch shortly.\n\nYour enquiry reference is #%d.\n",
		enquiry.CustomerName, enquiry.ID)
	ms.SendBestEffort(enquiry.CustomerEmail, "We have received your enquiry", body)
}

// SendBookingConfirmation goes out when staff approve or confirm a booking.
func (ms *MailerService) SendBookingConfirmation(booking *models.Booking, portalToken string) {
	body := fmt.Sprintf(
		"Dear %s,\n\nYour booking %s (%s to %s, %d guests) is now %s.\n",
		booking.CustomerName,
		booking.Reference,
		booking.ArrivalDate.Format("2 January 2006"),
		booking.DepartureDate.Format("2 January 2006"),
		booking.Headcount,
		booking.Status)
	if portalToken != "" {
		body += fmt.Sprintf(
			"\nManage your stay (guest details and rooming) at:\n%s/portal?token=%s\n",
			ms.config.BaseURL, portalToken)
	}
	if booking.FinalAmount > 0 {
		body += fmt.Sprintf("\nAmount due: %s\n", utils.FormatCurrency(booking.FinalAmount))
	}
	ms.SendBestEffort(booking.CustomerEmail, "Your Holy Cross Centre booking "+booking.Reference, body)
}

// SendCustomLink notifies a customer of their one-time custom pricing link.
func (ms *MailerService) SendCustomLink(booking *models.Booking, token string) {
	body := fmt.Sprintf(
		"Dear %s,\n\nWe have prepared a booking offer for you at %s.\n\n"+
			"Review and accept it here (the link can be used once):\n%s/bookings/link/%s\n",
		booking.CustomerName,
		utils.FormatCurrency(booking.FinalAmount),
		ms.config.BaseURL, token)
	ms.SendBestEffort(booking.CustomerEmail, "Your booking offer from Holy Cross Centre", body)
}
