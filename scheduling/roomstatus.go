package scheduling

import "time"

type RoomStatus string

const (
	StatusReady            RoomStatus = "ready"
	StatusNeedsSetup       RoomStatus = "needs_setup"
	StatusSetupComplete    RoomStatus = "setup_complete"
	StatusInUse            RoomStatus = "in_use"
	StatusCleaningRequired RoomStatus = "cleaning_required"
)

// Stay is one room's assignment flattened with the details the status board
// shows alongside the derived state.
type Stay struct {
	BookingID    uint
	BookingName  string
	Cancelled    bool
	Arrival      time.Time
	Departure    time.Time
	GuestNames   []string
	BYOLinen     bool
	ExtraBed     bool
	Ensuite      bool
	PrivateStudy bool
}

// LogEntry is an operator action recorded against the room for the selected
// date.
type LogEntry struct {
	ActionType string // models.RoomActionCleaned | models.RoomActionSetupComplete
}

// RoomReport is the derived state of one room for the selected date plus the
// side data read from whichever stay triggered the non-ready state.
type RoomReport struct {
	RoomID       uint       `json:"room_id"`
	RoomNumber   string     `json:"room_number"`
	Status       RoomStatus `json:"status"`
	BookingID    uint       `json:"booking_id,omitempty"`
	BookingName  string     `json:"booking_name,omitempty"`
	GuestNames   []string   `json:"guest_names,omitempty"`
	Occupants    int        `json:"occupants"`
	BYOLinen     bool       `json:"byo_linen"`
	ExtraBed     bool       `json:"extra_bed"`
	Ensuite      bool       `json:"ensuite"`
	PrivateStudy bool       `json:"private_study"`
}

// DeriveRoomStatus classifies one room for the selected date.
//
// Priority, high to low: in_use (arrival <= date < departure) short-circuits;
// then cleaning_required (departure today, no "cleaned" log); then the
// next-day arrival check, which yields setup_complete or needs_setup but
// never displaces cleaning_required. Default is ready.
func DeriveRoomStatus(date time.Time, roomID uint, roomNumber string, stays []Stay, logs []LogEntry) RoomReport {
	report := RoomReport{
		RoomID:     roomID,
		RoomNumber: roomNumber,
		Status:     StatusReady,
	}
	nextDay := date.AddDate(0, 0, 1)

	for _, stay := range stays {
		if stay.Cancelled {
			continue
		}

		if !date.Before(stay.Arrival) && date.Before(stay.Departure) {
			report.Status = StatusInUse
			captureStay(&report, stay)
			return report
		}

		if SameDay(stay.Departure, date) && !hasAction(logs, "cleaned") {
			report.Status = StatusCleaningRequired
			captureStay(&report, stay)
			continue
		}

		if SameDay(stay.Arrival, nextDay) && report.Status != StatusCleaningRequired {
			if hasAction(logs, "setup_complete") {
				report.Status = StatusSetupComplete
			} else {
				report.Status = StatusNeedsSetup
			}
			captureStay(&report, stay)
		}
	}

	return report
}

func captureStay(report *RoomReport, stay Stay) {
	report.BookingID = stay.BookingID
	report.BookingName = stay.BookingName
	report.GuestNames = stay.GuestNames
	report.Occupants = len(stay.GuestNames)
	report.BYOLinen = stay.BYOLinen
	report.ExtraBed = stay.ExtraBed
	report.Ensuite = stay.Ensuite
	report.PrivateStudy = stay.PrivateStudy
}

func hasAction(logs []LogEntry, action string) bool {
	for _, l := range logs {
		if l.ActionType == action {
			return true
		}
	}
	return false
}
