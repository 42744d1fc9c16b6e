package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveRoomStatusReadyWhenNoStays(t *testing.T) {
	report := DeriveRoomStatus(day("2024-06-10"), 1, "R1", nil, nil)
	assert.Equal(t, StatusReady, report.Status)
	assert.Zero(t, report.BookingID)
}

func TestDeriveRoomStatusInUse(t *testing.T) {
	stays := []Stay{{
		BookingID:   1,
		BookingName: "St Mary's Parish (Jo Smith)",
		Arrival:     day("2024-06-08"),
		Departure:   day("2024-06-12"),
		GuestNames:  []string{"Jo Smith", "Sam Lee"},
		BYOLinen:    true,
		ExtraBed:    true,
	}}

	report := DeriveRoomStatus(day("2024-06-10"), 1, "R1", stays, nil)
	assert.Equal(t, StatusInUse, report.Status)
	assert.Equal(t, uint(1), report.BookingID)
	assert.Equal(t, "St Mary's Parish (Jo Smith)", report.BookingName)
	assert.Equal(t, 2, report.Occupants)
	assert.True(t, report.BYOLinen)
	assert.True(t, report.ExtraBed)

	// Arrival day counts as in use; departure day does not.
	assert.Equal(t, StatusInUse, DeriveRoomStatus(day("2024-06-08"), 1, "R1", stays, nil).Status)
	assert.NotEqual(t, StatusInUse, DeriveRoomStatus(day("2024-06-12"), 1, "R1", stays, nil).Status)
}

func TestDeriveRoomStatusCleaningRequired(t *testing.T) {
	stays := []Stay{{BookingID: 1, Arrival: day("2024-06-06"), Departure: day("2024-06-10")}}

	report := DeriveRoomStatus(day("2024-06-10"), 1, "R1", stays, nil)
	assert.Equal(t, StatusCleaningRequired, report.Status)

	// A logged "cleaned" action clears the state back to ready.
	logs := []LogEntry{{ActionType: "cleaned"}}
	report = DeriveRoomStatus(day("2024-06-10"), 1, "R1", stays, logs)
	assert.Equal(t, StatusReady, report.Status)
}

func TestDeriveRoomStatusNextDayArrival(t *testing.T) {
	stays := []Stay{{BookingID: 2, Arrival: day("2024-06-11"), Departure: day("2024-06-14")}}

	report := DeriveRoomStatus(day("2024-06-10"), 1, "R1", stays, nil)
	assert.Equal(t, StatusNeedsSetup, report.Status)
	assert.Equal(t, uint(2), report.BookingID)

	logs := []LogEntry{{ActionType: "setup_complete"}}
	report = DeriveRoomStatus(day("2024-06-10"), 1, "R1", stays, logs)
	assert.Equal(t, StatusSetupComplete, report.Status)
}

func TestDeriveRoomStatusCleaningBeatsSetup(t *testing.T) {
	// Booking A departs 2024-06-10 uncleaned, Booking B arrives 2024-06-11
	// unset-up: cleaning wins regardless of row order.
	departing := Stay{BookingID: 1, BookingName: "A", Arrival: day("2024-06-06"), Departure: day("2024-06-10")}
	arriving := Stay{BookingID: 2, BookingName: "B", Arrival: day("2024-06-11"), Departure: day("2024-06-14")}

	report := DeriveRoomStatus(day("2024-06-10"), 1, "R1", []Stay{departing, arriving}, nil)
	assert.Equal(t, StatusCleaningRequired, report.Status)
	assert.Equal(t, uint(1), report.BookingID)

	report = DeriveRoomStatus(day("2024-06-10"), 1, "R1", []Stay{arriving, departing}, nil)
	assert.Equal(t, StatusCleaningRequired, report.Status)
	assert.Equal(t, uint(1), report.BookingID)

	// Once B's stay starts the room is simply in use.
	report = DeriveRoomStatus(day("2024-06-11"), 1, "R1", []Stay{departing, arriving}, nil)
	assert.Equal(t, StatusInUse, report.Status)
	assert.Equal(t, uint(2), report.BookingID)
}

func TestDeriveRoomStatusCleanedThenSetup(t *testing.T) {
	// Cleaned departure plus a next-day arrival falls through to setup.
	departing := Stay{BookingID: 1, Arrival: day("2024-06-06"), Departure: day("2024-06-10")}
	arriving := Stay{BookingID: 2, Arrival: day("2024-06-11"), Departure: day("2024-06-14")}
	logs := []LogEntry{{ActionType: "cleaned"}}

	report := DeriveRoomStatus(day("2024-06-10"), 1, "R1", []Stay{departing, arriving}, logs)
	assert.Equal(t, StatusNeedsSetup, report.Status)
	assert.Equal(t, uint(2), report.BookingID)
}

func TestDeriveRoomStatusSkipsCancelledStays(t *testing.T) {
	stays := []Stay{{BookingID: 1, Cancelled: true, Arrival: day("2024-06-08"), Departure: day("2024-06-12")}}
	report := DeriveRoomStatus(day("2024-06-10"), 1, "R1", stays, nil)
	assert.Equal(t, StatusReady, report.Status)
}
