package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/holycrosscentre/booking-portal/models"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func slot(bookingID uint, status models.BookingStatus, spaceID uint, date, start, end string) ReservationSlot {
	s := ReservationSlot{
		BookingID:     bookingID,
		BookingStatus: status,
		SpaceID:       spaceID,
		ServiceDate:   day(date),
	}
	if start != "" {
		s.StartTime = strPtr(start)
	}
	if end != "" {
		s.EndTime = strPtr(end)
	}
	return s
}

func TestDetectSpaceConflictsOverlap(t *testing.T) {
	mine := []ReservationSlot{slot(1, models.BookingPending, 7, "2024-07-01", "09:00", "11:00")}
	others := []ReservationSlot{slot(2, models.BookingPending, 7, "2024-07-01", "10:00", "12:00")}

	conflicts := DetectSpaceConflicts(models.BookingPending, mine, others)
	assert.Len(t, conflicts, 1)
	assert.Equal(t, uint(7), conflicts[0].SpaceID)
	assert.Equal(t, uint(2), conflicts[0].ConflictsWith)
	assert.Equal(t, day("2024-07-01"), conflicts[0].ServiceDate)
}

func TestDetectSpaceConflictsBackToBackSlots(t *testing.T) {
	// Chapel 09:00-10:00 vs 10:00-11:00: half-open intervals touch but do
	// not overlap.
	mine := []ReservationSlot{slot(1, models.BookingPending, 3, "2024-07-01", "09:00", "10:00")}
	others := []ReservationSlot{slot(2, models.BookingPending, 3, "2024-07-01", "10:00", "11:00")}

	assert.Empty(t, DetectSpaceConflicts(models.BookingPending, mine, others))
}

func TestDetectSpaceConflictsDifferentSpaceOrDay(t *testing.T) {
	mine := []ReservationSlot{slot(1, models.BookingPending, 3, "2024-07-01", "09:00", "12:00")}

	others := []ReservationSlot{slot(2, models.BookingPending, 4, "2024-07-01", "09:00", "12:00")}
	assert.Empty(t, DetectSpaceConflicts(models.BookingPending, mine, others))

	others = []ReservationSlot{slot(2, models.BookingPending, 3, "2024-07-02", "09:00", "12:00")}
	assert.Empty(t, DetectSpaceConflicts(models.BookingPending, mine, others))
}

func TestDetectSpaceConflictsNilTimesCoverWholeDay(t *testing.T) {
	mine := []ReservationSlot{slot(1, models.BookingPending, 3, "2024-07-01", "", "")}
	others := []ReservationSlot{slot(2, models.BookingPending, 3, "2024-07-01", "14:00", "15:00")}

	conflicts := DetectSpaceConflicts(models.BookingPending, mine, others)
	assert.Len(t, conflicts, 1)
}

func TestDetectSpaceConflictsPrioritySuppression(t *testing.T) {
	mine := []ReservationSlot{slot(1, models.BookingApproved, 3, "2024-07-01", "09:00", "12:00")}
	others := []ReservationSlot{slot(2, models.BookingPending, 3, "2024-07-01", "10:00", "11:00")}

	// Approved outranks Pending: the overlap is suppressed.
	assert.Empty(t, DetectSpaceConflicts(models.BookingApproved, mine, others))

	// Confirmed suppresses too.
	assert.Empty(t, DetectSpaceConflicts(models.BookingConfirmed, mine, others))

	// But an Approved competitor is still reported.
	others[0].BookingStatus = models.BookingApproved
	assert.Len(t, DetectSpaceConflicts(models.BookingApproved, mine, others), 1)

	// And a Pending subject never suppresses anything.
	others[0].BookingStatus = models.BookingPending
	assert.Len(t, DetectSpaceConflicts(models.BookingPending, mine, others), 1)
}

func TestDetectSpaceConflictsSkipsCancelled(t *testing.T) {
	mine := []ReservationSlot{slot(1, models.BookingPending, 3, "2024-07-01", "09:00", "12:00")}
	others := []ReservationSlot{slot(2, models.BookingCancelled, 3, "2024-07-01", "09:00", "12:00")}

	assert.Empty(t, DetectSpaceConflicts(models.BookingPending, mine, others))
}

func TestOutranksPending(t *testing.T) {
	assert.True(t, OutranksPending(models.BookingApproved, models.BookingPending))
	assert.True(t, OutranksPending(models.BookingConfirmed, models.BookingPending))
	assert.False(t, OutranksPending(models.BookingPending, models.BookingPending))
	assert.False(t, OutranksPending(models.BookingApproved, models.BookingApproved))
	assert.False(t, OutranksPending(models.BookingInTriage, models.BookingPending))
}

func TestDetectRoomConflicts(t *testing.T) {
	others := []RoomStay{
		{BookingID: 2, BookingStatus: models.BookingApproved, RoomID: 10, ArrivalDate: day("2024-06-12"), DepartureDate: day("2024-06-15")},
	}

	// Overlapping date ranges on a shared room conflict.
	conflicts := DetectRoomConflicts(day("2024-06-10"), day("2024-06-13"), []uint{10}, others)
	assert.Len(t, conflicts, 1)
	assert.Equal(t, uint(10), conflicts[0].RoomID)
	assert.Equal(t, uint(2), conflicts[0].ConflictsWith)

	// Back-to-back stays (checkout day == checkin day) do not conflict.
	assert.Empty(t, DetectRoomConflicts(day("2024-06-10"), day("2024-06-12"), []uint{10}, others))

	// A different room does not conflict.
	assert.Empty(t, DetectRoomConflicts(day("2024-06-10"), day("2024-06-13"), []uint{11}, others))

	// Cancelled bookings never conflict.
	others[0].BookingStatus = models.BookingCancelled
	assert.Empty(t, DetectRoomConflicts(day("2024-06-10"), day("2024-06-13"), []uint{10}, others))
}

func TestDetectRoomConflictsNoPrioritySuppression(t *testing.T) {
	// Room conflicts have no Pending suppression; the granularity quirk is
	// intentional.
	others := []RoomStay{
		{BookingID: 2, BookingStatus: models.BookingPending, RoomID: 10, ArrivalDate: day("2024-06-12"), DepartureDate: day("2024-06-15")},
	}
	conflicts := DetectRoomConflicts(day("2024-06-10"), day("2024-06-13"), []uint{10}, others)
	assert.Len(t, conflicts, 1)
}

func TestDistinctBookingIDs(t *testing.T) {
	space := []SpaceConflict{
		{SpaceID: 1, ConflictsWith: 5},
		{SpaceID: 2, ConflictsWith: 5},
		{SpaceID: 1, ConflictsWith: 6},
	}
	room := []RoomConflict{
		{RoomID: 10, ConflictsWith: 6},
		{RoomID: 11, ConflictsWith: 7},
	}
	assert.Equal(t, []uint{5, 6, 7}, DistinctBookingIDs(space, room))
}
