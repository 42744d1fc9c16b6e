package scheduling

import (
	"time"

	"github.com/holycrosscentre/booking-portal/models"
)

// Reservations with no explicit times are treated as holding the space for
// the whole service day.
const (
	DayStart = "00:00"
	DayEnd   = "23:59"
)

// ReservationSlot is one space reservation row flattened for conflict
// checking, carrying the owning booking's status.
type ReservationSlot struct {
	BookingID     uint
	BookingStatus models.BookingStatus
	SpaceID       uint
	ServiceDate   time.Time
	StartTime     *string // "15:04", nil = DayStart
	EndTime       *string // "15:04", nil = DayEnd
}

type SpaceConflict struct {
	SpaceID       uint      `json:"space_id"`
	ServiceDate   time.Time `json:"service_date"`
	ConflictsWith uint      `json:"conflicts_with"`
}

// RoomStay is another booking's whole-stay room assignment joined with its
// booking status and date range.
type RoomStay struct {
	BookingID     uint
	BookingStatus models.BookingStatus
	RoomID        uint
	ArrivalDate   time.Time
	DepartureDate time.Time
}

type RoomConflict struct {
	RoomID        uint `json:"room_id"`
	ConflictsWith uint `json:"conflicts_with"`
}

// OutranksPending is the priority-suppression rule: an Approved or Confirmed
// booking proceeds unaware of a merely Pending competitor, so the conflict is
// not reported. It changes reported conflicts non-monotonically with booking
// status, which is why it is named rather than inlined.
func OutranksPending(subject, other models.BookingStatus) bool {
	return (subject == models.BookingApproved || subject == models.BookingConfirmed) &&
		other == models.BookingPending
}

// DetectSpaceConflicts compares the subject booking's reservations against
// reservations held by other non-cancelled bookings. A conflict needs the
// same space on the same service day with overlapping [start, end) times.
func DetectSpaceConflicts(subjectStatus models.BookingStatus, mine, others []ReservationSlot) []SpaceConflict {
	var conflicts []SpaceConflict
	for _, m := range mine {
		for _, o := range others {
			if o.BookingStatus == models.BookingCancelled {
				continue
			}
			if m.SpaceID != o.SpaceID || !SameDay(m.ServiceDate, o.ServiceDate) {
				continue
			}
			if OutranksPending(subjectStatus, o.BookingStatus) {
				continue
			}
			myStart, myEnd := slotTimes(m)
			otherStart, otherEnd := slotTimes(o)
			// Half-open intervals: back-to-back slots do not conflict.
			if myStart < otherEnd && otherStart < myEnd {
				conflicts = append(conflicts, SpaceConflict{
					SpaceID:       m.SpaceID,
					ServiceDate:   m.ServiceDate,
					ConflictsWith: o.BookingID,
				})
			}
		}
	}
	return conflicts
}

// DetectRoomConflicts checks the subject's stay range against other
// bookings' assignments on the subject's rooms. Unlike spaces this works on
// the whole date range, not per night; room assignments have no per-night
// rows to compare.
func DetectRoomConflicts(subjectArrival, subjectDeparture time.Time, subjectRoomIDs []uint, others []RoomStay) []RoomConflict {
	roomSet := make(map[uint]bool, len(subjectRoomIDs))
	for _, id := range subjectRoomIDs {
		roomSet[id] = true
	}

	var conflicts []RoomConflict
	for _, o := range others {
		if o.BookingStatus == models.BookingCancelled {
			continue
		}
		if !roomSet[o.RoomID] {
			continue
		}
		if o.ArrivalDate.Before(subjectDeparture) && o.DepartureDate.After(subjectArrival) {
			conflicts = append(conflicts, RoomConflict{
				RoomID:        o.RoomID,
				ConflictsWith: o.BookingID,
			})
		}
	}
	return conflicts
}

// DistinctBookingIDs collapses conflict lists to the other-booking ids that
// need resolving into display summaries.
func DistinctBookingIDs(spaceConflicts []SpaceConflict, roomConflicts []RoomConflict) []uint {
	seen := make(map[uint]bool)
	var ids []uint
	for _, c := range spaceConflicts {
		if !seen[c.ConflictsWith] {
			seen[c.ConflictsWith] = true
			ids = append(ids, c.ConflictsWith)
		}
	}
	for _, c := range roomConflicts {
		if !seen[c.ConflictsWith] {
			seen[c.ConflictsWith] = true
			ids = append(ids, c.ConflictsWith)
		}
	}
	return ids
}

// SameDay compares two timestamps by calendar date only.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func slotTimes(s ReservationSlot) (string, string) {
	start, end := DayStart, DayEnd
	if s.StartTime != nil && *s.StartTime != "" {
		start = *s.StartTime
	}
	if s.EndTime != nil && *s.EndTime != "" {
		end = *s.EndTime
	}
	return start, end
}
