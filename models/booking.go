package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingCheckedIn  = "checked_in"
	BookingCheckedOut = "checked_out"
	BookingCancelled  = "cancelled"
)

type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookingRef string `gorm:"column:booking_ref;uniqueIndex;size:64" json:"booking_ref"`
	RoomID     uint   `gorm:"column:room_id;index" json:"room_id"`
	GuestID    uint   `gorm:"column:guest_id;index" json:"guest_id"`

	CheckInDate  time.Time `gorm:"column:check_in_date" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date" json:"check_out_date"`
	Status       string    `gorm:"column:status;size:32;index" json:"status"`

	// TotalAmount is derived (nights x room base rate) and owned by the
	// booking; partial payments accumulate in AmountPaid and never touch it.
	TotalAmount float64 `gorm:"column:total_amount" json:"total_amount"`
	AmountPaid  float64 `gorm:"column:amount_paid;default:0" json:"amount_paid"`

	Adults          int    `gorm:"column:adults;default:1" json:"adults"`
	Children        int    `gorm:"column:children;default:0" json:"children"`
	SpecialRequests string `gorm:"column:special_requests;type:text" json:"special_requests,omitempty"`

	Room  Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Guest Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
}

var bookingTransitions = map[string][]string{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingCheckedIn, BookingCancelled},
	BookingCheckedIn:  {BookingCheckedOut},
	BookingCheckedOut: {},
	BookingCancelled:  {},
}

// ValidBookingStatus reports whether s is one of the booking status values.
func ValidBookingStatus(s string) bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanBookingTransition reports whether a booking may move between statuses.
func CanBookingTransition(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ActiveBookingStatuses are the statuses under which a booking still
// holds its room: pending/confirmed hold a reservation, checked_in an
// occupancy. Everything else is terminal; bookings are never deleted,
// only terminalized.
var ActiveBookingStatuses = []string{BookingPending, BookingConfirmed, BookingCheckedIn}

// ActiveBookingStatus reports whether a booking in this status still holds
// its room.
func ActiveBookingStatus(s string) bool {
	for _, active := range ActiveBookingStatuses {
		if active == s {
			return true
		}
	}
	return false
}

// Nights computes the billable nights between check-in and check-out by
// rounding the day difference up, with a one night minimum when the dates
// differ. Callers must guard checkOut > checkIn beforehand.
func Nights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	if diff <= 0 {
		return 0
	}
	n := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}
