package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room statuses. A room is occupied or reserved exactly when an active
// booking targets it; the booking service keeps the two in step.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomReserved    = "reserved"
	RoomMaintenance = "maintenance"
	RoomCleaning    = "cleaning"
)

// Room types.
const (
	RoomTypeStandard  = "standard"
	RoomTypeDeluxe    = "deluxe"
	RoomTypeSuite     = "suite"
	RoomTypeExecutive = "executive"
)

type Room struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomNumber string  `gorm:"column:room_number;uniqueIndex;size:50" json:"room_number"`
	RoomType   string  `gorm:"column:room_type;size:32" json:"room_type"`
	Floor      int     `gorm:"column:floor" json:"floor"`
	BaseRate   float64 `gorm:"column:base_rate" json:"base_rate"`
	Status     string  `gorm:"column:status;size:32;index" json:"status"`

	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`
	Notes     string         `gorm:"column:notes;type:text" json:"notes,omitempty"`
}

var roomTransitions = map[string][]string{
	RoomAvailable:   {RoomOccupied, RoomReserved, RoomMaintenance, RoomCleaning},
	RoomReserved:    {RoomOccupied, RoomAvailable},
	RoomOccupied:    {RoomCleaning},
	RoomCleaning:    {RoomAvailable, RoomOccupied, RoomReserved},
	RoomMaintenance: {RoomAvailable},
}

// ValidRoomStatus reports whether s is one of the room status values.
func ValidRoomStatus(s string) bool {
	_, ok := roomTransitions[s]
	return ok
}

// ValidRoomType reports whether s is one of the room type values.
func ValidRoomType(s string) bool {
	switch s {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite, RoomTypeExecutive:
		return true
	}
	return false
}

// CanRoomTransition reports whether a room may move from one status to
// another. Same-status "transitions" are rejected.
func CanRoomTransition(from, to string) bool {
	for _, next := range roomTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Bookable reports whether a room in the given status may accept a new
// reservation. Walk-in check-in is stricter and requires available.
func Bookable(status string) bool {
	return status == RoomAvailable || status == RoomCleaning
}
