package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanRoomTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{RoomAvailable, RoomOccupied, true},
		{RoomAvailable, RoomReserved, true},
		{RoomAvailable, RoomMaintenance, true},
		{RoomAvailable, RoomCleaning, true},
		{RoomReserved, RoomOccupied, true},
		{RoomOccupied, RoomCleaning, true},
		{RoomCleaning, RoomAvailable, true},
		{RoomMaintenance, RoomAvailable, true},
		{RoomOccupied, RoomAvailable, false},
		{RoomOccupied, RoomReserved, false},
		{RoomMaintenance, RoomOccupied, false},
		{RoomAvailable, RoomAvailable, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanRoomTransition(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestBookable(t *testing.T) {
	assert.True(t, Bookable(RoomAvailable))
	assert.True(t, Bookable(RoomCleaning))
	assert.False(t, Bookable(RoomOccupied))
	assert.False(t, Bookable(RoomReserved))
	assert.False(t, Bookable(RoomMaintenance))
}

func TestValidRoomStatus(t *testing.T) {
	for _, s := range []string{RoomAvailable, RoomOccupied, RoomReserved, RoomMaintenance, RoomCleaning} {
		assert.True(t, ValidRoomStatus(s), s)
	}
	assert.False(t, ValidRoomStatus("Available"))
	assert.False(t, ValidRoomStatus(""))
}

func TestValidRoomType(t *testing.T) {
	for _, s := range []string{RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite, RoomTypeExecutive} {
		assert.True(t, ValidRoomType(s), s)
	}
	assert.False(t, ValidRoomType("penthouse"))
}
