package services

import (
	"testing"
	"time"

	"vph-backend/apperrors"
	"vph-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 8, 31, 10, 0, 0, 0, time.UTC)

func validGuest() GuestInput {
	return GuestInput{FullName: "John Doe", Email: "john@example.com", GuestType: models.GuestIndividual}
}

func TestReservationInputValid(t *testing.T) {
	in := ReservationInput{
		RoomID:       1,
		Guest:        validGuest(),
		CheckInDate:  "2025-09-01",
		CheckOutDate: "2025-09-04",
		Adults:       2,
		Children:     1,
	}

	checkIn, checkOut, err := in.Validate(testNow)
	require.NoError(t, err)

	assert.Equal(t, 3, models.Nights(checkIn, checkOut))
}

func TestReservationInputCheckOutNotAfterCheckIn(t *testing.T) {
	for _, checkOut := range []string{"2025-09-01", "2025-08-30"} {
		in := ReservationInput{
			RoomID:       1,
			Guest:        validGuest(),
			CheckInDate:  "2025-09-01",
			CheckOutDate: checkOut,
			Adults:       1,
		}

		_, _, err := in.Validate(testNow)
		v, ok := apperrors.AsValidation(err)
		require.True(t, ok, "expected validation error for checkout %s", checkOut)
		assert.Contains(t, v.Fields, "check_out_date")
	}
}

func TestReservationInputFieldMessages(t *testing.T) {
	in := ReservationInput{
		Guest:        GuestInput{FullName: "J", Email: "not-an-email", GuestType: "alien"},
		CheckInDate:  "01/09/2025",
		CheckOutDate: "",
		Adults:       0,
		Children:     -1,
	}

	_, _, err := in.Validate(testNow)
	v, ok := apperrors.AsValidation(err)
	require.True(t, ok)

	for _, field := range []string{
		"room_id", "full_name", "email", "guest_type",
		"check_in_date", "check_out_date", "adults", "children",
	} {
		assert.Contains(t, v.Fields, field)
	}
}

func TestReservationInputOccupantCeiling(t *testing.T) {
	in := ReservationInput{
		RoomID:       1,
		Guest:        validGuest(),
		CheckInDate:  "2025-09-01",
		CheckOutDate: "2025-09-02",
		Adults:       11,
		Children:     12,
	}

	_, _, err := in.Validate(testNow)
	v, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, v.Fields, "adults")
	assert.Contains(t, v.Fields, "children")
}

func TestCheckInInputStartsToday(t *testing.T) {
	in := CheckInInput{
		RoomID:       1,
		Guest:        validGuest(),
		CheckOutDate: "2025-09-03",
		Adults:       1,
	}

	checkIn, checkOut, err := in.Validate(testNow)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC), checkIn)
	assert.Equal(t, 3, models.Nights(checkIn, checkOut))
}

func TestCheckInInputThreeNightTotal(t *testing.T) {
	// Walk-in to a 100000/night room for three nights bills 300000.
	in := CheckInInput{
		RoomID:       1,
		Guest:        validGuest(),
		CheckOutDate: "2025-09-03",
		Adults:       2,
	}

	checkIn, checkOut, err := in.Validate(testNow)
	require.NoError(t, err)

	nights := models.Nights(checkIn, checkOut)
	assert.Equal(t, 300000.0, float64(nights)*100000)
}

func TestCheckInInputCheckOutMustBeAfterToday(t *testing.T) {
	for _, checkOut := range []string{"2025-08-31", "2025-08-20"} {
		in := CheckInInput{
			RoomID:       1,
			Guest:        validGuest(),
			CheckOutDate: checkOut,
			Adults:       1,
		}

		_, _, err := in.Validate(testNow)
		v, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, v.Fields, "check_out_date")
	}
}

func TestCheckInInputOptionalEmailMayBeEmpty(t *testing.T) {
	in := CheckInInput{
		RoomID:       1,
		Guest:        GuestInput{FullName: "Jane Doe"},
		CheckOutDate: "2025-09-02",
		Adults:       1,
	}

	_, _, err := in.Validate(testNow)
	assert.NoError(t, err)
}

func TestBuildGuestDefaultsType(t *testing.T) {
	guest := BuildGuest(GuestInput{FullName: "  Jane Doe  "})

	assert.Equal(t, "Jane Doe", guest.FullName)
	assert.Equal(t, models.GuestIndividual, guest.GuestType)
}
