package services

import (
	"regexp"
	"strings"
	"time"

	"vph-backend/apperrors"
	"vph-backend/models"
)

// MaxOccupants bounds the adult/child counts accepted from a form.
const MaxOccupants = 10

const dateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// GuestInput is the guest section of a check-in or reservation form.
type GuestInput struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IDType    string `json:"id_type"`
	IDNumber  string `json:"id_number"`
	GuestType string `json:"guest_type"`
	Notes     string `json:"notes"`
}

// ReservationInput is a future-dated booking request.
type ReservationInput struct {
	RoomID          uint       `json:"room_id"`
	Guest           GuestInput `json:"guest"`
	CheckInDate     string     `json:"check_in_date"`
	CheckOutDate    string     `json:"check_out_date"`
	Adults          int        `json:"adults"`
	Children        int        `json:"children"`
	SpecialRequests string     `json:"special_requests"`
}

// CheckInInput is a walk-in check-in request; check-in is now.
type CheckInInput struct {
	RoomID          uint       `json:"room_id"`
	Guest           GuestInput `json:"guest"`
	CheckOutDate    string     `json:"check_out_date"`
	Adults          int        `json:"adults"`
	Children        int        `json:"children"`
	SpecialRequests string     `json:"special_requests"`
}

func validateGuest(g GuestInput, fields map[string]string) {
	if len(strings.TrimSpace(g.FullName)) < 2 {
		fields["full_name"] = "name must be at least 2 characters"
	}
	if e := strings.TrimSpace(g.Email); e != "" && !emailPattern.MatchString(e) {
		fields["email"] = "invalid email address"
	}
	if g.GuestType != "" && !models.ValidGuestType(g.GuestType) {
		fields["guest_type"] = "unknown guest type"
	}
}

func validateOccupants(adults, children int, fields map[string]string) {
	if adults < 1 {
		fields["adults"] = "at least 1 adult required"
	} else if adults > MaxOccupants {
		fields["adults"] = "too many adults"
	}
	if children < 0 {
		fields["children"] = "children cannot be negative"
	} else if children > MaxOccupants {
		fields["children"] = "too many children"
	}
}

func parseDate(value, field string, fields map[string]string) time.Time {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		fields[field] = "expected date as YYYY-MM-DD"
		return time.Time{}
	}
	return t
}

// Today truncates now to a date at UTC midnight, matching the booking
// date columns.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Validate checks a reservation form and returns the parsed dates. No
// write happens on any violation; every failed field carries a message.
func (in *ReservationInput) Validate(now time.Time) (checkIn, checkOut time.Time, err error) {
	fields := map[string]string{}

	if in.RoomID == 0 {
		fields["room_id"] = "room is required"
	}
	validateGuest(in.Guest, fields)
	validateOccupants(in.Adults, in.Children, fields)

	checkIn = parseDate(in.CheckInDate, "check_in_date", fields)
	checkOut = parseDate(in.CheckOutDate, "check_out_date", fields)
	if _, bad := fields["check_in_date"]; !bad {
		if _, bad := fields["check_out_date"]; !bad {
			if !checkOut.After(checkIn) {
				fields["check_out_date"] = "check-out must be after check-in"
			}
		}
	}

	if len(fields) > 0 {
		return time.Time{}, time.Time{}, apperrors.NewValidation(fields)
	}
	return checkIn, checkOut, nil
}

// Validate checks a walk-in check-in form. The stay starts today, so the
// check-out date must fall strictly after today.
func (in *CheckInInput) Validate(now time.Time) (checkIn, checkOut time.Time, err error) {
	fields := map[string]string{}

	if in.RoomID == 0 {
		fields["room_id"] = "room is required"
	}
	validateGuest(in.Guest, fields)
	validateOccupants(in.Adults, in.Children, fields)

	checkIn = Today(now)
	checkOut = parseDate(in.CheckOutDate, "check_out_date", fields)
	if _, bad := fields["check_out_date"]; !bad {
		if !checkOut.After(checkIn) {
			fields["check_out_date"] = "check-out must be after today"
		}
	}

	if len(fields) > 0 {
		return time.Time{}, time.Time{}, apperrors.NewValidation(fields)
	}
	return checkIn, checkOut, nil
}

// BuildGuest assembles the guest record from validated input.
func BuildGuest(g GuestInput) models.Guest {
	guestType := g.GuestType
	if guestType == "" {
		guestType = models.GuestIndividual
	}
	return models.Guest{
		FullName:  strings.TrimSpace(g.FullName),
		Email:     strings.TrimSpace(g.Email),
		Phone:     strings.TrimSpace(g.Phone),
		IDType:    strings.TrimSpace(g.IDType),
		IDNumber:  strings.TrimSpace(g.IDNumber),
		GuestType: guestType,
		Notes:     g.Notes,
	}
}
