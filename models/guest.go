package models

import (
	"time"
)

// Guest types.
const (
	GuestIndividual = "individual"
	GuestCorporate  = "corporate"
	GuestVIP        = "vip"
	GuestGroup      = "group"
)

type Guest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FullName  string `gorm:"column:full_name;size:255" json:"full_name"`
	Email     string `gorm:"column:email;size:255" json:"email,omitempty"`
	Phone     string `gorm:"column:phone;size:64" json:"phone,omitempty"`
	IDType    string `gorm:"column:id_type;size:64" json:"id_type,omitempty"`
	IDNumber  string `gorm:"column:id_number;size:128" json:"id_number,omitempty"`
	GuestType string `gorm:"column:guest_type;size:32;default:individual" json:"guest_type"`
	Notes     string `gorm:"column:notes;type:text" json:"notes,omitempty"`
}

// ValidGuestType reports whether s is one of the guest type values.
func ValidGuestType(s string) bool {
	switch s {
	case GuestIndividual, GuestCorporate, GuestVIP, GuestGroup:
		return true
	}
	return false
}
