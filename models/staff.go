package models

import (
	"time"

	"gorm.io/gorm"
)

// Department roles. A user may hold any subset; manager implicitly
// satisfies every department check.
const (
	RoleManager    = "manager"
	RoleReception  = "reception"
	RoleRestaurant = "restaurant"
	RoleBar        = "bar"
	RoleInventory  = "inventory"
	RoleAccounts   = "accounts"
)

// AllRoles is the closed set of assignable department roles.
var AllRoles = []string{
	RoleManager,
	RoleReception,
	RoleRestaurant,
	RoleBar,
	RoleInventory,
	RoleAccounts,
}

// ValidRole reports whether s is one of the department roles.
func ValidRole(s string) bool {
	for _, r := range AllRoles {
		if r == s {
			return true
		}
	}
	return false
}

// User is a staff login identity.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserUID  string `gorm:"column:user_uid;uniqueIndex;size:64" json:"user_uid"`
	Username string `gorm:"column:username;uniqueIndex;size:150" json:"username"`
	Password string `gorm:"column:password;size:255" json:"-"`
	IsActive bool   `gorm:"column:is_active;default:true" json:"is_active"`
}

// StaffProfile carries the display data for a staff identity.
type StaffProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID    uint       `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	FullName  string     `gorm:"column:full_name;size:255" json:"full_name"`
	Phone     string     `gorm:"column:phone;size:64" json:"phone,omitempty"`
	HireDate  *time.Time `gorm:"column:hire_date" json:"hire_date,omitempty"`
	IsActive  bool       `gorm:"column:is_active;default:true" json:"is_active"`
	AvatarURL string     `gorm:"column:avatar_url;size:512" json:"avatar_url,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// RoleAssignment pairs a user with one department role. Rows for a user
// are replaced wholesale by role administration, never edited in place.
type RoleAssignment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID uint   `gorm:"column:user_id;not null;index:idx_user_role,unique" json:"user_id"`
	Role   string `gorm:"column:role;size:32;not null;index:idx_user_role,unique" json:"role"`
}
