package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"vph-backend/apperrors"
	"vph-backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StaffService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewStaffService(db *gorm.DB, log *zap.Logger) *StaffService {
	return &StaffService{DB: db, Log: log}
}

// StaffMember joins a profile with its login and current role set.
type StaffMember struct {
	Profile  models.StaffProfile `json:"profile"`
	Username string              `json:"username"`
	Roles    []string            `json:"roles"`
}

// CreateStaffInput is the manager-facing staff account form.
type CreateStaffInput struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	FullName string   `json:"full_name"`
	Phone    string   `json:"phone"`
	HireDate string   `json:"hire_date"`
	Roles    []string `json:"roles"`
}

// ProfileUpdate carries optional profile corrections.
type ProfileUpdate struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	IsActive  *bool   `json:"is_active"`
	AvatarURL *string `json:"avatar_url"`
}

// List returns every staff profile with its role set.
func (s *StaffService) List(ctx context.Context) ([]StaffMember, error) {
	var profiles []models.StaffProfile
	if err := s.DB.WithContext(ctx).Preload("User").Order("full_name ASC").Find(&profiles).Error; err != nil {
		return nil, apperrors.NewPersistence("list staff", err)
	}

	members := make([]StaffMember, 0, len(profiles))
	for _, p := range profiles {
		var assignments []models.RoleAssignment
		if err := s.DB.WithContext(ctx).Where("user_id = ?", p.UserID).Find(&assignments).Error; err != nil {
			return nil, apperrors.NewPersistence("load staff roles", err)
		}
		roles := make([]string, 0, len(assignments))
		for _, a := range assignments {
			roles = append(roles, a.Role)
		}
		members = append(members, StaffMember{Profile: p, Username: p.User.Username, Roles: roles})
	}
	return members, nil
}

// Create registers a staff login, its profile, and an initial role set.
func (s *StaffService) Create(ctx context.Context, in CreateStaffInput) (*StaffMember, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.Username) == "" {
		fields["username"] = "username is required"
	}
	if len(in.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if len(strings.TrimSpace(in.FullName)) < 2 {
		fields["full_name"] = "name must be at least 2 characters"
	}
	for _, role := range in.Roles {
		if !models.ValidRole(role) {
			fields["roles"] = "unknown role: " + role
			break
		}
	}
	var hireDate *time.Time
	if strings.TrimSpace(in.HireDate) != "" {
		t, err := time.Parse(dateLayout, strings.TrimSpace(in.HireDate))
		if err != nil {
			fields["hire_date"] = "expected date as YYYY-MM-DD"
		} else {
			hireDate = &t
		}
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidation(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var member StaffMember
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := models.User{
			UserUID:  uuid.NewString(),
			Username: strings.TrimSpace(in.Username),
			Password: string(hash),
			IsActive: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return apperrors.NewPersistence("create user", err)
		}

		profile := models.StaffProfile{
			UserID:   user.ID,
			FullName: strings.TrimSpace(in.FullName),
			Phone:    strings.TrimSpace(in.Phone),
			HireDate: hireDate,
			IsActive: true,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return apperrors.NewPersistence("create profile", err)
		}

		for _, role := range in.Roles {
			if err := tx.Create(&models.RoleAssignment{UserID: user.ID, Role: role}).Error; err != nil {
				return apperrors.NewPersistence("assign role", err)
			}
		}

		member = StaffMember{Profile: profile, Username: user.Username, Roles: in.Roles}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Log.Info("staff created", zap.String("username", member.Username))
	return &member, nil
}

// UpdateProfile applies corrections to a staff profile.
func (s *StaffService) UpdateProfile(ctx context.Context, profileID uint, in ProfileUpdate) (*models.StaffProfile, error) {
	var profile models.StaffProfile
	if err := s.DB.WithContext(ctx).First(&profile, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistence("load profile", err)
	}

	updates := map[string]interface{}{}
	if in.FullName != nil {
		if len(strings.TrimSpace(*in.FullName)) < 2 {
			return nil, apperrors.NewValidation(map[string]string{"full_name": "name must be at least 2 characters"})
		}
		updates["full_name"] = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		updates["phone"] = strings.TrimSpace(*in.Phone)
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if in.AvatarURL != nil {
		updates["avatar_url"] = strings.TrimSpace(*in.AvatarURL)
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&profile).Updates(updates).Error; err != nil {
			return nil, apperrors.NewPersistence("update profile", err)
		}
	}
	if err := s.DB.WithContext(ctx).First(&profile, profileID).Error; err != nil {
		return nil, apperrors.NewPersistence("reload profile", err)
	}
	return &profile, nil
}

// ReplaceRoles swaps a user's entire role set atomically: existing
// assignments are deleted, then the new set inserted, inside one
// transaction. An empty set is allowed and strips all department access.
func (s *StaffService) ReplaceRoles(ctx context.Context, userID uint, roles []string) ([]string, error) {
	seen := map[string]bool{}
	cleaned := make([]string, 0, len(roles))
	for _, role := range roles {
		role = strings.TrimSpace(role)
		if !models.ValidRole(role) {
			return nil, apperrors.NewValidation(map[string]string{"roles": "unknown role: " + role})
		}
		if !seen[role] {
			seen[role] = true
			cleaned = append(cleaned, role)
		}
	}

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistence("load user", err)
	}

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.RoleAssignment{}).Error; err != nil {
			return apperrors.NewPersistence("delete role assignments", err)
		}
		for _, role := range cleaned {
			if err := tx.Create(&models.RoleAssignment{UserID: userID, Role: role}).Error; err != nil {
				return apperrors.NewPersistence("insert role assignment", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Log.Info("roles replaced",
		zap.Uint("user_id", userID), zap.Strings("roles", cleaned))
	return cleaned, nil
}
