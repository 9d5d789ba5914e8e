package services

import (
	"context"
	"errors"
	"strings"

	"vph-backend/apperrors"
	"vph-backend/models"

	"gorm.io/gorm"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// GuestUpdate carries optional field corrections; nil means untouched.
type GuestUpdate struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	IDType   *string `json:"id_type"`
	IDNumber *string `json:"id_number"`
	Notes    *string `json:"notes"`
}

func (s *GuestService) List(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&guests).Error; err != nil {
		return nil, apperrors.NewPersistence("list guests", err)
	}
	return guests, nil
}

// ListByType returns guests of one category, newest first.
func (s *GuestService) ListByType(ctx context.Context, guestType string) ([]models.Guest, error) {
	if !models.ValidGuestType(guestType) {
		return nil, apperrors.NewValidation(map[string]string{"guest_type": "unknown guest type"})
	}
	var guests []models.Guest
	if err := s.DB.WithContext(ctx).Where("guest_type = ?", guestType).
		Order("created_at DESC").Find(&guests).Error; err != nil {
		return nil, apperrors.NewPersistence("list guests by type", err)
	}
	return guests, nil
}

func (s *GuestService) GetByID(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.WithContext(ctx).First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistence("load guest", err)
	}
	return &guest, nil
}

// settled reports whether the guest is linked to a checked-out booking,
// which freezes everything except contact corrections.
func (s *GuestService) settled(ctx context.Context, guestID uint) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("guest_id = ? AND status = ?", guestID, models.BookingCheckedOut).
		Count(&count).Error
	if err != nil {
		return false, apperrors.NewPersistence("check settled bookings", err)
	}
	return count > 0, nil
}

// Update applies corrections to a guest record. Once a guest has a
// settled booking, only email and phone may change.
func (s *GuestService) Update(ctx context.Context, id uint, in GuestUpdate) (*models.Guest, error) {
	guest, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	locked, err := s.settled(ctx, id)
	if err != nil {
		return nil, err
	}
	if locked && (in.FullName != nil || in.IDType != nil || in.IDNumber != nil || in.Notes != nil) {
		return nil, apperrors.ErrGuestLocked
	}

	fields := map[string]string{}
	updates := map[string]interface{}{}
	if in.FullName != nil {
		if len(strings.TrimSpace(*in.FullName)) < 2 {
			fields["full_name"] = "name must be at least 2 characters"
		} else {
			updates["full_name"] = strings.TrimSpace(*in.FullName)
		}
	}
	if in.Email != nil {
		e := strings.TrimSpace(*in.Email)
		if e != "" && !emailPattern.MatchString(e) {
			fields["email"] = "invalid email address"
		} else {
			updates["email"] = e
		}
	}
	if in.Phone != nil {
		updates["phone"] = strings.TrimSpace(*in.Phone)
	}
	if in.IDType != nil {
		updates["id_type"] = strings.TrimSpace(*in.IDType)
	}
	if in.IDNumber != nil {
		updates["id_number"] = strings.TrimSpace(*in.IDNumber)
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidation(fields)
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(guest).Updates(updates).Error; err != nil {
			return nil, apperrors.NewPersistence("update guest", err)
		}
	}
	return s.GetByID(ctx, id)
}
