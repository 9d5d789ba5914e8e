package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vph-backend/apperrors"
	"vph-backend/cache"
	"vph-backend/models"
	"vph-backend/notify"
	"vph-backend/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// refMaxRetries bounds the collision loop for the 4-digit booking
// reference suffix.
const refMaxRetries = 5

// BookingService applies the room/booking lifecycle. Every mutating
// operation runs its dependent writes inside one transaction with the
// room row locked, so a booking status and its room status always move
// together and two simultaneous check-ins cannot both claim a room.
type BookingService struct {
	DB       *gorm.DB
	Cache    *cache.Cache
	Notifier *notify.Notifier
	Log      *zap.Logger
}

func NewBookingService(db *gorm.DB, c *cache.Cache, n *notify.Notifier, log *zap.Logger) *BookingService {
	return &BookingService{DB: db, Cache: c, Notifier: n, Log: log}
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint")
}

// createBookingWithRef inserts the booking, regenerating the reference on
// a unique collision. MySQL does not abort the transaction on a duplicate
// key error, so retrying in place is safe.
func createBookingWithRef(tx *gorm.DB, booking *models.Booking, now time.Time) error {
	var lastErr error
	for attempt := 0; attempt < refMaxRetries; attempt++ {
		ref, err := utils.GenerateBookingRef(now)
		if err != nil {
			return err
		}
		booking.BookingRef = ref
		lastErr = tx.Create(booking).Error
		if lastErr == nil {
			return nil
		}
		if !isDuplicateKey(lastErr) {
			return lastErr
		}
		booking.ID = 0
	}
	return fmt.Errorf("%w: %v", apperrors.ErrRefExhausted, lastErr)
}

// afterMutation invalidates cached room views. The store has already
// committed at this point, so a failure is a partial operation: it is
// reported to the ops webhook and returned distinctly to the caller.
func (s *BookingService) afterMutation(ctx context.Context, op string) error {
	if err := s.Cache.InvalidateRooms(ctx); err != nil {
		partial := &apperrors.PartialOperation{
			Op:     op,
			Done:   "store writes committed",
			Failed: "room cache invalidation",
			Err:    err,
		}
		s.Log.Error("partial operation", zap.String("op", op), zap.Error(err))
		s.Notifier.PartialOperation(partial)
		return partial
	}
	return nil
}

// CreateReservation validates the form, creates the guest and a
// confirmed booking, and marks the room reserved. The room must be
// available or cleaning when the transaction takes its lock.
func (s *BookingService) CreateReservation(ctx context.Context, in ReservationInput) (*models.Booking, error) {
	now := time.Now().UTC()
	checkIn, checkOut, err := in.Validate(now)
	if err != nil {
		return nil, err
	}

	var booking models.Booking
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewPersistence("load room", err)
		}
		if !models.Bookable(room.Status) {
			return apperrors.ErrRoomUnavailable
		}

		guest := BuildGuest(in.Guest)
		if err := tx.Create(&guest).Error; err != nil {
			return apperrors.NewPersistence("create guest", err)
		}

		nights := models.Nights(checkIn, checkOut)
		booking = models.Booking{
			RoomID:          room.ID,
			GuestID:         guest.ID,
			CheckInDate:     checkIn,
			CheckOutDate:    checkOut,
			Status:          models.BookingConfirmed,
			TotalAmount:     float64(nights) * room.BaseRate,
			Adults:          in.Adults,
			Children:        in.Children,
			SpecialRequests: in.SpecialRequests,
		}
		if err := createBookingWithRef(tx, &booking, now); err != nil {
			if errors.Is(err, apperrors.ErrRefExhausted) {
				return err
			}
			return apperrors.NewPersistence("create booking", err)
		}

		if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).
			Update("status", models.RoomReserved).Error; err != nil {
			return apperrors.NewPersistence("update room status", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Log.Info("reservation created",
		zap.String("booking_ref", booking.BookingRef),
		zap.Uint("room_id", booking.RoomID))

	if err := s.afterMutation(ctx, "create_reservation"); err != nil {
		return &booking, err
	}
	return &booking, nil
}

// WalkInCheckIn creates the guest and a checked-in booking starting
// today, and marks the room occupied. Only an available room may take a
// walk-in.
func (s *BookingService) WalkInCheckIn(ctx context.Context, in CheckInInput) (*models.Booking, error) {
	now := time.Now().UTC()
	checkIn, checkOut, err := in.Validate(now)
	if err != nil {
		return nil, err
	}

	var booking models.Booking
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewPersistence("load room", err)
		}
		if room.Status != models.RoomAvailable {
			return apperrors.ErrRoomUnavailable
		}

		guest := BuildGuest(in.Guest)
		if err := tx.Create(&guest).Error; err != nil {
			return apperrors.NewPersistence("create guest", err)
		}

		nights := models.Nights(checkIn, checkOut)
		booking = models.Booking{
			RoomID:          room.ID,
			GuestID:         guest.ID,
			CheckInDate:     checkIn,
			CheckOutDate:    checkOut,
			Status:          models.BookingCheckedIn,
			TotalAmount:     float64(nights) * room.BaseRate,
			Adults:          in.Adults,
			Children:        in.Children,
			SpecialRequests: in.SpecialRequests,
		}
		if err := createBookingWithRef(tx, &booking, now); err != nil {
			if errors.Is(err, apperrors.ErrRefExhausted) {
				return err
			}
			return apperrors.NewPersistence("create booking", err)
		}

		if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).
			Update("status", models.RoomOccupied).Error; err != nil {
			return apperrors.NewPersistence("update room status", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Log.Info("walk-in checked in",
		zap.String("booking_ref", booking.BookingRef),
		zap.Uint("room_id", booking.RoomID))

	if err := s.afterMutation(ctx, "walk_in_check_in"); err != nil {
		return &booking, err
	}
	return &booking, nil
}

// Checkout moves a checked-in booking to checked_out and its room to
// cleaning, together. Any other booking status is rejected before a
// write occurs.
func (s *BookingService) Checkout(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewPersistence("load booking", err)
		}
		if booking.Status != models.BookingCheckedIn {
			return apperrors.ErrNotCheckedIn
		}

		if err := tx.Model(&booking).Update("status", models.BookingCheckedOut).Error; err != nil {
			return apperrors.NewPersistence("update booking status", err)
		}
		booking.Status = models.BookingCheckedOut

		if err := tx.Model(&models.Room{}).Where("id = ?", booking.RoomID).
			Update("status", models.RoomCleaning).Error; err != nil {
			return apperrors.NewPersistence("update room status", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Log.Info("booking checked out", zap.String("booking_ref", booking.BookingRef))

	if err := s.afterMutation(ctx, "checkout"); err != nil {
		return &booking, err
	}
	return &booking, nil
}

// Cancel terminalizes a pending or confirmed booking. The room returns
// to available unless another active booking still targets it.
func (s *BookingService) Cancel(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewPersistence("load booking", err)
		}
		if !models.CanBookingTransition(booking.Status, models.BookingCancelled) {
			return apperrors.ErrInvalidTransition
		}

		if err := tx.Model(&booking).Update("status", models.BookingCancelled).Error; err != nil {
			return apperrors.NewPersistence("update booking status", err)
		}
		booking.Status = models.BookingCancelled

		var remaining int64
		if err := tx.Model(&models.Booking{}).
			Where("room_id = ? AND id <> ? AND status IN ?", booking.RoomID, booking.ID,
				models.ActiveBookingStatuses).
			Count(&remaining).Error; err != nil {
			return apperrors.NewPersistence("count active bookings", err)
		}
		if remaining == 0 {
			if err := tx.Model(&models.Room{}).Where("id = ?", booking.RoomID).
				Update("status", models.RoomAvailable).Error; err != nil {
				return apperrors.NewPersistence("update room status", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Log.Info("booking cancelled", zap.String("booking_ref", booking.BookingRef))

	if err := s.afterMutation(ctx, "cancel_booking"); err != nil {
		return &booking, err
	}
	return &booking, nil
}

// RecordPayment adds a partial payment. The accumulated amount may never
// exceed the booking total, and the total itself never changes.
func (s *BookingService) RecordPayment(ctx context.Context, bookingID uint, amount float64) (*models.Booking, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidation(map[string]string{"amount": "payment must be positive"})
	}

	var booking models.Booking
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewPersistence("load booking", err)
		}
		if booking.Status == models.BookingCancelled {
			return apperrors.ErrInvalidTransition
		}

		newPaid := booking.AmountPaid + amount
		if newPaid > booking.TotalAmount {
			return apperrors.ErrOverpayment
		}
		if err := tx.Model(&booking).Update("amount_paid", newPaid).Error; err != nil {
			return apperrors.NewPersistence("update amount paid", err)
		}
		booking.AmountPaid = newPaid
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &booking, nil
}

// List returns bookings, optionally restricted to a status set, newest
// stay first, with room and guest loaded.
func (s *BookingService) List(ctx context.Context, statuses []string) ([]models.Booking, error) {
	q := s.DB.WithContext(ctx).Preload("Room").Preload("Guest").Order("check_in_date DESC")
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, apperrors.NewPersistence("list bookings", err)
	}
	return bookings, nil
}

// GetByID loads one booking with its room and guest.
func (s *BookingService) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.WithContext(ctx).Preload("Room").Preload("Guest").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistence("load booking", err)
	}
	return &booking, nil
}
