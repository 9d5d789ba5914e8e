package services

import (
	"context"
	"errors"

	"vph-backend/apperrors"
	"vph-backend/cache"
	"vph-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomService struct {
	DB    *gorm.DB
	Cache *cache.Cache
	Log   *zap.Logger
}

func NewRoomService(db *gorm.DB, c *cache.Cache, log *zap.Logger) *RoomService {
	return &RoomService{DB: db, Cache: c, Log: log}
}

// List returns rooms, optionally filtered to a status set, ordered by
// room number.
func (s *RoomService) List(ctx context.Context, statuses []string) ([]models.Room, error) {
	q := s.DB.WithContext(ctx).Order("room_number ASC")
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, apperrors.NewPersistence("list rooms", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistence("load room", err)
	}
	return &room, nil
}

// Create adds a room. New rooms start available unless given another
// valid status.
func (s *RoomService) Create(ctx context.Context, room models.Room) (*models.Room, error) {
	fields := map[string]string{}
	if room.RoomNumber == "" {
		fields["room_number"] = "room number is required"
	}
	if !models.ValidRoomType(room.RoomType) {
		fields["room_type"] = "unknown room type"
	}
	if room.BaseRate <= 0 {
		fields["base_rate"] = "base rate must be positive"
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	} else if !models.ValidRoomStatus(room.Status) {
		fields["status"] = "unknown room status"
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidation(fields)
	}

	if err := s.DB.WithContext(ctx).Create(&room).Error; err != nil {
		return nil, apperrors.NewPersistence("create room", err)
	}
	s.invalidate(ctx)
	return &room, nil
}

// roomUpdateColumns are the descriptive fields a PATCH may touch; status
// moves through SetStatus only, never here.
var roomUpdateColumns = map[string]bool{
	"room_number": true,
	"room_type":   true,
	"floor":       true,
	"base_rate":   true,
	"notes":       true,
	"amenities":   true,
}

// Update changes the descriptive fields of a room.
func (s *RoomService) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Room, error) {
	filtered := map[string]interface{}{}
	for col, val := range updates {
		if roomUpdateColumns[col] {
			filtered[col] = val
		}
	}

	if rt, ok := filtered["room_type"].(string); ok && !models.ValidRoomType(rt) {
		return nil, apperrors.NewValidation(map[string]string{"room_type": "unknown room type"})
	}

	room, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(filtered) > 0 {
		if err := s.DB.WithContext(ctx).Model(room).Updates(filtered).Error; err != nil {
			return nil, apperrors.NewPersistence("update room", err)
		}
	}
	return s.GetByID(ctx, id)
}

// SetStatus applies a housekeeping status change (servicing complete,
// maintenance hold). Occupied and reserved belong to the booking
// lifecycle and cannot be set by hand; all moves are checked against the
// room transition table.
func (s *RoomService) SetStatus(ctx context.Context, id uint, to string) (*models.Room, error) {
	if !models.ValidRoomStatus(to) {
		return nil, apperrors.NewValidation(map[string]string{"status": "unknown room status"})
	}
	if to == models.RoomOccupied || to == models.RoomReserved {
		return nil, apperrors.ErrInvalidTransition
	}

	var room models.Room
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewPersistence("load room", err)
		}
		if !models.CanRoomTransition(room.Status, to) {
			return apperrors.ErrInvalidTransition
		}
		if err := tx.Model(&room).Update("status", to).Error; err != nil {
			return apperrors.NewPersistence("update room status", err)
		}
		room.Status = to
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Log.Info("room status changed",
		zap.String("room_number", room.RoomNumber), zap.String("status", to))
	s.invalidate(ctx)
	return &room, nil
}

func (s *RoomService) invalidate(ctx context.Context) {
	if err := s.Cache.InvalidateRooms(ctx); err != nil {
		s.Log.Warn("room cache invalidation failed", zap.Error(err))
	}
}
