package services

import (
	"context"
	"time"

	"vph-backend/apperrors"
	"vph-backend/cache"
	"vph-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReportService struct {
	DB    *gorm.DB
	Cache *cache.Cache
	Log   *zap.Logger
}

func NewReportService(db *gorm.DB, c *cache.Cache, log *zap.Logger) *ReportService {
	return &ReportService{DB: db, Cache: c, Log: log}
}

// Dashboard aggregates the front page: room counts by status, today's
// arrivals/departures, and in-house guests.
type Dashboard struct {
	RoomSummary     map[string]int64 `json:"room_summary"`
	TodayCheckIns   int64            `json:"today_check_ins"`
	TodayCheckOuts  int64            `json:"today_check_outs"`
	InHouseBookings int64            `json:"in_house_bookings"`
}

// RevenueReport totals takings over a date range, counting amount paid
// on bookings whose stay started in-range.
type RevenueReport struct {
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	Bookings      int64     `json:"bookings"`
	TotalBilled   float64   `json:"total_billed"`
	TotalPaid     float64   `json:"total_paid"`
	OccupancyRate float64   `json:"occupancy_rate"`
}

// RoomSummary returns the status->count map for all rooms, served from
// the cache when warm.
func (s *ReportService) RoomSummary(ctx context.Context) (map[string]int64, error) {
	if summary, ok := s.Cache.GetRoomSummary(ctx); ok {
		return summary, nil
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := s.DB.WithContext(ctx).Model(&models.Room{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.NewPersistence("room summary", err)
	}

	summary := map[string]int64{}
	for _, row := range rows {
		summary[row.Status] = row.Count
	}
	s.Cache.SetRoomSummary(ctx, summary)
	return summary, nil
}

// GetDashboard builds the dashboard aggregate for today.
func (s *ReportService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	summary, err := s.RoomSummary(ctx)
	if err != nil {
		return nil, err
	}

	today := Today(time.Now().UTC())
	tomorrow := today.AddDate(0, 0, 1)
	dash := &Dashboard{RoomSummary: summary}

	err = s.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("check_in_date >= ? AND check_in_date < ? AND status IN ?", today, tomorrow,
			[]string{models.BookingConfirmed, models.BookingCheckedIn}).
		Count(&dash.TodayCheckIns).Error
	if err != nil {
		return nil, apperrors.NewPersistence("count today check-ins", err)
	}

	err = s.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("check_out_date >= ? AND check_out_date < ? AND status = ?", today, tomorrow,
			models.BookingCheckedIn).
		Count(&dash.TodayCheckOuts).Error
	if err != nil {
		return nil, apperrors.NewPersistence("count today check-outs", err)
	}

	err = s.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("status = ?", models.BookingCheckedIn).
		Count(&dash.InHouseBookings).Error
	if err != nil {
		return nil, apperrors.NewPersistence("count in-house bookings", err)
	}

	return dash, nil
}

// Revenue totals non-cancelled bookings with a check-in inside [from, to].
func (s *ReportService) Revenue(ctx context.Context, from, to time.Time) (*RevenueReport, error) {
	report := &RevenueReport{From: from, To: to}

	type totals struct {
		Count  int64
		Billed float64
		Paid   float64
	}
	var t totals
	err := s.DB.WithContext(ctx).Model(&models.Booking{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount),0) AS billed, COALESCE(SUM(amount_paid),0) AS paid").
		Where("check_in_date >= ? AND check_in_date <= ? AND status <> ?", from, to, models.BookingCancelled).
		Scan(&t).Error
	if err != nil {
		return nil, apperrors.NewPersistence("revenue totals", err)
	}
	report.Bookings = t.Count
	report.TotalBilled = t.Billed
	report.TotalPaid = t.Paid

	var totalRooms, occupied int64
	if err := s.DB.WithContext(ctx).Model(&models.Room{}).Count(&totalRooms).Error; err != nil {
		return nil, apperrors.NewPersistence("count rooms", err)
	}
	if err := s.DB.WithContext(ctx).Model(&models.Room{}).
		Where("status = ?", models.RoomOccupied).Count(&occupied).Error; err != nil {
		return nil, apperrors.NewPersistence("count occupied rooms", err)
	}
	if totalRooms > 0 {
		report.OccupancyRate = float64(occupied) / float64(totalRooms)
	}
	return report, nil
}

// RecentBookings lists the newest bookings for the activity feed.
func (s *ReportService) RecentBookings(ctx context.Context, limit int) ([]models.Booking, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var bookings []models.Booking
	err := s.DB.WithContext(ctx).Preload("Room").Preload("Guest").
		Order("created_at DESC").Limit(limit).Find(&bookings).Error
	if err != nil {
		return nil, apperrors.NewPersistence("recent bookings", err)
	}
	return bookings, nil
}
