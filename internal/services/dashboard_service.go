package services

import (
	"context"
	"time"

	"stockmaster_backend/internal/models"
	"stockmaster_backend/internal/repositories"
)

const (
	weekWindow  = 7 * 24 * time.Hour
	monthWindow = 30 * 24 * time.Hour
)

// DashboardService aggregates inventory state for the dashboard. Nothing is cached.
type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
	RecentActivities(ctx context.Context, limit int) ([]models.ActivityLog, error)
	RecentTransactions(ctx context.Context, limit int) ([]models.InventoryTransaction, error)
	TransactionSummary(ctx context.Context) ([]models.TransactionTypeSummary, error)
}

type dashboardService struct {
	dashboardRepo repositories.DashboardRepository
	txnRepo       repositories.InventoryTransactionRepository
	activityRepo  repositories.ActivityLogRepository
	now           func() time.Time
}

// NewDashboardService creates a new instance of DashboardService. A nil clock means time.Now.
func NewDashboardService(dashboardRepo repositories.DashboardRepository, txnRepo repositories.InventoryTransactionRepository,
	activityRepo repositories.ActivityLogRepository, clock func() time.Time) DashboardService {
	if clock == nil {
		clock = time.Now
	}
	return &dashboardService{dashboardRepo: dashboardRepo, txnRepo: txnRepo, activityRepo: activityRepo, now: clock}
}

// DashboardWindowsAt returns the window bounds for reference instant now:
// local midnight for "today", and trailing 7 and 30 day windows.
// "Today" is midnight in now's location, so with time.Now the day boundary
// follows the server's timezone (TZ), not the database session's.
func DashboardWindowsAt(now time.Time) repositories.DashboardWindows {
	y, m, d := now.Date()
	return repositories.DashboardWindows{
		DayStart:   time.Date(y, m, d, 0, 0, 0, 0, now.Location()),
		WeekStart:  now.Add(-weekWindow),
		MonthStart: now.Add(-monthWindow),
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	return s.dashboardRepo.GetStats(ctx, DashboardWindowsAt(s.now()))
}

func (s *dashboardService) RecentActivities(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	return s.activityRepo.ListActivityLogs(ctx, models.ActivityLogFilters{
		Limit: clampLimit(limit, models.DefaultDashboardLimit),
	})
}

func (s *dashboardService) RecentTransactions(ctx context.Context, limit int) ([]models.InventoryTransaction, error) {
	return s.txnRepo.ListRecent(ctx, clampLimit(limit, models.DefaultDashboardLimit))
}

func (s *dashboardService) TransactionSummary(ctx context.Context) ([]models.TransactionTypeSummary, error) {
	return s.txnRepo.SummaryByType(ctx, s.now().Add(-monthWindow))
}
