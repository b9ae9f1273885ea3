package repositories

import (
	"context"
	"time"

	"stockmaster_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// DashboardWindows are the lower bounds of the time-windowed counters.
type DashboardWindows struct {
	DayStart   time.Time
	WeekStart  time.Time
	MonthStart time.Time
}

// DashboardRepository computes dashboard aggregates straight from the store.
type DashboardRepository interface {
	GetStats(ctx context.Context, windows DashboardWindows) (*models.DashboardStats, error)
}

type dashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository creates a new instance of DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// Low and out-of-stock predicates for the dashboard counters.
const (
	lowStockPredicate   = `stock <= min_stock AND stock > 0`
	outOfStockPredicate = `stock = 0`
)

func (r *dashboardRepository) GetStats(ctx context.Context, windows DashboardWindows) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	counters := []struct {
		dest  *int64
		query string
		args  []interface{}
	}{
		{&stats.TotalProducts, `SELECT COUNT(*) FROM products`, nil},
		{&stats.TotalCategories, `SELECT COUNT(*) FROM categories`, nil},
		{&stats.LowStock, `SELECT COUNT(*) FROM products WHERE ` + lowStockPredicate, nil},
		{&stats.OutOfStock, `SELECT COUNT(*) FROM products WHERE ` + outOfStockPredicate, nil},
		{&stats.RecentActivity, `SELECT COUNT(*) FROM activity_logs WHERE created_at >= $1`, []interface{}{windows.WeekStart}},
		{&stats.TodayTransactions, `SELECT COUNT(*) FROM inventory_transactions WHERE created_at >= $1`, []interface{}{windows.DayStart}},
		{&stats.WeeklyTransactions, `SELECT COUNT(*) FROM inventory_transactions WHERE created_at >= $1`, []interface{}{windows.WeekStart}},
		{&stats.MonthlyTransactions, `SELECT COUNT(*) FROM inventory_transactions WHERE created_at >= $1`, []interface{}{windows.MonthStart}},
	}
	for _, counter := range counters {
		if err := r.db.GetContext(ctx, counter.dest, counter.query, counter.args...); err != nil {
			return nil, translateError(err, "computing dashboard stats")
		}
	}

	if err := r.db.GetContext(ctx, &stats.TotalValue,
		`SELECT COALESCE(SUM(price * stock), 0) FROM products`); err != nil {
		return nil, translateError(err, "computing inventory value")
	}
	return stats, nil
}
