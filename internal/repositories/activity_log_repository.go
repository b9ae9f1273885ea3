package repositories

import (
	"context"
	"strconv"

	"stockmaster_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// ActivityLogRepository defines the interface for activity log records.
type ActivityLogRepository interface {
	CreateActivityLog(ctx context.Context, executor SQLExecutor, entry *models.ActivityLog) (int64, error)
	ListActivityLogs(ctx context.Context, filters models.ActivityLogFilters) ([]models.ActivityLog, error)
}

type activityLogRepository struct {
	db *sqlx.DB
}

// NewActivityLogRepository creates a new instance of ActivityLogRepository.
func NewActivityLogRepository(db *sqlx.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) CreateActivityLog(ctx context.Context, executor SQLExecutor, entry *models.ActivityLog) (int64, error) {
	query := `INSERT INTO activity_logs (type, description, user_id, product_id, category_id, metadata, ip_address)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`

	err := executor.QueryRowxContext(ctx, query,
		entry.Type, entry.Description, entry.UserID, entry.ProductID,
		entry.CategoryID, entry.Metadata, entry.IPAddress,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return 0, translateError(err, "creating activity log")
	}
	return entry.ID, nil
}

// ListActivityLogs returns the newest entries first.
func (r *activityLogRepository) ListActivityLogs(ctx context.Context, filters models.ActivityLogFilters) ([]models.ActivityLog, error) {
	w := activityLogWhere(filters)
	query := `SELECT al.id, al.type, al.description, al.user_id, al.product_id, al.category_id,
	                 al.metadata, al.ip_address, al.created_at,
	                 u.name AS user_name, p.name AS product_name
	            FROM activity_logs al
	            LEFT JOIN users u ON u.id = al.user_id
	            LEFT JOIN products p ON p.id = al.product_id` +
		w.clause() + ` ORDER BY al.created_at DESC, al.id DESC LIMIT $` + strconv.Itoa(w.argCount())

	logs := []models.ActivityLog{}
	args := append(append([]interface{}{}, w.args...), filters.Limit)
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, translateError(err, "listing activity logs")
	}
	return logs, nil
}
