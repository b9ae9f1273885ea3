package services

import (
	"context"

	"stockmaster_backend/internal/models"
	"stockmaster_backend/internal/repositories"
	"stockmaster_backend/pkg/utils"

	"github.com/rs/zerolog/log"
)

// AuditRecorder writes the audit trail. Recording never fails from the
// caller's point of view: errors are logged and dropped.
type AuditRecorder interface {
	RecordTransaction(ctx context.Context, txn *models.InventoryTransaction)
	RecordActivity(ctx context.Context, entry models.ActivityEntry)
}

// AuditService exposes the audit trail reads.
type AuditService interface {
	ListActivityLogs(ctx context.Context, filters models.ActivityLogFilters) ([]models.ActivityLog, error)
	ListTransactions(ctx context.Context, filters models.TransactionFilters) (*models.TransactionPage, error)
	ListProductTransactions(ctx context.Context, productID int64, limit int) ([]models.InventoryTransaction, error)
}

// AuditTrail implements both AuditRecorder and AuditService.
type AuditTrail struct {
	db           repositories.SQLExecutor
	txnRepo      repositories.InventoryTransactionRepository
	activityRepo repositories.ActivityLogRepository
}

// NewAuditService creates an AuditTrail over the transaction and activity repositories.
func NewAuditService(db repositories.SQLExecutor, txnRepo repositories.InventoryTransactionRepository, activityRepo repositories.ActivityLogRepository) *AuditTrail {
	return &AuditTrail{db: db, txnRepo: txnRepo, activityRepo: activityRepo}
}

func (s *AuditTrail) RecordTransaction(ctx context.Context, txn *models.InventoryTransaction) {
	if _, err := s.txnRepo.CreateTransaction(ctx, s.db, txn); err != nil {
		log.Error().Err(err).
			Str("component", "audit").
			Int64("product_id", txn.ProductID).
			Str("type", string(txn.Type)).
			Msg("Failed to record inventory transaction")
	}
}

func (s *AuditTrail) RecordActivity(ctx context.Context, entry models.ActivityEntry) {
	row := &models.ActivityLog{
		Type:        entry.Type,
		Description: entry.Description,
		ProductID:   entry.ProductID,
		CategoryID:  entry.CategoryID,
		Metadata:    entry.Metadata,
		IPAddress:   utils.NewNullString(entry.Actor.IPAddress),
	}
	if entry.Actor.UserID != 0 {
		uid := entry.Actor.UserID
		row.UserID = &uid
	}
	if _, err := s.activityRepo.CreateActivityLog(ctx, s.db, row); err != nil {
		log.Error().Err(err).
			Str("component", "audit").
			Str("type", string(entry.Type)).
			Msg("Failed to record activity")
	}
}

func (s *AuditTrail) ListActivityLogs(ctx context.Context, filters models.ActivityLogFilters) ([]models.ActivityLog, error) {
	filters.Limit = clampLimit(filters.Limit, models.DefaultActivityLimit)
	return s.activityRepo.ListActivityLogs(ctx, filters)
}

func (s *AuditTrail) ListTransactions(ctx context.Context, filters models.TransactionFilters) (*models.TransactionPage, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	filters.Limit = clampLimit(filters.Limit, models.DefaultTransactionLimit)
	if filters.StartDate != nil && filters.EndDate != nil && filters.EndDate.Before(*filters.StartDate) {
		return nil, validationError("end_date must not be before start_date")
	}

	transactions, total, err := s.txnRepo.ListTransactions(ctx, filters)
	if err != nil {
		return nil, err
	}
	return &models.TransactionPage{
		Transactions: transactions,
		Pagination:   models.NewPagination(filters.Page, filters.Limit, total),
	}, nil
}

func (s *AuditTrail) ListProductTransactions(ctx context.Context, productID int64, limit int) ([]models.InventoryTransaction, error) {
	return s.txnRepo.ListByProduct(ctx, productID, clampLimit(limit, models.DefaultProductTransactionLimit))
}

// clampLimit applies fallback to non-positive limits and caps large ones.
func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > models.MaxPageLimit {
		return models.MaxPageLimit
	}
	return limit
}
