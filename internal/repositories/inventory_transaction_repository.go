package repositories

import (
	"context"
	"fmt"
	"time"

	"stockmaster_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// InventoryTransactionRepository defines the interface for stock movement records.
type InventoryTransactionRepository interface {
	CreateTransaction(ctx context.Context, executor SQLExecutor, txn *models.InventoryTransaction) (int64, error)
	ListTransactions(ctx context.Context, filters models.TransactionFilters) ([]models.InventoryTransaction, int64, error)
	ListByProduct(ctx context.Context, productID int64, limit int) ([]models.InventoryTransaction, error)
	ListRecent(ctx context.Context, limit int) ([]models.InventoryTransaction, error)
	SummaryByType(ctx context.Context, since time.Time) ([]models.TransactionTypeSummary, error)
}

type inventoryTransactionRepository struct {
	db *sqlx.DB
}

// NewInventoryTransactionRepository creates a new instance of InventoryTransactionRepository.
func NewInventoryTransactionRepository(db *sqlx.DB) InventoryTransactionRepository {
	return &inventoryTransactionRepository{db: db}
}

const transactionSelect = `SELECT it.id, it.product_id, it.user_id, it.type, it.quantity, it.previous_stock,
	       it.new_stock, it.reference, it.notes, it.created_at,
	       u.name AS user_name, p.name AS product_name, p.sku AS product_sku
	  FROM inventory_transactions it
	  LEFT JOIN users u ON u.id = it.user_id
	  LEFT JOIN products p ON p.id = it.product_id`

func (r *inventoryTransactionRepository) CreateTransaction(ctx context.Context, executor SQLExecutor, txn *models.InventoryTransaction) (int64, error) {
	query := `INSERT INTO inventory_transactions
	          (product_id, user_id, type, quantity, previous_stock, new_stock, reference, notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at`

	err := executor.QueryRowxContext(ctx, query,
		txn.ProductID, txn.UserID, txn.Type, txn.Quantity,
		txn.PreviousStock, txn.NewStock, txn.Reference, txn.Notes,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		return 0, translateError(err, "creating inventory transaction")
	}
	return txn.ID, nil
}

// ListTransactions returns one page of matching transactions and the total match count.
func (r *inventoryTransactionRepository) ListTransactions(ctx context.Context, filters models.TransactionFilters) ([]models.InventoryTransaction, int64, error) {
	w := transactionWhere(filters)

	var total int64
	countQuery := `SELECT COUNT(*) FROM inventory_transactions it` + w.clause()
	if err := r.db.GetContext(ctx, &total, countQuery, w.args...); err != nil {
		return nil, 0, translateError(err, "counting inventory transactions")
	}

	argCount := w.argCount()
	query := transactionSelect + w.clause() +
		fmt.Sprintf(" ORDER BY it.created_at DESC, it.id DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args := append(append([]interface{}{}, w.args...), filters.Limit, filters.Offset())

	transactions := []models.InventoryTransaction{}
	if err := r.db.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, 0, translateError(err, "listing inventory transactions")
	}
	return transactions, total, nil
}

func (r *inventoryTransactionRepository) ListByProduct(ctx context.Context, productID int64, limit int) ([]models.InventoryTransaction, error) {
	transactions := []models.InventoryTransaction{}
	query := transactionSelect + ` WHERE it.product_id = $1 ORDER BY it.created_at DESC, it.id DESC LIMIT $2`
	if err := r.db.SelectContext(ctx, &transactions, query, productID, limit); err != nil {
		return nil, translateError(err, "listing product transactions")
	}
	return transactions, nil
}

func (r *inventoryTransactionRepository) ListRecent(ctx context.Context, limit int) ([]models.InventoryTransaction, error) {
	transactions := []models.InventoryTransaction{}
	query := transactionSelect + ` ORDER BY it.created_at DESC, it.id DESC LIMIT $1`
	if err := r.db.SelectContext(ctx, &transactions, query, limit); err != nil {
		return nil, translateError(err, "listing recent transactions")
	}
	return transactions, nil
}

// SummaryByType groups transactions created at or after since by type, most frequent first.
func (r *inventoryTransactionRepository) SummaryByType(ctx context.Context, since time.Time) ([]models.TransactionTypeSummary, error) {
	summary := []models.TransactionTypeSummary{}
	query := `SELECT type, COUNT(*) AS count, COALESCE(SUM(quantity), 0) AS total_quantity
	            FROM inventory_transactions
	           WHERE created_at >= $1
	           GROUP BY type
	           ORDER BY count DESC, type`
	if err := r.db.SelectContext(ctx, &summary, query, since); err != nil {
		return nil, translateError(err, "summarising transactions")
	}
	return summary, nil
}
