package repositories

import (
	"fmt"
	"strings"

	"stockmaster_backend/internal/models"
)

// whereBuilder accumulates AND-ed conditions with positional parameters.
// Each expression carries a single %d (or indexed %[1]d) verb for its placeholder.
type whereBuilder struct {
	conditions []string
	args       []interface{}
}

func (w *whereBuilder) add(expr string, arg interface{}) {
	w.args = append(w.args, arg)
	w.conditions = append(w.conditions, fmt.Sprintf(expr, len(w.args)))
}

// argCount is the number of the next placeholder.
func (w *whereBuilder) argCount() int {
	return len(w.args) + 1
}

func (w *whereBuilder) clause() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}

func productWhere(f models.ProductFilters) *whereBuilder {
	w := &whereBuilder{}
	if f.CategoryID != nil {
		w.add("p.category_id = $%d", *f.CategoryID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		w.add("(p.name ILIKE $%[1]d OR p.sku ILIKE $%[1]d)", "%"+s+"%")
	}
	return w
}

func activityLogWhere(f models.ActivityLogFilters) *whereBuilder {
	w := &whereBuilder{}
	if f.Type != "" {
		w.add("al.type = $%d", f.Type)
	}
	if f.UserID != nil {
		w.add("al.user_id = $%d", *f.UserID)
	}
	if f.ProductID != nil {
		w.add("al.product_id = $%d", *f.ProductID)
	}
	return w
}

const dateLayout = "2006-01-02"

func transactionWhere(f models.TransactionFilters) *whereBuilder {
	w := &whereBuilder{}
	if f.Type != "" {
		w.add("it.type = $%d", f.Type)
	}
	if f.UserID != nil {
		w.add("it.user_id = $%d", *f.UserID)
	}
	if f.ProductID != nil {
		w.add("it.product_id = $%d", *f.ProductID)
	}
	if f.StartDate != nil {
		w.add("it.created_at::date >= $%d::date", f.StartDate.Format(dateLayout))
	}
	if f.EndDate != nil {
		w.add("it.created_at::date <= $%d::date", f.EndDate.Format(dateLayout))
	}
	return w
}
