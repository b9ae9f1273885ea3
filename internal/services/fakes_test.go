package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"stockmaster_backend/internal/models"
	"stockmaster_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// --- transactor ---

// fakeTransactor restores the product store when fn fails, like a rollback.
type fakeTransactor struct {
	products  *fakeProductRepo
	commits   int
	rollbacks int
}

func (t *fakeTransactor) WithinTx(ctx context.Context, fn func(tx repositories.SQLExecutor) error) error {
	restore := t.products.snapshot()
	if err := fn(nil); err != nil {
		restore()
		t.rollbacks++
		return err
	}
	t.commits++
	return nil
}

// --- products ---

type fakeProductRepo struct {
	mu             sync.Mutex
	products       map[int64]*models.Product
	categories     *fakeCategoryRepo
	nextID         int64
	updateStockErr error
	lockedIDs      []int64
}

func newFakeProductRepo(categories *fakeCategoryRepo) *fakeProductRepo {
	return &fakeProductRepo{products: map[int64]*models.Product{}, categories: categories, nextID: 1}
}

func (r *fakeProductRepo) snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make(map[int64]models.Product, len(r.products))
	for id, p := range r.products {
		saved[id] = *p
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.products = map[int64]*models.Product{}
		for id, p := range saved {
			p := p
			r.products[id] = &p
		}
	}
}

func (r *fakeProductRepo) add(p models.Product) *models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
	}
	if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	r.products[p.ID] = &p
	return &p
}

func (r *fakeProductRepo) withCategoryName(p models.Product) *models.Product {
	if p.CategoryID != nil && r.categories != nil {
		if c, ok := r.categories.categories[*p.CategoryID]; ok {
			p.CategoryName = ptr(c.Name)
		}
	}
	return &p
}

func (r *fakeProductRepo) CreateProduct(ctx context.Context, executor repositories.SQLExecutor, product *models.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == product.SKU {
			return 0, repositories.ErrDuplicateKey
		}
	}
	product.ID = r.nextID
	r.nextID++
	product.CreatedAt = time.Now()
	cp := *product
	r.products[product.ID] = &cp
	return product.ID, nil
}

func (r *fakeProductRepo) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.withCategoryName(*p), nil
}

func (r *fakeProductRepo) GetProductForUpdate(ctx context.Context, executor repositories.SQLExecutor, id int64) (*models.Product, error) {
	r.mu.Lock()
	r.lockedIDs = append(r.lockedIDs, id)
	r.mu.Unlock()
	return r.GetProductByID(ctx, id)
}

func (r *fakeProductRepo) UpdateProduct(ctx context.Context, executor repositories.SQLExecutor, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return repositories.ErrNotFound
	}
	for id, p := range r.products {
		if id != product.ID && p.SKU == product.SKU {
			return repositories.ErrDuplicateKey
		}
	}
	cp := *product
	cp.CategoryName = nil
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(ctx context.Context, executor repositories.SQLExecutor, id int64, stock decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Stock = stock
	if r.updateStockErr != nil {
		return r.updateStockErr
	}
	return nil
}

func (r *fakeProductRepo) DeleteProduct(ctx context.Context, id int64) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.products, id)
	return &models.Product{ID: p.ID, Name: p.Name, SKU: p.SKU}, nil
}

func (r *fakeProductRepo) ListProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Product{}
	for _, p := range r.products {
		if filters.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *filters.CategoryID) {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filters.Search)) {
			continue
		}
		out = append(out, *r.withCategoryName(*p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeProductRepo) ListLowStock(ctx context.Context, limit int) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Product{}
	for _, p := range r.products {
		if p.IsLowStock() {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stock.LessThan(out[j].Stock) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProductRepo) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) stockOf(id int64) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].Stock
}

// --- categories ---

type fakeCategoryRepo struct {
	categories map[int64]*models.Category
	nextID     int64
	deleteErr  error
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[int64]*models.Category{}, nextID: 1}
}

func (r *fakeCategoryRepo) add(name string) *models.Category {
	c := &models.Category{ID: r.nextID, Name: name}
	r.categories[c.ID] = c
	r.nextID++
	return c
}

func (r *fakeCategoryRepo) CreateCategory(ctx context.Context, category *models.Category) (int64, error) {
	for _, c := range r.categories {
		if c.Name == category.Name {
			return 0, repositories.ErrDuplicateKey
		}
	}
	category.ID = r.nextID
	r.nextID++
	cp := *category
	r.categories[category.ID] = &cp
	return category.ID, nil
}

func (r *fakeCategoryRepo) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) UpdateCategory(ctx context.Context, category *models.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return repositories.ErrNotFound
	}
	for id, c := range r.categories {
		if id != category.ID && c.Name == category.Name {
			return repositories.ErrDuplicateKey
		}
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) DeleteCategory(ctx context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.categories[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range r.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- audit ---

type auditEvent struct {
	kind     string // "transaction" or "activity"
	txn      models.InventoryTransaction
	activity models.ActivityEntry
}

type fakeAudit struct {
	events []auditEvent
}

func (a *fakeAudit) RecordTransaction(ctx context.Context, txn *models.InventoryTransaction) {
	a.events = append(a.events, auditEvent{kind: "transaction", txn: *txn})
}

func (a *fakeAudit) RecordActivity(ctx context.Context, entry models.ActivityEntry) {
	a.events = append(a.events, auditEvent{kind: "activity", activity: entry})
}

func (a *fakeAudit) transactions() []models.InventoryTransaction {
	var out []models.InventoryTransaction
	for _, e := range a.events {
		if e.kind == "transaction" {
			out = append(out, e.txn)
		}
	}
	return out
}

func (a *fakeAudit) activities() []models.ActivityEntry {
	var out []models.ActivityEntry
	for _, e := range a.events {
		if e.kind == "activity" {
			out = append(out, e.activity)
		}
	}
	return out
}

func (a *fakeAudit) kinds() []string {
	var out []string
	for _, e := range a.events {
		out = append(out, e.kind)
	}
	return out
}

// --- audit repositories ---

type fakeTxnRepo struct {
	created   []models.InventoryTransaction
	createErr error
	listed    models.TransactionFilters
	listRows  []models.InventoryTransaction
	listTotal int64
	byProduct struct {
		id    int64
		limit int
	}
	recentLimit  int
	summarySince time.Time
}

func (r *fakeTxnRepo) CreateTransaction(ctx context.Context, executor repositories.SQLExecutor, txn *models.InventoryTransaction) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	txn.ID = int64(len(r.created) + 1)
	r.created = append(r.created, *txn)
	return txn.ID, nil
}

func (r *fakeTxnRepo) ListTransactions(ctx context.Context, filters models.TransactionFilters) ([]models.InventoryTransaction, int64, error) {
	r.listed = filters
	return r.listRows, r.listTotal, nil
}

func (r *fakeTxnRepo) ListByProduct(ctx context.Context, productID int64, limit int) ([]models.InventoryTransaction, error) {
	r.byProduct.id, r.byProduct.limit = productID, limit
	return []models.InventoryTransaction{}, nil
}

func (r *fakeTxnRepo) ListRecent(ctx context.Context, limit int) ([]models.InventoryTransaction, error) {
	r.recentLimit = limit
	return []models.InventoryTransaction{}, nil
}

func (r *fakeTxnRepo) SummaryByType(ctx context.Context, since time.Time) ([]models.TransactionTypeSummary, error) {
	r.summarySince = since
	return []models.TransactionTypeSummary{}, nil
}

type fakeActivityRepo struct {
	created   []models.ActivityLog
	createErr error
	listed    models.ActivityLogFilters
}

func (r *fakeActivityRepo) CreateActivityLog(ctx context.Context, executor repositories.SQLExecutor, entry *models.ActivityLog) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	entry.ID = int64(len(r.created) + 1)
	r.created = append(r.created, *entry)
	return entry.ID, nil
}

func (r *fakeActivityRepo) ListActivityLogs(ctx context.Context, filters models.ActivityLogFilters) ([]models.ActivityLog, error) {
	r.listed = filters
	return []models.ActivityLog{}, nil
}

// --- users ---

type fakeAuthRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeAuthRepo) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, repositories.ErrDuplicateKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.Role = models.RoleUser
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return user.ID, nil
}

func (r *fakeAuthRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAuthRepo) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeAuthRepo) UpdateProfile(ctx context.Context, userID int64, name, email, companyName string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	for id, other := range r.users {
		if id != userID && other.Email == email {
			return repositories.ErrDuplicateKey
		}
	}
	u.Name, u.Email, u.CompanyName = name, email, companyName
	return nil
}

func (r *fakeAuthRepo) SetProfilePicture(ctx context.Context, userID int64, path *string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.ProfilePicture = path
	return nil
}

type fakePictureStore struct {
	saved   []string
	removed []string
	saveErr error
}

func (s *fakePictureStore) Save(prefix, ext string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	p := "/uploads/" + prefix + "-" + string(rune('a'+len(s.saved))) + ext
	s.saved = append(s.saved, p)
	return p, nil
}

func (s *fakePictureStore) Remove(publicPath string) error {
	s.removed = append(s.removed, publicPath)
	return nil
}

// --- settings ---

type fakeSettingsRepo struct {
	rows      map[int64]*models.UserSettings
	creates   int
	updateErr error
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{rows: map[int64]*models.UserSettings{}}
}

func (r *fakeSettingsRepo) GetOrCreate(ctx context.Context, defaults models.UserSettings) (*models.UserSettings, error) {
	row, ok := r.rows[defaults.UserID]
	if !ok {
		r.creates++
		defaults.ID = int64(len(r.rows) + 1)
		row = &defaults
		r.rows[defaults.UserID] = row
	}
	cp := *row
	return &cp, nil
}

func (r *fakeSettingsRepo) UpdateSettings(ctx context.Context, settings *models.UserSettings) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.rows[settings.UserID]; !ok {
		return repositories.ErrNotFound
	}
	settings.UpdatedAt = time.Now()
	cp := *settings
	r.rows[settings.UserID] = &cp
	return nil
}

// --- dashboard ---

type fakeDashboardRepo struct {
	windows repositories.DashboardWindows
	stats   models.DashboardStats
}

func (r *fakeDashboardRepo) GetStats(ctx context.Context, windows repositories.DashboardWindows) (*models.DashboardStats, error) {
	r.windows = windows
	st := r.stats
	return &st, nil
}

var errBoom = errors.New("boom")
