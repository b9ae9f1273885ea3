package handlers

import (
	"net/http"
	"strings"

	"stockmaster_backend/internal/models"
	"stockmaster_backend/internal/services"
	"stockmaster_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductHandler serves products, stock adjustments and low-stock alerts.
type ProductHandler struct {
	productService services.ProductService
	stockService   services.StockService
	auditService   services.AuditService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ps services.ProductService, ss services.StockService, as services.AuditService) *ProductHandler {
	return &ProductHandler{productService: ps, stockService: ss, auditService: as}
}

// AdjustStockRequest DTO
type AdjustStockRequest struct {
	Quantity *decimal.Decimal `json:"quantity"`
	Type     string           `json:"type"`
	Notes    *string          `json:"notes"`
}

// GetProducts lists products, optionally filtered by category_id and a name search.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	filters := models.ProductFilters{
		CategoryID: utils.ParseOptionalInt64(c.Query("category_id")),
		Search:     strings.TrimSpace(c.Query("search")),
	}
	products, err := h.productService.ListProducts(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err, "Error fetching products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Error fetching product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), req, currentActor(c))
	if err != nil {
		respondServiceError(c, err, "Error creating product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.productService.UpdateProduct(c.Request.Context(), id, req, currentActor(c))
	if err != nil {
		respondServiceError(c, err, "Error updating product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.productService.DeleteProduct(c.Request.Context(), id, currentActor(c)); err != nil {
		respondServiceError(c, err, "Error deleting product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// AdjustStock applies one IN, OUT or ADJUST movement.
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AdjustStockRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Quantity == nil || strings.TrimSpace(req.Type) == "" {
		utils.RespondValidationFailed(c, "Quantity and type are required")
		return
	}

	result, err := h.stockService.ApplyStockChange(c.Request.Context(), services.StockChangeRequest{
		ProductID: id,
		Type:      models.TransactionType(strings.ToUpper(strings.TrimSpace(req.Type))),
		Quantity:  *req.Quantity,
		Notes:     utils.TrimPtr(req.Notes),
		Actor:     currentActor(c),
	})
	if err != nil {
		respondServiceError(c, err, "Error adjusting stock")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Stock " + strings.ToLower(string(result.Transaction.Type)) + " successful",
		"product":     result.Product,
		"transaction": result.Transaction,
	})
}

// GetProductTransactions returns the newest transactions of one product.
func (h *ProductHandler) GetProductTransactions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	limit := utils.ParsePositiveInt(c.Query("limit"), models.DefaultProductTransactionLimit)
	transactions, err := h.auditService.ListProductTransactions(c.Request.Context(), id, limit)
	if err != nil {
		respondServiceError(c, err, "Error fetching product transactions")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// GetLowStockAlerts lists in-stock products at or below their minimum.
func (h *ProductHandler) GetLowStockAlerts(c *gin.Context) {
	limit := utils.ParsePositiveInt(c.Query("limit"), models.DefaultLowStockLimit)
	products, err := h.productService.ListLowStock(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err, "Error fetching low stock alerts")
		return
	}
	c.JSON(http.StatusOK, products)
}

// CategoryHandler serves categories.
type CategoryHandler struct {
	categoryService services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(cs services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: cs}
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Error fetching categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Error fetching category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req services.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.CreateCategory(c.Request.Context(), req, currentActor(c))
	if err != nil {
		respondServiceError(c, err, "Error creating category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, req, currentActor(c))
	if err != nil {
		respondServiceError(c, err, "Error updating category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.categoryService.DeleteCategory(c.Request.Context(), id, currentActor(c)); err != nil {
		respondServiceError(c, err, "Error deleting category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
