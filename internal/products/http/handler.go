package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"coldstore/internal/products"
	"coldstore/internal/products/validation"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type ProductService interface {
	CreateProduct(ctx context.Context, in products.CreateProductInput) (products.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (products.ProductResponse, error)
	ListProducts(ctx context.Context, page, limit int) ([]products.ProductResponse, int64, error)
	UpdateProduct(ctx context.Context, id string, in products.UpdateProductInput) (products.ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) (products.ProductResponse, error)
}

type Handler struct {
	service ProductService
	logger  *slog.Logger
}

func NewHandler(svc ProductService, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListProducts godoc
// @Summary      List products with pagination
// @Tags         products
// @Produce      json
// @Param        page   query     int  false  "Page number"    default(1)
// @Param        limit  query     int  false  "Items per page" default(10)
// @Success      200    {object}  response
// @Failure      500    {object}  response
// @Router       /api/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	page := parseQueryInt(c.Query("page"), defaultPage)
	limit := parseQueryInt(c.Query("limit"), defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}

	items, total, err := h.service.ListProducts(c.Request.Context(), page, limit)
	if err != nil {
		h.serverError(c, "list products", err)
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, response{
		Success: true,
		Data:    items,
		Pagination: &paginationMeta{
			TotalItems:   total,
			TotalPages:   totalPages,
			CurrentPage:  page,
			ItemsPerPage: limit,
		},
	})
}

// CreateProduct godoc
// @Summary      Create a new product record
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      products.CreateProductInput  true  "Full field set"
// @Success      201   {object}  response
// @Failure      400   {object}  response
// @Failure      500   {object}  response
// @Router       /api/products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var in products.CreateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, fail("Invalid request body.", nil))
		return
	}

	created, err := h.service.CreateProduct(c.Request.Context(), in)
	if err != nil {
		h.mapError(c, "create product", err)
		return
	}

	c.JSON(http.StatusCreated, ok(created))
}

// GetProduct godoc
// @Summary      Get one product record
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response
// @Failure      400  {object}  response
// @Failure      404  {object}  response
// @Failure      500  {object}  response
// @Router       /api/products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.mapError(c, "get product", err)
		return
	}

	c.JSON(http.StatusOK, ok(product))
}

// UpdateProduct godoc
// @Summary      Update a product record with a partial field set
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true  "Product ID"
// @Param        body  body      products.UpdateProductInput  true  "Partial field set"
// @Success      200   {object}  response
// @Failure      400   {object}  response
// @Failure      404   {object}  response
// @Failure      500   {object}  response
// @Router       /api/products/{id} [put]
func (h *Handler) UpdateProduct(c *gin.Context) {
	var in products.UpdateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, fail("Invalid request body.", nil))
		return
	}

	updated, err := h.service.UpdateProduct(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.mapError(c, "update product", err)
		return
	}

	c.JSON(http.StatusOK, ok(updated))
}

// DeleteProduct godoc
// @Summary      Delete a product record
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response
// @Failure      404  {object}  response
// @Failure      500  {object}  response
// @Router       /api/products/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	if _, err := h.service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.mapError(c, "delete product", err)
		return
	}

	c.JSON(http.StatusOK, response{Success: true, Message: "Product deleted successfully."})
}

// mapError translates expected control-flow errors to their status codes and
// degrades everything else to a generic 500.
func (h *Handler) mapError(c *gin.Context, op string, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, fail("Validation Error", verr.Fields))
	case errors.Is(err, products.ErrInvalidID):
		c.JSON(http.StatusBadRequest, fail("Invalid product ID provided.", nil))
	case errors.Is(err, products.ErrNotFound):
		c.JSON(http.StatusNotFound, fail("Product not found.", nil))
	case errors.Is(err, products.ErrStoreValidation):
		c.JSON(http.StatusBadRequest, fail("Document validation failed.", nil))
	default:
		h.serverError(c, op, err)
	}
}

func (h *Handler) serverError(c *gin.Context, op string, err error) {
	h.logger.Error(op+" failed", "error", err, "path", c.Request.URL.Path)
	c.JSON(http.StatusInternalServerError, fail("Server Error", nil))
}

func parseQueryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
