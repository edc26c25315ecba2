package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ordatech/procost/internal/domain"
	"github.com/ordatech/procost/internal/service"
)

type BrowseHandler struct {
	service *service.BrowseService
}

func NewBrowseHandler(service *service.BrowseService) *BrowseHandler {
	return &BrowseHandler{service: service}
}

func (h *BrowseHandler) parseFilter(c *gin.Context) domain.ListFilter {
	filter := domain.ListFilter{
		Page:     1,
		PageSize: 50,
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	}

	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "50")); err == nil && size > 0 {
		filter.PageSize = size
	}

	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.SortBy = strings.ToLower(strings.TrimSpace(c.Query("sort_by")))

	sortDir := strings.ToLower(strings.TrimSpace(c.Query("sort_dir")))
	if sortDir != "desc" {
		sortDir = "asc"
	}
	filter.SortDir = sortDir

	return filter
}

// ListComponents handles GET /api/v1/components.
func (h *BrowseHandler) ListComponents(c *gin.Context) {
	filter := h.parseFilter(c)
	components, total, err := h.service.ListComponents(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch components", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": components,
		"total": total,
	})
}

// ListSuppliers handles GET /api/v1/suppliers.
func (h *BrowseHandler) ListSuppliers(c *gin.Context) {
	filter := h.parseFilter(c)
	suppliers, total, err := h.service.ListSuppliers(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch suppliers", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": suppliers,
		"total": total,
	})
}

// GetPurchaseOrder handles GET /api/v1/purchase_orders/:id.
func (h *BrowseHandler) GetPurchaseOrder(c *gin.Context) {
	poID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase order id"})
		return
	}

	detail, err := h.service.GetPurchaseOrder(c.Request.Context(), poID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch purchase order", "details": err.Error()})
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "purchase order not found"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ListQuotesForComponent handles GET /api/v1/components/:component_id/quotes.
func (h *BrowseHandler) ListQuotesForComponent(c *gin.Context) {
	componentID, err := strconv.ParseInt(c.Param("component_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid component id"})
		return
	}

	quotes, err := h.service.ListQuotesForComponent(c.Request.Context(), componentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch quotes", "details": err.Error()})
		return
	}
	if quotes == nil {
		quotes = make([]*domain.PriceQuote, 0)
	}

	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}
