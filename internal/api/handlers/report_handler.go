package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ordatech/procost/internal/analytics/costing"
	"github.com/ordatech/procost/internal/analytics/cycle"
	"github.com/ordatech/procost/internal/domain"
	"github.com/ordatech/procost/internal/service"
	"github.com/ordatech/procost/pkg/money"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Response shapes. Reporting-currency amounts are whole units, foreign unit
// prices keep two decimals and shares four. The analytics structs stay full
// precision; rounding happens only here.

type allocationResponse struct {
	PONumber       string   `json:"po_number"`
	PODate         string   `json:"po_date"`
	Currency       string   `json:"currency"`
	Quantity       float64  `json:"quantity"`
	UnitCost       float64  `json:"unit_cost"`
	LineShare      float64  `json:"line_share"`
	AllocPrincipal int64    `json:"alloc_principal"`
	AllocBankFees  int64    `json:"alloc_bank_fees"`
	AllocLanded    int64    `json:"alloc_landed"`
	TotalAllocated int64    `json:"total_allocated"`
	TrueUnitCost   int64    `json:"true_unit_cost"`
	Warnings       []string `json:"warnings"`
}

type quoteLineResponse struct {
	QuoteID      int64   `json:"quote_id"`
	QuoteDate    string  `json:"quote_date"`
	SupplierName string  `json:"supplier_name"`
	Currency     string  `json:"currency"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	LineTotal    float64 `json:"line_total"`
}

type costReportResponse struct {
	Component   *domain.Component     `json:"component"`
	QuoteLines  []quoteLineResponse   `json:"quote_line_items"`
	Allocations []allocationResponse  `json:"allocations"`
	Skipped     []costing.SkippedLine `json:"skipped"`
}

type cycleEntryResponse struct {
	PONumber    string  `json:"po_number"`
	SettledDate string  `json:"settled_date"`
	Quantity    float64 `json:"quantity"`
	CycleGap    *int    `json:"cycle_gap"`
}

type componentCyclesResponse struct {
	Component  *domain.Component    `json:"component"`
	Entries    []cycleEntryResponse `json:"entries"`
	AvgCycle   int                  `json:"avg_cycle"`
	MinCycle   int                  `json:"min_cycle"`
	MaxCycle   int                  `json:"max_cycle"`
	CycleCount int                  `json:"cycle_count"`
	Band       string               `json:"band"`
}

// GetCostReport handles GET /api/v1/reports/cost/:component_id.
func (h *ReportHandler) GetCostReport(c *gin.Context) {
	componentID, err := strconv.ParseInt(c.Param("component_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid component id"})
		return
	}

	report, err := h.service.GetCostReport(c.Request.Context(), componentID)
	if err != nil {
		if errors.Is(err, service.ErrComponentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "component not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build cost report", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, buildCostReportResponse(report))
}

// GetCycleReport handles GET /api/v1/reports/cycles.
func (h *ReportHandler) GetCycleReport(c *gin.Context) {
	report, err := h.service.GetCycleReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build cycle report", "details": err.Error()})
		return
	}

	components := make([]componentCyclesResponse, 0, len(report.Components))
	for _, comp := range report.Components {
		entries := make([]cycleEntryResponse, 0, len(comp.Entries))
		for _, entry := range comp.Entries {
			entries = append(entries, cycleEntryResponse{
				PONumber:    entry.Order.PONumber,
				SettledDate: entry.SettledDate.Format("2006-01-02"),
				Quantity:    entry.Quantity,
				CycleGap:    entry.CycleGap,
			})
		}
		components = append(components, componentCyclesResponse{
			Component:  comp.Component,
			Entries:    entries,
			AvgCycle:   comp.AvgCycle,
			MinCycle:   comp.MinCycle,
			MaxCycle:   comp.MaxCycle,
			CycleCount: comp.CycleCount,
			Band:       cycle.Band(comp.AvgCycle),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"components": components,
		"summary":    report.Summary,
	})
}

func buildCostReportResponse(report *costing.Report) costReportResponse {
	quoteLines := make([]quoteLineResponse, 0, len(report.QuoteLines))
	for _, ql := range report.QuoteLines {
		resp := quoteLineResponse{
			QuoteID:   ql.Quote.ID,
			QuoteDate: ql.Quote.QuoteDate.Format("2006-01-02"),
			Currency:  ql.Line.Currency,
			Quantity:  ql.Line.Quantity,
			UnitPrice: money.Round2(ql.Line.UnitPrice),
			LineTotal: money.Round2(ql.LineTotal),
		}
		if ql.Supplier != nil {
			resp.SupplierName = ql.Supplier.SupplierName
		}
		quoteLines = append(quoteLines, resp)
	}

	allocations := make([]allocationResponse, 0, len(report.Allocations))
	for _, alloc := range report.Allocations {
		allocations = append(allocations, allocationResponse{
			PONumber:       alloc.Order.PONumber,
			PODate:         alloc.Order.PODate.Format("2006-01-02"),
			Currency:       alloc.Order.Currency,
			Quantity:       alloc.Line.Quantity,
			UnitCost:       money.Round2(alloc.Line.UnitCost),
			LineShare:      money.RoundShare(alloc.LineShare),
			AllocPrincipal: money.RoundWhole(alloc.AllocPrincipal),
			AllocBankFees:  money.RoundWhole(alloc.AllocBankFees),
			AllocLanded:    money.RoundWhole(alloc.AllocLanded),
			TotalAllocated: money.RoundWhole(alloc.TotalAllocated),
			TrueUnitCost:   money.RoundWhole(alloc.TrueUnitCost),
			Warnings:       alloc.Warnings,
		})
	}

	skipped := report.Skipped
	if skipped == nil {
		skipped = make([]costing.SkippedLine, 0)
	}

	return costReportResponse{
		Component:   report.Component,
		QuoteLines:  quoteLines,
		Allocations: allocations,
		Skipped:     skipped,
	}
}
