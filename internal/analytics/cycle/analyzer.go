// Package cycle derives reorder cadence per component from settled purchase
// orders: the day gaps between consecutive settlement dates, their
// average/min/max, and an overall summary across all components.
package cycle

import (
	"math"
	"sort"
	"time"

	"github.com/ordatech/procost/internal/analytics"
	"github.com/ordatech/procost/internal/domain"
)

// BuildReport computes the cash-cycle report over the snapshot. Components
// with fewer than two settled orders are omitted; a single data point has no
// cycle. Pure function of the snapshot; all dates come from the inputs.
func BuildReport(snap *analytics.Snapshot) Report {
	// Settlement dates, one pass over the orders.
	settledAt := make(map[int64]time.Time, len(snap.Orders))
	for i := range snap.Orders {
		order := &snap.Orders[i]
		if when, ok := settlementDate(snap.CostsForOrder(order.ID)); ok {
			settledAt[order.ID] = when
		}
	}

	// Group settled-order line items by component.
	grouped := make(map[int64][]Entry)
	var componentIDs []int64
	for i := range snap.PurchaseLines {
		line := &snap.PurchaseLines[i]
		when, ok := settledAt[line.POID]
		if !ok {
			continue
		}
		order := snap.OrderByID(line.POID)
		if order == nil {
			continue
		}
		if _, seen := grouped[line.ComponentID]; !seen {
			componentIDs = append(componentIDs, line.ComponentID)
		}
		grouped[line.ComponentID] = append(grouped[line.ComponentID], Entry{
			Order:       order,
			SettledDate: when,
			Quantity:    line.Quantity,
		})
	}

	report := Report{Components: []ComponentCycles{}}
	var allGaps []int

	for _, componentID := range componentIDs {
		entries := grouped[componentID]
		if len(entries) < 2 {
			continue
		}

		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].SettledDate.Before(entries[j].SettledDate)
		})

		cc := ComponentCycles{
			Component:  snap.ComponentByID(componentID),
			CycleCount: len(entries) - 1,
		}

		var sum int
		for i := 1; i < len(entries); i++ {
			gap := wholeDays(entries[i].SettledDate.Sub(entries[i-1].SettledDate))
			entries[i].CycleGap = &gap
			sum += gap
			allGaps = append(allGaps, gap)
			if i == 1 || gap < cc.MinCycle {
				cc.MinCycle = gap
			}
			if gap > cc.MaxCycle {
				cc.MaxCycle = gap
			}
		}
		cc.AvgCycle = roundDiv(sum, cc.CycleCount)

		// Display order is newest-first, independent of the ascending order
		// the gaps were computed in.
		cc.Entries = make([]Entry, len(entries))
		for i, entry := range entries {
			cc.Entries[len(entries)-1-i] = entry
		}

		report.Components = append(report.Components, cc)
	}

	// Fastest-turning components first; the ranking ties break by input order.
	sort.SliceStable(report.Components, func(i, j int) bool {
		return report.Components[i].AvgCycle < report.Components[j].AvgCycle
	})

	report.Summary = summarize(report.Components, allGaps)
	return report
}

// settlementDate reports whether the order is settled, and when. Settled
// means at least one balance-type cost entry carries a payment date; the
// latest such date wins so split balance payments resolve to the final one.
func settlementDate(entries []*domain.CostEntry) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, entry := range entries {
		if !domain.IsBalanceCategory(entry.Category) || entry.PaymentDate == nil {
			continue
		}
		if !found || entry.PaymentDate.After(latest) {
			latest = *entry.PaymentDate
			found = true
		}
	}
	return latest, found
}

func summarize(components []ComponentCycles, gaps []int) Summary {
	var s Summary
	if len(gaps) == 0 {
		return s
	}

	s.TotalGaps = len(gaps)
	s.MinGap = gaps[0]
	s.MaxGap = gaps[0]
	sum := 0
	for _, gap := range gaps {
		sum += gap
		if gap < s.MinGap {
			s.MinGap = gap
		}
		if gap > s.MaxGap {
			s.MaxGap = gap
		}
	}
	s.AvgGap = roundDiv(sum, len(gaps))

	if len(components) > 0 {
		if first := components[0].Component; first != nil {
			s.FastestID = first.ID
		}
		if last := components[len(components)-1].Component; last != nil {
			s.SlowestID = last.ID
		}
	}
	return s
}

// wholeDays converts a duration into days, rounded to the nearest whole day
// so timestamps just shy of midnight still count the full day.
func wholeDays(d time.Duration) int {
	return int(math.Round(d.Hours() / 24))
}

// roundDiv divides and rounds to the nearest integer.
func roundDiv(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}
