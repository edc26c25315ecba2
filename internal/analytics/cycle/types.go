package cycle

import (
	"time"

	"github.com/ordatech/procost/internal/domain"
)

// Entry is one settled purchase of a component. CycleGap is the whole-day
// distance to the previous settlement in chronological order; nil for the
// earliest entry.
type Entry struct {
	Order       *domain.PurchaseOrder `json:"po"`
	SettledDate time.Time             `json:"settled_date"`
	Quantity    float64               `json:"quantity"`
	CycleGap    *int                  `json:"cycle_gap"`
}

// ComponentCycles is the reorder-cadence view for one component. Entries are
// newest-first for display; the gap statistics are integer days.
type ComponentCycles struct {
	Component  *domain.Component `json:"component"`
	Entries    []Entry           `json:"entries"`
	AvgCycle   int               `json:"avg_cycle"`
	MinCycle   int               `json:"min_cycle"`
	MaxCycle   int               `json:"max_cycle"`
	CycleCount int               `json:"cycle_count"`
}

// Summary aggregates every individual gap across all components, not the
// per-component averages.
type Summary struct {
	TotalGaps int   `json:"total_gaps"`
	AvgGap    int   `json:"avg_gap"`
	MinGap    int   `json:"min_gap"`
	MaxGap    int   `json:"max_gap"`
	FastestID int64 `json:"fastest_component_id"`
	SlowestID int64 `json:"slowest_component_id"`
}

// Report is the full cash-cycle output: components ranked fastest-turning
// first, plus the overall summary.
type Report struct {
	Components []ComponentCycles `json:"components"`
	Summary    Summary           `json:"summary"`
}

// Speed bands for presentation.
const (
	BandVeryFast = "very fast"
	BandFast     = "fast"
	BandModerate = "moderate"
	BandSlow     = "slow"
)

// Band buckets a gap in days into the display bands used by the reorder view.
func Band(gapDays int) string {
	switch {
	case gapDays <= 30:
		return BandVeryFast
	case gapDays <= 60:
		return BandFast
	case gapDays <= 120:
		return BandModerate
	default:
		return BandSlow
	}
}
