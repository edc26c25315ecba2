package domain

import "strings"

// Purchase order lifecycle statuses as entered in the forms. The analytics
// layer does not branch on these; settlement is derived from cost entries.
const (
	StatusDraft     = "draft"
	StatusOrdered   = "ordered"
	StatusShipped   = "shipped"
	StatusReceived  = "received"
	StatusCancelled = "cancelled"
)

var poStatusLabels = map[string]string{
	StatusDraft:     "Draft",
	StatusOrdered:   "Ordered",
	StatusShipped:   "Shipped",
	StatusReceived:  "Received",
	StatusCancelled: "Cancelled",
}

// POStatusLabel returns a human-readable label for a PO status value.
func POStatusLabel(status string) string {
	if label, ok := poStatusLabels[strings.ToLower(strings.TrimSpace(status))]; ok {
		return label
	}
	return "Draft"
}

// IsValidPOStatus reports whether the value is one of the form statuses.
func IsValidPOStatus(status string) bool {
	_, ok := poStatusLabels[strings.ToLower(strings.TrimSpace(status))]
	return ok
}
