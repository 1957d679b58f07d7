package domain

type AlertType string

const (
	AlertTypeOverdue        AlertType = "OVERDUE"
	AlertTypeLowStock       AlertType = "LOW_STOCK"
	AlertTypePendingPayment AlertType = "PENDING_PAYMENT"
)

type AlertSeverity string

const (
	AlertSeverityHigh   AlertSeverity = "high"
	AlertSeverityMedium AlertSeverity = "medium"
	AlertSeverityLow    AlertSeverity = "low"
)

// Alert is a derived notice. Ids are synthetic and only unique within
// one derivation pass; nothing persists them.
type Alert struct {
	ID       string        `json:"id"`
	Type     AlertType     `json:"type"`
	Message  string        `json:"message"`
	Severity AlertSeverity `json:"severity"`
}
