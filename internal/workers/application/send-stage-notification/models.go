// internal/workers/application/send-stage-notification/models.go
package sendstagenotification

type Input struct {
	UserEmail   string                 `json:"userEmail"`
	PhoneNumber string                 `json:"phoneNumber,omitempty"`
	Stage       string                 `json:"stage"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)
