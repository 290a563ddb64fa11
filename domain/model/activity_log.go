package model

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Audit actions recorded in the activity log.
const (
	ActionAccountCreated  = "ACCOUNT_CREATED"
	ActionPasswordReset   = "PASSWORD_RESET"
	ActionVendorsImported = "VENDORS_IMPORTED"
	ActionStatusChanged   = "STATUS_CHANGED"
)

// ActivityLog is an append-only audit record. Rows are never updated or
// deleted by the application.
type ActivityLog struct {
	ID         string `gorm:"type:char(26);primaryKey" json:"id"`
	Action     string `gorm:"index;not null" json:"action"`
	EntityType string `gorm:"index;not null" json:"entity_type"`
	EntityID   string `gorm:"index" json:"entity_id"`
	// ActorID is the admin who triggered the action, when known.
	ActorID *string `gorm:"index" json:"actor_id,omitempty"`
	// Details is a JSON payload sanitized with SanitizeDetails before write.
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = ulid.Make().String()
	}
	return nil
}

// SanitizeDetails strips secret-bearing keys from an audit detail payload so
// plaintext credentials can never reach the log table.
func SanitizeDetails(details map[string]any) map[string]any {
	sanitized := make(map[string]any, len(details))
	for k, v := range details {
		lower := strings.ToLower(k)
		if strings.Contains(lower, "password") ||
			strings.Contains(lower, "secret") ||
			strings.Contains(lower, "token") {
			continue
		}
		sanitized[k] = v
	}
	return sanitized
}
