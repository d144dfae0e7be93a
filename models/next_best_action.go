package models

// Next-best-action statuses.
const (
	ActionStatusPending = "pending"
	ActionStatusDone    = "done"
)

// Well-known action types the client renders specially.
const (
	ActionTypeCallLeads = "call_leads"
)

// NextBestAction is a recommended task for a partner. Lower priority value
// means more urgent; only the single lowest-priority pending action is ever
// surfaced at a time.
type NextBestAction struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	PartnerID         uint   `gorm:"index;not null" json:"partner_id"`
	ActionType        string `gorm:"not null" json:"action_type"`
	Description       string `gorm:"not null" json:"description"`
	RelatedEntityType string `json:"related_entity_type,omitempty"`
	RelatedEntityID   *uint  `json:"related_entity_id,omitempty"`
	Priority          int    `gorm:"not null;default:1" json:"priority"`
	Status            string `gorm:"not null;default:'pending'" json:"status"`
}
