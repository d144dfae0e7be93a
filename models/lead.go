package models

import "time"

// Lead statuses. A lead moves new → contacted → converted/lost.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// HotLeadScore is the match score at or above which a lead counts as "hot".
const HotLeadScore = 80

// Lead is a prospective customer assigned to at most one partner.
// AIMatchScore is nil until the scoring pipeline has seen the lead,
// otherwise an integer 0–100.
type Lead struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	AssignedPartnerID *uint      `gorm:"index" json:"assigned_partner_id,omitempty"`
	Name              string     `gorm:"not null" json:"name"`
	PhoneNumber       string     `gorm:"not null" json:"phone_number"`
	ProductInterest   []string   `gorm:"serializer:json" json:"product_interest"`
	Status            string     `gorm:"not null;default:'new'" json:"status"`
	LeadSource        string     `json:"lead_source,omitempty"` // e.g., "website", "referral"
	AIMatchScore      *int       `json:"ai_match_score,omitempty"`
	AIPitchTip        string     `gorm:"type:text" json:"ai_pitch_tip,omitempty"`
	LastContactedAt   *time.Time `json:"last_contacted_at,omitempty"`

	Timestamps
}

// MatchScore returns the score with nil treated as 0, the ordering key
// used everywhere a lead list is ranked.
func (l *Lead) MatchScore() int {
	if l.AIMatchScore == nil {
		return 0
	}
	return *l.AIMatchScore
}

// IsHot reports whether the lead clears the hot-lead score bar.
func (l *Lead) IsHot() bool {
	return l.MatchScore() >= HotLeadScore
}

// ValidLeadStatus reports whether s is one of the four lead statuses.
func ValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}
