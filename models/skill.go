package models

import "time"

// Skill: static catalog entry (e.g., "Sales Pitch", "Product Knowledge").
type Skill struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Category    string `gorm:"not null" json:"category"`
	Description string `json:"description,omitempty"`
}

// PartnerSkill links a partner to a catalog skill with a numeric rating.
// Rating stays within [0, MaxRating]; the dashboard aggregates these into
// a single progress percentage.
type PartnerSkill struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	PartnerID        uint       `gorm:"index;not null" json:"partner_id"`
	SkillID          uint       `gorm:"not null" json:"skill_id"`
	Rating           int        `gorm:"not null" json:"rating"`
	MaxRating        int        `gorm:"not null;default:10" json:"max_rating"`
	LastAssessedAt   *time.Time `json:"last_assessed_at,omitempty"`
	AssessmentSource string     `json:"assessment_source,omitempty"` // e.g., "ai_analysis", "self"

	Skill Skill `gorm:"foreignKey:SkillID" json:"skill"`
}
