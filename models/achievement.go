package models

import "time"

// Achievement types.
const (
	AchievementTypeMilestone   = "milestone"
	AchievementTypeRecognition = "recognition"
)

// Achievement: static catalog entry. Threshold holds the counters a partner
// must reach before the achievement is auto-awarded, e.g.
// {"sales_count": 1} or {"earnings_this_month": 50000}.
type Achievement struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Code            string           `gorm:"uniqueIndex;not null" json:"code"` // slug of the name, e.g. "first-sale"
	Name            string           `gorm:"uniqueIndex;not null" json:"name"`
	Description     string           `gorm:"not null" json:"description"`
	BadgeIconURL    string           `json:"badge_icon_url,omitempty"`
	AchievementType string           `gorm:"not null" json:"achievement_type"`
	PointsAwarded   int              `gorm:"default:0" json:"points_awarded"`
	Threshold       map[string]int64 `gorm:"serializer:json" json:"threshold,omitempty"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

// PartnerAchievement: awarded instance. Presence of a row means earned;
// completion is never stored anywhere else.
type PartnerAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PartnerID     uint      `gorm:"index;not null" json:"partner_id"`
	AchievementID uint      `gorm:"index;not null" json:"achievement_id"`
	EarnedAt      time.Time `gorm:"autoCreateTime" json:"earned_at"`

	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement"`
}

// AchievementCatalog is the built-in catalog, written to the store at boot.
// Codes are derived from the names when the catalog is ensured.
var AchievementCatalog = []Achievement{
	{
		Name:            "First Sale",
		Description:     "Completed your first sale",
		BadgeIconURL:    "ri-fire-line",
		AchievementType: AchievementTypeMilestone,
		PointsAwarded:   10,
		Threshold:       map[string]int64{"sales_count": 1},
	},
	{
		Name:            "5 Insurance Sales",
		Description:     "Sold 5 insurance policies",
		BadgeIconURL:    "ri-award-line",
		AchievementType: AchievementTypeMilestone,
		PointsAwarded:   20,
		Threshold:       map[string]int64{"insurance_sales": 5},
	},
	{
		Name:            "Top Performer",
		Description:     "Achieved top performer status",
		BadgeIconURL:    "ri-star-line",
		AchievementType: AchievementTypeRecognition,
		PointsAwarded:   50,
		Threshold:       map[string]int64{"earnings_this_month": 50000},
	},
	{
		Name:            "10 Credit Cards",
		Description:     "Sold 10 credit cards",
		BadgeIconURL:    "ri-bank-card-line",
		AchievementType: AchievementTypeMilestone,
		PointsAwarded:   30,
		Threshold:       map[string]int64{"card_sales": 10},
	},
}
