package models

// Partner is a sales agent using the platform (the app's primary user).
// Earnings are denormalized onto the row so the dashboard and leaderboard
// never need to aggregate the sales table on read.
type Partner struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"not null" json:"name"`
	Email           string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string `gorm:"not null" json:"-"`
	PhoneNumber     string `gorm:"not null" json:"phone_number"`
	Location        string `json:"location,omitempty"`
	ProfileImageURL string `gorm:"type:text" json:"profile_image_url,omitempty"`
	Bio             string `json:"bio,omitempty"`

	EarningsThisMonth int64 `json:"earnings_this_month" gorm:"default:0"`
	TotalSalesValue   int64 `json:"total_sales_value" gorm:"default:0"`

	Timestamps
}
