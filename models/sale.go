package models

import "time"

// Sale records a closed deal. Sale counters feed achievement thresholds;
// earnings are rolled up onto the partner row when a sale is recorded.
type Sale struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	PartnerID        uint      `gorm:"index;not null" json:"partner_id"`
	LeadID           *uint     `json:"lead_id,omitempty"`
	ProductName      string    `gorm:"not null" json:"product_name"`
	ProductCategory  string    `gorm:"not null" json:"product_category"` // e.g., "insurance", "credit_card"
	SaleAmount       int64     `gorm:"not null" json:"sale_amount"`
	CommissionEarned int64     `gorm:"not null" json:"commission_earned"`
	SaleDate         time.Time `gorm:"autoCreateTime" json:"sale_date"`
}
