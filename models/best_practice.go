package models

import "time"

// BestPractice is a community tip shared by a partner.
type BestPractice struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PartnerID     uint      `gorm:"index;not null" json:"partner_id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	LikesCount    int       `gorm:"default:0" json:"likes_count"`
	CommentsCount int       `gorm:"default:0" json:"comments_count"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	Partner Partner `gorm:"foreignKey:PartnerID" json:"partner"`
}
