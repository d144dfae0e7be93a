package models

import "time"

// Chat message senders.
const (
	ChatSenderUser = "user"
	ChatSenderAI   = "ai"
)

// ChatMessage is one entry in a coach session. IDs are uuids generated at
// append time; messages are never edited or removed, so insertion order is
// chronological order.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession holds a partner's AI-coach conversation, one session per
// partner, created lazily on the first message. The message log is stored
// as a JSON column and only ever appended to.
type ChatSession struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	PartnerID uint          `gorm:"uniqueIndex;not null" json:"partner_id"`
	Messages  []ChatMessage `gorm:"serializer:json" json:"messages"`

	Timestamps
}
