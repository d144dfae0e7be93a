package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"partner-growth-system/models"
	"partner-growth-system/store"

	"github.com/google/uuid"
)

// WelcomeMessage opens every empty chat history. It is synthesized on
// read, not persisted, so a session still starts with the partner's first
// real message.
const WelcomeMessage = "Hi! I'm your AI Sales Coach. How can I help you improve your sales skills today?"

// Responder picks the coach's reply to a partner message. Injected so
// tests can supply a deterministic implementation.
type Responder interface {
	Reply(history []models.ChatMessage, message string) string
}

// CannedResponder answers with a random entry from a fixed reply list.
// One instance serves every chat concurrently, so it draws from the
// package-level rand source rather than holding a *rand.Rand of its own.
type CannedResponder struct {
	Responses []string
}

func NewCannedResponder() *CannedResponder {
	return &CannedResponder{Responses: defaultCoachReplies}
}

func (r *CannedResponder) Reply(_ []models.ChatMessage, _ string) string {
	return r.Responses[rand.Intn(len(r.Responses))]
}

var defaultCoachReplies = []string{
	"I understand that challenge. Based on your recent calls, I've noticed you're explaining features well but not connecting them to benefits that resonate emotionally. Try using the 'which means...' technique to link features to customer benefits.",
	"Looking at your sales data, I see that you're most successful when selling insurance products. Have you considered focusing more on those leads? I can help you refine your pitch for insurance products.",
	"That's a great question! When handling objections about price, try acknowledging the concern first, then shift focus to the value. For example: 'I understand that cost is important. That's why I want to highlight how this investment will pay off in the long run...'",
	"Based on my analysis of top performers, the best time to call new leads is between 10-11am and 3-4pm. Would you like me to help you schedule some calls during these peak times?",
	"I've analyzed your conversation patterns and noticed you often move to closing too quickly. Try building more rapport and addressing concerns before discussing the application process. Would you like me to share some specific examples from your recent calls?",
}

// CoachService manages the per-partner coaching conversation.
type CoachService struct {
	Store     store.Store
	Responder Responder
}

func NewCoachService(s store.Store, responder Responder) *CoachService {
	return &CoachService{Store: s, Responder: responder}
}

// History returns the partner's messages, or a single welcome message when
// no session exists yet.
func (s *CoachService) History(partnerID uint) ([]models.ChatMessage, error) {
	session, err := s.Store.GetChatSession(partnerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []models.ChatMessage{{
				ID:        uuid.NewString(),
				Sender:    models.ChatSenderAI,
				Content:   WelcomeMessage,
				Timestamp: time.Now(),
			}}, nil
		}
		return nil, err
	}
	return session.Messages, nil
}

// Send appends the partner's message, then the coach's reply, as two
// sequential writes. A crash between them leaves an unanswered message,
// which the next history read simply shows as-is.
func (s *CoachService) Send(partnerID uint, content string) (string, error) {
	session, err := s.Store.GetChatSession(partnerID)
	if errors.Is(err, store.ErrNotFound) {
		session = &models.ChatSession{PartnerID: partnerID}
	} else if err != nil {
		return "", fmt.Errorf("load chat session: %w", err)
	}

	session.Messages = append(session.Messages, models.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    models.ChatSenderUser,
		Content:   content,
		Timestamp: time.Now(),
	})
	if err := s.Store.SaveChatSession(session); err != nil {
		return "", fmt.Errorf("save user message: %w", err)
	}

	reply := s.Responder.Reply(session.Messages, content)
	session.Messages = append(session.Messages, models.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    models.ChatSenderAI,
		Content:   reply,
		Timestamp: time.Now(),
	})
	if err := s.Store.SaveChatSession(session); err != nil {
		return "", fmt.Errorf("save coach reply: %w", err)
	}

	return reply, nil
}
