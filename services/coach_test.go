package services

import (
	"sync"
	"testing"

	"partner-growth-system/models"
	"partner-growth-system/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedResponder always answers the same line, standing in for the
// random canned picker.
type scriptedResponder struct {
	reply string
}

func (r scriptedResponder) Reply(_ []models.ChatMessage, _ string) string { return r.reply }

func newTestPartner(t *testing.T, s store.Store) *models.Partner {
	t.Helper()
	p := &models.Partner{Name: "Priya", Email: "priya@example.com", PasswordHash: "x", PhoneNumber: "1"}
	require.NoError(t, s.CreatePartner(p))
	return p
}

func TestCoachHistoryDefaultsToWelcome(t *testing.T) {
	st := store.NewMemoryStore()
	coach := NewCoachService(st, scriptedResponder{reply: "ok"})
	p := newTestPartner(t, st)

	history, err := coach.History(p.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.ChatSenderAI, history[0].Sender)
	assert.Equal(t, WelcomeMessage, history[0].Content)

	// The welcome message is synthesized, not persisted.
	_, err = st.GetChatSession(p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCoachSendAppendsUserThenReply(t *testing.T) {
	st := store.NewMemoryStore()
	coach := NewCoachService(st, scriptedResponder{reply: "try the 'which means...' technique"})
	p := newTestPartner(t, st)

	reply, err := coach.Send(p.ID, "test")
	require.NoError(t, err)
	assert.Equal(t, "try the 'which means...' technique", reply)

	session, err := st.GetChatSession(p.ID)
	require.NoError(t, err)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, models.ChatSenderUser, session.Messages[0].Sender)
	assert.Equal(t, "test", session.Messages[0].Content)
	assert.Equal(t, models.ChatSenderAI, session.Messages[1].Sender)
	assert.Equal(t, reply, session.Messages[1].Content)
	assert.NotEmpty(t, session.Messages[0].ID)
	assert.NotEqual(t, session.Messages[0].ID, session.Messages[1].ID)
}

func TestCoachSendGrowsExistingSession(t *testing.T) {
	st := store.NewMemoryStore()
	coach := NewCoachService(st, scriptedResponder{reply: "noted"})
	p := newTestPartner(t, st)

	_, err := coach.Send(p.ID, "first")
	require.NoError(t, err)
	_, err = coach.Send(p.ID, "second")
	require.NoError(t, err)

	history, err := coach.History(p.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, "second", history[2].Content)

	// Append-only: insertion order stays chronological.
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].Timestamp.Before(history[i-1].Timestamp))
	}
}

func TestCannedResponderPicksFromList(t *testing.T) {
	responder := NewCannedResponder()
	reply := responder.Reply(nil, "anything")
	assert.Contains(t, responder.Responses, reply)
}

// One responder instance serves every chat request, so Reply must hold up
// under the race detector when called from parallel goroutines.
func TestCannedResponderConcurrentReplies(t *testing.T) {
	responder := NewCannedResponder()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Contains(t, responder.Responses, responder.Reply(nil, "x"))
			}
		}()
	}
	wg.Wait()
}
