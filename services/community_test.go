package services

import (
	"context"
	"testing"

	"partner-growth-system/models"
	"partner-growth-system/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEarner(t *testing.T, st store.Store, name, email string, earnings int64) *models.Partner {
	t.Helper()
	p := &models.Partner{Name: name, Email: email, PasswordHash: "x", PhoneNumber: "1", EarningsThisMonth: earnings}
	require.NoError(t, st.CreatePartner(p))
	return p
}

func TestTopPerformersRankedFromStore(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewCommunityService(st, nil)

	seedEarner(t, st, "Priya", "priya@example.com", 32800)
	seedEarner(t, st, "Neha", "neha@example.com", 87500)
	seedEarner(t, st, "Ravi", "ravi@example.com", 72300)
	seedEarner(t, st, "Anisha", "anisha@example.com", 68750)

	entries, err := svc.TopPerformers(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Neha", entries[0].Name)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Ravi", entries[1].Name)
	assert.Equal(t, "Anisha", entries[2].Name)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestOverviewShapesBestPractices(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewCommunityService(st, nil)

	author := seedEarner(t, st, "Neha", "neha@example.com", 87500)
	shared, err := svc.ShareBestPractice(author.ID, "Always follow up within 24 hours of the first call.")
	require.NoError(t, err)
	assert.Equal(t, "Neha", shared.Partner.Name)

	view, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, view.BestPractices, 1)
	post := view.BestPractices[0]
	assert.Equal(t, shared.ID, post.ID)
	assert.Equal(t, "Neha", post.Author.Name)
	assert.Equal(t, 0, post.Likes)
	assert.Equal(t, 0, post.DaysAgo)
}

func TestLikeBestPractice(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewCommunityService(st, nil)
	author := seedEarner(t, st, "Neha", "neha@example.com", 87500)

	shared, err := svc.ShareBestPractice(author.ID, "Lead with the customer's goal, not the product.")
	require.NoError(t, err)

	liked, err := svc.LikeBestPractice(shared.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.LikesCount)

	liked, err = svc.LikeBestPractice(shared.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, liked.LikesCount)

	_, err = svc.LikeBestPractice(999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
