package store

import (
	"testing"
	"time"

	"partner-growth-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// both implementations must behave identically, so every test runs against
// each backend.
func eachStore(t *testing.T, run func(t *testing.T, s Store)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		run(t, NewMemoryStore())
	})

	t.Run("gorm", func(t *testing.T) {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
		require.NoError(t, err)
		require.NoError(t, Migrate(db))
		run(t, NewGormStore(db))
	})
}

func createPartner(t *testing.T, s Store, name, email string, earnings int64) *models.Partner {
	t.Helper()
	p := &models.Partner{
		Name:              name,
		Email:             email,
		PasswordHash:      "x",
		PhoneNumber:       "+91 00000 00000",
		EarningsThisMonth: earnings,
	}
	require.NoError(t, s.CreatePartner(p))
	require.NotZero(t, p.ID)
	return p
}

func TestPartnerLifecycle(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		p := createPartner(t, s, "Priya Singh", "priya@example.com", 32800)

		byID, err := s.GetPartnerByID(p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Priya Singh", byID.Name)

		byEmail, err := s.GetPartnerByEmail("priya@example.com")
		require.NoError(t, err)
		assert.Equal(t, p.ID, byEmail.ID)

		_, err = s.GetPartnerByEmail("nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)

		dup := &models.Partner{Name: "Other", Email: "priya@example.com", PasswordHash: "x", PhoneNumber: "1"}
		assert.ErrorIs(t, s.CreatePartner(dup), ErrDuplicate)

		byID.EarningsThisMonth = 40000
		require.NoError(t, s.UpdatePartner(byID))
		again, err := s.GetPartnerByID(p.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 40000, again.EarningsThisMonth)
	})
}

func TestLeadRoundTrip(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		p := createPartner(t, s, "Priya", "priya@example.com", 0)

		score := 94
		in := &models.Lead{
			AssignedPartnerID: &p.ID,
			Name:              "Rahul Sharma",
			PhoneNumber:       "+91 98765 43210",
			ProductInterest:   []string{"Term Insurance", "Mutual Funds"},
			Status:            models.LeadStatusNew,
			LeadSource:        "website",
			AIMatchScore:      &score,
			AIPitchTip:        "Highlight term insurance for the new child.",
		}
		require.NoError(t, s.CreateLead(in))
		require.NotZero(t, in.ID)
		assert.False(t, in.CreatedAt.IsZero())

		out, err := s.GetLeadByID(in.ID)
		require.NoError(t, err)
		assert.Equal(t, in.Name, out.Name)
		assert.Equal(t, in.PhoneNumber, out.PhoneNumber)
		assert.Equal(t, in.ProductInterest, out.ProductInterest)
		assert.Equal(t, in.Status, out.Status)
		assert.Equal(t, in.LeadSource, out.LeadSource)
		require.NotNil(t, out.AIMatchScore)
		assert.Equal(t, 94, *out.AIMatchScore)
		assert.Equal(t, in.AIPitchTip, out.AIPitchTip)
	})
}

func TestLeadValidation(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		p := createPartner(t, s, "Priya", "priya@example.com", 0)

		bad := 101
		err := s.CreateLead(&models.Lead{Name: "X", PhoneNumber: "1", AIMatchScore: &bad, AssignedPartnerID: &p.ID})
		assert.Error(t, err)

		err = s.CreateLead(&models.Lead{Name: "X", PhoneNumber: "1", Status: "archived", AssignedPartnerID: &p.ID})
		assert.Error(t, err)

		ghost := uint(999)
		err = s.CreateLead(&models.Lead{Name: "X", PhoneNumber: "1", AssignedPartnerID: &ghost})
		assert.ErrorIs(t, err, ErrNotFound)

		// Unassigned leads are fine, and status defaults to new.
		free := &models.Lead{Name: "Free", PhoneNumber: "2"}
		require.NoError(t, s.CreateLead(free))
		assert.Equal(t, models.LeadStatusNew, free.Status)
	})
}

func TestListLeadsByPartnerKeepsInsertionOrder(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		p := createPartner(t, s, "Priya", "priya@example.com", 0)
		other := createPartner(t, s, "Neha", "neha@example.com", 0)

		names := []string{"first", "second", "third"}
		for _, name := range names {
			require.NoError(t, s.CreateLead(&models.Lead{Name: name, PhoneNumber: "1", AssignedPartnerID: &p.ID}))
		}
		require.NoError(t, s.CreateLead(&models.Lead{Name: "elsewhere", PhoneNumber: "1", AssignedPartnerID: &other.ID}))

		leads, err := s.ListLeadsByPartner(p.ID)
		require.NoError(t, err)
		require.Len(t, leads, 3)
		for i, lead := range leads {
			assert.Equal(t, names[i], lead.Name)
		}
	})
}

func TestPartnerSkillRatingBounds(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		p := createPartner(t, s, "Priya", "priya@example.com", 0)
		sk := &models.Skill{Name: "Sales Pitch", Category: "Sales"}
		require.NoError(t, s.CreateSkill(sk))

		assert.Error(t, s.CreatePartnerSkill(&models.PartnerSkill{PartnerID: p.ID, SkillID: sk.ID, Rating: 11, MaxRating: 10}))
		assert.Error(t, s.CreatePartnerSkill(&models.PartnerSkill{PartnerID: p.ID, SkillID: sk.ID, Rating: -1, MaxRating: 10}))
		require.NoError(t, s.CreatePartnerSkill(&models.PartnerSkill{PartnerID: p.ID, SkillID: sk.ID, Rating: 7, MaxRating: 10}))

		ratings, err := s.ListPartnerSkills(p.ID)
		require.NoError(t, err)
		require.Len(t, ratings, 1)
		assert.Equal(t, "Sales Pitch", ratings[0].Skill.Name)
	})
}

func TestAchievementsByCode(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		a := &models.Achievement{Code: "first-sale", Name: "First Sale", Description: "d", AchievementType: models.AchievementTypeMilestone}
		require.NoError(t, s.CreateAchievement(a))

		got, err := s.GetAchievementByCode("first-sale")
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)

		_, err = s.GetAchievementByCode("missing")
		assert.ErrorIs(t, err, ErrNotFound)

		p := createPartner(t, s, "Priya", "priya@example.com", 0)
		require.NoError(t, s.CreatePartnerAchievement(&models.PartnerAchievement{PartnerID: p.ID, AchievementID: a.ID}))
		earned, err := s.ListPartnerAchievements(p.ID)
		require.NoError(t, err)
		require.Len(t, earned, 1)
		assert.Equal(t, "First Sale", earned[0].Achievement.Name)
		assert.False(t, earned[0].EarnedAt.IsZero())
	})
}

func TestBestPracticesNewestFirst(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		p := createPartner(t, s, "Neha", "neha@example.com", 0)

		now := time.Now()
		for i, age := range []time.Duration{5 * 24 * time.Hour, 2 * 24 * time.Hour, 24 * time.Hour} {
			bp := &models.BestPractice{
				PartnerID: p.ID,
				Content:   "tip",
				CreatedAt: now.Add(-age),
			}
			require.NoError(t, s.CreateBestPractice(bp), "practice %d", i)
		}

		practices, err := s.ListBestPractices(2)
		require.NoError(t, err)
		require.Len(t, practices, 2)
		assert.True(t, practices[0].CreatedAt.After(practices[1].CreatedAt))
		assert.Equal(t, "Neha", practices[0].Partner.Name)
	})
}

func TestChatSessionAppend(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		p := createPartner(t, s, "Priya", "priya@example.com", 0)

		_, err := s.GetChatSession(p.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		session := &models.ChatSession{
			PartnerID: p.ID,
			Messages: []models.ChatMessage{
				{ID: "m1", Sender: models.ChatSenderUser, Content: "hello", Timestamp: time.Now()},
			},
		}
		require.NoError(t, s.SaveChatSession(session))
		require.NotZero(t, session.ID)

		loaded, err := s.GetChatSession(p.ID)
		require.NoError(t, err)
		loaded.Messages = append(loaded.Messages, models.ChatMessage{ID: "m2", Sender: models.ChatSenderAI, Content: "hi", Timestamp: time.Now()})
		require.NoError(t, s.SaveChatSession(loaded))

		again, err := s.GetChatSession(p.ID)
		require.NoError(t, err)
		require.Len(t, again.Messages, 2)
		assert.Equal(t, "m1", again.Messages[0].ID)
		assert.Equal(t, "m2", again.Messages[1].ID)
	})
}

// Updates against ids that were never created must fail identically on
// both backends and must not insert anything.
func TestUpdateMissingRowReturnsNotFound(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		p := createPartner(t, s, "Priya", "priya@example.com", 0)

		ghost := &models.Partner{Name: "Ghost", Email: "ghost@example.com", PasswordHash: "x", PhoneNumber: "1"}
		ghost.ID = 999
		assert.ErrorIs(t, s.UpdatePartner(ghost), ErrNotFound)

		lead := &models.Lead{Name: "Ghost", PhoneNumber: "1", AssignedPartnerID: &p.ID}
		lead.ID = 999
		assert.ErrorIs(t, s.UpdateLead(lead), ErrNotFound)
		missing, err := s.ListLeadsByPartner(p.ID)
		require.NoError(t, err)
		assert.Empty(t, missing)

		assert.ErrorIs(t, s.UpdateNextBestAction(&models.NextBestAction{
			ID: 999, PartnerID: p.ID, ActionType: models.ActionTypeCallLeads, Description: "call", Priority: 1,
		}), ErrNotFound)
		actions, err := s.ListNextBestActions(p.ID)
		require.NoError(t, err)
		assert.Empty(t, actions)

		assert.ErrorIs(t, s.UpdateBestPractice(&models.BestPractice{
			ID: 999, PartnerID: p.ID, Content: "tip",
		}), ErrNotFound)
		practices, err := s.ListBestPractices(0)
		require.NoError(t, err)
		assert.Empty(t, practices)
	})
}

func TestNextBestActions(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		p := createPartner(t, s, "Priya", "priya@example.com", 0)

		a := &models.NextBestAction{PartnerID: p.ID, ActionType: models.ActionTypeCallLeads, Description: "call", Priority: 1}
		require.NoError(t, s.CreateNextBestAction(a))
		assert.Equal(t, models.ActionStatusPending, a.Status)

		a.Status = models.ActionStatusDone
		require.NoError(t, s.UpdateNextBestAction(a))

		actions, err := s.ListNextBestActions(p.ID)
		require.NoError(t, err)
		require.Len(t, actions, 1)
		assert.Equal(t, models.ActionStatusDone, actions[0].Status)
	})
}
