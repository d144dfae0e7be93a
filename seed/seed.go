// Package seed loads the demo dataset: one signed-up partner with leads,
// skills, achievements and a coach session, plus the community around her.
package seed

import (
	"errors"
	"fmt"
	"log"
	"time"

	"partner-growth-system/models"
	"partner-growth-system/store"

	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the password every seeded partner logs in with.
const DemoPassword = "password"

// Run writes the demo dataset. It is a no-op when the demo partner
// already exists, so restarting against a persistent store is safe.
func Run(s store.Store) error {
	if _, err := s.GetPartnerByEmail("priya.singh@example.com"); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash demo password: %w", err)
	}

	partners := []*models.Partner{
		{
			Name:              "Priya Singh",
			Email:             "priya.singh@example.com",
			PhoneNumber:       "+91 98765 43210",
			Location:          "Mumbai",
			Bio:               "Financial advisor with 3 years of experience",
			EarningsThisMonth: 32800,
			TotalSalesValue:   328000,
		},
		{
			Name:              "Neha Gupta",
			Email:             "neha.gupta@example.com",
			PhoneNumber:       "+91 87654 43210",
			Location:          "Delhi",
			Bio:               "Financial advisor with 5 years of experience",
			EarningsThisMonth: 87500,
			TotalSalesValue:   875000,
		},
		{
			Name:              "Ravi Desai",
			Email:             "ravi.desai@example.com",
			PhoneNumber:       "+91 76543 21098",
			Location:          "Bangalore",
			Bio:               "Financial advisor with 4 years of experience",
			EarningsThisMonth: 72300,
			TotalSalesValue:   723000,
		},
		{
			Name:              "Anisha Shah",
			Email:             "anisha.shah@example.com",
			PhoneNumber:       "+91 65432 10987",
			Location:          "Mumbai",
			Bio:               "Financial advisor with 3 years of experience",
			EarningsThisMonth: 68750,
			TotalSalesValue:   687500,
		},
	}
	for _, p := range partners {
		p.PasswordHash = string(hash)
		if err := s.CreatePartner(p); err != nil {
			return fmt.Errorf("seed: create partner %s: %w", p.Email, err)
		}
	}
	priya, neha, ravi := partners[0], partners[1], partners[2]

	skills := []*models.Skill{
		{Name: "Sales Pitch", Category: "Sales", Description: "Ability to convince potential clients"},
		{Name: "Product Knowledge", Category: "Knowledge", Description: "Understanding of financial products"},
		{Name: "Client Handling", Category: "Relationship", Description: "Managing client relationships"},
		{Name: "Negotiation", Category: "Sales", Description: "Negotiation skills with clients"},
	}
	for _, sk := range skills {
		if err := s.CreateSkill(sk); err != nil {
			return fmt.Errorf("seed: create skill %s: %w", sk.Name, err)
		}
	}

	ratings := []int{7, 8, 6, 5}
	now := time.Now()
	for i, sk := range skills {
		ps := &models.PartnerSkill{
			PartnerID:        priya.ID,
			SkillID:          sk.ID,
			Rating:           ratings[i],
			MaxRating:        10,
			LastAssessedAt:   &now,
			AssessmentSource: "ai_analysis",
		}
		if err := s.CreatePartnerSkill(ps); err != nil {
			return fmt.Errorf("seed: rate skill %s: %w", sk.Name, err)
		}
	}

	score := func(n int) *int { return &n }
	leads := []*models.Lead{
		{
			Name:            "Rahul Sharma",
			PhoneNumber:     "+91 98765 43210",
			ProductInterest: []string{"Term Insurance", "Mutual Funds"},
			Status:          models.LeadStatusNew,
			LeadSource:      "website",
			AIMatchScore:    score(94),
			AIPitchTip:      "Rahul recently had a child. Highlight how term insurance can secure his family's future and how SIPs in mutual funds can build an education corpus.",
		},
		{
			Name:            "Priya Patel",
			PhoneNumber:     "+91 95432 10987",
			ProductInterest: []string{"Credit Card", "Personal Loan"},
			Status:          models.LeadStatusContacted,
			LeadSource:      "referral",
			AIMatchScore:    score(87),
			AIPitchTip:      "Priya is planning a wedding. Emphasize cashback on the Platinum card for wedding shopping and how a personal loan can help cover additional expenses.",
			LastContactedAt: &now,
		},
		{
			Name:            "Vijay Kumar",
			PhoneNumber:     "+91 87654 32109",
			ProductInterest: []string{"Home Loan", "Health Insurance"},
			Status:          models.LeadStatusNew,
			LeadSource:      "website",
			AIMatchScore:    score(82),
			AIPitchTip:      "Vijay is a first-time homebuyer. Focus on our competitive interest rates and how bundling health insurance can provide tax benefits along with coverage for his family.",
		},
	}
	for _, lead := range leads {
		lead.AssignedPartnerID = &priya.ID
		if err := s.CreateLead(lead); err != nil {
			return fmt.Errorf("seed: create lead %s: %w", lead.Name, err)
		}
	}

	action := &models.NextBestAction{
		PartnerID:         priya.ID,
		ActionType:        models.ActionTypeCallLeads,
		Description:       "Call 3 high-potential clients. Your conversion rate peaks between 10-11am. Call these clients now for the best results.",
		RelatedEntityType: "leads",
		Priority:          1,
		Status:            models.ActionStatusPending,
	}
	if err := s.CreateNextBestAction(action); err != nil {
		return fmt.Errorf("seed: create next best action: %w", err)
	}

	// Priya has earned the first three catalog achievements.
	catalog, err := s.ListAchievements()
	if err != nil {
		return fmt.Errorf("seed: list achievements: %w", err)
	}
	earnedDates := []time.Time{
		time.Date(2023, time.April, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.June, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.July, 10, 0, 0, 0, 0, time.UTC),
	}
	for i, when := range earnedDates {
		if i >= len(catalog) {
			break
		}
		pa := &models.PartnerAchievement{
			PartnerID:     priya.ID,
			AchievementID: catalog[i].ID,
			EarnedAt:      when,
		}
		if err := s.CreatePartnerAchievement(pa); err != nil {
			return fmt.Errorf("seed: award achievement: %w", err)
		}
	}

	practices := []*models.BestPractice{
		{
			PartnerID:     neha.ID,
			Content:       "I've found that sending a personalized WhatsApp message before calling leads to a 40% higher response rate. Try referencing something specific from their profile.",
			LikesCount:    24,
			CommentsCount: 5,
			CreatedAt:     now.Add(-2 * 24 * time.Hour),
		},
		{
			PartnerID:     ravi.ID,
			Content:       "For health insurance, I always ask about their parents first. It builds trust and shows you care about family, not just making a sale. My closing rate improved by 35%.",
			LikesCount:    36,
			CommentsCount: 12,
			CreatedAt:     now.Add(-5 * 24 * time.Hour),
		},
	}
	for _, bp := range practices {
		if err := s.CreateBestPractice(bp); err != nil {
			return fmt.Errorf("seed: create best practice: %w", err)
		}
	}

	log.Printf("[seed] demo dataset loaded (%d partners, %d leads)", len(partners), len(leads))
	return nil
}
