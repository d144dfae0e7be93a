package services

import (
	"errors"
	"fmt"
	"time"

	"partner-growth-system/models"
	"partner-growth-system/scoring"
	"partner-growth-system/store"
)

// ErrNotOwned is returned when a partner addresses a lead assigned to
// somebody else. Handlers map it to 404 so lead ids are not probeable.
var ErrNotOwned = errors.New("partner: lead not assigned to this partner")

// Dashboard is the aggregate behind the home screen.
type Dashboard struct {
	EarningsThisMonth     int64             `json:"earnings_this_month"`
	EarningsChangePercent int               `json:"earnings_change_percent"`
	TotalLeads            int               `json:"total_leads"`
	HotLeadsCount         int               `json:"hot_leads_count"`
	Skills                []SkillRating     `json:"skills"`
	SkillProgress         int               `json:"skill_progress"`
	NextBestAction        *ActionCard       `json:"next_best_action"`
	Achievements          []AchievementCard `json:"achievements"`
}

type SkillRating struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Max    int    `json:"max"`
}

type ActionCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionText  string `json:"action_text"`
}

type AchievementCard struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"` // "June 2023" when earned, "In progress" otherwise
	Icon      string `json:"icon"`
	Completed bool   `json:"completed"`
}

// RecommendedLead is the shape the leads screen renders.
type RecommendedLead struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	PhoneNumber string     `json:"phone_number"`
	MatchScore  int        `json:"match_score"`
	Interests   []Interest `json:"interests"`
	PitchTip    string     `json:"pitch_tip"`
}

type Interest struct {
	Name string `json:"name"`
}

// PartnerService assembles partner-facing views and owns lead and sale
// mutations.
type PartnerService struct {
	Store        store.Store
	Achievements *AchievementService
}

func NewPartnerService(s store.Store, achievements *AchievementService) *PartnerService {
	return &PartnerService{Store: s, Achievements: achievements}
}

// Dashboard builds the home-screen aggregate for one partner.
func (s *PartnerService) Dashboard(partner *models.Partner) (*Dashboard, error) {
	ratings, err := s.Store.ListPartnerSkills(partner.ID)
	if err != nil {
		return nil, fmt.Errorf("list partner skills: %w", err)
	}
	earned, err := s.Store.ListPartnerAchievements(partner.ID)
	if err != nil {
		return nil, fmt.Errorf("list partner achievements: %w", err)
	}
	catalog, err := s.Store.ListAchievements()
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	actions, err := s.Store.ListNextBestActions(partner.ID)
	if err != nil {
		return nil, fmt.Errorf("list next best actions: %w", err)
	}
	leads, err := s.Store.ListLeadsByPartner(partner.ID)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	sales, err := s.Store.ListSalesByPartner(partner.ID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	skills := make([]SkillRating, 0, len(ratings))
	for _, ps := range ratings {
		skills = append(skills, SkillRating{Name: ps.Skill.Name, Rating: ps.Rating, Max: ps.MaxRating})
	}

	view := scoring.AchievementView(catalog, earned, scoring.DashboardAchievementCap)
	cards := make([]AchievementCard, 0, len(view))
	for _, entry := range view {
		card := AchievementCard{
			ID:        entry.Achievement.ID,
			Name:      entry.Achievement.Name,
			Icon:      entry.Achievement.BadgeIconURL,
			Completed: entry.Completed,
			Date:      "In progress",
		}
		if entry.EarnedAt != nil {
			card.Date = entry.EarnedAt.Format("January 2006")
		}
		cards = append(cards, card)
	}

	// EarningsThisMonth reads the denormalized partner column that
	// RecordSale rolls commissions into; the column does not reset at
	// month rollover. The change percent is derived from the sale rows,
	// so the two values only track each other for partners whose
	// earnings all came through RecordSale within the current month.
	return &Dashboard{
		EarningsThisMonth:     partner.EarningsThisMonth,
		EarningsChangePercent: earningsChangePercent(sales, time.Now()),
		TotalLeads:            len(leads),
		HotLeadsCount:         scoring.CountHotLeads(leads),
		Skills:                skills,
		SkillProgress:         scoring.SkillProgress(ratings),
		NextBestAction:        actionCard(scoring.PickNextBestAction(actions)),
		Achievements:          cards,
	}, nil
}

// earningsChangePercent compares commission earned in the current calendar
// month against the previous one. No prior-month sales means no baseline,
// reported as 0.
func earningsChangePercent(sales []models.Sale, now time.Time) int {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevStart := monthStart.AddDate(0, -1, 0)

	var current, previous int64
	for _, sale := range sales {
		switch {
		case !sale.SaleDate.Before(monthStart):
			current += sale.CommissionEarned
		case !sale.SaleDate.Before(prevStart):
			previous += sale.CommissionEarned
		}
	}
	if previous == 0 {
		return 0
	}
	return int(float64(current-previous) / float64(previous) * 100)
}

func actionCard(action *models.NextBestAction) *ActionCard {
	if action == nil {
		return nil
	}
	card := &ActionCard{
		Title:       "Complete action",
		Description: action.Description,
		ActionText:  "Take Action",
	}
	if action.ActionType == models.ActionTypeCallLeads {
		card.Title = "Call high-potential clients"
		card.ActionText = "Start Calling"
	}
	return card
}

// RecommendedLeads ranks the partner's leads and shapes them for the UI.
func (s *PartnerService) RecommendedLeads(partnerID uint, limit int) ([]RecommendedLead, error) {
	leads, err := s.Store.ListLeadsByPartner(partnerID)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}

	ranked := scoring.RecommendLeads(leads, limit)
	out := make([]RecommendedLead, 0, len(ranked))
	for _, lead := range ranked {
		interests := make([]Interest, 0, len(lead.ProductInterest))
		for _, name := range lead.ProductInterest {
			interests = append(interests, Interest{Name: name})
		}
		out = append(out, RecommendedLead{
			ID:          lead.ID,
			Name:        lead.Name,
			PhoneNumber: lead.PhoneNumber,
			MatchScore:  lead.MatchScore(),
			Interests:   interests,
			PitchTip:    lead.AIPitchTip,
		})
	}
	return out, nil
}

// Leads returns every lead assigned to the partner in insertion order.
func (s *PartnerService) Leads(partnerID uint) ([]models.Lead, error) {
	return s.Store.ListLeadsByPartner(partnerID)
}

// CreateLead stores a lead assigned to the partner.
func (s *PartnerService) CreateLead(partnerID uint, lead *models.Lead) error {
	lead.AssignedPartnerID = &partnerID
	return s.Store.CreateLead(lead)
}

// UpdateLeadStatus moves an owned lead through its lifecycle. Contacting a
// lead stamps last_contacted_at.
func (s *PartnerService) UpdateLeadStatus(partnerID, leadID uint, status string) (*models.Lead, error) {
	lead, err := s.Store.GetLeadByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead.AssignedPartnerID == nil || *lead.AssignedPartnerID != partnerID {
		return nil, ErrNotOwned
	}

	lead.Status = status
	if status == models.LeadStatusContacted {
		now := time.Now()
		lead.LastContactedAt = &now
	}
	if err := s.Store.UpdateLead(lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name        *string
	PhoneNumber *string
	Location    *string
	Bio         *string
}

// UpdateProfile applies the provided fields and saves the partner.
func (s *PartnerService) UpdateProfile(partner *models.Partner, update ProfileUpdate) error {
	if update.Name != nil {
		partner.Name = *update.Name
	}
	if update.PhoneNumber != nil {
		partner.PhoneNumber = *update.PhoneNumber
	}
	if update.Location != nil {
		partner.Location = *update.Location
	}
	if update.Bio != nil {
		partner.Bio = *update.Bio
	}
	return s.Store.UpdatePartner(partner)
}

// SetProfileImage records the uploaded avatar URL.
func (s *PartnerService) SetProfileImage(partner *models.Partner, url string) error {
	partner.ProfileImageURL = url
	return s.Store.UpdatePartner(partner)
}

// RecordSale stores a sale, rolls the commission up onto the partner row,
// marks the source lead converted when given, and re-checks achievement
// thresholds.
func (s *PartnerService) RecordSale(partner *models.Partner, sale *models.Sale) ([]models.Achievement, error) {
	sale.PartnerID = partner.ID
	if sale.LeadID != nil {
		lead, err := s.Store.GetLeadByID(*sale.LeadID)
		if err != nil {
			return nil, err
		}
		if lead.AssignedPartnerID == nil || *lead.AssignedPartnerID != partner.ID {
			return nil, ErrNotOwned
		}
		lead.Status = models.LeadStatusConverted
		if err := s.Store.UpdateLead(lead); err != nil {
			return nil, err
		}
	}

	if err := s.Store.CreateSale(sale); err != nil {
		return nil, err
	}

	partner.EarningsThisMonth += sale.CommissionEarned
	partner.TotalSalesValue += sale.SaleAmount
	if err := s.Store.UpdatePartner(partner); err != nil {
		return nil, err
	}

	return s.Achievements.AutoAward(partner)
}
