// Package store exposes the persistence contract behind one interface with
// two implementations: a volatile in-process one and a gorm-backed one.
// Both return identical shapes and ordering for the same logical data, so
// callers never know which backend is live.
package store

import (
	"errors"
	"fmt"

	"partner-growth-system/models"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("store: record not found")

	// ErrDuplicate is returned when a unique field (partner email,
	// achievement code) is already taken.
	ErrDuplicate = errors.New("store: duplicate record")
)

type Store interface {
	// Partners
	GetPartnerByID(id uint) (*models.Partner, error)
	GetPartnerByEmail(email string) (*models.Partner, error)
	CreatePartner(p *models.Partner) error
	UpdatePartner(p *models.Partner) error
	ListPartners() ([]models.Partner, error)

	// Leads
	GetLeadByID(id uint) (*models.Lead, error)
	ListLeadsByPartner(partnerID uint) ([]models.Lead, error)
	CreateLead(l *models.Lead) error
	UpdateLead(l *models.Lead) error

	// Skills
	ListSkills() ([]models.Skill, error)
	CreateSkill(s *models.Skill) error
	ListPartnerSkills(partnerID uint) ([]models.PartnerSkill, error)
	CreatePartnerSkill(ps *models.PartnerSkill) error

	// Sales
	ListSalesByPartner(partnerID uint) ([]models.Sale, error)
	CreateSale(s *models.Sale) error

	// Achievements
	ListAchievements() ([]models.Achievement, error)
	GetAchievementByCode(code string) (*models.Achievement, error)
	CreateAchievement(a *models.Achievement) error
	ListPartnerAchievements(partnerID uint) ([]models.PartnerAchievement, error)
	CreatePartnerAchievement(pa *models.PartnerAchievement) error

	// Next best actions
	ListNextBestActions(partnerID uint) ([]models.NextBestAction, error)
	CreateNextBestAction(a *models.NextBestAction) error
	UpdateNextBestAction(a *models.NextBestAction) error

	// Best practices
	GetBestPracticeByID(id uint) (*models.BestPractice, error)
	ListBestPractices(limit int) ([]models.BestPractice, error) // newest first
	CreateBestPractice(bp *models.BestPractice) error
	UpdateBestPractice(bp *models.BestPractice) error

	// Chat sessions
	GetChatSession(partnerID uint) (*models.ChatSession, error)
	SaveChatSession(s *models.ChatSession) error
}

// validateLead enforces the invariants both backends share: a match score
// is nil or 0–100, and the status is one of the known four.
func validateLead(l *models.Lead) error {
	if l.AIMatchScore != nil && (*l.AIMatchScore < 0 || *l.AIMatchScore > 100) {
		return fmt.Errorf("store: ai_match_score %d out of range [0,100]", *l.AIMatchScore)
	}
	if l.Status == "" {
		l.Status = models.LeadStatusNew
	}
	if !models.ValidLeadStatus(l.Status) {
		return fmt.Errorf("store: invalid lead status %q", l.Status)
	}
	return nil
}

// validatePartnerSkill keeps a rating within [0, max_rating].
func validatePartnerSkill(ps *models.PartnerSkill) error {
	if ps.MaxRating <= 0 {
		ps.MaxRating = 10
	}
	if ps.Rating < 0 || ps.Rating > ps.MaxRating {
		return fmt.Errorf("store: rating %d out of range [0,%d]", ps.Rating, ps.MaxRating)
	}
	return nil
}
