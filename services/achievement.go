package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"partner-growth-system/models"
	"partner-growth-system/scoring"
	"partner-growth-system/store"

	"github.com/gosimple/slug"
)

// AchievementService maintains the catalog and auto-awards achievements
// whose thresholds a partner has reached.
type AchievementService struct {
	Store store.Store
}

func NewAchievementService(s store.Store) *AchievementService {
	return &AchievementService{Store: s}
}

// EnsureCatalog writes any missing built-in achievements to the store,
// deriving codes from the names. Safe to call on every boot.
func (s *AchievementService) EnsureCatalog() error {
	for _, entry := range models.AchievementCatalog {
		entry.Code = slug.Make(entry.Name)
		_, err := s.Store.GetAchievementByCode(entry.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("lookup achievement %q: %w", entry.Code, err)
		}
		a := entry
		if err := s.Store.CreateAchievement(&a); err != nil {
			return fmt.Errorf("create achievement %q: %w", entry.Code, err)
		}
	}
	return nil
}

// AutoAward checks every catalog threshold against the partner's current
// counters and awards whatever is newly reached. Already-earned rows are
// never duplicated; completion stays derived from PartnerAchievement rows
// alone.
func (s *AchievementService) AutoAward(partner *models.Partner) ([]models.Achievement, error) {
	catalog, err := s.Store.ListAchievements()
	if err != nil {
		return nil, err
	}
	earned, err := s.Store.ListPartnerAchievements(partner.ID)
	if err != nil {
		return nil, err
	}
	earnedIDs := make(map[uint]bool, len(earned))
	for _, pa := range earned {
		earnedIDs[pa.AchievementID] = true
	}

	counters, err := s.counters(partner)
	if err != nil {
		return nil, err
	}

	var awarded []models.Achievement
	for _, a := range catalog {
		if earnedIDs[a.ID] || len(a.Threshold) == 0 {
			continue
		}
		if !meetsThreshold(counters, a.Threshold) {
			continue
		}
		pa := models.PartnerAchievement{PartnerID: partner.ID, AchievementID: a.ID}
		if err := s.Store.CreatePartnerAchievement(&pa); err != nil {
			return awarded, err
		}
		awarded = append(awarded, a)
		log.Printf("[achievements] awarded %q to partner %d", a.Name, partner.ID)
	}
	return awarded, nil
}

// counters snapshots everything a threshold can reference.
func (s *AchievementService) counters(partner *models.Partner) (map[string]int64, error) {
	sales, err := s.Store.ListSalesByPartner(partner.ID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.Store.ListPartnerSkills(partner.ID)
	if err != nil {
		return nil, err
	}

	counters := map[string]int64{
		"sales_count":         int64(len(sales)),
		"earnings_this_month": partner.EarningsThisMonth,
		"total_sales_value":   partner.TotalSalesValue,
		"skill_progress":      int64(scoring.SkillProgress(ratings)),
	}
	for _, sale := range sales {
		switch strings.ToLower(sale.ProductCategory) {
		case "insurance":
			counters["insurance_sales"]++
		case "credit_card":
			counters["card_sales"]++
		}
	}
	return counters, nil
}

func meetsThreshold(counters, required map[string]int64) bool {
	for key, min := range required {
		if counters[key] < min {
			return false
		}
	}
	return true
}
