package store

import (
	"errors"
	"fmt"

	"partner-growth-system/models"

	"gorm.io/gorm"
)

// GormStore is the persistent implementation, postgres in production and
// sqlite in tests. Open the DB with gorm.Config{TranslateError: true} so
// unique violations surface as gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Partner{},
		&models.Skill{},
		&models.PartnerSkill{},
		&models.Lead{},
		&models.Sale{},
		&models.Achievement{},
		&models.PartnerAchievement{},
		&models.NextBestAction{},
		&models.BestPractice{},
		&models.ChatSession{},
	)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// Partners

func (s *GormStore) GetPartnerByID(id uint) (*models.Partner, error) {
	var p models.Partner
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormStore) GetPartnerByEmail(email string) (*models.Partner, error) {
	var p models.Partner
	if err := s.db.Where("email = ?", email).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *GormStore) CreatePartner(p *models.Partner) error {
	return translate(s.db.Create(p).Error)
}

func (s *GormStore) UpdatePartner(p *models.Partner) error {
	if err := s.exists(&models.Partner{}, p.ID); err != nil {
		return err
	}
	return translate(s.db.Save(p).Error)
}

func (s *GormStore) ListPartners() ([]models.Partner, error) {
	var partners []models.Partner
	err := s.db.Order("id ASC").Find(&partners).Error
	return partners, translate(err)
}

// Leads

func (s *GormStore) GetLeadByID(id uint) (*models.Lead, error) {
	var l models.Lead
	if err := s.db.First(&l, id).Error; err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (s *GormStore) ListLeadsByPartner(partnerID uint) ([]models.Lead, error) {
	var leads []models.Lead
	err := s.db.Where("assigned_partner_id = ?", partnerID).
		Order("id ASC").
		Find(&leads).Error
	return leads, translate(err)
}

func (s *GormStore) CreateLead(l *models.Lead) error {
	if err := validateLead(l); err != nil {
		return err
	}
	if err := s.checkPartnerRef(l.AssignedPartnerID); err != nil {
		return err
	}
	return translate(s.db.Create(l).Error)
}

func (s *GormStore) UpdateLead(l *models.Lead) error {
	if err := validateLead(l); err != nil {
		return err
	}
	if err := s.exists(&models.Lead{}, l.ID); err != nil {
		return err
	}
	if err := s.checkPartnerRef(l.AssignedPartnerID); err != nil {
		return err
	}
	return translate(s.db.Save(l).Error)
}

// exists guards updates: gorm's Save inserts a fresh row when the id does
// not match anything, where the memory backend reports ErrNotFound.
func (s *GormStore) exists(model any, id uint) error {
	var count int64
	if err := s.db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) checkPartnerRef(partnerID *uint) error {
	if partnerID == nil {
		return nil
	}
	var count int64
	if err := s.db.Model(&models.Partner{}).Where("id = ?", *partnerID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("store: assigned partner %d: %w", *partnerID, ErrNotFound)
	}
	return nil
}

// Skills

func (s *GormStore) ListSkills() ([]models.Skill, error) {
	var skills []models.Skill
	err := s.db.Order("id ASC").Find(&skills).Error
	return skills, translate(err)
}

func (s *GormStore) CreateSkill(sk *models.Skill) error {
	return translate(s.db.Create(sk).Error)
}

func (s *GormStore) ListPartnerSkills(partnerID uint) ([]models.PartnerSkill, error) {
	var ratings []models.PartnerSkill
	err := s.db.Preload("Skill").
		Where("partner_id = ?", partnerID).
		Order("id ASC").
		Find(&ratings).Error
	return ratings, translate(err)
}

func (s *GormStore) CreatePartnerSkill(ps *models.PartnerSkill) error {
	if err := validatePartnerSkill(ps); err != nil {
		return err
	}
	return translate(s.db.Create(ps).Error)
}

// Sales

func (s *GormStore) ListSalesByPartner(partnerID uint) ([]models.Sale, error) {
	var sales []models.Sale
	err := s.db.Where("partner_id = ?", partnerID).Order("id ASC").Find(&sales).Error
	return sales, translate(err)
}

func (s *GormStore) CreateSale(sale *models.Sale) error {
	return translate(s.db.Create(sale).Error)
}

// Achievements

func (s *GormStore) ListAchievements() ([]models.Achievement, error) {
	var all []models.Achievement
	err := s.db.Order("id ASC").Find(&all).Error
	return all, translate(err)
}

func (s *GormStore) GetAchievementByCode(code string) (*models.Achievement, error) {
	var a models.Achievement
	if err := s.db.Where("code = ?", code).First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *GormStore) CreateAchievement(a *models.Achievement) error {
	return translate(s.db.Create(a).Error)
}

func (s *GormStore) ListPartnerAchievements(partnerID uint) ([]models.PartnerAchievement, error) {
	var earned []models.PartnerAchievement
	err := s.db.Preload("Achievement").
		Where("partner_id = ?", partnerID).
		Order("id ASC").
		Find(&earned).Error
	return earned, translate(err)
}

func (s *GormStore) CreatePartnerAchievement(pa *models.PartnerAchievement) error {
	return translate(s.db.Create(pa).Error)
}

// Next best actions

func (s *GormStore) ListNextBestActions(partnerID uint) ([]models.NextBestAction, error) {
	var actions []models.NextBestAction
	err := s.db.Where("partner_id = ?", partnerID).Order("id ASC").Find(&actions).Error
	return actions, translate(err)
}

func (s *GormStore) CreateNextBestAction(a *models.NextBestAction) error {
	if a.Status == "" {
		a.Status = models.ActionStatusPending
	}
	return translate(s.db.Create(a).Error)
}

func (s *GormStore) UpdateNextBestAction(a *models.NextBestAction) error {
	if err := s.exists(&models.NextBestAction{}, a.ID); err != nil {
		return err
	}
	return translate(s.db.Save(a).Error)
}

// Best practices

func (s *GormStore) GetBestPracticeByID(id uint) (*models.BestPractice, error) {
	var bp models.BestPractice
	if err := s.db.Preload("Partner").First(&bp, id).Error; err != nil {
		return nil, translate(err)
	}
	return &bp, nil
}

func (s *GormStore) ListBestPractices(limit int) ([]models.BestPractice, error) {
	var practices []models.BestPractice
	q := s.db.Preload("Partner").Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&practices).Error
	return practices, translate(err)
}

func (s *GormStore) CreateBestPractice(bp *models.BestPractice) error {
	return translate(s.db.Create(bp).Error)
}

func (s *GormStore) UpdateBestPractice(bp *models.BestPractice) error {
	if err := s.exists(&models.BestPractice{}, bp.ID); err != nil {
		return err
	}
	return translate(s.db.Save(bp).Error)
}

// Chat sessions

func (s *GormStore) GetChatSession(partnerID uint) (*models.ChatSession, error) {
	var session models.ChatSession
	if err := s.db.Where("partner_id = ?", partnerID).First(&session).Error; err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (s *GormStore) SaveChatSession(session *models.ChatSession) error {
	return translate(s.db.Save(session).Error)
}
