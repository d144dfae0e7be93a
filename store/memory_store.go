package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"partner-growth-system/models"
)

// MemoryStore is the volatile implementation. Everything lives in maps
// guarded by one RWMutex; writes are last-write-wins per id. IDs are
// allocated from per-table counters so list order matches what the SQL
// backend returns for the same data.
type MemoryStore struct {
	mu sync.RWMutex

	partners            map[uint]models.Partner
	leads               map[uint]models.Lead
	skills              map[uint]models.Skill
	partnerSkills       map[uint]models.PartnerSkill
	sales               map[uint]models.Sale
	achievements        map[uint]models.Achievement
	partnerAchievements map[uint]models.PartnerAchievement
	nextBestActions     map[uint]models.NextBestAction
	bestPractices       map[uint]models.BestPractice
	chatSessions        map[uint]models.ChatSession // keyed by partner id

	seq map[string]uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		partners:            make(map[uint]models.Partner),
		leads:               make(map[uint]models.Lead),
		skills:              make(map[uint]models.Skill),
		partnerSkills:       make(map[uint]models.PartnerSkill),
		sales:               make(map[uint]models.Sale),
		achievements:        make(map[uint]models.Achievement),
		partnerAchievements: make(map[uint]models.PartnerAchievement),
		nextBestActions:     make(map[uint]models.NextBestAction),
		bestPractices:       make(map[uint]models.BestPractice),
		chatSessions:        make(map[uint]models.ChatSession),
		seq:                 make(map[string]uint),
	}
}

func (s *MemoryStore) nextID(table string) uint {
	s.seq[table]++
	return s.seq[table]
}

func sortedIDs[M any](m map[uint]M) []uint {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Partners

func (s *MemoryStore) GetPartnerByID(id uint) (*models.Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.partners[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) GetPartnerByEmail(email string) (*models.Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range sortedIDs(s.partners) {
		if s.partners[id].Email == email {
			p := s.partners[id]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreatePartner(p *models.Partner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.partners {
		if existing.Email == p.Email {
			return ErrDuplicate
		}
	}
	p.ID = s.nextID("partners")
	stampCreate(&p.Timestamps)
	s.partners[p.ID] = *p
	return nil
}

func (s *MemoryStore) UpdatePartner(p *models.Partner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.partners[p.ID]; !ok {
		return ErrNotFound
	}
	stampUpdate(&p.Timestamps)
	s.partners[p.ID] = *p
	return nil
}

func (s *MemoryStore) ListPartners() ([]models.Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Partner, 0, len(s.partners))
	for _, id := range sortedIDs(s.partners) {
		out = append(out, s.partners[id])
	}
	return out, nil
}

// Leads

func (s *MemoryStore) GetLeadByID(id uint) (*models.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.leads[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (s *MemoryStore) ListLeadsByPartner(partnerID uint) ([]models.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Lead
	for _, id := range sortedIDs(s.leads) {
		l := s.leads[id]
		if l.AssignedPartnerID != nil && *l.AssignedPartnerID == partnerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateLead(l *models.Lead) error {
	if err := validateLead(l); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkPartnerRefLocked(l.AssignedPartnerID); err != nil {
		return err
	}
	l.ID = s.nextID("leads")
	stampCreate(&l.Timestamps)
	s.leads[l.ID] = *l
	return nil
}

func (s *MemoryStore) UpdateLead(l *models.Lead) error {
	if err := validateLead(l); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[l.ID]; !ok {
		return ErrNotFound
	}
	if err := s.checkPartnerRefLocked(l.AssignedPartnerID); err != nil {
		return err
	}
	stampUpdate(&l.Timestamps)
	s.leads[l.ID] = *l
	return nil
}

func (s *MemoryStore) checkPartnerRefLocked(partnerID *uint) error {
	if partnerID == nil {
		return nil
	}
	if _, ok := s.partners[*partnerID]; !ok {
		return fmt.Errorf("store: assigned partner %d: %w", *partnerID, ErrNotFound)
	}
	return nil
}

// Skills

func (s *MemoryStore) ListSkills() ([]models.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Skill, 0, len(s.skills))
	for _, id := range sortedIDs(s.skills) {
		out = append(out, s.skills[id])
	}
	return out, nil
}

func (s *MemoryStore) CreateSkill(sk *models.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.skills {
		if existing.Name == sk.Name {
			return ErrDuplicate
		}
	}
	sk.ID = s.nextID("skills")
	s.skills[sk.ID] = *sk
	return nil
}

func (s *MemoryStore) ListPartnerSkills(partnerID uint) ([]models.PartnerSkill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.PartnerSkill
	for _, id := range sortedIDs(s.partnerSkills) {
		ps := s.partnerSkills[id]
		if ps.PartnerID != partnerID {
			continue
		}
		ps.Skill = s.skills[ps.SkillID]
		out = append(out, ps)
	}
	return out, nil
}

func (s *MemoryStore) CreatePartnerSkill(ps *models.PartnerSkill) error {
	if err := validatePartnerSkill(ps); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ps.ID = s.nextID("partner_skills")
	s.partnerSkills[ps.ID] = *ps
	return nil
}

// Sales

func (s *MemoryStore) ListSalesByPartner(partnerID uint) ([]models.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Sale
	for _, id := range sortedIDs(s.sales) {
		if s.sales[id].PartnerID == partnerID {
			out = append(out, s.sales[id])
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateSale(sale *models.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale.ID = s.nextID("sales")
	if sale.SaleDate.IsZero() {
		sale.SaleDate = time.Now()
	}
	s.sales[sale.ID] = *sale
	return nil
}

// Achievements

func (s *MemoryStore) ListAchievements() ([]models.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Achievement, 0, len(s.achievements))
	for _, id := range sortedIDs(s.achievements) {
		out = append(out, s.achievements[id])
	}
	return out, nil
}

func (s *MemoryStore) GetAchievementByCode(code string) (*models.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range sortedIDs(s.achievements) {
		if s.achievements[id].Code == code {
			a := s.achievements[id]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateAchievement(a *models.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.achievements {
		if existing.Code == a.Code || existing.Name == a.Name {
			return ErrDuplicate
		}
	}
	a.ID = s.nextID("achievements")
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	s.achievements[a.ID] = *a
	return nil
}

func (s *MemoryStore) ListPartnerAchievements(partnerID uint) ([]models.PartnerAchievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.PartnerAchievement
	for _, id := range sortedIDs(s.partnerAchievements) {
		pa := s.partnerAchievements[id]
		if pa.PartnerID != partnerID {
			continue
		}
		pa.Achievement = s.achievements[pa.AchievementID]
		out = append(out, pa)
	}
	return out, nil
}

func (s *MemoryStore) CreatePartnerAchievement(pa *models.PartnerAchievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pa.ID = s.nextID("partner_achievements")
	if pa.EarnedAt.IsZero() {
		pa.EarnedAt = time.Now()
	}
	s.partnerAchievements[pa.ID] = *pa
	return nil
}

// Next best actions

func (s *MemoryStore) ListNextBestActions(partnerID uint) ([]models.NextBestAction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.NextBestAction
	for _, id := range sortedIDs(s.nextBestActions) {
		if s.nextBestActions[id].PartnerID == partnerID {
			out = append(out, s.nextBestActions[id])
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateNextBestAction(a *models.NextBestAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.nextID("next_best_actions")
	if a.Status == "" {
		a.Status = models.ActionStatusPending
	}
	s.nextBestActions[a.ID] = *a
	return nil
}

func (s *MemoryStore) UpdateNextBestAction(a *models.NextBestAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nextBestActions[a.ID]; !ok {
		return ErrNotFound
	}
	s.nextBestActions[a.ID] = *a
	return nil
}

// Best practices

func (s *MemoryStore) GetBestPracticeByID(id uint) (*models.BestPractice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bp, ok := s.bestPractices[id]
	if !ok {
		return nil, ErrNotFound
	}
	bp.Partner = s.partners[bp.PartnerID]
	return &bp, nil
}

func (s *MemoryStore) ListBestPractices(limit int) ([]models.BestPractice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.BestPractice, 0, len(s.bestPractices))
	for _, id := range sortedIDs(s.bestPractices) {
		bp := s.bestPractices[id]
		bp.Partner = s.partners[bp.PartnerID]
		out = append(out, bp)
	}
	// Newest first, id breaks created_at ties the same way the SQL
	// backend orders them.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) CreateBestPractice(bp *models.BestPractice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bp.ID = s.nextID("best_practices")
	if bp.CreatedAt.IsZero() {
		bp.CreatedAt = time.Now()
	}
	s.bestPractices[bp.ID] = *bp
	return nil
}

func (s *MemoryStore) UpdateBestPractice(bp *models.BestPractice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bestPractices[bp.ID]; !ok {
		return ErrNotFound
	}
	s.bestPractices[bp.ID] = *bp
	return nil
}

// Chat sessions

func (s *MemoryStore) GetChatSession(partnerID uint) (*models.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.chatSessions[partnerID]
	if !ok {
		return nil, ErrNotFound
	}
	session.Messages = append([]models.ChatMessage(nil), session.Messages...)
	return &session, nil
}

func (s *MemoryStore) SaveChatSession(session *models.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.ID == 0 {
		session.ID = s.nextID("chat_sessions")
		stampCreate(&session.Timestamps)
	} else {
		stampUpdate(&session.Timestamps)
	}
	stored := *session
	stored.Messages = append([]models.ChatMessage(nil), session.Messages...)
	s.chatSessions[session.PartnerID] = stored
	return nil
}

func stampCreate(ts *models.Timestamps) {
	now := time.Now()
	ts.CreatedAt = now
	ts.UpdatedAt = now
}

func stampUpdate(ts *models.Timestamps) {
	ts.UpdatedAt = time.Now()
}
