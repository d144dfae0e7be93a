package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"partner-growth-system/cache"
	"partner-growth-system/models"
	"partner-growth-system/scoring"
	"partner-growth-system/store"
)

const bestPracticeLimit = 5

// CommunityView is the community screen payload.
type CommunityView struct {
	TopPerformers []cache.Entry      `json:"top_performers"`
	BestPractices []BestPracticePost `json:"best_practices"`
}

type BestPracticePost struct {
	ID       uint   `json:"id"`
	Author   Author `json:"author"`
	Content  string `json:"content"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
	DaysAgo  int    `json:"days_ago"`
}

type Author struct {
	Name            string `json:"name"`
	ProfileImageURL string `json:"profile_image_url"`
}

// CommunityService serves the leaderboard and shared best practices. The
// leaderboard reads through the redis cache when one is configured and
// falls back to ranking straight from the store.
type CommunityService struct {
	Store store.Store
	Cache *cache.LeaderboardCache // nil when redis is not configured
}

func NewCommunityService(s store.Store, c *cache.LeaderboardCache) *CommunityService {
	return &CommunityService{Store: s, Cache: c}
}

// Overview builds the community payload.
func (s *CommunityService) Overview(ctx context.Context) (*CommunityView, error) {
	performers, err := s.TopPerformers(ctx, scoring.DefaultPerformerLimit)
	if err != nil {
		return nil, err
	}

	practices, err := s.Store.ListBestPractices(bestPracticeLimit)
	if err != nil {
		return nil, fmt.Errorf("list best practices: %w", err)
	}

	now := time.Now()
	posts := make([]BestPracticePost, 0, len(practices))
	for _, bp := range practices {
		posts = append(posts, BestPracticePost{
			ID: bp.ID,
			Author: Author{
				Name:            bp.Partner.Name,
				ProfileImageURL: bp.Partner.ProfileImageURL,
			},
			Content:  bp.Content,
			Likes:    bp.LikesCount,
			Comments: bp.CommentsCount,
			DaysAgo:  int(now.Sub(bp.CreatedAt).Hours() / 24),
		})
	}

	return &CommunityView{TopPerformers: performers, BestPractices: posts}, nil
}

// TopPerformers returns the ranked leaderboard, cache first. A cache miss
// ranks from the store and repopulates the cache best-effort.
func (s *CommunityService) TopPerformers(ctx context.Context, limit int) ([]cache.Entry, error) {
	if s.Cache != nil {
		entries, err := s.Cache.Get(ctx, limit)
		if err == nil {
			return entries, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Printf("[community] leaderboard cache read failed, using store: %v", err)
		}
	}

	entries, err := s.rankFromStore(limit)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, entries); err != nil {
			log.Printf("[community] leaderboard cache repopulate failed: %v", err)
		}
	}
	return entries, nil
}

// RebuildLeaderboard recomputes the full leaderboard and writes it to the
// cache. Called by the scheduler; a no-op without a cache.
func (s *CommunityService) RebuildLeaderboard(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	entries, err := s.rankFromStore(scoring.DefaultPerformerLimit)
	if err != nil {
		return err
	}
	return s.Cache.Set(ctx, entries)
}

func (s *CommunityService) rankFromStore(limit int) ([]cache.Entry, error) {
	partners, err := s.Store.ListPartners()
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}

	ranked := scoring.TopPerformers(partners, limit)
	entries := make([]cache.Entry, 0, len(ranked))
	for _, r := range ranked {
		entries = append(entries, cache.Entry{
			PartnerID:       r.Partner.ID,
			Name:            r.Partner.Name,
			SalesAmount:     r.Partner.EarningsThisMonth,
			ProfileImageURL: r.Partner.ProfileImageURL,
			Rank:            r.Rank,
		})
	}
	return entries, nil
}

// ShareBestPractice publishes a community tip authored by the partner.
func (s *CommunityService) ShareBestPractice(partnerID uint, content string) (*models.BestPractice, error) {
	bp := &models.BestPractice{PartnerID: partnerID, Content: content}
	if err := s.Store.CreateBestPractice(bp); err != nil {
		return nil, err
	}
	return s.Store.GetBestPracticeByID(bp.ID)
}

// LikeBestPractice increments a post's like counter, last write wins.
func (s *CommunityService) LikeBestPractice(id uint) (*models.BestPractice, error) {
	bp, err := s.Store.GetBestPracticeByID(id)
	if err != nil {
		return nil, err
	}
	bp.LikesCount++
	if err := s.Store.UpdateBestPractice(bp); err != nil {
		return nil, err
	}
	return bp, nil
}
