package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartLeaderboardRebuild runs the community leaderboard rebuild on an
// interval so the cache stays warm between requests. Returns the scheduler
// so callers can shut it down.
func StartLeaderboardRebuild(ctx context.Context, community *CommunityService, period time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(period),
		gocron.NewTask(func() {
			if err := community.RebuildLeaderboard(ctx); err != nil {
				log.Printf("[scheduler] leaderboard rebuild failed: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
