package services

import (
	"context"
	"log"
	"time"

	"ballmate_server/models"
	"ballmate_server/repositories"

	"github.com/robfig/cron/v3"
)

// ExpiryService retires posts whose game date has passed, removing them
// from the matching pool. It runs once at startup against today's date
// and then nightly at 23:50 against tomorrow's, so a post expires the
// evening before its game day rolls over.
type ExpiryService struct {
	Posts repositories.MatePostRepository
	Now   func() time.Time

	cron *cron.Cron
}

// NewExpiryService wires the sweeper over the post store.
func NewExpiryService(posts repositories.MatePostRepository) *ExpiryService {
	return &ExpiryService{Posts: posts, Now: time.Now}
}

// Start runs the startup sweep in the background and schedules the
// nightly one. The returned stop function halts the schedule.
func (s *ExpiryService) Start(ctx context.Context) func() {
	go s.SweepBefore(ctx, s.Now())

	s.cron = cron.New()
	if _, err := s.cron.AddFunc("50 23 * * *", func() {
		s.SweepBefore(ctx, s.Now().AddDate(0, 0, 1))
	}); err != nil {
		log.Printf("failed to schedule expiry sweep: %v", err)
	}
	s.cron.Start()

	return func() { s.cron.Stop() }
}

// SweepBefore expires every active post with a game date strictly before
// the reference date. Per-post failures are logged and skipped; the next
// run picks up anything missed. Re-running over already-expired posts is
// a no-op, so overlapping sweeps are safe.
func (s *ExpiryService) SweepBefore(ctx context.Context, reference time.Time) int {
	date := reference.Format(models.DateLayout)

	posts, err := s.Posts.ListActiveGameDateBefore(ctx, date)
	if err != nil {
		log.Printf("expiry sweep failed to list posts before %s: %v", date, err)
		return 0
	}

	expired := 0
	for _, post := range posts {
		if err := s.Posts.MarkExpired(ctx, post.MateID); err != nil {
			log.Printf("expiry sweep failed to expire post %s: %v", post.MateID, err)
			continue
		}
		expired++
	}

	if expired > 0 {
		log.Printf("expiry sweep retired %d posts before %s", expired, date)
	}
	return expired
}
