package services

import (
	"context"
	"log"

	"ballmate_server/errs"
	"ballmate_server/models"
	"ballmate_server/repositories"

	"github.com/robfig/cron/v3"
)

// TeamService serves the league reference data behind the feeds: the KBO
// standings, per-team schedules and stadium food. All reads go through
// the redis read-through cache.
type TeamService struct {
	Reference repositories.ReferenceCacheRepository

	cron *cron.Cron
}

// NewTeamService wires the service over the reference cache.
func NewTeamService(reference repositories.ReferenceCacheRepository) *TeamService {
	return &TeamService{Reference: reference}
}

// GetRankings returns the current standings.
func (s *TeamService) GetRankings(ctx context.Context) ([]models.TeamRank, error) {
	return s.Reference.GetRankings(ctx)
}

// GetSchedules returns the schedule rows involving the named team.
func (s *TeamService) GetSchedules(ctx context.Context, teamName string) ([]models.TeamSchedule, error) {
	team, err := models.ParseTeam(teamName)
	if err != nil {
		return nil, errs.Validation(err.Error())
	}
	return s.Reference.GetSchedules(ctx, team)
}

// GetStadiumFoods returns the food entries for the named stadium.
func (s *TeamService) GetStadiumFoods(ctx context.Context, stadiumName string) ([]models.StadiumFood, error) {
	stadium, err := models.ParseStadium(stadiumName)
	if err != nil {
		return nil, errs.Validation(err.Error())
	}
	return s.Reference.GetStadiumFoods(ctx, stadium)
}

// Resync rewrites the cache from the source tables.
func (s *TeamService) Resync(ctx context.Context) error {
	return s.Reference.SyncAll(ctx)
}

// StartSync resyncs once in the background and then daily at 15:00,
// before the evening games. The returned stop function halts the
// schedule.
func (s *TeamService) StartSync(ctx context.Context) func() {
	sync := func() {
		if err := s.Resync(ctx); err != nil {
			log.Printf("reference resync failed: %v", err)
		}
	}
	go sync()

	s.cron = cron.New()
	if _, err := s.cron.AddFunc("0 15 * * *", sync); err != nil {
		log.Printf("failed to schedule reference resync: %v", err)
	}
	s.cron.Start()

	return func() { s.cron.Stop() }
}
