package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"ballmate_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/redis/go-redis/v9"
)

// Reference data (standings, schedules, stadium food) changes slowly and
// is served read-through: hit the cache, fall back to the source table,
// backfill. Bulk resync is guarded by a SetNX lock so only one process
// instance rewrites the cache at a time.
const (
	rankKey        = "rank:all"
	scheduleKeyFmt = "schedule:%s"
	foodKeyFmt     = "food:%s"
	syncLockKey    = "lock:reference-sync"

	cacheTTL    = time.Hour
	syncLockTTL = 5 * time.Minute
)

// ReferenceCacheRepository serves the slowly-changing league data.
type ReferenceCacheRepository interface {
	GetRankings(ctx context.Context) ([]models.TeamRank, error)
	GetSchedules(ctx context.Context, team models.Team) ([]models.TeamSchedule, error)
	GetStadiumFoods(ctx context.Context, stadium models.Stadium) ([]models.StadiumFood, error)
	SyncAll(ctx context.Context) error
}

type referenceCacheRepository struct {
	Redis  *redis.Client
	Dynamo *DynamoClient
}

// NewReferenceCacheRepository wires the redis cache over the source tables.
func NewReferenceCacheRepository(rdb *redis.Client, dynamo *DynamoClient) ReferenceCacheRepository {
	return &referenceCacheRepository{Redis: rdb, Dynamo: dynamo}
}

// InitializeRedisClient connects to redis using REDIS_ADDR (host:port).
func InitializeRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

// readThrough fills out from the cache key, falling back to load on a
// miss (or an unavailable cache) and backfilling afterwards.
func (r *referenceCacheRepository) readThrough(ctx context.Context, key string, out interface{}, load func() error) error {
	cached, err := r.Redis.Get(ctx, key).Result()
	if err == nil {
		if jsonErr := json.Unmarshal([]byte(cached), out); jsonErr == nil {
			return nil
		}
		// Unreadable payload; treat as a miss and overwrite below.
	} else if err != redis.Nil {
		log.Printf("reference cache unavailable for %s, reading source: %v", key, err)
	}

	if err := load(); err != nil {
		return err
	}

	if payload, jsonErr := json.Marshal(out); jsonErr == nil {
		if setErr := r.Redis.Set(ctx, key, payload, cacheTTL).Err(); setErr != nil {
			log.Printf("failed to backfill reference cache for %s: %v", key, setErr)
		}
	}
	return nil
}

func (r *referenceCacheRepository) GetRankings(ctx context.Context) ([]models.TeamRank, error) {
	var ranks []models.TeamRank
	err := r.readThrough(ctx, rankKey, &ranks, func() error {
		return r.Dynamo.ScanItems(ctx, models.TeamRanksTable, "", nil, &ranks)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read rankings: %w", err)
	}
	return ranks, nil
}

func (r *referenceCacheRepository) GetSchedules(ctx context.Context, team models.Team) ([]models.TeamSchedule, error) {
	var schedules []models.TeamSchedule
	key := fmt.Sprintf(scheduleKeyFmt, team)
	err := r.readThrough(ctx, key, &schedules, func() error {
		return r.Dynamo.ScanItems(ctx, models.TeamSchedulesTable,
			"homeTeam = :team OR awayTeam = :team",
			map[string]types.AttributeValue{
				":team": &types.AttributeValueMemberS{Value: string(team)},
			},
			&schedules,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read schedules for %s: %w", team, err)
	}
	return schedules, nil
}

func (r *referenceCacheRepository) GetStadiumFoods(ctx context.Context, stadium models.Stadium) ([]models.StadiumFood, error) {
	var foods []models.StadiumFood
	key := fmt.Sprintf(foodKeyFmt, stadium)
	err := r.readThrough(ctx, key, &foods, func() error {
		return r.Dynamo.ScanItems(ctx, models.StadiumFoodsTable,
			"stadium = :stadium",
			map[string]types.AttributeValue{
				":stadium": &types.AttributeValueMemberS{Value: string(stadium)},
			},
			&foods,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read foods for %s: %w", stadium, err)
	}
	return foods, nil
}

// SyncAll rewrites every cache key from the source tables. The SetNX lock
// keeps concurrent process instances from resyncing at the same time; a
// holder that dies is covered by the lock TTL.
func (r *referenceCacheRepository) SyncAll(ctx context.Context) error {
	locked, err := r.Redis.SetNX(ctx, syncLockKey, "1", syncLockTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire reference sync lock: %w", err)
	}
	if !locked {
		log.Println("reference sync already running elsewhere, skipping")
		return nil
	}
	defer r.Redis.Del(ctx, syncLockKey)

	var ranks []models.TeamRank
	if err := r.Dynamo.ScanItems(ctx, models.TeamRanksTable, "", nil, &ranks); err != nil {
		return fmt.Errorf("failed to load rankings for sync: %w", err)
	}
	if err := r.setJSON(ctx, rankKey, ranks); err != nil {
		return err
	}

	var schedules []models.TeamSchedule
	if err := r.Dynamo.ScanItems(ctx, models.TeamSchedulesTable, "", nil, &schedules); err != nil {
		return fmt.Errorf("failed to load schedules for sync: %w", err)
	}
	byTeam := make(map[models.Team][]models.TeamSchedule)
	for _, s := range schedules {
		byTeam[s.HomeTeam] = append(byTeam[s.HomeTeam], s)
		if s.AwayTeam != s.HomeTeam {
			byTeam[s.AwayTeam] = append(byTeam[s.AwayTeam], s)
		}
	}
	for team, entries := range byTeam {
		if err := r.setJSON(ctx, fmt.Sprintf(scheduleKeyFmt, team), entries); err != nil {
			return err
		}
	}

	var foods []models.StadiumFood
	if err := r.Dynamo.ScanItems(ctx, models.StadiumFoodsTable, "", nil, &foods); err != nil {
		return fmt.Errorf("failed to load foods for sync: %w", err)
	}
	byStadium := make(map[models.Stadium][]models.StadiumFood)
	for _, f := range foods {
		byStadium[f.Stadium] = append(byStadium[f.Stadium], f)
	}
	for stadium, entries := range byStadium {
		if err := r.setJSON(ctx, fmt.Sprintf(foodKeyFmt, stadium), entries); err != nil {
			return err
		}
	}

	log.Printf("reference cache synced: %d ranks, %d schedules, %d foods", len(ranks), len(schedules), len(foods))
	return nil
}

func (r *referenceCacheRepository) setJSON(ctx context.Context, key string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache payload for %s: %w", key, err)
	}
	if err := r.Redis.Set(ctx, key, payload, cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}
