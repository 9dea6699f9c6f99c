package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"markboard-server-go/config"
	"markboard-server-go/models"
)

const (
	datasetsKey      = "datasets" // Set: Stores all cached dataset IDs
	datasetKeyPrefix = "dataset:" // String prefix: dataset:{id} -> JSON encoded dataset
)

// RedisService caches imported datasets in Redis
type RedisService struct {
	Client *redis.Client
	TTL    time.Duration // Expiry applied to every saved dataset
}

// NewRedisService creates a new RedisService instance
func NewRedisService(client *redis.Client, ttl time.Duration) *RedisService {
	return &RedisService{
		Client: client,
		TTL:    ttl,
	}
}

// Helper to generate dataset key
func getDatasetKey(id string) string {
	return datasetKeyPrefix + id
}

// SaveDataset stores ds, assigning an ID and creation time when missing
func (s *RedisService) SaveDataset(ctx context.Context, ds *models.Dataset) error {
	if ds == nil {
		return errors.New("dataset cannot be nil")
	}
	if ds.ID == "" {
		ds.ID = uuid.NewString()
	}
	if ds.CreatedAt.IsZero() {
		ds.CreatedAt = time.Now().UTC()
	}
	data, err := encodeDataset(ds)
	if err != nil {
		return fmt.Errorf("failed to encode dataset %s: %w", ds.ID, err)
	}

	pipe := s.Client.TxPipeline()
	pipe.Set(ctx, getDatasetKey(ds.ID), data, s.TTL)
	pipe.SAdd(ctx, datasetsKey, ds.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error saving dataset %s: %v", ds.ID, err)
		return fmt.Errorf("failed to save dataset to Redis: %w", err)
	}
	log.Printf("Cached dataset %s (%s, %d students)", ds.ID, ds.FileName, len(ds.Students))
	return nil
}

// GetDataset retrieves a dataset by ID. A missing or expired dataset returns nil, nil
// and prunes the index on expiry, so a miss also issues an SREM.
func (s *RedisService) GetDataset(ctx context.Context, id string) (*models.Dataset, error) {
	data, err := s.Client.Get(ctx, getDatasetKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired; drop the dangling ID
			if err := s.Client.SRem(ctx, datasetsKey, id).Err(); err != nil {
				log.Printf("Error removing expired dataset ID %s: %v", id, err)
			}
			return nil, nil
		}
		log.Printf("Error getting dataset %s: %v", id, err)
		return nil, fmt.Errorf("failed to get dataset from Redis: %w", err)
	}
	ds, err := decodeDataset(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", id, err)
	}
	return ds, nil
}

// ListDatasets returns metadata for every cached dataset, newest first
func (s *RedisService) ListDatasets(ctx context.Context) ([]models.DatasetMeta, error) {
	ids, err := s.Client.SMembers(ctx, datasetsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.DatasetMeta{}, nil
		}
		log.Printf("Error getting dataset IDs: %v", err)
		return nil, fmt.Errorf("failed to get dataset IDs from Redis: %w", err)
	}

	metas := make([]models.DatasetMeta, 0, len(ids))
	for _, id := range ids {
		ds, err := s.GetDataset(ctx, id)
		if err != nil {
			// Log the error but continue with the others
			log.Printf("Error fetching dataset %s: %v", id, err)
			continue
		}
		if ds != nil {
			metas = append(metas, ds.Meta())
		}
	}
	sortMetas(metas)
	return metas, nil
}

// DeleteDataset evicts a dataset, reporting whether it existed
func (s *RedisService) DeleteDataset(ctx context.Context, id string) (bool, error) {
	pipe := s.Client.TxPipeline()
	del := pipe.Del(ctx, getDatasetKey(id))
	pipe.SRem(ctx, datasetsKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error deleting dataset %s: %v", id, err)
		return false, fmt.Errorf("failed to delete dataset from Redis: %w", err)
	}
	return del.Val() > 0, nil
}

// DatasetCount returns the number of dataset IDs in the index set
func (s *RedisService) DatasetCount(ctx context.Context) (int64, error) {
	n, err := s.Client.SCard(ctx, datasetsKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to count datasets: %w", err)
	}
	return n, nil
}

// Ping checks the Redis connection
func (s *RedisService) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

func sortMetas(metas []models.DatasetMeta) {
	sort.Slice(metas, func(i, j int) bool {
		if !metas[i].CreatedAt.Equal(metas[j].CreatedAt) {
			return metas[i].CreatedAt.After(metas[j].CreatedAt)
		}
		return metas[i].ID < metas[j].ID
	})
}

// encodeDataset marshals ds, leaving out NaN marks since JSON cannot carry them
func encodeDataset(ds *models.Dataset) ([]byte, error) {
	out := *ds
	out.Students = make([]models.StudentRecord, len(ds.Students))
	for i, st := range ds.Students {
		marks := make(map[string]float64, len(st.Marks))
		for k, v := range st.Marks {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				marks[k] = v
			}
		}
		st.Marks = marks
		out.Students[i] = st
	}
	return json.Marshal(&out)
}

func decodeDataset(data []byte) (*models.Dataset, error) {
	var ds models.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, err
	}
	for i := range ds.Students {
		if ds.Students[i].Marks == nil {
			ds.Students[i].Marks = map[string]float64{}
		}
	}
	return &ds, nil
}

// --- Utility ---

// InitializeRedisClient creates and tests a Redis client connection
func InitializeRedisClient(cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", cfg.RedisAddr, err)
	}

	log.Printf("Successfully connected to Redis %s DB %d", cfg.RedisAddr, cfg.RedisDB)
	return rdb, nil
}
