// Package redis implements the snapshot store on Redis. Each logical
// list lives under its own key and the whole set is rewritten in full
// on every change, mirroring the file backend's write-through model.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config holds Redis connection configuration.
type Config struct {
	// Host is the Redis server hostname.
	Host string

	// Port is the Redis server port.
	Port int

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         6379,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Addr returns the Redis address in "host:port" format.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Snapshot keys. The v2 suffix matches the current snapshot layout.
const (
	keyStudents   = "siraj:v2:students"
	keyRecords    = "siraj:v2:records"
	keySupervisor = "siraj:v2:supervisor"
)

// ══════════════════════════════════════════════════════════════════════════════
// STORE
// ══════════════════════════════════════════════════════════════════════════════

// Store persists the snapshot across three Redis keys.
type Store struct {
	client *redis.Client
	log    *logger.Logger
}

// NewStore creates a Redis-backed snapshot store and verifies the
// connection.
func NewStore(ctx context.Context, cfg Config, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Default().With(logger.Component("redis-store"))
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis store: ping: %w", err)
	}

	return &Store{client: client, log: log}, nil
}

// NewStoreWithClient wraps an existing client, used by tests.
func NewStoreWithClient(client *redis.Client, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Default().With(logger.Component("redis-store"))
	}
	return &Store{client: client, log: log}
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Load reads the three snapshot keys. Missing keys mean a first run
// and yield an empty snapshot.
func (s *Store) Load(ctx context.Context) (center.Snapshot, error) {
	values, err := s.client.MGet(ctx, keyStudents, keyRecords, keySupervisor).Result()
	if err != nil {
		return center.Snapshot{}, fmt.Errorf("redis store: mget: %w", err)
	}

	var snap center.Snapshot
	snap.Profile = center.DefaultProfile()

	if err := decodeInto(values[0], &snap.Students); err != nil {
		return center.Snapshot{}, fmt.Errorf("redis store: decode students: %w", err)
	}
	if err := decodeInto(values[1], &snap.Records); err != nil {
		return center.Snapshot{}, fmt.Errorf("redis store: decode records: %w", err)
	}
	if err := decodeInto(values[2], &snap.Profile); err != nil {
		return center.Snapshot{}, fmt.Errorf("redis store: decode supervisor: %w", err)
	}

	s.log.Debug("snapshot loaded",
		logger.StudentCount(len(snap.Students)),
		logger.RecordCount(len(snap.Records)))
	return snap, nil
}

// Save rewrites all three keys in one MSET.
func (s *Store) Save(ctx context.Context, snap center.Snapshot) error {
	if snap.Students == nil {
		snap.Students = []center.StudentSnapshot{}
	}
	if snap.Records == nil {
		snap.Records = []attendance.Record{}
	}

	students, err := json.Marshal(snap.Students)
	if err != nil {
		return fmt.Errorf("redis store: encode students: %w", err)
	}
	records, err := json.Marshal(snap.Records)
	if err != nil {
		return fmt.Errorf("redis store: encode records: %w", err)
	}
	supervisor, err := json.Marshal(snap.Profile)
	if err != nil {
		return fmt.Errorf("redis store: encode supervisor: %w", err)
	}

	err = s.client.MSet(ctx,
		keyStudents, students,
		keyRecords, records,
		keySupervisor, supervisor,
	).Err()
	if err != nil {
		return fmt.Errorf("redis store: mset: %w", err)
	}

	s.log.Debug("snapshot saved", logger.RecordCount(len(snap.Records)))
	return nil
}

// decodeInto unmarshals an MGET cell, tolerating nil (missing key).
func decodeInto(value interface{}, out interface{}) error {
	if value == nil {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return errors.New("unexpected value type")
	}
	return json.Unmarshal([]byte(str), out)
}
