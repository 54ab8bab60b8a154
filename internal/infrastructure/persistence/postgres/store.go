// Package postgres implements the snapshot store on PostgreSQL. The
// snapshot lives in a single key/jsonb table and every save rewrites
// all three documents in one transaction.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/athar-center/siraj-hub/internal/domain/attendance"
	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config holds PostgreSQL connection configuration.
type Config struct {
	// Host is the database server hostname.
	Host string

	// Port is the database server port.
	Port int

	// Database is the database name.
	Database string

	// User is the database user.
	User string

	// Password is the database password.
	Password string

	// SSLMode is the SSL mode (disable, require, verify-ca, verify-full).
	SSLMode string

	// MaxConns is the maximum number of pooled connections.
	MaxConns int32

	// MinConns is the minimum number of pooled connections.
	MinConns int32

	// ConnectTimeout is the timeout for establishing connections.
	ConnectTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           5432,
		Database:       "siraj",
		User:           "siraj",
		SSLMode:        "disable",
		MaxConns:       4,
		MinConns:       1,
		ConnectTimeout: 5 * time.Second,
	}
}

// DSN returns the connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.User, c.Password, c.SSLMode,
	)
}

// PoolConfig builds a pgxpool configuration from the DSN.
func (c Config) PoolConfig() (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(c.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	poolCfg.MaxConns = c.MaxConns
	poolCfg.MinConns = c.MinConns
	poolCfg.ConnConfig.ConnectTimeout = c.ConnectTimeout
	return poolCfg, nil
}

// Snapshot document keys within the siraj_snapshot table.
const (
	docStudents   = "students"
	docRecords    = "records"
	docSupervisor = "supervisor"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS siraj_snapshot (
    doc_key    TEXT PRIMARY KEY,
    doc        JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// ══════════════════════════════════════════════════════════════════════════════
// STORE
// ══════════════════════════════════════════════════════════════════════════════

// Store persists the snapshot in the siraj_snapshot table.
type Store struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewStore connects, verifies the connection and ensures the schema.
func NewStore(ctx context.Context, cfg Config, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Default().With(logger.Component("postgres-store"))
	}

	poolCfg, err := cfg.PoolConfig()
	if err != nil {
		return nil, fmt.Errorf("postgres store: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres store: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres store: ping: %w", err)
	}

	store := &Store{pool: pool, log: log}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// NewStoreWithPool wraps an existing pool, used by tests. The schema
// is assumed to exist.
func NewStoreWithPool(pool *pgxpool.Pool, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Default().With(logger.Component("postgres-store"))
	}
	return &Store{pool: pool, log: log}
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("postgres store: ensure schema: %w", err)
	}
	return nil
}

// Load reads the three snapshot documents. Missing rows mean a first
// run and yield an empty snapshot.
func (s *Store) Load(ctx context.Context) (center.Snapshot, error) {
	var snap center.Snapshot
	snap.Profile = center.DefaultProfile()

	rows, err := s.pool.Query(ctx,
		`SELECT doc_key, doc FROM siraj_snapshot
		 WHERE doc_key IN ($1, $2, $3)`,
		docStudents, docRecords, docSupervisor,
	)
	if err != nil {
		return center.Snapshot{}, fmt.Errorf("postgres store: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var doc []byte
		if err := rows.Scan(&key, &doc); err != nil {
			return center.Snapshot{}, fmt.Errorf("postgres store: scan: %w", err)
		}

		var decodeErr error
		switch key {
		case docStudents:
			decodeErr = json.Unmarshal(doc, &snap.Students)
		case docRecords:
			decodeErr = json.Unmarshal(doc, &snap.Records)
		case docSupervisor:
			decodeErr = json.Unmarshal(doc, &snap.Profile)
		}
		if decodeErr != nil {
			return center.Snapshot{}, fmt.Errorf("postgres store: decode %s: %w", key, decodeErr)
		}
	}
	if err := rows.Err(); err != nil {
		return center.Snapshot{}, fmt.Errorf("postgres store: rows: %w", err)
	}

	s.log.Debug("snapshot loaded",
		logger.StudentCount(len(snap.Students)),
		logger.RecordCount(len(snap.Records)))
	return snap, nil
}

// Save upserts all three documents in one transaction.
func (s *Store) Save(ctx context.Context, snap center.Snapshot) error {
	if snap.Students == nil {
		snap.Students = []center.StudentSnapshot{}
	}
	if snap.Records == nil {
		snap.Records = []attendance.Record{}
	}

	students, err := json.Marshal(snap.Students)
	if err != nil {
		return fmt.Errorf("postgres store: encode students: %w", err)
	}
	records, err := json.Marshal(snap.Records)
	if err != nil {
		return fmt.Errorf("postgres store: encode records: %w", err)
	}
	supervisor, err := json.Marshal(snap.Profile)
	if err != nil {
		return fmt.Errorf("postgres store: encode supervisor: %w", err)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("postgres store: begin tx: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil &&
			!errors.Is(rollbackErr, pgx.ErrTxClosed) {
			s.log.Warn("transaction rollback failed", logger.Err(rollbackErr))
		}
	}()

	upsert := `
		INSERT INTO siraj_snapshot (doc_key, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (doc_key)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`

	for _, pair := range []struct {
		key string
		doc []byte
	}{
		{docStudents, students},
		{docRecords, records},
		{docSupervisor, supervisor},
	} {
		if _, err := tx.Exec(ctx, upsert, pair.key, pair.doc); err != nil {
			return fmt.Errorf("postgres store: upsert %s: %w", pair.key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres store: commit: %w", err)
	}

	s.log.Debug("snapshot saved", logger.RecordCount(len(snap.Records)))
	return nil
}
