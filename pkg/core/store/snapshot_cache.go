package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"analyst_terminal/pkg/fetch"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotCache stores fetched market snapshots keyed by ticker and UTC
// day. DB is primary when a pool is supplied; otherwise entries live as
// JSON files under the cache directory.
type SnapshotCache struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewSnapshotCache creates a snapshot cache. With a nil pool and empty
// dir it defaults to a local file vault under .cache/snapshots.
func NewSnapshotCache(pool *pgxpool.Pool, dir string) *SnapshotCache {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "snapshots")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] snapshot cache dir: %v\n", err)
		}
	}
	return &SnapshotCache{pool: pool, fileDir: dir}
}

// Get returns the snapshot cached for the ticker on the given day, or
// nil on a miss. A miss is not an error.
func (c *SnapshotCache) Get(ctx context.Context, ticker string, day time.Time) (*fetch.Snapshot, error) {
	ticker = strings.ToUpper(ticker)
	dayKey := day.UTC().Format("2006-01-02")

	if c.pool != nil {
		query := `
			SELECT data
			FROM market_snapshots
			WHERE ticker = $1 AND snapshot_day = $2
			ORDER BY created_at DESC
			LIMIT 1
		`
		var dataJSON []byte
		if err := c.pool.QueryRow(ctx, query, ticker, dayKey).Scan(&dataJSON); err != nil {
			return nil, nil // cache miss
		}
		var snap fetch.Snapshot
		if err := json.Unmarshal(dataJSON, &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached snapshot: %w", err)
		}
		return &snap, nil
	}

	if c.fileDir != "" {
		return c.loadFromFile(c.entryPath(ticker, dayKey))
	}
	return nil, nil
}

// Save stores a snapshot under its ticker and fetch day.
func (c *SnapshotCache) Save(ctx context.Context, snap *fetch.Snapshot) error {
	dataJSON, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	ticker := strings.ToUpper(snap.Ticker)
	dayKey := snap.FetchedAt.UTC().Format("2006-01-02")

	if c.pool != nil {
		query := `
			INSERT INTO market_snapshots (ticker, snapshot_day, data)
			VALUES ($1, $2, $3)
			ON CONFLICT (ticker, snapshot_day)
			DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
		`
		if _, err := c.pool.Exec(ctx, query, ticker, dayKey, dataJSON); err != nil {
			return fmt.Errorf("failed to save snapshot to db: %w", err)
		}
		return nil
	}

	if c.fileDir != "" {
		if err := os.WriteFile(c.entryPath(ticker, dayKey), dataJSON, 0644); err != nil {
			return fmt.Errorf("failed to write snapshot file: %w", err)
		}
	}
	return nil
}

func (c *SnapshotCache) entryPath(ticker, dayKey string) string {
	return filepath.Join(c.fileDir, fmt.Sprintf("%s_%s.json", ticker, dayKey))
}

func (c *SnapshotCache) loadFromFile(path string) (*fetch.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil // cache miss
	}
	var snap fetch.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot file %s: %w", path, err)
	}
	return &snap, nil
}
