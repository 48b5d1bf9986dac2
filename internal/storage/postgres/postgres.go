package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// RecordRow represents a repair audit record stored in Postgres.
type RecordRow struct {
	RecordID    int64     `json:"record_id"`
	Timestamp   time.Time `json:"ts"`
	Event       string    `json:"event"`
	SkeletonID  *string   `json:"skeleton_id,omitempty"`
	Components  int       `json:"components"`
	FixCount    int       `json:"fix_count"`
	Fixes       []string  `json:"fixes,omitempty"`
	WorkspaceID string    `json:"workspace_id"`
	DurationMS  int64     `json:"duration_ms"`
}

// Client manages the Postgres connection for audit record storage.
type Client struct {
	db          *sql.DB
	workspaceID string
}

// New creates a new Postgres client using environment variables.
func New(workspaceID string) (*Client, error) {
	host := getEnv("PGHOST", "127.0.0.1")
	port := getEnv("PGPORT", "5432")
	user := getEnv("PGUSER", "specforge")
	dbname := getEnv("PGDATABASE", "specforge")
	password := os.Getenv("PGPASSWORD")

	var connStr string
	if password != "" {
		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	} else {
		connStr = fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable",
			host, port, user, dbname)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	client := &Client{
		db:          db,
		workspaceID: workspaceID,
	}

	// Create table if not exists
	if err := client.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create repair_records table: %w", err)
	}

	return client, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func (c *Client) createTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS repair_records (
			record_id    BIGSERIAL PRIMARY KEY,
			ts           TIMESTAMPTZ NOT NULL,
			event        TEXT NOT NULL,
			skeleton_id  TEXT,
			components   INTEGER NOT NULL,
			fix_count    INTEGER NOT NULL,
			fixes        JSONB,
			workspace_id TEXT NOT NULL,
			duration_ms  BIGINT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_repair_records_ts ON repair_records(ts DESC);
		CREATE INDEX IF NOT EXISTS idx_repair_records_workspace_id ON repair_records(workspace_id);
	`
	_, err := c.db.Exec(query)
	return err
}

// Append inserts a repair record into the database.
func (c *Client) Append(ts time.Time, event, skeletonID string, components, fixCount int, fixes []string, durationMS int64) error {
	var fixesJSON []byte
	var err error
	if len(fixes) > 0 {
		fixesJSON, err = json.Marshal(fixes)
		if err != nil {
			return fmt.Errorf("failed to marshal fixes: %w", err)
		}
	}

	var skeletonPtr *string
	if skeletonID != "" {
		skeletonPtr = &skeletonID
	}

	query := `
		INSERT INTO repair_records (ts, event, skeleton_id, components, fix_count, fixes, workspace_id, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = c.db.Exec(query, ts, event, skeletonPtr, components, fixCount, fixesJSON, c.workspaceID, durationMS)
	return err
}

// Query returns the last N records for this workspace in descending order by
// timestamp.
func (c *Client) Query(limit int) ([]RecordRow, error) {
	if limit <= 0 {
		limit = 200
	}
	if limit > 10000 {
		limit = 10000
	}

	query := `
		SELECT record_id, ts, event, skeleton_id, components, fix_count, fixes, workspace_id, duration_ms
		FROM repair_records
		WHERE workspace_id = $1
		ORDER BY ts DESC
		LIMIT $2
	`
	rows, err := c.db.Query(query, c.workspaceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RecordRow
	for rows.Next() {
		var r RecordRow
		var fixesJSON []byte
		var skeletonID sql.NullString

		if err := rows.Scan(&r.RecordID, &r.Timestamp, &r.Event, &skeletonID, &r.Components, &r.FixCount, &fixesJSON, &r.WorkspaceID, &r.DurationMS); err != nil {
			return nil, err
		}

		if skeletonID.Valid {
			r.SkeletonID = &skeletonID.String
		}
		if len(fixesJSON) > 0 {
			if err := json.Unmarshal(fixesJSON, &r.Fixes); err != nil {
				return nil, fmt.Errorf("failed to unmarshal fixes: %w", err)
			}
		}

		records = append(records, r)
	}

	return records, rows.Err()
}

// Close closes the database connection.
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
