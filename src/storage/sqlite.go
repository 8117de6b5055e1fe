package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stock-lens/src/logger"
	"stock-lens/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type AsyncSQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAsyncSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*AsyncSQLiteDB, error) {
	return &AsyncSQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath
	if dir := filepath.Dir(dsn); dsn != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS lookups (
			id TEXT PRIMARY KEY,
			raw_ticker TEXT NOT NULL,
			symbol TEXT,
			candidates TEXT,
			error TEXT,
			created_at INTEGER NOT NULL
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create lookups: %w", err)
	}

	if _, err := d.DB.Exec("CREATE INDEX IF NOT EXISTS idx_lookups_created ON lookups(created_at)"); err != nil {
		return fmt.Errorf("failed to create lookups index: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) SaveLookup(record models.MLookupRecord) error {
	candidates, err := json.Marshal(record.Candidates)
	if err != nil {
		return err
	}

	_, err = d.DB.Exec(
		`INSERT INTO lookups (id, raw_ticker, symbol, candidates, error, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.RawTicker, record.Symbol, string(candidates), record.Error, record.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert lookup: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) RecentLookups(limit int) ([]models.MLookupRecord, error) {
	rows, err := d.DB.Query(
		`SELECT id, raw_ticker, symbol, candidates, error, created_at FROM lookups ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MLookupRecord
	for rows.Next() {
		var (
			rec        models.MLookupRecord
			candidates string
			createdAt  int64
		)
		if err := rows.Scan(&rec.ID, &rec.RawTicker, &rec.Symbol, &candidates, &rec.Error, &createdAt); err != nil {
			return nil, err
		}
		if err := decodeCandidates(candidates, &rec); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.UnixMilli(createdAt).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) CleanupOldData() error {
	days := d.Config.Storage.RetentionDays
	if days <= 0 {
		return nil
	}

	cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour).UnixMilli()
	res, err := d.DB.Exec("DELETE FROM lookups WHERE created_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup lookups: %w", err)
	}

	if n, _ := res.RowsAffected(); n > 0 {
		d.Logger.Info("Removed %d lookups older than %d days", n, days)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

// -----------------------------------------------------------------------------

func decodeCandidates(raw string, rec *models.MLookupRecord) error {
	if raw == "" || raw == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), &rec.Candidates); err != nil {
		return fmt.Errorf("bad candidates for lookup %s: %w", rec.ID, err)
	}
	return nil
}
