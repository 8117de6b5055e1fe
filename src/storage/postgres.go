package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stock-lens/src/logger"
	"stock-lens/src/models"

	"github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

// NewPostgresDB keeps each binary's tables in a schema named after it.
func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable name: %w", err)
	}
	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return &PostgresDB{
		Config: cfg,
		Schema: name,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// Create Schema
	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, pq.QuoteIdentifier(d.Schema))); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) table() string {
	return pq.QuoteIdentifier(d.Schema) + ".lookups"
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) createTables() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY,
			raw_ticker TEXT NOT NULL,
			symbol TEXT,
			candidates JSONB,
			error TEXT,
			created_at TIMESTAMPTZ NOT NULL
		);
	`, d.table())
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create lookups: %w", err)
	}

	index := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS lookups_created_idx ON %s (created_at)`, d.table())
	if _, err := d.DB.Exec(index); err != nil {
		return fmt.Errorf("failed to create lookups index: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveLookup(record models.MLookupRecord) error {
	candidates, err := json.Marshal(record.Candidates)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (id, raw_ticker, symbol, candidates, error, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		d.table(),
	)
	if _, err := d.DB.Exec(query, record.ID, record.RawTicker, record.Symbol, string(candidates), record.Error, record.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert lookup: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) RecentLookups(limit int) ([]models.MLookupRecord, error) {
	query := fmt.Sprintf(
		`SELECT id, raw_ticker, symbol, candidates, error, created_at FROM %s ORDER BY created_at DESC LIMIT $1`,
		d.table(),
	)
	rows, err := d.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MLookupRecord
	for rows.Next() {
		var (
			rec        models.MLookupRecord
			candidates sql.NullString
			symbol     sql.NullString
			errText    sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.RawTicker, &symbol, &candidates, &errText, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Symbol = symbol.String
		rec.Error = errText.String
		if err := decodeCandidates(candidates.String, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) CleanupOldData() error {
	days := d.Config.Storage.RetentionDays
	if days <= 0 {
		return nil
	}

	cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	res, err := d.DB.Exec(fmt.Sprintf(`DELETE FROM %s WHERE created_at < $1`, d.table()), cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup lookups: %w", err)
	}

	if n, _ := res.RowsAffected(); n > 0 {
		d.Logger.Info("Removed %d lookups older than %d days", n, days)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
