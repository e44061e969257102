package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pulselabs/trendpulse/internal/contracts"
)

// ErrNoSnapshot is returned when no scan snapshot has been stored yet
var ErrNoSnapshot = errors.New("no scan snapshot found")

// Repository persists scan snapshots and alert deliveries
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Pool returns the underlying database pool
func (r *Repository) Pool() *pgxpool.Pool {
	return r.db
}

// SaveSnapshot stores the ranked result of one scan run
func (r *Repository) SaveSnapshot(ctx context.Context, result *contracts.RankedResult) error {
	trendsJSON, err := json.Marshal(result.Trends)
	if err != nil {
		return fmt.Errorf("marshal trends: %w", err)
	}

	query := `
		INSERT INTO trendpulse.scan_snapshots (
			scanned_at, trends, reddit_tickers, twitter_tickers, created_at
		) VALUES ($1, $2, $3, $4, NOW())
	`

	_, err = r.db.Exec(ctx, query,
		result.Updated,
		trendsJSON,
		result.Sources.Reddit,
		result.Sources.Twitter,
	)
	if err != nil {
		return fmt.Errorf("insert scan snapshot: %w", err)
	}

	return nil
}

// GetLatestSnapshot returns the most recent scan snapshot
func (r *Repository) GetLatestSnapshot(ctx context.Context) (*contracts.RankedResult, error) {
	query := `
		SELECT scanned_at, trends, reddit_tickers, twitter_tickers
		FROM trendpulse.scan_snapshots
		ORDER BY scanned_at DESC
		LIMIT 1
	`

	var result contracts.RankedResult
	var trendsJSON []byte

	err := r.db.QueryRow(ctx, query).Scan(
		&result.Updated,
		&trendsJSON,
		&result.Sources.Reddit,
		&result.Sources.Twitter,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	if err := json.Unmarshal(trendsJSON, &result.Trends); err != nil {
		return nil, fmt.Errorf("unmarshal trends: %w", err)
	}

	return &result, nil
}

// GetSnapshotsSince returns snapshots scanned at or after the cutoff,
// newest first
func (r *Repository) GetSnapshotsSince(ctx context.Context, cutoff time.Time) ([]contracts.RankedResult, error) {
	query := `
		SELECT scanned_at, trends, reddit_tickers, twitter_tickers
		FROM trendpulse.scan_snapshots
		WHERE scanned_at >= $1
		ORDER BY scanned_at DESC
	`

	rows, err := r.db.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var results []contracts.RankedResult
	for rows.Next() {
		var result contracts.RankedResult
		var trendsJSON []byte

		if err := rows.Scan(
			&result.Updated,
			&trendsJSON,
			&result.Sources.Reddit,
			&result.Sources.Twitter,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		if err := json.Unmarshal(trendsJSON, &result.Trends); err != nil {
			return nil, fmt.Errorf("unmarshal trends: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// AlertRecord is one delivered (or attempted) alert
type AlertRecord struct {
	Ticker    string           `json:"ticker"`
	Signal    contracts.Signal `json:"signal"`
	Momentum  int              `json:"momentum"`
	Sentiment float64          `json:"sentiment"`
	Channels  map[string]bool  `json:"channels"`
	CreatedAt time.Time        `json:"created_at"`
}

// SaveAlert records an alert dispatch and its per-channel outcome
func (r *Repository) SaveAlert(ctx context.Context, record *AlertRecord) error {
	channelsJSON, err := json.Marshal(record.Channels)
	if err != nil {
		return fmt.Errorf("marshal channels: %w", err)
	}

	query := `
		INSERT INTO trendpulse.alert_log (
			ticker, signal, momentum, sentiment, channels, created_at
		) VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err = r.db.Exec(ctx, query,
		record.Ticker,
		string(record.Signal),
		record.Momentum,
		record.Sentiment,
		channelsJSON,
	)
	if err != nil {
		return fmt.Errorf("insert alert record: %w", err)
	}

	return nil
}

// GetRecentAlerts returns the latest alert records up to limit
func (r *Repository) GetRecentAlerts(ctx context.Context, limit int) ([]AlertRecord, error) {
	query := `
		SELECT ticker, signal, momentum, sentiment, channels, created_at
		FROM trendpulse.alert_log
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	var records []AlertRecord
	for rows.Next() {
		var record AlertRecord
		var signal string
		var channelsJSON []byte

		if err := rows.Scan(
			&record.Ticker,
			&signal,
			&record.Momentum,
			&record.Sentiment,
			&channelsJSON,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan alert row: %w", err)
		}
		record.Signal = contracts.Signal(signal)
		if err := json.Unmarshal(channelsJSON, &record.Channels); err != nil {
			return nil, fmt.Errorf("unmarshal channels: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
