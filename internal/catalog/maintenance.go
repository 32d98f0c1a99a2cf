package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"picdex/internal/config"
)

// Totals returns catalog-wide counts for summary output.
func (s *Store) Totals(ctx context.Context) (Totals, error) {
	ctx = ensureContext(ctx)
	var totals Totals
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM pictures`).Scan(&totals.Pictures); err != nil {
		return Totals{}, fmt.Errorf("count pictures: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM types`).Scan(&totals.Types); err != nil {
		return Totals{}, fmt.Errorf("count types: %w", err)
	}
	return totals, nil
}

// Inspect reports health for the catalog at the configured path without
// creating the database or taking the writer lock, so it can run next to an
// active ingest.
func Inspect(ctx context.Context, cfg *config.Config) (DatabaseHealth, error) {
	path := cfg.Paths.CatalogPath
	health := DatabaseHealth{DBPath: path}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return health, nil
		}
		return health, fmt.Errorf("stat catalog database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("catalog database path %q is a directory", path)
	}
	health.DatabaseExists = true

	db, err := sql.Open("sqlite", path)
	if err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	probe := &Store{db: db, path: path}
	probed, err := probe.CheckHealth(ctx)
	if err != nil {
		return probed, err
	}
	return probed, nil
}

// CheckHealth returns diagnostic information about the catalog database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{DBPath: s.path}

	if s.path == "" {
		return health, errors.New("catalog database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return health, nil
		}
		return health, fmt.Errorf("stat catalog database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("catalog database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("catalog database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ensureContext(ctx), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping catalog database: %w", err)
	}
	health.DatabaseReadable = true

	var present int
	row := s.db.QueryRowContext(connCtx,
		`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name IN ('pictures', 'types')`)
	if err := row.Scan(&present); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("query table info: %w", err)
	}
	health.TablesPresent = present == 2

	if health.TablesPresent {
		row = s.db.QueryRowContext(connCtx, `SELECT COUNT(1) FROM pictures`)
		if err := row.Scan(&health.TotalPictures); err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("count pictures: %w", err)
		}
	}

	row = s.db.QueryRowContext(connCtx, "PRAGMA integrity_check")
	var integrityResult string
	if err := row.Scan(&integrityResult); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return health, errors.New("integrity check returned no result")
		}
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}
