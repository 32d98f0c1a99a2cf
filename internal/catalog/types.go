package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ResolveType returns the id for a type label, creating the descriptor on
// first sighting. Labels match exactly; the classifier output is the key.
func (s *Store) ResolveType(ctx context.Context, label string) (int64, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, errors.New("type label must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = ensureContext(ctx)
	id, err := s.lookupType(ctx, label)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lookup type: %w", err)
	}

	res, err := s.execWithRetry(ctx, `INSERT INTO types (label) VALUES (?)`, label)
	if err != nil {
		// The UNIQUE(label) constraint backstops a concurrent insert.
		if isUniqueViolation(err) {
			id, lookupErr := s.lookupType(ctx, label)
			if lookupErr != nil {
				return 0, fmt.Errorf("re-lookup type: %w", lookupErr)
			}
			return id, nil
		}
		return 0, fmt.Errorf("insert type: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) lookupType(ctx context.Context, label string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM types WHERE label = ?`, label).Scan(&id)
	return id, err
}

// Types returns every known type descriptor ordered by id.
func (s *Store) Types(ctx context.Context) ([]TypeDescriptor, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT id, label FROM types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query types: %w", err)
	}
	defer rows.Close()

	var types []TypeDescriptor
	for rows.Next() {
		var td TypeDescriptor
		if err := rows.Scan(&td.ID, &td.Label); err != nil {
			return nil, err
		}
		types = append(types, td)
	}
	return types, rows.Err()
}

// TypeBreakdown returns per-label picture counts ordered by count, then id.
func (s *Store) TypeBreakdown(ctx context.Context) ([]TypeCount, error) {
	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT t.id, t.label, COUNT(p.id)
         FROM types t LEFT JOIN pictures p ON p.type_id = t.id
         GROUP BY t.id, t.label
         ORDER BY COUNT(p.id) DESC, t.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("type breakdown: %w", err)
	}
	defer rows.Close()

	var counts []TypeCount
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.ID, &tc.Label, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}
