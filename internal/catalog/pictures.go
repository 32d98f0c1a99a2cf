package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"picdex/internal/tagset"
)

// ErrConflict indicates an insert hit an existing (content hash, size) pair.
// Under single-writer discipline the pipeline checks FindPicture first, so
// this surfacing means a logic bug; callers treat it as a store-write failure.
var ErrConflict = errors.New("picture already cataloged")

const pictureColumns = "id, filename, first_path, type_id, size, content_hash, tags, dupe_count, created_at, updated_at"

// FindPicture returns the record matching the dedup key, or nil when the
// content has never been seen.
func (s *Store) FindPicture(ctx context.Context, contentHash string, size int64) (*Picture, error) {
	row := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT `+pictureColumns+` FROM pictures WHERE content_hash = ? AND size = ?`,
		contentHash,
		size,
	)
	picture, err := scanPicture(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find picture: %w", err)
	}
	return picture, nil
}

// InsertPicture creates the first-sighting record for new content. Tags are
// deduplicated and sorted before storage and the duplicate counter starts
// at zero.
func (s *Store) InsertPicture(ctx context.Context, pic NewPicture) (*Picture, error) {
	if pic.ContentHash == "" {
		return nil, errors.New("content hash is required")
	}
	if pic.Size < 0 {
		return nil, fmt.Errorf("negative size %d for %s", pic.Size, pic.FirstPath)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO pictures (
            filename, first_path, type_id, size, content_hash, tags, dupe_count, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		pic.Filename,
		pic.FirstPath,
		pic.TypeID,
		pic.Size,
		pic.ContentHash,
		tagset.New(pic.Tags...).Serialize(),
		timestamp,
		timestamp,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: hash %s size %d", ErrConflict, pic.ContentHash, pic.Size)
		}
		return nil, fmt.Errorf("insert picture: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.getPicture(ctx, id)
}

// MergeTags unions newTags into the record's tag set and counts one more
// duplicate sighting. The read-union-write happens inside a single
// transaction so an interrupted run never loses tags or sightings.
func (s *Store) MergeTags(ctx context.Context, id int64, newTags []string) (*Picture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = ensureContext(ctx)
	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin merge tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		var serialized string
		if err := tx.QueryRowContext(ctx, `SELECT tags FROM pictures WHERE id = ?`, id).Scan(&serialized); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("merge tags: no picture with id %d", id)
			}
			return fmt.Errorf("read tags: %w", err)
		}

		merged := tagset.Parse(serialized)
		merged.Add(newTags...)

		if _, err := tx.ExecContext(
			ctx,
			`UPDATE pictures SET tags = ?, dupe_count = dupe_count + 1, updated_at = ? WHERE id = ?`,
			merged.Serialize(),
			time.Now().UTC().Format(time.RFC3339Nano),
			id,
		); err != nil {
			return fmt.Errorf("update tags: %w", err)
		}

		return tx.Commit()
	})
	if err != nil {
		return nil, err
	}
	return s.getPicture(ctx, id)
}

// ListPictures returns all catalog records ordered by id.
func (s *Store) ListPictures(ctx context.Context) ([]*Picture, error) {
	return s.queryPictures(ctx, `SELECT `+pictureColumns+` FROM pictures ORDER BY id`)
}

// PicturesByTag returns records whose tag set contains the given tag.
func (s *Store) PicturesByTag(ctx context.Context, tag string) ([]*Picture, error) {
	normalized := tagset.New(tag).Serialize()
	if normalized == "" {
		return nil, errors.New("tag must not be empty")
	}
	d := tagset.Delimiter
	return s.queryPictures(
		ctx,
		`SELECT `+pictureColumns+` FROM pictures WHERE instr(? || tags || ?, ?) > 0 ORDER BY id`,
		d, d, d+normalized+d,
	)
}

func (s *Store) queryPictures(ctx context.Context, query string, args ...any) ([]*Picture, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pictures: %w", err)
	}
	defer rows.Close()

	var pictures []*Picture
	for rows.Next() {
		picture, err := scanPicture(rows)
		if err != nil {
			return nil, err
		}
		pictures = append(pictures, picture)
	}
	return pictures, rows.Err()
}

func (s *Store) getPicture(ctx context.Context, id int64) (*Picture, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+pictureColumns+` FROM pictures WHERE id = ?`, id)
	picture, err := scanPicture(row)
	if err != nil {
		return nil, fmt.Errorf("get picture: %w", err)
	}
	return picture, nil
}

func scanPicture(scanner interface{ Scan(dest ...any) error }) (*Picture, error) {
	var (
		id         int64
		filename   string
		firstPath  string
		typeID     int64
		size       int64
		hash       string
		tags       string
		dupeCount  int64
		createdRaw string
		updatedRaw string
	)

	if err := scanner.Scan(
		&id,
		&filename,
		&firstPath,
		&typeID,
		&size,
		&hash,
		&tags,
		&dupeCount,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	picture := &Picture{
		ID:          id,
		Filename:    filename,
		FirstPath:   firstPath,
		TypeID:      typeID,
		Size:        size,
		ContentHash: hash,
		Tags:        tagset.Parse(tags).Values(),
		DupeCount:   dupeCount,
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		picture.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		picture.UpdatedAt = updated
	}
	return picture, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}
