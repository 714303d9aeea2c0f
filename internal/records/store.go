package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"mediareel/internal/catalog"
)

// Store holds the render history in memory and persists it to a SQLite
// file. All mutation goes through a single Store instance; Save rewrites
// the file contents in one transaction so a failed write leaves the
// previous contents intact.
type Store struct {
	mu      sync.RWMutex
	records []Record

	db   *sql.DB
	path string
}

const createdAtLayout = time.RFC3339Nano

// Open connects to the store file at path, creating parent directories
// and the schema as needed. An existing file that cannot be parsed as a
// store yields ErrCorruptStore and is left untouched.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("records: store path is empty")
	}
	existed := false
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		existed = true
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create store directory: %v", ErrPersistence, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			if existed {
				return nil, fmt.Errorf("%w: apply pragma: %v", ErrCorruptStore, execErr)
			}
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the store file location.
func (s *Store) Path() string {
	return s.path
}

// Push appends a record to the history. The record becomes the new
// resume point returned by Peek.
func (s *Store) Push(rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// Peek returns the most recently pushed record. The second return is
// false when the history is empty.
func (s *Store) Peek() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// Len returns the number of records in the history.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// All returns the history ordered oldest to newest.
func (s *Store) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Save rewrites the store file with the full in-memory history in a
// single transaction. On failure the file keeps its previous contents.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	snapshot := make([]Record, len(s.records))
	copy(snapshot, s.records)
	s.mu.RUnlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin save tx: %v", ErrPersistence, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM render_records"); err != nil {
		return fmt.Errorf("%w: clear records: %v", ErrPersistence, err)
	}

	const insert = `
        INSERT INTO render_records (
            artifact_key, created_at,
            images_used_json, videos_used_json, audio_used_json,
            images_start, images_end, videos_start, videos_end,
            audio_index, next_audio_index, completed, destinations_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, rec := range snapshot {
		imagesJSON, err := marshalAssets(rec.ImagesUsed)
		if err != nil {
			return fmt.Errorf("%w: encode images: %v", ErrPersistence, err)
		}
		videosJSON, err := marshalAssets(rec.VideosUsed)
		if err != nil {
			return fmt.Errorf("%w: encode videos: %v", ErrPersistence, err)
		}
		audioJSON, err := json.Marshal(rec.AudioUsed)
		if err != nil {
			return fmt.Errorf("%w: encode audio: %v", ErrPersistence, err)
		}
		destinationsJSON, err := marshalStrings(rec.Destinations)
		if err != nil {
			return fmt.Errorf("%w: encode destinations: %v", ErrPersistence, err)
		}

		completed := 0
		if rec.Completed {
			completed = 1
		}
		_, err = tx.ExecContext(ctx, insert,
			rec.ArtifactKey,
			rec.CreatedAt.UTC().Format(createdAtLayout),
			string(imagesJSON),
			string(videosJSON),
			string(audioJSON),
			rec.ImagesRange.Start,
			rec.ImagesRange.End,
			rec.VideosRange.Start,
			rec.VideosRange.End,
			rec.AudioIndex,
			rec.NextAudioIndex,
			completed,
			string(destinationsJSON),
		)
		if err != nil {
			return fmt.Errorf("%w: insert record: %v", ErrPersistence, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit save: %v", ErrPersistence, err)
	}
	return nil
}

// Load replaces the in-memory history with the store file contents.
func (s *Store) Load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, artifact_key, created_at,
               images_used_json, videos_used_json, audio_used_json,
               images_start, images_end, videos_start, videos_end,
               audio_index, next_audio_index, completed, destinations_json
          FROM render_records
         ORDER BY id ASC`)
	if err != nil {
		return fmt.Errorf("%w: query records: %v", ErrCorruptStore, err)
	}
	defer func() { _ = rows.Close() }()

	var loaded []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return err
		}
		loaded = append(loaded, rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: iterate records: %v", ErrCorruptStore, err)
	}

	s.mu.Lock()
	s.records = loaded
	s.mu.Unlock()
	return nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		rec              Record
		createdAt        string
		imagesJSON       string
		videosJSON       string
		audioJSON        string
		completed        int
		destinationsJSON string
	)
	err := rows.Scan(
		&rec.ID,
		&rec.ArtifactKey,
		&createdAt,
		&imagesJSON,
		&videosJSON,
		&audioJSON,
		&rec.ImagesRange.Start,
		&rec.ImagesRange.End,
		&rec.VideosRange.Start,
		&rec.VideosRange.End,
		&rec.AudioIndex,
		&rec.NextAudioIndex,
		&completed,
		&destinationsJSON,
	)
	if err != nil {
		return Record{}, fmt.Errorf("%w: scan record: %v", ErrCorruptStore, err)
	}

	rec.CreatedAt, err = time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("%w: parse created_at %q: %v", ErrCorruptStore, createdAt, err)
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.Completed = completed != 0

	if rec.ImagesUsed, err = unmarshalAssets(imagesJSON); err != nil {
		return Record{}, fmt.Errorf("%w: decode images: %v", ErrCorruptStore, err)
	}
	if rec.VideosUsed, err = unmarshalAssets(videosJSON); err != nil {
		return Record{}, fmt.Errorf("%w: decode videos: %v", ErrCorruptStore, err)
	}
	if err = json.Unmarshal([]byte(audioJSON), &rec.AudioUsed); err != nil {
		return Record{}, fmt.Errorf("%w: decode audio: %v", ErrCorruptStore, err)
	}
	if rec.Destinations, err = unmarshalStrings(destinationsJSON); err != nil {
		return Record{}, fmt.Errorf("%w: decode destinations: %v", ErrCorruptStore, err)
	}
	return rec, nil
}

func marshalAssets(assets []catalog.Asset) ([]byte, error) {
	if assets == nil {
		assets = []catalog.Asset{}
	}
	return json.Marshal(assets)
}

func unmarshalAssets(raw string) ([]catalog.Asset, error) {
	if strings.TrimSpace(raw) == "" {
		return []catalog.Asset{}, nil
	}
	var assets []catalog.Asset
	if err := json.Unmarshal([]byte(raw), &assets); err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []catalog.Asset{}
	}
	return assets, nil
}

func marshalStrings(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func unmarshalStrings(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

// IsCorrupt reports whether err stems from an unreadable store file.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptStore)
}
