package screens

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vistapra/content-hub-go/internal/content"
	"github.com/vistapra/content-hub-go/internal/db"
)

// DBPair interface for dependency injection (matches db.DBPair).
type DBPair interface {
	Reader() *sql.DB
	Writer() *sql.DB
}

// Repository handles database operations for screen documents.
// Uses separate reader/writer connections for optimal SQLite concurrency.
type Repository struct {
	reader *sql.DB // For SELECT queries
	writer *sql.DB // For INSERT/UPDATE
}

// NewRepository creates a new screens Repository.
func NewRepository(dbPair DBPair) *Repository {
	return &Repository{reader: dbPair.Reader(), writer: dbPair.Writer()}
}

// List retrieves all screen documents, payloads deserialized.
func (r *Repository) List() ([]Screen, error) {
	rows, err := r.reader.Query(`
		SELECT slug, kind, payload, updated_at
		FROM screens
		ORDER BY slug
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var screens []Screen
	for rows.Next() {
		screen, err := scanScreen(rows)
		if err != nil {
			return nil, err
		}
		screens = append(screens, *screen)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if screens == nil {
		screens = []Screen{}
	}
	return screens, nil
}

// GetBySlug retrieves one screen document. Returns nil when the slug was
// never bootstrapped.
func (r *Repository) GetBySlug(slug string) (*Screen, error) {
	row := r.reader.QueryRow(`
		SELECT slug, kind, payload, updated_at
		FROM screens
		WHERE slug = ?
	`, slug)

	screen, err := scanScreen(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return screen, nil
}

// Create inserts a document for a brand new slug.
func (r *Repository) Create(input CreateScreenInput) (*Screen, error) {
	payload := input.Payload
	if payload == nil {
		payload = content.Payload{}
	}
	encoded, err := payload.Encode()
	if err != nil {
		return nil, err
	}

	kind := input.Kind
	if kind == "" {
		kind = input.Slug
	}

	_, err = r.writer.Exec(`
		INSERT INTO screens (slug, kind, payload, updated_at)
		VALUES (?, ?, ?, ?)
	`, input.Slug, kind, string(encoded), db.NowISO())
	if err != nil {
		return nil, err
	}

	return r.GetBySlug(input.Slug)
}

// ReplacePayload overwrites a document's payload wholesale and bumps
// updated_at. Returns nil when the slug does not exist. Every prior value
// is destroyed: no history is kept.
func (r *Repository) ReplacePayload(slug string, payload content.Payload) (*Screen, error) {
	encoded, err := payload.Encode()
	if err != nil {
		return nil, err
	}

	result, err := r.writer.Exec(`
		UPDATE screens SET payload = ?, updated_at = ? WHERE slug = ?
	`, string(encoded), db.NowISO(), slug)
	if err != nil {
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	return r.GetBySlug(slug)
}

// AppendItem appends an item to a list inside the payload, resolving the
// list by the requested key or the conventional fallbacks. Returns
// content.ErrListNotFound when no list can be located; the stored payload
// is untouched in that case. The read-modify-write pair is not guarded
// against a concurrent writer (last write wins, like every other write
// here).
func (r *Repository) AppendItem(slug, listKey string, item content.Value) (*Screen, error) {
	existing, err := r.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	updated, err := content.AppendItem(existing.Payload, listKey, item)
	if err != nil {
		return nil, err
	}

	return r.ReplacePayload(slug, updated)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScreen(row rowScanner) (*Screen, error) {
	var screen Screen
	var payloadJSON string
	var updatedAt string

	if err := row.Scan(&screen.Slug, &screen.Kind, &payloadJSON, &updatedAt); err != nil {
		return nil, err
	}

	payload, err := content.ParsePayload([]byte(payloadJSON))
	if err != nil {
		return nil, fmt.Errorf("parse payload for %s: %w", screen.Slug, err)
	}
	screen.Payload = payload

	screen.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if screen.UpdatedAt.IsZero() {
		screen.UpdatedAt, _ = time.Parse("2006-01-02 15:04:05", updatedAt)
	}

	return &screen, nil
}
