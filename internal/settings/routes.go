package settings

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/vistapra/content-hub-go/internal/api"
	"github.com/vistapra/content-hub-go/internal/apperrors"
	"github.com/vistapra/content-hub-go/internal/db"
)

// DBPair interface for dependency injection (matches db.DBPair).
type DBPair interface {
	Reader() *sql.DB
	Writer() *sql.DB
}

// Notifier receives a callback after every successful settings write.
// A nil Notifier disables notifications.
type Notifier interface {
	SettingsUpdated(keys []string)
}

// Service provides the flat key/value settings store.
// Uses separate reader/writer connections for optimal SQLite concurrency.
type Service struct {
	reader *sql.DB
	writer *sql.DB
	logger *log.Logger
}

// NewService creates a new settings service.
func NewService(dbPair DBPair, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}

	return &Service{
		reader: dbPair.Reader(),
		writer: dbPair.Writer(),
		logger: logger,
	}
}

// RegisterRoutes wires settings routes to the router.
func RegisterRoutes(router chi.Router, service *Service, notifier Notifier) {
	router.Method(http.MethodGet, "/v1/settings", api.Handler(getSettings(service)))
	router.Method(http.MethodPost, "/v1/settings", api.Handler(updateSettings(service, notifier)))
}

func getSettings(service *Service) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		settings, err := service.All()
		if err != nil {
			return apperrors.NewInternalError("Failed to get settings")
		}

		return api.WriteJSON(w, http.StatusOK, settings)
	}
}

func updateSettings(service *Service, notifier Notifier) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		var entries map[string]any
		if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
			return apperrors.NewValidationError("invalid request body", nil)
		}
		if len(entries) == 0 {
			return apperrors.NewValidationError("at least one setting is required", nil)
		}

		if err := service.UpsertMany(entries); err != nil {
			return apperrors.NewInternalError("Failed to update settings")
		}

		keys := make([]string, 0, len(entries))
		for key := range entries {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		if notifier != nil {
			notifier.SettingsUpdated(keys)
		}
		return api.WriteResource(w, http.StatusOK, map[string]any{
			"object":  api.ObjectSettings,
			"updated": keys,
		})
	}
}

// All returns every setting as a flat key→value map.
func (s *Service) All() (map[string]string, error) {
	rows, err := s.reader.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

// UpsertMany writes all entries in one transaction: either every key is
// visible afterwards or none are, so a partial theme update can never be
// half-applied. String values are stored as-is; anything else is
// serialized to JSON text and must be parsed back by the reader.
func (s *Service) UpsertMany(entries map[string]any) error {
	tx, err := s.writer.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := db.NowISO()
	for key, raw := range entries {
		value, err := serializeValue(raw)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(key, value, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func serializeValue(raw any) (string, error) {
	if str, ok := raw.(string); ok {
		return str, nil
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
