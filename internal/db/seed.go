package db

import (
	"database/sql"
	"fmt"

	"github.com/vistapra/content-hub-go/internal/defaults"
)

// seedScreens inserts the default payload for every known slug that has
// no row yet. Existing rows are never overwritten: seeding only fills
// gaps so a fresh database is immediately editable.
func seedScreens(writer *sql.DB) error {
	stmt, err := writer.Prepare(`
		INSERT OR IGNORE INTO screens (slug, kind, payload, updated_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := NowISO()
	screens := defaults.Screens()
	for _, slug := range defaults.Slugs() {
		payload, ok := screens[slug]
		if !ok {
			continue
		}
		encoded, err := payload.Encode()
		if err != nil {
			return fmt.Errorf("encode default payload for %s: %w", slug, err)
		}
		if _, err := stmt.Exec(slug, slug, string(encoded), now); err != nil {
			return fmt.Errorf("insert %s: %w", slug, err)
		}
	}
	return nil
}
