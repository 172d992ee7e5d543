// Package sync holds the optimistic synchronization engine. Local state
// is authoritative for the session: every mutation applies to the
// in-memory aggregate first and is persisted in the background. A failed
// persist is logged and never rolled back.
package sync

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/vistapra/content-hub-go/internal/client"
	"github.com/vistapra/content-hub-go/internal/content"
	"github.com/vistapra/content-hub-go/internal/defaults"
)

const persistTimeout = 15 * time.Second

// Remote is the slice of the hub API the engine needs. A nil Remote puts
// the engine in static mode: defaults only, no persistence.
type Remote interface {
	Screens(ctx context.Context) ([]client.Screen, error)
	Settings(ctx context.Context) (map[string]string, error)
	UpdateScreen(ctx context.Context, slug string, payload content.Payload) error
	UpdateSettings(ctx context.Context, entries map[string]any) error
}

// Engine owns the merged aggregate and pushes local edits to the hub.
type Engine struct {
	remote Remote
	logger *log.Logger

	mu        sync.Mutex
	aggregate content.Aggregate
	onChange  func(content.Aggregate)

	persists sync.WaitGroup
}

// NewEngine creates an engine seeded with the built-in defaults.
func NewEngine(remote Remote, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		remote:    remote,
		logger:    logger,
		aggregate: defaults.Aggregate(),
	}
}

// Static reports whether the engine has no remote to sync with.
func (e *Engine) Static() bool {
	return e.remote == nil
}

// Subscribe registers the change callback. It is invoked with a deep copy
// of the aggregate after every local change, on the mutating goroutine.
func (e *Engine) Subscribe(fn func(content.Aggregate)) {
	e.mu.Lock()
	e.onChange = fn
	e.mu.Unlock()
}

// Aggregate returns a deep copy of the current aggregate.
func (e *Engine) Aggregate() content.Aggregate {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.aggregate.Clone()
}

// Load builds the aggregate from the hub. Screens and settings are
// fetched concurrently; if either fetch fails the engine falls back to
// the complete default aggregate and reports no error, so callers always
// get something renderable.
func (e *Engine) Load(ctx context.Context) content.Aggregate {
	agg := defaults.Aggregate()
	if e.remote == nil {
		return e.swap(agg)
	}

	var (
		wg          sync.WaitGroup
		screens     []client.Screen
		settings    map[string]string
		screensErr  error
		settingsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		screens, screensErr = e.remote.Screens(ctx)
	}()
	go func() {
		defer wg.Done()
		settings, settingsErr = e.remote.Settings(ctx)
	}()
	wg.Wait()

	if screensErr != nil || settingsErr != nil {
		if screensErr != nil {
			e.logger.Printf("sync: screens fetch failed, using defaults: %v", screensErr)
		}
		if settingsErr != nil {
			e.logger.Printf("sync: settings fetch failed, using defaults: %v", settingsErr)
		}
		return e.swap(agg)
	}

	for _, screen := range screens {
		if screen.Payload == nil {
			continue
		}
		agg.Screens[screen.Slug] = screen.Payload.Clone()
	}
	agg.Theme = content.ThemeFromSettings(settings, agg.Theme)
	if v, ok := settings["recipientName"]; ok && v != "" {
		agg.RecipientName = v
	}
	if v, ok := settings["musicUrl"]; ok && v != "" {
		agg.MusicURL = v
	}
	return e.swap(agg)
}

// ReplaceAll swaps in a complete aggregate. Local only: bulk imports and
// restores decide separately what, if anything, to push back.
func (e *Engine) ReplaceAll(agg content.Aggregate) {
	e.swap(agg.Clone())
}

// UpdateSection lays the partial over the screen's current payload and
// persists the full merged payload in the background. The hub replaces
// payloads wholesale, so the merge has to happen here.
func (e *Engine) UpdateSection(slug string, partial content.Payload) {
	e.mu.Lock()
	merged := e.aggregate.Screens[slug].Merge(partial)
	e.aggregate.Screens[slug] = merged
	e.notifyLocked()
	e.mu.Unlock()

	e.persistScreen(slug, merged.Clone())
}

// UpdateTheme merges the partial into the local theme and persists only
// the keys the partial carries.
func (e *Engine) UpdateTheme(partial content.ThemePartial) {
	e.mu.Lock()
	e.aggregate.Theme = e.aggregate.Theme.Merge(partial)
	e.notifyLocked()
	e.mu.Unlock()

	entries := map[string]any{}
	for key, value := range partial.Settings() {
		entries[key] = value
	}
	e.persistSettings(entries)
}

// UpdateGlobals updates the non-theme globals. Nil fields are untouched
// and not persisted.
func (e *Engine) UpdateGlobals(recipientName, musicURL *string) {
	entries := map[string]any{}
	e.mu.Lock()
	if recipientName != nil {
		e.aggregate.RecipientName = *recipientName
		entries["recipientName"] = *recipientName
	}
	if musicURL != nil {
		e.aggregate.MusicURL = *musicURL
		entries["musicUrl"] = *musicURL
	}
	e.notifyLocked()
	e.mu.Unlock()

	e.persistSettings(entries)
}

// CreateItem appends a freshly templated item to a list and returns it.
// The list key goes through the same fallback discovery the hub uses.
func (e *Engine) CreateItem(slug, listKey string) (content.Value, error) {
	e.mu.Lock()
	payload, ok := e.aggregate.Screens[slug]
	if !ok {
		e.mu.Unlock()
		return content.Null(), content.ErrListNotFound
	}
	key, ok := content.FindListKey(payload, listKey)
	if !ok {
		e.mu.Unlock()
		return content.Null(), content.ErrListNotFound
	}
	item := content.NewItem(key, payload[key].Items())
	next, err := content.AppendItem(payload, key, item)
	if err != nil {
		e.mu.Unlock()
		return content.Null(), err
	}
	e.aggregate.Screens[slug] = next
	e.notifyLocked()
	e.mu.Unlock()

	e.persistScreen(slug, next.Clone())
	return item, nil
}

// UpdateItem merges fields into one list item by id.
func (e *Engine) UpdateItem(slug, listKey, itemID string, fields map[string]content.Value) error {
	e.mu.Lock()
	payload, ok := e.aggregate.Screens[slug]
	if !ok {
		e.mu.Unlock()
		return content.ErrListNotFound
	}
	next, err := content.MergeItem(payload, listKey, itemID, fields)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.aggregate.Screens[slug] = next
	e.notifyLocked()
	e.mu.Unlock()

	e.persistScreen(slug, next.Clone())
	return nil
}

// DeleteItem removes one list item by id.
func (e *Engine) DeleteItem(slug, listKey, itemID string) error {
	e.mu.Lock()
	payload, ok := e.aggregate.Screens[slug]
	if !ok {
		e.mu.Unlock()
		return content.ErrListNotFound
	}
	next, err := content.RemoveItem(payload, listKey, itemID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.aggregate.Screens[slug] = next
	e.notifyLocked()
	e.mu.Unlock()

	e.persistScreen(slug, next.Clone())
	return nil
}

// ResetToDefaults discards all local state and returns to the built-in
// defaults. It touches nothing on the hub. A non-nil confirm gates the
// reset; returning false aborts it.
func (e *Engine) ResetToDefaults(confirm func() bool) bool {
	if confirm != nil && !confirm() {
		return false
	}
	e.swap(defaults.Aggregate())
	return true
}

// Flush blocks until all in-flight background persists finish.
func (e *Engine) Flush() {
	e.persists.Wait()
}

func (e *Engine) swap(agg content.Aggregate) content.Aggregate {
	e.mu.Lock()
	e.aggregate = agg
	e.notifyLocked()
	e.mu.Unlock()
	return agg.Clone()
}

func (e *Engine) notifyLocked() {
	if e.onChange != nil {
		e.onChange(e.aggregate.Clone())
	}
}

func (e *Engine) persistScreen(slug string, payload content.Payload) {
	if e.remote == nil {
		return
	}
	e.persists.Add(1)
	go func() {
		defer e.persists.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := e.remote.UpdateScreen(ctx, slug, payload); err != nil {
			e.logger.Printf("sync: persist screen %s failed (local state kept): %v", slug, err)
		}
	}()
}

func (e *Engine) persistSettings(entries map[string]any) {
	if e.remote == nil || len(entries) == 0 {
		return
	}
	e.persists.Add(1)
	go func() {
		defer e.persists.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := e.remote.UpdateSettings(ctx, entries); err != nil {
			e.logger.Printf("sync: persist settings failed (local state kept): %v", err)
		}
	}()
}
