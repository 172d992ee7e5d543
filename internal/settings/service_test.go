package settings

import (
	"math"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/vistapra/content-hub-go/internal/db"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	dbPair, err := db.Init(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { dbPair.Close() })

	return NewService(dbPair, nil)
}

func TestService_AllEmpty(t *testing.T) {
	service := setupService(t)

	settings, err := service.All()
	require.NoError(t, err)
	require.Empty(t, settings)
}

func TestService_UpsertMany(t *testing.T) {
	service := setupService(t)

	require.NoError(t, service.UpsertMany(map[string]any{
		"primaryColor":  "#abcdef",
		"recipientName": "Sam",
	}))

	settings, err := service.All()
	require.NoError(t, err)
	require.Equal(t, "#abcdef", settings["primaryColor"])
	require.Equal(t, "Sam", settings["recipientName"])
}

func TestService_UpsertManyOverwrites(t *testing.T) {
	service := setupService(t)

	require.NoError(t, service.UpsertMany(map[string]any{"primaryColor": "#111111"}))
	require.NoError(t, service.UpsertMany(map[string]any{"primaryColor": "#222222"}))

	settings, err := service.All()
	require.NoError(t, err)
	require.Equal(t, "#222222", settings["primaryColor"])
	require.Len(t, settings, 1)
}

func TestService_UpsertManySerializesNonStrings(t *testing.T) {
	service := setupService(t)

	require.NoError(t, service.UpsertMany(map[string]any{
		"volume":  0.5,
		"enabled": true,
	}))

	settings, err := service.All()
	require.NoError(t, err)
	require.Equal(t, "0.5", settings["volume"])
	require.Equal(t, "true", settings["enabled"])
}

func TestService_UpsertManyAtomic(t *testing.T) {
	service := setupService(t)
	require.NoError(t, service.UpsertMany(map[string]any{"primaryColor": "#111111"}))

	// NaN cannot be serialized, so the whole batch must roll back.
	err := service.UpsertMany(map[string]any{
		"primaryColor": "#222222",
		"broken":       math.NaN(),
	})
	require.Error(t, err)

	settings, err := service.All()
	require.NoError(t, err)
	require.Equal(t, "#111111", settings["primaryColor"])
	_, ok := settings["broken"]
	require.False(t, ok)
}
