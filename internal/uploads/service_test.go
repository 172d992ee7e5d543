package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	dir := t.TempDir()
	service, err := NewService(dir, "http://localhost:3001")
	require.NoError(t, err)

	url, err := service.Store(strings.NewReader("fake image bytes"), "photo.jpg")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:3001/v1/uploads/"))
	require.True(t, strings.HasSuffix(url, ".jpg"))

	name := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.Equal(t, "fake image bytes", string(data))
}

func TestStore_UniqueNames(t *testing.T) {
	service, err := NewService(t.TempDir(), "")
	require.NoError(t, err)

	first, err := service.Store(strings.NewReader("a"), "same.png")
	require.NoError(t, err)
	second, err := service.Store(strings.NewReader("b"), "same.png")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestNewService_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewService(dir, "")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
