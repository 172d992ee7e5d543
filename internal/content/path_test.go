package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func nestedPayload() Payload {
	return Payload{
		"title": String("Hello"),
		"countdown": Object(map[string]Value{
			"targetDate": String("2025-01-01"),
			"labels": Object(map[string]Value{
				"days": String("Days"),
			}),
		}),
		"memories": List(
			Object(map[string]Value{"id": String("m1"), "title": String("First")}),
		),
	}
}

func TestGetPath(t *testing.T) {
	p := nestedPayload()

	v, ok := GetPath(p, []string{"title"})
	require.True(t, ok)
	require.Equal(t, "Hello", v.Str())

	v, ok = GetPath(p, []string{"countdown", "labels", "days"})
	require.True(t, ok)
	require.Equal(t, "Days", v.Str())

	v, ok = GetPath(p, []string{"memories", "m1", "title"})
	require.True(t, ok)
	require.Equal(t, "First", v.Str())

	_, ok = GetPath(p, []string{"memories", "m2", "title"})
	require.False(t, ok)

	_, ok = GetPath(p, []string{"countdown", "missing"})
	require.False(t, ok)
}

func TestSetPath_TopLevel(t *testing.T) {
	p := nestedPayload()

	updated, err := SetPath(p, []string{"title"}, String("Goodbye"))
	require.NoError(t, err)
	require.Equal(t, "Goodbye", updated["title"].Str())
	require.Equal(t, "Hello", p["title"].Str())
}

func TestSetPath_NestedObject(t *testing.T) {
	p := nestedPayload()

	updated, err := SetPath(p, []string{"countdown", "labels", "days"}, String("Tage"))
	require.NoError(t, err)

	v, ok := GetPath(updated, []string{"countdown", "labels", "days"})
	require.True(t, ok)
	require.Equal(t, "Tage", v.Str())

	// Siblings survive.
	v, ok = GetPath(updated, []string{"countdown", "targetDate"})
	require.True(t, ok)
	require.Equal(t, "2025-01-01", v.Str())
}

func TestSetPath_ListItemByID(t *testing.T) {
	p := nestedPayload()

	updated, err := SetPath(p, []string{"memories", "m1", "title"}, String("Renamed"))
	require.NoError(t, err)

	v, ok := GetPath(updated, []string{"memories", "m1", "title"})
	require.True(t, ok)
	require.Equal(t, "Renamed", v.Str())
}

func TestSetPath_NewLeafInObject(t *testing.T) {
	p := nestedPayload()

	updated, err := SetPath(p, []string{"countdown", "subtitle"}, String("Soon"))
	require.NoError(t, err)

	v, ok := GetPath(updated, []string{"countdown", "subtitle"})
	require.True(t, ok)
	require.Equal(t, "Soon", v.Str())
}

func TestSetPath_MissingIntermediate(t *testing.T) {
	p := nestedPayload()

	_, err := SetPath(p, []string{"missing", "child"}, String("x"))
	require.ErrorIs(t, err, ErrPathNotFound)

	_, err = SetPath(p, []string{"memories", "m9", "title"}, String("x"))
	require.ErrorIs(t, err, ErrPathNotFound)

	_, err = SetPath(p, []string{"title", "child"}, String("x"))
	require.ErrorIs(t, err, ErrPathNotFound)
}
