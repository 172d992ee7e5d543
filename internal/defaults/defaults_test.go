package defaults

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vistapra/content-hub-go/internal/content"
)

func TestEverySlugHasAPayload(t *testing.T) {
	screens := Screens()
	require.Len(t, screens, len(Slugs()))
	for _, slug := range Slugs() {
		payload, ok := screens[slug]
		require.True(t, ok, "missing default for %s", slug)
		require.NotEmpty(t, payload, "empty default for %s", slug)
	}
}

func TestAggregateIsAFreshCopy(t *testing.T) {
	first := Aggregate()
	first.Screens["message"]["title"] = content.String("mutated")
	first.Theme.PrimaryColor = "#000000"

	second := Aggregate()
	require.Equal(t, "A Special Message", second.Screens["message"]["title"].Str())
	require.Equal(t, "#e8b5b9", second.Theme.PrimaryColor)
}

func TestListItemsHaveUniqueIDs(t *testing.T) {
	for slug, payload := range Screens() {
		for _, name := range payload.FieldNames() {
			value := payload[name]
			if value.Kind() != content.KindList {
				continue
			}
			seen := map[string]bool{}
			for _, item := range value.Items() {
				id, ok := item.Field("id")
				require.True(t, ok, "%s.%s item without id", slug, name)
				require.False(t, seen[id.Str()], "%s.%s duplicate id %s", slug, name, id.Str())
				seen[id.Str()] = true
			}
		}
	}
}

func TestThemeColorsAreHex(t *testing.T) {
	hex := regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	theme := Aggregate().Theme
	for _, color := range []string{
		theme.PrimaryColor, theme.SecondaryColor, theme.BackgroundColor, theme.TextColor,
	} {
		require.Regexp(t, hex, color)
	}
}

func TestScreenLookup(t *testing.T) {
	payload, ok := Screen("greeting")
	require.True(t, ok)
	require.NotEmpty(t, payload)

	_, ok = Screen("nope")
	require.False(t, ok)
}
