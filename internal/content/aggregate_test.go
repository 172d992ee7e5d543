package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func baseTheme() Theme {
	return Theme{
		PrimaryColor:    "#111111",
		SecondaryColor:  "#222222",
		BackgroundColor: "#333333",
		TextColor:       "#444444",
		FontFamily:      "serif",
		ButtonStyle:     "rounded",
	}
}

func TestThemeMerge(t *testing.T) {
	accent := "#abcdef"
	merged := baseTheme().Merge(ThemePartial{PrimaryColor: &accent})

	require.Equal(t, "#abcdef", merged.PrimaryColor)
	require.Equal(t, "#222222", merged.SecondaryColor)
	require.Equal(t, "serif", merged.FontFamily)
}

func TestThemePartialSettings_OnlyPresentKeys(t *testing.T) {
	accent := "#abcdef"
	font := "monospace"
	settings := ThemePartial{PrimaryColor: &accent, FontFamily: &font}.Settings()

	require.Equal(t, map[string]string{
		"primaryColor": "#abcdef",
		"fontFamily":   "monospace",
	}, settings)
}

func TestThemeFromSettings_FieldByFieldFallback(t *testing.T) {
	theme := ThemeFromSettings(map[string]string{
		"primaryColor": "#abcdef",
		"textColor":    "",
		"unrelated":    "ignored",
	}, baseTheme())

	require.Equal(t, "#abcdef", theme.PrimaryColor)
	require.Equal(t, "#222222", theme.SecondaryColor)
	// Empty strings do not override the default.
	require.Equal(t, "#444444", theme.TextColor)
}

func TestAggregateClone_IsDeep(t *testing.T) {
	agg := Aggregate{
		RecipientName: "Sam",
		Theme:         baseTheme(),
		Screens: map[string]Payload{
			"welcome": {"title": String("Hi")},
		},
	}

	clone := agg.Clone()
	clone.Screens["welcome"]["title"] = String("Changed")

	require.Equal(t, "Hi", agg.Screens["welcome"]["title"].Str())
}
