package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyField(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		want  FieldClass
	}{
		{"id", String("abc"), ClassReadOnly},
		{"count", Number(3), ClassNumber},
		{"enabled", Bool(true), ClassBool},
		{"backgroundColor", String("#ffffff"), ClassColor},
		{"accent", String("#fff"), ClassColor},
		{"tint", String("#D4AF37"), ClassColor},
		{"message", String("hi"), ClassLongText},
		{"description", String("short"), ClassLongText},
		{"wish", String("..."), ClassLongText},
		{"body", String(strings.Repeat("a", 51)), ClassLongText},
		{"body", String(strings.Repeat("a", 50)), ClassText},
		{"title", String("Happy Birthday"), ClassText},
		// "text" is no signal by itself: short text fields stay
		// single-line, long ones trip the length threshold.
		{"text", String("Preparing something special..."), ClassText},
		{"text", String(strings.Repeat("a", 51)), ClassLongText},
		{"buttonText", String("Continue"), ClassText},
		{"hintText", String("Tap to open"), ClassText},
		{"titleColor", String("gold"), ClassColor},
	}
	for _, tc := range cases {
		got := ClassifyField(tc.name, tc.value)
		require.Equal(t, tc.want, got, "field %q", tc.name)
	}
}

func TestClassifyField_HexValueWithoutColorName(t *testing.T) {
	require.Equal(t, ClassColor, ClassifyField("accentShade", String("#1a2b3c")))
	require.Equal(t, ClassText, ClassifyField("accentShade", String("1a2b3c")))
	require.Equal(t, ClassText, ClassifyField("accentShade", String("#12345")))
}
