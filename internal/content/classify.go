package content

import (
	"regexp"
	"strings"
)

// FieldClass is the editing treatment inferred for a payload field.
type FieldClass int

const (
	ClassText FieldClass = iota
	ClassLongText
	ClassColor
	ClassNumber
	ClassBool
	ClassReadOnly
)

// Classifier maps a field name/value pair to an editing treatment. The
// default heuristics live in ClassifyField; callers may substitute their
// own.
type Classifier func(name string, value Value) FieldClass

// hexColorPattern matches short hex-like values (#RGB or #RRGGBB).
var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// longTextThreshold is the raw length beyond which a string field gets a
// multi-line control regardless of its name.
const longTextThreshold = 50

// longTextNameHints are field-name fragments that suggest prose content.
// A bare "text" field carries no signal either way, so it is classified
// by length like any other string.
var longTextNameHints = []string{"message", "description", "wish"}

// ClassifyField is the default heuristic classifier for scalar fields:
// color by name or hex-looking value, long text by name hint or length,
// plain text otherwise. The id field is read-only everywhere.
func ClassifyField(name string, value Value) FieldClass {
	if name == "id" {
		return ClassReadOnly
	}

	switch value.Kind() {
	case KindNumber:
		return ClassNumber
	case KindBool:
		return ClassBool
	case KindString:
		// fallthrough below
	default:
		return ClassReadOnly
	}

	lower := strings.ToLower(name)
	if strings.Contains(lower, "color") || hexColorPattern.MatchString(value.Str()) {
		return ClassColor
	}

	for _, hint := range longTextNameHints {
		if strings.Contains(lower, hint) {
			return ClassLongText
		}
	}
	if len(value.Str()) > longTextThreshold {
		return ClassLongText
	}

	return ClassText
}
