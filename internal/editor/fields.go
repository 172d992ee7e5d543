package editor

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/vistapra/content-hub-go/internal/content"
)

// fieldRow is one navigable line in the field editor: a scalar field, a
// group header, a list item header, or the add-item control at the end
// of a list.
type fieldRow struct {
	path   []string
	label  string
	indent int
	class  content.FieldClass
	value  content.Value

	// Set for rows that live inside a list item.
	listKey string
	itemID  string

	itemHeader bool
	addButton  bool

	// Set on the theme pseudo-screen instead of path.
	themeKey string
}

func (r fieldRow) editable() bool {
	if r.itemHeader || r.addButton || r.class == content.ClassReadOnly {
		return false
	}
	return len(r.path) > 0 || r.themeKey != ""
}

func (r fieldRow) display() string {
	switch r.value.Kind() {
	case content.KindString:
		return r.value.Str()
	case content.KindNumber:
		return strconv.FormatFloat(r.value.Num(), 'f', -1, 64)
	case content.KindBool:
		if r.value.IsTrue() {
			return "yes"
		}
		return "no"
	case content.KindNull:
		return ""
	}
	return ""
}

// buildFields flattens a payload into editor rows. Objects become
// indented groups, lists become item blocks with an add control, and
// every scalar is classified for its input widget.
func buildFields(payload content.Payload, classify content.Classifier) []fieldRow {
	var rows []fieldRow
	for _, name := range payload.FieldNames() {
		rows = appendValueRows(rows, payload[name], name, []string{name}, 0, "", "", classify)
	}
	return rows
}

func appendValueRows(rows []fieldRow, v content.Value, name string, path []string, indent int, listKey, itemID string, classify content.Classifier) []fieldRow {
	switch v.Kind() {
	case content.KindObject:
		rows = append(rows, fieldRow{
			path:    path,
			label:   name,
			indent:  indent,
			class:   content.ClassReadOnly,
			value:   content.Null(),
			listKey: listKey,
			itemID:  itemID,
		})
		for _, field := range sortedFieldNames(v) {
			child, _ := v.Field(field)
			rows = appendValueRows(rows, child, field, append(append([]string{}, path...), field), indent+1, listKey, itemID, classify)
		}
	case content.KindList:
		rows = append(rows, fieldRow{
			path:   path,
			label:  name,
			indent: indent,
			class:  content.ClassReadOnly,
			value:  content.Null(),
		})
		for i, item := range v.Items() {
			id := ""
			if idField, ok := item.Field("id"); ok {
				id = idField.Str()
			}
			rows = append(rows, fieldRow{
				path:       append(append([]string{}, path...), id),
				label:      fmt.Sprintf("%s %d", singular(name), i+1),
				indent:     indent + 1,
				class:      content.ClassReadOnly,
				value:      content.Null(),
				listKey:    name,
				itemID:     id,
				itemHeader: true,
			})
			for _, field := range sortedFieldNames(item) {
				child, _ := item.Field(field)
				childPath := append(append([]string{}, path...), id, field)
				rows = appendValueRows(rows, child, field, childPath, indent+2, name, id, classify)
			}
		}
		rows = append(rows, fieldRow{
			label:     "+ add " + singular(name),
			indent:    indent + 1,
			class:     content.ClassReadOnly,
			addButton: true,
			listKey:   name,
		})
	default:
		rows = append(rows, fieldRow{
			path:    path,
			label:   name,
			indent:  indent,
			class:   classify(name, v),
			value:   v,
			listKey: listKey,
			itemID:  itemID,
		})
	}
	return rows
}

// themeFields builds the rows for the theme pseudo-screen: the six theme
// settings plus the two globals.
func themeFields(agg content.Aggregate) []fieldRow {
	entries := []struct {
		key   string
		value string
	}{
		{"primaryColor", agg.Theme.PrimaryColor},
		{"secondaryColor", agg.Theme.SecondaryColor},
		{"backgroundColor", agg.Theme.BackgroundColor},
		{"textColor", agg.Theme.TextColor},
		{"fontFamily", agg.Theme.FontFamily},
		{"buttonStyle", agg.Theme.ButtonStyle},
		{"recipientName", agg.RecipientName},
		{"musicUrl", agg.MusicURL},
	}
	rows := make([]fieldRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, fieldRow{
			label:    entry.key,
			class:    content.ClassifyField(entry.key, content.String(entry.value)),
			value:    content.String(entry.value),
			themeKey: entry.key,
		})
	}
	return rows
}

func sortedFieldNames(v content.Value) []string {
	names := v.FieldNames()
	sort.SliceStable(names, func(i, j int) bool {
		// id first, then alphabetical.
		if names[i] == "id" {
			return true
		}
		if names[j] == "id" {
			return false
		}
		return names[i] < names[j]
	})
	return names
}

func singular(listKey string) string {
	if n := len(listKey); n > 1 && listKey[n-1] == 's' {
		return listKey[:n-1]
	}
	return "item"
}
