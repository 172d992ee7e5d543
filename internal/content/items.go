package content

import (
	"errors"

	"github.com/google/uuid"
)

// fallbackListKeys is the probe order used when the requested key does not
// name a list. These are the conventional list fields screens have used so
// far; the probe is a deliberate convenience for clients that only know a
// screen "has a list", not a general mechanism.
var fallbackListKeys = []string{"list", "memories", "paragraphs", "highlights"}

// ErrListNotFound reports that neither the requested key nor any fallback
// key names a list in the payload.
var ErrListNotFound = errors.New("list not found in payload")

// ErrItemNotFound reports a missing item id within a list.
var ErrItemNotFound = errors.New("item not found in list")

// FindListKey locates the list field to operate on: the requested key if it
// holds a list, otherwise the first fallback key that does.
func FindListKey(p Payload, requested string) (string, bool) {
	if v, ok := p[requested]; ok && v.Kind() == KindList {
		return requested, true
	}
	for _, key := range fallbackListKeys {
		if v, ok := p[key]; ok && v.Kind() == KindList {
			return key, true
		}
	}
	return "", false
}

// AppendItem appends item to the list named by listKey (after fallback
// resolution) and returns the updated payload. The input payload is not
// mutated.
func AppendItem(p Payload, listKey string, item Value) (Payload, error) {
	key, ok := FindListKey(p, listKey)
	if !ok {
		return nil, ErrListNotFound
	}

	updated := p.Clone()
	items := append(updated[key].Items(), item.Clone())
	updated[key] = List(items...)
	return updated, nil
}

// MergeItem shallow-merges fields into the item with the given id, keeping
// its position in the list. The input payload is not mutated.
func MergeItem(p Payload, listKey, itemID string, fields map[string]Value) (Payload, error) {
	key, ok := FindListKey(p, listKey)
	if !ok {
		return nil, ErrListNotFound
	}

	updated := p.Clone()
	items := updated[key].Items()
	for i, item := range items {
		if id, _ := item.Field("id"); id.Str() == itemID {
			merged := item.Fields()
			for name, value := range fields {
				merged[name] = value.Clone()
			}
			items[i] = Object(merged)
			updated[key] = List(items...)
			return updated, nil
		}
	}
	return nil, ErrItemNotFound
}

// RemoveItem deletes the item with the given id, preserving the order of
// the remaining items. The input payload is not mutated.
func RemoveItem(p Payload, listKey, itemID string) (Payload, error) {
	key, ok := FindListKey(p, listKey)
	if !ok {
		return nil, ErrListNotFound
	}

	updated := p.Clone()
	items := updated[key].Items()
	kept := make([]Value, 0, len(items))
	for _, item := range items {
		if id, _ := item.Field("id"); id.Str() == itemID {
			continue
		}
		kept = append(kept, item)
	}
	if len(kept) == len(items) {
		return nil, ErrItemNotFound
	}
	updated[key] = List(kept...)
	return updated, nil
}

// NewItem synthesizes a fresh item for the named list: a hand-picked
// template for the conventional lists, else a structural clone of the
// first existing item with its non-id strings blanked, else a minimal
// text stub. Ids are uuids, unique well beyond any list size in practice.
func NewItem(listKey string, existing []Value) Value {
	id := uuid.NewString()

	switch listKey {
	case "paragraphs":
		return Object(map[string]Value{
			"id":   String(id),
			"text": String("New paragraph text..."),
		})
	case "memories":
		return Object(map[string]Value{
			"id":          String(id),
			"title":       String("New Memory"),
			"description": String("Description..."),
			"image":       String(""),
			"date":        String(""),
			"icon":        String("event"),
		})
	case "highlights":
		return Object(map[string]Value{
			"id":          String(id),
			"title":       String("New Highlight"),
			"description": String("Description..."),
			"icon":        String("star"),
			"color":       String("#D4AF37"),
		})
	}

	if len(existing) > 0 && existing[0].Kind() == KindObject {
		fields := existing[0].Clone().Fields()
		for name, value := range fields {
			if name == "id" {
				continue
			}
			if value.Kind() == KindString {
				fields[name] = String("")
			}
		}
		fields["id"] = String(id)
		return Object(fields)
	}

	return Object(map[string]Value{
		"id":   String(id),
		"text": String(""),
	})
}
