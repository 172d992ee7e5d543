package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func memoriesPayload() Payload {
	return Payload{
		"title": String("Our Memories"),
		"memories": List(
			Object(map[string]Value{"id": String("m1"), "title": String("First")}),
			Object(map[string]Value{"id": String("m2"), "title": String("Second")}),
		),
	}
}

func TestFindListKey_RequestedKeyWins(t *testing.T) {
	p := Payload{
		"memories":   List(),
		"highlights": List(),
	}
	key, ok := FindListKey(p, "highlights")
	require.True(t, ok)
	require.Equal(t, "highlights", key)
}

func TestFindListKey_FallbackProbeOrder(t *testing.T) {
	p := Payload{
		"paragraphs": List(),
		"memories":   List(),
	}
	// Requested key is not a list, so the probe runs in its fixed order
	// and finds memories before paragraphs.
	key, ok := FindListKey(p, "rows")
	require.True(t, ok)
	require.Equal(t, "memories", key)
}

func TestFindListKey_RequestedKeyNotAList(t *testing.T) {
	p := Payload{
		"title": String("not a list"),
		"list":  List(),
	}
	key, ok := FindListKey(p, "title")
	require.True(t, ok)
	require.Equal(t, "list", key)
}

func TestFindListKey_NoList(t *testing.T) {
	p := Payload{"title": String("hello")}
	_, ok := FindListKey(p, "anything")
	require.False(t, ok)
}

func TestAppendItem_DoesNotMutateInput(t *testing.T) {
	p := memoriesPayload()
	item := Object(map[string]Value{"id": String("m3"), "title": String("Third")})

	updated, err := AppendItem(p, "memories", item)
	require.NoError(t, err)
	require.Len(t, updated["memories"].Items(), 3)
	require.Len(t, p["memories"].Items(), 2)
}

func TestAppendItem_ListNotFound(t *testing.T) {
	_, err := AppendItem(Payload{"title": String("x")}, "memories", Object(nil))
	require.ErrorIs(t, err, ErrListNotFound)
}

func TestMergeItem_ShallowMergeKeepsPosition(t *testing.T) {
	p := memoriesPayload()

	updated, err := MergeItem(p, "memories", "m1", map[string]Value{
		"title": String("Renamed"),
		"icon":  String("star"),
	})
	require.NoError(t, err)

	items := updated["memories"].Items()
	require.Len(t, items, 2)
	title, _ := items[0].Field("title")
	require.Equal(t, "Renamed", title.Str())
	icon, _ := items[0].Field("icon")
	require.Equal(t, "star", icon.Str())
	id, _ := items[0].Field("id")
	require.Equal(t, "m1", id.Str())
}

func TestMergeItem_UnknownID(t *testing.T) {
	_, err := MergeItem(memoriesPayload(), "memories", "nope", map[string]Value{"title": String("x")})
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem_PreservesOrder(t *testing.T) {
	p := Payload{
		"memories": List(
			Object(map[string]Value{"id": String("m1")}),
			Object(map[string]Value{"id": String("m2")}),
			Object(map[string]Value{"id": String("m3")}),
		),
	}

	updated, err := RemoveItem(p, "memories", "m2")
	require.NoError(t, err)

	items := updated["memories"].Items()
	require.Len(t, items, 2)
	first, _ := items[0].Field("id")
	second, _ := items[1].Field("id")
	require.Equal(t, "m1", first.Str())
	require.Equal(t, "m3", second.Str())
}

func TestRemoveItem_UnknownID(t *testing.T) {
	_, err := RemoveItem(memoriesPayload(), "memories", "nope")
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestNewItem_MemoriesTemplate(t *testing.T) {
	item := NewItem("memories", nil)
	require.Equal(t, KindObject, item.Kind())

	id, ok := item.Field("id")
	require.True(t, ok)
	require.NotEmpty(t, id.Str())

	title, _ := item.Field("title")
	require.Equal(t, "New Memory", title.Str())
	icon, _ := item.Field("icon")
	require.Equal(t, "event", icon.Str())
}

func TestNewItem_ClonesExistingShape(t *testing.T) {
	existing := []Value{Object(map[string]Value{
		"id":    String("x1"),
		"label": String("Hello"),
		"count": Number(3),
	})}

	item := NewItem("rows", existing)

	id, _ := item.Field("id")
	require.NotEmpty(t, id.Str())
	require.NotEqual(t, "x1", id.Str())

	label, _ := item.Field("label")
	require.Equal(t, "", label.Str())

	count, _ := item.Field("count")
	require.Equal(t, float64(3), count.Num())
}

func TestNewItem_MinimalStub(t *testing.T) {
	item := NewItem("rows", nil)
	text, ok := item.Field("text")
	require.True(t, ok)
	require.Equal(t, "", text.Str())
}

// Full item lifecycle against one list, the way the editor drives it.
func TestItemLifecycle(t *testing.T) {
	p := memoriesPayload()

	fresh := NewItem("memories", p["memories"].Items())
	p, err := AppendItem(p, "memories", fresh)
	require.NoError(t, err)
	require.Len(t, p["memories"].Items(), 3)

	id, _ := fresh.Field("id")
	p, err = MergeItem(p, "memories", id.Str(), map[string]Value{
		"title": String("Summer trip"),
		"date":  String("2024-07-01"),
	})
	require.NoError(t, err)

	items := p["memories"].Items()
	title, _ := items[2].Field("title")
	require.Equal(t, "Summer trip", title.Str())

	p, err = RemoveItem(p, "memories", id.Str())
	require.NoError(t, err)
	require.Len(t, p["memories"].Items(), 2)
}
