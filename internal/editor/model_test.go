package editor

import (
	"context"
	"io"
	"log"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/vistapra/content-hub-go/internal/content"
	contentsync "github.com/vistapra/content-hub-go/internal/sync"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	engine := contentsync.NewEngine(nil, log.New(io.Discard, "", 0))
	m := New(engine)

	updated, _ := m.Update(loadedMsg{aggregate: engine.Load(context.Background())})
	model := updated.(Model)

	resized, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return resized.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		m = updated.(Model)
	}
	return m
}

func openScreen(t *testing.T, m Model, slug string) Model {
	t.Helper()
	for i, s := range m.slugs {
		if s == slug {
			m.screenIdx = i
			return press(t, m, "enter")
		}
	}
	t.Fatalf("unknown slug %s", slug)
	return m
}

func TestScreenListShowsThemeAndAllScreens(t *testing.T) {
	m := newTestModel(t)

	require.Equal(t, viewScreens, m.view)
	require.Equal(t, themeSlug, m.slugs[0])
	require.Contains(t, m.slugs, "greeting")
	require.Contains(t, m.slugs, "memories")

	view := m.View()
	require.Contains(t, view, "theme & globals")
	require.Contains(t, view, "greeting")
}

func TestOfflineStatus(t *testing.T) {
	m := newTestModel(t)
	require.Contains(t, m.status, "offline")
}

func TestOpenScreenBuildsFields(t *testing.T) {
	m := openScreen(t, newTestModel(t), "greeting")

	require.Equal(t, viewFields, m.view)
	require.NotEmpty(t, m.fields)
	require.Contains(t, m.View(), "heading")
}

func TestNavigationSkipsNothingEditable(t *testing.T) {
	m := openScreen(t, newTestModel(t), "greeting")

	first := m.fieldIdx
	m = press(t, m, "down")
	require.NotEqual(t, first, m.fieldIdx)
	m = press(t, m, "up")
	require.Equal(t, first, m.fieldIdx)
}

func TestEditTextFieldCommits(t *testing.T) {
	m := openScreen(t, newTestModel(t), "greeting")

	for i, row := range m.fields {
		if row.label == "badgeText" {
			m.fieldIdx = i
			break
		}
	}

	m = press(t, m, "enter")
	require.True(t, m.editing)
	require.False(t, m.multiline)

	m = press(t, m, "!", "enter")
	require.False(t, m.editing)

	agg := m.engine.Aggregate()
	require.Equal(t, "Today is Special!", agg.Screens["greeting"]["badgeText"].Str())
}

func TestEditFieldOfObjectNestedInItem(t *testing.T) {
	engine := contentsync.NewEngine(nil, log.New(io.Discard, "", 0))
	agg := engine.Aggregate()
	agg.Screens["links"] = content.Payload{
		"links": content.List(
			content.Object(map[string]content.Value{
				"id":   content.String("lnk-1"),
				"text": content.String("Homepage"),
				"extra": content.Object(map[string]content.Value{
					"url": content.String("http://old.test"),
				}),
			}),
		),
	}
	engine.ReplaceAll(agg)

	m := New(engine)
	updated, _ := m.Update(loadedMsg{aggregate: engine.Aggregate()})
	model := updated.(Model)
	resized, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = openScreen(t, resized.(Model), "links")

	found := false
	for i, row := range m.fields {
		if row.label == "url" && row.itemID == "lnk-1" {
			m.fieldIdx = i
			found = true
			break
		}
	}
	require.True(t, found)

	m = press(t, m, "enter")
	require.True(t, m.editing)
	m.input.SetValue("http://new.test")
	m = press(t, m, "enter")

	item := engine.Aggregate().Screens["links"]["links"].Items()[0]
	extra, ok := item.Field("extra")
	require.True(t, ok)
	url, ok := extra.Field("url")
	require.True(t, ok)
	require.Equal(t, "http://new.test", url.Str())

	// The edit lands inside the nested object, never as a stray
	// top-level field on the item.
	_, ok = item.Field("url")
	require.False(t, ok)
}

func TestEditEscCancels(t *testing.T) {
	m := openScreen(t, newTestModel(t), "greeting")
	before := m.engine.Aggregate()

	m = press(t, m, "enter", "x", "esc")
	require.False(t, m.editing)
	require.Equal(t, before, m.engine.Aggregate())
}

func TestLongTextUsesTextarea(t *testing.T) {
	m := openScreen(t, newTestModel(t), "greeting")

	for i, row := range m.fields {
		if row.label == "message" {
			m.fieldIdx = i
			break
		}
	}
	require.Equal(t, content.ClassLongText, m.fields[m.fieldIdx].class)

	m = press(t, m, "enter")
	require.True(t, m.editing)
	require.True(t, m.multiline)

	m = press(t, m, "esc")
	require.False(t, m.editing)
}

func TestNumberFieldRejectsGarbage(t *testing.T) {
	m := openScreen(t, newTestModel(t), "preloader")

	for i, row := range m.fields {
		if row.label == "duration" {
			m.fieldIdx = i
			break
		}
	}
	require.Equal(t, content.ClassNumber, m.fields[m.fieldIdx].class)

	before := m.engine.Aggregate()
	m = press(t, m, "enter", "x", "enter")
	require.Equal(t, "not a number", m.status)
	require.Equal(t, before, m.engine.Aggregate())
}

func TestAddItemThroughAddRow(t *testing.T) {
	m := openScreen(t, newTestModel(t), "memories")
	before := len(m.engine.Aggregate().Screens["memories"]["memories"].Items())

	for i, row := range m.fields {
		if row.addButton {
			m.fieldIdx = i
			break
		}
	}

	m = press(t, m, "enter")
	items := m.engine.Aggregate().Screens["memories"]["memories"].Items()
	require.Len(t, items, before+1)

	// The cursor lands on the new item's header.
	require.True(t, m.fields[m.fieldIdx].itemHeader)
}

func TestDeleteItemNeedsConfirmation(t *testing.T) {
	m := openScreen(t, newTestModel(t), "memories")
	before := len(m.engine.Aggregate().Screens["memories"]["memories"].Items())

	for i, row := range m.fields {
		if row.itemHeader {
			m.fieldIdx = i
			break
		}
	}

	m = press(t, m, "d")
	require.Equal(t, modalConfirmDelete, m.modal)

	// Cancel is focused by default; enter declines.
	m = press(t, m, "enter")
	require.Equal(t, modalNone, m.modal)
	require.Len(t, m.engine.Aggregate().Screens["memories"]["memories"].Items(), before)

	m = press(t, m, "d", "tab", "enter")
	require.Len(t, m.engine.Aggregate().Screens["memories"]["memories"].Items(), before-1)
}

func TestThemeEditRestyles(t *testing.T) {
	m := openScreen(t, newTestModel(t), themeSlug)

	for i, row := range m.fields {
		if row.themeKey == "recipientName" {
			m.fieldIdx = i
			break
		}
	}

	m = press(t, m, "enter")
	require.True(t, m.editing)
	m.input.SetValue("Robin")
	m = press(t, m, "enter")

	require.Equal(t, "Robin", m.engine.Aggregate().RecipientName)
}

func TestResetToDefaultsConfirmGated(t *testing.T) {
	m := newTestModel(t)

	edited := openScreen(t, m, "greeting")
	for i, row := range edited.fields {
		if row.label == "badgeText" {
			edited.fieldIdx = i
			break
		}
	}
	edited = press(t, edited, "enter", "?", "enter", "esc")

	require.NotEqual(t, "Today is Special", edited.engine.Aggregate().Screens["greeting"]["badgeText"].Str())

	edited = press(t, edited, "R")
	require.Equal(t, modalConfirmReset, edited.modal)

	edited = press(t, edited, "tab", "enter")
	require.Equal(t, modalNone, edited.modal)
	require.Equal(t, "Today is Special", edited.engine.Aggregate().Screens["greeting"]["badgeText"].Str())
}
