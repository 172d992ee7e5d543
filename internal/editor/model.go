// Package editor is the terminal UI for editing hub content. It renders
// whatever the documents contain: fields are discovered and classified
// at render time, never declared ahead of time.
package editor

import (
	"context"
	"sort"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vistapra/content-hub-go/internal/content"
	contentsync "github.com/vistapra/content-hub-go/internal/sync"
)

const themeSlug = "theme"

type view int

const (
	viewScreens view = iota
	viewFields
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
	modalConfirmReset
)

type confirmFocus int

const (
	focusCancel confirmFocus = iota
	focusConfirm
)

type loadedMsg struct {
	aggregate content.Aggregate
}

type pendingDelete struct {
	slug    string
	listKey string
	itemID  string
	label   string
}

// Model is the bubbletea model for the content editor.
type Model struct {
	engine   *contentsync.Engine
	classify content.Classifier

	aggregate content.Aggregate
	styles    styles
	loading   bool

	width  int
	height int

	view      view
	slugs     []string
	screenIdx int

	fields   []fieldRow
	fieldIdx int
	scroll   int

	editing   bool
	multiline bool
	input     textinput.Model
	area      textarea.Model

	modal      modalKind
	modalFocus confirmFocus
	deleting   pendingDelete

	status string
}

// New creates the editor model around a sync engine.
func New(engine *contentsync.Engine) Model {
	agg := engine.Aggregate()
	slugs := make([]string, 0, len(agg.Screens)+1)
	slugs = append(slugs, themeSlug)
	slugs = append(slugs, sortedSlugs(agg)...)

	input := textinput.New()
	input.CharLimit = 0

	area := textarea.New()
	area.CharLimit = 0
	area.SetHeight(5)

	return Model{
		engine:    engine,
		classify:  content.ClassifyField,
		aggregate: agg,
		styles:    newStyles(agg.Theme),
		loading:   true,
		slugs:     slugs,
		input:     input,
		area:      area,
	}
}

// Init kicks off the initial load from the hub.
func (m Model) Init() tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		return loadedMsg{aggregate: engine.Load(context.Background())}
	}
}

func (m *Model) setAggregate(agg content.Aggregate) {
	m.aggregate = agg
	m.styles = newStyles(agg.Theme)
	slugs := make([]string, 0, len(agg.Screens)+1)
	slugs = append(slugs, themeSlug)
	slugs = append(slugs, sortedSlugs(agg)...)
	m.slugs = slugs
	if m.screenIdx >= len(m.slugs) {
		m.screenIdx = len(m.slugs) - 1
	}
	if m.view == viewFields {
		m.rebuildFields()
	}
}

func (m *Model) rebuildFields() {
	slug := m.slugs[m.screenIdx]
	if slug == themeSlug {
		m.fields = themeFields(m.aggregate)
	} else if payload, ok := m.aggregate.Screen(slug); ok {
		m.fields = buildFields(payload, m.classify)
	} else {
		m.fields = nil
	}
	if m.fieldIdx >= len(m.fields) {
		m.fieldIdx = max(0, len(m.fields)-1)
	}
}

func (m *Model) refresh() {
	m.setAggregate(m.engine.Aggregate())
}

func sortedSlugs(agg content.Aggregate) []string {
	slugs := make([]string, 0, len(agg.Screens))
	for slug := range agg.Screens {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
