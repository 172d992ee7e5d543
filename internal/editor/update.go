package editor

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vistapra/content-hub-go/internal/content"
)

var errNotANumber = errors.New("not a number")

// Update routes messages by editing state first, then modal, then view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, msg.Width-8)
		m.area.SetWidth(max(20, msg.Width-8))
		return m, nil

	case loadedMsg:
		m.loading = false
		m.setAggregate(msg.aggregate)
		if m.engine.Static() {
			m.status = "offline: editing built-in defaults (changes are not saved)"
		} else {
			m.status = "loaded"
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		switch m.view {
		case viewScreens:
			return m.updateScreens(msg)
		case viewFields:
			return m.updateFields(msg)
		}
	}
	return m, nil
}

func (m Model) updateScreens(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.engine.Flush()
		return m, tea.Quit
	case "up", "k":
		if m.screenIdx > 0 {
			m.screenIdx--
		}
	case "down", "j":
		if m.screenIdx < len(m.slugs)-1 {
			m.screenIdx++
		}
	case "enter":
		m.view = viewFields
		m.fieldIdx = 0
		m.scroll = 0
		m.rebuildFields()
		m.moveToEditable(1)
	case "r":
		m.loading = true
		engine := m.engine
		return m, func() tea.Msg {
			return loadedMsg{aggregate: engine.Load(context.Background())}
		}
	case "R":
		m.modal = modalConfirmReset
		m.modalFocus = focusCancel
	}
	return m, nil
}

func (m Model) updateFields(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.engine.Flush()
		return m, tea.Quit
	case "esc", "q":
		m.view = viewScreens
		m.status = ""
	case "up", "k":
		m.moveToNavigable(-1)
	case "down", "j":
		m.moveToNavigable(1)
	case "enter", " ":
		if m.fieldIdx >= len(m.fields) {
			return m, nil
		}
		row := m.fields[m.fieldIdx]
		switch {
		case row.addButton:
			m.addItem(row.listKey)
		case row.class == content.ClassBool:
			m.toggleBool(row)
		case row.editable():
			m.startEdit(row)
		}
	case "d", "backspace":
		if m.fieldIdx < len(m.fields) {
			row := m.fields[m.fieldIdx]
			if row.itemID != "" {
				m.deleting = pendingDelete{
					slug:    m.slugs[m.screenIdx],
					listKey: row.listKey,
					itemID:  row.itemID,
					label:   row.label,
				}
				m.modal = modalConfirmDelete
				m.modalFocus = focusCancel
			}
		}
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.status = "edit cancelled"
		return m, nil
	case "enter":
		if !m.multiline {
			m.commitEdit(m.input.Value())
			return m, nil
		}
	case "ctrl+d":
		if m.multiline {
			m.commitEdit(m.area.Value())
			return m, nil
		}
	}
	var cmd tea.Cmd
	if m.multiline {
		m.area, cmd = m.area.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.modal = modalNone
	case "tab", "left", "right":
		if m.modalFocus == focusCancel {
			m.modalFocus = focusConfirm
		} else {
			m.modalFocus = focusCancel
		}
	case "enter":
		confirmed := m.modalFocus == focusConfirm
		kind := m.modal
		m.modal = modalNone
		if !confirmed {
			return m, nil
		}
		switch kind {
		case modalConfirmDelete:
			if err := m.engine.DeleteItem(m.deleting.slug, m.deleting.listKey, m.deleting.itemID); err != nil {
				m.status = "delete failed: " + err.Error()
			} else {
				m.status = "deleted " + m.deleting.label
			}
			m.refresh()
		case modalConfirmReset:
			m.engine.ResetToDefaults(nil)
			m.refresh()
			m.status = "reset to defaults (hub untouched)"
		}
	}
	return m, nil
}

func (m *Model) startEdit(row fieldRow) {
	m.editing = true
	m.multiline = row.class == content.ClassLongText
	if m.multiline {
		m.area.SetValue(row.display())
		m.area.Focus()
	} else {
		m.input.SetValue(row.display())
		m.input.CursorEnd()
		m.input.Focus()
	}
}

func (m *Model) commitEdit(raw string) {
	m.editing = false
	row := m.fields[m.fieldIdx]
	slug := m.slugs[m.screenIdx]

	if row.themeKey != "" {
		m.commitThemeField(row.themeKey, raw)
		m.refresh()
		m.status = "updated " + row.themeKey
		return
	}

	value, err := parseScalar(row, raw)
	if err != nil {
		m.status = err.Error()
		return
	}

	if err := m.writeField(slug, row, value); err != nil {
		m.status = "update failed: " + err.Error()
		return
	}
	m.refresh()
	m.status = "updated " + row.label
}

// writeField routes a field write to the engine. Top-level item fields
// go through UpdateItem; everything else, including fields of objects
// nested inside an item, is set by full path so the write lands where
// the row points instead of shallow-merging onto the item.
func (m *Model) writeField(slug string, row fieldRow, value content.Value) error {
	if row.itemID != "" && len(row.path) == 3 {
		fieldName := row.path[len(row.path)-1]
		return m.engine.UpdateItem(slug, row.listKey, row.itemID, map[string]content.Value{fieldName: value})
	}
	payload, ok := m.aggregate.Screen(slug)
	if !ok {
		return content.ErrPathNotFound
	}
	next, err := content.SetPath(payload, row.path, value)
	if err != nil {
		return err
	}
	m.engine.UpdateSection(slug, next)
	return nil
}

func (m *Model) commitThemeField(key, raw string) {
	switch key {
	case "recipientName":
		m.engine.UpdateGlobals(&raw, nil)
	case "musicUrl":
		m.engine.UpdateGlobals(nil, &raw)
	default:
		partial := content.ThemePartial{}
		switch key {
		case "primaryColor":
			partial.PrimaryColor = &raw
		case "secondaryColor":
			partial.SecondaryColor = &raw
		case "backgroundColor":
			partial.BackgroundColor = &raw
		case "textColor":
			partial.TextColor = &raw
		case "fontFamily":
			partial.FontFamily = &raw
		case "buttonStyle":
			partial.ButtonStyle = &raw
		}
		m.engine.UpdateTheme(partial)
	}
}

func (m *Model) toggleBool(row fieldRow) {
	slug := m.slugs[m.screenIdx]
	value := content.Bool(!row.value.IsTrue())
	if err := m.writeField(slug, row, value); err != nil {
		m.status = "update failed: " + err.Error()
		return
	}
	m.refresh()
	m.status = "toggled " + row.label
}

func (m *Model) addItem(listKey string) {
	slug := m.slugs[m.screenIdx]
	item, err := m.engine.CreateItem(slug, listKey)
	if err != nil {
		m.status = "add failed: " + err.Error()
		return
	}
	m.refresh()
	if id, ok := item.Field("id"); ok {
		for i, row := range m.fields {
			if row.itemHeader && row.itemID == id.Str() {
				m.fieldIdx = i
				break
			}
		}
	}
	m.status = "added " + singular(listKey)
}

// moveToNavigable steps the cursor over group headers, stopping on
// editable fields, item headers and add controls.
func (m *Model) moveToNavigable(dir int) {
	for i := m.fieldIdx + dir; i >= 0 && i < len(m.fields); i += dir {
		row := m.fields[i]
		if row.editable() || row.itemHeader || row.addButton {
			m.fieldIdx = i
			return
		}
	}
}

func (m *Model) moveToEditable(dir int) {
	if m.fieldIdx < len(m.fields) {
		row := m.fields[m.fieldIdx]
		if row.editable() || row.itemHeader || row.addButton {
			return
		}
	}
	m.moveToNavigable(dir)
}

func parseScalar(row fieldRow, raw string) (content.Value, error) {
	switch row.class {
	case content.ClassNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return content.Null(), errNotANumber
		}
		return content.Number(n), nil
	case content.ClassBool:
		return content.Bool(strings.EqualFold(strings.TrimSpace(raw), "yes")), nil
	default:
		return content.String(raw), nil
	}
}
