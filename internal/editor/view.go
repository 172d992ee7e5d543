package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vistapra/content-hub-go/internal/content"
)

const visibleRows = 18

func (m Model) View() string {
	if m.loading {
		return m.styles.muted.Render("loading content...")
	}

	var body string
	switch m.view {
	case viewScreens:
		body = m.viewScreenList()
	case viewFields:
		body = m.viewFieldList()
	}

	if m.modal != modalNone {
		body = m.viewModal()
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.styles.status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.muted.Render(m.helpLine()))
	return b.String()
}

func (m Model) viewScreenList() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("content editor"))
	b.WriteString("\n\n")
	for i, slug := range m.slugs {
		label := slug
		if slug == themeSlug {
			label = "theme & globals"
		}
		line := "  " + label
		if i == m.screenIdx {
			line = m.styles.selected.Render("> " + label)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewFieldList() string {
	slug := m.slugs[m.screenIdx]
	title := slug
	if slug == themeSlug {
		title = "theme & globals"
	}

	var b strings.Builder
	b.WriteString(m.styles.crumb.Render("screens / "))
	b.WriteString(m.styles.title.Render(title))
	b.WriteString("\n\n")

	start, end := m.window()
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(m.fields[i], i == m.fieldIdx))
		b.WriteString("\n")
	}
	if end < len(m.fields) {
		b.WriteString(m.styles.muted.Render("  ..."))
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString("\n")
		if m.multiline {
			b.WriteString(m.area.View())
			b.WriteString("\n")
			b.WriteString(m.styles.muted.Render("ctrl+d: save   esc: cancel"))
		} else {
			b.WriteString(m.input.View())
			b.WriteString("\n")
			b.WriteString(m.styles.muted.Render("enter: save   esc: cancel"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(row fieldRow, selected bool) string {
	indent := strings.Repeat("  ", row.indent)

	var line string
	switch {
	case row.addButton:
		line = indent + row.label
	case row.itemHeader:
		line = indent + m.styles.group.Render(row.label)
	case row.class == content.ClassReadOnly && row.value.Kind() == content.KindNull:
		// Group header for a nested object or list.
		line = indent + m.styles.group.Render(row.label)
	default:
		value := row.display()
		switch row.class {
		case content.ClassColor:
			value = fmt.Sprintf("%s %s", value, swatch(row.value.Str()))
		case content.ClassLongText:
			value = truncate(value, 60)
		case content.ClassReadOnly:
			return indent + m.styles.readOnly.Render(row.label+": "+value)
		}
		line = indent + m.styles.label.Render(row.label+": ") + value
	}

	if selected {
		return m.styles.selected.Render("> ") + line
	}
	return "  " + line
}

func (m Model) viewModal() string {
	var title, bodyText string
	switch m.modal {
	case modalConfirmDelete:
		title = "delete " + m.deleting.label + "?"
		bodyText = "This removes the item from the list and saves the screen."
	case modalConfirmReset:
		title = "reset to defaults?"
		bodyText = "Local content returns to the built-in defaults.\nNothing on the hub is changed."
	}

	confirm := m.styles.btn.Render("confirm")
	cancel := m.styles.btn.Render("cancel")
	if m.modalFocus == focusConfirm {
		confirm = m.styles.btnFocus.Render("confirm")
	} else {
		cancel = m.styles.btnFocus.Render("cancel")
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	inner := strings.Join([]string{
		m.styles.title.Render(title),
		"",
		bodyText,
		"",
		controls,
		"",
		m.styles.muted.Render("tab: focus   enter: select   esc: cancel"),
	}, "\n")
	return m.styles.modal.Render(inner)
}

func (m Model) helpLine() string {
	switch {
	case m.editing:
		return ""
	case m.modal != modalNone:
		return ""
	case m.view == viewScreens:
		return "enter: open   r: reload   R: reset to defaults   q: quit"
	default:
		return "enter: edit/toggle/add   d: delete item   esc: back"
	}
}

// window returns the visible slice of field rows, keeping the cursor in
// view for payloads taller than the terminal.
func (m Model) window() (int, int) {
	rows := visibleRows
	if m.height > 8 {
		rows = m.height - 6
	}
	start := 0
	if m.fieldIdx >= rows {
		start = m.fieldIdx - rows + 1
	}
	end := start + rows
	if end > len(m.fields) {
		end = len(m.fields)
	}
	return start, end
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
