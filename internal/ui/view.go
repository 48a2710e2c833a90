package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/jsonwatch/internal/diff"
	"github.com/oakwood-commons/jsonwatch/internal/layout"
)

// View renders the frame on the alternate screen.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}

// Render draws the bordered table and the footer. It does not mutate the
// model; the scroll window is computed on a copy of the cursor.
func (m *Model) Render() string {
	if m.quitting {
		return ""
	}
	w, h := m.width(), m.height()
	frame := m.frame()
	cur := m.State.Scroll
	start, end := cur.Window(frame.Heights(), m.bodyHeight())
	sel, hasSel := cur.Selected()

	var body strings.Builder
	body.WriteString(m.renderHeader(frame.Columns))
	for i := start; i < end; i++ {
		body.WriteByte('\n')
		body.WriteString(m.renderRow(frame.Rows[i], frame.Columns, hasSel && i == sel))
	}

	panel := panelWithTitle(m.opts.Title, body.String(), w, h-1, borderForStyle(m.opts.Theme.BorderStyle), m.styles)
	return panel + "\n" + m.renderFooter(w)
}

func (m *Model) renderHeader(cols layout.Columns) string {
	text := layout.PadLeft(layout.Ellipsize("Key", cols.Key), cols.Key) + strings.Repeat(" ", layout.ColumnGap) + "Value"
	return m.styles.header.Render(text)
}

// renderRow draws every wrapped line of a row. The key sits on the first
// line; continuation lines leave the key column blank.
func (m *Model) renderRow(row layout.Row, cols layout.Columns, selected bool) string {
	keyStyle, valueStyle := m.styles.key, m.styles.value
	if row.Changed {
		keyStyle, valueStyle = m.styles.changedKey, m.styles.changedValue
	}
	blank := strings.Repeat(" ", cols.Key)
	gap := strings.Repeat(" ", layout.ColumnGap)

	lines := make([]string, len(row.Lines))
	for i, l := range row.Lines {
		cell := blank
		if i == 0 {
			cell = row.Cell
		}
		if row.Highlighted && i == len(row.Lines)-1 {
			l = fitMarker(l, m.opts.Marker, cols.Value)
		}
		if selected {
			lines[i] = m.styles.selected.Render(cell + gap + layout.PadRight(l, cols.Value))
			continue
		}
		lines[i] = keyStyle.Render(cell) + gap + valueStyle.Render(l)
	}
	return strings.Join(lines, "\n")
}

// renderFooter shows key hints on the left and the diff summary on the right.
func (m *Model) renderFooter(width int) string {
	hints := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	left := strings.Join(hints, " · ")

	store := m.State.Store
	s := diff.Summarize(store.Baseline(), store.Current())
	right := fmt.Sprintf("%d changed (%d new) · %d keys", s.Changed, s.Added, s.Total)

	space := width - lipgloss.Width(right) - 1
	if space < 1 {
		return m.styles.footer.Render(fitANSI(right, width))
	}
	left = fitANSI(left, space)
	return m.styles.footer.Render(left + " " + right)
}
