package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	runewidth "github.com/mattn/go-runewidth"
)

// repeatToWidth repeats the fill string until reaching the requested display width.
func repeatToWidth(fill string, width int) string {
	if width <= 0 {
		return ""
	}
	if strings.TrimSpace(fill) == "" {
		fill = " "
	}
	var b strings.Builder
	for runewidth.StringWidth(b.String()) < width {
		b.WriteString(fill)
	}
	result := b.String()
	if runewidth.StringWidth(result) > width {
		result = runewidth.Truncate(result, width, "")
	}
	return result
}

// fitANSI clamps s to width visible columns and pads it with spaces up to
// width. Escape sequences do not count towards the width.
func fitANSI(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "")
	}
	if gap := width - ansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

// fitMarker keeps a trailing marker visible on a line that would overflow
// width by cutting the text in front of it instead.
func fitMarker(line, marker string, width int) string {
	if marker == "" || runewidth.StringWidth(line) <= width {
		return line
	}
	text := strings.TrimSuffix(line, marker)
	room := width - runewidth.StringWidth(marker)
	if room <= 0 {
		return runewidth.Truncate(marker, width, "")
	}
	return runewidth.Truncate(text, room, "") + marker
}

// panelWithTitle renders content inside a bordered box of exactly width x
// height cells with title inserted into the top border. Content lines are
// clipped or padded to the inner size.
func panelWithTitle(title, content string, width, height int, border lipgloss.Border, st styles) string {
	width = max(width, 4)
	height = max(height, 3)
	innerWidth := width - 2
	innerHeight := height - 2

	lines := strings.Split(content, "\n")
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}

	paint := st.border.Render
	var b strings.Builder
	b.WriteString(titledTopBorder(title, innerWidth, border, st))
	for _, l := range lines {
		b.WriteByte('\n')
		b.WriteString(paint(border.Left))
		b.WriteString(fitANSI(l, innerWidth))
		b.WriteString(paint(border.Right))
	}
	b.WriteByte('\n')
	b.WriteString(paint(border.BottomLeft + repeatToWidth(border.Bottom, innerWidth) + border.BottomRight))
	return b.String()
}

// titledTopBorder builds "┌─ Title ────┐" with the title centred and
// trimmed to the space between the corners.
func titledTopBorder(title string, innerWidth int, border lipgloss.Border, st styles) string {
	paint := st.border.Render
	title = strings.TrimSpace(title)
	if title == "" || innerWidth < 3 {
		return paint(border.TopLeft + repeatToWidth(border.Top, innerWidth) + border.TopRight)
	}
	label := " " + title + " "
	if lipgloss.Width(label) > innerWidth {
		label = ansi.Truncate(label, innerWidth, "")
	}
	labelWidth := lipgloss.Width(label)
	leftPad := (innerWidth - labelWidth) / 2
	rightPad := innerWidth - labelWidth - leftPad
	return paint(border.TopLeft+repeatToWidth(border.Top, leftPad)) +
		st.title.Render(label) +
		paint(repeatToWidth(border.Top, rightPad)+border.TopRight)
}
