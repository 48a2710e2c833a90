package layout

import (
	"strings"
	"unicode"

	runewidth "github.com/mattn/go-runewidth"
)

// Ellipsis replaces the tail of truncated text.
const Ellipsis = "..."

// Ellipsize fits s into width display columns. Text that already fits is
// returned unchanged. Longer text keeps its head and ends in "...", padded so
// the result is exactly width columns even when a wide rune would straddle the
// cut. Widths below four cannot hold any text next to the ellipsis and are
// filled with dots instead.
func Ellipsize(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= len(Ellipsis) {
		return strings.Repeat(".", width)
	}
	head := runewidth.Truncate(s, width-len(Ellipsis), "")
	return PadRight(head, width-len(Ellipsis)) + Ellipsis
}

// TabWidth is the number of spaces a tab expands to.
const TabWidth = 4

// KeyNewline stands in for a line break inside a key.
const KeyNewline = '↵'

// Printable replaces runes a terminal would not draw as one column of text.
// Tabs expand to TabWidth spaces and other control runes become their
// Unicode control picture, or U+FFFD when none exists. keepNewlines leaves
// '\n' alone for WrapToLines; otherwise it becomes KeyNewline.
func Printable(s string, keepNewlines bool) string {
	if strings.IndexFunc(s, unicode.IsControl) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' && keepNewlines:
			b.WriteRune(r)
		case r == '\n':
			b.WriteRune(KeyNewline)
		case r == '\t':
			b.WriteString(strings.Repeat(" ", TabWidth))
		case r < 0x20:
			b.WriteRune(0x2400 + r)
		case r == 0x7f:
			b.WriteRune('\u2421')
		case unicode.IsControl(r):
			b.WriteRune(unicode.ReplacementChar)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WrapToLines splits s into lines of at most width display columns.
//
// Explicit newlines always start a new line and an empty paragraph yields one
// empty line. Within a paragraph a line breaks at the last whitespace inside
// the width budget, dropping that whitespace. When the budget holds no
// whitespace, or only leading whitespace, the text is hard-split one column
// early and a hyphen is appended, unless the next rune alone fills the line.
// The result is never empty.
func WrapToLines(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		if paragraph == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapParagraph([]rune(paragraph), width)...)
	}
	return lines
}

func wrapParagraph(runes []rune, width int) []string {
	var out []string
	for idx := 0; idx < len(runes); {
		rest := runes[idx:]
		if runesWidth(rest) <= width {
			out = append(out, string(rest))
			break
		}
		budget := fitRunes(rest, width)
		if pos := lastSpace(rest[:budget]); pos > 0 {
			out = append(out, string(rest[:pos]))
			idx += pos + 1
			continue
		}
		n := 0
		if width >= 2 {
			n = fitRunes(rest, width-1)
		}
		if n == 0 {
			// no room for a hyphen next to the text
			n = max(budget, 1)
			out = append(out, string(rest[:n]))
			idx += n
			continue
		}
		out = append(out, string(rest[:n])+"-")
		idx += n
	}
	return out
}

// fitRunes returns how many leading runes fit into width columns.
func fitRunes(runes []rune, width int) int {
	used := 0
	for i, r := range runes {
		w := runewidth.RuneWidth(r)
		if used+w > width {
			return i
		}
		used += w
	}
	return len(runes)
}

func runesWidth(runes []rune) int {
	w := 0
	for _, r := range runes {
		w += runewidth.RuneWidth(r)
	}
	return w
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}

// PadLeft right-aligns s in width columns.
func PadLeft(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

// PadRight left-aligns s in width columns.
func PadRight(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
