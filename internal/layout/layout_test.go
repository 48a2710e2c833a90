package layout

import (
	"strings"
	"testing"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jsonwatch/internal/flatten"
)

func TestComputeColumns(t *testing.T) {
	cols := ComputeColumns(40, DefaultOptions())
	assert.Equal(t, 14, cols.Key)
	assert.Equal(t, 40-14-ColumnGap-BorderWidth, cols.Value)
	assert.Equal(t, 23, cols.Value)

	narrow := ComputeColumns(20, DefaultOptions())
	assert.Equal(t, 10, narrow.Key, "key column never drops below the minimum")
	assert.Equal(t, 7, narrow.Value)

	tiny := ComputeColumns(8, DefaultOptions())
	assert.Equal(t, 10, tiny.Key)
	assert.Equal(t, 0, tiny.Value)

	wide := ComputeColumns(101, DefaultOptions())
	assert.Equal(t, 35, wide.Key)
}

func TestEllipsize(t *testing.T) {
	got := Ellipsize("abcdefghij", 5)
	assert.Equal(t, "ab...", got)
	assert.Equal(t, 5, runewidth.StringWidth(got))

	assert.Equal(t, "short", Ellipsize("short", 10))
	assert.Equal(t, "exact", Ellipsize("exact", 5))
	assert.Equal(t, "...", Ellipsize("abcdef", 3))
	assert.Equal(t, ".", Ellipsize("abcdef", 1))
	assert.Equal(t, "", Ellipsize("abcdef", 0))
	assert.Equal(t, "a...", Ellipsize("abcdef", 4))
}

func TestEllipsize_WideRunesKeepExactWidth(t *testing.T) {
	got := Ellipsize("日本語のキー", 8)
	assert.Equal(t, 8, runewidth.StringWidth(got))
	assert.True(t, strings.HasSuffix(got, Ellipsis))
}

func TestWrapToLines_WordBoundary(t *testing.T) {
	assert.Equal(t, []string{"ab", "cd ef"}, WrapToLines("ab cd ef", 5))
	assert.Equal(t, []string{"the quick", "brown fox"}, WrapToLines("the quick brown fox", 10))
}

func TestWrapToLines_HyphenatesLongToken(t *testing.T) {
	s := "a very long sentence with no breaks supercalifragilisticexpialidocious"
	lines := WrapToLines(s, 5)
	hyphenated := false
	for _, l := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(l), 5, "line %q overflows", l)
		if strings.HasSuffix(l, "-") {
			hyphenated = true
		}
	}
	assert.True(t, hyphenated)

	assert.Equal(t, []string{"supe-", "rcal-", "ifra-", "gili-", "stic"}, WrapToLines("supercalifragilistic", 5))
}

func TestWrapToLines_SpaceJustPastBudget(t *testing.T) {
	// the budget is the first five runes, which hold no whitespace
	assert.Equal(t, []string{"hell-", "o", "world"}, WrapToLines("hello world", 5))
}

func TestWrapToLines_LeadingWhitespaceHyphenates(t *testing.T) {
	assert.Equal(t, []string{" abc-", "defg"}, WrapToLines(" abcdefg", 5))
}

func TestWrapToLines_Newlines(t *testing.T) {
	assert.Equal(t, []string{"one", "", "two"}, WrapToLines("one\n\ntwo", 10))
	assert.Equal(t, []string{""}, WrapToLines("", 10))
	assert.Equal(t, []string{"", ""}, WrapToLines("\n", 10))
}

func TestWrapToLines_DegenerateWidths(t *testing.T) {
	assert.Equal(t, []string{""}, WrapToLines("anything", 0))
	assert.Equal(t, []string{"a", "b", "c"}, WrapToLines("abc", 1))
}

func TestWrapToLines_WideRunes(t *testing.T) {
	lines := WrapToLines("日本語テキスト", 5)
	for _, l := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(l), 5)
	}
	assert.Equal(t, "日本-", lines[0])
}

func sampleTable(t *testing.T) *flatten.Table {
	t.Helper()
	tbl, err := flatten.FlattenJSON([]byte(`{"short":"v","a very long key name indeed":"x","multi":"one two three four five six"}`))
	require.NoError(t, err)
	return tbl
}

func TestLayout_RowsFollowTableOrder(t *testing.T) {
	tbl := sampleTable(t)
	frame := Layout(tbl, func(string) bool { return false }, Highlight{}, 40, 0, DefaultOptions())

	require.Len(t, frame.Rows, 3)
	assert.Equal(t, []string{"short", "a very long key name indeed", "multi"},
		[]string{frame.Rows[0].Key, frame.Rows[1].Key, frame.Rows[2].Key})
	for _, r := range frame.Rows {
		assert.Equal(t, frame.Columns.Key, runewidth.StringWidth(r.Cell))
		for _, l := range r.Lines {
			assert.LessOrEqual(t, runewidth.StringWidth(l), frame.Columns.Value)
		}
	}
	assert.Equal(t, "         short", frame.Rows[0].Cell)
	assert.Equal(t, "a very long...", frame.Rows[1].Cell)
}

func TestLayout_HeightMatchesWrappedLines(t *testing.T) {
	tbl := sampleTable(t)
	frame := Layout(tbl, func(string) bool { return false }, Highlight{}, 20, 0, DefaultOptions())

	multi := frame.Rows[2]
	assert.Equal(t, WrapToLines("one two three four five six", frame.Columns.Value), multi.Lines)
	assert.Equal(t, len(multi.Lines), multi.Height())
	assert.Equal(t, []int{1, 1, multi.Height()}, frame.Heights())
}

func TestLayout_HeightBound(t *testing.T) {
	tbl := sampleTable(t)
	frame := Layout(tbl, func(k string) bool { return k == "multi" },
		Highlight{Key: "multi", Set: true, Marker: "*"}, 20, 2, DefaultOptions())

	multi := frame.Rows[2]
	assert.Equal(t, 2, multi.Height())
	assert.True(t, strings.HasSuffix(multi.Lines[1], "*"))
}

func TestLayout_ChangedAndMarker(t *testing.T) {
	tbl := sampleTable(t)
	changed := func(k string) bool { return k != "short" }

	frame := Layout(tbl, changed, Highlight{Key: "multi", Set: true, Marker: "🧌"}, 40, 0, DefaultOptions())
	assert.False(t, frame.Rows[0].Changed)
	assert.True(t, frame.Rows[1].Changed)

	multi := frame.Rows[2]
	assert.True(t, multi.Highlighted)
	assert.True(t, strings.HasSuffix(multi.Lines[len(multi.Lines)-1], "🧌"))
	for _, r := range frame.Rows[:2] {
		assert.False(t, r.Highlighted)
	}
}

func TestLayout_MarkerOnlyOnChangedRows(t *testing.T) {
	tbl := sampleTable(t)
	frame := Layout(tbl, func(string) bool { return false },
		Highlight{Key: "short", Set: true, Marker: "🧌"}, 40, 0, DefaultOptions())
	assert.False(t, frame.Rows[0].Highlighted)
	assert.Equal(t, []string{"v"}, frame.Rows[0].Lines)
}

func TestLayout_EmptyKeyHighlight(t *testing.T) {
	tbl, err := flatten.FlattenJSON([]byte(`"bare"`))
	require.NoError(t, err)

	frame := Layout(tbl, func(string) bool { return true },
		Highlight{Key: "", Set: true, Marker: "!"}, 40, 0, DefaultOptions())
	require.Len(t, frame.Rows, 1)
	assert.Equal(t, []string{"bare!"}, frame.Rows[0].Lines)

	unset := Layout(tbl, func(string) bool { return true }, Highlight{Marker: "!"}, 40, 0, DefaultOptions())
	assert.Equal(t, []string{"bare"}, unset.Rows[0].Lines)
}

func TestLayout_IsPure(t *testing.T) {
	tbl := sampleTable(t)
	changed := func(k string) bool { return k == "multi" }
	hl := Highlight{Key: "multi", Set: true, Marker: "*"}

	first := Layout(tbl, changed, hl, 30, 0, DefaultOptions())
	second := Layout(tbl, changed, hl, 30, 0, DefaultOptions())
	assert.Equal(t, first, second)
	v, _ := tbl.Get("multi")
	assert.Equal(t, "one two three four five six", v)
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		keepNewlines bool
		want         string
	}{
		{"plain", "hello world", false, "hello world"},
		{"tab", "a\tb", true, "a    b"},
		{"value newline kept", "a\nb", true, "a\nb"},
		{"key newline", "first\nkey", false, "first↵key"},
		{"carriage return", "a\r\nb", true, "a␍\nb"},
		{"escape", "\x1b[31m", false, "␛[31m"},
		{"delete", "x\x7f", false, "x␡"},
		{"c1 control", "x\u0085y", false, "x�y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Printable(tt.in, tt.keepNewlines))
		})
	}
}

func TestWrapToLines_WideRuneAtWidthTwo(t *testing.T) {
	lines := WrapToLines("你好世界", 2)
	assert.Equal(t, []string{"你", "好", "世", "界"}, lines)
	for _, l := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(l), 2)
	}
}

func TestLayout_TabsAreExpandedBeforeWrapping(t *testing.T) {
	tbl, err := flatten.FlattenJSON([]byte(`{"tabbed":"a\tb\tc\td\te\tf\tg\th\ti\tj\tk"}`))
	require.NoError(t, err)
	frame := Layout(tbl, func(string) bool { return false }, Highlight{}, 60, 0, DefaultOptions())

	require.Len(t, frame.Rows, 1)
	row := frame.Rows[0]
	assert.Equal(t, 36, frame.Columns.Value)
	require.Len(t, row.Lines, 2)
	assert.Equal(t, "h    i    j    k", row.Lines[1])
	for _, l := range row.Lines {
		assert.NotContains(t, l, "\t")
		assert.LessOrEqual(t, runewidth.StringWidth(l), frame.Columns.Value)
	}
	assert.Equal(t, strings.Fields("a b c d e f g h i j k"), strings.Fields(strings.Join(row.Lines, " ")))
}

func TestLayout_KeyWithNewlineStaysOnOneLine(t *testing.T) {
	tbl, err := flatten.FlattenJSON([]byte(`{"first\nkey":"x"}`))
	require.NoError(t, err)
	hl := Highlight{Key: "first\nkey", Set: true, Marker: "*"}
	frame := Layout(tbl, func(string) bool { return true }, hl, 60, 0, DefaultOptions())

	require.Len(t, frame.Rows, 1)
	row := frame.Rows[0]
	assert.Equal(t, "first\nkey", row.Key)
	assert.NotContains(t, row.Cell, "\n")
	assert.True(t, strings.HasSuffix(row.Cell, "first↵key"))
	assert.Equal(t, frame.Columns.Key, runewidth.StringWidth(row.Cell))
	assert.Equal(t, 1, row.Height())
	assert.True(t, row.Highlighted, "highlight still matches the raw key")
}
