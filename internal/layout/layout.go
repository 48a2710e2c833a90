// Package layout converts a flattened table into bounded display rows: keys
// are ellipsized and right-aligned, values are wrapped and hyphenated to the
// value column. Nothing here performs I/O or keeps state between calls.
package layout

import (
	"math"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/jsonwatch/internal/flatten"
)

const (
	// ColumnGap separates the key and value columns.
	ColumnGap = 1
	// BorderWidth is the left plus right frame border.
	BorderWidth = 2

	DefaultKeyRatio    = 0.35
	DefaultMinKeyWidth = 10
)

// Options tunes the column split.
type Options struct {
	KeyRatio    float64 // share of the total width given to keys
	MinKeyWidth int     // lower bound for the key column
}

// DefaultOptions returns a 35% key column of at least ten columns.
func DefaultOptions() Options {
	return Options{KeyRatio: DefaultKeyRatio, MinKeyWidth: DefaultMinKeyWidth}
}

// Columns holds the display widths of the key and value columns.
type Columns struct {
	Key   int
	Value int
}

// ComputeColumns splits a frame of the given total width. The key column gets
// max(MinKeyWidth, floor(KeyRatio*width)); the value column gets whatever
// remains after the key column, the gap and the border.
func ComputeColumns(width int, opts Options) Columns {
	key := max(opts.MinKeyWidth, int(math.Floor(opts.KeyRatio*float64(width))))
	return Columns{
		Key:   key,
		Value: max(width-key-ColumnGap-BorderWidth, 0),
	}
}

// Highlight names the key that carries the marker glyph.
type Highlight struct {
	Key    string
	Set    bool
	Marker string
}

// Row is one table entry ready to be painted.
type Row struct {
	Key         string   // original key
	Cell        string   // key text fitted and right-aligned to the key column
	Lines       []string // wrapped value, at least one line
	Changed     bool
	Highlighted bool
}

// Height is the number of display lines the row occupies.
func (r Row) Height() int {
	return max(len(r.Lines), 1)
}

// Frame is the laid-out table.
type Frame struct {
	Columns Columns
	Rows    []Row
}

// Heights returns the display height of every row in order.
func (f Frame) Heights() []int {
	out := make([]int, len(f.Rows))
	for i, r := range f.Rows {
		out[i] = r.Height()
	}
	return out
}

// Layout renders every entry of tbl into a row for a frame of width columns.
// Keys and values pass through Printable before they are measured.
// height bounds the number of lines a single row may take (0 means
// unbounded). The marker goes on the last line of the highlighted row, but
// only while that row is still changed.
func Layout(tbl *flatten.Table, changed func(key string) bool, hl Highlight, width, height int, opts Options) Frame {
	cols := ComputeColumns(width, opts)
	frame := Frame{Columns: cols, Rows: make([]Row, 0, tbl.Len())}

	tbl.Each(func(k, v string) {
		row := Row{
			Key:     k,
			Cell:    keyCell(Printable(k, false), cols.Key),
			Lines:   WrapToLines(Printable(v, true), cols.Value),
			Changed: changed(k),
		}
		if height > 0 && len(row.Lines) > height {
			row.Lines = row.Lines[:height]
		}
		if row.Changed && hl.Set && hl.Key == k {
			row.Highlighted = true
			row.Lines[len(row.Lines)-1] += hl.Marker
		}
		frame.Rows = append(frame.Rows, row)
	})
	return frame
}

func keyCell(key string, width int) string {
	if runewidth.StringWidth(key) > width {
		key = Ellipsize(key, width)
	}
	return PadLeft(key, width)
}
