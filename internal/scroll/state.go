// Package scroll tracks the selected row of the table view and the window of
// rows that keeps it visible.
package scroll

import "math"

// State is the scroll cursor. The zero value has no selection.
type State struct {
	selected int
	valid    bool
	offset   int
}

// Selected returns the selected row, if any.
func (s *State) Selected() (int, bool) {
	return s.selected, s.valid
}

// Move shifts the selection by delta rows, clamped to [0, rowCount-1]. With
// no prior selection the move starts from row 0. An empty table clears the
// selection.
func (s *State) Move(delta, rowCount int) {
	if rowCount <= 0 {
		s.Reset()
		return
	}
	from := 0
	if s.valid {
		from = s.selected
	}
	s.selected = clamp(from+delta, 0, rowCount-1)
	s.valid = true
}

// Clamp re-fits an existing selection after the row count changed.
func (s *State) Clamp(rowCount int) {
	if rowCount <= 0 {
		s.Reset()
		return
	}
	if s.valid && s.selected > rowCount-1 {
		s.selected = rowCount - 1
	}
	if s.offset > rowCount-1 {
		s.offset = rowCount - 1
	}
}

// Reset clears the selection and the viewport offset.
func (s *State) Reset() {
	*s = State{}
}

// Window returns the half-open range [start, end) of rows that fit into
// available lines, given each row's height. The offset is moved the minimum
// amount needed to keep the selected row on screen.
func (s *State) Window(heights []int, available int) (start, end int) {
	n := len(heights)
	if n == 0 || available <= 0 {
		s.offset = 0
		return 0, 0
	}
	if s.offset > n-1 {
		s.offset = n - 1
	}
	if s.valid {
		sel := clamp(s.selected, 0, n-1)
		if sel < s.offset {
			s.offset = sel
		}
		// advance the offset until the selected row's bottom fits
		for s.offset < sel && span(heights, s.offset, sel+1) > available {
			s.offset++
		}
	}

	start = s.offset
	end = start
	used := 0
	for end < n {
		h := max(heights[end], 1)
		if used+h > available && end > start {
			break
		}
		used += h
		end++
		if used >= available {
			break
		}
	}
	return start, end
}

func span(heights []int, from, to int) int {
	total := 0
	for i := from; i < to; i++ {
		total += max(heights[i], 1)
	}
	return total
}

// LineStep is the single-step distance: ratio of the terminal height,
// rounded, and never less than one row.
func LineStep(termHeight int, ratio float64) int {
	return max(int(math.Round(ratio*float64(termHeight))), 1)
}

// PageStep is the page distance: one less than the terminal height.
func PageStep(termHeight int) int {
	return max(termHeight-1, 0)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
