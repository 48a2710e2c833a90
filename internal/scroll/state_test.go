package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMove_ClampsToBounds(t *testing.T) {
	var s State
	s.Move(3, 10)
	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, 3, sel)

	s.Move(100, 10)
	sel, _ = s.Selected()
	assert.Equal(t, 9, sel)

	s.Move(-100, 10)
	sel, _ = s.Selected()
	assert.Equal(t, 0, sel)
}

func TestMove_NeverLeavesRange(t *testing.T) {
	var s State
	deltas := []int{5, -2, 17, -40, 1, 1, 1, 9, -3}
	for _, rows := range []int{1, 2, 7, 30} {
		for _, d := range deltas {
			s.Move(d, rows)
			sel, ok := s.Selected()
			assert.True(t, ok)
			assert.GreaterOrEqual(t, sel, 0)
			assert.LessOrEqual(t, sel, rows-1)
		}
	}
}

func TestMove_EmptyTableLeavesSelectionUnset(t *testing.T) {
	var s State
	s.Move(1, 0)
	_, ok := s.Selected()
	assert.False(t, ok)

	s.Move(2, 5)
	s.Move(1, 0)
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestClamp_ShrinkingTable(t *testing.T) {
	var s State
	s.Move(8, 10)
	s.Clamp(20)
	sel, _ := s.Selected()
	assert.Equal(t, 8, sel, "growth keeps the selection")

	s.Clamp(4)
	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, 3, sel)

	s.Clamp(0)
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestClamp_NoSelectionStaysUnset(t *testing.T) {
	var s State
	s.Clamp(5)
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestWindow_KeepsSelectionVisible(t *testing.T) {
	heights := []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	var s State

	start, end := s.Window(heights, 4)
	assert.Equal(t, 0, start)
	assert.Equal(t, 4, end)

	s.Move(6, len(heights))
	start, end = s.Window(heights, 4)
	assert.Equal(t, 3, start)
	assert.Equal(t, 7, end)

	s.Move(-5, len(heights))
	start, end = s.Window(heights, 4)
	assert.Equal(t, 1, start)
	assert.Equal(t, 5, end)
}

func TestWindow_TallRows(t *testing.T) {
	heights := []int{3, 2, 4, 1}
	var s State
	s.Move(2, len(heights))

	start, end := s.Window(heights, 5)
	assert.Equal(t, 2, start, "rows 1 and 2 together exceed five lines")
	assert.Equal(t, 4, end)

	s.Move(0, len(heights))
	start, end = s.Window(heights, 4)
	assert.Equal(t, 2, start)
	assert.Equal(t, 3, end)
}

func TestWindow_OversizedRowStillShown(t *testing.T) {
	var s State
	start, end := s.Window([]int{10, 1}, 3)
	assert.Equal(t, 0, start)
	assert.Equal(t, 1, end)
}

func TestWindow_Empty(t *testing.T) {
	var s State
	start, end := s.Window(nil, 10)
	assert.Zero(t, start)
	assert.Zero(t, end)
}

func TestSteps(t *testing.T) {
	assert.Equal(t, 2, LineStep(24, 0.10))
	assert.Equal(t, 4, LineStep(40, 0.10))
	assert.Equal(t, 3, LineStep(25, 0.10))
	assert.Equal(t, 1, LineStep(3, 0.10))
	assert.Equal(t, 23, PageStep(24))
	assert.Equal(t, 0, PageStep(0))
}
