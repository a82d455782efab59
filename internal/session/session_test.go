package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertInvariants checks the cursor invariants for count rows.
func assertInvariants(t *testing.T, s *State, count int) {
	t.Helper()
	if count == 0 {
		assert.Equal(t, NoSelection, s.Selected)
		_, ok := s.SelectedIndex(count)
		assert.False(t, ok)
		return
	}
	assert.GreaterOrEqual(t, s.Highlight, 0)
	assert.Less(t, s.Highlight, count)
	assert.LessOrEqual(t, s.ScrollOffset, s.Highlight)
	assert.Less(t, s.Highlight, s.ScrollOffset+s.VisibleRows())
	if s.Selected != NoSelection {
		assert.GreaterOrEqual(t, s.Selected, 0)
		assert.Less(t, s.Selected, count)
	}
}

func TestNew(t *testing.T) {
	s := New()
	assert.Equal(t, NoSelection, s.Selected)
	assert.Zero(t, s.Highlight)
	assert.Zero(t, s.ScrollOffset)
	assert.Equal(t, 1, s.VisibleRows())
}

func TestMoveDown_Scrolls(t *testing.T) {
	s := New()
	s.Reconcile(15, 10)

	for i := 0; i < 12; i++ {
		s.MoveDown(15)
	}
	assert.Equal(t, 12, s.Highlight)
	assert.Equal(t, 3, s.ScrollOffset)
	assertInvariants(t, s, 15)
}

func TestMoveDown_StopsAtEnd(t *testing.T) {
	s := New()
	s.Reconcile(3, 10)
	for i := 0; i < 10; i++ {
		s.MoveDown(3)
	}
	assert.Equal(t, 2, s.Highlight)
	assert.Zero(t, s.ScrollOffset)
}

func TestMoveUp(t *testing.T) {
	s := New()
	s.Reconcile(15, 10)
	for i := 0; i < 12; i++ {
		s.MoveDown(15)
	}

	tests := []struct {
		moves      int
		wantHigh   int
		wantScroll int
	}{
		{1, 11, 3},
		{8, 3, 3},
		{1, 2, 2},
		{5, 0, 0},
	}
	for _, tt := range tests {
		for i := 0; i < tt.moves; i++ {
			s.MoveUp()
		}
		assert.Equal(t, tt.wantHigh, s.Highlight)
		assert.Equal(t, tt.wantScroll, s.ScrollOffset)
		assertInvariants(t, s, 15)
	}
}

func TestMoveUp_AtTop(t *testing.T) {
	s := New()
	s.Reconcile(5, 3)
	s.MoveUp()
	assert.Zero(t, s.Highlight)
	assert.Zero(t, s.ScrollOffset)
}

func TestConfirm(t *testing.T) {
	s := New()
	assert.False(t, s.Confirm(0))
	assert.Equal(t, NoSelection, s.Selected)

	s.Reconcile(5, 3)
	s.MoveDown(5)
	s.MoveDown(5)
	require.True(t, s.Confirm(5))
	idx, ok := s.SelectedIndex(5)
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	// Moving the highlight leaves the committed selection alone.
	s.MoveDown(5)
	idx, _ = s.SelectedIndex(5)
	assert.Equal(t, 2, idx)

	s.ClearSelection()
	_, ok = s.SelectedIndex(5)
	assert.False(t, ok)
}

func TestReconcile_Shrink(t *testing.T) {
	tests := []struct {
		name       string
		before     int
		downs      int
		confirm    bool
		after      int
		rows       int
		wantHigh   int
		wantScroll int
		wantSel    int
	}{
		{
			name: "highlight past new end", before: 20, downs: 15, confirm: true, after: 10, rows: 5,
			wantHigh: 9, wantScroll: 5, wantSel: NoSelection,
		},
		{
			name: "selection survives", before: 20, downs: 3, confirm: true, after: 10, rows: 5,
			wantHigh: 3, wantScroll: 0, wantSel: 3,
		},
		{
			name: "selection exactly at new end", before: 20, downs: 10, confirm: true, after: 10, rows: 5,
			wantHigh: 9, wantScroll: 5, wantSel: NoSelection,
		},
		{
			name: "empty", before: 20, downs: 7, confirm: true, after: 0, rows: 5,
			wantHigh: 0, wantScroll: 0, wantSel: NoSelection,
		},
		{
			name: "window refills", before: 30, downs: 25, after: 24, rows: 10,
			wantHigh: 23, wantScroll: 14, wantSel: NoSelection,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Reconcile(tt.before, tt.rows)
			for i := 0; i < tt.downs; i++ {
				s.MoveDown(tt.before)
			}
			if tt.confirm {
				s.Confirm(tt.before)
			}

			s.Reconcile(tt.after, tt.rows)
			assert.Equal(t, tt.wantHigh, s.Highlight)
			assert.Equal(t, tt.wantScroll, s.ScrollOffset)
			assert.Equal(t, tt.wantSel, s.Selected)
			assertInvariants(t, s, tt.after)
		})
	}
}

func TestReconcile_Grow(t *testing.T) {
	s := New()
	s.Reconcile(0, 5)
	s.Reconcile(8, 5)
	assert.Zero(t, s.Highlight)
	assertInvariants(t, s, 8)
}

func TestSetVisibleRows_KeepsHighlightVisible(t *testing.T) {
	s := New()
	s.Reconcile(50, 20)
	for i := 0; i < 15; i++ {
		s.MoveDown(50)
	}
	require.Zero(t, s.ScrollOffset)

	s.SetVisibleRows(5)
	assert.Equal(t, 11, s.ScrollOffset)
	assertInvariants(t, s, 50)

	s.SetVisibleRows(0)
	assert.Equal(t, 1, s.VisibleRows())
	assert.Equal(t, 15, s.ScrollOffset)
}

func TestWindow(t *testing.T) {
	s := New()
	s.Reconcile(15, 10)
	for i := 0; i < 12; i++ {
		s.MoveDown(15)
	}
	start, end := s.Window(15)
	assert.Equal(t, 3, start)
	assert.Equal(t, 13, end)

	start, end = New().Window(0)
	assert.Zero(t, start)
	assert.Zero(t, end)
}

func TestReconcile_RandomWalk(t *testing.T) {
	counts := []int{15, 3, 40, 0, 1, 22, 7, 7, 100, 2}
	s := New()
	for i, count := range counts {
		s.Reconcile(count, 6)
		assertInvariants(t, s, count)
		for j := 0; j < i*3; j++ {
			if j%4 == 3 {
				s.MoveUp()
			} else {
				s.MoveDown(count)
			}
			assertInvariants(t, s, count)
		}
		if count > 0 {
			s.Confirm(count)
		}
	}
}
