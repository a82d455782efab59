// Package session holds the dashboard cursor: scroll offset, highlighted row
// and committed selection.
//
// All three are indices into the current snapshot, which is rebuilt every
// cycle and may change size. Reconcile re-clamps them against the new size
// before anything reads them.
package session

// NoSelection is the value of Selected when nothing is selected.
const NoSelection = -1

// State is the cursor of one interactive session.
//
// Invariants after Reconcile, for count > 0:
//
//	0 <= Highlight < count
//	ScrollOffset <= Highlight < ScrollOffset+visibleRows
//	Selected == NoSelection || 0 <= Selected < count
type State struct {
	ScrollOffset int
	Highlight    int
	Selected     int

	visibleRows int
}

// New returns a session with nothing selected and one visible row.
func New() *State {
	return &State{Selected: NoSelection, visibleRows: 1}
}

// VisibleRows returns how many table rows fit on screen.
func (s *State) VisibleRows() int { return s.visibleRows }

// SetVisibleRows changes the table height and keeps the highlight on screen.
// Values below 1 are treated as 1.
func (s *State) SetVisibleRows(n int) {
	if n < 1 {
		n = 1
	}
	s.visibleRows = n
	s.follow()
}

// MoveUp moves the highlight one row up, scrolling if it leaves the window.
func (s *State) MoveUp() {
	if s.Highlight <= 0 {
		return
	}
	s.Highlight--
	if s.Highlight < s.ScrollOffset {
		s.ScrollOffset = s.Highlight
	}
}

// MoveDown moves the highlight one row down, scrolling if it leaves the window.
func (s *State) MoveDown(count int) {
	if s.Highlight >= count-1 {
		return
	}
	s.Highlight++
	if s.Highlight >= s.ScrollOffset+s.visibleRows {
		s.ScrollOffset = s.Highlight - s.visibleRows + 1
	}
}

// Confirm commits the highlighted row as the selection. It reports false when
// there is nothing to select.
func (s *State) Confirm(count int) bool {
	if s.Highlight < 0 || s.Highlight >= count {
		return false
	}
	s.Selected = s.Highlight
	return true
}

// ClearSelection drops the committed selection.
func (s *State) ClearSelection() {
	s.Selected = NoSelection
}

// SelectedIndex returns the selection if it is valid for count rows.
func (s *State) SelectedIndex(count int) (int, bool) {
	if s.Selected < 0 || s.Selected >= count {
		return 0, false
	}
	return s.Selected, true
}

// Reconcile re-clamps the cursor against a snapshot of count rows shown in
// visibleRows lines. A highlight past the end moves to the last row; a
// selection past the end is stale and becomes NoSelection.
func (s *State) Reconcile(count, visibleRows int) {
	if visibleRows < 1 {
		visibleRows = 1
	}
	s.visibleRows = visibleRows

	if count <= 0 {
		s.Highlight = 0
		s.ScrollOffset = 0
		s.Selected = NoSelection
		return
	}

	if s.Highlight >= count {
		s.Highlight = count - 1
	}
	if s.Highlight < 0 {
		s.Highlight = 0
	}
	if s.Selected >= count || s.Selected < NoSelection {
		s.Selected = NoSelection
	}

	// Keep the window full when the list shrinks.
	if maxOffset := count - s.visibleRows; s.ScrollOffset > maxOffset {
		s.ScrollOffset = max(maxOffset, 0)
	}
	s.follow()
}

// Window returns the half-open range of row indices to draw for count rows.
func (s *State) Window(count int) (start, end int) {
	start = min(max(s.ScrollOffset, 0), max(count, 0))
	end = min(start+s.visibleRows, max(count, 0))
	return start, end
}

// follow scrolls the minimum amount needed to show the highlight.
func (s *State) follow() {
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if s.Highlight < s.ScrollOffset {
		s.ScrollOffset = s.Highlight
	}
	if s.Highlight >= s.ScrollOffset+s.visibleRows {
		s.ScrollOffset = s.Highlight - s.visibleRows + 1
	}
}
