package grid

import "sort"

// Selection is the set of highlighted rows. The zero value is empty and
// ready to use. Anchor is the row range selection extends from.
type Selection struct {
	rows   map[int]bool
	anchor int
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{rows: make(map[int]bool), anchor: -1}
}

func (s *Selection) init() {
	if s.rows == nil {
		s.rows = make(map[int]bool)
		s.anchor = -1
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.rows = make(map[int]bool)
	s.anchor = -1
}

// Select replaces the selection with row.
func (s *Selection) Select(row int) {
	s.Clear()
	s.rows[row] = true
	s.anchor = row
}

// Toggle flips row in or out of the selection.
func (s *Selection) Toggle(row int) {
	s.init()
	if s.rows[row] {
		delete(s.rows, row)
	} else {
		s.rows[row] = true
	}
	s.anchor = row
}

// Extend selects every row between the anchor and row inclusive. With no
// anchor it behaves like Select.
func (s *Selection) Extend(row int) {
	s.init()
	if s.anchor < 0 {
		s.Select(row)
		return
	}
	lo, hi := s.anchor, row
	if lo > hi {
		lo, hi = hi, lo
	}
	anchor := s.anchor
	s.rows = make(map[int]bool, hi-lo+1)
	for r := lo; r <= hi; r++ {
		s.rows[r] = true
	}
	s.anchor = anchor
}

// SelectAll selects rows 0..n-1.
func (s *Selection) SelectAll(n int) {
	s.Clear()
	for r := 0; r < n; r++ {
		s.rows[r] = true
	}
	if n > 0 {
		s.anchor = 0
	}
}

// SetRows replaces the selection with rows.
func (s *Selection) SetRows(rows []int) {
	s.Clear()
	for _, r := range rows {
		s.rows[r] = true
	}
	if len(rows) > 0 {
		s.anchor = rows[0]
	}
}

// Has reports whether row is selected.
func (s *Selection) Has(row int) bool {
	return s.rows[row]
}

// Len returns the number of selected rows.
func (s *Selection) Len() int {
	return len(s.rows)
}

// Rows returns the selected rows in ascending order.
func (s *Selection) Rows() []int {
	rows := make([]int, 0, len(s.rows))
	for r := range s.rows {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}
