package coding

// Matrix is the wide-form coding table: one row per response, one
// boolean column per theme. Theme columns are in sorted-ID order; rows
// keep the input response order. Long and wide forms are projections of
// the same assignment relation and always agree.
type Matrix struct {
	themeIDs []string
	colIndex map[string]int
	ids      []string
	cells    [][]bool
}

// NewMatrix creates an all-false matrix for the given theme IDs
// (already sorted) and response IDs (input order).
func NewMatrix(themeIDs, responseIDs []string) *Matrix {
	colIndex := make(map[string]int, len(themeIDs))
	themes := make([]string, len(themeIDs))
	copy(themes, themeIDs)
	for i, id := range themes {
		colIndex[id] = i
	}

	ids := make([]string, len(responseIDs))
	copy(ids, responseIDs)

	cells := make([][]bool, len(ids))
	for i := range cells {
		cells[i] = make([]bool, len(themes))
	}
	return &Matrix{
		themeIDs: themes,
		colIndex: colIndex,
		ids:      ids,
		cells:    cells,
	}
}

// Len returns the number of responses (rows).
func (m *Matrix) Len() int {
	return len(m.ids)
}

// Themes returns theme IDs in column order.
// The returned slice must not be modified.
func (m *Matrix) Themes() []string {
	return m.themeIDs
}

// ResponseID returns the response ID of a row.
func (m *Matrix) ResponseID(row int) string {
	return m.ids[row]
}

// Set marks a theme as assigned for a row.
func (m *Matrix) Set(row int, theme string) {
	m.cells[row][m.colIndex[theme]] = true
}

// Flag reports whether a theme is assigned for a row.
func (m *Matrix) Flag(row int, theme string) bool {
	return m.cells[row][m.colIndex[theme]]
}

// Toggle inverts the flag of one cell. Used by the reliability
// simulator to produce the second-coder matrix.
func (m *Matrix) Toggle(row int, theme string) {
	col := m.colIndex[theme]
	m.cells[row][col] = !m.cells[row][col]
}

// Row returns the boolean flags of one row in column order.
// The returned slice must not be modified.
func (m *Matrix) Row(row int) []bool {
	return m.cells[row]
}

// PositiveCount returns the number of rows where the theme is assigned.
func (m *Matrix) PositiveCount(theme string) int {
	col, ok := m.colIndex[theme]
	if !ok {
		return 0
	}
	var n int
	for _, row := range m.cells {
		if row[col] {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	res := NewMatrix(m.themeIDs, m.ids)
	for i, row := range m.cells {
		copy(res.cells[i], row)
	}
	return res
}

// SameShape reports whether the other matrix has identical theme
// columns and response rows in the same order.
func (m *Matrix) SameShape(other *Matrix) bool {
	if other == nil ||
		len(m.themeIDs) != len(other.themeIDs) ||
		len(m.ids) != len(other.ids) {
		return false
	}
	for i, th := range m.themeIDs {
		if other.themeIDs[i] != th {
			return false
		}
	}
	for i, id := range m.ids {
		if other.ids[i] != id {
			return false
		}
	}
	return true
}
