package sheets

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var cellRefRegex = regexp.MustCompile(`^([A-Z]+)([0-9]*)$`)

// Range is a rectangular block of cells in A1 notation.
// Columns and rows are 1-based; a zero FromRow means whole columns
// and a zero ToRow means the range is open-ended downwards.
type Range struct {
	Sheet   string
	FromCol int
	ToCol   int
	FromRow int
	ToRow   int
}

// ColumnName converts a 1-based column index into its letters (1 -> A, 27 -> AA).
func ColumnName(col int) string {
	var name []byte
	for col > 0 {
		col--
		name = append([]byte{byte('A' + col%26)}, name...)
		col /= 26
	}
	return string(name)
}

// ColumnIndex converts column letters into a 1-based index.
func ColumnIndex(name string) int {
	var col int
	for _, c := range strings.ToUpper(name) {
		col = col*26 + int(c-'A') + 1
	}
	return col
}

// RowRange addresses the cells of a single row.
func RowRange(sheet string, row, width int) Range {
	return Range{Sheet: sheet, FromCol: 1, ToCol: width, FromRow: row, ToRow: row}
}

func (r Range) String() string {
	var b strings.Builder
	if r.Sheet != "" {
		if strings.ContainsAny(r.Sheet, " '!") {
			b.WriteString("'" + strings.ReplaceAll(r.Sheet, "'", "''") + "'")
		} else {
			b.WriteString(r.Sheet)
		}
		b.WriteByte('!')
	}
	b.WriteString(ColumnName(r.FromCol))
	if r.FromRow > 0 {
		b.WriteString(strconv.Itoa(r.FromRow))
	}
	b.WriteByte(':')
	b.WriteString(ColumnName(r.ToCol))
	if r.FromRow > 0 && r.ToRow > 0 {
		b.WriteString(strconv.Itoa(r.ToRow))
	}
	return b.String()
}

// Width returns the number of columns covered by r.
func (r Range) Width() int {
	return r.ToCol - r.FromCol + 1
}

// ParseRange parses ranges such as `DOCENTES!A2:H`, `DOCENTES!A7:H7` or `DOCENTES!A:H`.
func ParseRange(s string) (Range, error) {
	var r Range
	ref := s
	if i := strings.LastIndex(s, "!"); i >= 0 {
		r.Sheet = s[:i]
		if strings.HasPrefix(r.Sheet, "'") && strings.HasSuffix(r.Sheet, "'") && len(r.Sheet) > 1 {
			r.Sheet = strings.ReplaceAll(r.Sheet[1:len(r.Sheet)-1], "''", "'")
		}
		ref = s[i+1:]
	}

	parts := strings.SplitN(ref, ":", 2)
	from := cellRefRegex.FindStringSubmatch(strings.ToUpper(parts[0]))
	if from == nil {
		return Range{}, errors.Errorf("invalid range %q", s)
	}
	r.FromCol = ColumnIndex(from[1])
	if from[2] != "" {
		r.FromRow, _ = strconv.Atoi(from[2])
	}

	if len(parts) == 1 {
		r.ToCol = r.FromCol
		r.ToRow = r.FromRow
		return r, nil
	}
	to := cellRefRegex.FindStringSubmatch(strings.ToUpper(parts[1]))
	if to == nil {
		return Range{}, errors.Errorf("invalid range %q", s)
	}
	r.ToCol = ColumnIndex(to[1])
	if to[2] != "" {
		r.ToRow, _ = strconv.Atoi(to[2])
	}
	if r.ToCol < r.FromCol || (r.ToRow > 0 && r.ToRow < r.FromRow) {
		return Range{}, errors.Errorf("invalid range %q", s)
	}
	return r, nil
}
