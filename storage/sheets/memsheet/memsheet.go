// Package memsheet is an in-memory spreadsheet implementing sheets.ValueService.
//
// It follows the values API with the RAW input and OVERWRITE insert options:
// reads omit trailing blank rows and cells, clears keep the rows in place and
// appends write below the block of non-blank rows starting at the range's first row.
package memsheet

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/investigacion/storage/sheets"
)

// Spreadsheet holds named sheets of string cells.
type Spreadsheet struct {
	mutex  sync.RWMutex
	sheets map[string][][]string

	// fail, when set, is returned by every call; used to simulate an unreachable backend.
	fail error
	// calls counts the calls by verb.
	calls map[string]int
}

var _ sheets.ValueService = (*Spreadsheet)(nil)

func New() *Spreadsheet {
	return &Spreadsheet{
		sheets: make(map[string][][]string),
		calls:  make(map[string]int),
	}
}

// Fail makes every following call return err; nil restores normal operation.
func (s *Spreadsheet) Fail(err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.fail = err
}

// Calls returns how many times verb (get, append, update, clear) was called.
func (s *Spreadsheet) Calls(verb string) int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.calls[verb]
}

// Rows returns a copy of every row of sheet, blank rows included.
func (s *Spreadsheet) Rows(sheet string) [][]string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rows := make([][]string, len(s.sheets[sheet]))
	for i, r := range s.sheets[sheet] {
		rows[i] = append([]string{}, r...)
	}
	return rows
}

// SetRows replaces the content of sheet, header included.
func (s *Spreadsheet) SetRows(sheet string, rows [][]string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string{}, r...)
	}
	s.sheets[sheet] = cp
}

func (s *Spreadsheet) begin(verb, rng string) (sheets.Range, error) {
	s.calls[verb]++
	if s.fail != nil {
		return sheets.Range{}, s.fail
	}
	r, err := sheets.ParseRange(rng)
	if err != nil {
		return sheets.Range{}, err
	}
	if r.FromRow == 0 {
		r.FromRow = 1
	}
	return r, nil
}

func (s *Spreadsheet) Get(ctx context.Context, rng string) ([][]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	r, err := s.begin("get", rng)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	rows := s.sheets[r.Sheet]
	last := len(rows)
	if r.ToRow > 0 && r.ToRow < last {
		last = r.ToRow
	}
	var out [][]string
	for i := r.FromRow; i <= last; i++ {
		out = append(out, trimRight(slice(rows[i-1], r.FromCol, r.ToCol)))
	}
	// the API omits trailing empty rows
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (s *Spreadsheet) Append(ctx context.Context, rng string, rows [][]string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	r, err := s.begin("append", rng)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	// like the API, the table starts at the range's first row and ends at the first blank row
	sheet := s.sheets[r.Sheet]
	at := r.FromRow
	for at <= len(sheet) && !isBlank(sheet[at-1]) {
		at++
	}
	for i, row := range rows {
		sheet = s.write(sheet, at+i, r.FromCol, row)
	}
	s.sheets[r.Sheet] = sheet
	return nil
}

func (s *Spreadsheet) Update(ctx context.Context, rng string, rows [][]string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	r, err := s.begin("update", rng)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	if r.ToRow > 0 && len(rows) > r.ToRow-r.FromRow+1 {
		return errors.Errorf("update %s: %d rows do not fit", rng, len(rows))
	}

	sheet := s.sheets[r.Sheet]
	for i, row := range rows {
		if len(row) > r.Width() {
			return errors.Errorf("update %s: %d cells do not fit", rng, len(row))
		}
		sheet = s.write(sheet, r.FromRow+i, r.FromCol, row)
	}
	s.sheets[r.Sheet] = sheet
	return nil
}

func (s *Spreadsheet) Clear(ctx context.Context, rng string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	r, err := s.begin("clear", rng)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	sheet := s.sheets[r.Sheet]
	last := len(sheet)
	if r.ToRow > 0 && r.ToRow < last {
		last = r.ToRow
	}
	for i := r.FromRow; i <= last; i++ {
		row := sheet[i-1]
		for c := r.FromCol; c <= r.ToCol && c <= len(row); c++ {
			row[c-1] = ""
		}
	}
	return nil
}

// write sets the cells of a 1-based row starting at a 1-based column, growing the sheet as needed.
func (s *Spreadsheet) write(sheet [][]string, row, col int, cells []string) [][]string {
	for len(sheet) < row {
		sheet = append(sheet, nil)
	}
	r := sheet[row-1]
	for len(r) < col-1+len(cells) {
		r = append(r, "")
	}
	copy(r[col-1:], cells)
	sheet[row-1] = r
	return sheet
}

func slice(row []string, from, to int) []string {
	if from > len(row) {
		return []string{}
	}
	if to > len(row) {
		to = len(row)
	}
	return append([]string{}, row[from-1:to]...)
}

func trimRight(cells []string) []string {
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
