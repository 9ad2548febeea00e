package sheets

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/investigacion/core"
)

const (
	headerRow    = 1
	firstDataRow = 2

	// IDColumn labels the trailing column holding the record's surrogate key.
	IDColumn = "ID"
)

// Mapper describes how records of type T are laid out in a sheet.
// Encode and Decode handle the data cells only; the id lives in the last column.
type Mapper[T any] struct {
	Sheet    string
	Header   []string
	Encode   func(rec T) []string
	Decode   func(cells []string, id string) T
	Identity func(rec T) string
	ID       func(rec T) string
	WithID   func(rec T, id string) T
}

// Entry is a decoded record along with the sheet row holding it.
type Entry[T any] struct {
	Row    int
	Record T
}

// Table is the record store of one sheet.
type Table[T any] struct {
	vs     ValueService
	m      Mapper[T]
	logger core.Logger
	newID  func() string

	// serializes the scan-verify-write sequence of mutations issued by this process
	mu sync.Mutex
}

func NewTable[T any](vs ValueService, m Mapper[T], logger core.Logger) *Table[T] {
	return &Table[T]{
		vs:     vs,
		m:      m,
		logger: logger,
		newID:  uuid.NewString,
	}
}

func (t *Table[T]) Sheet() string { return t.m.Sheet }

func (t *Table[T]) width() int { return len(t.m.Header) + 1 }

func (t *Table[T]) dataRange() Range {
	return Range{Sheet: t.m.Sheet, FromCol: 1, ToCol: t.width(), FromRow: firstDataRow}
}

// rowRange addresses a single data row; the header is never a valid target.
func (t *Table[T]) rowRange(row int) (Range, error) {
	if row < firstDataRow {
		return Range{}, errors.Errorf("%s: row %d is not a data row", t.m.Sheet, row)
	}
	return RowRange(t.m.Sheet, row, t.width()), nil
}

func (t *Table[T]) pad(cells []string) []string {
	if len(cells) >= t.width() {
		return cells[:t.width()]
	}
	padded := make([]string, t.width())
	copy(padded, cells)
	return padded
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (t *Table[T]) decode(cells []string) T {
	cells = t.pad(cells)
	last := t.width() - 1
	return t.m.Decode(cells[:last], strings.TrimSpace(cells[last]))
}

func (t *Table[T]) encode(rec T) []string {
	return append(t.pad(t.m.Encode(rec))[:t.width()-1], t.m.ID(rec))
}

func (t *Table[T]) unavailable(err error, op string, rng Range) error {
	return errors.Wrapf(core.ErrBackendUnavailable, "%s %s: %v", op, rng, err)
}

// Scan reads every live row, in sheet order.
// Blank rows (deleted records) are skipped.
func (t *Table[T]) Scan(ctx context.Context) ([]Entry[T], error) {
	entries, _, err := t.scan(ctx)
	return entries, err
}

// scan also returns the row following the last non-blank one.
func (t *Table[T]) scan(ctx context.Context) ([]Entry[T], int, error) {
	rng := t.dataRange()
	rows, err := t.vs.Get(ctx, rng.String())
	if err != nil {
		return nil, 0, t.unavailable(err, "reading", rng)
	}

	entries := make([]Entry[T], 0, len(rows))
	next := firstDataRow
	for i, cells := range rows {
		if isBlank(cells) {
			continue
		}
		entries = append(entries, Entry[T]{Row: firstDataRow + i, Record: t.decode(cells)})
		next = firstDataRow + i + 1
	}
	return entries, next, nil
}

// List returns the live records in sheet order; an empty sheet yields an empty slice.
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	entries, err := t.Scan(ctx)
	if err != nil {
		return nil, err
	}
	recs := make([]T, 0, len(entries))
	for _, e := range entries {
		recs = append(recs, e.Record)
	}
	return recs, nil
}

// Lookup returns every live row holding the identity value key, in sheet order.
func (t *Table[T]) Lookup(ctx context.Context, key string) ([]Entry[T], error) {
	entries, err := t.Scan(ctx)
	if err != nil {
		return nil, err
	}
	var matches []Entry[T]
	for _, e := range entries {
		if t.m.Identity(e.Record) == key {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

// Duplicates groups the rows of identity values held more than once.
func (t *Table[T]) Duplicates(ctx context.Context) (map[string][]int, error) {
	entries, err := t.Scan(ctx)
	if err != nil {
		return nil, err
	}
	rows := make(map[string][]int)
	for _, e := range entries {
		key := t.m.Identity(e.Record)
		rows[key] = append(rows[key], e.Row)
	}
	for key, rr := range rows {
		if len(rr) < 2 {
			delete(rows, key)
		}
	}
	return rows, nil
}

// Create writes rec with a fresh id below the last record. The row position is not read back.
// It does not check the identity value; see CreateUnique.
func (t *Table[T]) Create(ctx context.Context, rec T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, next, err := t.scan(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.append(ctx, next, rec)
}

// CreateUnique is Create refusing an identity value already held by a live row.
// The check and the write happen under the table lock.
func (t *Table[T]) CreateUnique(ctx context.Context, rec T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	entries, next, err := t.scan(ctx)
	if err != nil {
		return zero, err
	}
	key := t.m.Identity(rec)
	for _, e := range entries {
		if t.m.Identity(e.Record) == key {
			return zero, errors.Wrapf(core.ErrIdentityTaken, "%s %q: held by row %d", t.m.Sheet, key, e.Row)
		}
	}
	return t.append(ctx, next, rec)
}

// append anchors the write at row next, below every record the scan saw,
// so the values API never fills a blank slot nor shifts rows.
func (t *Table[T]) append(ctx context.Context, next int, rec T) (T, error) {
	rec = t.m.WithID(rec, t.newID())
	rng := Range{Sheet: t.m.Sheet, FromCol: 1, ToCol: t.width(), FromRow: next}
	if err := t.vs.Append(ctx, rng.String(), [][]string{t.encode(rec)}); err != nil {
		var zero T
		return zero, t.unavailable(err, "appending to", rng)
	}
	return rec, nil
}

// Update overwrites the first row holding the identity value key with rec.
// When rec carries an id it must match the row's one.
// Renaming onto an identity value held by another row fails with core.ErrIdentityTaken.
func (t *Table[T]) Update(ctx context.Context, key string, rec T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	target, err := t.locate(ctx, key, t.m.Identity(rec), t.m.ID(rec))
	if err != nil {
		return zero, err
	}

	id := t.m.ID(target.Record)
	if id == "" { // rows written before the id column existed
		id = t.newID()
	}
	rec = t.m.WithID(rec, id)

	rng, err := t.rowRange(target.Row)
	if err != nil {
		return zero, err
	}
	if err = t.vs.Update(ctx, rng.String(), [][]string{t.encode(rec)}); err != nil {
		return zero, t.unavailable(err, "updating", rng)
	}
	return rec, nil
}

// Delete blanks the first row holding the identity value key.
// The row stays in place as an empty slot; see Compact.
func (t *Table[T]) Delete(ctx context.Context, key, expectedID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	target, err := t.locate(ctx, key, key, expectedID)
	if err != nil {
		return err
	}
	rng, err := t.rowRange(target.Row)
	if err != nil {
		return err
	}
	if err = t.vs.Clear(ctx, rng.String()); err != nil {
		return t.unavailable(err, "clearing", rng)
	}
	return nil
}

// locate finds the row a mutation targets: the first live row holding key in sheet order.
// newKey is the identity value the row will hold afterwards; no other row may hold it.
// It re-reads that row right before returning so a concurrent edit is reported as a conflict
// instead of being overwritten.
func (t *Table[T]) locate(ctx context.Context, key, newKey, expectedID string) (Entry[T], error) {
	entries, _, err := t.scan(ctx)
	if err != nil {
		return Entry[T]{}, err
	}
	var matches []Entry[T]
	takenBy := 0
	for _, e := range entries {
		switch t.m.Identity(e.Record) {
		case key:
			matches = append(matches, e)
		case newKey:
			if takenBy == 0 {
				takenBy = e.Row
			}
		}
	}
	if len(matches) == 0 {
		return Entry[T]{}, errors.Wrapf(core.ErrNotFound, "%s %q", t.m.Sheet, key)
	}
	if takenBy > 0 {
		return Entry[T]{}, errors.Wrapf(core.ErrIdentityTaken, "%s %q: held by row %d", t.m.Sheet, newKey, takenBy)
	}

	target := matches[0]
	if len(matches) > 1 {
		rows := make([]int, 0, len(matches))
		for _, m := range matches {
			rows = append(rows, m.Row)
		}
		t.logger.Warn(
			"mutating the first of several rows with the same identity value",
			core.ErrNonUniqueIdentity,
			map[string]interface{}{"sheet": t.m.Sheet, "key": key, "rows": rows, "target": target.Row},
		)
	}

	targetID := t.m.ID(target.Record)
	if expectedID != "" && targetID != "" && expectedID != targetID {
		return Entry[T]{}, errors.Wrapf(core.ErrConflict, "%s %q: id %s, row holds %s", t.m.Sheet, key, expectedID, targetID)
	}

	rng, err := t.rowRange(target.Row)
	if err != nil {
		return Entry[T]{}, err
	}
	rows, err := t.vs.Get(ctx, rng.String())
	if err != nil {
		return Entry[T]{}, t.unavailable(err, "reading", rng)
	}
	if len(rows) == 0 || isBlank(rows[0]) {
		return Entry[T]{}, errors.Wrapf(core.ErrConflict, "%s %q: row %d was cleared", t.m.Sheet, key, target.Row)
	}
	current := t.decode(rows[0])
	if t.m.Identity(current) != key || t.m.ID(current) != targetID {
		return Entry[T]{}, errors.Wrapf(core.ErrConflict, "%s %q: row %d was modified", t.m.Sheet, key, target.Row)
	}
	return Entry[T]{Row: target.Row, Record: current}, nil
}

// EnsureHeader writes the header cells missing from row 1.
// It reports whether anything was written.
func (t *Table[T]) EnsureHeader(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rng := RowRange(t.m.Sheet, headerRow, t.width())
	rows, err := t.vs.Get(ctx, rng.String())
	if err != nil {
		return false, t.unavailable(err, "reading", rng)
	}

	var existing []string
	if len(rows) > 0 && !isBlank(rows[0]) {
		existing = rows[0]
	}
	if len(existing) >= t.width() {
		return false, nil
	}

	header := append(append([]string{}, t.m.Header...), IDColumn)
	missing := Range{Sheet: t.m.Sheet, FromCol: len(existing) + 1, ToCol: t.width(), FromRow: headerRow, ToRow: headerRow}
	if err = t.vs.Update(ctx, missing.String(), [][]string{header[len(existing):]}); err != nil {
		return false, t.unavailable(err, "writing header", missing)
	}
	return true, nil
}

// Compact moves the live rows up so they are contiguous from row 2 and clears the tail.
// It returns the number of blank rows reclaimed.
// Row positions change, so it must not run while the API serves mutations.
func (t *Table[T]) Compact(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rng := t.dataRange()
	rows, err := t.vs.Get(ctx, rng.String())
	if err != nil {
		return 0, t.unavailable(err, "reading", rng)
	}

	live := make([][]string, 0, len(rows))
	for _, cells := range rows {
		if !isBlank(cells) {
			live = append(live, t.pad(cells))
		}
	}
	removed := len(rows) - len(live)
	if removed == 0 {
		return 0, nil
	}

	if len(live) > 0 {
		head := Range{Sheet: t.m.Sheet, FromCol: 1, ToCol: t.width(), FromRow: firstDataRow, ToRow: firstDataRow + len(live) - 1}
		if err = t.vs.Update(ctx, head.String(), live); err != nil {
			return 0, t.unavailable(err, "rewriting", head)
		}
	}
	tail := Range{
		Sheet:   t.m.Sheet,
		FromCol: 1,
		ToCol:   t.width(),
		FromRow: firstDataRow + len(live),
		ToRow:   firstDataRow + len(rows) - 1,
	}
	if err = t.vs.Clear(ctx, tail.String()); err != nil {
		return 0, t.unavailable(err, "clearing", tail)
	}
	return removed, nil
}
