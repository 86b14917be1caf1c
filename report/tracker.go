package report

import (
	"context"
	"sync"
)

// Tracker is an in-memory spreadsheet: named sheets of appended rows.
// The message handlers append sales and refunds here for admin review.
type Tracker struct {
	lock   sync.Mutex
	sheets map[string][][]string
}

func NewTracker() *Tracker {
	return &Tracker{sheets: make(map[string][][]string)}
}

func (t *Tracker) AppendRow(ctx context.Context, sheetName string, row []string) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	r := make([]string, len(row))
	copy(r, row)
	t.sheets[sheetName] = append(t.sheets[sheetName], r)

	return nil
}

// Rows returns a copy of the named sheet in append order.
func (t *Tracker) Rows(sheetName string) [][]string {
	t.lock.Lock()
	defer t.lock.Unlock()

	rows := t.sheets[sheetName]
	out := make([][]string, len(rows))
	for i, r := range rows {
		c := make([]string, len(r))
		copy(c, r)
		out[i] = c
	}
	return out
}
