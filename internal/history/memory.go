package history

import (
	"sync"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/xgp"
)

// MemoryLedger keeps import records in memory. Used when history is
// disabled and in tests.
type MemoryLedger struct {
	mu      sync.Mutex
	nextID  int64
	records []*xgp.ImportRecord
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{nextID: 1}
}

func (l *MemoryLedger) Record(rec *xgp.ImportRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec.ID = l.nextID
	l.nextID++
	cp := *rec
	l.records = append(l.records, &cp)
	return nil
}

func (l *MemoryLedger) List(limit int) ([]*xgp.ImportRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*xgp.ImportRecord
	for i := len(l.records) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *l.records[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (l *MemoryLedger) Close() error { return nil }

var _ xgp.Ledger = (*MemoryLedger)(nil)
