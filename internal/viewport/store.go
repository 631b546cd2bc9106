package viewport

import "github.com/vovakirdan/logview/internal/logs"

// RecordStore is a fixed-length, sparsely populated sequence of records.
// Memory is allocated per page only once a page receives data, so an
// untouched store of any length costs nothing beyond its page map.
type RecordStore struct {
	length   int
	pageSize int
	pages    map[int][]slot
	loaded   int
}

type slot struct {
	record logs.Record
	ok     bool
}

// NewRecordStore creates an all-unpopulated store of the given length.
func NewRecordStore(length, pageSize int) *RecordStore {
	if pageSize <= 0 {
		pageSize = 1
	}
	return &RecordStore{
		length:   length,
		pageSize: pageSize,
		pages:    make(map[int][]slot),
	}
}

// Len returns the logical length of the store.
func (s *RecordStore) Len() int {
	return s.length
}

// Loaded returns the number of populated slots.
func (s *RecordStore) Loaded() int {
	return s.loaded
}

// At returns the record at index, or false if the slot is unpopulated
// or out of range.
func (s *RecordStore) At(index int) (logs.Record, bool) {
	if index < 0 || index >= s.length {
		return logs.Record{}, false
	}
	page, ok := s.pages[index/s.pageSize]
	if !ok {
		return logs.Record{}, false
	}
	sl := page[index%s.pageSize]
	return sl.record, sl.ok
}

// Merge writes records into consecutive slots starting at start. Slots
// outside the store are ignored and neighbouring slots are untouched.
// It returns the number of slots that went from unpopulated to populated.
func (s *RecordStore) Merge(start int, records []logs.Record) int {
	added := 0
	for i, rec := range records {
		idx := start + i
		if idx < 0 || idx >= s.length {
			continue
		}

		key := idx / s.pageSize
		page, ok := s.pages[key]
		if !ok {
			page = make([]slot, s.pageSize)
			s.pages[key] = page
		}

		off := idx % s.pageSize
		if !page[off].ok {
			added++
		}
		page[off] = slot{record: rec, ok: true}
	}
	s.loaded += added
	return added
}

// BatchLedger records which batches have been requested.
// Entries are never removed.
type BatchLedger struct {
	batches map[int]struct{}
}

// NewBatchLedger returns an empty ledger.
func NewBatchLedger() *BatchLedger {
	return &BatchLedger{batches: make(map[int]struct{})}
}

// Has reports whether batch has been requested.
func (l *BatchLedger) Has(batch int) bool {
	_, ok := l.batches[batch]
	return ok
}

// Mark records batch as requested. It returns false if it already was.
func (l *BatchLedger) Mark(batch int) bool {
	if l.Has(batch) {
		return false
	}
	l.batches[batch] = struct{}{}
	return true
}

// Len returns the number of requested batches.
func (l *BatchLedger) Len() int {
	return len(l.batches)
}
