package docdex

import "sort"

// Store is an in-memory document store built once from a loaded index
// artifact and read-only thereafter. Records are keyed by id with
// last-write-wins semantics. A Store is ready only when loading completed
// successfully and it holds at least one record; querying a not-ready
// Store returns empty results rather than failing.
type Store struct {
	docs    map[string]*DocumentRecord
	dropped int
	ready   bool
}

// NewStore builds a Store from a sanitized record sequence. Records that
// fail the validity filter are dropped silently; the drop count stays
// observable via Dropped. A later record with a duplicate id overwrites
// an earlier one.
func NewStore(records []*DocumentRecord) *Store {
	s := &Store{docs: make(map[string]*DocumentRecord, len(records))}
	for _, rec := range records {
		if !rec.Indexable() {
			s.dropped++
			continue
		}
		s.docs[rec.ID] = rec
	}
	s.ready = len(s.docs) > 0
	return s
}

// Ready reports whether the store holds at least one loaded record.
func (s *Store) Ready() bool {
	return s != nil && s.ready
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	if !s.Ready() {
		return 0
	}
	return len(s.docs)
}

// Dropped returns the number of candidate records excluded by the
// validity filter during construction.
func (s *Store) Dropped() int {
	if s == nil {
		return 0
	}
	return s.dropped
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (*DocumentRecord, bool) {
	if !s.Ready() {
		return nil, false
	}
	rec, ok := s.docs[id]
	return rec, ok
}

// All returns the stored records sorted by id.
func (s *Store) All() []*DocumentRecord {
	if !s.Ready() {
		return nil
	}
	out := make([]*DocumentRecord, 0, len(s.docs))
	for _, rec := range s.docs {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Map returns a copy of the id-to-record mapping.
func (s *Store) Map() map[string]*DocumentRecord {
	if !s.Ready() {
		return map[string]*DocumentRecord{}
	}
	out := make(map[string]*DocumentRecord, len(s.docs))
	for id, rec := range s.docs {
		out[id] = rec
	}
	return out
}

// Filter returns the records matching the predicate, sorted by id.
func (s *Store) Filter(pred func(*DocumentRecord) bool) []*DocumentRecord {
	if !s.Ready() {
		return nil
	}
	var out []*DocumentRecord
	for _, rec := range s.docs {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Stats summarizes the stored corpus.
type Stats struct {
	Total             int     `json:"total"`
	WithSummary       int     `json:"withSummary"`
	WithHeadings      int     `json:"withHeadings"`
	WithTags          int     `json:"withTags"`
	MeanContentLength float64 `json:"meanContentLength"`
	Dropped           int     `json:"dropped"`
}

// Stats computes aggregate statistics over the stored records.
func (s *Store) Stats() Stats {
	stats := Stats{Dropped: s.Dropped()}
	if !s.Ready() {
		return stats
	}
	var contentLen int
	for _, rec := range s.docs {
		stats.Total++
		if rec.Summary != "" {
			stats.WithSummary++
		}
		if len(rec.Headings) > 0 {
			stats.WithHeadings++
		}
		if len(rec.Tags) > 0 {
			stats.WithTags++
		}
		contentLen += len(rec.Content)
	}
	if stats.Total > 0 {
		stats.MeanContentLength = float64(contentLen) / float64(stats.Total)
	}
	return stats
}
