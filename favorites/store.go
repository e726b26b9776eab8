package favorites

import (
	"bytes"
	"encoding/json"
	"hash/fnv"
	"strconv"
	"sync"
)

// Store holds per-session favorites: an insertion-ordered set of saved
// flight/hotel records keyed by a stable content hash, so saving the same
// record twice is a no-op. Everything is in-memory and dies with the process.

type Item struct {
	Key    string          `json:"key"`
	Kind   string          `json:"kind"`
	Record json.RawMessage `json:"record"`
}

type Store struct {
	mu       sync.Mutex
	sessions map[string][]Item
}

func NewStore() *Store {
	return &Store{sessions: make(map[string][]Item)}
}

// Add appends a record to the session's favorites. Returns the content key
// and whether the record was newly inserted.
func (s *Store) Add(session, kind string, record json.RawMessage) (string, bool) {
	key := ContentKey(record)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.sessions[session] {
		if it.Key == key {
			return key, false
		}
	}
	s.sessions[session] = append(s.sessions[session], Item{Key: key, Kind: kind, Record: record})
	return key, true
}

// Remove deletes the favorite with the given key, preserving the order of the
// rest. Returns false when the key is not present.
func (s *Store) Remove(session, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.sessions[session]
	for i, it := range items {
		if it.Key == key {
			s.sessions[session] = append(items[:i], items[i+1:]...)
			return true
		}
	}
	return false
}

// List returns the session's favorites in insertion order.
func (s *Store) List(session string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.sessions[session]
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// ContentKey derives a stable key from a record: FNV-1a 64 over the compacted
// JSON, so formatting differences do not produce duplicate entries.
func ContentKey(record []byte) string {
	var compact bytes.Buffer
	if err := json.Compact(&compact, record); err != nil {
		compact.Reset()
		compact.Write(record)
	}
	h := fnv.New64a()
	h.Write(compact.Bytes())
	return strconv.FormatUint(h.Sum64(), 16)
}
