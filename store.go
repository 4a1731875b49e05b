package folio

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Keys under which the state is persisted in a Store.
const (
	KeyTotalInvestment = "totalInvestment"
	KeyTickers         = "tickers"
	KeyPortfolios      = "portfolios"
	KeyEditing         = "editing"

	// KeyPortfoliosBackup holds a portfolios document that could not be
	// fully restored, before it is overwritten.
	KeyPortfoliosBackup = "portfolios-backup"
)

// Store is a durable key-value storage of JSON documents.
//
// A missing key is not an error: Load returns ok=false. Removing a missing
// key is a no-op.
type Store interface {
	Load(key string) (value []byte, ok bool, err error)
	Save(key string, value []byte) error
	Remove(key string) error
}

// MemoryStore is a Store that lives in memory only. Its zero value is ready to use.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *MemoryStore) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string][]byte)
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// loadJSON decodes the value stored at key into v. It returns false if the
// key is missing.
func loadJSON(s Store, key string, v any) (bool, error) {
	data, ok, err := s.Load(key)
	if err != nil {
		return false, fmt.Errorf("%w: cannot load %q: %v", ErrStorage, key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: cannot decode %q: %v", ErrStorage, key, err)
	}
	return true, nil
}

// loadRecords decodes the JSON array stored at key one element at a time.
// Elements that cannot be decoded are left out of records and reported in
// skipped. raw is the stored document, nil if the key could not be loaded.
func loadRecords[T any](s Store, key string) (records []T, raw []byte, skipped []error, err error) {
	raw, ok, err := s.Load(key)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: cannot load %q: %v", ErrStorage, key, err)
	}
	if !ok {
		return nil, nil, nil, nil
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, raw, nil, fmt.Errorf("%w: cannot decode %q: %v", ErrStorage, key, err)
	}
	for i, element := range elements {
		var v T
		if err := json.Unmarshal(element, &v); err != nil {
			skipped = append(skipped, fmt.Errorf("%q[%d]: %w", key, i, err))
			continue
		}
		records = append(records, v)
	}
	return records, raw, skipped, nil
}

// saveJSON encodes v and stores it at key.
func saveJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: cannot encode %q: %v", ErrStorage, key, err)
	}
	if err := s.Save(key, data); err != nil {
		return fmt.Errorf("%w: cannot save %q: %v", ErrStorage, key, err)
	}
	return nil
}

// removeKey removes key from the store.
func removeKey(s Store, key string) error {
	if err := s.Remove(key); err != nil {
		return fmt.Errorf("%w: cannot remove %q: %v", ErrStorage, key, err)
	}
	return nil
}
