package folio

import (
	"errors"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	var s MemoryStore
	if _, ok, err := s.Load("k"); ok || err != nil {
		t.Errorf("Load(missing) = %v, %v, want false, nil", ok, err)
	}
	if err := s.Remove("k"); err != nil {
		t.Errorf("Remove(missing) error: %v", err)
	}

	value := []byte(`"v"`)
	if err := s.Save("k", value); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	value[1] = 'x'
	got, ok, err := s.Load("k")
	if !ok || err != nil || string(got) != `"v"` {
		t.Errorf("Load() = %s, %v, %v, want \"v\"", got, ok, err)
	}

	s.Remove("k")
	if _, ok, _ := s.Load("k"); ok {
		t.Error("Load() after Remove() found the key")
	}
}

func TestStoreHelpers(t *testing.T) {
	s := NewMemoryStore()
	if err := saveJSON(s, "k", []string{"a"}); err != nil {
		t.Fatalf("saveJSON() error: %v", err)
	}
	var got []string
	if ok, err := loadJSON(s, "k", &got); !ok || err != nil || len(got) != 1 {
		t.Errorf("loadJSON() = %v, %v, %v", ok, err, got)
	}

	s.Save("bad", []byte("{"))
	if _, err := loadJSON(s, "bad", &got); !errors.Is(err, ErrStorage) {
		t.Errorf("loadJSON(corrupted) error = %v, want ErrStorage", err)
	}

	for name, err := range map[string]error{
		"load":   func() error { _, err := loadJSON(failingStore{}, "k", &got); return err }(),
		"save":   saveJSON(failingStore{}, "k", 1),
		"remove": removeKey(failingStore{}, "k"),
	} {
		if !errors.Is(err, ErrStorage) {
			t.Errorf("%s error = %v, want ErrStorage", name, err)
		}
	}
}
