package folio

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// Resetter is implemented by the editing state, it is reset after each
// save or update.
type Resetter interface {
	Reset()
}

// Manager holds the list of saved snapshots.
//
// Every mutation persists the full list into the Store. As for the Editor,
// storage failures are logged and otherwise ignored.
type Manager struct {
	store     Store
	editor    Resetter
	bus       Bus
	log       zerolog.Logger
	snapshots []Snapshot
	editing   string // id of the snapshot selected for edit, if any.

	// unsaved is set when the stored list could not be restored nor kept
	// aside: the list is then never persisted, to not overwrite it.
	unsaved error
}

// NewManager restores the snapshot list from store.
func NewManager(store Store, editor Resetter, bus Bus, log zerolog.Logger) *Manager {
	m := &Manager{store: store, editor: editor, bus: bus, log: log, snapshots: []Snapshot{}}

	m.restore()

	var editing string
	if ok, err := loadJSON(store, KeyEditing, &editing); err != nil {
		log.Error().Err(err).Msg("restoring edited portfolio")
	} else if ok && m.index(editing) >= 0 {
		m.editing = editing
	}
	return m
}

// restore reads the snapshot list leniently: unreadable snapshots are
// skipped, and the stored document is then kept under KeyPortfoliosBackup
// before the next persist overwrites it.
func (m *Manager) restore() {
	snapshots, raw, skipped, err := loadRecords[Snapshot](m.store, KeyPortfolios)
	for _, e := range skipped {
		m.log.Warn().Err(e).Msg("skipping unreadable portfolio")
	}
	m.snapshots = append(m.snapshots, snapshots...)
	if err == nil && len(skipped) == 0 {
		return
	}
	if raw == nil {
		m.log.Error().Err(err).Msg("restoring portfolios, changes will not be saved")
		m.unsaved = err
		return
	}
	if err != nil {
		m.log.Error().Err(err).Msg("restoring portfolios")
	}
	if berr := m.store.Save(KeyPortfoliosBackup, raw); berr != nil {
		m.log.Error().Err(berr).Msg("keeping unreadable portfolios aside, changes will not be saved")
		m.unsaved = berr
		return
	}
	m.log.Warn().Str("key", KeyPortfoliosBackup).Msg("unreadable portfolios kept aside")
}

// Snapshots returns a copy of the saved snapshots, in creation order.
func (m *Manager) Snapshots() []Snapshot {
	out := make([]Snapshot, len(m.snapshots))
	for i, s := range m.snapshots {
		s.Tickers = cloneAllocations(s.Tickers)
		out[i] = s
	}
	return out
}

// Snapshot returns the snapshot id.
func (m *Manager) Snapshot(id string) (Snapshot, bool) {
	i := m.index(id)
	if i < 0 {
		return Snapshot{}, false
	}
	s := m.snapshots[i]
	s.Tickers = cloneAllocations(s.Tickers)
	return s, true
}

// Editing returns the id of the snapshot selected for edit, or "".
func (m *Manager) Editing() string { return m.editing }

func (m *Manager) index(id string) int {
	return slices.IndexFunc(m.snapshots, func(s Snapshot) bool { return s.ID == id })
}

// Save appends a new snapshot of the given state, then resets the editing
// state.
//
// It fails with ErrValidation if name is blank or there are no allocations.
func (m *Manager) Save(name string, total Money, allocations []Allocation) (Snapshot, error) {
	if err := ValidateName(name); err != nil {
		return Snapshot{}, err
	}
	if err := ValidateAllocations(allocations); err != nil {
		return Snapshot{}, err
	}
	s := NewSnapshot(name, total, allocations)
	m.snapshots = append(m.snapshots, s)
	m.editing = ""
	m.log.Debug().Str("id", s.ID).Str("name", s.Name).Msg("portfolio saved")
	m.persist()
	m.editor.Reset()
	return s, nil
}

// Update replaces the name, budget and allocations of the snapshot id, then
// resets the editing state. CreatedAt is kept, UpdatedAt is set to now.
//
// It fails with ErrValidation if name is blank, ErrNotFound if id is unknown.
func (m *Manager) Update(id, name string, total Money, allocations []Allocation) (Snapshot, error) {
	if err := ValidateName(name); err != nil {
		return Snapshot{}, err
	}
	i := m.index(id)
	if i < 0 {
		return Snapshot{}, fmt.Errorf("%w: portfolio %q", ErrNotFound, id)
	}
	s := &m.snapshots[i]
	s.Name = name
	s.TotalInvestment = total
	s.Tickers = cloneAllocations(allocations)
	s.UpdatedAt = now()
	if m.editing == id {
		m.editing = ""
	}
	m.log.Debug().Str("id", s.ID).Str("name", s.Name).Msg("portfolio updated")
	m.persist()
	m.editor.Reset()
	return *s, nil
}

// Commit saves the given state as the snapshot selected for edit if there is
// one, or as a new snapshot otherwise. A blank name keeps the name of the
// edited snapshot.
func (m *Manager) Commit(name string, total Money, allocations []Allocation) (Snapshot, error) {
	if m.editing == "" {
		return m.Save(name, total, allocations)
	}
	if strings.TrimSpace(name) == "" {
		if s, ok := m.Snapshot(m.editing); ok {
			name = s.Name
		}
	}
	return m.Update(m.editing, name, total, allocations)
}

// Delete removes the snapshot id. It returns false if id is unknown.
func (m *Manager) Delete(id string) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	m.snapshots = slices.Delete(m.snapshots, i, i+1)
	if m.editing == id {
		m.editing = ""
	}
	m.log.Debug().Str("id", id).Msg("portfolio deleted")
	m.persist()
	return true
}

// SelectForEdit publishes the budget and allocations of the snapshot id to
// the Bus, where the Editor adopts them. The snapshot list is not changed,
// but id is remembered so that the next Commit updates it.
func (m *Manager) SelectForEdit(id string) error {
	s, ok := m.Snapshot(id)
	if !ok {
		return fmt.Errorf("%w: portfolio %q", ErrNotFound, id)
	}
	m.editing = id
	m.persist()
	m.bus.Publish(s.Edit())
	return nil
}

// CancelEdit forgets the snapshot selected for edit, if any.
func (m *Manager) CancelEdit() {
	if m.editing == "" {
		return
	}
	m.editing = ""
	m.persist()
}

// Replace replaces the whole snapshot list. The snapshot selected for edit
// is forgotten if it is no longer in the list.
func (m *Manager) Replace(snapshots []Snapshot) {
	m.snapshots = append(make([]Snapshot, 0, len(snapshots)), snapshots...)
	if m.index(m.editing) < 0 {
		m.editing = ""
	}
	m.log.Debug().Int("portfolios", len(m.snapshots)).Msg("portfolios replaced")
	m.persist()
}

// ExportJSON writes all snapshots as a pretty printed JSON array.
func (m *Manager) ExportJSON(w io.Writer) error { return EncodeSnapshots(w, m.snapshots) }

// ExportSpreadsheet writes all snapshots as an xlsx workbook.
func (m *Manager) ExportSpreadsheet(w io.Writer) error { return EncodeSpreadsheet(w, m.snapshots) }

// ImportJSON replaces all snapshots with the JSON array read from r. On
// error the list is left untouched.
func (m *Manager) ImportJSON(r io.Reader) error {
	snapshots, err := DecodeSnapshots(r)
	if err != nil {
		return err
	}
	m.Replace(snapshots)
	return nil
}

// ImportSpreadsheet replaces all snapshots with the rows of the xlsx workbook
// read from r. On error the list is left untouched.
func (m *Manager) ImportSpreadsheet(r io.Reader) error {
	snapshots, err := DecodeSpreadsheet(r)
	if err != nil {
		return err
	}
	m.Replace(snapshots)
	return nil
}

// Import replaces all snapshots with the content of the export file
// filename, see Decode. On error the list is left untouched.
func (m *Manager) Import(filename string, r io.Reader) error {
	snapshots, err := Decode(filename, r)
	if err != nil {
		return err
	}
	m.Replace(snapshots)
	return nil
}

// Decode reads the snapshots of an export file, in the format given by the
// extension of filename: .json, or .xlsx (.xls files must be xlsx workbooks).
func Decode(filename string, r io.Reader) ([]Snapshot, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return DecodeSnapshots(r)
	case ".xlsx", ".xls":
		return DecodeSpreadsheet(r)
	}
	return nil, validationErrorf("unsupported file %q, want .json, .xlsx or .xls", filename)
}

// Export dispatches to ExportJSON or ExportSpreadsheet depending on the
// extension of filename.
func (m *Manager) Export(filename string, w io.Writer) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return m.ExportJSON(w)
	case ".xlsx":
		return m.ExportSpreadsheet(w)
	}
	return validationErrorf("unsupported file %q, want .json or .xlsx", filename)
}

// Query returns the first snapshot selected by a JSONPath expression
// evaluated on the JSON export, like `$[0]` or `$[?(@.name=="Growth")]`.
func (m *Manager) Query(path string) (Snapshot, error) {
	id, err := QuerySnapshots(m.snapshots, path)
	if err != nil {
		return Snapshot{}, err
	}
	s, ok := m.Snapshot(id)
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: portfolio %q", ErrNotFound, id)
	}
	return s, nil
}

// persist writes the snapshot list and the edited id, best effort.
func (m *Manager) persist() {
	if m.unsaved != nil {
		m.log.Error().Err(m.unsaved).Msg("persisting portfolios skipped, the stored ones were not restored")
		return
	}
	if err := saveJSON(m.store, KeyPortfolios, m.snapshots); err != nil {
		m.log.Error().Err(err).Msg("persisting portfolios")
	}
	var err error
	if m.editing == "" {
		err = removeKey(m.store, KeyEditing)
	} else {
		err = saveJSON(m.store, KeyEditing, m.editing)
	}
	if err != nil {
		m.log.Error().Err(err).Msg("persisting edited portfolio")
	}
}
