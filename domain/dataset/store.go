// Package dataset holds an in-memory snapshot of one generated (or uploaded)
// prison dataset: the rendered tables plus the typed inmate profiles they
// were built from. A Store is caller-owned; nothing in this package keeps
// global state.
package dataset

import (
	"sort"
	"sync"
	"time"

	"rehabengine/domain/core"
	"rehabengine/domain/inmate"
)

// Canonical table names. Every snapshot carries exactly these eight tables.
const (
	TableInmateProfiles     = "inmate_profiles"
	TableBehavioralRecords  = "behavioral_records"
	TableProgramOutcomes    = "program_outcomes"
	TableCounselingNotes    = "counseling_notes"
	TableEarlyReleaseData   = "early_release_data"
	TableIndustrialTraining = "industrial_training"
	TableHomeLeaveRecords   = "home_leave_records"
	TableRehabStations      = "rehab_stations"
)

// TableNames lists the canonical tables in render order.
var TableNames = []string{
	TableInmateProfiles,
	TableBehavioralRecords,
	TableProgramOutcomes,
	TableCounselingNotes,
	TableEarlyReleaseData,
	TableIndustrialTraining,
	TableHomeLeaveRecords,
	TableRehabStations,
}

// Table is one rendered table: a header row plus string-valued data rows.
// Rows preserve generation order.
type Table struct {
	Name    string     `json:"name"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// Hash fingerprints the table contents including row order.
func (t *Table) Hash() core.TableHash {
	return core.ComputeTableHash(t.Headers, t.Rows)
}

// Snapshot is one complete generated dataset: tables, typed profiles, and
// run metadata.
type Snapshot struct {
	RunID       core.RunID `json:"run_id"`
	Seed        int64      `json:"seed"`
	InmateCount int        `json:"inmate_count"`
	GeneratedAt time.Time  `json:"generated_at"`

	Tables      map[string]*Table               `json:"tables"`
	Profiles    []inmate.Profile                `json:"profiles"`
	Assessments []inmate.EarlyReleaseAssessment `json:"assessments"`

	byID           map[core.InmateID]*inmate.Profile
	assessmentByID map[core.InmateID]*inmate.EarlyReleaseAssessment
}

// NewSnapshot builds a snapshot and indexes profiles and assessments by
// inmate ID.
func NewSnapshot(runID core.RunID, seed int64, profiles []inmate.Profile, assessments []inmate.EarlyReleaseAssessment, tables map[string]*Table) *Snapshot {
	s := &Snapshot{
		RunID:          runID,
		Seed:           seed,
		InmateCount:    len(profiles),
		GeneratedAt:    time.Now().UTC(),
		Tables:         tables,
		Profiles:       profiles,
		Assessments:    assessments,
		byID:           make(map[core.InmateID]*inmate.Profile, len(profiles)),
		assessmentByID: make(map[core.InmateID]*inmate.EarlyReleaseAssessment, len(assessments)),
	}
	for i := range profiles {
		s.byID[profiles[i].InmateID] = &profiles[i]
	}
	for i := range assessments {
		s.assessmentByID[assessments[i].InmateID] = &assessments[i]
	}
	return s
}

// ProfileByID looks up one inmate's typed profile.
func (s *Snapshot) ProfileByID(id core.InmateID) (*inmate.Profile, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, core.NewNotFoundError("inmate", id.String())
	}
	return p, nil
}

// AssessmentByInmate looks up an inmate's early-release assessment. Inmates
// with under six months served have none.
func (s *Snapshot) AssessmentByInmate(id core.InmateID) (*inmate.EarlyReleaseAssessment, error) {
	a, ok := s.assessmentByID[id]
	if !ok {
		return nil, core.NewNotFoundError("early release assessment for inmate", id.String())
	}
	return a, nil
}

// Table returns a named table from the snapshot.
func (s *Snapshot) Table(name string) (*Table, error) {
	t, ok := s.Tables[name]
	if !ok {
		return nil, core.NewNotFoundError("table", name)
	}
	return t, nil
}

// Summary reports per-table row counts keyed by table name.
func (s *Snapshot) Summary() map[string]int {
	out := make(map[string]int, len(s.Tables))
	for name, t := range s.Tables {
		out[name] = t.RowCount()
	}
	return out
}

// Store keeps named snapshots. It is safe for concurrent use and owned by
// whoever constructs it; handlers receive it by injection.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
	current   string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{snapshots: make(map[string]*Snapshot)}
}

// Put saves a snapshot under a name and makes it the current one.
func (st *Store) Put(name string, s *Snapshot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.snapshots[name] = s
	st.current = name
}

// Get returns a snapshot by name.
func (st *Store) Get(name string) (*Snapshot, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.snapshots[name]
	if !ok {
		return nil, core.NewNotFoundError("dataset", name)
	}
	return s, nil
}

// Current returns the most recently stored snapshot.
func (st *Store) Current() (*Snapshot, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.current == "" {
		return nil, core.ErrDatasetNotFound
	}
	return st.snapshots[st.current], nil
}

// Names lists stored snapshot names sorted for stable output.
func (st *Store) Names() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	names := make([]string, 0, len(st.snapshots))
	for n := range st.snapshots {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Delete removes a snapshot. Deleting the current snapshot clears currency.
func (st *Store) Delete(name string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.snapshots[name]; !ok {
		return core.NewNotFoundError("dataset", name)
	}
	delete(st.snapshots, name)
	if st.current == name {
		st.current = ""
	}
	return nil
}
