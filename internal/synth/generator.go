// Package synth generates the synthetic correlated rehabilitation dataset:
// inmate profiles plus seven related tables. All sampling flows through one
// seeded source, so a given (seed, count) pair always produces byte-identical
// tables.
package synth

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"rehabengine/domain/core"
	"rehabengine/domain/dataset"
)

// Config controls one generation run.
type Config struct {
	Inmates int
	Seed    int64
	// Now anchors every generated date. Fixing it (instead of calling
	// time.Now per record) keeps runs with the same seed identical.
	Now time.Time

	AvgIncidentsPerInmate float64
	AvgNotesPerInmate     int
}

// DefaultConfig returns the standard generation parameters.
func DefaultConfig() Config {
	return Config{
		Inmates:               1000,
		Seed:                  42,
		Now:                   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		AvgIncidentsPerInmate: 3,
		AvgNotesPerInmate:     8,
	}
}

// Generator produces one dataset snapshot. Each Generator owns its random
// stream; concurrent runs construct separate Generators.
type Generator struct {
	cfg Config
	s   *sampler
}

// New creates a generator for the given config.
func New(cfg Config) (*Generator, error) {
	if cfg.Inmates <= 0 {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidCount, cfg.Inmates)
	}
	if cfg.Now.IsZero() {
		cfg.Now = DefaultConfig().Now
	}
	if cfg.AvgIncidentsPerInmate <= 0 {
		cfg.AvgIncidentsPerInmate = DefaultConfig().AvgIncidentsPerInmate
	}
	if cfg.AvgNotesPerInmate <= 0 {
		cfg.AvgNotesPerInmate = DefaultConfig().AvgNotesPerInmate
	}
	return &Generator{cfg: cfg, s: newSampler(cfg.Seed)}, nil
}

// GenerateAll produces the complete snapshot: profiles first, then every
// related table. Child generators read profiles and never mutate them; child
// inmate_id values can only come from profile rows.
func (g *Generator) GenerateAll() (*dataset.Snapshot, error) {
	profiles := g.generateProfiles()
	incidents := g.generateBehavioralRecords(profiles)
	outcomes := g.generateProgramOutcomes(profiles)
	notes := g.generateCounselingNotes(profiles)
	assessments := g.generateEarlyReleaseAssessments(profiles)
	trainings := g.generateIndustrialTraining(profiles)
	leaves := g.generateHomeLeaveRecords(profiles)
	stations := g.generateRehabStations()

	tables := map[string]*dataset.Table{
		dataset.TableInmateProfiles:     renderProfiles(profiles),
		dataset.TableBehavioralRecords:  renderBehavioralRecords(incidents),
		dataset.TableProgramOutcomes:    renderProgramOutcomes(outcomes),
		dataset.TableCounselingNotes:    renderCounselingNotes(notes),
		dataset.TableEarlyReleaseData:   renderEarlyReleases(assessments),
		dataset.TableIndustrialTraining: renderIndustrialTraining(trainings),
		dataset.TableHomeLeaveRecords:   renderHomeLeaves(leaves),
		dataset.TableRehabStations:      renderRehabStations(stations),
	}

	runID := core.RunID(core.NewID())
	snap := dataset.NewSnapshot(runID, g.cfg.Seed, profiles, assessments, tables)
	return snap, nil
}

// daysAgo returns a date the given number of days before the run anchor.
func (g *Generator) daysAgo(days int) time.Time {
	return g.cfg.Now.AddDate(0, 0, -days)
}

func fToStr(x float64, decimals int) string {
	p := math.Pow10(decimals)
	x = math.Round(x*p) / p
	return strconv.FormatFloat(x, 'f', decimals, 64)
}

func iToStr(x int) string {
	return strconv.Itoa(x)
}

func bToStr(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func dToStr(t time.Time) string {
	return t.Format("2006-01-02")
}

func dPtrToStr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return dToStr(*t)
}
