// Package storage persists probe runs: metadata as JSON, trajectory samples
// as CSV, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/ringfield/internal/probe"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Preset     string    `json:"preset"`
	Timestamp  time.Time `json:"timestamp"`
	Dt         float64   `json:"dt"`
	Duration   float64   `json:"duration"`
	Integrator string    `json:"integrator"`
	Falloff    string    `json:"falloff"`
	Segments   int       `json:"segments"`
}

var sampleHeader = []string{
	"time", "px", "py", "pz", "vx", "vy", "vz",
	"gx", "gy", "gz", "influence", "surface_distance", "dominant",
}

// Save writes one probe run under a fresh id and returns it.
func (s *Store) Save(meta RunMetadata, result *probe.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Preset, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(sampleHeader); err != nil {
		return "", err
	}
	for _, st := range result.Steps {
		if err := w.Write(sampleRow(st)); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func sampleRow(st probe.Step) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	return []string{
		f(st.Time),
		f(st.State.Position.X), f(st.State.Position.Y), f(st.State.Position.Z),
		f(st.State.Velocity.X), f(st.State.Velocity.Y), f(st.State.Velocity.Z),
		f(st.Gravity.Acceleration.X), f(st.Gravity.Acceleration.Y), f(st.Gravity.Acceleration.Z),
		f(st.Gravity.Influence),
		f(st.Gravity.DistanceFromSurface),
		st.Dominant,
	}
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads a run's trajectory back as raw numeric columns plus the
// dominant-segment column.
func (s *Store) LoadSamples(runID string) ([][]float64, []string, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("storage: run %s has no samples", runID)
	}

	numeric := len(sampleHeader) - 1
	samples := make([][]float64, 0, len(rows)-1)
	dominant := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(sampleHeader) {
			return nil, nil, fmt.Errorf("storage: run %s has a malformed row", runID)
		}
		vals := make([]float64, numeric)
		for i := 0; i < numeric; i++ {
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				return nil, nil, err
			}
			vals[i] = v
		}
		samples = append(samples, vals)
		dominant = append(dominant, row[numeric])
	}
	return samples, dominant, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}
