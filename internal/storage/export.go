package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	ID         string      `json:"id"`
	Preset     string      `json:"preset"`
	Integrator string      `json:"integrator"`
	Falloff    string      `json:"falloff"`
	Dt         float64     `json:"dt"`
	Duration   float64     `json:"duration"`
	Steps      int         `json:"steps"`
	Columns    []string    `json:"columns"`
	Samples    [][]float64 `json:"samples"`
	Dominant   []string    `json:"dominant"`
}

// ExportJSON writes a loaded run to w as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, samples [][]float64, dominant []string) error {
	data := ExportData{
		ID:         meta.ID,
		Preset:     meta.Preset,
		Integrator: meta.Integrator,
		Falloff:    meta.Falloff,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Steps:      len(samples),
		Columns:    sampleHeader[:len(sampleHeader)-1],
		Samples:    samples,
		Dominant:   dominant,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
