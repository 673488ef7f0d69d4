package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/rampsim/internal/sim"
)

type ExportData struct {
	Meta    RunMetadata        `json:"meta"`
	Frames  []sim.Frame        `json:"frames"`
	Metrics map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta RunMetadata, frames []sim.Frame) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Meta: meta, Frames: frames, Metrics: meta.Metrics})
}
