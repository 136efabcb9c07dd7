package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/eggdive/internal/dynamo"
)

type ExportData struct {
	Run        RunMetadata `json:"run"`
	Times      []float64   `json:"times"`
	Positions  []float64   `json:"positions"`
	Velocities []float64   `json:"velocities"`
}

func ExportJSON(w io.Writer, meta RunMetadata, tr dynamo.Trajectory) error {
	data := ExportData{
		Run:        meta,
		Times:      tr.Times(),
		Positions:  tr.Positions(),
		Velocities: tr.Velocities(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
