package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/eggdive/internal/dive"
	"github.com/san-kum/eggdive/internal/dynamo"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
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
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Timestamp      time.Time `json:"timestamp"`
	Integrator     string    `json:"integrator"`
	Dt             float64   `json:"dt"`
	Duration       float64   `json:"duration"`
	Steps          int       `json:"steps"`
	Height         float64   `json:"height"`
	Width          float64   `json:"width"`
	GrooveAngle    float64   `json:"groove_angle"`
	GrooveCount    float64   `json:"groove_count"`
	EggDensity     float64   `json:"egg_density"`
	GrooveDepth    float64   `json:"groove_depth"`
	Drag           float64   `json:"drag"`
	FluidDensity   float64   `json:"fluid_density"`
	SurfaceTension float64   `json:"surface_tension"`
	ContactAngle   float64   `json:"contact_angle"`
	Depth          float64   `json:"depth"`
	Error          string    `json:"error,omitempty"`
}

// NewRunMetadata fills the parameter fields of a run record.
func NewRunMetadata(name, integrator string, p dive.Params, env dive.Environment) RunMetadata {
	return RunMetadata{
		Name:           name,
		Integrator:     integrator,
		Dt:             env.Step.Dt,
		Duration:       env.Step.Total,
		Height:         p.Height,
		Width:          p.Width,
		GrooveAngle:    p.GrooveAngle,
		GrooveCount:    p.GrooveCount,
		EggDensity:     p.EggDensity,
		GrooveDepth:    p.GrooveDepth,
		Drag:           env.Fluid.Drag,
		FluidDensity:   env.Fluid.Density,
		SurfaceTension: env.Fluid.SurfaceTension,
		ContactAngle:   env.Fluid.ContactAngle,
	}
}

// Save writes the metadata and trajectory under a new run id and returns
// the id.
func (s *Store) Save(meta RunMetadata, tr dynamo.Trajectory) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Steps = len(tr)

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteTrajectoryCSV(csvFile, tr); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteTrajectoryCSV writes a time,y,v header followed by one row per
// sample.
func WriteTrajectoryCSV(w io.Writer, tr dynamo.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "y", "v"}); err != nil {
		return err
	}
	for _, smp := range tr {
		row := []string{
			strconv.FormatFloat(smp.T, 'g', -1, 64),
			strconv.FormatFloat(smp.Y, 'g', -1, 64),
			strconv.FormatFloat(smp.V, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (dynamo.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return dynamo.Trajectory{}, nil
	}

	tr := make(dynamo.Trajectory, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [3]float64
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", trajectoryFile, i+2, err)
			}
			vals[j] = v
		}
		tr = append(tr, dynamo.Sample{T: vals[0], Y: vals[1], V: vals[2]})
	}
	return tr, nil
}
