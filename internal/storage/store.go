// Package storage persists completed runs under a data directory, one
// subdirectory per run: metadata.json plus frames.csv with per-body
// position and velocity columns.
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

	"github.com/CDE90/physics-simulation/internal/sim"
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
	ID            string             `json:"id"`
	Scenario      string             `json:"scenario"`
	Mode          string             `json:"mode"`
	Timestamp     time.Time          `json:"timestamp"`
	FPS           int                `json:"fps"`
	StepsPerFrame int                `json:"steps_per_frame"`
	Duration      float64            `json:"duration"`
	NumBodies     int                `json:"num_bodies"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Save persists metadata and recorded frames, returning the run id.
func (s *Store) Save(scenario, mode string, fps, stepsPerFrame int, duration float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	numBodies := 0
	if len(result.Frames) > 0 {
		numBodies = len(result.Frames[0].Bodies)
	}

	meta := RunMetadata{
		ID:            runID,
		Scenario:      scenario,
		Mode:          mode,
		Timestamp:     time.Now(),
		FPS:           fps,
		StepsPerFrame: stepsPerFrame,
		Duration:      duration,
		NumBodies:     numBodies,
		Metrics:       result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	if err := s.writeFrames(filepath.Join(runDir, "frames.csv"), result.Frames); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *Store) writeFrames(path string, frames []sim.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if len(frames) == 0 {
		return nil
	}

	header := []string{"time"}
	for i := range frames[0].Bodies {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, frame := range frames {
		row := []string{strconv.FormatFloat(frame.Time, 'f', 6, 64)}
		for _, b := range frame.Bodies {
			row = append(row,
				strconv.FormatFloat(b.X, 'f', 6, 64),
				strconv.FormatFloat(b.Y, 'f', 6, 64),
				strconv.FormatFloat(b.VX, 'f', 6, 64),
				strconv.FormatFloat(b.VY, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	return &meta, nil
}

// List returns all run metadata, newest first.
func (s *Store) List() ([]*RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []*RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// LoadFrames reads a run's frame data back from CSV.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	numBodies := (len(records[0]) - 1) / 4
	frames := make([]sim.Frame, 0, len(records)-1)

	for idx, rec := range records[1:] {
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: run %s row %d: %w", runID, idx+1, err)
		}

		frame := sim.Frame{Index: idx, Time: t, Bodies: make([]sim.BodyState, numBodies)}
		for i := 0; i < numBodies; i++ {
			vals := make([]float64, 4)
			for j := 0; j < 4; j++ {
				v, err := strconv.ParseFloat(rec[1+i*4+j], 64)
				if err != nil {
					return nil, fmt.Errorf("storage: run %s row %d: %w", runID, idx+1, err)
				}
				vals[j] = v
			}
			frame.Bodies[i] = sim.BodyState{X: vals[0], Y: vals[1], VX: vals[2], VY: vals[3]}
		}
		frames = append(frames, frame)
	}

	return frames, nil
}

// ExportJSON writes a run's metadata and frames as a single JSON document.
func (s *Store) ExportJSON(runID, outPath string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	return writeJSON(outPath, struct {
		Metadata *RunMetadata `json:"metadata"`
		Frames   []sim.Frame  `json:"frames"`
	}{meta, frames})
}
