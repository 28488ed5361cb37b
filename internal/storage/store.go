// Package storage persists runs and compiled models under a data
// directory, one subdirectory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/icosim/internal/qubo"
	"github.com/san-kum/icosim/internal/sim"
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
	ID        string             `json:"id"`
	Label     string             `json:"label"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
	NumErrors int                `json:"num_errors"`
}

// Save writes a run as metadata.json plus states.csv with time and re/im
// amplitude columns per node.
func (s *Store) Save(label string, dt float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", label, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Label:     label,
		Timestamp: time.Now(),
		Dt:        dt,
		Steps:     result.StepsTaken,
		Metrics:   result.Metrics,
		NumErrors: len(result.Errors),
	}

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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.States) == 0 {
		return runID, nil
	}

	n := result.States[0].Len()
	header := []string{"time"}
	for i := 1; i <= n; i++ {
		header = append(header, fmt.Sprintf("re%d", i), fmt.Sprintf("im%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, st := range result.States {
		row := make([]string, 0, 1+2*n)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for _, a := range st.Amp {
			row = append(row,
				strconv.FormatFloat(real(a), 'g', 12, 64),
				strconv.FormatFloat(imag(a), 'g', 12, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
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

// LoadMagnitudes reads back per-node amplitude magnitudes, one series per
// node, for plotting.
func (s *Store) LoadMagnitudes(runID string) (times []float64, mags [][]float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, [][]float64{}, nil
	}

	n := (len(records[0]) - 1) / 2
	mags = make([][]float64, n)

	for _, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		for i := 0; i < n; i++ {
			re, err1 := strconv.ParseFloat(record[1+2*i], 64)
			im, err2 := strconv.ParseFloat(record[2+2*i], 64)
			if err1 != nil || err2 != nil {
				continue
			}
			mags[i] = append(mags[i], math.Hypot(re, im))
		}
	}

	return times, mags, nil
}

// SaveModel writes a compiled model as model.json under its own entry.
func (s *Store) SaveModel(label string, m *qubo.Model) (string, error) {
	id := fmt.Sprintf("%s_model_%d", label, time.Now().Unix())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	file, err := os.Create(filepath.Join(dir, "model.json"))
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return "", err
	}
	return id, nil
}

// LoadModel reads a compiled model back.
func (s *Store) LoadModel(id string) (*qubo.Model, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "model.json"))
	if err != nil {
		return nil, err
	}

	var m qubo.Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
