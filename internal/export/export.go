// Package export serializes trajectories and compiled models for external
// visualization and optimization collaborators.
package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/icosim/internal/qubo"
	"github.com/san-kum/icosim/internal/sim"
)

// ResultData is the JSON shape of a run: amplitudes and shadows as
// [re, im] pairs per node per snapshot.
type ResultData struct {
	Label   string             `json:"label"`
	Dt      float64            `json:"dt"`
	Steps   int                `json:"steps"`
	Times   []float64          `json:"times"`
	Amps    [][][2]float64     `json:"amplitudes"`
	Shadows [][][2]float64     `json:"shadows"`
	Metrics map[string]float64 `json:"metrics"`
	Errors  []string           `json:"errors,omitempty"`
}

// Result writes a run as indented JSON.
func Result(w io.Writer, label string, dt float64, result *sim.Result) error {
	data := ResultData{
		Label:   label,
		Dt:      dt,
		Steps:   result.StepsTaken,
		Times:   result.Times,
		Amps:    make([][][2]float64, len(result.States)),
		Shadows: make([][][2]float64, len(result.States)),
		Metrics: result.Metrics,
	}

	for i, st := range result.States {
		data.Amps[i] = pairs(st.Amp)
		data.Shadows[i] = pairs(st.Shadow)
	}
	for _, err := range result.Errors {
		data.Errors = append(data.Errors, err.Error())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ResultFile writes a run to a file path.
func ResultFile(path, label string, dt float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return Result(file, label, dt, result)
}

// Model writes a compiled QUBO model as indented JSON.
func Model(w io.Writer, m *qubo.Model) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

func pairs(vals []complex128) [][2]float64 {
	out := make([][2]float64, len(vals))
	for i, v := range vals {
		out[i] = [2]float64{real(v), imag(v)}
	}
	return out
}
