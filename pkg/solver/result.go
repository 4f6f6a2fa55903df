package solver

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Result is the outcome of one Solve call.
type Result struct {
	// Potentials holds the unrounded potential of each Air cell at (x, y).
	// Entries of Metal cells are 0.
	Potentials *mat.Dense
	Precision  Precision
	Sources    int // Metal cells in the snapshot
	AirCells   int
	Elapsed    time.Duration

	air []bool // indexed x*size + y
}

// Stats summarises the Air potentials of a result.
type Stats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// At returns the unrounded potential at (x, y).
func (r *Result) At(x, y int) float64 {
	return r.Potentials.At(x, y)
}

// AirValues returns the potentials of all Air cells in storage order.
func (r *Result) AirValues() []float64 {
	size, _ := r.Potentials.Dims()
	values := make([]float64, 0, r.AirCells)
	for idx, isAir := range r.air {
		if isAir {
			values = append(values, r.Potentials.At(idx/size, idx%size))
		}
	}
	return values
}

// Stats returns min, max and mean over the Air cells. A grid without Air
// cells yields the zero Stats.
func (r *Result) Stats() Stats {
	values := r.AirValues()
	if len(values) == 0 {
		return Stats{}
	}
	return Stats{
		Min:  floats.Min(values),
		Max:  floats.Max(values),
		Mean: floats.Sum(values) / float64(len(values)),
	}
}
