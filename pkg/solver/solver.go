// Package solver computes the potential of every Air cell of a field grid by
// superposing inverse-distance contributions of all Metal cells:
//
//	potential(x,y) = Σ voltage(i,j) / distance((x,y), (i,j))
//
// This is a brute-force point-charge heuristic, not a PDE solver: there is no
// ε₀ normalisation and no boundary handling. Cost is O(cells × metal cells).
//
// # Snapshot semantics
//
// All Metal voltages are read into a snapshot before any value is computed,
// results go into a separate buffer, and the buffer is written into the grid
// in a single pass at the end. The outcome is independent of the order cells
// are visited in, which is what allows rows to be computed by several
// workers.
//
// # Precision
//
// With Truncate (the default) every term is truncated toward zero before it
// is added, so all arithmetic stays integral after the division. The
// accumulated rounding bias is a known quantization artifact. Float sums the
// terms in float64 and truncates once when the result is stored in the grid.
// Result.Potentials always exposes the unrounded sum of the chosen policy.
package solver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/OpenTraceLab/OpenTraceField/internal/ctxlog"
	"github.com/OpenTraceLab/OpenTraceField/pkg/field"
	"github.com/OpenTraceLab/OpenTraceField/pkg/geometry"
)

// Precision selects how contributions are accumulated.
type Precision int

const (
	// Truncate truncates each term to an integer before summing.
	Truncate Precision = iota
	// Float sums terms in floating point and truncates once at the end.
	Float
)

func (p Precision) String() string {
	switch p {
	case Truncate:
		return "truncate"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// ParsePrecision parses "truncate" or "float" (case-insensitive).
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "truncate", "int", "integer":
		return Truncate, nil
	case "float", "float64":
		return Float, nil
	default:
		return 0, fmt.Errorf("unknown precision %q (want truncate or float)", s)
	}
}

// Options configures a Solver.
type Options struct {
	Precision Precision
	// Workers bounds the number of rows computed concurrently.
	// Zero or negative means runtime.GOMAXPROCS(0).
	Workers int
}

// Solver computes potentials for field grids.
type Solver struct {
	opts Options
}

// New creates a solver with the given options.
func New(opts Options) *Solver {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Solver{opts: opts}
}

// Options returns the effective options.
func (s *Solver) Options() Options {
	return s.opts
}

// Solve computes the potential of every Air cell of g with default options.
func Solve(g *field.Grid) (*Result, error) {
	return New(Options{}).Solve(context.Background(), g)
}

// Solve computes the potential of every Air cell of g and stores it in the
// grid. If ctx is cancelled before all rows are done the grid is left
// unchanged and the context error is returned.
func (s *Solver) Solve(ctx context.Context, g *field.Grid) (*Result, error) {
	if g == nil {
		return nil, errors.New("solver: nil grid")
	}
	return s.solve(ctx, g, rowMajor(g.Size()))
}

// rowMajor returns all cell indices of a size x size grid in storage order.
func rowMajor(size int) []int {
	order := make([]int, size*size)
	for i := range order {
		order[i] = i
	}
	return order
}

// solve visits cells in the given order, split into chunks of one grid row
// length. order must be a permutation of all cell indices.
func (s *Solver) solve(ctx context.Context, g *field.Grid, order []int) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	size := g.Size()
	cells := g.Cells()
	sources := g.MetalSources()

	res := &Result{
		Potentials: mat.NewDense(size, size, nil),
		Precision:  s.opts.Precision,
		Sources:    len(sources),
		air:        make([]bool, len(cells)),
	}
	for i, c := range cells {
		if c.Kind == field.Air {
			res.air[i] = true
			res.AirCells++
		}
	}

	logger.Debug("solving field",
		"size", size,
		"sources", res.Sources,
		"air_cells", res.AirCells,
		"precision", s.opts.Precision.String(),
		"workers", s.opts.Workers)

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.opts.Workers)

	for lo := 0; lo < len(order); lo += size {
		chunk := order[lo:min(lo+size, len(order))]
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			for _, idx := range chunk {
				if !res.air[idx] {
					continue
				}
				p := geometry.Point{X: idx / size, Y: idx % size}
				res.Potentials.Set(p.X, p.Y, potentialAt(p, sources, s.opts.Precision))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		logger.Warn("solve aborted", "error", err)
		return nil, err
	}
	// errgroup only reports errors returned by the workers
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Swap the finished buffer into the grid
	out := make([]int, len(cells))
	for idx := range out {
		if res.air[idx] {
			out[idx] = int(res.Potentials.At(idx/size, idx%size))
		}
	}
	if err := g.ReplacePotentials(out); err != nil {
		return nil, fmt.Errorf("storing potentials: %w", err)
	}

	res.Elapsed = time.Since(start)
	logger.Debug("field solved", "elapsed", res.Elapsed)
	return res, nil
}

// potentialAt sums the contributions of all sources at p. A source that
// coincides with p contributes nothing.
func potentialAt(p geometry.Point, sources []field.MetalSource, precision Precision) float64 {
	if precision == Float {
		sum := 0.0
		for _, src := range sources {
			if src.Point == p {
				continue
			}
			sum += float64(src.Voltage) / p.Distance(src.Point)
		}
		return sum
	}

	sum := 0
	for _, src := range sources {
		if src.Point == p {
			continue
		}
		// Conversion truncates toward zero
		sum += int(float64(src.Voltage) / p.Distance(src.Point))
	}
	return float64(sum)
}
