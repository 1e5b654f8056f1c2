// Package scenario holds reference computations with known results, used by
// the CLI demo and as end-to-end checks of the engine.
package scenario

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/picograd-ml/picograd/internal/autodiff"
)

// ErrUnknown is returned for a scenario name that is not registered.
var ErrUnknown = errors.New("unknown scenario")

// Scenario names.
const (
	ChainedReLU = "chained-relu"
	Composed    = "composed"
	MoreOps     = "more-ops"
	Log         = "log"
)

var descriptions = map[string]string{
	ChainedReLU: "shared sub-expressions through relu, one named value per step",
	Composed:    "same topology as chained-relu, composed inline",
	MoreOps:     "pow, relu, compound assignment and division",
	Log:         "natural logarithm",
}

// Names returns every scenario name in run order.
func Names() []string {
	return []string{ChainedReLU, Composed, MoreOps, Log}
}

// Describe returns the one-line description of a scenario.
func Describe(name string) (string, error) {
	d, ok := descriptions[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return d, nil
}

// Check is one expected-vs-actual comparison.
type Check struct {
	Name string
	Want float64
	Got  float64
}

// Pass reports whether Got is within tolerance of Want.
func (c Check) Pass(tolerance float64) bool {
	return math.Abs(c.Got-c.Want) <= tolerance
}

// Result is the outcome of one scenario run.
type Result struct {
	Name   string
	Output string // final value, rendered
	Nodes  int    // nodes in the graph after the run
	Checks []Check
	Graph  string // only set when Options.Graph is true
}

// Passed reports whether every check is within tolerance.
func (r Result) Passed(tolerance float64) bool {
	for _, c := range r.Checks {
		if !c.Pass(tolerance) {
			return false
		}
	}
	return true
}

// Options configures a run.
type Options struct {
	// Graph renders the final value's ancestor tree into Result.Graph.
	Graph bool
	// Logger receives the engine's Debug tracing. Nil means slog.Default().
	Logger *slog.Logger
}

// Run builds the named scenario in a fresh graph of element type T, runs
// backward on its final value and compares the results to known values.
func Run[T autodiff.Float](name string, opts Options) (Result, error) {
	g := autodiff.NewGraph[T](autodiff.WithLogger(opts.Logger))

	var (
		out    autodiff.Value[T]
		checks func() []Check
	)
	switch name {
	case ChainedReLU:
		out, checks = chainedReLU(g)
	case Composed:
		out, checks = composed(g)
	case MoreOps:
		out, checks = moreOps(g)
	case Log:
		out, checks = logScenario(g)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknown, name)
	}

	out.Backward()

	res := Result{
		Name:   name,
		Output: out.String(),
		Nodes:  g.Len(),
		Checks: checks(),
	}
	if opts.Graph {
		res.Graph = out.GraphString()
	}
	return res, nil
}

func chainedReLU[T autodiff.Float](g *autodiff.Graph[T]) (autodiff.Value[T], func() []Check) {
	x := g.Leaf(-4)
	x2 := g.Leaf(2)
	x3 := g.Leaf(2)

	zx1 := x3.Mul(x)
	z1 := zx1.Add(x2)
	z2 := z1.Add(x)
	zRelu := z2.ReLU()
	zx2 := z2.Mul(x)
	q := zRelu.Add(zx2)
	h := z2.Mul(z2).ReLU()
	qx := q.Mul(x)
	y := h.Add(q).Add(qx)

	return y, func() []Check {
		return []Check{
			{Name: "x.data", Want: -4, Got: x.Float64()},
			{Name: "y.data", Want: -20, Got: y.Float64()},
			{Name: "x.grad", Want: 46, Got: float64(x.Grad())},
		}
	}
}

func composed[T autodiff.Float](g *autodiff.Graph[T]) (autodiff.Value[T], func() []Check) {
	x := g.Leaf(-4)
	z := g.Leaf(2).Mul(x).AddScalar(2).Add(x)
	q := z.ReLU().Add(z.Mul(x))
	h := z.Mul(z).ReLU()
	y := h.Add(q).Add(q.Mul(x))

	return y, func() []Check {
		return []Check{
			{Name: "x.data", Want: -4, Got: x.Float64()},
			{Name: "y.data", Want: -20, Got: y.Float64()},
			{Name: "x.grad", Want: 46, Got: float64(x.Grad())},
		}
	}
}

func moreOps[T autodiff.Float](g *autodiff.Graph[T]) (autodiff.Value[T], func() []Check) {
	a := g.Leaf(-4)
	b := g.Leaf(2)

	c := a.Add(b)
	d := a.Mul(b).Add(b.PowInt(3))
	c.AddAssign(c.AddScalar(1))
	c.AddAssign(g.Leaf(1).Add(c).Add(a.Neg()))
	d.AddAssign(d.MulScalar(2).Add(b.Add(a).ReLU()))
	d.AddAssign(g.Leaf(3).Mul(d).Add(b.Sub(a).ReLU()))
	e := c.Sub(d)
	f := e.PowInt(2)
	out := f.DivScalar(2)
	out.AddAssign(g.Leaf(10).Div(f))

	return out, func() []Check {
		return []Check{
			{Name: "g.data", Want: 24.70408163265306, Got: out.Float64()},
			{Name: "a.grad", Want: 138.83381924198252, Got: float64(a.Grad())},
			{Name: "b.grad", Want: 645.5772594752186, Got: float64(b.Grad())},
		}
	}
}

func logScenario[T autodiff.Float](g *autodiff.Graph[T]) (autodiff.Value[T], func() []Check) {
	a := g.Leaf(7)
	b := a.Log()

	return b, func() []Check {
		return []Check{
			{Name: "a.grad", Want: 1.0 / 7.0, Got: float64(a.Grad())},
		}
	}
}
