package autodiff_test

import (
	"testing"

	"github.com/picograd-ml/picograd/internal/autodiff"
	"github.com/stretchr/testify/assert"
)

// numericalGradient computes df/dx with central finite differences.
func numericalGradient(f func(float64) float64, x, epsilon float64) float64 {
	return (f(x+epsilon) - f(x-epsilon)) / (2 * epsilon)
}

// evalAt builds build(x) in a fresh graph and returns its data.
func evalAt(build func(autodiff.Value[float64]) autodiff.Value[float64]) func(float64) float64 {
	return func(x float64) float64 {
		g := autodiff.NewGraph[float64]()
		return build(g.Leaf(x)).Data()
	}
}

// TestNumericalGradient compares backward against finite differences for
// every operation, alone and composed.
func TestNumericalGradient(t *testing.T) {
	const epsilon = 1e-6

	tests := []struct {
		name  string
		x     float64
		build func(autodiff.Value[float64]) autodiff.Value[float64]
	}{
		{"exp", 0.4, autodiff.Value[float64].Exp},
		{"log", 2.5, autodiff.Value[float64].Log},
		{"tanh", -0.8, autodiff.Value[float64].Tanh},
		{"relu", 1.3, autodiff.Value[float64].ReLU},
		{"sigmoid", -1.2, autodiff.Value[float64].Sigmoid},
		{"sigmoid large", 6, autodiff.Value[float64].Sigmoid},
		{"pow float", 1.7, func(v autodiff.Value[float64]) autodiff.Value[float64] { return v.Pow(2.5) }},
		{"pow negative int", -1.5, func(v autodiff.Value[float64]) autodiff.Value[float64] { return v.PowInt(-3) }},
		{"div", 0.9, func(v autodiff.Value[float64]) autodiff.Value[float64] {
			return v.AddScalar(1).Div(v.Mul(v).AddScalar(2))
		}},
		{"neuron", 0.35, func(v autodiff.Value[float64]) autodiff.Value[float64] {
			w := v.Graph().Leaf(-1.4)
			b := v.Graph().Leaf(0.2)
			return v.Mul(w).Add(b).Tanh().Sub(v.Sigmoid()).PowInt(2)
		}},
		{"log-sum-exp", 0.6, func(v autodiff.Value[float64]) autodiff.Value[float64] {
			return v.Exp().Add(v.MulScalar(2).Exp()).Log()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := autodiff.NewGraph[float64]()
			x := g.Leaf(tt.x)
			y := tt.build(x)
			y.Backward()

			want := numericalGradient(evalAt(tt.build), tt.x, epsilon)
			assert.InDelta(t, want, x.Grad(), 1e-5,
				"autodiff grad %v differs from numerical grad %v", x.Grad(), want)
		})
	}
}
