package autodiff

import "math"

// Operation constructors. Each one reads its operands' data, appends a new
// node holding the forward result and returns a handle to it. Operands are
// never modified. Backward formulas live in propagate (backward.go).
//
// Numeric domain violations are not errors: division by zero, log of a
// non-positive value and fractional powers of negative values produce
// Inf or NaN like the math package does.

// Add returns v + other.
func (v Value[T]) Add(other Value[T]) Value[T] {
	g := sameGraph("add", v, other)
	a, b := g.nodes[v.id].data, g.nodes[other.id].data
	return g.push(Node[T]{data: a + b, op: OpAdd, child1: v.id, child2: other.id})
}

// Mul returns v * other.
func (v Value[T]) Mul(other Value[T]) Value[T] {
	g := sameGraph("mul", v, other)
	a, b := g.nodes[v.id].data, g.nodes[other.id].data
	return g.push(Node[T]{data: a * b, op: OpMul, child1: v.id, child2: other.id})
}

// Neg returns -v, built as v * -1.
func (v Value[T]) Neg() Value[T] {
	return v.MulScalar(-1)
}

// Sub returns v - other, built as v + (-other).
func (v Value[T]) Sub(other Value[T]) Value[T] {
	return v.Add(other.Neg())
}

// Div returns v / other, built as v * other^-1.
func (v Value[T]) Div(other Value[T]) Value[T] {
	return v.Mul(other.PowInt(-1))
}

// Pow returns v^n. The exponent is a plain number and is not differentiated.
func (v Value[T]) Pow(n float64) Value[T] {
	g := v.mustGraph("pow")
	a := float64(g.nodes[v.id].data)
	return g.push(Node[T]{
		data:     T(math.Pow(a, n)),
		op:       OpPow,
		child1:   v.id,
		child2:   NoNode,
		exponent: n,
	})
}

// PowInt returns v^n for an integer exponent.
func (v Value[T]) PowInt(n int) Value[T] {
	return v.Pow(float64(n))
}

// Exp returns e^v.
func (v Value[T]) Exp() Value[T] {
	return v.unary("exp", OpExp, math.Exp)
}

// Log returns the natural logarithm of v.
func (v Value[T]) Log() Value[T] {
	return v.unary("log", OpLog, math.Log)
}

// Tanh returns the hyperbolic tangent of v, (e^2v - 1) / (e^2v + 1).
func (v Value[T]) Tanh() Value[T] {
	return v.unary("tanh", OpTanh, math.Tanh)
}

// ReLU returns max(0, v).
func (v Value[T]) ReLU() Value[T] {
	return v.unary("relu", OpReLU, relu)
}

// Sigmoid returns the logistic function 1 / (1 + e^-v).
func (v Value[T]) Sigmoid() Value[T] {
	return v.unary("sigmoid", OpSigmoid, sigmoid)
}

// AddScalar returns v + x, with x as a new leaf.
func (v Value[T]) AddScalar(x T) Value[T] {
	return v.Add(v.mustGraph("add").Leaf(x))
}

// SubScalar returns v - x, with x as a new leaf.
func (v Value[T]) SubScalar(x T) Value[T] {
	return v.Sub(v.mustGraph("sub").Leaf(x))
}

// MulScalar returns v * x, with x as a new leaf.
func (v Value[T]) MulScalar(x T) Value[T] {
	return v.Mul(v.mustGraph("mul").Leaf(x))
}

// DivScalar returns v / x, with x as a new leaf.
func (v Value[T]) DivScalar(x T) Value[T] {
	return v.Div(v.mustGraph("div").Leaf(x))
}

func (v Value[T]) unary(name string, op Op, f func(float64) float64) Value[T] {
	g := v.mustGraph(name)
	a := float64(g.nodes[v.id].data)
	return g.push(Node[T]{data: T(f(a)), op: op, child1: v.id, child2: NoNode})
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
