package autodiff

import (
	"log/slog"
	"math"
)

// Backward computes the gradient of v with respect to every node it depends on.
//
// Algorithm:
//  1. Order v's ancestors (v included) so every node follows its children
//  2. Set v's gradient to 1
//  3. Walk the order in reverse and let each non-leaf node add its local
//     derivatives, scaled by its own gradient, into its children
//
// Gradients accumulate. Calling Backward twice without ZeroGrad adds the
// second pass on top of the first for every node below v.
//
// Panics if v has no node.
func (v Value[T]) Backward() {
	v.node("backward")
	g := v.graph
	order := g.topoOrder(v.id)

	if g.debugEnabled() {
		g.logger.Debug("backward",
			slog.Int("target", int(v.id)),
			slog.Int("nodes", len(order)),
		)
	}

	g.nodes[v.id].grad = 1
	for i := len(order) - 1; i >= 0; i-- {
		g.propagate(order[i])
	}
}

// TopologicalOrder returns the ids of v and all of its ancestors, each one
// after its children.
func (v Value[T]) TopologicalOrder() []NodeID {
	v.node("topological order")
	return v.graph.topoOrder(v.id)
}

// ZeroGrad sets the gradient of v and all of its ancestors to 0.
func (v Value[T]) ZeroGrad() {
	v.node("zero grad")
	for _, id := range v.graph.topoOrder(v.id) {
		v.graph.nodes[id].grad = 0
	}
}

// topoOrder is a post-order DFS from root: first child's subtree, then the
// second child's, then the node. It uses an explicit stack so long chains
// cannot exhaust the goroutine stack.
func (g *Graph[T]) topoOrder(root NodeID) []NodeID {
	type frame struct {
		id       NodeID
		expanded bool
	}

	// Children always have smaller ids than their parents.
	visited := make([]bool, root+1)
	order := make([]NodeID, 0, root+1)
	stack := []frame{{id: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.expanded {
			order = append(order, top.id)
			continue
		}
		if visited[top.id] {
			continue
		}
		visited[top.id] = true

		n := &g.nodes[top.id]
		stack = append(stack, frame{id: top.id, expanded: true})
		// Pushed in reverse so child1 is resolved first.
		if n.child2 != NoNode && !visited[n.child2] {
			stack = append(stack, frame{id: n.child2})
		}
		if n.child1 != NoNode && !visited[n.child1] {
			stack = append(stack, frame{id: n.child1})
		}
	}
	return order
}

// propagate adds the local derivatives of node id, scaled by its gradient,
// into its children's gradients.
func (g *Graph[T]) propagate(id NodeID) {
	n := &g.nodes[id]
	if n.op == OpLeaf {
		return
	}

	grad := n.grad
	a := &g.nodes[n.child1]

	switch n.op {
	case OpAdd:
		b := &g.nodes[n.child2]
		a.grad += grad
		b.grad += grad
	case OpMul:
		b := &g.nodes[n.child2]
		ad, bd := a.data, b.data
		a.grad += grad * bd
		b.grad += grad * ad
	case OpPow:
		e := n.exponent
		a.grad += grad * T(e*math.Pow(float64(a.data), e-1))
	case OpExp:
		a.grad += grad * n.data
	case OpLog:
		a.grad += grad * (1 / a.data)
	case OpTanh:
		a.grad += grad * (1 - n.data*n.data)
	case OpReLU:
		var step T
		if a.data > 0 {
			step = 1
		}
		a.grad += grad * step
	case OpSigmoid:
		a.grad += grad * n.data * (1 - n.data)
	default:
		panic("backward: unknown op " + n.op.String())
	}

	if g.debugEnabled() {
		g.logger.Debug("propagate",
			slog.Int("id", int(id)),
			slog.String("op", n.op.String()),
			slog.Float64("grad", float64(grad)),
		)
	}
}
