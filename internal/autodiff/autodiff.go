// Package autodiff implements reverse-mode automatic differentiation over scalars.
//
// Every operation on a Value eagerly appends a Node to the Value's Graph.
// The Graph is an append-only arena: a Node only ever references nodes that
// were created before it, so the arena is a DAG by construction and a child
// always has a smaller NodeID than its parent.
//
// Architecture:
//   - Graph[T]: arena that owns every Node for its whole lifetime
//   - Value[T]: copyable handle (graph pointer + index); copies alias one Node
//   - Op: closed set of operation tags; forward and backward formulas are
//     dispatched on the tag, no closures are stored per node
//   - Backward: iterative post-order DFS, then a reverse replay that adds
//     each node's local derivatives into its children's gradients
//
// Usage:
//
//	g := autodiff.NewGraph[float64]()
//	x := g.Leaf(-4)
//	y := x.Mul(x).AddScalar(3) // y = x² + 3
//
//	y.Backward()
//	fmt.Println(x.Grad()) // dy/dx = 2x = -8
//
// Gradients are never reset implicitly. A second Backward on the same graph
// adds on top of the previous gradients; call ZeroGrad first for a fresh pass.
//
// A Graph is not safe for concurrent use.
package autodiff

import (
	"context"
	"log/slog"
)

// Float is the constraint for node element types.
type Float interface {
	~float32 | ~float64
}

// Graph is the arena that owns every Node created by operations on its values.
type Graph[T Float] struct {
	nodes      []Node[T]
	generation uint32
	logger     *slog.Logger
}

type graphOptions struct {
	logger   *slog.Logger
	capacity int
}

// Option configures a Graph.
type Option func(*graphOptions)

// WithLogger sets the logger used for forward/backward tracing at Debug level.
// A nil logger means slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *graphOptions) {
		o.logger = logger
	}
}

// WithCapacity pre-allocates room for n nodes.
func WithCapacity(n int) Option {
	return func(o *graphOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// NewGraph creates an empty graph.
func NewGraph[T Float](opts ...Option) *Graph[T] {
	o := graphOptions{capacity: 64}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Graph[T]{
		nodes:  make([]Node[T], 0, o.capacity),
		logger: o.logger,
	}
}

// Leaf creates a leaf value holding data.
func (g *Graph[T]) Leaf(data T) Value[T] {
	return g.push(Node[T]{data: data, op: OpLeaf, child1: NoNode, child2: NoNode})
}

// Zero creates a zero-valued leaf.
func (g *Graph[T]) Zero() Value[T] {
	return g.Leaf(0)
}

// Len returns the number of nodes in the arena.
func (g *Graph[T]) Len() int {
	return len(g.nodes)
}

// Node returns a snapshot of the node with the given id.
func (g *Graph[T]) Node(id NodeID) Node[T] {
	if id < 0 || int(id) >= len(g.nodes) {
		panic("node: id out of range")
	}
	return g.nodes[id]
}

// ZeroGrad sets the gradient of every node in the graph to 0.
func (g *Graph[T]) ZeroGrad() {
	for i := range g.nodes {
		g.nodes[i].grad = 0
	}
}

// Reset drops every node. Values created before Reset become invalid and
// panic on use.
func (g *Graph[T]) Reset() {
	g.nodes = g.nodes[:0]
	g.generation++
}

// push appends n to the arena and returns a handle to it.
func (g *Graph[T]) push(n Node[T]) Value[T] {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	if g.debugEnabled() {
		g.logger.Debug("forward",
			slog.String("op", n.op.String()),
			slog.Int("id", int(id)),
			slog.Float64("data", float64(n.data)),
		)
	}
	return Value[T]{graph: g, id: id, gen: g.generation}
}

func (g *Graph[T]) debugEnabled() bool {
	return g.logger.Enabled(context.Background(), slog.LevelDebug)
}
