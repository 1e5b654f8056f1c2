package autodiff

import (
	"cmp"
	"fmt"
)

// Value is a handle to exactly one Node.
//
// Values are small and meant to be passed by value. All copies of a Value
// alias the same Node. The zero Value refers to no node; every method except
// Valid and String panics on it.
type Value[T Float] struct {
	graph *Graph[T]
	id    NodeID
	gen   uint32
}

// Valid reports whether v refers to a live node.
func (v Value[T]) Valid() bool {
	return v.graph != nil && v.gen == v.graph.generation && int(v.id) < len(v.graph.nodes)
}

// node returns the arena slot of v. The pointer is only valid until the
// next append to the graph.
func (v Value[T]) node(op string) *Node[T] {
	if v.graph == nil {
		panic(op + ": value has no node")
	}
	if v.gen != v.graph.generation || int(v.id) >= len(v.graph.nodes) {
		panic(op + ": value belongs to a graph that was reset")
	}
	return &v.graph.nodes[v.id]
}

// mustGraph returns the graph of v after checking v is live.
func (v Value[T]) mustGraph(op string) *Graph[T] {
	v.node(op)
	return v.graph
}

// sameGraph checks that both operands are live and share a graph.
func sameGraph[T Float](op string, a, b Value[T]) *Graph[T] {
	a.node(op)
	b.node(op)
	if a.graph != b.graph {
		panic(op + ": operands belong to different graphs")
	}
	return a.graph
}

// Graph returns the graph that owns v's node.
func (v Value[T]) Graph() *Graph[T] { return v.graph }

// ID returns the arena index of v's node.
func (v Value[T]) ID() NodeID {
	v.node("id")
	return v.id
}

// Data returns the forward value.
func (v Value[T]) Data() T { return v.node("data").data }

// Grad returns the accumulated gradient.
func (v Value[T]) Grad() T { return v.node("grad").grad }

// SetData overwrites the forward value. Parents computed earlier keep their
// data; use it to initialize inputs before building on them.
func (v Value[T]) SetData(data T) { v.node("set data").data = data }

// SetGrad overwrites the accumulated gradient.
func (v Value[T]) SetGrad(grad T) { v.node("set grad").grad = grad }

// Op returns the tag of the operation that produced v.
func (v Value[T]) Op() Op { return v.node("op").op }

// IsLeaf reports whether v is an input or constant.
func (v Value[T]) IsLeaf() bool { return v.node("is leaf").IsLeaf() }

// HasBackward reports whether v propagates gradient to children.
func (v Value[T]) HasBackward() bool { return v.node("has backward").HasBackward() }

// Children returns handles to v's operands. Absent operands are zero Values.
func (v Value[T]) Children() (Value[T], Value[T]) {
	n := v.node("children")
	return v.at(n.child1), v.at(n.child2)
}

func (v Value[T]) at(id NodeID) Value[T] {
	if id == NoNode {
		return Value[T]{}
	}
	return Value[T]{graph: v.graph, id: id, gen: v.gen}
}

// Move returns a handle to v's node and empties v.
func (v *Value[T]) Move() Value[T] {
	out := *v
	*v = Value[T]{}
	return out
}

// AddAssign rebinds v to v + other.
func (v *Value[T]) AddAssign(other Value[T]) { *v = v.Add(other) }

// MulAssign rebinds v to v * other.
func (v *Value[T]) MulAssign(other Value[T]) { *v = v.Mul(other) }

// SubAssign rebinds v to v - other.
func (v *Value[T]) SubAssign(other Value[T]) { *v = v.Sub(other) }

// DivAssign rebinds v to v / other.
func (v *Value[T]) DivAssign(other Value[T]) { *v = v.Div(other) }

// Equal reports whether v and other hold equal data. Use Same for identity.
func (v Value[T]) Equal(other Value[T]) bool { return v.Data() == other.Data() }

// NotEqual reports whether v and other hold different data.
func (v Value[T]) NotEqual(other Value[T]) bool { return v.Data() != other.Data() }

// Less reports whether v's data is less than other's.
func (v Value[T]) Less(other Value[T]) bool { return v.Data() < other.Data() }

// Compare orders by data like cmp.Compare: NaN sorts before everything.
func (v Value[T]) Compare(other Value[T]) int { return cmp.Compare(v.Data(), other.Data()) }

// Same reports whether v and other alias the same node.
func (v Value[T]) Same(other Value[T]) bool {
	return v.graph == other.graph && v.id == other.id && v.gen == other.gen
}

// Float64 returns the current data as float64. The result is not tracked.
func (v Value[T]) Float64() float64 { return float64(v.Data()) }

// Float32 returns the current data as float32. The result is not tracked.
func (v Value[T]) Float32() float32 { return float32(v.Data()) }

// Int returns the current data truncated toward zero. The result is not tracked.
func (v Value[T]) Int() int { return int(v.Data()) }

// String renders v as Value(data, grad=g, op=o).
func (v Value[T]) String() string {
	if !v.Valid() {
		return "Value(?, grad=?)"
	}
	n := v.graph.nodes[v.id]
	return fmt.Sprintf("Value(%v, grad=%v, op=%s)", n.data, n.grad, n.op)
}
