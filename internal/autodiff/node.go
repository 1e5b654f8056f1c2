package autodiff

import "fmt"

// Op identifies the operation that produced a node.
type Op uint8

// Supported operations. Negation, subtraction and division are composed
// from these and have no tag of their own.
const (
	OpLeaf Op = iota
	OpAdd
	OpMul
	OpPow
	OpExp
	OpLog
	OpTanh
	OpReLU
	OpSigmoid
)

// String returns the short name of the operation.
func (op Op) String() string {
	switch op {
	case OpLeaf:
		return "leaf"
	case OpAdd:
		return "+"
	case OpMul:
		return "*"
	case OpPow:
		return "pow"
	case OpExp:
		return "exp"
	case OpLog:
		return "log"
	case OpTanh:
		return "tanh"
	case OpReLU:
		return "relu"
	case OpSigmoid:
		return "sigmoid"
	default:
		return "unknown"
	}
}

// Binary reports whether the operation has two operands.
func (op Op) Binary() bool {
	return op == OpAdd || op == OpMul
}

// NodeID is the stable index of a node in its graph's arena.
type NodeID int32

// NoNode marks an absent child.
const NoNode NodeID = -1

// Node is one evaluated scalar expression.
//
// Topology (op, children, exponent) is fixed at construction. Only data
// (through SetData) and grad (through backward passes) change afterwards.
type Node[T Float] struct {
	data     T
	grad     T
	op       Op
	child1   NodeID
	child2   NodeID
	exponent float64 // OpPow only
}

// Data returns the forward value.
func (n Node[T]) Data() T { return n.data }

// Grad returns the accumulated gradient.
func (n Node[T]) Grad() T { return n.grad }

// Op returns the operation tag.
func (n Node[T]) Op() Op { return n.op }

// Children returns the child ids; absent slots are NoNode.
func (n Node[T]) Children() (NodeID, NodeID) { return n.child1, n.child2 }

// Exponent returns the exponent of an OpPow node and 0 for anything else.
func (n Node[T]) Exponent() float64 { return n.exponent }

// IsLeaf reports whether the node is a user-supplied input or constant.
func (n Node[T]) IsLeaf() bool { return n.op == OpLeaf }

// HasBackward reports whether the node propagates gradient to children.
func (n Node[T]) HasBackward() bool { return n.op != OpLeaf }

// String renders the node as Node(data, grad=g, op=o).
func (n Node[T]) String() string {
	if n.op == OpPow {
		return fmt.Sprintf("Node(%v, grad=%v, op=pow(%v))", n.data, n.grad, n.exponent)
	}
	return fmt.Sprintf("Node(%v, grad=%v, op=%s)", n.data, n.grad, n.op)
}
