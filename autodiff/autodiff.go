// Copyright 2025 Picograd Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over scalars.
//
// Every arithmetic operation on a Value records itself as a node in the
// Value's Graph. Backward then computes the gradient of one value with
// respect to every value that fed into it.
//
// Example:
//
//	import "github.com/picograd-ml/picograd/autodiff"
//
//	func main() {
//	    g := autodiff.NewGraph[float64]()
//
//	    a := g.Leaf(-4)
//	    b := g.Leaf(2)
//	    c := a.Mul(b).Add(b.PowInt(3)) // c = a·b + b³
//
//	    c.Backward()
//	    fmt.Println(a.Grad(), b.Grad()) // 2 8
//	}
package autodiff

import (
	"github.com/picograd-ml/picograd/internal/autodiff"
)

// Float is the constraint for element types (float32 and float64).
type Float = autodiff.Float

// Graph owns every node created by operations on its values.
type Graph[T Float] = autodiff.Graph[T]

// Value is a copyable handle to one node of a Graph.
type Value[T Float] = autodiff.Value[T]

// Node is a read-only snapshot of a graph vertex.
type Node[T Float] = autodiff.Node[T]

// NodeID is the stable index of a node in its graph.
type NodeID = autodiff.NodeID

// NoNode marks an absent child.
const NoNode = autodiff.NoNode

// Op identifies the operation that produced a node.
type Op = autodiff.Op

// Operation tags.
const (
	OpLeaf    = autodiff.OpLeaf
	OpAdd     = autodiff.OpAdd
	OpMul     = autodiff.OpMul
	OpPow     = autodiff.OpPow
	OpExp     = autodiff.OpExp
	OpLog     = autodiff.OpLog
	OpTanh    = autodiff.OpTanh
	OpReLU    = autodiff.OpReLU
	OpSigmoid = autodiff.OpSigmoid
)

// Option configures a Graph.
type Option = autodiff.Option

// NewGraph creates an empty graph.
//
// Example:
//
//	g := autodiff.NewGraph[float32](autodiff.WithCapacity(1024))
func NewGraph[T Float](opts ...Option) *Graph[T] {
	return autodiff.NewGraph[T](opts...)
}

// WithLogger sets the logger used for Debug-level tracing.
var WithLogger = autodiff.WithLogger

// WithCapacity pre-allocates room for n nodes.
var WithCapacity = autodiff.WithCapacity
