package autodiff

import (
	"io"
	"strings"
)

// PrintGraph writes v's ancestor DAG to w as an indented tree.
//
// The root comes first, then child1's subtree, then child2's. Shared nodes
// are printed once per path. A " |" column continues while an ancestor at
// that depth still has its second child to print:
//
//	Node(4, grad=1, op=+)
//	 |__Node(3, grad=1, op=*)
//	 |   |__Node(1, grad=3, op=leaf)
//	 |   |__Node(3, grad=1, op=leaf)
//	 |__Node(1, grad=1, op=leaf)
//
// The output is for humans and carries no stable format.
func (v Value[T]) PrintGraph(w io.Writer) error {
	_, err := io.WriteString(w, v.GraphString())
	return err
}

// GraphString returns what PrintGraph writes.
func (v Value[T]) GraphString() string {
	v.node("print graph")
	var sb strings.Builder
	v.graph.writeTree(&sb, v.id, 0, nil)
	sb.WriteByte('\n')
	return sb.String()
}

// writeTree renders the subtree at id. pending[l] is true while the node at
// depth l still has a second child waiting.
func (g *Graph[T]) writeTree(sb *strings.Builder, id NodeID, level int, pending []bool) {
	for i := 1; i < level; i++ {
		if pending[i-1] {
			sb.WriteString(" |  ")
		} else {
			sb.WriteString("    ")
		}
	}
	if level > 0 {
		sb.WriteString(" |__")
	}
	n := g.nodes[id]
	sb.WriteString(n.String())
	sb.WriteByte('\n')

	pending = append(pending[:level], n.child2 != NoNode)
	if n.child1 != NoNode {
		g.writeTree(sb, n.child1, level+1, pending)
	}
	pending[level] = false
	if n.child2 != NoNode {
		g.writeTree(sb, n.child2, level+1, pending)
	}
}
