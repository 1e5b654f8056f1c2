package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, UseColor("always", &buf))
	assert.False(t, UseColor("never", &buf))
	assert.False(t, UseColor("auto", &buf), "a buffer is not a terminal")
}

func TestPrinter_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Title("scenario %s", "log")
	p.Status(true, "a.grad = %v", 0.5)
	p.Status(false, "b.grad = %v", 1)
	p.Muted("3 nodes")
	p.Block("Node(1, grad=0, op=leaf)\n")

	want := "scenario log\n" +
		"  ok   a.grad = 0.5\n" +
		"  FAIL b.grad = 1\n" +
		"3 nodes\n" +
		"Node(1, grad=0, op=leaf)\n"
	assert.Equal(t, want, buf.String())
}
