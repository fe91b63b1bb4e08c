package equations

import (
	"strconv"
	"strings"
)

// Sign is the polarity of a number, variable reference, or group.
type Sign int8

const (
	Positive Sign = iota
	Negative
)

// Compose returns the effective sign of s followed by t. Only the parity of
// negative signs matters, so composition commutes.
func (s Sign) Compose(t Sign) Sign {
	return s ^ t
}

func (s Sign) String() string {
	switch s {
	case Positive:
		return "+"
	case Negative:
		return "-"
	default:
		return "Sign(" + strconv.Itoa(int(s)) + ")"
	}
}

// node is a node in the abstract syntax tree of an equation.
type node struct {
	kind nodeKind

	// name is the literal text of a number or the name of a variable.
	name string
	// sign is the effective sign of a number or variable reference.
	sign Sign

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // push num with sign
	nodeName // push eval(lookup(name)) with sign

	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeName:
		return "Name"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// symbol is the operator character for an operation kind.
func (k nodeKind) symbol() byte {
	switch k {
	case nodeAdd:
		return '+'
	case nodeSub:
		return '-'
	case nodeMul:
		return '*'
	case nodeDiv:
		return '/'
	default:
		panic("equations: no operator for node kind " + k.String())
	}
}

func (n *node) isOp() bool {
	switch n.kind {
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		return true
	}
	return false
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the structure of the tree. Operands that are themselves
// operations are parenthesized, so the grouping the parser chose is explicit.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteString("$#$")
	case nodeNum, nodeName:
		if n.sign == Negative {
			b.WriteByte('-')
		}
		b.WriteString(n.name)
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		n.left.fmtOperand(b)
		b.WriteByte(n.kind.symbol())
		n.right.fmtOperand(b)
	default:
		panic("equations: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) fmtOperand(b *strings.Builder) {
	if !n.isOp() {
		n.fmt(b)
		return
	}
	b.WriteByte('(')
	n.fmt(b)
	b.WriteByte(')')
}
