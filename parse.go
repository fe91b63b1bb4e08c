package equations

import (
	"io"
	"slices"
	"strings"
)

// additive       = multiplicative { ('+' | '-') multiplicative }
// multiplicative = atom { ('*' | '/') atom }
// atom           = { sign } name | { sign } num | { sign } '(' additive ')'
// sign           = '+' | '-'
// num            = digit { digit } [ '.' digit { digit } ]
// name           = letter { letter }

// Equation is a parsed expression that can be evaluated with a context. An
// Equation is immutable, so it may be shared between contexts and goroutines.
type Equation struct {
	// n is the root node of the expression.
	n *node
	// names is the sorted list of variable names used in the expression.
	names []string
}

// Parse parses an expression so it can be evaluated with a context. The given
// options are applied in order. The entire input must be a single expression.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Equation, error) {
	s, err := scan(src)
	if err != nil {
		return nil, err
	}
	p := newParsectx(opts)
	return parseall(s, &p)
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Equation, error) {
	p := newParsectx(opts)
	return parseall(scanString(src), &p)
}

// ParseAssignment parses an assignment of the form "name=expr". Errors are
// positioned relative to the start of src.
func ParseAssignment(src string, opts ...ParseOption) (string, *Equation, error) {
	p := newParsectx(opts)
	s := scanString(src)
	k := s.index('=')
	if k < 0 {
		return "", nil, &AssignError{Col: s.end, Target: string(s.src), Reason: "no ="}
	}
	return parseassign(s, k, &p)
}

// parseall parses s as one complete expression.
func parseall(s *scanner, p *parsectx) (*Equation, error) {
	n, err := parseadditive(s, p)
	if err != nil {
		return nil, err
	}
	if !s.done() {
		return nil, itShouldNotHaveEndedThisWay(s, false)
	}
	ex := Equation{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	slices.Sort(ex.names)
	return &ex, nil
}

// parseassign parses s as an assignment whose = is at index k.
func parseassign(s *scanner, k int, p *parsectx) (string, *Equation, error) {
	lhs := s.sub(0, k)
	target := string(lhs.src)
	if j := s.sub(k+1, len(s.src)).index('='); j >= 0 {
		return "", nil, &AssignError{Col: s.col[k+1+j], Target: target, Reason: "more than one ="}
	}
	name, ok := lhs.ident()
	if !ok || !lhs.done() {
		return "", nil, &AssignError{Col: lhs.at(), Target: target, Reason: "target is not a variable name"}
	}
	e, err := parseall(s.sub(k+1, len(s.src)), p)
	if err != nil {
		return "", nil, err
	}
	return name, e, nil
}

// parseadditive parses a chain of terms joined by + and -. The chain folds to
// the left, so a-b+c is (a-b)+c.
func parseadditive(s *scanner, p *parsectx) (*node, error) {
	n, err := parsemultiplicative(s, p)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := s.addsub()
		if !ok {
			return n, nil
		}
		rhs, err := parsemultiplicative(s, p)
		if err != nil {
			return nil, err
		}
		n = &node{kind: op, left: n, right: rhs}
	}
}

// parsemultiplicative parses a chain of atoms joined by * and /, folding to
// the left.
func parsemultiplicative(s *scanner, p *parsectx) (*node, error) {
	n, err := parseatom(s, p)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := s.muldiv()
		if !ok {
			return n, nil
		}
		rhs, err := parseatom(s, p)
		if err != nil {
			return nil, err
		}
		n = &node{kind: op, left: n, right: rhs}
	}
}

// parseatom parses a signed variable, number, or parenthesized group, trying
// each in that order. The alternatives share the sign prefix, so it is
// scanned once.
func parseatom(s *scanner, p *parsectx) (*node, error) {
	sign := s.signs()
	if name, ok := s.ident(); ok {
		p.names[name] = true
		return &node{kind: nodeName, name: name, sign: sign}, nil
	}
	num, ok, err := s.number(!p.ints)
	if err != nil {
		return nil, err
	}
	if ok {
		return &node{kind: nodeNum, name: num, sign: sign}, nil
	}
	open := s.at()
	if s.lit('(') {
		p.depth++
		if p.maxdepth > 0 && p.depth > p.maxdepth {
			return nil, &DepthError{Col: open, Max: p.maxdepth}
		}
		n, err := parseadditive(s, p)
		if err != nil {
			return nil, err
		}
		if !s.lit(')') {
			return nil, itShouldNotHaveEndedThisWay(s, true)
		}
		p.depth--
		if sign == Negative {
			// -(expr) -> (-1) * (expr)
			n = &node{kind: nodeMul, left: &node{kind: nodeNum, name: "1", sign: Negative}, right: n}
		}
		return n, nil
	}
	r, ok := s.peek()
	switch {
	case !ok:
		return nil, &EmptyExpressionError{Col: s.at(), End: ""}
	case r == ')', r == '*', r == '/', r == '=':
		return nil, &EmptyExpressionError{Col: s.at(), End: string(r)}
	default:
		return nil, s.invalid()
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for unconsumed
// input at the end of an expression. open is whether the expression is inside
// a group that should have been closed at the cursor.
func itShouldNotHaveEndedThisWay(s *scanner, open bool) error {
	r, ok := s.peek()
	switch {
	case !ok:
		if !open {
			panic("equations: it really should not have ended this way: complete input")
		}
		// Unexpected end of input implies an open bracket that was not closed.
		return &BracketError{Col: s.at(), Left: "(", Right: ""}
	case r == ')':
		// The only way to stop at a close bracket outside a group is for it
		// to have no open bracket.
		return &BracketError{Col: s.at(), Left: "", Right: ")"}
	case !valid(r):
		return s.invalid()
	default:
		return &ExtraInputError{Col: s.at(), Text: string(s.src[s.pos:])}
	}
}

// Vars returns the variable names used when evaluating the expression.
func (e *Equation) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a string representation of the parsed expression, with
// parentheses around every operation that is an operand of another.
func (e *Equation) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}
