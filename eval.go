package equations

import (
	"io"
	"math/big"
	"strconv"
	"strings"
)

// Context is a context for evaluating equations. It holds the variable
// bindings that references resolve against. It is not safe to use a Context
// concurrently.
type Context struct {
	stack []*big.Float
	nums  map[string]*big.Float
	names map[string]*Equation
	// active is the set of variables currently being evaluated.
	active map[string]bool
	prec   uint
	err    error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	defopt struct {
		name string
		e    *Equation
	}
	defsopt map[string]*Equation
	precopt uint
)

func (defopt) ctxOption()  {}
func (defsopt) ctxOption() {}
func (precopt) ctxOption() {}

// Define binds a variable to an equation in the context.
func Define(name string, e *Equation) ContextOption {
	return defopt{name, e}
}

// Defines binds any number of variables in the context.
func Defines(defs map[string]*Equation) ContextOption {
	return defsopt(defs)
}

// Prec sets the precision of calculations.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{nums: make(map[string]*big.Float), prec: 64}
	return ctx.Clone(opts...)
}

// Eval evaluates an equation and returns the result. If an error occurs,
// e.g. a missing variable definition or a division by zero, then the result
// is nil and ctx.Err returns the error.
func (ctx *Context) Eval(e *Equation) *big.Float {
	switch len(ctx.stack) {
	case 0: // do nothing
	case 1:
		ctx.stack[0] = new(big.Float).SetPrec(ctx.prec)
		ctx.stack = ctx.stack[:0]
	default:
		panic("equations: Eval during Eval")
	}
	clear(ctx.active)
	err := e.n.eval(ctx)
	ctx.err = err
	if err != nil {
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// Result returns the result obtained after evaluating an equation. Panics if
// ctx has not been used to evaluate an equation. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("equations: Context.Result called before evaluating any equation")
	case 1:
		return ctx.stack[0]
	default:
		panic("equations: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
}

// Err returns the error that occurred while evaluating the last equation with
// ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Set binds a variable to an equation, replacing any previous binding. The
// equation is not evaluated until the variable is used. Returns ctx for
// chaining. Calling Set while the context is being used to evaluate an
// equation panics.
func (ctx *Context) Set(name string, e *Equation) *Context {
	if len(ctx.stack) > 1 {
		panic("equations: Set on in-use context")
	}
	if ctx.names == nil {
		ctx.names = make(map[string]*Equation)
	}
	ctx.names[name] = e
	return ctx
}

// Lookup returns the equation bound to a variable. If there is no such
// variable in the context, then the result is nil.
func (ctx *Context) Lookup(name string) *Equation {
	return ctx.names[name]
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no Result and is safe to use to evaluate an equation. Bindings
// made in either context afterward are not seen by the other.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack:  make([]*big.Float, 0, cap(ctx.stack)),
		nums:   make(map[string]*big.Float, len(ctx.nums)),
		names:  make(map[string]*Equation, len(ctx.names)),
		active: make(map[string]bool),
		prec:   ctx.prec,
	}
	// First, check for a precision setting. Loop backward so we apply the last
	// precision.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			break
		}
	}
	// Cached numbers are only valid at the precision they were parsed with.
	if n.prec == ctx.prec {
		for k, v := range ctx.nums {
			n.nums[k] = v
		}
	}
	// Equations are immutable, so bindings can share them.
	for name, e := range ctx.names {
		n.names[name] = e
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case defopt:
			n.names[opt.name] = opt.e
		case defsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		case precopt:
			// Already done. Do nothing.
		default:
			panic("equations: unknown option type")
		}
	}
	return &n
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	if err != nil {
		// The lexer only produces digits with an optional fraction.
		panic("equations: invalid number: " + s + " (" + err.Error() + ")")
	}
	ctx.nums[s] = r
	return r
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	switch n.kind {
	case nodeNum:
		v := ctx.push().Set(ctx.num(n.name))
		if n.sign == Negative {
			v.Neg(v)
		}
	case nodeName:
		e := ctx.names[n.name]
		if e == nil {
			return &NameError{Name: n.name}
		}
		if ctx.active[n.name] {
			return &CycleError{Name: n.name}
		}
		ctx.active[n.name] = true
		err := e.n.eval(ctx)
		delete(ctx.active, n.name)
		if err != nil {
			return err
		}
		if n.sign == Negative {
			v := ctx.top()
			v.Neg(v)
		}
	case nodeAdd:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		l.Add(l, r)
	case nodeSub:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		l.Sub(l, r)
	case nodeMul:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		l.Mul(l, r)
	case nodeDiv:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		if r.Sign() == 0 {
			return &DomainError{X: new(big.Float).Copy(r), Op: "/"}
		}
		l.Quo(l, r)
	default:
		panic("equations: invalid AST node " + n.kind.String())
	}
	return nil
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.RuneScanner, opts ...ContextOption) (*big.Float, error) {
	ctx := NewContext(opts...)
	a, err := Parse(src)
	if err != nil {
		return nil, err
	}
	ctx.Eval(a)
	return ctx.Result(), ctx.Err()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	return Eval(strings.NewReader(src), opts...)
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// CycleError is an error from a variable whose definition depends on itself,
// directly or through other variables.
type CycleError struct {
	// Name is the variable that was reached again while it was being
	// evaluated.
	Name string
}

func (err *CycleError) Error() string {
	return "variable " + strconv.Quote(err.Name) + " is defined in terms of itself"
}

// DomainError is an error returned when an operator is applied to an operand
// outside its domain. Division by zero is the only such case.
type DomainError struct {
	// X is the out-of-domain operand.
	X *big.Float
	// Op is the operator.
	Op string
}

func (err *DomainError) Error() string {
	return err.X.String() + " outside domain of " + err.Op
}
