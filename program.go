package equations

import (
	"bufio"
	"errors"
	"io"
	"math/big"
	"strconv"
	"strings"
)

// Line is a parsed line of a program.
type Line struct {
	// Num is the line number in the source, counting from 1.
	Num int
	// Name is the variable the line assigns, or empty if the line is an
	// expression to evaluate.
	Name string
	// Expr is the expression on the line, or the right side of the
	// assignment.
	Expr *Equation
}

// Program is a parsed sequence of assignment and expression lines.
type Program struct {
	lines []Line
}

// ParseProgram parses a program. Each line of src is either an assignment of
// the form "name=expr" or an expression. Lines holding only whitespace are
// skipped. If any line fails to parse, the error is a *LineError.
func ParseProgram(src io.Reader, opts ...ParseOption) (*Program, error) {
	var prog Program
	sc := bufio.NewScanner(src)
	num := 0
	for sc.Scan() {
		num++
		s := scanString(sc.Text())
		if s.done() {
			continue
		}
		// Each line gets its own parse context so that Vars is per line.
		p := newParsectx(opts)
		line := Line{Num: num}
		var err error
		if k := s.index('='); k >= 0 {
			line.Name, line.Expr, err = parseassign(s, k, &p)
		} else {
			line.Expr, err = parseall(s, &p)
		}
		if err != nil {
			return nil, &LineError{Line: num, Err: err}
		}
		prog.lines = append(prog.lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &prog, nil
}

// Lines returns the parsed lines of the program in source order.
func (prog *Program) Lines() []Line {
	return append(([]Line)(nil), prog.lines...)
}

// Run executes the program in a single pass using ctx. Assignments bind their
// expressions in ctx, replacing earlier bindings. Expression lines are
// evaluated when they are reached, so they see only the assignments that
// precede them. The results of the expression lines are returned in order.
//
// Run stops at the first line that fails to evaluate. The error is a
// *LineError, and the results of the lines before it are returned with it.
func (prog *Program) Run(ctx *Context) ([]*big.Float, error) {
	var r []*big.Float
	for _, line := range prog.lines {
		if line.Name != "" {
			ctx.Set(line.Name, line.Expr)
			continue
		}
		v := ctx.Eval(line.Expr)
		if v == nil {
			return r, &LineError{Line: line.Num, Err: ctx.Err()}
		}
		r = append(r, v)
	}
	return r, nil
}

// RunString is a shortcut to parse and run a program and concatenate its
// formatted results.
func RunString(src string, opts ...ContextOption) (string, error) {
	prog, err := ParseProgram(strings.NewReader(src))
	if err != nil {
		return "", err
	}
	r, err := prog.Run(NewContext(opts...))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, v := range r {
		b.WriteString(Format(v))
	}
	return b.String(), nil
}

// LineError is an error in a particular line of a program. It implements
// InputError.
type LineError struct {
	// Line is the line number, counting from 1.
	Line int
	// Err is the error in the line.
	Err error
}

func (err *LineError) Error() string {
	return "line " + strconv.Itoa(err.Line) + ": " + err.Err.Error()
}

func (err *LineError) Unwrap() error {
	return err.Err
}

// Pos returns the column of the error within its line, or 0 if the error has
// no position, as for evaluation errors.
func (err *LineError) Pos() int {
	var ie InputError
	if errors.As(err.Err, &ie) {
		return ie.Pos()
	}
	return 0
}
