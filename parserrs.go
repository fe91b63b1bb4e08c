package equations

import "strconv"

// BracketError is an error indicating mismatched parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the offending bracket, or of the end of input
	// for an unclosed bracket.
	Col int
	// Left is the opening bracket, or empty if there is none.
	Left string
	// Right is the closing bracket, or empty if there is none.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating a missing operand, e.g. in
// "1+" or "()".
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression, or empty at the end of
	// input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// ExtraInputError is an error indicating input left over after a complete
// expression, e.g. the "x" in "2x". It implements InputError.
type ExtraInputError struct {
	// Col is the position of the first unparsed rune.
	Col int
	// Text is the unparsed input with whitespace removed.
	Text string
}

func (err *ExtraInputError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Text)+" after expression")
}

func (err *ExtraInputError) Pos() int {
	return err.Col
}

// DepthError is an error indicating parenthesized groups nested deeper than
// the limit set with MaxDepth. It implements InputError.
type DepthError struct {
	// Col is the position of the bracket that exceeded the limit.
	Col int
	// Max is the limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "brackets nested deeper than "+strconv.Itoa(err.Max))
}

func (err *DepthError) Pos() int {
	return err.Col
}

// AssignError is an error indicating a malformed assignment line. It
// implements InputError.
type AssignError struct {
	// Col is the position of the problem.
	Col int
	// Target is the left side of the assignment with whitespace removed.
	Target string
	// Reason describes the problem.
	Reason string
}

func (err *AssignError) Error() string {
	return errpos(err.Col, "invalid assignment to "+strconv.Quote(err.Target)+": "+err.Reason)
}

func (err *AssignError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the column, counting from 1,
	// of the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*ExtraInputError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*AssignError)(nil)
	_ InputError = (*LexError)(nil)
	_ InputError = (*LineError)(nil)
)
