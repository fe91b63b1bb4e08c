// Package equations implements a small arithmetic language with variables.
//
// An expression is built from decimal numbers, the operators + - * /, and
// parentheses. Any number of signs may precede a number, a variable, or a
// parenthesized group; only the count of minus signs matters, so "--2" is 2
// and "-+-(1)" is 1. Multiplication and division bind tighter than addition
// and subtraction, and operators of equal precedence group to the left.
// Whitespace is ignored everywhere, including inside numbers.
//
// Programs are sequences of lines, each either an assignment "name=expr" or
// an expression. Assignments bind the unevaluated expression to the name, so
// variables are resolved each time they are used. Expression lines are
// evaluated as soon as they are reached, against the bindings made so far.
//
package equations
