package equations

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Tokens contains every rune, other than digits and letters, that may appear
// in an expression or program line.
const Tokens = "+-*/().="

// scanner is a cursor over whitespace-stripped input. Each rune remembers the
// column it had before stripping so that errors point into the text as it was
// written.
type scanner struct {
	src []rune
	col []int
	// end is the column just past the last rune of the input.
	end int
	pos int
}

// scan reads all of src, dropping whitespace.
func scan(src io.RuneScanner) (*scanner, error) {
	s := scanner{end: 1}
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return &s, nil
			}
			return nil, err
		}
		if !unicode.IsSpace(r) {
			s.src = append(s.src, r)
			s.col = append(s.col, s.end)
		}
		s.end++
	}
}

// scanString is scan for a string.
func scanString(src string) *scanner {
	s, err := scan(strings.NewReader(src))
	if err != nil {
		// strings.Reader only returns io.EOF.
		panic("equations: error reading string: " + err.Error())
	}
	return s
}

// sub creates a scanner over src[i:j] that reports the same columns.
func (s *scanner) sub(i, j int) *scanner {
	end := s.end
	if j < len(s.src) {
		end = s.col[j]
	}
	return &scanner{src: s.src[i:j], col: s.col[i:j], end: end}
}

// index returns the index of the first r at or after the cursor, or -1.
func (s *scanner) index(r rune) int {
	for i := s.pos; i < len(s.src); i++ {
		if s.src[i] == r {
			return i
		}
	}
	return -1
}

// at returns the column of the cursor.
func (s *scanner) at() int {
	if s.pos < len(s.src) {
		return s.col[s.pos]
	}
	return s.end
}

// done reports whether the cursor has consumed all input.
func (s *scanner) done() bool {
	return s.pos >= len(s.src)
}

// peek returns the rune at the cursor without consuming it.
func (s *scanner) peek() (rune, bool) {
	if s.done() {
		return 0, false
	}
	return s.src[s.pos], true
}

// lit consumes r if it is at the cursor.
func (s *scanner) lit(r rune) bool {
	if c, ok := s.peek(); ok && c == r {
		s.pos++
		return true
	}
	return false
}

// sign consumes a single sign.
func (s *scanner) sign() (Sign, bool) {
	switch {
	case s.lit('+'):
		return Positive, true
	case s.lit('-'):
		return Negative, true
	}
	return Positive, false
}

// signs consumes any number of signs and returns their effective sign.
func (s *scanner) signs() Sign {
	r := Positive
	for {
		sg, ok := s.sign()
		if !ok {
			return r
		}
		r = r.Compose(sg)
	}
}

// number consumes an unsigned decimal number. If there is no digit at the
// cursor, the result is false with no error and nothing is consumed. If frac
// is true, a fractional part is allowed, and a point that no digit follows is
// an error. Otherwise, any point following the digits is an error.
func (s *scanner) number(frac bool) (string, bool, error) {
	start := s.pos
	s.digits()
	if s.pos == start {
		return "", false, nil
	}
	if s.lit('.') {
		if !frac || s.digits() == 0 {
			text := string(s.src[start:s.pos])
			if r, ok := s.peek(); ok {
				text += string(r)
			}
			return "", false, &LexError{Text: text, Kind: "number", Col: s.col[start]}
		}
	}
	return string(s.src[start:s.pos]), true, nil
}

func (s *scanner) digits() int {
	n := 0
	for {
		r, ok := s.peek()
		if !ok || r < '0' || '9' < r {
			return n
		}
		s.pos++
		n++
	}
}

// ident consumes a variable name.
func (s *scanner) ident() (string, bool) {
	start := s.pos
	for {
		r, ok := s.peek()
		if !ok || !unicode.IsLetter(r) {
			break
		}
		s.pos++
	}
	if s.pos == start {
		return "", false
	}
	return string(s.src[start:s.pos]), true
}

// addsub consumes an additive operator.
func (s *scanner) addsub() (nodeKind, bool) {
	switch {
	case s.lit('+'):
		return nodeAdd, true
	case s.lit('-'):
		return nodeSub, true
	}
	return nodeNone, false
}

// muldiv consumes a multiplicative operator.
func (s *scanner) muldiv() (nodeKind, bool) {
	switch {
	case s.lit('*'):
		return nodeMul, true
	case s.lit('/'):
		return nodeDiv, true
	}
	return nodeNone, false
}

// valid reports whether r can begin any token.
func valid(r rune) bool {
	return '0' <= r && r <= '9' || unicode.IsLetter(r) || strings.ContainsRune(Tokens, r)
}

// invalid creates an error for a rune that cannot begin any token.
func (s *scanner) invalid() error {
	r, _ := s.peek()
	return &LexError{Text: string(r), Col: s.at()}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" or
	// the empty string (if no token kind could be decided).
	Kind string
	// Col is the column at which the invalid token starts.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
