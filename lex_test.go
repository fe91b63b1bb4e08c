package equations

import (
	"bufio"
	"errors"
	"testing"
	"testing/iotest"
)

func TestScanColumns(t *testing.T) {
	cases := []struct {
		src  string
		text string
		cols []int
		end  int
	}{
		{"", "", nil, 1},
		{" \t \r\n ", "", nil, 7},
		{"1", "1", []int{1}, 2},
		{"1 + 2", "1+2", []int{1, 3, 5}, 6},
		{" x=\t3 ", "x=3", []int{2, 3, 5}, 7},
		{"1 2", "12", []int{1, 3}, 4},
		{"π*r", "π*r", []int{1, 2, 3}, 4},
	}
	for _, c := range cases {
		s := scanString(c.src)
		if got := string(s.src); got != c.text {
			t.Errorf("scanning %q: want text %q, got %q", c.src, c.text, got)
		}
		if len(s.col) != len(c.cols) {
			t.Errorf("scanning %q: want columns %v, got %v", c.src, c.cols, s.col)
		} else {
			for i := range c.cols {
				if s.col[i] != c.cols[i] {
					t.Errorf("scanning %q: want columns %v, got %v", c.src, c.cols, s.col)
					break
				}
			}
		}
		if s.end != c.end {
			t.Errorf("scanning %q: want end %d, got %d", c.src, c.end, s.end)
		}
	}
}

func TestScanReadError(t *testing.T) {
	want := errors.New("broken")
	if _, err := scan(bufio.NewReader(iotest.ErrReader(want))); !errors.Is(err, want) {
		t.Errorf("want error %v, got %v", want, err)
	}
}

func TestSigns(t *testing.T) {
	cases := []struct {
		src  string
		sign Sign
		pos  int
	}{
		{"", Positive, 0},
		{"1", Positive, 0},
		{"+", Positive, 1},
		{"-", Negative, 1},
		{"--", Positive, 2},
		{"-+-", Positive, 3},
		{"+-+", Negative, 3},
		{"---x", Negative, 3},
		{"-*", Negative, 1},
	}
	for _, c := range cases {
		s := scanString(c.src)
		if got := s.signs(); got != c.sign {
			t.Errorf("signs of %q: want %v, got %v", c.src, c.sign, got)
		}
		if s.pos != c.pos {
			t.Errorf("signs of %q: want to consume %d runes, consumed %d", c.src, c.pos, s.pos)
		}
	}
}

func TestSignCompose(t *testing.T) {
	cases := []struct {
		a, b, r Sign
	}{
		{Positive, Positive, Positive},
		{Positive, Negative, Negative},
		{Negative, Positive, Negative},
		{Negative, Negative, Positive},
	}
	for _, c := range cases {
		if got := c.a.Compose(c.b); got != c.r {
			t.Errorf("%v composed with %v: want %v, got %v", c.a, c.b, c.r, got)
		}
	}
}

func TestNumber(t *testing.T) {
	cases := []struct {
		src  string
		frac bool
		text string
		ok   bool
		err  bool
		pos  int
	}{
		{"", true, "", false, false, 0},
		{"x", true, "", false, false, 0},
		{"-1", true, "", false, false, 0},
		{"0", true, "0", true, false, 1},
		{"9876543210", true, "9876543210", true, false, 10},
		{"12+3", true, "12", true, false, 2},
		{"1.5", true, "1.5", true, false, 3},
		{"1.25*2", true, "1.25", true, false, 4},
		{"1.", true, "", false, true, 2},
		{"1.x", true, "", false, true, 2},
		{".5", true, "", false, false, 0},
		{"1.5", false, "", false, true, 2},
		{"15", false, "15", true, false, 2},
	}
	for _, c := range cases {
		s := scanString(c.src)
		text, ok, err := s.number(c.frac)
		if (err != nil) != c.err {
			t.Errorf("number %q (frac %t): want error %t, got %v", c.src, c.frac, c.err, err)
		}
		if err != nil {
			if _, isLex := err.(*LexError); !isLex {
				t.Errorf("number %q (frac %t): error %#v is not a *LexError", c.src, c.frac, err)
			}
			continue
		}
		if text != c.text || ok != c.ok {
			t.Errorf("number %q (frac %t): want %q %t, got %q %t", c.src, c.frac, c.text, c.ok, text, ok)
		}
		if s.pos != c.pos {
			t.Errorf("number %q (frac %t): want to consume %d runes, consumed %d", c.src, c.frac, c.pos, s.pos)
		}
	}
}

func TestIdent(t *testing.T) {
	cases := []struct {
		src  string
		name string
		ok   bool
	}{
		{"", "", false},
		{"1", "", false},
		{"x", "x", true},
		{"abc", "abc", true},
		{"ab1", "ab", true},
		{"a_b", "a", true},
		{"π", "π", true},
		{"x+y", "x", true},
		{"-x", "", false},
	}
	for _, c := range cases {
		s := scanString(c.src)
		name, ok := s.ident()
		if name != c.name || ok != c.ok {
			t.Errorf("ident %q: want %q %t, got %q %t", c.src, c.name, c.ok, name, ok)
		}
	}
}

func TestOperators(t *testing.T) {
	cases := []struct {
		src    string
		addsub nodeKind
		muldiv nodeKind
	}{
		{"", nodeNone, nodeNone},
		{"+", nodeAdd, nodeNone},
		{"-", nodeSub, nodeNone},
		{"*", nodeNone, nodeMul},
		{"/", nodeNone, nodeDiv},
		{"(", nodeNone, nodeNone},
		{"1", nodeNone, nodeNone},
	}
	for _, c := range cases {
		if k, ok := scanString(c.src).addsub(); k != c.addsub || ok != (c.addsub != nodeNone) {
			t.Errorf("addsub %q: want %v, got %v %t", c.src, c.addsub, k, ok)
		}
		if k, ok := scanString(c.src).muldiv(); k != c.muldiv || ok != (c.muldiv != nodeNone) {
			t.Errorf("muldiv %q: want %v, got %v %t", c.src, c.muldiv, k, ok)
		}
	}
}
