package equations

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	intopt   struct{}
	depthopt int
)

// parsectx holds general data for parsing.
type parsectx struct {
	// names is the set of variable names that have been seen this parse.
	names map[string]bool
	// ints disables fractional parts in numbers.
	ints bool
	// maxdepth is the maximum nesting of parenthesized groups, or 0 for no
	// limit.
	maxdepth int
	// depth is the current nesting of parenthesized groups.
	depth int
}

// IntegersOnly tells the parser to accept only integer literals. A decimal
// point in the input is then an invalid token.
func IntegersOnly() ParseOption {
	return intopt{}
}

func (intopt) parseOption(p parsectx) parsectx {
	p.ints = true
	return p
}

// MaxDepth limits the nesting of parenthesized groups. Input that nests
// deeper fails to parse with a *DepthError. A limit of zero or less removes
// the limit, which is the default.
func MaxDepth(n int) ParseOption {
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	if p.maxdepth < 0 {
		p.maxdepth = 0
	}
	return p
}

func newParsectx(opts []ParseOption) parsectx {
	p := parsectx{names: make(map[string]bool)}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	return p
}
