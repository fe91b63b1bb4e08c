package equations

import "math/big"

// Format renders a result as a plain decimal. Integers have no fractional
// part, and other values use the fewest digits that identify them at their
// precision, so one half is "0.5". Zero is "0" regardless of its sign.
func Format(x *big.Float) string {
	switch {
	case x == nil:
		return "<nil>"
	case x.Sign() == 0:
		return "0"
	case x.IsInf():
		return x.String()
	}
	return x.Text('f', -1)
}
