// Package predict builds per-pixel predictor guesses and the property
// vectors the context tree splits on, for both the scanline and the
// zoom (multi-resolution) interleaving orders.
package predict

import "github.com/jsneyers/go-flif/internal/imaging"

// median3 returns the median of a, b, c together with which of them it
// equals: 0 for a, 1 for b, 2 for c. Ties resolve to the lower index, so
// the result is stable regardless of argument order.
func median3(a, b, c imaging.ColorVal) (imaging.ColorVal, int) {
	args := [3]imaging.ColorVal{a, b, c}
	v := args
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	if v[1] > v[2] {
		v[1], v[2] = v[2], v[1]
	}
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	for i, x := range args {
		if x == v[1] {
			return v[1], i
		}
	}
	return v[1], 1
}
