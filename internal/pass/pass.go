// Package pass orchestrates the two interleaving orders (scanline and
// zoom) over the range coder, context trees, and predictors: the two-
// pass tree-learn-then-emit pipeline that turns a plane-addressed image
// into (or back out of) a coded bitstream.
package pass

import (
	"github.com/jsneyers/go-flif/internal/ctxtree"
	"github.com/jsneyers/go-flif/internal/imaging"
	"github.com/jsneyers/go-flif/internal/rac"
	"github.com/jsneyers/go-flif/internal/symbol"
)

// planeOrder returns the processing order for numPlanes planes: when
// alpha (plane 3) exists it is coded first, since the scanline and zoom
// property vectors assume a color plane's "earlier planes" group can
// already see the alpha value at the same pixel.
func planeOrder(numPlanes int, hasAlpha bool) []int {
	if hasAlpha && numPlanes > 3 {
		order := []int{3}
		for p := 0; p < numPlanes; p++ {
			if p != 3 {
				order = append(order, p)
			}
		}
		return order
	}
	order := make([]int, numPlanes)
	for p := range order {
		order[p] = p
	}
	return order
}

// constantPlane reports whether plane p's declared range has already
// collapsed to a single value, in which case no bit is coded for it:
// every pixel is that value by construction.
func constantPlane(ranges *imaging.ColorRanges, p int) bool {
	return ranges.Min(p) >= ranges.Max(p)
}

// transparentColor reports whether (r,c) is a color-plane pixel (plane p,
// p != 3) sitting under full transparency: alpha (plane 3) already holds
// its minimum declared value there. Such a pixel is never coded — both
// encoder and decoder reconstruct it from the predictor's guess alone, so
// the underlying color value has no effect on the bitstream. Callers
// must process the alpha plane before any color plane at the same pixel
// (planeOrder and the zoom-mode tick schedule both guarantee this) or
// img.At(3, r, c) may not be set yet.
func transparentColor(img *imaging.Image, ranges *imaging.ColorRanges, hasAlpha bool, p, r, c int) bool {
	if !hasAlpha || p == 3 {
		return false
	}
	return img.At(3, r, c) == ranges.Min(3)
}

func fillConstant(img *imaging.Image, ranges *imaging.ColorRanges, p int) {
	v := ranges.Min(p)
	plane := img.Plane(p)
	for i := range plane {
		plane[i] = v
	}
}

// buildTree runs the two-pass learn-then-freeze procedure against a
// supplier of (properties, residual) samples, growing the tree one level
// per repeat and freezing it with fresh Multiscale leaf tables for the
// final pass.
func buildTree(propRanges []ctxtree.PropRange, repeats int, visit func(yield func(props []int, lo, hi, residual int))) *ctxtree.Tree {
	tree := ctxtree.NewTree(propRanges, symbol.SimpleFactory)
	var dummy rac.Dummy
	for i := 0; i < repeats; i++ {
		visit(func(props []int, lo, hi, residual int) {
			tree.WriteLearn(dummy, props, lo, hi, residual)
		})
		tree.GrowStep()
	}
	tree.Simplify(symbol.MultiscaleFactory)
	return tree
}
