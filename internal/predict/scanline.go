package predict

import (
	"github.com/jsneyers/go-flif/internal/ctxtree"
	"github.com/jsneyers/go-flif/internal/imaging"
)

// earlierPlaneCount is the number of already-decoded sibling-plane values
// folded into the property vector for plane p: every plane coded before p
// (indices below p, for a color plane), plus the alpha plane's value when
// alpha exists and is processed first (p < 3). Plane 3 (alpha itself)
// carries none of this group.
func earlierPlaneCount(hasAlpha bool, p int) int {
	if p == 3 {
		return 0
	}
	n := p
	if hasAlpha {
		n++
	}
	return n
}

// ScanlineProperties builds the property vector for plane p at (r,c) in
// scanline order and returns the predictor's range-snapped guess together
// with which in {0,1,2} identifying which of (gradient, left, top) the
// guess matched, before snapping.
func ScanlineProperties(img *imaging.Image, ranges *imaging.ColorRanges, p, r, c int) (props []int, guess imaging.ColorVal, which int) {
	grey := ranges.Grey(p)
	at := func(rr, cc int) imaging.ColorVal {
		if rr < 0 || cc < 0 {
			return grey
		}
		return img.At(p, rr, cc)
	}

	L := at(r, c-1)
	T := at(r-1, c)
	TL := at(r-1, c-1)

	gradient := L + T - TL
	g, w := median3(gradient, L, T)
	guess = ranges.Snap(p, g)

	n := earlierPlaneCount(img.HasAlpha, p)
	props = make([]int, 0, n+7)
	if p != 3 {
		for q := 0; q < p; q++ {
			props = append(props, int(img.At(q, r, c)))
		}
		if img.HasAlpha {
			props = append(props, int(img.At(3, r, c)))
		}
	}
	props = append(props, int(guess), w)
	var diffLTL, diffTLT int
	if r > 0 && c > 0 {
		diffLTL = int(L - TL)
		diffTLT = int(TL - T)
	}
	props = append(props, diffLTL, diffTLT)

	// Outside the image each neighbor takes the value it is differenced
	// against, so the property is 0 at the border.
	var TR, TT, LL imaging.ColorVal
	if r > 0 && c+1 < img.Width {
		TR = img.At(p, r-1, c+1)
	} else {
		TR = T
	}
	if r >= 2 {
		TT = img.At(p, r-2, c)
	} else {
		TT = T
	}
	if c >= 2 {
		LL = img.At(p, r, c-2)
	} else {
		LL = L
	}
	props = append(props, int(T-TR), int(TT-T), int(LL-L))
	return props, guess, w
}

// ScanlinePropRanges returns the declared (data-independent) bound for
// each property ScanlineProperties produces for plane p, in the same
// order, so the context tree can be grown/serialized without needing to
// scan the image first.
func ScanlinePropRanges(ranges *imaging.ColorRanges, hasAlpha bool, p int) []ctxtree.PropRange {
	diff := ctxtree.PropRange{
		Min: int(ranges.Min(p) - ranges.Max(p)),
		Max: int(ranges.Max(p) - ranges.Min(p)),
	}
	var out []ctxtree.PropRange
	if p != 3 {
		for q := 0; q < p; q++ {
			out = append(out, ctxtree.PropRange{Min: int(ranges.Min(q)), Max: int(ranges.Max(q))})
		}
		if hasAlpha {
			out = append(out, ctxtree.PropRange{Min: int(ranges.Min(3)), Max: int(ranges.Max(3))})
		}
	}
	out = append(out,
		ctxtree.PropRange{Min: int(ranges.Min(p)), Max: int(ranges.Max(p))}, // guess
		ctxtree.PropRange{Min: 0, Max: 3},                                   // which (declared [0,3], only 0..2 ever emitted)
		diff, diff,                                                          // L-TL, TL-T
		diff, diff, diff, // T-TR, TT-T, LL-L
	)
	return out
}
