package predict

import (
	"github.com/jsneyers/go-flif/internal/ctxtree"
	"github.com/jsneyers/go-flif/internal/imaging"
)

// ZoomProperties builds the property vector and range-snapped guess for
// plane p at full-resolution pixel (r,c), which must be one of the pixels
// ForEachNewPixel(z, ...) reports for this zoom level.
//
// Even z introduces intermediate rows: the two already-known neighbors
// straddling the gap are the rows above and below (from the coarser,
// already-decoded z+1 grid), and the nearest same-row neighbor already
// coded earlier in this same pass is to the left. Odd z is the transpose:
// intermediate columns, straddled by already-known left/right neighbors,
// with the nearest same-column neighbor already coded above.
func ZoomProperties(img *imaging.Image, ranges *imaging.ColorRanges, p, z, r, c int) (props []int, guess imaging.ColorVal, which int) {
	grey := ranges.Grey(p)
	rowStride := imaging.ZoomRowStride(z)
	colStride := imaging.ZoomColStride(z)

	at := func(rr, cc int) imaging.ColorVal {
		if rr < 0 || rr >= img.Height || cc < 0 || cc >= img.Width {
			return grey
		}
		return img.At(p, rr, cc)
	}

	var near, lo, hi, loDiag, hiDiag, far imaging.ColorVal
	if imaging.IsNewRowLevel(z) {
		near = at(r, c-colStride) // same row, already coded earlier this pass
		lo = at(r-rowStride, c)   // top: coarser level, always known
		hi = at(r+rowStride, c)   // bottom: coarser level, always known
		loDiag = at(r-rowStride, c-colStride)
		hiDiag = at(r-rowStride, c+colStride)
		far = at(r, c-2*colStride)
	} else {
		near = at(r-rowStride, c) // same column, already coded earlier this pass
		lo = at(r, c-colStride)   // left: coarser level, always known
		hi = at(r, c+colStride)   // right: coarser level, always known
		loDiag = at(r-rowStride, c-colStride)
		hiDiag = at(r+rowStride, c-colStride)
		far = at(r-2*rowStride, c)
	}

	gradientA := near + lo - loDiag
	gradientB := near + hi - hiDiag
	avg := (lo + hi) / 2
	g, w := median3(avg, gradientA, gradientB)
	guess = ranges.Snap(p, g)

	n := earlierPlaneCount(img.HasAlpha, p)
	extra := p == 0 || p == 3
	size := n + 6
	if extra {
		size += 2
	}
	props = make([]int, 0, size)
	if p != 3 {
		for q := 0; q < p; q++ {
			props = append(props, int(img.At(q, r, c)))
		}
		if img.HasAlpha {
			props = append(props, int(img.At(3, r, c)))
		}
	}
	props = append(props, int(lo-hi))
	props = append(props, int(guess), w)
	props = append(props, int(near-loDiag), int(loDiag-lo))
	props = append(props, int(lo-hiDiag))
	if extra {
		props = append(props, int(far-near), int(far-lo))
	}
	return props, guess, w
}

// ZoomPropRanges mirrors ZoomProperties' property layout with declared,
// data-independent bounds.
func ZoomPropRanges(ranges *imaging.ColorRanges, hasAlpha bool, p int) []ctxtree.PropRange {
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
	out = append(out, diff)
	out = append(out,
		ctxtree.PropRange{Min: int(ranges.Min(p)), Max: int(ranges.Max(p))}, // guess
		ctxtree.PropRange{Min: 0, Max: 3},                                   // which
		diff, diff, diff,
	)
	if p == 0 || p == 3 {
		out = append(out, diff, diff)
	}
	return out
}
