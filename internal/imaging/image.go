// Package imaging holds the codec's plane-addressed raster model: the
// Image type, per-plane ColorRanges, zoom-pyramid geometry, and the
// checksum. It has no dependency on the coder/predictor/transform
// packages so any of them — and the public root package — can depend on
// it without a cycle.
package imaging

// ColorVal is a pixel or residual value, wide enough for the 20-bit
// values the predictors and symbol coder can produce (residuals can
// briefly exceed a plane's nominal bit depth during a reversible color
// transform).
type ColorVal = int32

// Range is an inclusive, per-plane admissible value interval.
type Range struct {
	Min, Max ColorVal
}

// ColorRanges tracks, per plane, the admissible value interval. Transforms
// narrow or widen it as they are applied; predictors consult it to clamp
// ("snap") a guess into the admissible set and to size the symbol coder's
// bounded-integer ranges.
type ColorRanges struct {
	Planes []Range
}

// NewColorRanges returns a ColorRanges with one Range per plane.
func NewColorRanges(ranges []Range) *ColorRanges {
	return &ColorRanges{Planes: append([]Range(nil), ranges...)}
}

// NumPlanes is the number of planes this ColorRanges covers.
func (c *ColorRanges) NumPlanes() int { return len(c.Planes) }

// Min is the admissible minimum for plane p.
func (c *ColorRanges) Min(p int) ColorVal { return c.Planes[p].Min }

// Max is the admissible maximum for plane p.
func (c *ColorRanges) Max(p int) ColorVal { return c.Planes[p].Max }

// Snap clamps guess into plane p's admissible interval. Concrete
// transforms that need a richer snap (e.g. a palette plane only admitting
// indices that are actually in the palette) wrap a ColorRanges and
// override this behavior; the base implementation is a plain clamp.
func (c *ColorRanges) Snap(p int, guess ColorVal) ColorVal {
	r := c.Planes[p]
	if guess < r.Min {
		return r.Min
	}
	if guess > r.Max {
		return r.Max
	}
	return guess
}

// Grey is the out-of-bounds sentinel used by predictors: the midpoint of
// a plane's admissible interval.
func (c *ColorRanges) Grey(p int) ColorVal {
	return (c.Planes[p].Min + c.Planes[p].Max) / 2
}

// Image is a rectangular, plane-major raster.
type Image struct {
	Width, Height int
	NumPlanes     int
	HasAlpha      bool // plane 3 present and semantically alpha

	data [][]ColorVal // data[p][r*Width+c]
}

// NewImage returns a zeroed image of the given geometry.
func NewImage(width, height, numPlanes int) *Image {
	img := &Image{Width: width, Height: height, NumPlanes: numPlanes, data: make([][]ColorVal, numPlanes)}
	for p := range img.data {
		img.data[p] = make([]ColorVal, width*height)
	}
	return img
}

// At returns the value of plane p at (r,c).
func (img *Image) At(p, r, c int) ColorVal {
	return img.data[p][r*img.Width+c]
}

// Set assigns the value of plane p at (r,c).
func (img *Image) Set(p, r, c int, v ColorVal) {
	img.data[p][r*img.Width+c] = v
}

// Plane returns the raw row-major backing slice for plane p, for callers
// (transforms, PNG I/O) that want to operate on a whole plane at once.
func (img *Image) Plane(p int) []ColorVal {
	return img.data[p]
}
