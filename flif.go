// Package flif implements the compression core of a lossless,
// progressive image codec: a carry-propagating range coder, adaptive
// per-plane context trees, median-of-three predictors, a reversible
// transform chain, and the scanline and zoom (multi-resolution)
// interleaving orders built on top of them.
package flif

import (
	"github.com/jsneyers/go-flif/internal/imaging"
)

// ColorVal is a pixel or residual value.
type ColorVal = imaging.ColorVal

// Range is an inclusive per-plane admissible value interval.
type Range = imaging.Range

// ColorRanges tracks, per plane, the admissible value interval.
type ColorRanges = imaging.ColorRanges

// NewColorRanges returns a ColorRanges with one Range per plane.
func NewColorRanges(ranges []Range) *ColorRanges {
	return imaging.NewColorRanges(ranges)
}

// Image is a rectangular, plane-major raster: the codec session's
// working image, replacing the reference design's global file handle
// and grey[] table with an explicit value threaded through every call.
type Image = imaging.Image

// NewImage returns a zeroed image of the given geometry.
func NewImage(width, height, numPlanes int) *Image {
	return imaging.NewImage(width, height, numPlanes)
}

// Checksum computes the codec's integrity checksum over img.
func Checksum(img *Image) uint32 {
	return imaging.Checksum(img)
}
