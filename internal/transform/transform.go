// Package transform implements the Transform Adapter chain: reversible,
// composable preprocessing stages applied before prediction/coding and
// undone, in reverse order, after decoding.
package transform

import (
	"github.com/jsneyers/go-flif/internal/imaging"
	"github.com/jsneyers/go-flif/internal/rac"
)

// Transform is one stage of the adapter chain. A transform is always
// reversible: Data/InvData are exact inverses given the same side
// metadata (restored via Save/Load).
type Transform interface {
	// Name identifies the transform in the file header.
	Name() string

	// Applicable reports, at encode time, whether this transform should
	// be inserted into the chain for img. YIQ/BND decide from ranges
	// alone; PLT/ACB inspect img's actual pixel data (e.g. the count of
	// distinct colors). A transform judged inapplicable is skipped and
	// never appears in the header.
	Applicable(img *imaging.Image, in *imaging.ColorRanges) bool

	// Data applies the transform forward, in place, over img (which was
	// built using in's ranges), and returns the ranges pixels hold after
	// the transform.
	Data(img *imaging.Image, in *imaging.ColorRanges) *imaging.ColorRanges

	// InvData applies the transform's inverse, in place, over img (whose
	// pixels currently hold transformed values under `cur`), restoring
	// the pre-transform representation.
	InvData(img *imaging.Image, cur *imaging.ColorRanges)

	// Save serializes any side metadata (palette entries, observed
	// bounds) the decoder needs to invert this transform.
	Save(w rac.Writer)

	// Load deserializes the side metadata Save wrote and returns the
	// ranges pixels hold after this transform is applied (mirroring
	// Data's return value without re-deriving it from pixel data).
	Load(r *rac.Decoder, in *imaging.ColorRanges) *imaging.ColorRanges

	// CodedPlanes returns how many of numPlanes still need independent
	// entropy coding after this transform (PLT collapses color+alpha
	// planes behind a single palette-index plane).
	CodedPlanes(numPlanes int) int
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
