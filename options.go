package flif

// Mode selects the interleaving order used to code an image.
type Mode int

const (
	// ModeAuto picks Zoom for every image, including a 1x1 image, which
	// has exactly one pixel and no residual data to code at all (matching
	// the CLI default).
	ModeAuto Mode = iota
	ModeScanline
	ModeZoom
)

// DefaultTreeLearnRepeats is how many times the context-tree learner
// re-scans the image, growing the tree one level deeper each time,
// before freezing it for the final emit pass.
const DefaultTreeLearnRepeats = 2

// Options configures Encode.
type Options struct {
	Mode             Mode
	TreeLearnRepeats int // 0 means DefaultTreeLearnRepeats
}

func (o Options) repeats() int {
	if o.TreeLearnRepeats > 0 {
		return o.TreeLearnRepeats
	}
	return DefaultTreeLearnRepeats
}

func (o Options) mode(img *Image) Mode {
	if o.Mode != ModeAuto {
		return o.Mode
	}
	return ModeZoom
}

// DecodeOptions configures Decode.
type DecodeOptions struct {
	// Truncate, when set, stops decoding a zoom-mode image after coding
	// step LastI (0 is a valid step count: it stops before any residual
	// is read at all); the remaining pyramid is filled by interpolation
	// and the result is reported as truncated. The zero value of
	// DecodeOptions always decodes fully, regardless of LastI.
	Truncate bool
	LastI    int
}

// maxSteps returns the step budget to hand to the zoom decoder: -1 for
// unlimited when Truncate is unset, so Decode's default zero value never
// accidentally truncates at step zero.
func (o DecodeOptions) maxSteps() int {
	if !o.Truncate {
		return -1
	}
	return o.LastI
}
