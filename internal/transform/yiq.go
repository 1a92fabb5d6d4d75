package transform

import (
	"github.com/jsneyers/go-flif/internal/imaging"
	"github.com/jsneyers/go-flif/internal/rac"
)

// YIQ is a fully reversible color decorrelation transform applied to the
// first three planes (named Y/I/Q after FLIF's convention, though the
// actual lifting steps are the YCoCg-R scheme: exact integer inverses,
// no rounding loss). A present fourth (alpha) plane passes through
// untouched.
type YIQ struct {
	yRange, iRange, qRange imaging.Range
}

func (t *YIQ) Name() string { return "YIQ" }

func (t *YIQ) Applicable(img *imaging.Image, in *imaging.ColorRanges) bool {
	return in.NumPlanes() >= 3
}

// forward is the YCoCg-R lifting step: Co=R-B, t=B+floor(Co/2),
// Cg=G-t, Y=t+floor(Cg/2).
func (t *YIQ) forward(r, g, b imaging.ColorVal) (y, co, cg imaging.ColorVal) {
	co = r - b
	tt := b + imaging.ColorVal(floorDiv(int(co), 2))
	cg = g - tt
	y = tt + imaging.ColorVal(floorDiv(int(cg), 2))
	return
}

// inverse undoes forward exactly: t=Y-floor(Cg/2), G=Cg+t,
// B=t-floor(Co/2), R=B+Co.
func (t *YIQ) inverse(y, co, cg imaging.ColorVal) (r, g, b imaging.ColorVal) {
	tt := y - imaging.ColorVal(floorDiv(int(cg), 2))
	g = cg + tt
	b = tt - imaging.ColorVal(floorDiv(int(co), 2))
	r = b + co
	return
}

func (t *YIQ) Data(img *imaging.Image, in *imaging.ColorRanges) *imaging.ColorRanges {
	for r := 0; r < img.Height; r++ {
		for c := 0; c < img.Width; c++ {
			y, co, cg := t.forward(img.At(0, r, c), img.At(1, r, c), img.At(2, r, c))
			img.Set(0, r, c, y)
			img.Set(1, r, c, co)
			img.Set(2, r, c, cg)
		}
	}
	return t.ranges(in)
}

func (t *YIQ) InvData(img *imaging.Image, cur *imaging.ColorRanges) {
	for r := 0; r < img.Height; r++ {
		for c := 0; c < img.Width; c++ {
			rr, g, b := t.inverse(img.At(0, r, c), img.At(1, r, c), img.At(2, r, c))
			img.Set(0, r, c, rr)
			img.Set(1, r, c, g)
			img.Set(2, r, c, b)
		}
	}
}

// ranges computes conservative (always-containing, not necessarily
// tightest) output bounds analytically from the input bounds, so the
// decoder can derive identical ranges without re-scanning pixels.
func (t *YIQ) ranges(in *imaging.ColorRanges) *imaging.ColorRanges {
	minR, maxR := in.Min(0), in.Max(0)
	minG, maxG := in.Min(1), in.Max(1)
	minB, maxB := in.Min(2), in.Max(2)

	coMin, coMax := minR-maxB, maxR-minB
	tMin := minB + imaging.ColorVal(floorDiv(int(coMin), 2))
	tMax := maxB + imaging.ColorVal(floorDiv(int(coMax), 2))
	cgMin, cgMax := minG-tMax, maxG-tMin
	yMin := tMin + imaging.ColorVal(floorDiv(int(cgMin), 2))
	yMax := tMax + imaging.ColorVal(floorDiv(int(cgMax), 2))

	t.yRange = imaging.Range{Min: yMin, Max: yMax}
	t.iRange = imaging.Range{Min: coMin, Max: coMax}
	t.qRange = imaging.Range{Min: cgMin, Max: cgMax}

	out := append([]imaging.Range(nil), in.Planes...)
	out[0], out[1], out[2] = t.yRange, t.iRange, t.qRange
	return imaging.NewColorRanges(out)
}

func (t *YIQ) Save(w rac.Writer) {}

func (t *YIQ) Load(r *rac.Decoder, in *imaging.ColorRanges) *imaging.ColorRanges {
	return t.ranges(in)
}

func (t *YIQ) CodedPlanes(numPlanes int) int { return numPlanes }
