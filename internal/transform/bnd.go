package transform

import (
	"github.com/jsneyers/go-flif/internal/imaging"
	"github.com/jsneyers/go-flif/internal/rac"
)

// BND narrows each plane's declared range to the interval actually used
// by the image. It never changes a pixel value; its only effect is
// tighter ranges for every later transform and for the predictor's
// symbol coder, which shrinks the bounded-integer ranges it has to code
// without losing any information (the bounds themselves are coded once,
// in the header, each within the previous stage's declared range).
type BND struct {
	declared []imaging.Range
	bounds   []imaging.Range
}

func (t *BND) Name() string { return "BND" }

func (t *BND) Applicable(img *imaging.Image, in *imaging.ColorRanges) bool { return true }

func (t *BND) Data(img *imaging.Image, in *imaging.ColorRanges) *imaging.ColorRanges {
	t.declared = append([]imaging.Range(nil), in.Planes...)
	t.bounds = make([]imaging.Range, in.NumPlanes())
	for p := 0; p < in.NumPlanes(); p++ {
		mn, mx := in.Max(p), in.Min(p)
		for _, v := range img.Plane(p) {
			if v < mn {
				mn = v
			}
			if v > mx {
				mx = v
			}
		}
		if mn > mx { // zero-pixel plane: keep the declared bound
			mn, mx = in.Min(p), in.Max(p)
		}
		t.bounds[p] = imaging.Range{Min: mn, Max: mx}
	}
	return imaging.NewColorRanges(t.bounds)
}

func (t *BND) InvData(img *imaging.Image, cur *imaging.ColorRanges) {
	// Identity: BND never alters pixel values, only the declared bounds.
}

func (t *BND) Save(w rac.Writer) {
	for p, b := range t.bounds {
		d := t.declared[p]
		rac.WriteUniformInt(w, int(d.Min), int(d.Max), int(b.Min))
		rac.WriteUniformInt(w, int(b.Min), int(d.Max), int(b.Max))
	}
}

func (t *BND) Load(r *rac.Decoder, in *imaging.ColorRanges) *imaging.ColorRanges {
	t.declared = append([]imaging.Range(nil), in.Planes...)
	t.bounds = make([]imaging.Range, in.NumPlanes())
	for p := 0; p < in.NumPlanes(); p++ {
		d := in.Planes[p]
		mn := rac.ReadUniformInt(r, int(d.Min), int(d.Max))
		mx := rac.ReadUniformInt(r, mn, int(d.Max))
		t.bounds[p] = imaging.Range{Min: imaging.ColorVal(mn), Max: imaging.ColorVal(mx)}
	}
	return imaging.NewColorRanges(t.bounds)
}

func (t *BND) CodedPlanes(numPlanes int) int { return numPlanes }
