package pass

import (
	"github.com/jsneyers/go-flif/internal/ctxtree"
	"github.com/jsneyers/go-flif/internal/imaging"
	"github.com/jsneyers/go-flif/internal/predict"
	"github.com/jsneyers/go-flif/internal/rac"
	"github.com/jsneyers/go-flif/internal/symbol"
)

// nbNoLearnZooms excludes the shallowest (finest-detail) zoom levels from
// the rough warm-up pass: by the time the pyramid reaches them there is
// enough already-decoded context that warming the tree up further there
// buys little.
const nbNoLearnZooms = 2

// zoomPlaneState holds what EncodeZoom/DecodeZoom need to resume coding
// a given plane's pixel data once its top pixel and context tree are
// already on the wire.
type zoomPlaneState struct {
	active bool
	lo, hi int
	tree   *ctxtree.Tree
}

// scheduleTicks builds the per-(plane, zoom level) emission order that
// both EncodeZoom and DecodeZoom drive their pixel loop from: every
// plane's levels zooms-1..0, interleaved per predict.PlaneZoomSchedule
// rather than one plane finishing before the next starts. The top level
// (the single top-of-pyramid pixel) is coded directly via uniform
// bisection ahead of this and is never part of the schedule.
func scheduleTicks(zooms, codedPlanes int, order []int) []predict.PlaneZoom {
	if zooms < 1 {
		return nil
	}
	return predict.PlaneZoomSchedule(codedPlanes, zooms-1, order)
}

// EncodeZoom codes codedPlanes planes of img across the zoom pyramid. For
// each plane it first writes the top pixel and a context tree (built from
// a rough warm-up pass over the coarser levels plus the configured number
// of full tree-learning repeats), in alpha-first order so a color plane's
// properties can read the alpha plane's tree before needing it. It then
// emits every plane's remaining pixels in the interleaved (plane, zoom
// level) tick order from predict.PlaneZoomSchedule, so the bitstream
// advances every plane's resolution together instead of finishing one
// plane before starting the next.
func EncodeZoom(enc *rac.Encoder, img *imaging.Image, ranges *imaging.ColorRanges, codedPlanes int, hasAlpha bool, treeLearnRepeats int) error {
	zooms := img.Zooms()
	order := planeOrder(codedPlanes, hasAlpha)
	states := make([]zoomPlaneState, codedPlanes)

	for _, p := range order {
		if p >= codedPlanes {
			continue
		}
		if constantPlane(ranges, p) {
			continue
		}
		lo, hi := int(ranges.Min(p)), int(ranges.Max(p))
		rac.WriteUniformInt(enc, lo, hi, int(img.At(p, 0, 0)))
		propRanges := predict.ZoomPropRanges(ranges, hasAlpha, p)
		roughZL := zooms - nbNoLearnZooms - 1
		if roughZL < 0 {
			roughZL = 0
		}

		visitLevels := func(from, to int, yield func(props []int, lo, hi, residual int)) {
			for z := from; z >= to; z-- {
				img.ForEachNewPixel(z, func(r, c int) {
					props, guess, _ := predict.ZoomProperties(img, ranges, p, z, r, c)
					if transparentColor(img, ranges, hasAlpha, p, r, c) {
						img.Set(p, r, c, guess)
						return
					}
					v := img.At(p, r, c)
					yield(props, lo-int(guess), hi-int(guess), int(v-guess))
				})
			}
		}

		tree := ctxtree.NewTree(propRanges, symbol.SimpleFactory)
		var dummy rac.Dummy
		// Rough warm-up: a single pass over the coarse levels only, no
		// growth — this is the "rough pass", always exactly one repeat
		// regardless of treeLearnRepeats (see the open-question note in
		// the repo's design notes).
		if roughZL < zooms {
			visitLevels(zooms-1, roughZL, func(props []int, lo, hi, residual int) {
				tree.WriteLearn(dummy, props, lo, hi, residual)
			})
		}
		for i := 0; i < treeLearnRepeats; i++ {
			visitLevels(zooms-1, 0, func(props []int, lo, hi, residual int) {
				tree.WriteLearn(dummy, props, lo, hi, residual)
			})
			tree.GrowStep()
		}
		tree.Simplify(symbol.MultiscaleFactory)

		mc := ctxtree.NewMetaCoder()
		mc.WriteTree(enc, tree)

		states[p] = zoomPlaneState{active: true, lo: lo, hi: hi, tree: tree}
	}

	for _, tick := range scheduleTicks(zooms, codedPlanes, order) {
		st := states[tick.Plane]
		if !st.active {
			continue
		}
		p, z := tick.Plane, tick.Zoom
		img.ForEachNewPixel(z, func(r, c int) {
			props, guess, _ := predict.ZoomProperties(img, ranges, p, z, r, c)
			if transparentColor(img, ranges, hasAlpha, p, r, c) {
				img.Set(p, r, c, guess)
				return
			}
			v := img.At(p, r, c)
			st.tree.WriteFinal(enc, props, st.lo-int(guess), st.hi-int(guess), int(v-guess))
		})
	}

	if enc.Err() != nil {
		return enc.Err()
	}
	return nil
}

// DecodeZoom mirrors EncodeZoom: it reads each plane's top pixel and
// context tree in the same alpha-first order, then reads the remaining
// pixels in the same interleaved (plane, zoom level) tick order, so a
// truncated stream degrades every plane's resolution together rather
// than leaving later planes untouched at their predictor guess while an
// earlier plane finishes completely.
//
// maxSteps bounds how many per-pixel tree reads DecodeZoom will perform
// across the whole call (a negative value means unlimited); this is the
// hook a truncated decode uses to stop pulling bits from an
// unexpectedly short stream partway through the pyramid. Once the
// budget is spent, every remaining pixel is filled with its predictor's
// guess instead of reading a residual — exactly the degraded
// progressive preview a partial file is supposed to produce. The
// returned bool reports whether the budget was actually exhausted.
func DecodeZoom(dec *rac.Decoder, img *imaging.Image, ranges *imaging.ColorRanges, codedPlanes int, hasAlpha bool, maxSteps int) (bool, error) {
	zooms := img.Zooms()
	order := planeOrder(codedPlanes, hasAlpha)
	states := make([]zoomPlaneState, codedPlanes)

	for _, p := range order {
		if p >= codedPlanes {
			continue
		}
		if constantPlane(ranges, p) {
			fillConstant(img, ranges, p)
			continue
		}
		lo, hi := int(ranges.Min(p)), int(ranges.Max(p))
		img.Set(p, 0, 0, imaging.ColorVal(rac.ReadUniformInt(dec, lo, hi)))
		propRanges := predict.ZoomPropRanges(ranges, hasAlpha, p)

		mc := ctxtree.NewMetaCoder()
		tree := mc.ReadTree(dec, propRanges, symbol.MultiscaleFactory)

		states[p] = zoomPlaneState{active: true, lo: lo, hi: hi, tree: tree}
	}

	truncated := false
	step := 0
	for _, tick := range scheduleTicks(zooms, codedPlanes, order) {
		st := states[tick.Plane]
		if !st.active {
			continue
		}
		p, z := tick.Plane, tick.Zoom
		img.ForEachNewPixel(z, func(r, c int) {
			props, guess, _ := predict.ZoomProperties(img, ranges, p, z, r, c)
			if transparentColor(img, ranges, hasAlpha, p, r, c) {
				img.Set(p, r, c, guess)
				return
			}
			if maxSteps >= 0 && step >= maxSteps {
				truncated = true
				img.Set(p, r, c, guess)
				return
			}
			step++
			residual := st.tree.ReadFinal(dec, props, st.lo-int(guess), st.hi-int(guess))
			img.Set(p, r, c, guess+imaging.ColorVal(residual))
		})
	}
	return truncated, nil
}
