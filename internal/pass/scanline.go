package pass

import (
	"fmt"

	"github.com/jsneyers/go-flif/internal/ctxtree"
	"github.com/jsneyers/go-flif/internal/imaging"
	"github.com/jsneyers/go-flif/internal/predict"
	"github.com/jsneyers/go-flif/internal/rac"
	"github.com/jsneyers/go-flif/internal/symbol"
)

// EncodeScanline codes codedPlanes planes of img, in scanline (raster)
// order, writing the per-plane context tree (via a fresh MetaCoder per
// plane) followed by the final adaptive pass.
func EncodeScanline(enc *rac.Encoder, img *imaging.Image, ranges *imaging.ColorRanges, codedPlanes int, hasAlpha bool, treeLearnRepeats int) error {
	for _, p := range planeOrder(codedPlanes, hasAlpha) {
		if p >= codedPlanes {
			continue
		}
		if constantPlane(ranges, p) {
			continue
		}
		lo, hi := int(ranges.Min(p)), int(ranges.Max(p))
		propRanges := predict.ScanlinePropRanges(ranges, hasAlpha, p)

		tree := buildTree(propRanges, treeLearnRepeats, func(yield func(props []int, lo, hi, residual int)) {
			for r := 0; r < img.Height; r++ {
				for c := 0; c < img.Width; c++ {
					props, guess, _ := predict.ScanlineProperties(img, ranges, p, r, c)
					if transparentColor(img, ranges, hasAlpha, p, r, c) {
						img.Set(p, r, c, guess)
						continue
					}
					v := img.At(p, r, c)
					yield(props, lo-int(guess), hi-int(guess), int(v-guess))
				}
			}
		})

		mc := ctxtree.NewMetaCoder()
		mc.WriteTree(enc, tree)

		for r := 0; r < img.Height; r++ {
			for c := 0; c < img.Width; c++ {
				props, guess, _ := predict.ScanlineProperties(img, ranges, p, r, c)
				if transparentColor(img, ranges, hasAlpha, p, r, c) {
					img.Set(p, r, c, guess)
					continue
				}
				v := img.At(p, r, c)
				tree.WriteFinal(enc, props, lo-int(guess), hi-int(guess), int(v-guess))
			}
		}
	}
	if enc.Err() != nil {
		return fmt.Errorf("pass: scanline encode: %w", enc.Err())
	}
	return nil
}

// DecodeScanline mirrors EncodeScanline: img must already be allocated at
// the target geometry; constant planes are filled with their single
// value, and planes beyond codedPlanes are left at their zero value for
// the caller (or a transform's InvData) to fill in.
func DecodeScanline(dec *rac.Decoder, img *imaging.Image, ranges *imaging.ColorRanges, codedPlanes int, hasAlpha bool) error {
	for _, p := range planeOrder(codedPlanes, hasAlpha) {
		if p >= codedPlanes {
			continue
		}
		if constantPlane(ranges, p) {
			fillConstant(img, ranges, p)
			continue
		}
		lo, hi := int(ranges.Min(p)), int(ranges.Max(p))
		propRanges := predict.ScanlinePropRanges(ranges, hasAlpha, p)

		mc := ctxtree.NewMetaCoder()
		tree := mc.ReadTree(dec, propRanges, symbol.MultiscaleFactory)

		for r := 0; r < img.Height; r++ {
			for c := 0; c < img.Width; c++ {
				props, guess, _ := predict.ScanlineProperties(img, ranges, p, r, c)
				if transparentColor(img, ranges, hasAlpha, p, r, c) {
					img.Set(p, r, c, guess)
					continue
				}
				residual := tree.ReadFinal(dec, props, lo-int(guess), hi-int(guess))
				img.Set(p, r, c, guess+imaging.ColorVal(residual))
			}
		}
	}
	return nil
}
