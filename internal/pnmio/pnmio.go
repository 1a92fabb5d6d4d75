// Package pnmio adapts between the codec's internal plane-major Image
// and the standard library's image.Image, so the command-line driver
// can read and write ordinary PNG files without the core packages ever
// importing image/color themselves.
package pnmio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/jsneyers/go-flif/internal/imaging"
)

// Decode reads a PNG (or any format registered with the image package)
// from r and converts it to the codec's internal representation. Planes
// are always R, G, B and, when the source has non-opaque alpha
// anywhere, a fourth alpha plane.
func Decode(r io.Reader) (*imaging.Image, *imaging.ColorRanges, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, nil, fmt.Errorf("pnmio: decode: %w", err)
	}
	return FromImage(src), rangesFor(hasAlpha(src)), nil
}

// FromImage converts a decoded standard-library image into the codec's
// plane-major Image, detecting whether a genuine (non-fully-opaque)
// alpha channel is present.
func FromImage(src image.Image) *imaging.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	alpha := hasAlpha(src)
	numPlanes := 3
	if alpha {
		numPlanes = 4
	}
	img := imaging.NewImage(w, h, numPlanes)
	img.HasAlpha = alpha

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			img.Set(0, y, x, imaging.ColorVal(r>>8))
			img.Set(1, y, x, imaging.ColorVal(g>>8))
			img.Set(2, y, x, imaging.ColorVal(bl>>8))
			if alpha {
				img.Set(3, y, x, imaging.ColorVal(a>>8))
			}
		}
	}
	return img
}

// hasAlpha reports whether src carries any pixel with alpha below full
// opacity; fully opaque images are coded as plain RGB.
func hasAlpha(src image.Image) bool {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := src.At(x, y).RGBA()
			if a != 0xFFFF {
				return true
			}
		}
	}
	return false
}

func rangesFor(alpha bool) *imaging.ColorRanges {
	planes := []imaging.Range{{Min: 0, Max: 255}, {Min: 0, Max: 255}, {Min: 0, Max: 255}}
	if alpha {
		planes = append(planes, imaging.Range{Min: 0, Max: 255})
	}
	return imaging.NewColorRanges(planes)
}

// Encode writes img as a PNG to w, using alpha only when img.HasAlpha.
func Encode(w io.Writer, img *imaging.Image) error {
	return png.Encode(w, ToImage(img))
}

// ToImage converts the codec's internal Image back into a standard
// library image.Image, NRGBA when alpha is present, RGBA otherwise.
func ToImage(img *imaging.Image) image.Image {
	if img.HasAlpha && img.NumPlanes >= 4 {
		out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
		for y := 0; y < img.Height; y++ {
			for x := 0; x < img.Width; x++ {
				out.SetNRGBA(x, y, color.NRGBA{
					R: clamp8(img.At(0, y, x)),
					G: clamp8(img.At(1, y, x)),
					B: clamp8(img.At(2, y, x)),
					A: clamp8(img.At(3, y, x)),
				})
			}
		}
		return out
	}

	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetRGBA(x, y, color.RGBA{
				R: clamp8(img.At(0, y, x)),
				G: clamp8(img.At(1, y, x)),
				B: clamp8(img.At(2, y, x)),
				A: 255,
			})
		}
	}
	return out
}

func clamp8(v imaging.ColorVal) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
