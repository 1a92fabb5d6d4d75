package flif

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/jsneyers/go-flif/internal/imaging"
	"github.com/jsneyers/go-flif/internal/rac"
)

const nameAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_"

const (
	magicScanline = "FLI1"
	magicZoom     = "FLI2"
)

func writeName(w rac.Writer, s string) {
	rac.WriteUniformInt(w, 3, 8, len(s))
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(nameAlphabet, s[i])
		rac.WriteUniformInt(w, 0, len(nameAlphabet)-1, idx)
	}
}

func readName(r *rac.Decoder) (string, error) {
	n := rac.ReadUniformInt(r, 3, 8)
	buf := make([]byte, n)
	for i := range buf {
		idx := rac.ReadUniformInt(r, 0, len(nameAlphabet)-1)
		if idx < 0 || idx >= len(nameAlphabet) {
			return "", fmt.Errorf("%w: corrupt name symbol", ErrFormat)
		}
		buf[i] = nameAlphabet[idx]
	}
	return string(buf), nil
}

func bitdepthOf(r imaging.Range) int {
	span := int(r.Max - r.Min)
	if span <= 0 {
		return 1
	}
	d := bits.Len(uint(span))
	if d > 16 {
		d = 16
	}
	return d
}

func writeHeader(enc *rac.Encoder, img *Image, ranges *ColorRanges, mode Mode) {
	magic := magicZoom
	if mode == ModeScanline {
		magic = magicScanline
	}
	writeName(enc, magic)
	rac.WriteUniformInt(enc, 1, 16, img.NumPlanes)
	rac.WriteUniformInt(enc, 1, 65536, img.Width)
	rac.WriteUniformInt(enc, 1, 65536, img.Height)
	enc.WriteUniformBit(img.HasAlpha)
	for p := 0; p < img.NumPlanes; p++ {
		rac.WriteUniformInt(enc, 1, 16, bitdepthOf(ranges.Planes[p]))
		rac.WriteUniformInt(enc, -(1 << 23), 1<<23, int(ranges.Min(p)))
		rac.WriteUniformInt(enc, int(ranges.Min(p)), 1<<23, int(ranges.Max(p)))
	}
}

type header struct {
	mode      Mode
	numPlanes int
	width     int
	height    int
	hasAlpha  bool
	ranges    *ColorRanges
}

func readHeader(dec *rac.Decoder) (*header, error) {
	magic, err := readName(dec)
	if err != nil {
		return nil, err
	}
	var mode Mode
	switch magic {
	case magicScanline:
		mode = ModeScanline
	case magicZoom:
		mode = ModeZoom
	default:
		return nil, fmt.Errorf("%w: unrecognized magic %q", ErrFormat, magic)
	}

	numPlanes := rac.ReadUniformInt(dec, 1, 16)
	width := rac.ReadUniformInt(dec, 1, 65536)
	height := rac.ReadUniformInt(dec, 1, 65536)
	hasAlpha := dec.ReadUniformBit()

	planeRanges := make([]imaging.Range, numPlanes)
	for p := 0; p < numPlanes; p++ {
		_ = rac.ReadUniformInt(dec, 1, 16) // bitdepth: informational, ranges below are authoritative
		mn := rac.ReadUniformInt(dec, -(1 << 23), 1<<23)
		mx := rac.ReadUniformInt(dec, mn, 1<<23)
		planeRanges[p] = imaging.Range{Min: imaging.ColorVal(mn), Max: imaging.ColorVal(mx)}
	}

	return &header{
		mode:      mode,
		numPlanes: numPlanes,
		width:     width,
		height:    height,
		hasAlpha:  hasAlpha,
		ranges:    imaging.NewColorRanges(planeRanges),
	}, nil
}
