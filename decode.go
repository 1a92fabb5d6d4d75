package flif

import (
	"io"

	"github.com/jsneyers/go-flif/internal/imaging"
	"github.com/jsneyers/go-flif/internal/pass"
	"github.com/jsneyers/go-flif/internal/rac"
	"github.com/jsneyers/go-flif/internal/transform"
)

// DecodeResult is the outcome of a Decode call.
type DecodeResult struct {
	Image     *Image
	Ranges    *ColorRanges
	Truncated bool
}

// Decode reads a FLIF-style stream from r. It always returns as complete
// a reconstruction as the stream allows: on an unexpected end of stream
// during zoom-mode main data, Result.Truncated is set and the
// unread portion of the pyramid is filled by interpolation rather than
// surfaced as an error. ErrChecksumMismatch is returned (alongside the
// still-usable result) only when the stream was read in full and its
// trailing checksum does not match.
func Decode(r io.Reader, opts DecodeOptions) (*DecodeResult, error) {
	dec := rac.NewDecoder(r, rac.Config40)

	hdr, err := readHeader(dec)
	if err != nil {
		return nil, err
	}

	img := imaging.NewImage(hdr.width, hdr.height, hdr.numPlanes)
	img.HasAlpha = hdr.hasAlpha

	chain, finalRanges, codedPlanes, err := transform.Load(dec, hdr.ranges)
	if err != nil {
		return nil, err
	}

	truncated := false
	switch hdr.mode {
	case ModeScanline:
		err = pass.DecodeScanline(dec, img, finalRanges, codedPlanes, hdr.hasAlpha)
	default:
		truncated, err = pass.DecodeZoom(dec, img, finalRanges, codedPlanes, hdr.hasAlpha, opts.maxSteps())
	}
	if err != nil {
		return nil, err
	}

	computedSum := imaging.Checksum(img)
	hi := rac.ReadUniformInt(dec, 0, 0xFFFF)
	lo := rac.ReadUniformInt(dec, 0, 0xFFFF)
	storedSum := uint32(hi)<<16 | uint32(lo)
	if dec.Truncated() {
		truncated = true
	}

	chain.Invert(img, finalRanges)

	result := &DecodeResult{Image: img, Ranges: hdr.ranges, Truncated: truncated}
	if !truncated && computedSum != storedSum {
		return result, ErrChecksumMismatch
	}
	return result, nil
}
