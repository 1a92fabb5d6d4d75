package flif

import (
	"fmt"
	"io"

	"github.com/jsneyers/go-flif/internal/imaging"
	"github.com/jsneyers/go-flif/internal/pass"
	"github.com/jsneyers/go-flif/internal/rac"
	"github.com/jsneyers/go-flif/internal/transform"
)

// Encode writes img to w. ranges must describe the admissible interval
// of every plane of img as originally captured (before any internal
// transform); Encode builds and applies the transform chain itself.
// img's pixel data is mutated in place by the transform chain — pass a
// clone if the caller still needs the original values afterward.
func Encode(w io.Writer, img *Image, ranges *ColorRanges, opts Options) error {
	mode := opts.mode(img)

	enc := rac.NewEncoder(w, rac.Config40)

	writeHeader(enc, img, ranges, mode)

	chain, finalRanges, codedPlanes := transform.Build(img, ranges)
	chain.Save(enc)

	var err error
	switch mode {
	case ModeScanline:
		err = pass.EncodeScanline(enc, img, finalRanges, codedPlanes, img.HasAlpha, opts.repeats())
	default:
		err = pass.EncodeZoom(enc, img, finalRanges, codedPlanes, img.HasAlpha, opts.repeats())
	}
	if err != nil {
		return err
	}

	sum := imaging.Checksum(img)
	rac.WriteUniformInt(enc, 0, 0xFFFF, int(sum>>16))
	rac.WriteUniformInt(enc, 0, 0xFFFF, int(sum&0xFFFF))

	if err := enc.Flush(); err != nil {
		return fmt.Errorf("flif: flush: %w", err)
	}
	if enc.Err() != nil {
		return enc.Err()
	}
	return nil
}
