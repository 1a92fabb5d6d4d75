package flif_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jsneyers/go-flif"
)

func gray(w, h int, px func(r, c int) int) (*flif.Image, *flif.ColorRanges) {
	img := flif.NewImage(w, h, 1)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			img.Set(0, r, c, flif.ColorVal(px(r, c)))
		}
	}
	return img, flif.NewColorRanges([]flif.Range{{Min: 0, Max: 255}})
}

func roundTrip(t *testing.T, img *flif.Image, ranges *flif.ColorRanges, opts flif.Options) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := flif.Encode(&buf, img, ranges, opts); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

// Scenario 1: 1x1 single-plane image, value 42, zoom mode.
func TestScenario1SinglePixel(t *testing.T) {
	img, ranges := gray(1, 1, func(r, c int) int { return 42 })
	data := roundTrip(t, img, ranges, flif.Options{Mode: flif.ModeZoom})

	result, err := flif.Decode(bytes.NewReader(data), flif.DecodeOptions{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := result.Image.At(0, 0, 0); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

// Scenario 2: 2x2 single-plane image, scanline mode.
func TestScenario2Scanline2x2(t *testing.T) {
	vals := [2][2]int{{0, 255}, {255, 0}}
	img, ranges := gray(2, 2, func(r, c int) int { return vals[r][c] })
	data := roundTrip(t, img, ranges, flif.Options{Mode: flif.ModeScanline})
	if len(data) == 0 {
		t.Fatal("expected at least one byte emitted")
	}

	result, err := flif.Decode(bytes.NewReader(data), flif.DecodeOptions{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if got := result.Image.At(0, r, c); int(got) != vals[r][c] {
				t.Fatalf("(%d,%d): got %d, want %d", r, c, got, vals[r][c])
			}
		}
	}
}

// Scenario 3: 8x8 synthetic gradient, zoom mode, TreeLearnRepeats=2.
func gradient8x8() (*flif.Image, *flif.ColorRanges) {
	return gray(8, 8, func(r, c int) int { return r*8 + c })
}

func TestScenario3Gradient8x8(t *testing.T) {
	img, ranges := gradient8x8()
	data := roundTrip(t, img, ranges, flif.Options{Mode: flif.ModeZoom, TreeLearnRepeats: 2})
	if len(data) >= 64 {
		t.Fatalf("expected compressed size < 64 bytes, got %d", len(data))
	}

	result, err := flif.Decode(bytes.NewReader(data), flif.DecodeOptions{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if got := result.Image.At(0, r, c); int(got) != r*8+c {
				t.Fatalf("(%d,%d): got %d, want %d", r, c, got, r*8+c)
			}
		}
	}
}

// Scenario 4: 16x16 RGBA image with a fully-transparent 8x8 quadrant.
func TestScenario4RGBATransparentQuadrant(t *testing.T) {
	const size = 16
	img := flif.NewImage(size, size, 4)
	ranges := flif.NewColorRanges([]flif.Range{
		{Min: 0, Max: 255}, {Min: 0, Max: 255}, {Min: 0, Max: 255}, {Min: 0, Max: 255},
	})
	img.HasAlpha = true

	transparent := func(r, c int) bool { return r >= size/2 && c >= size/2 }
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if transparent(r, c) {
				img.Set(0, r, c, 0)
				img.Set(1, r, c, 0)
				img.Set(2, r, c, 0)
				img.Set(3, r, c, 0)
				continue
			}
			img.Set(0, r, c, flif.ColorVal((r*7+c)%256))
			img.Set(1, r, c, flif.ColorVal((r*3+c*5)%256))
			img.Set(2, r, c, flif.ColorVal((r+c*11)%256))
			img.Set(3, r, c, 255)
		}
	}

	orig := flif.NewImage(size, size, 4)
	for p := 0; p < 4; p++ {
		copy(orig.Plane(p), img.Plane(p))
	}

	data := roundTrip(t, img, ranges, flif.Options{Mode: flif.ModeZoom})
	result, err := flif.Decode(bytes.NewReader(data), flif.DecodeOptions{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Encode rewrites img in place through the transform chain, so the
	// decoded image is compared with the copy taken before encoding.
	// Color planes under full transparency are never coded, so only alpha
	// is compared there.
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if result.Image.At(3, r, c) != orig.At(3, r, c) {
				t.Fatalf("alpha mismatch at (%d,%d)", r, c)
			}
			if orig.At(3, r, c) == 0 {
				continue
			}
			for p := 0; p < 3; p++ {
				if result.Image.At(p, r, c) != orig.At(p, r, c) {
					t.Fatalf("plane %d mismatch at (%d,%d)", p, r, c)
				}
			}
		}
	}
}

// Scenario 5: truncate scenario 3's output by 20% of bytes, decode with
// lastI=0: decode still completes, top-left pixel survives, checksum
// check is skipped.
func TestScenario5Truncation(t *testing.T) {
	img, ranges := gradient8x8()
	data := roundTrip(t, img, ranges, flif.Options{Mode: flif.ModeZoom, TreeLearnRepeats: 2})

	cut := len(data) - len(data)/5
	truncated := data[:cut]

	result, err := flif.Decode(bytes.NewReader(truncated), flif.DecodeOptions{Truncate: true, LastI: 0})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Truncated {
		t.Fatal("expected Truncated to be true")
	}
	if got := result.Image.At(0, 0, 0); got != img.At(0, 0, 0) {
		t.Fatalf("top-left pixel: got %d, want %d", got, img.At(0, 0, 0))
	}
}

// Scenario 6: corrupt the final byte of scenario 3's checksum: decoder
// reports mismatch but still returns the otherwise-correct image. The
// stream's last byte only pads the range coder's flush, so the
// checksum's final coded bits sit in the byte before it.
func TestScenario6ChecksumMismatch(t *testing.T) {
	img, ranges := gradient8x8()
	data := roundTrip(t, img, ranges, flif.Options{Mode: flif.ModeZoom, TreeLearnRepeats: 2})

	corrupt := append([]byte(nil), data...)
	corrupt[len(corrupt)-2] ^= 0xFF

	result, err := flif.Decode(bytes.NewReader(corrupt), flif.DecodeOptions{})
	if err == nil {
		t.Fatal("expected a checksum mismatch error")
	}
	if !errors.Is(err, flif.ErrChecksumMismatch) {
		t.Fatalf("got %v, want ErrChecksumMismatch", err)
	}
	if result == nil {
		t.Fatal("expected a non-nil result alongside the error")
	}
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if got := result.Image.At(0, r, c); int(got) != r*8+c {
				t.Fatalf("(%d,%d): got %d, want %d", r, c, got, r*8+c)
			}
		}
	}
}
