package transform

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jsneyers/go-flif/internal/imaging"
	"github.com/jsneyers/go-flif/internal/rac"
)

// maxPaletteSize bounds how many distinct colors PLT is willing to turn
// into an index plane; beyond this the index plane's own range would
// cost more than it saves.
const maxPaletteSize = 30000

// PLT replaces every pixel's color-plane tuple with a single index into
// a sorted palette of the distinct tuples the image actually uses, when
// that palette is small. Planes beyond the color planes it covers (there
// are none left to code independently) are reconstructed purely from the
// palette at decode time.
type PLT struct {
	numColorPlanes int
	palette        [][]imaging.ColorVal
}

func (t *PLT) Name() string { return "PLT" }

func tupleKey(v []imaging.ColorVal) string {
	var b strings.Builder
	for i, x := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(x)))
	}
	return b.String()
}

func (t *PLT) Applicable(img *imaging.Image, in *imaging.ColorRanges) bool {
	n := in.NumPlanes()
	if n < 2 {
		// A single plane has no tuple to collapse: the index plane would
		// hold as many distinct values as the plane itself, plus the cost
		// of the palette.
		return false
	}
	seen := make(map[string]bool)
	count := 0
	for r := 0; r < img.Height; r++ {
		for c := 0; c < img.Width; c++ {
			tuple := make([]imaging.ColorVal, n)
			for p := 0; p < n; p++ {
				tuple[p] = img.At(p, r, c)
			}
			k := tupleKey(tuple)
			if !seen[k] {
				seen[k] = true
				count++
				if count > maxPaletteSize {
					return false
				}
			}
		}
	}
	return count > 0
}

func (t *PLT) buildPalette(img *imaging.Image, n int) {
	seen := make(map[string]int)
	t.palette = nil
	for r := 0; r < img.Height; r++ {
		for c := 0; c < img.Width; c++ {
			tuple := make([]imaging.ColorVal, n)
			for p := 0; p < n; p++ {
				tuple[p] = img.At(p, r, c)
			}
			if _, ok := seen[tupleKey(tuple)]; !ok {
				seen[tupleKey(tuple)] = len(t.palette)
				t.palette = append(t.palette, tuple)
			}
		}
	}
	sort.Slice(t.palette, func(i, j int) bool {
		a, b := t.palette[i], t.palette[j]
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
}

func (t *PLT) indexOf(tuple []imaging.ColorVal) int {
	lo, hi := 0, len(t.palette)-1
	key := tupleKey(tuple)
	for lo <= hi {
		mid := (lo + hi) / 2
		mk := tupleKey(t.palette[mid])
		if mk == key {
			return mid
		}
		if mk < key {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	// Fallback linear scan guards against any tie-break mismatch between
	// string and tuple ordering; palettes are small enough this never
	// matters for performance.
	for i, p := range t.palette {
		if tupleKey(p) == key {
			return i
		}
	}
	return 0
}

func (t *PLT) Data(img *imaging.Image, in *imaging.ColorRanges) *imaging.ColorRanges {
	t.numColorPlanes = in.NumPlanes()
	t.buildPalette(img, t.numColorPlanes)

	for r := 0; r < img.Height; r++ {
		for c := 0; c < img.Width; c++ {
			tuple := make([]imaging.ColorVal, t.numColorPlanes)
			for p := 0; p < t.numColorPlanes; p++ {
				tuple[p] = img.At(p, r, c)
			}
			img.Set(0, r, c, imaging.ColorVal(t.indexOf(tuple)))
		}
	}

	out := append([]imaging.Range(nil), in.Planes...)
	out[0] = imaging.Range{Min: 0, Max: imaging.ColorVal(len(t.palette) - 1)}
	return imaging.NewColorRanges(out)
}

func (t *PLT) InvData(img *imaging.Image, cur *imaging.ColorRanges) {
	for r := 0; r < img.Height; r++ {
		for c := 0; c < img.Width; c++ {
			idx := int(img.At(0, r, c))
			tuple := t.palette[idx]
			for p := 0; p < t.numColorPlanes; p++ {
				img.Set(p, r, c, tuple[p])
			}
		}
	}
}

func (t *PLT) Save(w rac.Writer) {
	rac.WriteUniformInt(w, 1, maxPaletteSize, len(t.palette))
	for _, tuple := range t.palette {
		for _, v := range tuple {
			rac.WriteUniformInt(w, -0x7fffff, 0x7fffff, int(v))
		}
	}
}

func (t *PLT) Load(r *rac.Decoder, in *imaging.ColorRanges) *imaging.ColorRanges {
	t.numColorPlanes = in.NumPlanes()
	n := rac.ReadUniformInt(r, 1, maxPaletteSize)
	t.palette = make([][]imaging.ColorVal, n)
	for i := 0; i < n; i++ {
		tuple := make([]imaging.ColorVal, t.numColorPlanes)
		for p := 0; p < t.numColorPlanes; p++ {
			tuple[p] = imaging.ColorVal(rac.ReadUniformInt(r, -0x7fffff, 0x7fffff))
		}
		t.palette[i] = tuple
	}
	out := append([]imaging.Range(nil), in.Planes...)
	out[0] = imaging.Range{Min: 0, Max: imaging.ColorVal(len(t.palette) - 1)}
	return imaging.NewColorRanges(out)
}

// CodedPlanes reports that only the index plane needs entropy coding;
// the others are fully determined by the palette lookup in InvData.
func (t *PLT) CodedPlanes(numPlanes int) int { return 1 }
