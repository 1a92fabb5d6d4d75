package transform

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/jsneyers/go-flif/internal/imaging"
	"github.com/jsneyers/go-flif/internal/rac"
)

func rgbImage(w, h int, seed int64) (*imaging.Image, *imaging.ColorRanges) {
	rng := rand.New(rand.NewSource(seed))
	img := imaging.NewImage(w, h, 3)
	for p := 0; p < 3; p++ {
		for i := range img.Plane(p) {
			img.Plane(p)[i] = imaging.ColorVal(rng.Intn(256))
		}
	}
	ranges := imaging.NewColorRanges([]imaging.Range{{0, 255}, {0, 255}, {0, 255}})
	return img, ranges
}

func clonePlanes(img *imaging.Image) [][]imaging.ColorVal {
	out := make([][]imaging.ColorVal, img.NumPlanes)
	for p := range out {
		out[p] = append([]imaging.ColorVal(nil), img.Plane(p)...)
	}
	return out
}

func TestYIQRoundTrip(t *testing.T) {
	img, ranges := rgbImage(6, 5, 1)
	orig := clonePlanes(img)

	yiq := &YIQ{}
	if !yiq.Applicable(img, ranges) {
		t.Fatal("YIQ should be applicable to a 3-plane image")
	}
	newRanges := yiq.Data(img, ranges)
	yiq2 := &YIQ{}
	yiq2.InvData(img, newRanges)

	for p := 0; p < 3; p++ {
		for i, v := range img.Plane(p) {
			if v != orig[p][i] {
				t.Fatalf("plane %d pixel %d: got %d want %d", p, i, v, orig[p][i])
			}
		}
	}
}

func TestBNDNarrowsAndRoundTrips(t *testing.T) {
	img := imaging.NewImage(4, 4, 1)
	for i := range img.Plane(0) {
		img.Plane(0)[i] = imaging.ColorVal(10 + i%20)
	}
	ranges := imaging.NewColorRanges([]imaging.Range{{0, 255}})

	bnd := &BND{}
	narrowed := bnd.Data(img, ranges)
	if narrowed.Min(0) < 10 || narrowed.Max(0) > 30 {
		t.Fatalf("BND did not narrow range: %+v", narrowed.Planes[0])
	}

	var buf bytes.Buffer
	enc := rac.NewEncoder(&buf, rac.Config24)
	bnd.Save(enc)
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}
	dec := rac.NewDecoder(bytes.NewReader(buf.Bytes()), rac.Config24)
	bnd2 := &BND{}
	got := bnd2.Load(dec, ranges)
	if got.Min(0) != narrowed.Min(0) || got.Max(0) != narrowed.Max(0) {
		t.Fatalf("BND load mismatch: got %+v want %+v", got.Planes[0], narrowed.Planes[0])
	}
}

func TestPLTRoundTrip(t *testing.T) {
	img := imaging.NewImage(8, 8, 3)
	palette := [][3]imaging.ColorVal{{10, 20, 30}, {200, 0, 5}, {5, 5, 5}}
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			col := palette[(r+c)%len(palette)]
			img.Set(0, r, c, col[0])
			img.Set(1, r, c, col[1])
			img.Set(2, r, c, col[2])
		}
	}
	orig := clonePlanes(img)
	ranges := imaging.NewColorRanges([]imaging.Range{{0, 255}, {0, 255}, {0, 255}})

	plt := &PLT{}
	if !plt.Applicable(img, ranges) {
		t.Fatal("PLT should apply to a 3-color image")
	}
	newRanges := plt.Data(img, ranges)
	if newRanges.Max(0) != 2 {
		t.Fatalf("expected palette size 3 (max index 2), got max %d", newRanges.Max(0))
	}

	var buf bytes.Buffer
	enc := rac.NewEncoder(&buf, rac.Config24)
	plt.Save(enc)
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}
	dec := rac.NewDecoder(bytes.NewReader(buf.Bytes()), rac.Config24)
	plt2 := &PLT{}
	plt2.Load(dec, ranges)

	plt2.InvData(img, newRanges)
	for p := 0; p < 3; p++ {
		for i, v := range img.Plane(p) {
			if v != orig[p][i] {
				t.Fatalf("plane %d pixel %d: got %d want %d", p, i, v, orig[p][i])
			}
		}
	}
}

func TestACBRoundTrip(t *testing.T) {
	img := imaging.NewImage(4, 4, 1)
	vals := []imaging.ColorVal{0, 1000, 2000, 3000}
	for i := range img.Plane(0) {
		img.Plane(0)[i] = vals[i%len(vals)]
	}
	orig := clonePlanes(img)
	ranges := imaging.NewColorRanges([]imaging.Range{{0, 65535}})

	acb := &ACB{}
	if !acb.Applicable(img, ranges) {
		t.Fatal("ACB should apply to a sparse wide-range plane")
	}
	newRanges := acb.Data(img, ranges)
	if newRanges.Max(0) != imaging.ColorVal(len(vals)-1) {
		t.Fatalf("expected bucket count %d, got max %d", len(vals), newRanges.Max(0))
	}

	var buf bytes.Buffer
	enc := rac.NewEncoder(&buf, rac.Config24)
	acb.Save(enc)
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}
	dec := rac.NewDecoder(bytes.NewReader(buf.Bytes()), rac.Config24)
	acb2 := &ACB{}
	acb2.Load(dec, ranges)
	acb2.InvData(img, newRanges)

	for i, v := range img.Plane(0) {
		if v != orig[0][i] {
			t.Fatalf("pixel %d: got %d want %d", i, v, orig[0][i])
		}
	}
}

func TestChainRoundTrip(t *testing.T) {
	img, ranges := rgbImage(10, 9, 7)
	orig := clonePlanes(img)

	chain, finalRanges, coded := Build(img, ranges)
	if coded < 1 {
		t.Fatalf("coded planes should be >= 1, got %d", coded)
	}

	var buf bytes.Buffer
	enc := rac.NewEncoder(&buf, rac.Config24)
	chain.Save(enc)
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}

	dec := rac.NewDecoder(bytes.NewReader(buf.Bytes()), rac.Config24)
	chain2, loadedRanges, loadedCoded, err := Load(dec, ranges)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loadedCoded != coded {
		t.Fatalf("coded planes mismatch: got %d want %d", loadedCoded, coded)
	}
	for p := 0; p < loadedRanges.NumPlanes(); p++ {
		if loadedRanges.Min(p) != finalRanges.Min(p) || loadedRanges.Max(p) != finalRanges.Max(p) {
			t.Fatalf("plane %d ranges mismatch: got [%d,%d] want [%d,%d]", p,
				loadedRanges.Min(p), loadedRanges.Max(p), finalRanges.Min(p), finalRanges.Max(p))
		}
	}

	chain2.Invert(img, loadedRanges)
	for p := 0; p < 3; p++ {
		for i, v := range img.Plane(p) {
			if v != orig[p][i] {
				t.Fatalf("plane %d pixel %d: got %d want %d", p, i, v, orig[p][i])
			}
		}
	}
}
