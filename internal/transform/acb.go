package transform

import (
	"sort"

	"github.com/jsneyers/go-flif/internal/imaging"
	"github.com/jsneyers/go-flif/internal/rac"
)

// ACB ("auto color buckets") is a simplified per-plane compaction: each
// plane's declared range is replaced by a dense index into the sorted
// list of values the plane actually uses (its "buckets"), shrinking
// unused gaps out of the coded range without touching planes where
// there is nothing to gain. The real format groups values by 2-D/3-D
// proximity across planes rather than purely per-plane; this simplified
// version keeps the transform fully reversible and compositional while
// still exercising the same "shrink the coded range to what's actually
// present" idea PLT applies per whole-pixel tuple.
type ACB struct {
	buckets []([]imaging.ColorVal) // buckets[p][i] = original value of index i
	applied []bool
}

func (t *ACB) Name() string { return "ACB" }

// bucketWorthwhile requires the plane to have a declared range worth
// compacting and the distinct-value count to leave a meaningful gap.
func bucketWorthwhile(distinct int, declaredSpan int) bool {
	return declaredSpan > 512 && distinct > 0 && distinct < declaredSpan*3/4
}

func (t *ACB) Applicable(img *imaging.Image, in *imaging.ColorRanges) bool {
	for p := 0; p < in.NumPlanes(); p++ {
		span := int(in.Max(p)-in.Min(p)) + 1
		seen := make(map[imaging.ColorVal]bool)
		for _, v := range img.Plane(p) {
			seen[v] = true
		}
		if bucketWorthwhile(len(seen), span) {
			return true
		}
	}
	return false
}

func (t *ACB) Data(img *imaging.Image, in *imaging.ColorRanges) *imaging.ColorRanges {
	n := in.NumPlanes()
	t.buckets = make([][]imaging.ColorVal, n)
	t.applied = make([]bool, n)
	out := append([]imaging.Range(nil), in.Planes...)

	for p := 0; p < n; p++ {
		span := int(in.Max(p)-in.Min(p)) + 1
		seen := make(map[imaging.ColorVal]bool)
		for _, v := range img.Plane(p) {
			seen[v] = true
		}
		if !bucketWorthwhile(len(seen), span) {
			continue
		}
		bucket := make([]imaging.ColorVal, 0, len(seen))
		for v := range seen {
			bucket = append(bucket, v)
		}
		sort.Slice(bucket, func(i, j int) bool { return bucket[i] < bucket[j] })
		t.buckets[p] = bucket
		t.applied[p] = true
		out[p] = imaging.Range{Min: 0, Max: imaging.ColorVal(len(bucket) - 1)}

		idx := make(map[imaging.ColorVal]imaging.ColorVal, len(bucket))
		for i, v := range bucket {
			idx[v] = imaging.ColorVal(i)
		}
		plane := img.Plane(p)
		for i, v := range plane {
			plane[i] = idx[v]
		}
	}
	return imaging.NewColorRanges(out)
}

func (t *ACB) InvData(img *imaging.Image, cur *imaging.ColorRanges) {
	for p, applied := range t.applied {
		if !applied {
			continue
		}
		bucket := t.buckets[p]
		plane := img.Plane(p)
		for i, v := range plane {
			plane[i] = bucket[int(v)]
		}
	}
}

func (t *ACB) Save(w rac.Writer) {
	for p, applied := range t.applied {
		rac.WriteUniformInt(w, 0, 1, boolToInt(applied))
		if !applied {
			continue
		}
		bucket := t.buckets[p]
		rac.WriteUniformInt(w, 0, 1<<24, len(bucket))
		prev := -(1 << 23)
		for _, v := range bucket {
			rac.WriteUniformInt(w, prev, 1<<23, int(v))
			prev = int(v)
		}
	}
}

func (t *ACB) Load(r *rac.Decoder, in *imaging.ColorRanges) *imaging.ColorRanges {
	n := in.NumPlanes()
	t.buckets = make([][]imaging.ColorVal, n)
	t.applied = make([]bool, n)
	out := append([]imaging.Range(nil), in.Planes...)
	for p := 0; p < n; p++ {
		applied := rac.ReadUniformInt(r, 0, 1) == 1
		t.applied[p] = applied
		if !applied {
			continue
		}
		count := rac.ReadUniformInt(r, 0, 1<<24)
		bucket := make([]imaging.ColorVal, count)
		prev := -(1 << 23)
		for i := 0; i < count; i++ {
			v := rac.ReadUniformInt(r, prev, 1<<23)
			bucket[i] = imaging.ColorVal(v)
			prev = v
		}
		t.buckets[p] = bucket
		out[p] = imaging.Range{Min: 0, Max: imaging.ColorVal(len(bucket) - 1)}
	}
	return imaging.NewColorRanges(out)
}

func (t *ACB) CodedPlanes(numPlanes int) int { return numPlanes }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
