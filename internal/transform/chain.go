package transform

import (
	"fmt"

	"github.com/jsneyers/go-flif/internal/imaging"
	"github.com/jsneyers/go-flif/internal/rac"
)

// DefaultOrder is the order transforms are considered for inclusion at
// encode time, matching the CLI's default chain.
var DefaultOrder = []string{"YIQ", "BND", "PLT", "ACB"}

// New constructs a fresh, empty instance of the named transform.
func New(name string) (Transform, error) {
	switch name {
	case "YIQ":
		return &YIQ{}, nil
	case "BND":
		return &BND{}, nil
	case "PLT":
		return &PLT{}, nil
	case "ACB":
		return &ACB{}, nil
	default:
		return nil, fmt.Errorf("transform: unknown name %q", name)
	}
}

// Chain is the ordered, already-decided sequence of transforms applied
// to one image.
type Chain struct {
	Transforms []Transform
	Names      []string
}

// Build walks DefaultOrder, applying each transform's Applicable check
// against img's *current* state (transforms earlier in the chain run
// first, so later ones see already-transformed pixels and ranges) and
// appends it to the chain when applicable. Returns the final ranges and
// how many planes still need entropy coding.
func Build(img *imaging.Image, start *imaging.ColorRanges) (*Chain, *imaging.ColorRanges, int) {
	ranges := start
	coded := start.NumPlanes()
	chain := &Chain{}
	for _, name := range DefaultOrder {
		tr, err := New(name)
		if err != nil {
			continue
		}
		if !tr.Applicable(img, ranges) {
			continue
		}
		ranges = tr.Data(img, ranges)
		coded = tr.CodedPlanes(coded)
		chain.Transforms = append(chain.Transforms, tr)
		chain.Names = append(chain.Names, name)
	}
	return chain, ranges, coded
}

// Invert undoes the chain in reverse order, starting from the fully
// decoded (fully transformed) image.
func (c *Chain) Invert(img *imaging.Image, final *imaging.ColorRanges) {
	cur := final
	for i := len(c.Transforms) - 1; i >= 0; i-- {
		c.Transforms[i].InvData(img, cur)
	}
}

// Save writes the chain's transform names and each transform's side
// metadata, in order.
func (c *Chain) Save(w rac.Writer) {
	rac.WriteUniformInt(w, 0, len(DefaultOrder), len(c.Names))
	for i, name := range c.Names {
		idx := indexOf(DefaultOrder, name)
		rac.WriteUniformInt(w, 0, len(DefaultOrder)-1, idx)
		c.Transforms[i].Save(w)
	}
}

// Load reads a chain's transform names and metadata back, applying Load
// (not Data) to each so ranges are derived from serialized bounds rather
// than re-scanned pixels, and returns the final ranges together with the
// coded-plane count.
func Load(r *rac.Decoder, start *imaging.ColorRanges) (*Chain, *imaging.ColorRanges, int, error) {
	n := rac.ReadUniformInt(r, 0, len(DefaultOrder))
	ranges := start
	coded := start.NumPlanes()
	chain := &Chain{}
	for i := 0; i < n; i++ {
		idx := rac.ReadUniformInt(r, 0, len(DefaultOrder)-1)
		if idx < 0 || idx >= len(DefaultOrder) {
			return nil, nil, 0, fmt.Errorf("transform: corrupt chain index %d", idx)
		}
		name := DefaultOrder[idx]
		tr, err := New(name)
		if err != nil {
			return nil, nil, 0, err
		}
		ranges = tr.Load(r, ranges)
		coded = tr.CodedPlanes(coded)
		chain.Transforms = append(chain.Transforms, tr)
		chain.Names = append(chain.Names, name)
	}
	return chain, ranges, coded, nil
}

func indexOf(haystack []string, needle string) int {
	for i, s := range haystack {
		if s == needle {
			return i
		}
	}
	return -1
}
