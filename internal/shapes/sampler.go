package shapes

import (
	"math/rand"
	"sort"

	"github.com/ironsheep/coco-viewer-mcp/internal/coco"
)

// Subsample reduces anns to at most limit entries, chosen without
// replacement by a PRNG seeded with seed. The chosen indices are
// sorted ascending, so the survivors keep their original relative
// order. The same (input, limit, seed) triple always selects the same
// annotations; if the input already fits the limit it is returned
// unchanged.
func Subsample(anns []coco.Annotation, limit int, seed int64) []coco.Annotation {
	if limit >= len(anns) {
		return anns
	}
	if limit <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	picked := rng.Perm(len(anns))[:limit]
	sort.Ints(picked)

	out := make([]coco.Annotation, limit)
	for i, idx := range picked {
		out[i] = anns[idx]
	}
	return out
}
