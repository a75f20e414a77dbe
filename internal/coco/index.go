package coco

// progressStride is how many annotations are indexed between progress
// callbacks and cancellation checks.
const progressStride = 100

// ProgressFunc receives (current, total) while a long dataset pass
// runs. Returning false cancels the pass.
type ProgressFunc func(current, total int) bool

// Index answers annotation selection queries for one dataset. It keeps
// the image and category ids of all annotations in parallel int32
// columns so a selection is a single tight scan over integers instead
// of a per-record field lookup. The index never mutates after
// construction and is safe for concurrent readers.
type Index struct {
	anns     []Annotation
	imageIDs []int32
	catIDs   []int32
	catOrder []int
}

// NewIndex builds the selection index for ds.
func NewIndex(ds *Dataset) *Index {
	ix, _ := NewIndexProgress(ds, nil)
	return ix
}

// NewIndexProgress builds the selection index, invoking fn about every
// 100 annotations. If fn returns false the build stops and
// NewIndexProgress returns ErrCancelled with a nil index.
func NewIndexProgress(ds *Dataset, fn ProgressFunc) (*Index, error) {
	total := len(ds.Annotations)
	ix := &Index{
		anns:     ds.Annotations,
		imageIDs: make([]int32, total),
		catIDs:   make([]int32, total),
		catOrder: make([]int, 0, len(ds.Categories)),
	}
	for i, ann := range ds.Annotations {
		if fn != nil && i%progressStride == 0 {
			if !fn(i, total) {
				return nil, ErrCancelled
			}
		}
		ix.imageIDs[i] = int32(ann.ImageID)
		ix.catIDs[i] = int32(ann.CategoryID)
	}
	for _, cat := range ds.Categories {
		ix.catOrder = append(ix.catOrder, cat.ID)
	}
	if fn != nil && !fn(total, total) {
		return nil, ErrCancelled
	}
	return ix, nil
}

// Len returns the number of indexed annotations.
func (ix *Index) Len() int { return len(ix.anns) }

// Select returns the annotations of imageID in file order. A nil or
// empty category set applies no category restriction; otherwise only
// annotations whose category id is in the set are returned.
func (ix *Index) Select(imageID int, categories []int) []Annotation {
	img := int32(imageID)
	matched := make([]int, 0, 32)

	if len(categories) == 0 {
		for i, id := range ix.imageIDs {
			if id == img {
				matched = append(matched, i)
			}
		}
	} else {
		want := make(map[int32]bool, len(categories))
		for _, c := range categories {
			want[int32(c)] = true
		}
		for i, id := range ix.imageIDs {
			if id == img && want[ix.catIDs[i]] {
				matched = append(matched, i)
			}
		}
	}

	if len(matched) == 0 {
		return nil
	}
	out := make([]Annotation, len(matched))
	for j, i := range matched {
		out[j] = ix.anns[i]
	}
	return out
}

// CountForImage returns how many annotations reference imageID.
func (ix *Index) CountForImage(imageID int) int {
	img := int32(imageID)
	n := 0
	for _, id := range ix.imageIDs {
		if id == img {
			n++
		}
	}
	return n
}

// CategoryCounts returns the number of annotations per category id.
// Every declared category appears in the result, including those with
// zero annotations.
func (ix *Index) CategoryCounts() map[int]int {
	counts := make(map[int]int, len(ix.catOrder))
	for _, id := range ix.catOrder {
		counts[id] = 0
	}
	for _, id := range ix.catIDs {
		counts[int(id)]++
	}
	return counts
}
