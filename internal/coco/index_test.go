package coco

import (
	"reflect"
	"testing"
)

// testDataset builds a small two-image dataset used across the package
// tests: image 1 has a cat (with polygon) and a dog, image 2 has a cat.
func testDataset() *Dataset {
	return &Dataset{
		Images: []Image{
			{ID: 1, FileName: "a.jpg", Width: 100, Height: 100},
			{ID: 2, FileName: "b.jpg", Width: 200, Height: 150},
		},
		Categories: []Category{
			{ID: 1, Name: "cat"},
			{ID: 2, Name: "dog"},
			{ID: 3, Name: "bird"},
		},
		Annotations: []Annotation{
			{
				ID: 1, ImageID: 1, CategoryID: 1, Area: 1200,
				BBox:         []float64{10, 20, 30, 40},
				Segmentation: Segmentation{{10, 20, 40, 20, 40, 60, 10, 60}},
			},
			{
				ID: 2, ImageID: 1, CategoryID: 2, Area: 900,
				BBox: []float64{50, 50, 30, 30},
			},
			{
				ID: 3, ImageID: 2, CategoryID: 1, Area: 400,
				BBox:         []float64{0, 0, 20, 20},
				Segmentation: Segmentation{{0, 0, 20, 0, 20, 20}},
			},
		},
	}
}

func annotationIDs(anns []Annotation) []int {
	ids := make([]int, len(anns))
	for i, a := range anns {
		ids[i] = a.ID
	}
	return ids
}

func TestIndex_Select(t *testing.T) {
	ix := NewIndex(testDataset())

	tests := []struct {
		name       string
		imageID    int
		categories []int
		wantIDs    []int
	}{
		{"image 1 all categories", 1, nil, []int{1, 2}},
		{"image 1 empty filter means no restriction", 1, []int{}, []int{1, 2}},
		{"image 1 cats only", 1, []int{1}, []int{1}},
		{"image 1 dogs only", 1, []int{2}, []int{2}},
		{"image 1 both explicit", 1, []int{1, 2}, []int{1, 2}},
		{"image 2 all", 2, nil, []int{3}},
		{"image 2 dogs only", 2, []int{2}, nil},
		{"unknown image", 99, nil, nil},
		{"unknown category", 1, []int{42}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := annotationIDs(ix.Select(tt.imageID, tt.categories))
			if tt.wantIDs == nil {
				if len(got) != 0 {
					t.Fatalf("Select() = %v, want empty", got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("Select() = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestIndex_SelectPreservesFileOrder(t *testing.T) {
	ds := &Dataset{
		Categories: []Category{{ID: 1, Name: "cat"}},
		Annotations: []Annotation{
			{ID: 30, ImageID: 5, CategoryID: 1, BBox: []float64{0, 0, 1, 1}},
			{ID: 10, ImageID: 5, CategoryID: 1, BBox: []float64{0, 0, 1, 1}},
			{ID: 20, ImageID: 5, CategoryID: 1, BBox: []float64{0, 0, 1, 1}},
		},
	}
	ix := NewIndex(ds)

	got := annotationIDs(ix.Select(5, nil))
	want := []int{30, 10, 20}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("selection order: got %v, want %v", got, want)
	}
}

func TestIndex_CategoryCounts(t *testing.T) {
	ix := NewIndex(testDataset())

	counts := ix.CategoryCounts()
	want := map[int]int{1: 2, 2: 1, 3: 0}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("CategoryCounts() = %v, want %v", counts, want)
	}
}

func TestIndex_CountForImage(t *testing.T) {
	ix := NewIndex(testDataset())

	if got := ix.CountForImage(1); got != 2 {
		t.Errorf("CountForImage(1) = %d, want 2", got)
	}
	if got := ix.CountForImage(2); got != 1 {
		t.Errorf("CountForImage(2) = %d, want 1", got)
	}
	if got := ix.CountForImage(99); got != 0 {
		t.Errorf("CountForImage(99) = %d, want 0", got)
	}
}

func TestNewIndexProgress_ReportsAndCompletes(t *testing.T) {
	// Enough annotations for several progress callbacks.
	ds := &Dataset{}
	for i := 0; i < 250; i++ {
		ds.Annotations = append(ds.Annotations, Annotation{
			ID: i, ImageID: 1, CategoryID: 1, BBox: []float64{0, 0, 1, 1},
		})
	}

	var calls []int
	ix, err := NewIndexProgress(ds, func(current, total int) bool {
		if total != 250 {
			t.Errorf("total: got %d, want 250", total)
		}
		calls = append(calls, current)
		return true
	})
	if err != nil {
		t.Fatalf("NewIndexProgress: %v", err)
	}
	if ix.Len() != 250 {
		t.Errorf("Len() = %d, want 250", ix.Len())
	}

	// Called at 0, 100, 200 during the pass and once at completion.
	want := []int{0, 100, 200, 250}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("progress calls: got %v, want %v", calls, want)
	}
}

func TestNewIndexProgress_Cancel(t *testing.T) {
	ds := &Dataset{}
	for i := 0; i < 500; i++ {
		ds.Annotations = append(ds.Annotations, Annotation{
			ID: i, ImageID: 1, CategoryID: 1, BBox: []float64{0, 0, 1, 1},
		})
	}

	ix, err := NewIndexProgress(ds, func(current, total int) bool {
		return current < 200
	})
	if err != ErrCancelled {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if ix != nil {
		t.Error("cancelled build should discard the partial index")
	}
}
