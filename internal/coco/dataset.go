package coco

import "encoding/json"

// Image describes one image record of an annotation file.
type Image struct {
	// ID is the dataset-wide image identifier annotations refer to.
	ID int `json:"id"`

	// FileName is the image file name, usually relative to the
	// directory the annotation file lives in.
	FileName string `json:"file_name"`

	// Width and Height are the pixel dimensions of the image.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Category describes one object category record.
type Category struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Supercategory string `json:"supercategory,omitempty"`
}

// Segmentation holds the polygon rings of an annotation. COCO stores
// each ring as a flat [x1, y1, x2, y2, ...] coordinate list. Run-length
// encoded masks are JSON objects rather than arrays; those decode to
// nil instead of failing the whole document.
type Segmentation [][]float64

// UnmarshalJSON implements lenient decoding for the segmentation field.
func (s *Segmentation) UnmarshalJSON(data []byte) error {
	var rings [][]float64
	if err := json.Unmarshal(data, &rings); err != nil {
		*s = nil
		return nil
	}
	*s = rings
	return nil
}

// Annotation describes one annotation record: a single labeled object
// on a single image.
type Annotation struct {
	ID         int     `json:"id"`
	ImageID    int     `json:"image_id"`
	CategoryID int     `json:"category_id"`
	Area       float64 `json:"area"`

	// BBox is the axis-aligned bounding box as [x, y, width, height]
	// in source pixel coordinates.
	BBox []float64 `json:"bbox"`

	// Segmentation is the optional polygon outline of the object.
	Segmentation Segmentation `json:"segmentation,omitempty"`
}

// HasSegmentation reports whether the annotation carries at least one
// polygon ring.
func (a *Annotation) HasSegmentation() bool {
	return len(a.Segmentation) > 0
}

// Dataset is a parsed COCO object detection document.
type Dataset struct {
	Images      []Image      `json:"images"`
	Categories  []Category   `json:"categories"`
	Annotations []Annotation `json:"annotations"`
}
