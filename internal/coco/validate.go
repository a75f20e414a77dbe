package coco

// Per-record keys that must be present for a document to be usable.
var (
	imageKeys      = []string{"id", "file_name", "width", "height"}
	annotationKeys = []string{"id", "image_id", "category_id", "bbox"}
	categoryKeys   = []string{"id", "name"}
)

// Validate reports whether a generically decoded JSON document has the
// structure of a COCO object detection dataset: the three top-level
// arrays, and the required keys on every record in each of them.
//
// The check fails closed. Nil input, a non-object document, a missing
// or non-array section, or a malformed record all yield false; Validate
// never returns an error and never panics. Empty sections are valid, so
// the minimal document {"images":[],"annotations":[],"categories":[]}
// passes.
func Validate(doc any) bool {
	root, ok := doc.(map[string]any)
	if !ok {
		return false
	}

	sections := map[string][]string{
		"images":      imageKeys,
		"annotations": annotationKeys,
		"categories":  categoryKeys,
	}

	for name, required := range sections {
		raw, ok := root[name]
		if !ok {
			return false
		}
		records, ok := raw.([]any)
		if !ok {
			return false
		}
		if !validRecords(records, required) {
			return false
		}
	}
	return true
}

func validRecords(records []any, required []string) bool {
	for _, raw := range records {
		rec, ok := raw.(map[string]any)
		if !ok {
			return false
		}
		for _, key := range required {
			if _, ok := rec[key]; !ok {
				return false
			}
		}
	}
	return true
}
