package coco

import (
	"log"
	"path/filepath"
	"strings"
)

// ReadFile is the drag-and-drop entry point for viewer hosts. It
// accepts a single path or a single-element path list and returns the
// parsed dataset, or nil when the input cannot be handled: an empty or
// multi-element list, a non-.json path, an unreadable file, or a file
// that fails parsing or structural validation. Failures are logged,
// never raised, so hosts can probe arbitrary files with it.
func ReadFile(paths ...string) *Dataset {
	if len(paths) != 1 {
		return nil
	}
	path := paths[0]
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return nil
	}

	ds, err := LoadDataset(path)
	if err != nil {
		log.Printf("coco: cannot read %s: %v", path, err)
		return nil
	}
	return ds
}
