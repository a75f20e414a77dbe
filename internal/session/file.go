package session

import (
	"path/filepath"

	"github.com/ironsheep/coco-viewer-mcp/internal/coco"
)

// Info summarizes the loaded annotation file.
type Info struct {
	// Path is the annotation file location as given to Load.
	Path string `json:"path"`

	// FileName is the base name of the annotation file.
	FileName string `json:"file_name"`

	// Images, Annotations and Categories are the record counts.
	Images      int `json:"images"`
	Annotations int `json:"annotations"`
	Categories  int `json:"categories"`
}

// FileState tracks which dataset is open. A failed Load leaves the
// previously loaded dataset fully intact.
type FileState struct {
	path    string
	dataset *coco.Dataset
	index   *coco.Index
}

// Load parses path with the given loader and builds the annotation
// index, reporting progress through fn. The new dataset is installed
// only after both steps succeed; on any failure (including
// cancellation) the prior state is kept and the error returned.
func (f *FileState) Load(path string, load coco.Loader, fn coco.ProgressFunc) error {
	ds, err := load(path)
	if err != nil {
		return err
	}
	ix, err := coco.NewIndexProgress(ds, fn)
	if err != nil {
		return err
	}
	f.path = path
	f.dataset = ds
	f.index = ix
	return nil
}

// Loaded reports whether a dataset is currently installed.
func (f *FileState) Loaded() bool { return f.dataset != nil }

// Path returns the loaded annotation file location, empty when
// nothing is loaded.
func (f *FileState) Path() string { return f.path }

// Dataset returns the loaded dataset, nil when nothing is loaded.
func (f *FileState) Dataset() *coco.Dataset { return f.dataset }

// Index returns the annotation index, nil when nothing is loaded.
func (f *FileState) Index() *coco.Index { return f.index }

// Info returns the loaded file summary, zero when nothing is loaded.
func (f *FileState) Info() Info {
	if !f.Loaded() {
		return Info{}
	}
	return Info{
		Path:        f.path,
		FileName:    filepath.Base(f.path),
		Images:      len(f.dataset.Images),
		Annotations: len(f.dataset.Annotations),
		Categories:  len(f.dataset.Categories),
	}
}
