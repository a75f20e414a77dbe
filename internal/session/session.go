package session

import (
	"errors"
	"fmt"
	"log"

	"github.com/ironsheep/coco-viewer-mcp/internal/cache"
	"github.com/ironsheep/coco-viewer-mcp/internal/coco"
	"github.com/ironsheep/coco-viewer-mcp/internal/config"
	"github.com/ironsheep/coco-viewer-mcp/internal/imageio"
	"github.com/ironsheep/coco-viewer-mcp/internal/progress"
	"github.com/ironsheep/coco-viewer-mcp/internal/shapes"
)

// ErrNoDataset is returned by operations that need a loaded dataset
// when none is installed.
var ErrNoDataset = errors.New("no dataset loaded")

// ErrNoImages is returned by image operations on a dataset whose
// images array is empty.
var ErrNoImages = errors.New("dataset has no images")

// thumbnailCacheMB is the byte budget of the thumbnail cache. Sized
// for a handful of full-size previews.
const thumbnailCacheMB = 64

// Counts pairs the number of annotations the current view would draw
// with the image's full annotation count.
type Counts struct {
	// Visible is the count after the category filter and display cap.
	Visible int `json:"visible"`

	// Total is the image's annotation count before filtering.
	Total int `json:"total"`
}

// ImageView describes the current image and position for the viewer.
type ImageView struct {
	// Index is the zero-based position; Count the number of images.
	Index int `json:"index"`
	Count int `json:"count"`

	// ID, FileName, Width and Height are the image record fields.
	ID       int    `json:"id"`
	FileName string `json:"file_name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`

	// Annotations reports visible versus total annotation counts.
	Annotations Counts `json:"annotations"`
}

// CategoryView describes one category for the viewer's category list.
type CategoryView struct {
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Count   int          `json:"count"`
	Color   shapes.Color `json:"color"`
	Enabled bool         `json:"enabled"`
}

// Session owns one viewer's complete state: the loaded file, category
// selection, navigation position, display controls, the visualizer and
// the caches behind it. Everything is constructed explicitly; there is
// no package-level session.
//
// The controller fields are exported so hosts can read and drive them
// directly; Load, Refresh and the view methods keep them consistent.
type Session struct {
	cfg    config.Settings
	caches *cache.Manager
	loader coco.Loader

	File       *FileState
	Categories *CategoryState
	Nav        *NavState
	Display    *DisplayState

	viz    *shapes.Visualizer
	thumbs *imageio.Store
}

// New creates an empty session governed by the given settings.
func New(cfg config.Settings) *Session {
	return &Session{
		cfg:        cfg,
		caches:     cache.NewManager(cfg.Performance.GCThreshold, cfg.Performance.MemoryLimitMB),
		loader:     coco.LoadDataset,
		File:       &FileState{},
		Categories: &CategoryState{},
		Nav:        &NavState{},
		Display:    NewDisplayState(cfg.UI.DefaultDisplayCap, cfg.Visualization.MaxAnnotationsDisplay),
	}
}

// Load opens an annotation file and installs it across all
// controllers: navigation returns to the first image, every category
// is enabled, display modes are derived from the first image's
// annotations, and dataset-scoped caches are cleared. On failure the
// previously loaded dataset stays fully usable and the returned error
// is always a *coco.LoadError.
//
// rep receives indexing progress and may cancel the load; nil means
// silent.
func (s *Session) Load(path string, rep progress.Reporter) (*Info, error) {
	if rep == nil {
		rep = progress.Nop{}
	}
	t := progress.StartTracking("dataset load")
	defer t.Done()

	fn := func(current, total int) bool {
		rep.Update(current, total, "Indexing annotations")
		return !rep.Cancelled()
	}
	if err := s.File.Load(path, s.loader, fn); err != nil {
		le := coco.WrapLoadError(err)
		rep.Finish(false, le.UserMessage)
		return nil, le
	}

	ds := s.File.Dataset()
	s.Categories.Install(ds.Categories)
	s.Nav.Install(ds.Images)
	s.applyDefaultModes()
	s.rebuildVisualizer()
	s.prewarm()

	info := s.File.Info()
	rep.Finish(true, fmt.Sprintf("Loaded %d images, %d annotations", info.Images, info.Annotations))
	return &info, nil
}

// applyDefaultModes derives the display modes from the first image:
// masks are shown when any of its annotations carries segmentation
// rings, bounding boxes when any does not (or none do).
func (s *Session) applyDefaultModes() {
	img, ok := s.Nav.Current()
	if !ok {
		s.Display.SetModes(true, false)
		return
	}
	anns := s.File.Index().Select(img.ID, nil)
	masks, plain := false, false
	for i := range anns {
		if anns[i].HasSegmentation() {
			masks = true
		} else {
			plain = true
		}
	}
	s.Display.SetModes(plain || !masks, masks)
}

// rebuildVisualizer replaces the dataset-scoped services. The old
// caches are flushed first; the new visualizer and thumbnail store
// register fresh ones under the same names.
func (s *Session) rebuildVisualizer() {
	s.caches.ClearAll()
	s.viz = shapes.NewVisualizer(s.File.Dataset(), s.File.Index(), shapes.Options{
		EdgeWidth:    s.cfg.Visualization.EdgeWidth,
		Opacity:      s.cfg.Visualization.Opacity,
		CacheEnabled: s.cfg.Performance.CacheEnabled,
		CacheSizeMB:  s.cfg.Performance.CacheSizeMB,
		Manager:      s.caches,
	})

	maxDim := imageio.DefaultMaxDim
	if s.cfg.UI.CompactMode {
		maxDim /= 2
	}
	s.thumbs = imageio.NewStore(maxDim, thumbnailCacheMB)
	s.thumbs.Register(s.caches, "thumbnails")
}

// prewarm decodes the current image's thumbnail ahead of an
// image_layer ask. Only active when lazy loading is off; failures are
// logged and deferred to the actual ask.
func (s *Session) prewarm() {
	if s.cfg.Performance.LazyLoading {
		return
	}
	img, ok := s.Nav.Current()
	if !ok {
		return
	}
	path := imageio.Resolve(s.File.Path(), img.FileName)
	if _, err := s.thumbs.Thumbnail(path, 0); err != nil {
		log.Printf("session: pre-warming %s: %v", path, err)
	}
}

// Refresh assembles the current controller state into a visualizer
// request and returns the resulting shape batch. A nil batch with a
// nil error means there is deliberately nothing to draw: every
// category switched off, no annotations on the image, or a dataset
// with no images at all.
func (s *Session) Refresh() (*shapes.Batch, error) {
	if !s.File.Loaded() {
		return nil, ErrNoDataset
	}
	img, ok := s.Nav.Current()
	if !ok {
		return nil, nil
	}
	return s.viz.Refresh(shapes.Request{
		ImageID:    img.ID,
		Categories: s.Categories.Selected(),
		ShowBBox:   s.Display.ShowBBox(),
		ShowMask:   s.Display.ShowMask(),
		MaxShown:   s.Display.Cap(),
		Seed:       s.Display.Seed(),
	}), nil
}

// CurrentImage returns the current image and position.
func (s *Session) CurrentImage() (*ImageView, error) {
	if !s.File.Loaded() {
		return nil, ErrNoDataset
	}
	img, ok := s.Nav.Current()
	if !ok {
		return nil, ErrNoImages
	}
	return &ImageView{
		Index:       s.Nav.Index(),
		Count:       s.Nav.Count(),
		ID:          img.ID,
		FileName:    img.FileName,
		Width:       img.Width,
		Height:      img.Height,
		Annotations: s.annotationCounts(img.ID),
	}, nil
}

// NextImage advances to the following image and returns the resulting
// view. moved is false at the last image.
func (s *Session) NextImage() (*ImageView, bool, error) {
	return s.navigate(func() bool { return s.Nav.Next() })
}

// PreviousImage steps back to the preceding image and returns the
// resulting view. moved is false at the first image.
func (s *Session) PreviousImage() (*ImageView, bool, error) {
	return s.navigate(func() bool { return s.Nav.Previous() })
}

// GoToImage jumps to an explicit zero-based index. moved is false for
// out-of-range targets; the position is never clamped.
func (s *Session) GoToImage(i int) (*ImageView, bool, error) {
	return s.navigate(func() bool { return s.Nav.GoTo(i) })
}

func (s *Session) navigate(move func() bool) (*ImageView, bool, error) {
	if !s.File.Loaded() {
		return nil, false, ErrNoDataset
	}
	moved := move()
	if moved {
		s.prewarm()
	}
	view, err := s.CurrentImage()
	return view, moved, err
}

// ImageLayer returns the current image's thumbnail for the viewer's
// image layer. maxDim of 0 asks for the session default (halved in
// compact mode).
func (s *Session) ImageLayer(maxDim int) (*imageio.Thumbnail, error) {
	if !s.File.Loaded() {
		return nil, ErrNoDataset
	}
	img, ok := s.Nav.Current()
	if !ok {
		return nil, ErrNoImages
	}
	s.caches.NoteOperation()
	path := imageio.Resolve(s.File.Path(), img.FileName)
	return s.thumbs.Thumbnail(path, maxDim)
}

// ListCategories returns the viewer's category list in dataset
// declaration order, with per-category annotation counts, display
// colors and enabled flags.
func (s *Session) ListCategories() ([]CategoryView, error) {
	if !s.File.Loaded() {
		return nil, ErrNoDataset
	}
	counts := s.File.Index().CategoryCounts()
	cats := s.Categories.Categories()
	out := make([]CategoryView, 0, len(cats))
	for _, cat := range cats {
		out = append(out, CategoryView{
			ID:      cat.ID,
			Name:    cat.Name,
			Count:   counts[cat.ID],
			Color:   s.viz.Color(cat.ID),
			Enabled: s.Categories.Enabled(cat.ID),
		})
	}
	return out, nil
}

// ToggleCategory switches one category on or off.
func (s *Session) ToggleCategory(id int, on bool) error {
	if !s.File.Loaded() {
		return ErrNoDataset
	}
	if !s.Categories.Toggle(id, on) {
		return fmt.Errorf("unknown category id %d", id)
	}
	return nil
}

// SelectAllCategories enables every category.
func (s *Session) SelectAllCategories() error {
	if !s.File.Loaded() {
		return ErrNoDataset
	}
	s.Categories.SelectAll()
	return nil
}

// SelectNoneCategories disables every category. A following Refresh
// returns the absent batch.
func (s *Session) SelectNoneCategories() error {
	if !s.File.Loaded() {
		return ErrNoDataset
	}
	s.Categories.SelectNone()
	return nil
}

// AnnotationCounts returns visible versus total annotation counts for
// the current image under the current filter and cap.
func (s *Session) AnnotationCounts() (Counts, error) {
	if !s.File.Loaded() {
		return Counts{}, ErrNoDataset
	}
	img, ok := s.Nav.Current()
	if !ok {
		return Counts{}, nil
	}
	return s.annotationCounts(img.ID), nil
}

func (s *Session) annotationCounts(imageID int) Counts {
	ix := s.File.Index()
	counts := Counts{Total: ix.CountForImage(imageID)}

	sel := s.Categories.Selected()
	if sel != nil && len(sel) == 0 {
		return counts
	}
	visible := len(ix.Select(imageID, sel))
	if limit := s.Display.Cap(); visible > limit {
		visible = limit
	}
	counts.Visible = visible
	return counts
}

// CacheStats returns the aggregate state of all session caches.
func (s *Session) CacheStats() cache.ManagerStats {
	return s.caches.Stats()
}

// ClearCaches flushes every session cache. Loaded state survives; the
// next Refresh rebuilds from the index.
func (s *Session) ClearCaches() {
	s.caches.ClearAll()
}

// Settings returns the settings the session was built with.
func (s *Session) Settings() config.Settings { return s.cfg }

// Close releases the session's cached memory.
func (s *Session) Close() {
	s.caches.ClearAll()
}
