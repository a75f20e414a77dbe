package shapes

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ironsheep/coco-viewer-mcp/internal/cache"
	"github.com/ironsheep/coco-viewer-mcp/internal/coco"
)

// Cache size estimates. Selections and conversions are charged per
// element; sizes are rough, the LRU treats them as such.
const annotationEstBytes = 256

var debugEnabled = os.Getenv("COCO_MCP_LOG_LEVEL") == "debug"

func debugf(format string, args ...any) {
	if debugEnabled {
		log.Printf("shapes: "+format, args...)
	}
}

// Request describes one refresh: which image, which categories, which
// geometry kinds, and how the selection is capped.
type Request struct {
	ImageID int

	// Categories restricts the batch to a category id set. nil means
	// no restriction; a non-nil empty slice means "none selected" and
	// yields an absent batch.
	Categories []int

	ShowBBox bool
	ShowMask bool

	// MaxShown caps how many annotations render. Seed drives the
	// deterministic subsample when the cap bites.
	MaxShown int
	Seed     int64
}

// normalizedCategories returns the filter sorted and deduplicated so
// equivalent filters produce equal cache keys. The nil/empty
// distinction survives normalization.
func (r Request) normalizedCategories() []int {
	if r.Categories == nil {
		return nil
	}
	out := make([]int, 0, len(r.Categories))
	seen := make(map[int]bool, len(r.Categories))
	for _, c := range r.Categories {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Ints(out)
	return out
}

// cacheKey builds the composite batch cache key. Every parameter that
// changes the output is part of it.
func (r Request) cacheKey() string {
	var sb strings.Builder
	sb.WriteString("img=")
	sb.WriteString(strconv.Itoa(r.ImageID))
	sb.WriteString("|cats=")
	writeCategorySet(&sb, r.normalizedCategories())
	fmt.Fprintf(&sb, "|bbox=%t|mask=%t|cap=%d|seed=%d",
		r.ShowBBox, r.ShowMask, r.MaxShown, r.Seed)
	return sb.String()
}

func writeCategorySet(sb *strings.Builder, cats []int) {
	if cats == nil {
		sb.WriteByte('*')
		return
	}
	for i, c := range cats {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(c))
	}
}

// coordKey turns a coordinate list into an exact cache key by
// concatenating the raw float bits. Distinct coordinates always get
// distinct keys, which a lossy hash could not guarantee.
func coordKey(coords []float64) string {
	buf := make([]byte, 8*len(coords))
	for i, v := range coords {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return string(buf)
}

// Options configure a Visualizer.
type Options struct {
	// EdgeWidth and Opacity are copied into every produced batch.
	EdgeWidth float64
	Opacity   float64

	// CacheEnabled turns the result and conversion caches on. With
	// caching off every Refresh rebuilds from the index.
	CacheEnabled bool

	// CacheSizeMB is the byte budget of the batch cache.
	CacheSizeMB int

	// Manager, when set, has the visualizer's caches registered with
	// it and is notified once per Refresh.
	Manager *cache.Manager
}

// Visualizer turns annotation selections into renderable shape
// batches. It owns the dataset-scoped caches: finished batches keyed
// by the full request, raw selections keyed by image and filter, and
// the two coordinate-conversion caches keyed by exact coordinates.
//
// A Visualizer is built once per loaded dataset and never mutates its
// dataset state afterwards, so it is safe for concurrent Refresh calls.
type Visualizer struct {
	index   *coco.Index
	colors  map[int]Color
	names   map[int]string
	edge    float64
	opacity float64
	cacheOn bool
	mgr     *cache.Manager

	batches    *cache.Cache[string, *Batch]
	selections *cache.Cache[string, []coco.Annotation]
	rings      *cache.Cache[string, []Point]
	boxes      *cache.Cache[string, []Point]
}

// NewVisualizer builds a visualizer for one loaded dataset.
func NewVisualizer(ds *coco.Dataset, ix *coco.Index, opts Options) *Visualizer {
	names := make(map[int]string, len(ds.Categories))
	for _, cat := range ds.Categories {
		names[cat.ID] = cat.Name
	}

	v := &Visualizer{
		index:      ix,
		colors:     Palette(ds.Categories),
		names:      names,
		edge:       opts.EdgeWidth,
		opacity:    opts.Opacity,
		cacheOn:    opts.CacheEnabled,
		mgr:        opts.Manager,
		batches:    cache.New[string, *Batch](20, opts.CacheSizeMB),
		selections: cache.New[string, []coco.Annotation](50, 25),
		rings:      cache.New[string, []Point](1000, 50),
		boxes:      cache.New[string, []Point](1000, 10),
	}

	if opts.Manager != nil {
		opts.Manager.Register("batches", v.batches)
		opts.Manager.Register("selections", v.selections)
		opts.Manager.Register("polygons", v.rings)
		opts.Manager.Register("bboxes", v.boxes)
	}
	return v
}

// Color returns the display color for a category id. Ids the dataset
// never declared resolve to white.
func (v *Visualizer) Color(categoryID int) Color {
	if c, ok := v.colors[categoryID]; ok {
		return c
	}
	return White
}

// CategoryName returns the display name for a category id. Ids the
// dataset never declared get a synthetic name so a dangling reference
// still renders.
func (v *Visualizer) CategoryName(categoryID int) string {
	if name, ok := v.names[categoryID]; ok {
		return name
	}
	return fmt.Sprintf("category_%d", categoryID)
}

// Refresh produces the shape batch for a request, or nil when the
// request selects nothing (no annotations on the image, every category
// filtered away, or an explicit empty filter). Both outcomes are
// cached; a later identical request is answered without touching the
// index. Refresh never fails: geometry problems shrink the batch and
// are logged, and the caches only ever short-circuit work.
func (v *Visualizer) Refresh(req Request) *Batch {
	if v.mgr != nil {
		v.mgr.NoteOperation()
	}

	key := req.cacheKey()
	if v.cacheOn {
		if batch, ok := v.batches.Get(key); ok {
			debugf("batch cache hit: %s", key)
			return batch
		}
	}

	batch := v.build(req)
	if v.cacheOn {
		v.batches.Put(key, batch, batch.EstimatedSize())
	}
	return batch
}

func (v *Visualizer) build(req Request) *Batch {
	cats := req.normalizedCategories()
	if cats != nil && len(cats) == 0 {
		// Every category deselected: deliberately nothing to show.
		return nil
	}

	selected := v.selectAnnotations(req.ImageID, cats)
	if len(selected) == 0 {
		return nil
	}
	selected = Subsample(selected, req.MaxShown, req.Seed)

	batch := &Batch{EdgeWidth: v.edge, Opacity: v.opacity}
	bboxAsPolygon := req.ShowBBox && req.ShowMask
	for _, ann := range selected {
		if req.ShowMask {
			v.appendMasks(batch, ann)
		}
		if req.ShowBBox {
			v.appendBBox(batch, ann, bboxAsPolygon)
		}
	}
	if batch.Len() == 0 {
		return nil
	}
	return batch
}

// selectAnnotations answers "annotations of image, restricted to cats"
// through the selection cache. cats is normalized and either nil or
// non-empty here.
func (v *Visualizer) selectAnnotations(imageID int, cats []int) []coco.Annotation {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(imageID))
	sb.WriteByte('|')
	writeCategorySet(&sb, cats)
	key := sb.String()

	if v.cacheOn {
		if anns, ok := v.selections.Get(key); ok {
			debugf("selection cache hit: %s", key)
			return anns
		}
	}
	anns := v.index.Select(imageID, cats)
	if v.cacheOn {
		v.selections.Put(key, anns, int64(len(anns))*annotationEstBytes)
	}
	return anns
}

func (v *Visualizer) appendMasks(batch *Batch, ann coco.Annotation) {
	color := v.Color(ann.CategoryID)
	for _, ring := range ann.Segmentation {
		pts, err := v.ringPoints(ring)
		if err != nil {
			log.Printf("shapes: skipping mask ring of annotation %d: %v", ann.ID, err)
			continue
		}
		batch.add(pts, ShapePolygon, color, color, v.propsFor(ann, GeometryMask))
	}
}

func (v *Visualizer) appendBBox(batch *Batch, ann coco.Annotation, asPolygon bool) {
	pts, err := v.bboxPoints(ann.BBox)
	if err != nil {
		log.Printf("shapes: skipping bounding box of annotation %d: %v", ann.ID, err)
		return
	}
	typ := ShapeRectangle
	if asPolygon {
		// Mixed batches must stay homogeneous; the four corners render
		// identically either way.
		typ = ShapePolygon
	}
	batch.add(pts, typ, Transparent, v.Color(ann.CategoryID), v.propsFor(ann, GeometryBBox))
}

func (v *Visualizer) ringPoints(ring []float64) ([]Point, error) {
	if !v.cacheOn {
		return PolygonToViewer(ring)
	}
	key := coordKey(ring)
	if pts, ok := v.rings.Get(key); ok {
		return pts, nil
	}
	pts, err := PolygonToViewer(ring)
	if err != nil {
		return nil, err
	}
	v.rings.Put(key, pts, int64(len(ring))*8)
	return pts, nil
}

func (v *Visualizer) bboxPoints(bbox []float64) ([]Point, error) {
	if !v.cacheOn {
		return BBoxToViewer(bbox)
	}
	key := coordKey(bbox)
	if pts, ok := v.boxes.Get(key); ok {
		return pts, nil
	}
	pts, err := BBoxToViewer(bbox)
	if err != nil {
		return nil, err
	}
	v.boxes.Put(key, pts, 64)
	return pts, nil
}

func (v *Visualizer) propsFor(ann coco.Annotation, kind GeometryKind) Properties {
	return Properties{
		AnnotationID: ann.ID,
		CategoryID:   ann.CategoryID,
		CategoryName: v.CategoryName(ann.CategoryID),
		Area:         ann.Area,
		Kind:         kind,
	}
}

// ClearCaches drops everything the visualizer has memoized.
func (v *Visualizer) ClearCaches() {
	v.batches.Clear()
	v.selections.Clear()
	v.rings.Clear()
	v.boxes.Clear()
}

// BatchCacheStats exposes the batch cache counters, mostly for
// diagnostics and tests.
func (v *Visualizer) BatchCacheStats() cache.Stats {
	return v.batches.Snapshot()
}
