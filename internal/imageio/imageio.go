package imageio

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/coco-viewer-mcp/internal/cache"
)

// DefaultMaxDim is the default bound on thumbnail width and height.
// Compact mode halves it.
const DefaultMaxDim = 1024

// Thumbnail contains an encoded preview of an underlying dataset
// image, ready to hand to the viewer as an image layer.
type Thumbnail struct {
	// Path is the resolved image file location.
	Path string `json:"path"`

	// Width and Height are the thumbnail dimensions after downscaling.
	Width  int `json:"width"`
	Height int `json:"height"`

	// SourceWidth and SourceHeight are the original image dimensions.
	SourceWidth  int `json:"source_width"`
	SourceHeight int `json:"source_height"`

	// ImageBase64 is the PNG-encoded thumbnail.
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Resolve locates an annotation's image file. COCO file names are
// normally relative to the directory the annotation file lives in;
// absolute names are kept as they are.
func Resolve(datasetPath, fileName string) string {
	if filepath.IsAbs(fileName) {
		return fileName
	}
	return filepath.Join(filepath.Dir(datasetPath), fileName)
}

// Store loads and caches thumbnails. Entries are keyed by path and
// requested size, sized by decoded pixel estimate, and evicted LRU.
type Store struct {
	thumbs *cache.Cache[string, *Thumbnail]
	maxDim int
}

// NewStore creates a thumbnail store. maxDim bounds the longer
// thumbnail side when a request does not say otherwise; cacheMB is the
// store's byte budget.
func NewStore(maxDim, cacheMB int) *Store {
	if maxDim < 1 {
		maxDim = DefaultMaxDim
	}
	return &Store{
		thumbs: cache.New[string, *Thumbnail](32, cacheMB),
		maxDim: maxDim,
	}
}

// Register adds the store's cache to a manager under the given name.
func (s *Store) Register(mgr *cache.Manager, name string) {
	mgr.Register(name, s.thumbs)
}

// Thumbnail loads an image, downscales it to fit maxDim (0 means the
// store default) and returns its PNG encoding. Results are cached;
// repeated asks for the same path and size cost one map lookup.
func (s *Store) Thumbnail(path string, maxDim int) (*Thumbnail, error) {
	if maxDim < 1 {
		maxDim = s.maxDim
	}
	key := fmt.Sprintf("%s|%d", path, maxDim)
	if thumb, ok := s.thumbs.Get(key); ok {
		return thumb, nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w", path, err)
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW > maxDim || srcH > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding thumbnail for %s: %w", path, err)
	}

	thumb := &Thumbnail{
		Path:         path,
		Width:        img.Bounds().Dx(),
		Height:       img.Bounds().Dy(),
		SourceWidth:  srcW,
		SourceHeight: srcH,
		ImageBase64:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:     "image/png",
	}
	s.thumbs.Put(key, thumb, int64(thumb.Width)*int64(thumb.Height)*4)
	return thumb, nil
}

// Clear drops all cached thumbnails.
func (s *Store) Clear() {
	s.thumbs.Clear()
}

// Stats exposes the cache counters.
func (s *Store) Stats() cache.Stats {
	return s.thumbs.Snapshot()
}
