package shapes

// batchEntryBytes is the per-entry constant used to estimate a batch's
// cache footprint.
const batchEntryBytes = 1024

// ShapeType names the viewer primitive an entry renders as.
type ShapeType string

const (
	ShapePolygon   ShapeType = "polygon"
	ShapeRectangle ShapeType = "rectangle"
)

// GeometryKind tags which annotation geometry produced an entry.
type GeometryKind string

const (
	GeometryMask GeometryKind = "mask"
	GeometryBBox GeometryKind = "bbox"
)

// Properties is the per-entry metadata the viewer surfaces on hover
// and selection.
type Properties struct {
	AnnotationID int          `json:"annotation_id"`
	CategoryID   int          `json:"category_id"`
	CategoryName string       `json:"category_name"`
	Area         float64      `json:"area"`
	Kind         GeometryKind `json:"kind"`
}

// Batch is one renderable shape collection for a single image. The
// five slices run in parallel: entry i is described by Points[i],
// Types[i], FaceColors[i], EdgeColors[i] and Props[i].
type Batch struct {
	Points     [][]Point    `json:"points"`
	Types      []ShapeType  `json:"shape_types"`
	FaceColors []Color      `json:"face_colors"`
	EdgeColors []Color      `json:"edge_colors"`
	Props      []Properties `json:"properties"`

	// EdgeWidth and Opacity are layer-wide styling from configuration.
	EdgeWidth float64 `json:"edge_width"`
	Opacity   float64 `json:"opacity"`
}

// Len returns the number of entries in the batch.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Types)
}

// EstimatedSize approximates the batch's memory footprint for cache
// accounting: a fixed charge per entry.
func (b *Batch) EstimatedSize() int64 {
	if b == nil {
		// Cached absent results still occupy a slot.
		return 64
	}
	return int64(len(b.Types)) * batchEntryBytes
}

func (b *Batch) add(pts []Point, typ ShapeType, face, edge Color, props Properties) {
	b.Points = append(b.Points, pts)
	b.Types = append(b.Types, typ)
	b.FaceColors = append(b.FaceColors, face)
	b.EdgeColors = append(b.EdgeColors, edge)
	b.Props = append(b.Props, props)
}
