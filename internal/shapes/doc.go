// Package shapes converts COCO annotations into renderable shape
// batches: the geometry, colors and metadata a viewer needs to draw
// one image's annotations.
//
// # Coordinate System
//
// COCO stores geometry in x-then-y order: polygon rings as flat
// [x1, y1, x2, y2, ...] lists and bounding boxes as [x, y, w, h].
// Viewers address pixels row-then-col, so every converted vertex is a
// [row, col] = [y, x] pair. PolygonToViewer and PolygonToSource are
// exact inverses; BBoxToViewer emits the four corners clockwise from
// the top-left.
//
// # Batches
//
// A Batch holds parallel slices (points, shape types, face colors,
// edge colors, properties), one element per rendered entry. Mask
// entries are filled polygons in the category color; bounding box
// entries are transparent-faced outlines. When a request shows both,
// box entries are emitted as polygons so the batch stays homogeneous.
//
// # Determinism
//
// Everything here is deterministic. Category colors are keyed by the
// rank of the category id, the subsampler is seeded, and cache keys
// normalize the category filter, so the same dataset and request
// always produce the same batch.
//
// # Caching
//
// The Visualizer memoizes at three levels: finished batches (keyed by
// the full request), index selections (image + filter), and individual
// coordinate conversions (exact coordinate bytes). An image that
// legitimately produces no shapes is cached as an absent result, which
// is distinct from "never computed". Cache trouble can only cost time,
// never correctness: with caching disabled every call rebuilds from
// the index.
//
// # Error Handling
//
// Refresh never returns an error. Malformed geometry (short rings, odd
// coordinate counts, non-finite values, truncated boxes) is logged and
// skipped entry by entry; the batch carries whatever converted cleanly.
package shapes
