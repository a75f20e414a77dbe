// Package coco loads, validates and indexes COCO object detection
// annotation files.
//
// A COCO document has three top-level arrays: images, categories and
// annotations. Annotations reference images and categories by integer
// id and carry an axis-aligned bounding box plus an optional polygon
// segmentation. This package parses such documents into typed records,
// checks their structure before anything downstream touches them, and
// builds a selection index that answers "annotations of image X,
// restricted to categories Y" queries with a single scan.
//
// # Validation
//
// Validate operates on a generically decoded document and fails
// closed: every malformed shape (wrong top-level type, missing
// section, non-object record, missing required key) yields false
// rather than an error. LoadDataset combines reading, parsing and
// validation, and reports failures as *LoadError values that carry
// both a technical message for logs and a short user-facing message.
//
// # Coordinate conventions
//
// Everything in this package stays in source (COCO) coordinates:
// bounding boxes are [x, y, width, height] and polygon rings are flat
// [x1, y1, x2, y2, ...] lists. Conversion to viewer row/col space is
// the shapes package's job.
//
// # Index
//
// The Index keeps annotation image ids and category ids in parallel
// int32 columns. Selections scan those columns instead of walking the
// annotation records, which keeps the per-annotation cost to an
// integer compare even for six-figure annotation counts. Indexes are
// immutable after construction and safe for concurrent readers.
//
// # Cancellation
//
// Long passes (index construction) accept a ProgressFunc that is
// invoked about every 100 annotations; returning false abandons the
// pass with ErrCancelled and the partial index is discarded.
package coco
