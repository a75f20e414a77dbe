// Package imageio serves the underlying dataset images as viewer
// image layers.
//
// Annotation files reference images by file name, normally relative to
// the annotation file's own directory; Resolve turns those names into
// paths. The Store decodes images on demand, downscales them to a
// bounded thumbnail with Lanczos resampling, and returns base64 PNG
// payloads the protocol can carry inline. Decoded results are cached
// with a pixel-count byte estimate so flipping back and forth between
// images does not re-decode them.
//
// With lazy loading enabled (the default) nothing is decoded until a
// thumbnail is requested; with it disabled, the session pre-warms the
// current image on navigation.
package imageio
