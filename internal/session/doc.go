// Package session holds one viewer's mutable state and the services
// behind it.
//
// A Session is a container of four small controllers plus the
// dataset-scoped services built on load:
//
//   - FileState: which annotation file is open, its dataset and index;
//   - CategoryState: per-category enabled flags;
//   - NavState: the position in the images array;
//   - DisplayState: display modes, annotation cap, subsample seed.
//
// Load installs a dataset across all controllers atomically from the
// caller's point of view: a failed load (missing file, malformed JSON,
// cancellation) leaves the previously loaded dataset fully usable.
//
// # Refresh
//
// Refresh is the bridge between controller state and the shapes
// pipeline. It snapshots the current image, the enabled categories,
// the display modes, cap and seed into a single request and hands it
// to the visualizer. An empty category selection is forwarded as the
// explicit empty filter, which deliberately produces the absent batch
// rather than "no restriction".
//
// # Ownership
//
// Everything a session allocates hangs off one cache.Manager: the
// visualizer's four caches and the thumbnail store register with it on
// load, and ClearCaches/Close flush them together. Sessions are
// constructed explicitly with New and injected where needed; the
// package keeps no global state.
//
// Sessions are not safe for concurrent use. The MCP server drives one
// session from its single request loop, which is the intended setup.
package session
