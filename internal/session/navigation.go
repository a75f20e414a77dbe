package session

import "github.com/ironsheep/coco-viewer-mcp/internal/coco"

// NavState tracks the current position in the dataset's images array.
// Movement methods report whether the position actually changed; at a
// bound they return false and stay put.
type NavState struct {
	images []coco.Image
	pos    int
}

// Install replaces the image list and resets the position to the
// first image.
func (n *NavState) Install(images []coco.Image) {
	n.images = images
	n.pos = 0
}

// Count returns how many images the dataset has.
func (n *NavState) Count() int { return len(n.images) }

// Index returns the zero-based position of the current image.
func (n *NavState) Index() int { return n.pos }

// Current returns the current image. ok is false when the dataset has
// no images.
func (n *NavState) Current() (coco.Image, bool) {
	if n.pos < 0 || n.pos >= len(n.images) {
		return coco.Image{}, false
	}
	return n.images[n.pos], true
}

// Next advances to the following image.
func (n *NavState) Next() bool {
	if n.pos+1 >= len(n.images) {
		return false
	}
	n.pos++
	return true
}

// Previous steps back to the preceding image.
func (n *NavState) Previous() bool {
	if n.pos == 0 || len(n.images) == 0 {
		return false
	}
	n.pos--
	return true
}

// GoTo jumps to an explicit zero-based position. Out-of-range targets
// are rejected, not clamped.
func (n *NavState) GoTo(i int) bool {
	if i < 0 || i >= len(n.images) {
		return false
	}
	n.pos = i
	return true
}

// HasMultiple reports whether navigation is meaningful.
func (n *NavState) HasMultiple() bool { return len(n.images) > 1 }
