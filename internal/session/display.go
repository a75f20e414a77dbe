package session

import "math/rand"

// DefaultSeed is the subsample seed a fresh session starts with, so
// the initial view of a capped image is reproducible across runs.
const DefaultSeed = 42

// DisplayState holds the rendering controls: which geometry kinds are
// shown, how many annotations may render at once, and the subsample
// seed. At least one of the two display modes is always on.
type DisplayState struct {
	showBBox bool
	showMask bool
	cap      int
	maxCap   int
	seed     int64
}

// NewDisplayState creates display state with bounding boxes on, masks
// off, the given starting cap (clamped) and the default seed. maxCap
// is the ceiling later SetCap calls are clamped to.
func NewDisplayState(defaultCap, maxCap int) *DisplayState {
	if maxCap < 1 {
		maxCap = 1
	}
	d := &DisplayState{showBBox: true, maxCap: maxCap, seed: DefaultSeed}
	d.SetCap(defaultCap)
	return d
}

// ShowBBox reports whether bounding boxes render.
func (d *DisplayState) ShowBBox() bool { return d.showBBox }

// ShowMask reports whether segmentation masks render.
func (d *DisplayState) ShowMask() bool { return d.showMask }

// Cap returns the per-image annotation display cap.
func (d *DisplayState) Cap() int { return d.cap }

// Seed returns the current subsample seed.
func (d *DisplayState) Seed() int64 { return d.seed }

// SetCap sets the display cap, clamped to [1, maxCap], and returns
// the value actually applied.
func (d *DisplayState) SetCap(n int) int {
	if n < 1 {
		n = 1
	}
	if n > d.maxCap {
		n = d.maxCap
	}
	d.cap = n
	return n
}

// Resample draws a fresh subsample seed in [1, 10000] and returns it.
// Capped images show a different annotation subset afterwards.
func (d *DisplayState) Resample() int64 {
	d.seed = 1 + rand.Int63n(10000)
	return d.seed
}

// SetBBox switches bounding boxes on or off. Switching off the last
// active mode force-enables the other one.
func (d *DisplayState) SetBBox(on bool) {
	d.showBBox = on
	if !d.showBBox && !d.showMask {
		d.showMask = true
	}
}

// SetMask switches masks on or off. Switching off the last active
// mode force-enables the other one.
func (d *DisplayState) SetMask(on bool) {
	d.showMask = on
	if !d.showBBox && !d.showMask {
		d.showBBox = true
	}
}

// SetModes sets both display modes at once. Asking for both off is
// corrected to bounding boxes on. The applied values are returned.
func (d *DisplayState) SetModes(bbox, mask bool) (showBBox, showMask bool) {
	if !bbox && !mask {
		bbox = true
	}
	d.showBBox = bbox
	d.showMask = mask
	return bbox, mask
}
