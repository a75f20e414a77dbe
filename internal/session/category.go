package session

import (
	"sort"

	"github.com/ironsheep/coco-viewer-mcp/internal/coco"
)

// CategoryState tracks which categories the viewer has enabled. A
// freshly installed dataset starts with every category on.
type CategoryState struct {
	order   []coco.Category
	enabled map[int]bool
}

// Install replaces the category set, enabling every category.
func (c *CategoryState) Install(cats []coco.Category) {
	c.order = cats
	c.enabled = make(map[int]bool, len(cats))
	for _, cat := range cats {
		c.enabled[cat.ID] = true
	}
}

// Categories returns the categories in dataset declaration order.
func (c *CategoryState) Categories() []coco.Category { return c.order }

// Enabled reports whether a category id is currently shown. Unknown
// ids are reported as off.
func (c *CategoryState) Enabled(id int) bool { return c.enabled[id] }

// Toggle switches one category on or off. It returns false when the
// id is not part of the installed dataset.
func (c *CategoryState) Toggle(id int, on bool) bool {
	if _, ok := c.enabled[id]; !ok {
		return false
	}
	c.enabled[id] = on
	return true
}

// SelectAll enables every category.
func (c *CategoryState) SelectAll() {
	for id := range c.enabled {
		c.enabled[id] = true
	}
}

// SelectNone disables every category.
func (c *CategoryState) SelectNone() {
	for id := range c.enabled {
		c.enabled[id] = false
	}
}

// Selected returns the enabled category ids sorted ascending. Before
// any dataset is installed it returns nil; afterwards it is always
// non-nil, so a result of length zero means the user switched every
// category off rather than "no restriction".
func (c *CategoryState) Selected() []int {
	if c.enabled == nil {
		return nil
	}
	ids := make([]int, 0, len(c.enabled))
	for id, on := range c.enabled {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
