package shapes

import (
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/coco-viewer-mcp/internal/coco"
)

// Color is an RGBA quadruple with components in [0, 1], the form the
// viewer consumes directly.
type Color [4]float64

// Transparent is the face color of bounding box outlines.
var Transparent = Color{0, 0, 0, 0}

// White is the fallback for category ids the dataset never declared.
var White = Color{1, 1, 1, 1}

// tab20Palette is the classic 20-color qualitative palette, used
// whenever the dataset declares at most 20 categories.
var tab20Palette = []string{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
	"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
	"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
	"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

// Palette assigns every category a deterministic color. The color is
// keyed by the rank of the category id in ascending id order, so the
// same dataset always renders the same way regardless of the order the
// categories were declared in. Up to 20 categories draw from the fixed
// qualitative palette; beyond that, hues are spaced evenly around the
// HSV wheel.
func Palette(categories []coco.Category) map[int]Color {
	ids := make([]int, 0, len(categories))
	seen := make(map[int]bool, len(categories))
	for _, cat := range categories {
		if !seen[cat.ID] {
			seen[cat.ID] = true
			ids = append(ids, cat.ID)
		}
	}
	sort.Ints(ids)

	colors := make(map[int]Color, len(ids))
	for rank, id := range ids {
		colors[id] = colorForRank(rank, len(ids))
	}
	return colors
}

func colorForRank(rank, total int) Color {
	if total <= len(tab20Palette) {
		c, err := colorful.Hex(tab20Palette[rank])
		if err == nil {
			return Color{c.R, c.G, c.B, 1}
		}
	}
	hue := 360 * float64(rank) / float64(total)
	c := colorful.Hsv(hue, 1, 1)
	return Color{c.R, c.G, c.B, 1}
}
