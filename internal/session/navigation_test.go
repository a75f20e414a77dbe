package session

import (
	"testing"

	"github.com/ironsheep/coco-viewer-mcp/internal/coco"
)

func testImages(n int) []coco.Image {
	images := make([]coco.Image, n)
	for i := range images {
		images[i] = coco.Image{ID: i + 1, FileName: "img.png", Width: 10, Height: 10}
	}
	return images
}

func TestNavState_Bounds(t *testing.T) {
	var n NavState
	n.Install(testImages(3))

	if n.Previous() {
		t.Error("Previous() moved past the first image")
	}
	if !n.Next() || !n.Next() {
		t.Fatal("Next() refused to move inside bounds")
	}
	if n.Index() != 2 {
		t.Fatalf("Index() = %d, want 2", n.Index())
	}
	if n.Next() {
		t.Error("Next() moved past the last image")
	}
	if !n.Previous() {
		t.Error("Previous() refused to move inside bounds")
	}
	if n.Index() != 1 {
		t.Errorf("Index() = %d, want 1", n.Index())
	}
}

func TestNavState_GoTo(t *testing.T) {
	var n NavState
	n.Install(testImages(3))

	tests := []struct {
		target    int
		wantMoved bool
		wantIndex int
	}{
		{2, true, 2},
		{0, true, 0},
		{3, false, 0},
		{-1, false, 0},
	}
	for _, tt := range tests {
		if got := n.GoTo(tt.target); got != tt.wantMoved {
			t.Errorf("GoTo(%d) = %v, want %v", tt.target, got, tt.wantMoved)
		}
		if n.Index() != tt.wantIndex {
			t.Errorf("after GoTo(%d): Index() = %d, want %d", tt.target, n.Index(), tt.wantIndex)
		}
	}
}

func TestNavState_Current(t *testing.T) {
	var n NavState
	n.Install(testImages(2))

	img, ok := n.Current()
	if !ok || img.ID != 1 {
		t.Errorf("Current() = %+v, %v; want image 1", img, ok)
	}
	n.Next()
	if img, _ := n.Current(); img.ID != 2 {
		t.Errorf("Current().ID = %d after Next, want 2", img.ID)
	}
}

func TestNavState_Empty(t *testing.T) {
	var n NavState
	n.Install(nil)

	if _, ok := n.Current(); ok {
		t.Error("Current() ok for an empty image list")
	}
	if n.Next() || n.Previous() || n.GoTo(0) {
		t.Error("movement succeeded on an empty image list")
	}
	if n.HasMultiple() {
		t.Error("HasMultiple() = true for an empty image list")
	}
}

func TestNavState_InstallResets(t *testing.T) {
	var n NavState
	n.Install(testImages(3))
	n.Next()

	n.Install(testImages(2))
	if n.Index() != 0 {
		t.Errorf("Index() = %d after reinstall, want 0", n.Index())
	}
	if !n.HasMultiple() {
		t.Error("HasMultiple() = false for two images")
	}
}
