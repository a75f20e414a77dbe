package session

import (
	"errors"
	"testing"

	"github.com/ironsheep/coco-viewer-mcp/internal/coco"
)

func TestFileState_Load(t *testing.T) {
	path := writeDataset(t, mixedDatasetJSON)
	var f FileState

	if err := f.Load(path, coco.LoadDataset, nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !f.Loaded() {
		t.Error("Loaded() = false after successful load")
	}
	if f.Path() != path {
		t.Errorf("Path() = %q, want %q", f.Path(), path)
	}
	info := f.Info()
	if info.Images != 2 || info.Annotations != 3 || info.Categories != 2 {
		t.Errorf("Info() = %+v, want 2 images, 3 annotations, 2 categories", info)
	}
	if info.FileName != "data.json" {
		t.Errorf("Info().FileName = %q, want data.json", info.FileName)
	}
}

func TestFileState_LoadFailureKeepsState(t *testing.T) {
	path := writeDataset(t, mixedDatasetJSON)
	var f FileState
	if err := f.Load(path, coco.LoadDataset, nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	failing := func(string) (*coco.Dataset, error) {
		return nil, errors.New("boom")
	}
	if err := f.Load("other.json", failing, nil); err == nil {
		t.Fatal("expected an error from the failing loader")
	}

	if f.Path() != path {
		t.Errorf("Path() = %q after failed load, want %q", f.Path(), path)
	}
	if !f.Loaded() || f.Dataset() == nil || f.Index() == nil {
		t.Error("previously loaded dataset should survive a failed load")
	}
}

func TestFileState_CancelledLoadKeepsState(t *testing.T) {
	path := writeDataset(t, mixedDatasetJSON)
	var f FileState
	if err := f.Load(path, coco.LoadDataset, nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	cancel := func(current, total int) bool { return false }
	err := f.Load(writeDataset(t, maskOnlyDatasetJSON), coco.LoadDataset, cancel)
	if !errors.Is(err, coco.ErrCancelled) {
		t.Fatalf("error = %v, want ErrCancelled", err)
	}

	if f.Info().Images != 2 {
		t.Error("cancelled load must not replace the installed dataset")
	}
}

func TestFileState_EmptyInfo(t *testing.T) {
	var f FileState

	if f.Loaded() {
		t.Error("fresh state reports Loaded()")
	}
	if info := f.Info(); info != (Info{}) {
		t.Errorf("Info() = %+v, want zero value", info)
	}
}
