package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/galaxy/internal/galaxy"
)

func generate(t *testing.T, count int) *galaxy.Buffers {
	t.Helper()
	p := galaxy.DefaultParameters()
	p.Count = count
	b, err := galaxy.NewGenerator(nil, galaxy.WithSource(galaxy.NewSource(3))).Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	b := generate(t, 250)
	runID, err := st.Save(b, 42)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Count != 250 {
		t.Errorf("expected count 250, got %d", meta.Count)
	}
	if meta.Params.InsideColor.Hex() != galaxy.DefaultInsideColor {
		t.Errorf("inside color lost: %s", meta.Params.InsideColor.Hex())
	}

	loaded, err := st.LoadPoints(runID)
	if err != nil {
		t.Fatalf("load points failed: %v", err)
	}
	if loaded.Len() != 250 {
		t.Fatalf("expected 250 points, got %d", loaded.Len())
	}
	for i := range b.Positions {
		if loaded.Positions[i] != b.Positions[i] || loaded.Colors[i] != b.Colors[i] {
			t.Fatalf("value %d differs after round trip", i)
		}
	}
}

func TestStoreSaveReleased(t *testing.T) {
	st := New(t.TempDir())
	b := generate(t, 100)
	b.Release()
	if _, err := st.Save(b, 1); err == nil {
		t.Error("expected error saving released buffers")
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(generate(t, 100), int64(i)); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestLoadNonexistent(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nonexistent"); err == nil {
		t.Error("expected error for nonexistent run")
	}
}
