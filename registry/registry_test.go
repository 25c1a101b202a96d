package registry

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"Nav/collision"
	"Nav/pathfinding"

	"go.uber.org/zap/zaptest"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	fp := filepath.Join(t.TempDir(), "grid.png")
	if err := os.WriteFile(fp, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return fp
}

func TestAdd_LoadOnce(t *testing.T) {
	t.Parallel()

	r := New(zaptest.NewLogger(t))
	first := collision.New(2, 2)
	if !r.Add("level1", first) {
		t.Fatal("first add should succeed")
	}
	if r.Add("level1", collision.New(9, 9)) {
		t.Error("second add under the same name should be refused")
	}

	e, ok := r.Get("level1")
	if !ok {
		t.Fatal("grid not found")
	}
	if w, h := e.Size(); w != 2 || h != 2 {
		t.Errorf("expected the first grid to stay, got %dx%d", w, h)
	}
}

func TestGet_Absent(t *testing.T) {
	t.Parallel()

	r := New(nil)
	if _, ok := r.Get("nope"); ok {
		t.Error("empty registry returned a grid")
	}
	if _, err := r.Lookup("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	r := New(zaptest.NewLogger(t))
	fp := writePNG(t, 4, 3)

	e, err := r.LoadFile("arena", fp)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if w, h := e.Size(); w != 4 || h != 3 {
		t.Errorf("size = %dx%d, want 4x3", w, h)
	}

	// Opaque top-left pixel lands on the last row.
	var blocked bool
	e.Query(func(g pathfinding.Grid) { blocked = !g.IsPassable(0, 2) })
	if !blocked {
		t.Error("cell (0,2) should be blocked")
	}

	again, err := r.LoadFile("arena", filepath.Join(t.TempDir(), "other.png"))
	if err != nil {
		t.Fatalf("reloading a known name must not touch the file: %v", err)
	}
	if again != e {
		t.Error("reloading returned a different entry")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	r := New(zaptest.NewLogger(t))
	if _, err := r.LoadFile("ghost", filepath.Join(t.TempDir(), "ghost.png")); err == nil {
		t.Fatal("expected an error")
	}
	if r.Len() != 0 {
		t.Error("failed load must not register anything")
	}
}

func TestLoadFile_Concurrent(t *testing.T) {
	t.Parallel()

	r := New(zaptest.NewLogger(t))
	fp := writePNG(t, 8, 8)

	var wg sync.WaitGroup
	entries := make([]*Entry, 16)
	for i := range entries {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := r.LoadFile("shared", fp)
			if err != nil {
				t.Errorf("LoadFile: %v", err)
				return
			}
			entries[i] = e
		}(i)
	}
	wg.Wait()

	for i := range entries {
		if entries[i] != entries[0] {
			t.Fatalf("entry %d differs from entry 0", i)
		}
	}
	if r.Len() != 1 {
		t.Errorf("expected one grid, got %d", r.Len())
	}
}

func TestRemoveAndNames(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Add("b", collision.New(1, 1))
	r.Add("a", collision.New(1, 1))
	if names := r.Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("names = %v", names)
	}
	if !r.Remove("a") || r.Remove("a") {
		t.Error("remove should succeed once")
	}
	if r.Len() != 1 {
		t.Errorf("len = %d, want 1", r.Len())
	}
}

func TestUpdate_VisibleToQuery(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Add("g", collision.New(3, 3))
	e, _ := r.Get("g")
	e.Update(func(d *collision.Data) { d.SetCollision(1, 1, true) })

	var passable bool
	e.Query(func(g pathfinding.Grid) { passable = g.IsPassable(1, 1) })
	if passable {
		t.Error("update not visible to queries")
	}
}

func TestLoadFile_TextGrid(t *testing.T) {
	t.Parallel()

	fp := filepath.Join(t.TempDir(), "maze.txt")
	if err := os.WriteFile(fp, []byte(".#.\n...\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	r := New(nil)
	e, err := r.LoadFile("maze", fp)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	e.View(func(d *collision.Data) {
		if !d.HasCollisionAt(1, 0) || d.Passable() != 5 {
			t.Error("text grid not loaded")
		}
	})
}

func TestPut_EntrySurvivesRemove(t *testing.T) {
	t.Parallel()

	r := New(zaptest.NewLogger(t))
	e, added := r.Put("level1", collision.New(3, 2))
	if !added || e == nil {
		t.Fatalf("put: entry %v, added %v", e, added)
	}
	again, added := r.Put("level1", collision.New(9, 9))
	if added || again != e {
		t.Error("second put should return the registered entry")
	}

	r.Remove("level1")
	if w, h := e.Size(); w != 3 || h != 2 {
		t.Errorf("removed entry: got %dx%d, want 3x2", w, h)
	}
}

func TestLoadFile_RemovedConcurrently(t *testing.T) {
	t.Parallel()

	r := New(zaptest.NewLogger(t))
	fp := writePNG(t, 4, 3)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			e, err := r.LoadFile("level1", fp)
			if err != nil {
				t.Errorf("load: %v", err)
				return
			}
			if e == nil {
				t.Error("load returned a nil entry")
				return
			}
			if w, h := e.Size(); w != 4 || h != 3 {
				t.Errorf("got %dx%d, want 4x3", w, h)
			}
		}()
		go func() {
			defer wg.Done()
			r.Remove("level1")
		}()
	}
	wg.Wait()
}
