package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListOrderAndFilter(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.studio3", "c.txt", "10.jpg", "2.jpg", "Z.PNG"} {
		writeFile(t, dir, name, []byte("x"))
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}

	paths, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []string{"10.jpg", "2.jpg", "Z.PNG", "a.studio3", "b.png"}
	if len(paths) != len(want) {
		t.Fatalf("List() = %v, want %v", paths, want)
	}
	for i, p := range paths {
		if filepath.Base(p) != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, filepath.Base(p), want[i])
		}
		if filepath.Dir(p) != dir {
			t.Errorf("List()[%d] dir = %s, want %s", i, filepath.Dir(p), dir)
		}
	}
}

func TestListMissingDir(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("List() on a missing directory should fail")
	}
}

func TestListEmpty(t *testing.T) {
	paths, err := List(t.TempDir())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("List() = %v, want empty", paths)
	}
}
