package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOSFilesystemManager_Resolve(t *testing.T) {
	m := NewOSFilesystemManager()
	dir := t.TempDir()

	file := filepath.Join(dir, "Level.sav")
	if err := os.WriteFile(file, []byte("save data"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	t.Run("resolves file", func(t *testing.T) {
		p, err := m.Resolve(file)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if p.IsDir() {
			t.Error("IsDir() = true for a file")
		}
		if p.Name() != "Level.sav" {
			t.Errorf("Name() = %q, want %q", p.Name(), "Level.sav")
		}
		if p.Info().Size() != int64(len("save data")) {
			t.Errorf("Size() = %d, want %d", p.Info().Size(), len("save data"))
		}
	})

	t.Run("resolves directory", func(t *testing.T) {
		p, err := m.Resolve(dir)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if !p.IsDir() {
			t.Error("IsDir() = false for a directory")
		}
	})

	t.Run("fails for missing path", func(t *testing.T) {
		if _, err := m.Resolve(filepath.Join(dir, "missing")); err == nil {
			t.Fatal("Resolve() expected error for missing path")
		}
	})
}

func TestOSFilesystemManager_ListDir(t *testing.T) {
	m := NewOSFilesystemManager()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "b.sav"), []byte("b"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.sav"), []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	p, err := m.Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	children, err := m.ListDir(p)
	if err != nil {
		t.Fatalf("ListDir() error = %v", err)
	}

	var names []string
	for _, c := range children {
		names = append(names, c.Name())
	}
	want := []string{"a.sav", "b.sav", "sub"}
	if len(names) != len(want) {
		t.Fatalf("ListDir() names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if !children[2].IsDir() {
		t.Error("sub should be a directory")
	}

	t.Run("fails for file path", func(t *testing.T) {
		f, err := m.Resolve(filepath.Join(dir, "a.sav"))
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if _, err := m.ListDir(f); err == nil {
			t.Fatal("ListDir() expected error for file path")
		}
	})
}
