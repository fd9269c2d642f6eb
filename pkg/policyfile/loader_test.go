package policyfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePolicy(t *testing.T, dir, name, policyName string) string {
	t.Helper()
	content := "name: " + policyName + "\nconstraints:\n  - path: a\n    require:\n      - op: eq\n        value: 1\n"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writePolicy(t, dir, "access.yaml", "access")

	file, err := NewParser(nil).LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if file.Name != "access" {
		t.Errorf("Name = %q, want access", file.Name)
	}
	if file.Source != path {
		t.Errorf("Source = %q, want %q", file.Source, path)
	}
}

func TestLoadFileErrors(t *testing.T) {
	p := NewParser(nil)
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := p.LoadFile(filepath.Join(dir, "nope.yaml"))
		assertErrorType(t, err, ErrorTypeIO)
	})

	t.Run("directory instead of file", func(t *testing.T) {
		_, err := p.LoadFile(dir)
		assertErrorType(t, err, ErrorTypeIO)
	})

	t.Run("oversized file", func(t *testing.T) {
		path := filepath.Join(dir, "huge.yaml")
		if err := os.WriteFile(path, make([]byte, MaxFileSize+1), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := p.LoadFile(path)
		assertErrorType(t, err, ErrorTypeIO)
	})

	t.Run("invalid utf8", func(t *testing.T) {
		path := filepath.Join(dir, "binary.yaml")
		if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := p.LoadFile(path)
		assertErrorType(t, err, ErrorTypeIO)
	})
}

func assertErrorType(t *testing.T, err error, want ErrorType) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	var pfErr *Error
	if !errors.As(err, &pfErr) {
		t.Fatalf("error %v is not a policyfile.Error", err)
	}
	if pfErr.Type != want {
		t.Errorf("error type = %q, want %q (error: %v)", pfErr.Type, want, err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, "b.yaml", "beta")
	writePolicy(t, dir, "a.yaml", "alpha")
	writePolicy(t, dir, "c.yml", "gamma")

	// Ignored entries.
	writePolicy(t, dir, ".hidden.yaml", "hidden")
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := NewParser(nil).LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("loaded %d files, want 3", len(files))
	}

	// Sorted by file name, not policy name.
	wantOrder := []string{"alpha", "beta", "gamma"}
	for i, want := range wantOrder {
		if files[i].Name != want {
			t.Errorf("files[%d].Name = %q, want %q", i, files[i].Name, want)
		}
	}
}

func TestLoadDirErrors(t *testing.T) {
	p := NewParser(nil)

	t.Run("empty directory", func(t *testing.T) {
		_, err := p.LoadDir(t.TempDir())
		assertErrorType(t, err, ErrorTypeIO)
	})

	t.Run("duplicate policy names", func(t *testing.T) {
		dir := t.TempDir()
		writePolicy(t, dir, "a.yaml", "dup")
		writePolicy(t, dir, "b.yaml", "dup")

		_, err := p.LoadDir(dir)
		assertErrorType(t, err, ErrorTypeValidation)
		if !strings.Contains(err.Error(), "dup") {
			t.Errorf("error %q does not name the duplicate", err)
		}
	})

	t.Run("bad file aborts the load", func(t *testing.T) {
		dir := t.TempDir()
		writePolicy(t, dir, "a.yaml", "good")
		if err := os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("name: [broken"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := p.LoadDir(dir)
		assertErrorType(t, err, ErrorTypeSyntax)
	})
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, "a.yaml", "alpha")
	writePolicy(t, dir, "b.yaml", "beta")

	files, err := NewParser(nil).LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	got, err := Find(files, "beta")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Name != "beta" {
		t.Errorf("Find returned %q", got.Name)
	}

	if _, err := Find(files, "missing"); err == nil {
		t.Error("Find for an absent name succeeded")
	}
}
