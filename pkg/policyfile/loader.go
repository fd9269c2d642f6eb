package policyfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxFileSize is the largest policy file the loader accepts. Policy files
// are human-authored; anything bigger is a mistake.
const MaxFileSize = 1 << 20

// LoadFile reads, parses, and validates one policy file.
func (p *Parser) LoadFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &Error{
			Type:     ErrorTypeIO,
			Location: Location{File: path},
			Message:  "cannot access policy file",
			Cause:    err,
		}
	}
	if !info.Mode().IsRegular() {
		return nil, newError(ErrorTypeIO, Location{File: path}, "not a regular file")
	}
	if info.Size() > MaxFileSize {
		return nil, newError(ErrorTypeIO, Location{File: path},
			"file size %d bytes exceeds maximum %d bytes", info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{
			Type:     ErrorTypeIO,
			Location: Location{File: path},
			Message:  "cannot read policy file",
			Cause:    err,
		}
	}
	if !utf8.Valid(data) {
		return nil, newError(ErrorTypeIO, Location{File: path}, "file is not valid UTF-8")
	}

	return p.Parse(data, path)
}

// LoadDir loads every .yaml/.yml policy file directly under dir, in sorted
// order so load results are deterministic. Subdirectories are not descended
// into. The first bad file aborts the load.
func (p *Parser) LoadDir(dir string) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &Error{
			Type:     ErrorTypeIO,
			Location: Location{File: dir},
			Message:  "cannot read policy directory",
			Cause:    err,
		}
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, newError(ErrorTypeIO, Location{File: dir}, "no policy files found")
	}

	files := make([]*File, 0, len(paths))
	seen := make(map[string]string, len(paths))

	for _, path := range paths {
		f, err := p.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[f.Name]; dup {
			return nil, newError(ErrorTypeValidation, Location{File: path},
				"duplicate policy name %q (already declared in %s)", f.Name, prev)
		}
		seen[f.Name] = path
		files = append(files, f)
	}

	return files, nil
}

// Find returns the file with the given policy name from a loaded batch.
func Find(files []*File, name string) (*File, error) {
	for _, f := range files {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("policy %q not found", name)
}
