// Package load reads declarations from YAML and HCL files.
//
// A YAML file lists declarations under "declarations":
//
//	declarations:
//	  - name: Point
//	    namespace: geo
//	    accessors:
//	      - {name: GetX, result: int}
//	      - {name: GetTags, result: string, collection: set}
//
// An HCL file holds one "declaration" block per declaration:
//
//	declaration "Point" {
//	  namespace = "geo"
//
//	  accessor "GetX" {
//	    result = "int"
//	  }
//	}
//
// Loaded declarations carry their source position in Pos.
package load

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/syssam/facet/schema"
)

// Format is a declaration file format.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	HCL  Format = "hcl"
)

// ErrFormat is returned for files of an unknown format.
var ErrFormat = errors.New("load: unknown declaration format")

// Error is a problem at a position of a declaration file.
type Error struct {
	// Pos is "file:line".
	Pos string
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Pos + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// FormatOf returns the format of path by its extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, true
	case ".hcl":
		return HCL, true
	default:
		return "", false
	}
}

// Bytes decodes the declarations of src, a file named name in format f.
func Bytes(name string, f Format, src []byte) ([]*schema.Declaration, error) {
	var (
		decls []*schema.Declaration
		err   error
	)
	switch f {
	case YAML:
		decls, err = decodeYAML(name, src)
	case HCL:
		decls, err = decodeHCL(name, src)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, f)
	}
	if err != nil {
		return nil, err
	}
	for _, d := range decls {
		if d.Name == "" {
			return nil, &Error{Pos: d.Pos, Err: errors.New("declaration without name")}
		}
	}
	return decls, nil
}

// File loads the declarations of one file.
func File(path string) ([]*schema.Declaration, error) {
	f, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFormat, path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return Bytes(path, f, src)
}

// Paths loads the declarations of files and directories. Directories are
// walked recursively for files of a known format, in lexical order; files
// of other formats found there are ignored. The declarations are returned
// in the order of their files.
func Paths(paths ...string) ([]*schema.Declaration, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if _, ok := FormatOf(path); ok && !d.IsDir() {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	var decls []*schema.Declaration
	for _, f := range files {
		ds, err := File(f)
		if err != nil {
			return nil, err
		}
		decls = append(decls, ds...)
	}
	return decls, nil
}
