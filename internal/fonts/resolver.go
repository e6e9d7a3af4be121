// Package fonts maps font family and weight names to font files in a
// directory. The directory is scanned on every call.
package fonts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Extension is the only file type served.
const Extension = ".ttf"

var ErrIOFailure = errors.New("font directory unreadable")

// NotFoundError is returned by Resolve when no file matches the request.
type NotFoundError struct {
	RequestedFile string
	Available     []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("font file %s not found", e.RequestedFile)
}

// Font is a resolved font file.
type Font struct {
	Key     string
	Data    []byte
	ModTime time.Time
}

func (f Font) FileName() string {
	return f.Key + Extension
}

// Info describes one font file found by ListAll.
type Info struct {
	FileName string `json:"fileName"`
	Family   string `json:"family"`
	Weight   string `json:"weight"`
	FullName string `json:"fullName"`
}

type Resolver struct {
	fsys fs.FS
}

func NewResolver(fsys fs.FS) *Resolver {
	return &Resolver{fsys: fsys}
}

// NewDirResolver serves fonts from a directory on disk.
func NewDirResolver(dir string) *Resolver {
	return NewResolver(os.DirFS(dir))
}

// Normalize title-cases each space-separated word and joins the words with
// hyphens: "open sans" becomes "Open-Sans".
func Normalize(s string) string {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	words := strings.Split(s, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		first, rest := splitFirstRune(word)
		words[i] = upper.String(first) + lower.String(rest)
	}
	return strings.Join(words, "-")
}

// Key is the file name, without extension, for a family and weight.
func Key(family, weight string) string {
	return Normalize(family) + "-" + Normalize(weight)
}

// Resolve loads the font file for family and weight. A miss returns a
// *NotFoundError listing the fonts that do exist.
func (r *Resolver) Resolve(family, weight string) (Font, error) {
	key := Key(family, weight)
	name := key + Extension

	if isFileName(name) {
		data, err := fs.ReadFile(r.fsys, name)
		if err == nil {
			font := Font{Key: key, Data: data}
			if info, statErr := fs.Stat(r.fsys, name); statErr == nil {
				font.ModTime = info.ModTime()
			}
			return font, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return Font{}, fmt.Errorf("%w: read %s: %v", ErrIOFailure, name, err)
		}
	}

	available, err := r.keys()
	if err != nil {
		return Font{}, err
	}
	return Font{}, &NotFoundError{RequestedFile: name, Available: available}
}

// ListAll describes every font file in the directory, sorted by file name.
func (r *Resolver) ListAll() ([]Info, error) {
	keys, err := r.keys()
	if err != nil {
		return nil, err
	}

	infos := make([]Info, 0, len(keys))
	for _, key := range keys {
		infos = append(infos, describe(key))
	}
	return infos, nil
}

func (r *Resolver) keys() ([]string, error) {
	entries, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIOFailure, err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != Extension {
			continue
		}
		keys = append(keys, strings.TrimSuffix(entry.Name(), Extension))
	}
	sort.Strings(keys)
	return keys, nil
}

func describe(key string) Info {
	family, weight := "", key
	if idx := strings.LastIndex(key, "-"); idx >= 0 {
		family, weight = key[:idx], key[idx+1:]
	}

	fullName := strings.TrimSpace(strings.ReplaceAll(family, "-", " ") + " " + weight)

	return Info{
		FileName: key + Extension,
		Family:   family,
		Weight:   weight,
		FullName: fullName,
	}
}

func splitFirstRune(s string) (string, string) {
	for i := range s {
		if i > 0 {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// isFileName reports whether name refers to a file directly inside the
// font directory.
func isFileName(name string) bool {
	return fs.ValidPath(name) && !strings.ContainsAny(name, `/\`)
}
