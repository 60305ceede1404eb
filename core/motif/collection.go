// core/motif/collection.go
package motif

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// NamedMatrix is a frequency matrix read from a collection.
type NamedMatrix struct {
	ID     string
	Source string
	Freq   FrequencyMatrix
}

// SitesExt marks a file of aligned binding sites, one per line.
const SitesExt = ".sites"

var matrixExt = map[string]bool{".txt": true, ".fm": true, ".cm": true, ".mat": true, SitesExt: true}

// MatrixID is the file base name up to the first '_' or '.'. LoadMatrixCollection
// falls back to the base name without extension when two files share an ID.
func MatrixID(name string) string {
	base := path.Base(filepath.ToSlash(name))
	if i := strings.IndexAny(base, "_."); i > 0 {
		return base[:i]
	}
	return base
}

// IsMatrixFile reports whether name carries a matrix extension.
func IsMatrixFile(name string) bool {
	return matrixExt[strings.ToLower(path.Ext(filepath.ToSlash(name)))]
}

// LoadMatrixCollection reads matrices from each path: a directory (matrix
// files directly inside it), a .zip archive, or a single file. Files are read
// in name order. Count matrices are converted with pseudo.
func LoadMatrixCollection(paths []string, pseudo float64) ([]NamedMatrix, error) {
	var out []NamedMatrix
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil {
			return nil, &LoadError{Err: err}
		}
		var ms []NamedMatrix
		switch {
		case st.IsDir():
			ms, err = loadDir(p, pseudo)
		case strings.EqualFold(filepath.Ext(p), ".zip"):
			ms, err = loadZip(p, pseudo)
		default:
			var m NamedMatrix
			m, err = loadFile(p, pseudo)
			ms = []NamedMatrix{m}
		}
		if err != nil {
			return nil, err
		}
		out = append(out, ms...)
	}
	return disambiguate(out)
}

// disambiguate renames colliding IDs (MA0139.1.txt and MA0139.2.txt both give
// "MA0139") to their extension-less base names.
func disambiguate(ms []NamedMatrix) ([]NamedMatrix, error) {
	count := make(map[string]int, len(ms))
	for _, m := range ms {
		count[m.ID]++
	}
	seen := make(map[string]string, len(ms))
	for i := range ms {
		if count[ms[i].ID] > 1 {
			base := path.Base(filepath.ToSlash(ms[i].Source))
			ms[i].ID = strings.TrimSuffix(base, path.Ext(base))
		}
		if prev, ok := seen[ms[i].ID]; ok {
			return nil, &LoadError{ID: ms[i].ID, Err: fmt.Errorf("%s and %s share a matrix id", prev, ms[i].Source)}
		}
		seen[ms[i].ID] = ms[i].Source
	}
	return ms, nil
}

func parseNamed(name, source string, r io.Reader, pseudo float64) (NamedMatrix, error) {
	id := MatrixID(name)
	var (
		fm  FrequencyMatrix
		err error
	)
	if strings.EqualFold(path.Ext(filepath.ToSlash(name)), SitesExt) {
		fm, err = ParseSites(r, pseudo)
	} else {
		fm, err = ParseMatrix(r, Auto, pseudo)
	}
	if err != nil {
		return NamedMatrix{}, &LoadError{ID: id, Err: fmt.Errorf("%s: %w", source, err)}
	}
	return NamedMatrix{ID: id, Source: source, Freq: fm}, nil
}

func loadFile(p string, pseudo float64) (NamedMatrix, error) {
	fh, err := os.Open(p)
	if err != nil {
		return NamedMatrix{}, &LoadError{ID: MatrixID(p), Err: err}
	}
	defer func() { _ = fh.Close() }()
	return parseNamed(p, p, fh, pseudo)
}

func loadDir(dir string, pseudo float64) ([]NamedMatrix, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	var out []NamedMatrix
	for _, e := range ents {
		if e.IsDir() || !IsMatrixFile(e.Name()) {
			continue
		}
		m, err := loadFile(filepath.Join(dir, e.Name()), pseudo)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, &LoadError{Err: fmt.Errorf("no matrix files in %s", dir)}
	}
	return out, nil
}

func loadZip(p string, pseudo float64) ([]NamedMatrix, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("%s: %w", p, err)}
	}
	defer func() { _ = zr.Close() }()

	files := make([]*zip.File, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !IsMatrixFile(f.Name) || strings.HasPrefix(path.Base(f.Name), ".") {
			continue
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	out := make([]NamedMatrix, 0, len(files))
	for _, f := range files {
		rc, err := f.Open()
		if err != nil {
			return nil, &LoadError{ID: MatrixID(f.Name), Err: err}
		}
		m, err := parseNamed(f.Name, p+":"+f.Name, rc, pseudo)
		_ = rc.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, &LoadError{Err: fmt.Errorf("no matrix files in %s", p)}
	}
	return out, nil
}
