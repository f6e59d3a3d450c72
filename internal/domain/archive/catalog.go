package archive

import (
	"path/filepath"
)

// Catalog lists the report files previously archived for a ledger kind.
type Catalog struct {
	dir string
}

func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// List enumerates the archived reports for a kind, oldest file name first.
// A kind with no reports yet, including a missing directory, yields an empty
// list rather than an error.
func (c *Catalog) List(kind Kind) ([]Report, error) {
	matches, err := filepath.Glob(filepath.Join(c.dir, string(kind), "*.pdf"))
	if err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(matches))
	for _, match := range matches {
		name := filepath.Base(match)
		reports = append(reports, Report{FileName: name, Route: RouteFor(kind, name)})
	}
	return reports, nil
}

// FilePath resolves a report file name to its on-disk location, or false when
// the name is not a plain file name or the file does not exist in the kind's
// directory.
func (c *Catalog) FilePath(kind Kind, fileName string) (string, bool) {
	if fileName != filepath.Base(fileName) || filepath.Ext(fileName) != ".pdf" {
		return "", false
	}
	path := filepath.Join(c.dir, string(kind), fileName)
	matches, err := filepath.Glob(path)
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return path, true
}
