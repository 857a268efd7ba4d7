package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/anchore/npmsweep/internal/log"
)

const (
	packageColumn = "package"
	versionColumn = "version"
)

// ErrLoad is returned (wrapped) whenever the catalog source cannot be read or does not have the expected shape.
var ErrLoad = errors.New("unable to load compromised package catalog")

// Load reads a CSV catalog source with a header row. The "Package" column is required, the "Version" column is
// optional; header names are matched case-insensitively. Short rows and empty cells are tolerated.
func Load(fs afero.Fs, path string) (*Catalog, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w from %q: %v", ErrLoad, path, err)
	}
	defer log.CloseAndLogError(f, path)

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("%w from %q: %v", ErrLoad, path, err)
	}

	c := New(rows...)
	log.Debugf("catalog %q: %d rows, %d distinct packages", path, len(rows), c.Len())
	return c, nil
}

// ReadRows parses CSV content into raw catalog rows.
func ReadRows(reader io.Reader) ([]Row, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read header row: %w", err)
	}

	pkgIdx, verIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case packageColumn:
			if pkgIdx < 0 {
				pkgIdx = i
			}
		case versionColumn:
			if verIdx < 0 {
				verIdx = i
			}
		}
	}
	if pkgIdx < 0 {
		return nil, fmt.Errorf("missing %q column in header %v", "Package", header)
	}

	var rows []Row
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read row: %w", err)
		}
		rows = append(rows, Row{
			Package: field(record, pkgIdx),
			Version: field(record, verIdx),
		})
	}
	return rows, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
