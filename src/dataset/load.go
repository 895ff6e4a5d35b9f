package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ajbenz18/nfl-analysis/src/logging"
)

var log = logging.For("loader")

// Source describes one tabular input.
type Source struct {
	Path string
	// Format is csv, tsv, txt, json or xlsx. Empty means "from the extension".
	Format string
	// HeaderRow is the 0-based header line for delimited and workbook sources.
	HeaderRow int
	// Delimiter overrides the field separator of delimited sources.
	Delimiter rune
	// ColumnsPath is the sidecar column list of a json record-list source.
	ColumnsPath string
	// Sheet selects a workbook sheet; empty means the first one.
	Sheet string
}

// DetectFormat returns the format implied by path's extension.
func DetectFormat(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// Load reads src into a Dataset. Any failure is a *LoadError.
func Load(src Source) (*Dataset, error) {
	defer log.TimeTrack(time.Now(), "load "+src.Path)

	format := strings.ToLower(src.Format)
	if format == "" {
		format = DetectFormat(src.Path)
	}

	var (
		ds  *Dataset
		err error
	)
	switch format {
	case "csv", "txt":
		ds, err = loadDelimited(src, ',')
	case "tsv":
		ds, err = loadDelimited(src, '\t')
	case "json":
		ds, err = loadRecords(src)
	case "xlsx":
		ds, err = ReadWorkbook(src.Path, WorkbookOptions{Sheet: src.Sheet, HeaderRow: src.HeaderRow})
	default:
		return nil, loadErr(src.Path, "format", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format))
	}
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded %s: %d rows, %d columns", src.Path, ds.Len(), len(ds.columns))
	return ds, nil
}

func loadDelimited(src Source, comma rune) (*Dataset, error) {
	if src.Delimiter != 0 {
		comma = src.Delimiter
	}
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, loadErr(src.Path, "open", err)
	}
	defer f.Close()
	return ReadDelimited(f, src.Path, DelimitedOptions{HeaderRow: src.HeaderRow, Comma: comma})
}

func loadRecords(src Source) (*Dataset, error) {
	if src.ColumnsPath == "" {
		return nil, loadErr(src.Path, "columns", fmt.Errorf("%w: record list needs a column list", ErrMalformed))
	}
	cf, err := os.Open(src.ColumnsPath)
	if err != nil {
		return nil, loadErr(src.ColumnsPath, "open", err)
	}
	defer cf.Close()
	cols, err := ReadColumnNames(cf)
	if err != nil {
		return nil, loadErr(src.ColumnsPath, "read", err)
	}

	f, err := os.Open(src.Path)
	if err != nil {
		return nil, loadErr(src.Path, "open", err)
	}
	defer f.Close()
	return ReadRecords(f, src.Path, cols)
}
