// Package csvfile writes and reads record tables as UTF-8, comma-delimited
// CSV files with a header row.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driven"
	"github.com/custodia-labs/tramites/internal/logger"
)

// Ensure Exporter implements the interfaces.
var (
	_ driven.RecordExporter = (*Exporter)(nil)
	_ driven.RecordReader   = (*Exporter)(nil)
)

// Exporter writes records to CSV files and reads them back.
type Exporter struct{}

// NewExporter creates a CSV exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes records to path, truncating any existing file. The header
// is the first record's key order; every row is rendered against it, so a
// key missing from a later record yields an empty cell and extra keys are
// dropped. With no records nothing is written, the file is left untouched
// and Export reports false.
func (e *Exporter) Export(path string, records []domain.Record) (bool, error) {
	if len(records) == 0 {
		logger.Warn("No data to write to %s", path)
		return false, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("create %s: %w", path, err)
	}

	if err := write(f, records); err != nil {
		f.Close()
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("close %s: %w", path, err)
	}

	logger.Info("Wrote %d rows to %s", len(records), path)
	return true, nil
}

func write(w io.Writer, records []domain.Record) error {
	header := records[0].Keys()

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, rec := range records {
		for i, key := range header {
			row[i], _ = rec.Get(key)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read parses the CSV at path into records keyed by its header row.
// An empty file yields no records.
func (e *Exporter) Read(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	var records []domain.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		rec := make(domain.Record, len(header))
		for i, key := range header {
			rec[i] = domain.Field{Key: key, Value: row[i]}
		}
		records = append(records, rec)
	}

	logger.Debug("Read %d rows from %s", len(records), path)
	return records, nil
}
