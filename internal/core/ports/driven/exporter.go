package driven

import "github.com/custodia-labs/tramites/internal/core/domain"

// RecordExporter writes records to a tabular file.
type RecordExporter interface {
	// Export writes records to path. It returns false without touching the
	// file when records is empty.
	Export(path string, records []domain.Record) (bool, error)
}

// RecordReader reads records back from a tabular file.
type RecordReader interface {
	Read(path string) ([]domain.Record, error)
}
