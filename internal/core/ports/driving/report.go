package driving

import "context"

// Reporter computes descriptive statistics over stored collections.
type Reporter interface {
	// Collections lists the collections in the store.
	Collections(ctx context.Context) ([]string, error)

	// Report summarises one collection.
	Report(ctx context.Context, collection string, opts ReportOptions) (*Report, error)
}

// ReportOptions tunes a report.
type ReportOptions struct {
	// TextField is the field tokenised for top words. Default "nombre".
	TextField string

	// TopWords is the number of words returned. Default 20.
	TopWords int

	// Query filters rows whose "nombre" contains it, ignoring case
	// and accents. Empty keeps every row.
	Query string

	// Refresh bypasses the collection cache.
	Refresh bool
}

// Count is a label with its frequency.
type Count struct {
	Label string
	Count int
}

// NameLength pairs a name with its length in runes.
type NameLength struct {
	Name   string
	Length int
}

// Report is the summary of one collection.
type Report struct {
	Collection string
	Documents  int
	Columns    []string
	Nulls      int

	// Population is the non-null count per column, descending.
	Population []Count

	// Initials is the distribution of the first letter of "nombre".
	Initials []Count

	TextField string
	TopWords  []Count

	// Categories counts "categorias" (exploded) or "categoria".
	Categories []Count

	Longest []NameLength

	Query   string
	Matches []map[string]string
}
