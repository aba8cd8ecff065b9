package driving

import "context"

// Ingester loads documents into the document store.
type Ingester interface {
	// UploadCSV inserts one document per CSV row into collection.
	UploadCSV(ctx context.Context, path, collection string) (*IngestResult, error)

	// IngestPage inserts the raw items of one tramites API page.
	IngestPage(ctx context.Context, page int, collection string) (*IngestResult, error)
}

// IngestResult counts the outcome of a load.
type IngestResult struct {
	Collection string
	Created    bool
	Read       int
	Inserted   int
	Failed     int
}
