package domain

// Field is a single key/value cell of a Record.
type Field struct {
	Key   string
	Value string
}

// Record is an ordered row. Key order is significant: the CSV exporter
// derives its header from the first record's keys.
type Record []Field

// Keys returns the keys in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value for key and whether it was present.
func (r Record) Get(key string) (string, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Document converts the record into a document body.
func (r Record) Document() Document {
	doc := make(Document, len(r))
	for _, f := range r {
		doc[f.Key] = f.Value
	}
	return doc
}
