package domain

// IDField is the document key holding its identifier.
const IDField = "_id"

// Document is a JSON-like document stored in a named collection.
type Document map[string]any

// ID returns the document identifier, or "" when unset.
func (d Document) ID() string {
	s, _ := d[IDField].(string)
	return s
}

// Clone returns a shallow copy.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
