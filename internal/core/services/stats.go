package services

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driving"
)

// wordPattern matches runs of three or more Spanish letters.
var wordPattern = regexp.MustCompile(`[a-záéíóúñüA-ZÁÉÍÓÚÑÜ]{3,}`)

// stopwords are dropped from word counts.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields("para por con los las una uno del de y en que como desde sobre según") {
		stopwords[w] = struct{}{}
	}
}

// counter tallies labels and remembers first appearance for stable ties.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(label string) {
	if _, ok := c.counts[label]; !ok {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

// top returns the k most frequent labels; k <= 0 returns all.
func (c *counter) top(k int) []driving.Count {
	out := make([]driving.Count, len(c.order))
	for i, label := range c.order {
		out[i] = driving.Count{Label: label, Count: c.counts[label]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// TopWords tokenises texts and returns the k most frequent words,
// lowercased, ignoring stopwords. Ties keep first-appearance order.
func TopWords(texts []string, k int) []driving.Count {
	c := newCounter()
	for _, tok := range wordPattern.FindAllString(strings.Join(texts, " "), -1) {
		tok = strings.ToLower(tok)
		if _, stop := stopwords[tok]; stop {
			continue
		}
		c.add(tok)
	}
	return c.top(k)
}

// isNull reports whether a document value counts as missing.
func isNull(v any, present bool) bool {
	return !present || v == nil
}

// columnsOf returns the union of document keys in first-appearance order.
// Documents are maps, so keys are visited sorted within each document.
func columnsOf(docs []domain.Document) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, doc := range docs {
		keys := make([]string, 0, len(doc))
		for k := range doc {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	return cols
}

// population counts non-null values per column, descending.
func population(docs []domain.Document, cols []string) (pop []driving.Count, nulls int) {
	pop = make([]driving.Count, len(cols))
	for i, col := range cols {
		n := 0
		for _, doc := range docs {
			v, ok := doc[col]
			if isNull(v, ok) {
				nulls++
				continue
			}
			n++
		}
		pop[i] = driving.Count{Label: col, Count: n}
	}
	sort.SliceStable(pop, func(i, j int) bool { return pop[i].Count > pop[j].Count })
	return pop, nulls
}

// stringValues returns the non-null values of field rendered as text.
func stringValues(docs []domain.Document, field string) []string {
	var out []string
	for _, doc := range docs {
		v, ok := doc[field]
		if isNull(v, ok) {
			continue
		}
		out = append(out, domain.Stringify(v))
	}
	return out
}

// initials counts the first letter of each trimmed name.
func initials(names []string, k int) []driving.Count {
	c := newCounter()
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(name)
		c.add(string(r))
	}
	return c.top(k)
}

// longestNames returns the k longest names by rune count.
func longestNames(names []string, k int) []driving.NameLength {
	out := make([]driving.NameLength, len(names))
	for i, n := range names {
		out[i] = driving.NameLength{Name: n, Length: utf8.RuneCountInString(n)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Length > out[j].Length })
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// categories counts "categorias" values, exploding arrays, and falls back
// to the scalar "categoria" field when no document has "categorias".
func categories(docs []domain.Document, k int) []driving.Count {
	c := newCounter()
	plural := false
	for _, doc := range docs {
		v, ok := doc["categorias"]
		if !ok {
			continue
		}
		plural = true
		switch t := v.(type) {
		case nil:
		case []any:
			for _, el := range t {
				if el != nil {
					c.add(domain.Stringify(el))
				}
			}
		default:
			c.add(domain.Stringify(t))
		}
	}
	if !plural {
		for _, v := range stringValues(docs, domain.ColCategory) {
			c.add(v)
		}
	}
	return c.top(k)
}

// fold lowercases s and strips combining marks so "Cuénca" matches "cuenca".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// searchByName returns up to limit documents whose "nombre" contains query,
// ignoring case and accents, rendered as text.
func searchByName(docs []domain.Document, cols []string, query string, limit int) []map[string]string {
	needle := fold(query)
	var out []map[string]string
	for _, doc := range docs {
		name, ok := doc[domain.ColName]
		if isNull(name, ok) || !strings.Contains(fold(domain.Stringify(name)), needle) {
			continue
		}
		row := make(map[string]string, len(cols))
		for _, col := range cols {
			row[col] = domain.Stringify(doc[col])
		}
		out = append(out, row)
		if len(out) == limit {
			break
		}
	}
	return out
}
