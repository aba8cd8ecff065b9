package domain

import (
	"sort"
	"strings"
	"time"
)

// DefaultProvinces is the province allow-list used when none is configured.
var DefaultProvinces = []string{"azuay"}

// DefaultTargetYear is the update year kept when none is configured.
const DefaultTargetYear = 2024

// ProvinceFilter is a fixed, case-insensitive allow-list of provinces.
type ProvinceFilter struct {
	allowed map[string]struct{}
}

// NewProvinceFilter builds a filter. Names are lowercased but not trimmed,
// so " azuay" never matches "azuay".
func NewProvinceFilter(names ...string) ProvinceFilter {
	allowed := make(map[string]struct{}, len(names))
	for _, n := range names {
		allowed[strings.ToLower(n)] = struct{}{}
	}
	return ProvinceFilter{allowed: allowed}
}

// Allows reports whether province, lowercased, is in the allow-list.
// Empty values are never allowed.
func (f ProvinceFilter) Allows(province string) bool {
	if province == "" {
		return false
	}
	_, ok := f.allowed[strings.ToLower(province)]
	return ok
}

// Names returns the lowercased allow-list, sorted.
func (f ProvinceFilter) Names() []string {
	out := make([]string, 0, len(f.allowed))
	for n := range f.allowed {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// timestampLayouts are tried in order after a trailing "Z" is stripped.
// They cover extended and basic ISO-8601 calendar forms with an optional
// numeric offset. Fractional seconds are accepted after the seconds field.
var timestampLayouts = isoLayouts()

func isoLayouts() []string {
	dates := []string{"2006-01-02", "20060102"}
	times := []string{"15:04:05", "15:04", "150405", "1504", "15"}
	zones := []string{"", "Z07:00", "Z0700", "Z07"}

	layouts := make([]string, 0, len(dates)*(2*len(times)*len(zones)+1))
	for _, d := range dates {
		for _, sep := range []string{"T", " "} {
			for _, t := range times {
				for _, z := range zones {
					layouts = append(layouts, d+sep+t+z)
				}
			}
		}
		layouts = append(layouts, d)
	}
	return layouts
}

// ParseUpdatedAt parses an ISO-8601 update timestamp. One trailing "Z"
// is stripped first and the remainder is read as a local date-time.
// The second result is false for empty or unparsable input.
func ParseUpdatedAt(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// YearFilter keeps timestamps whose calendar year equals Year.
type YearFilter struct {
	Year int
}

// Matches reports whether updatedAt parses and falls in the target year.
// Unparsable or empty timestamps never match.
func (f YearFilter) Matches(updatedAt string) bool {
	t, ok := ParseUpdatedAt(updatedAt)
	return ok && t.Year() == f.Year
}
