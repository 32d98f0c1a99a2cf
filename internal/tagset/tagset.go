package tagset

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Delimiter joins serialized tags. Tags are path segments, which can never
// contain a path separator, so the round-trip is lossless without escaping.
const Delimiter = "/"

// Set holds a deduplicated collection of tags. The zero value is usable.
type Set struct {
	values map[string]struct{}
}

// New builds a set from the provided tags, dropping empties and duplicates.
func New(tags ...string) Set {
	set := Set{}
	set.Add(tags...)
	return set
}

// Parse rebuilds a set from its serialized form.
func Parse(serialized string) Set {
	if strings.TrimSpace(serialized) == "" {
		return Set{}
	}
	return New(strings.Split(serialized, Delimiter)...)
}

// Add inserts tags into the set. Tags are trimmed and NFC-normalized so the
// same folder name recorded by different filesystems maps to one tag.
func (s *Set) Add(tags ...string) {
	for _, tag := range tags {
		cleaned := norm.NFC.String(strings.TrimSpace(tag))
		if cleaned == "" {
			continue
		}
		if s.values == nil {
			s.values = make(map[string]struct{})
		}
		s.values[cleaned] = struct{}{}
	}
}

// Union merges another set into this one.
func (s *Set) Union(other Set) {
	for tag := range other.values {
		s.Add(tag)
	}
}

// Contains reports membership after the same normalization used by Add.
func (s Set) Contains(tag string) bool {
	if s.values == nil {
		return false
	}
	_, ok := s.values[norm.NFC.String(strings.TrimSpace(tag))]
	return ok
}

// Len returns the number of distinct tags.
func (s Set) Len() int {
	return len(s.values)
}

// Values returns the tags sorted lexicographically.
func (s Set) Values() []string {
	out := make([]string, 0, len(s.values))
	for tag := range s.values {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Serialize renders the sorted, deduplicated, delimiter-joined form stored
// in the catalog.
func (s Set) Serialize() string {
	return strings.Join(s.Values(), Delimiter)
}
