// Package notes holds the client-side views over a fetched note list.
package notes

import (
	"sort"
	"strings"

	"github.com/notesapp/notes-manager/internal/client/api"
)

// Filter keeps the notes whose title contains search (case-insensitive) and
// that carry tag exactly. Empty criteria match everything. Order is kept.
func Filter(list []api.Note, search, tag string) []api.Note {
	needle := strings.ToLower(search)
	out := make([]api.Note, 0, len(list))
	for _, n := range list {
		if needle != "" && !strings.Contains(strings.ToLower(n.Title), needle) {
			continue
		}
		if tag != "" && !hasTag(n.Tags, tag) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ParseTags splits comma-separated user input, trimming blanks and dropping
// empty entries.
func ParseTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// FormatTags is the inverse of ParseTags for display.
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// TagCount is one entry of AllTags.
type TagCount struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}

// AllTags returns every distinct tag with the number of notes carrying it,
// most used first and alphabetical on ties.
func AllTags(list []api.Note) []TagCount {
	counts := map[string]int{}
	for _, n := range list {
		for _, t := range n.Tags {
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, TagCount{Tag: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
