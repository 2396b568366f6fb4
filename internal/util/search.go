package util

import (
	"regexp"
	"strings"
)

// SearchQuery represents the parsed components of a search string.
type SearchQuery struct {
	Status []string
	// Text holds the free text between status tokens, trimmed at the
	// edges but with inner spacing kept as typed.
	Text []string
}

var statusRegex = regexp.MustCompile(`(?i)status:([\w-]+)`)

// ParseSearchQuery breaks down a raw query string into its structured components.
func ParseSearchQuery(query string) SearchQuery {
	sq := SearchQuery{}
	last := 0
	for _, loc := range statusRegex.FindAllStringSubmatchIndex(query, -1) {
		sq.Status = append(sq.Status, strings.ToLower(query[loc[2]:loc[3]]))
		sq.addText(query[last:loc[0]])
		last = loc[1]
	}
	sq.addText(query[last:])
	return sq
}

func (q *SearchQuery) addText(s string) {
	if s = strings.TrimSpace(s); s != "" {
		q.Text = append(q.Text, s)
	}
}

// Substring is the free text the store matches against. Pieces separated
// by a status token are joined with one space.
func (q SearchQuery) Substring() string {
	return strings.Join(q.Text, " ")
}

// IsEmpty reports whether the query carries neither text nor filters.
func (q SearchQuery) IsEmpty() bool {
	return len(q.Status) == 0 && len(q.Text) == 0
}
