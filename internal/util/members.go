package util

import (
	"encoding/json"
	"strings"
)

// ParseMembers splits a comma separated list of names, trimming blanks
// and dropping case-insensitive duplicates while keeping input order.
func ParseMembers(text string) []string {
	parts := strings.Split(text, ",")
	members := make([]string, 0, len(parts))
	seen := make(map[string]bool)
	for _, part := range parts {
		name := strings.Join(strings.Fields(part), " ")
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		members = append(members, name)
	}
	return members
}

// MembersToJSON converts a slice of names into a JSON array string.
func MembersToJSON(members []string) string {
	if len(members) == 0 {
		return "[]"
	}
	bytes, _ := json.Marshal(members)
	return string(bytes)
}

// JSONToMembers converts a JSON array string back into a slice of names.
func JSONToMembers(jsonStr string) ([]string, error) {
	members := []string{}
	if jsonStr == "" || jsonStr == "null" {
		return members, nil
	}
	if err := json.Unmarshal([]byte(jsonStr), &members); err != nil {
		return nil, err
	}
	return members, nil
}
