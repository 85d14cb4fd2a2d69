package helper

import (
	"strings"

	"github.com/lib/pq"
)

// NormalizeTags: trim, lowercase, buang kosong & duplikat, maksimal 20 tag.
func NormalizeTags(in []string) pq.StringArray {
	out := pq.StringArray{}
	seen := map[string]bool{}
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == 20 {
			break
		}
	}
	return out
}

// SplitTags untuk input form "a, b, c".
func SplitTags(s string) pq.StringArray {
	return NormalizeTags(strings.Split(s, ","))
}
