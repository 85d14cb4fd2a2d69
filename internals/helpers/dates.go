package helper

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDatePtr: "YYYY-MM-DD" → *time.Time (UTC); kosong/invalid → nil.
func ParseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil
	}
	return &t
}
