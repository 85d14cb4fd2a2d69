package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAssignRole(t *testing.T) {
	tests := []struct {
		actor, target string
		want          bool
	}{
		{"owner", "admin", true},
		{"owner", "student", true},
		{"owner", "owner", false},
		{"admin", "teacher", true},
		{"admin", "student", true},
		{"admin", "admin", false},
		{"teacher", "student", false},
		{"student", "student", false},
	}
	for _, tt := range tests {
		t.Run(tt.actor+"->"+tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAssignRole(tt.actor, tt.target))
		})
	}
}
