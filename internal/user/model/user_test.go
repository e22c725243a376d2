package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsernameFor(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		email string
		want  string
	}{
		{"phone digits win", "+55 (11) 98765-4321", "ana@example.com", "5511987654321"},
		{"email local part", "", "Ana.Silva@Example.com", "ana.silva"},
		{"phone without digits falls back", "n/a", "bob@example.com", "bob"},
		{"nothing", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UsernameFor(tt.phone, tt.email))
		})
	}
}
