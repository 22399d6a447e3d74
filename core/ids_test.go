package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	id := NewID(IDPrefixTrigger)

	assert.True(t, strings.HasPrefix(id, "trg_"))
	assert.True(t, IsValidID(id))
}

func TestNewID_NormalizesPrefix(t *testing.T) {
	id := NewID("  GAME ")
	assert.True(t, strings.HasPrefix(id, "game_"))
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID(IDPrefixGame)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "valid prefixed ulid", id: NewID(IDPrefixAction), want: true},
		{name: "empty", id: "", want: false},
		{name: "no prefix", id: "01ARZ3NDEKTSV4RRFFQ69G5FAV", want: false},
		{name: "empty prefix", id: "_01ARZ3NDEKTSV4RRFFQ69G5FAV", want: false},
		{name: "uppercase prefix", id: "TRG_01ARZ3NDEKTSV4RRFFQ69G5FAV", want: false},
		{name: "short ulid part", id: "trg_01ARZ3", want: false},
		{name: "garbage ulid part", id: "trg_!!!!!!!!!!!!!!!!!!!!!!!!!!", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidID(tt.id))
		})
	}
}
