package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestID_FieldNames(t *testing.T) {
	// Dotted field paths are the production inputs; IDs must be stable
	// per name and distinct across sibling fields.
	names := []string{
		"posts.post_id",
		"posts.title",
		"posts.tags",
		"posts.comments.content",
		"posts.comments.author.username",
	}

	seen := make(map[uint64]string, len(names))
	for _, name := range names {
		id := ID(name)
		require.Equal(t, id, ID(name))

		prev, dup := seen[id]
		require.False(t, dup, "ID collision between %q and %q", prev, name)
		seen[id] = name
	}
}

func BenchmarkID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ID("posts.comments.author.username")
	}
}
