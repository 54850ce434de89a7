package stats

import (
	"fmt"
	"testing"
)

func TestChunkIDs(t *testing.T) {
	makeIDs := func(n int) []string {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = fmt.Sprintf("q%d", i+1)
		}
		return ids
	}

	t.Run("23 ids split into 10+10+3", func(t *testing.T) {
		chunks := ChunkIDs(makeIDs(23), MAX_IN_CLAUSE_VALUES)
		if len(chunks) != 3 {
			t.Fatalf("unexpected chunk count: %d", len(chunks))
		}
		if len(chunks[0]) != 10 || len(chunks[1]) != 10 || len(chunks[2]) != 3 {
			t.Errorf("unexpected chunk sizes: %d, %d, %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
		}

		// concatenation preserves the full id set in order
		flat := []string{}
		for _, chunk := range chunks {
			flat = append(flat, chunk...)
		}
		for i, id := range makeIDs(23) {
			if flat[i] != id {
				t.Fatalf("unexpected id at %d: %s", i, flat[i])
			}
		}
	})

	t.Run("fewer ids than the limit", func(t *testing.T) {
		chunks := ChunkIDs(makeIDs(3), MAX_IN_CLAUSE_VALUES)
		if len(chunks) != 1 || len(chunks[0]) != 3 {
			t.Errorf("unexpected chunks: %v", chunks)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if chunks := ChunkIDs(nil, MAX_IN_CLAUSE_VALUES); chunks != nil {
			t.Errorf("unexpected chunks: %v", chunks)
		}
	})

	t.Run("non positive size falls back to the limit", func(t *testing.T) {
		chunks := ChunkIDs(makeIDs(11), 0)
		if len(chunks) != 2 {
			t.Errorf("unexpected chunk count: %d", len(chunks))
		}
	})
}
