package stats

// The store limits "value is one of a list" queries to this many
// discriminator values per call, so lookups over larger id sets have to be
// partitioned.
const MAX_IN_CLAUSE_VALUES = 10

// ChunkIDs partitions ids into slices of at most size elements, preserving
// order. A non-positive size falls back to MAX_IN_CLAUSE_VALUES.
func ChunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = MAX_IN_CLAUSE_VALUES
	}
	if len(ids) == 0 {
		return nil
	}

	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
