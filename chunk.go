package sqlbatch

type chunkRange struct {
	start int
	end   int
}

func chunkRanges(count, size int) ([]chunkRange, BatchError) {
	if size <= 0 {
		return nil, NewBatchError(ErrCodeInvalidConfig, "chunk size must be positive, got:%v", size)
	}
	ranges := make([]chunkRange, 0, (count+size-1)/size)
	for start, end := 0, size; start < count; start, end = end, end+size {
		if end > count {
			end = count
		}
		ranges = append(ranges, chunkRange{start: start, end: end})
	}
	return ranges, nil
}

// Partition splits items into chunks of at most size items each. Chunks are
// contiguous views over the input, so concatenating them in order reproduces
// the input exactly. The last chunk may be shorter.
func Partition(items []interface{}, size int) ([][]interface{}, BatchError) {
	ranges, err := chunkRanges(len(items), size)
	if err != nil {
		return nil, err
	}
	chunks := make([][]interface{}, 0, len(ranges))
	for _, r := range ranges {
		chunks = append(chunks, items[r.start:r.end])
	}
	return chunks, nil
}

func partitionArgs(args [][]interface{}, size int) ([][][]interface{}, BatchError) {
	ranges, err := chunkRanges(len(args), size)
	if err != nil {
		return nil, err
	}
	chunks := make([][][]interface{}, 0, len(ranges))
	for _, r := range ranges {
		chunks = append(chunks, args[r.start:r.end])
	}
	return chunks, nil
}
