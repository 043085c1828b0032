package extract

// Partition splits links into at most workers contiguous, non-overlapping
// batches of ceil(len/workers) links, preserving traversal order. The last
// batch may be shorter; empty batches are never produced.
func Partition(links []string, workers int) [][]string {
	n := len(links)
	if n == 0 || workers <= 0 {
		return nil
	}
	if workers > n {
		workers = n
	}
	size := (n + workers - 1) / workers

	batches := make([][]string, 0, workers)
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		batches = append(batches, links[start:end])
	}
	return batches
}
