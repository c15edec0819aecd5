package calculation

import (
	"math/rand/v2"
	"sync"
)

// defaultWorkers bounds concurrent row goroutines when none is configured.
const defaultWorkers = 10

// forEachRow calls fn for every row index in [0, n) with at most workers
// goroutines in flight, and returns once all rows are done.
func forEachRow(n, workers int, fn func(row int)) {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers == 1 || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)
	for i := 0; i < n; i++ {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(row int) {
			defer wg.Done()
			defer func() { <-semaphore }()
			fn(row)
		}(i)
	}
	wg.Wait()
}

// rowSource gives every (run, attempt, row) its own stream so results do not
// depend on goroutine scheduling.
func rowSource(seed int64, attempt, row int) rand.Source {
	return rand.NewPCG(uint64(seed)+uint64(attempt), uint64(row))
}
