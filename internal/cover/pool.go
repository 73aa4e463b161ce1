package cover

import (
	"runtime"
	"sort"
	"sync"

	"github.com/paulmach/orb"
)

// ZoomTask covers a single zoom level of a geometry.
type ZoomTask struct {
	Geometry orb.Geometry
	Zoom     uint8
}

// ZoomResult is the outcome of covering one zoom level.
type ZoomResult struct {
	Zoom  uint8
	Tiles []UnwrappedTileID
}

// Pool runs zoom-level cover tasks across a bounded set of goroutines and
// reassembles the results in zoom-ascending order. Each task is independent
// (TileCoverGeometry reads only its own geometry and zoom), so workers share
// no mutable state.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count. A non-positive count
// defaults to runtime.GOMAXPROCS(0).
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Run covers every task and returns the results sorted by ascending zoom.
func (p *Pool) Run(tasks []ZoomTask) []ZoomResult {
	if len(tasks) == 0 {
		return nil
	}

	taskCh := make(chan ZoomTask, len(tasks))
	resultCh := make(chan ZoomResult, len(tasks))

	var wg sync.WaitGroup
	workers := p.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				resultCh <- ZoomResult{
					Zoom:  task.Zoom,
					Tiles: TileCoverGeometry(task.Geometry, task.Zoom),
				}
			}
		}()
	}

	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)

	wg.Wait()
	close(resultCh)

	results := make([]ZoomResult, 0, len(tasks))
	for result := range resultCh {
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Zoom < results[j].Zoom })
	return results
}
