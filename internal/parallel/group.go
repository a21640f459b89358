// Package parallel runs the per-variable projection workers.
//
// The scheduling model is deliberately simple: the task list is fixed
// up front (one task per output variable), each task owns its output
// exclusively, and no work stealing or merging exists. What the group
// adds over a bare WaitGroup is bounded concurrency, panic containment
// and first-error capture, so a failing worker can trigger a clean
// sequential re-run of the whole request.
package parallel

import (
	"fmt"
	"runtime"
	"sync"
)

// Run executes all tasks with at most workers goroutines and waits for
// completion. If workers is 0 or negative, GOMAXPROCS is used. A panic
// inside a task is recovered and reported as an error. Run returns the
// error of the lowest-indexed failing task; all tasks run to
// completion regardless, so no goroutine is left writing after Run
// returns.
//
// Thread safety: Run is safe for concurrent use; tasks must not share
// mutable state with each other.
func Run(workers int, tasks []func() error) error {
	if len(tasks) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	errs := make([]error, len(tasks))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	wg.Add(len(tasks))
	for i, task := range tasks {
		sem <- struct{}{}
		go func(i int, task func() error) {
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("worker %d panicked: %v", i, r)
				}
				<-sem
				wg.Done()
			}()
			errs[i] = task()
		}(i, task)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
