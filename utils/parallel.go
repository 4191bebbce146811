package utils

import (
	"runtime"
	"sync"

	goutils "go.viam.com/utils"
)

// ParallelFactor controls the max level of parallelization of GroupWork.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

// GroupWork splits totalSize work items into contiguous ranges and runs work
// for each range on its own goroutine, waiting for all ranges to finish.
// work must only touch items in [from, to).
func GroupWork(totalSize int, work func(from, to int)) {
	if totalSize <= 0 {
		return
	}
	numGroups := ParallelFactor
	if numGroups > totalSize {
		numGroups = totalSize
	}
	groupSize := totalSize / numGroups
	extra := totalSize % numGroups

	var wait sync.WaitGroup
	wait.Add(numGroups)
	from := 0
	for groupNum := 0; groupNum < numGroups; groupNum++ {
		thisGroupSize := groupSize
		if groupNum < extra {
			thisGroupSize++
		}
		fromCopy, toCopy := from, from+thisGroupSize
		goutils.PanicCapturingGo(func() {
			defer wait.Done()
			work(fromCopy, toCopy)
		})
		from = toCopy
	}
	wait.Wait()
}
