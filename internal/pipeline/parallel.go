package pipeline

import (
	"runtime"
	"sync"
)

// Options controls per-stage execution. Workers bounds the number of
// goroutines splitting row ranges; output bytes are identical for any
// worker count because each worker owns a disjoint slice of rows.
type Options struct {
	Workers int
}

func (o *Options) init() {
	if o.Workers < 1 {
		o.Workers = min(6, runtime.NumCPU())
	}
}

var defaultOptions = Options{}

func init() {
	defaultOptions.init()
}

func resolveOptions(opts *Options) Options {
	if opts == nil {
		return defaultOptions
	}
	o := *opts
	o.init()
	return o
}

// parallelize splits [start, stop) into contiguous chunks and runs fn on
// each, one goroutine per chunk, blocking until all finish.
func parallelize(workers, start, stop int, fn func(start, stop int)) {
	count := stop - start
	if count < 1 {
		return
	}
	if workers > count {
		workers = count
	}
	if workers <= 1 {
		fn(start, stop)
		return
	}

	chunk := (count + workers - 1) / workers
	var wg sync.WaitGroup
	for begin := start; begin < stop; begin += chunk {
		end := min(begin+chunk, stop)
		wg.Add(1)
		go func(b, e int) {
			defer wg.Done()
			fn(b, e)
		}(begin, end)
	}
	wg.Wait()
}
