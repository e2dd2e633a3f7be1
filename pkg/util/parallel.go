package util

import (
	"context"
	"sync"
)

// ParallelMap applies fn to every input using at most workerLimit goroutines and
// returns the outputs in input order. The first error cancels the remaining work
// and is returned.
func ParallelMap[T, R any](inputs []T, workerLimit int, fn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(inputs))
	if len(inputs) == 0 {
		return out, nil
	}
	if workerLimit <= 0 {
		workerLimit = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tasks := make(chan int)
	errCh := make(chan error, 1)

	var wg sync.WaitGroup
	for i := 0; i < workerLimit; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				r, err := fn(ctx, inputs[idx])
				if err != nil {
					select {
					case errCh <- err:
						cancel()
					default:
					}
					return
				}
				out[idx] = r
			}
		}()
	}

	go func() {
		defer close(tasks)
		for idx := range inputs {
			select {
			case <-ctx.Done():
				return
			case tasks <- idx:
			}
		}
	}()

	wg.Wait()

	select {
	case err := <-errCh:
		return nil, err
	default:
		return out, nil
	}
}
