package utils

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrStopWork can be returned from a SplitWork callback to stop all routines without failing
var ErrStopWork = errors.New("stop work")

// SplitWork distributes workSize items across routines goroutines. Each item index is handed out exactly once.
// When routines <= 0, runtime.NumCPU is used. The context passed to do is cancelled once any callback returns an error.
func SplitWork(ctx context.Context, routines int, workSize uint64, do func(ctx context.Context, workIndex uint64, routineIndex int) error) error {
	if routines <= 0 {
		routines = runtime.NumCPU()
	}

	if workSize < uint64(routines) {
		routines = int(workSize)
	}

	var counter atomic.Uint64

	eg, ctx := errgroup.WithContext(ctx)

	for routineIndex := range routines {
		eg.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}

				workIndex := counter.Add(1)
				if workIndex > workSize {
					return nil
				}

				if err := do(ctx, workIndex-1, routineIndex); err != nil {
					return err
				}
			}
		})
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, ErrStopWork) {
		return err
	}
	return nil
}
