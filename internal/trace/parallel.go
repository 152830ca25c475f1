package trace

import (
	"context"
	"sync"

	"functrace/internal/poly"
)

// RunBatch traces each config in its own scene concurrently and returns
// the final polyline of every run, in config order. Scenes are fully
// independent: each gets its own counter, so resets never couple across
// batch entries.
func RunBatch(ctx context.Context, cfgs []Config, duration, dt float64) ([][]poly.Point, error) {
	results := make([][]poly.Point, len(cfgs))
	errs := make([]error, len(cfgs))

	var wg sync.WaitGroup
	for i := range cfgs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			scene := NewScene()
			sink := NewBufferSink()
			if _, err := scene.Add(cfgs[idx], sink); err != nil {
				errs[idx] = err
				return
			}
			if err := scene.Run(ctx, duration, dt, nil); err != nil {
				errs[idx] = err
				return
			}
			results[idx] = append([]poly.Point(nil), sink.Points()...)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
