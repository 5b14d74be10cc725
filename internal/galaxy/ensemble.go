package galaxy

import (
	"context"
	"log/slog"
	"sync"
)

// Ensemble generates the same parameters under consecutive seeds in
// parallel. Each run gets its own Generator and Slot, so the results stay
// attached to private surfaces and are independent of one another.
type Ensemble struct {
	numRuns   int
	seedStart int64
	logger    *slog.Logger
	opts      []Option
}

// NewEnsemble prepares numRuns runs. opts apply to every run's Generator;
// the per-run source and logger are set by the Ensemble.
func NewEnsemble(numRuns int, seedStart int64, logger *slog.Logger, opts ...Option) *Ensemble {
	return &Ensemble{numRuns: numRuns, seedStart: seedStart, logger: logger, opts: opts}
}

// Run returns one Buffers per seed, in seed order. The first error wins and
// is returned with no results.
func (e *Ensemble) Run(ctx context.Context, p Parameters) ([]*Buffers, error) {
	results := make([]*Buffers, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			opts := append([]Option{WithSource(NewSource(e.Seed(idx)))}, e.opts...)
			if e.logger != nil {
				opts = append(opts, WithLogger(e.logger.With("run", idx)))
			}
			results[idx], errs[idx] = NewGenerator(nil, opts...).Generate(p)
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

// Seed is the seed used for run idx.
func (e *Ensemble) Seed(idx int) int64 {
	return e.seedStart + int64(idx)
}
