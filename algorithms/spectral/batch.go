package spectral

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/RyanBlaney/sonido-spectra/algorithms/signal"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/logging"
)

// Spectrum is a transform pair sharing one freshly allocated buffer
type Spectrum struct {
	Real      *signal.Channel
	Imaginary *signal.Channel
}

// ForwardAll transforms each real signal into its own Spectrum using a
// pool of workers. Results are in input order. If any transform fails the
// error of the lowest failing index is returned along with the partial
// results.
func (t *Transformer) ForwardAll(window windowing.Type, signals []*signal.Channel) ([]Spectrum, error) {
	if len(signals) == 0 {
		return nil, nil
	}

	results := make([]Spectrum, len(signals))
	errs := make([]error, len(signals))

	for i, s := range signals {
		name := fmt.Sprintf("signal %d", i)
		if s != nil && s.Name != "" {
			name = s.Name
		}
		re, im := signal.NewTransformPair(name)
		results[i] = Spectrum{Real: re, Imaginary: im}
	}

	numWorkers := t.workerCount(len(signals))
	jobs := make(chan int, len(signals))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// each job writes only to its own buffer and error slot
			for idx := range jobs {
				errs[idx] = t.Forward(window, signals[idx], nil, results[idx].Real, results[idx].Imaginary)
			}
		}()
	}

	for idx := range signals {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	t.logger.Debug("batch forward transform", logging.Fields{
		"signals": len(signals),
		"workers": numWorkers,
	})

	for idx, err := range errs {
		if err != nil {
			return results, fmt.Errorf("signal %d: %w", idx, err)
		}
	}

	return results, nil
}

// workerCount sizes the pool from the configured cap or the CPU count
func (t *Transformer) workerCount(numJobs int) int {
	if t.config.Workers > 0 {
		return min(t.config.Workers, numJobs)
	}

	numCPU := runtime.NumCPU()

	// For small batches, don't over-parallelize
	if numJobs < 100 {
		return max(1, min(numCPU/2, numJobs))
	}

	if numJobs < 1000 {
		return min(numCPU, 8)
	}

	return numCPU
}
