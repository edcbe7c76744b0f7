package queue

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/langkawi/directory-access/internal/pkg/metrics"
)

const channelBuffer = 256

// ErrPoolClosed is returned when a job is submitted after the pool stopped.
var ErrPoolClosed = errors.New("hash pool closed")

type job struct {
	ctx context.Context
	op  string
	run func()
}

// HashPool runs bcrypt work on a fixed set of worker goroutines so that slow
// hashing never occupies request goroutines beyond a bounded wait, and total
// CPU spent on bcrypt is capped at numWorkers cores.
type HashPool struct {
	jobs    chan job
	workers int
	stopped chan struct{}
	once    sync.Once
	log     zerolog.Logger
}

// NewHashPool creates a pool with numWorkers workers.
// If numWorkers <= 0, GOMAXPROCS is used.
func NewHashPool(numWorkers int, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &HashPool{
		jobs:    make(chan job, channelBuffer),
		workers: numWorkers,
		stopped: make(chan struct{}),
		log:     log,
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled,
// after which every submission fails with ErrPoolClosed.
func (p *HashPool) Start(ctx context.Context) {
	for i := range p.workers {
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		p.once.Do(func() { close(p.stopped) })
	}()
}

// Hash returns the bcrypt hash of password at cost.
func (p *HashPool) Hash(ctx context.Context, password string, cost int) (string, error) {
	var (
		out []byte
		err error
	)
	if subErr := p.submit(ctx, "hash", func() {
		out, err = bcrypt.GenerateFromPassword([]byte(password), cost)
	}); subErr != nil {
		return "", subErr
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(out), nil
}

// Compare reports whether password matches hash. A mismatch is (false, nil);
// a malformed hash is (false, err).
func (p *HashPool) Compare(ctx context.Context, password, hash string) (bool, error) {
	var err error
	if subErr := p.submit(ctx, "compare", func() {
		err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	}); subErr != nil {
		return false, subErr
	}
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}

// submit enqueues fn and waits for it. Results written by fn are only read
// after done is closed, so abandoning the wait on ctx never races.
func (p *HashPool) submit(ctx context.Context, op string, fn func()) error {
	select {
	case <-p.stopped:
		return ErrPoolClosed
	default:
	}

	done := make(chan struct{})
	j := job{ctx: ctx, op: op, run: func() {
		defer close(done)
		fn()
	}}

	select {
	case p.jobs <- j:
		metrics.HashPoolQueueDepth.Inc()
	case <-p.stopped:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-p.stopped:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *HashPool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			metrics.HashPoolQueueDepth.Dec()
			if j.ctx.Err() != nil {
				p.log.Debug().Str("op", j.op).Int("worker_id", id).Msg("skipping cancelled password job")
				continue
			}
			start := time.Now()
			j.run()
			metrics.PasswordHashDuration.WithLabelValues(j.op).Observe(time.Since(start).Seconds())
		}
	}
}
