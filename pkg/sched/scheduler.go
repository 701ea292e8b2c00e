package sched

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Task is a unit of scheduled work.
type Task func()

// Scheduler is a two-phase task queue. The zero value is not usable; create
// one with New.
type Scheduler struct {
	mu        sync.Mutex
	immediate []Task
	deferred  []Task
	wake      chan struct{}

	running bool
	turns   uint64

	logger  *slog.Logger
	onPanic func(v any)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for recovered task panics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithPanicHandler registers a callback invoked with every recovered task panic.
func WithPanicHandler(fn func(v any)) Option {
	return func(s *Scheduler) {
		s.onPanic = fn
	}
}

// New creates a Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		wake:   make(chan struct{}, 1),
		logger: slog.Default().With("component", "sched"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Immediate queues fn on the immediate queue.
func (s *Scheduler) Immediate(fn Task) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.immediate = append(s.immediate, fn)
	s.mu.Unlock()
	s.signal()
}

// Defer queues fn on the deferred queue.
func (s *Scheduler) Defer(fn Task) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.deferred = append(s.deferred, fn)
	s.mu.Unlock()
	s.signal()
}

// Post queues fn from any goroutine. It is an alias for Defer that reads
// better at call sites outside the loop.
func (s *Scheduler) Post(fn Task) {
	s.Defer(fn)
}

// Pending reports whether any task is queued.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.immediate) > 0 || len(s.deferred) > 0
}

// Turns returns the number of completed turns.
func (s *Scheduler) Turns() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turns
}

// Turn runs one turn and returns the number of tasks executed. The
// immediate queue is drained first; then every deferred task queued before
// the turn started runs, each followed by a full drain of the immediate
// queue. Calling Turn from inside a running task is a no-op.
func (s *Scheduler) Turn() int {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return 0
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.turns++
		s.mu.Unlock()
	}()

	ran := s.drainImmediate()

	s.mu.Lock()
	batch := s.deferred
	s.deferred = nil
	s.mu.Unlock()

	for _, fn := range batch {
		s.exec(fn)
		ran++
		ran += s.drainImmediate()
	}
	return ran
}

// Flush runs turns until no task is queued or maxTurns turns have run.
// maxTurns <= 0 means no limit. It returns the number of tasks executed.
func (s *Scheduler) Flush(maxTurns int) int {
	ran := 0
	for i := 0; maxTurns <= 0 || i < maxTurns; i++ {
		if !s.Pending() {
			break
		}
		ran += s.Turn()
	}
	return ran
}

// Run executes turns whenever work is queued until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		for s.Pending() {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.Turn()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
		}
	}
}

func (s *Scheduler) drainImmediate() int {
	ran := 0
	for {
		s.mu.Lock()
		if len(s.immediate) == 0 {
			s.mu.Unlock()
			return ran
		}
		fn := s.immediate[0]
		s.immediate[0] = nil
		s.immediate = s.immediate[1:]
		s.mu.Unlock()

		s.exec(fn)
		ran++
	}
}

// exec runs fn with panic recovery.
func (s *Scheduler) exec(fn Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panic",
				"panic", r,
				"stack", string(debug.Stack()))
			if s.onPanic != nil {
				s.onPanic(r)
			}
		}
	}()
	fn()
}

func (s *Scheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}
