// Package audit delivers audit events to the audit log off the request path.
//
// Emit never blocks and never fails the caller. Workers deliver each event through
// a circuit breaker with exponential backoff and full jitter; events that cannot be
// delivered are kept in a dead-letter store until Redrive succeeds.
package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/finance_core/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_core/internal/core/ports/repositories"
	"github.com/SscSPs/finance_core/internal/observability/metrics"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

// Emitter accepts audit events. Implementations must not block the caller.
type Emitter interface {
	Emit(ctx context.Context, event domain.AuditEvent)
}

// Options tunes the dispatcher.
type Options struct {
	QueueSize   int
	Workers     int
	MaxAttempts int
	RetryBase   time.Duration

	// BreakerFailures is the number of consecutive sink failures that opens the breaker.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

func (o Options) withDefaults() Options {
	if o.QueueSize <= 0 {
		o.QueueSize = 1024
	}
	if o.Workers <= 0 {
		o.Workers = 2
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 5
	}
	if o.RetryBase <= 0 {
		o.RetryBase = 100 * time.Millisecond
	}
	if o.BreakerFailures == 0 {
		o.BreakerFailures = 5
	}
	if o.BreakerTimeout <= 0 {
		o.BreakerTimeout = 30 * time.Second
	}
	return o
}

// Dispatcher is the asynchronous Emitter backed by a sink and a dead-letter store.
type Dispatcher struct {
	sink    portsrepo.AuditSink
	dlq     portsrepo.DeadLetterStore
	breaker *gobreaker.CircuitBreaker
	opts    Options
	logger  *slog.Logger

	mu     sync.RWMutex
	queue  chan domain.AuditEvent
	closed bool
	wg     sync.WaitGroup
	cancel context.CancelFunc

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

var _ Emitter = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher. Call Start to run the workers.
func NewDispatcher(sink portsrepo.AuditSink, dlq portsrepo.DeadLetterStore, opts Options, logger *slog.Logger) *Dispatcher {
	opts = opts.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "audit"))

	settings := gobreaker.Settings{
		Name:    "audit-sink",
		Timeout: opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.BreakerFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Audit sink circuit breaker changed state",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &Dispatcher{
		sink:    sink,
		dlq:     dlq,
		breaker: gobreaker.NewCircuitBreaker(settings),
		opts:    opts,
		logger:  logger,
		queue:   make(chan domain.AuditEvent, opts.QueueSize),
		sleep:   sleepWithContext,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Start launches the delivery workers.
func (d *Dispatcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	for i := 0; i < d.opts.Workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for event := range d.queue {
				d.deliver(ctx, event)
			}
		}()
	}
	d.logger.Info("Audit dispatcher started", slog.Int("workers", d.opts.Workers), slog.Int("queue_size", d.opts.QueueSize))
}

// Emit enqueues the event. A full queue or a closed dispatcher sends the event straight
// to the dead-letter store.
func (d *Dispatcher) Emit(ctx context.Context, event domain.AuditEvent) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = d.now()
	}

	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		d.deadLetter(context.WithoutCancel(ctx), event, 0, errors.New("audit dispatcher is closed"))
		return
	}
	select {
	case d.queue <- event:
		d.mu.RUnlock()
	default:
		d.mu.RUnlock()
		d.deadLetter(context.WithoutCancel(ctx), event, 0, errors.New("audit queue is full"))
	}
}

// Close stops accepting events and waits for the queue to drain. When ctx expires
// first, in-flight retries are abandoned and their events dead-lettered.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if d.cancel != nil {
			d.cancel()
		}
		d.logger.Info("Audit dispatcher drained")
		return nil
	case <-ctx.Done():
		if d.cancel != nil {
			d.cancel()
		}
		<-done
		return fmt.Errorf("audit dispatcher close: %w", ctx.Err())
	}
}

func (d *Dispatcher) write(ctx context.Context, event domain.AuditEvent) error {
	_, err := d.breaker.Execute(func() (interface{}, error) {
		return nil, d.sink.WriteAuditEvent(ctx, event)
	})
	return err
}

func (d *Dispatcher) deliver(ctx context.Context, event domain.AuditEvent) {
	var lastErr error
	attempts := 0
	for attempt := 0; attempt < d.opts.MaxAttempts; attempt++ {
		if attempt > 0 {
			metrics.IncAuditEvent(metrics.ResultRetried)
			if err := d.sleep(ctx, retryDelay(d.opts.RetryBase, attempt-1)); err != nil {
				lastErr = errors.Join(lastErr, err)
				break
			}
		}
		attempts++
		lastErr = d.write(ctx, event)
		if lastErr == nil {
			metrics.IncAuditEvent(metrics.ResultDelivered)
			return
		}
	}

	d.logger.Warn("Audit event delivery exhausted",
		slog.String("event_id", event.EventID),
		slog.String("action", event.Action),
		slog.Int("attempts", attempts),
		slog.String("error", lastErr.Error()))
	d.deadLetter(context.WithoutCancel(ctx), event, attempts, lastErr)
}

func (d *Dispatcher) deadLetter(ctx context.Context, event domain.AuditEvent, attempts int, cause error) {
	metrics.IncAuditEvent(metrics.ResultDropped)
	if d.dlq == nil {
		d.logger.Error("Audit event lost, no dead-letter store", slog.String("event_id", event.EventID))
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := d.dlq.SaveDeadLetter(ctx, event, attempts, cause.Error(), d.now()); err != nil {
		d.logger.Error("Failed to store audit dead letter",
			slog.String("event_id", event.EventID),
			slog.String("error", err.Error()))
		return
	}
	d.refreshBacklog(ctx)
}

func (d *Dispatcher) refreshBacklog(ctx context.Context) {
	count, err := d.dlq.CountPendingDeadLetters(ctx)
	if err != nil {
		d.logger.Debug("Failed to count audit dead letters", slog.String("error", err.Error()))
		return
	}
	metrics.SetAuditDeadLetters(count)
}

// Redrive re-attempts up to limit dead letters once each and returns how many were delivered.
func (d *Dispatcher) Redrive(ctx context.Context, limit int) (int, error) {
	if d.dlq == nil {
		return 0, nil
	}
	if limit <= 0 {
		limit = 100
	}
	letters, err := d.dlq.ListPendingDeadLetters(ctx, limit)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, letter := range letters {
		if err := d.write(ctx, letter.Event); err != nil {
			if saveErr := d.dlq.SaveDeadLetter(ctx, letter.Event, 1, err.Error(), d.now()); saveErr != nil {
				return delivered, saveErr
			}
			if errors.Is(err, gobreaker.ErrOpenState) {
				break
			}
			continue
		}
		if err := d.dlq.MarkRedelivered(ctx, letter.Event.EventID, d.now()); err != nil {
			return delivered, err
		}
		metrics.IncAuditEvent(metrics.ResultRedriven)
		delivered++
	}

	d.refreshBacklog(ctx)
	if delivered > 0 {
		d.logger.Info("Audit dead letters redriven", slog.Int("delivered", delivered), slog.Int("pending_seen", len(letters)))
	}
	return delivered, nil
}
