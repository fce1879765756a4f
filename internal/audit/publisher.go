package audit

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"privacyguard/pkg/requestcontext"
)

// ErrBufferFull is returned when async emission cannot keep up and an event
// had to be dropped.
var ErrBufferFull = errors.New("audit buffer full")

// Sink accepts audit events. Stores and brokers both satisfy it so emission
// can fan out.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Store is a queryable sink used as the publisher's system of record.
type Store interface {
	Sink
	ListBySubject(ctx context.Context, subjectID string) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Publisher captures structured audit events. It is append-only and writes
// through the storage layer so tests can swap sinks easily. Additional sinks
// receive every event best-effort after the store accepted it.
type Publisher struct {
	store Store
	sinks []Sink
	inbox chan Event
	wg    sync.WaitGroup
	once  sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer switches Emit to buffered fire-and-forget with the given
// queue depth. Events are dropped with ErrBufferFull once the queue is full.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan Event, size)
	}
}

// WithSink adds a fan-out sink, typically the Kafka producer.
func WithSink(sink Sink) Option {
	return func(p *Publisher) {
		if sink != nil {
			p.sinks = append(p.sinks, sink)
		}
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records one audit event. A zero ID and timestamp are filled in, and
// the category is derived from the action so callers cannot misroute events.
// The timestamp comes from the request clock, so every event emitted for one
// request carries the same instant.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	event.Category = Action(event.Action).Category()

	if p.inbox == nil {
		return p.append(ctx, event)
	}

	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

// List returns the audit trail for one hashed subject identifier.
func (p *Publisher) List(ctx context.Context, subjectID string) ([]Event, error) {
	return p.store.ListBySubject(ctx, subjectID)
}

// ListRecent returns the most recent events across all subjects.
func (p *Publisher) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	return p.store.ListRecent(ctx, limit)
}

// Close drains the async queue and stops the background worker. Safe to call
// more than once.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
			p.wg.Wait()
		}
	})
}

func (p *Publisher) append(ctx context.Context, event Event) error {
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	for _, sink := range p.sinks {
		// Fan-out sinks are best effort; the store already has the event.
		_ = sink.Append(ctx, event)
	}
	return nil
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.inbox {
		_ = p.append(context.Background(), event)
	}
}
