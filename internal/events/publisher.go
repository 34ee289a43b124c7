// Package events publishes commercial-document lifecycle transitions to
// external subscribers (notification services, reporting pipelines). The
// core never blocks a transaction on publish: events queued during a
// unit-of-work are flushed only after the surrounding transaction commits,
// mirroring the sequence generator's "never externalize before commit" rule.
package events

import "context"

// Event is a single domain occurrence, e.g. "quote.created" or
// "order.completed". Payload is already-serialized JSON.
type Event struct {
	Subject string
	Payload []byte
}

// Publisher is the outbound collaborator the core emits events to. The
// production implementation is backed by NATS (see NATSPublisher); tests and
// hosts that don't care about eventing use NoopPublisher.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher discards every event. Used in tests and by hosts that have
// not wired an event sink.
type NoopPublisher struct{}

// Publish implements Publisher by doing nothing.
func (NoopPublisher) Publish(context.Context, Event) error { return nil }
