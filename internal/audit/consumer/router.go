package consumer

import (
	"context"
	"log/slog"

	"privacyguard/internal/platform/kafka/consumer"
)

// TopicHandler materializes messages from one audit topic.
type TopicHandler interface {
	Handle(ctx context.Context, msg *consumer.Message) error
}

// Router fans consumed messages out by topic. The audit pipeline runs one
// consumer group over both category topics, so the subscription stays in one
// place and each topic keeps its own handler.
type Router struct {
	routes   map[string]TopicHandler
	catchall TopicHandler
	logger   *slog.Logger
}

// NewRouter builds a router. catchall receives messages from topics without
// a registered handler; pass nil to have those acknowledged and skipped.
func NewRouter(logger *slog.Logger, catchall TopicHandler) *Router {
	return &Router{
		routes:   map[string]TopicHandler{},
		catchall: catchall,
		logger:   logger,
	}
}

// Register binds a topic to its handler, replacing any previous binding.
func (r *Router) Register(topic string, handler TopicHandler) {
	r.routes[topic] = handler
}

// Handle dispatches one message. Unroutable messages return nil so the
// offset commits; redelivering them would not make a handler appear.
func (r *Router) Handle(ctx context.Context, msg *consumer.Message) error {
	if handler, ok := r.routes[msg.Topic]; ok {
		return handler.Handle(ctx, msg)
	}
	if r.catchall != nil {
		return r.catchall.Handle(ctx, msg)
	}
	r.logger.Warn("skipping message for unrouted topic",
		"topic", msg.Topic,
		"key", string(msg.Key),
	)
	return nil
}
