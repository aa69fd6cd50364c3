package notify

import (
	"context"

	"github.com/yuzvak/rocketshoes-cart/internal/domain/notification"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/monitoring"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/logger"
)

// Sink receives every notification the dispatcher handles.
type Sink interface {
	Deliver(ctx context.Context, n notification.Notification) error
}

type SinkFunc func(ctx context.Context, n notification.Notification) error

func (f SinkFunc) Deliver(ctx context.Context, n notification.Notification) error {
	return f(ctx, n)
}

// Dispatcher fans notifications out to its sinks. A failing sink is logged and
// does not stop delivery to the others.
type Dispatcher struct {
	sinks []Sink
	log   *logger.Logger
}

func NewDispatcher(log *logger.Logger, sinks ...Sink) *Dispatcher {
	return &Dispatcher{sinks: sinks, log: log}
}

func (d *Dispatcher) Notify(ctx context.Context, n notification.Notification) {
	monitoring.RecordNotification(string(n.Code))

	if c := collectorFrom(ctx); c != nil {
		c.add(n)
	}

	for _, sink := range d.sinks {
		if err := sink.Deliver(ctx, n); err != nil {
			d.log.Error("Failed to deliver notification", "code", n.Code, "error", err)
		}
	}
}
