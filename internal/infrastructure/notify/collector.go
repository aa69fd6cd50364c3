package notify

import (
	"context"
	"sync"

	"github.com/yuzvak/rocketshoes-cart/internal/domain/notification"
)

type collectorKey struct{}

// Collector gathers the notifications raised while serving one request.
type Collector struct {
	mu    sync.Mutex
	items []notification.Notification
}

// WithCollector returns a context whose notifications are captured by the
// returned Collector.
func WithCollector(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{}
	return context.WithValue(ctx, collectorKey{}, c), c
}

func (c *Collector) Notifications() []notification.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]notification.Notification, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collector) add(n notification.Notification) {
	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()
}

func collectorFrom(ctx context.Context) *Collector {
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}
