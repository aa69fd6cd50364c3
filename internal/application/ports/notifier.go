package ports

import (
	"context"

	"github.com/yuzvak/rocketshoes-cart/internal/domain/notification"
)

// Notifier delivers user-facing messages. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, n notification.Notification)
}
