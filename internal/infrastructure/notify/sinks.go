package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/yuzvak/rocketshoes-cart/internal/domain/notification"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/logger"
)

// LogSink writes every notification to the application log.
type LogSink struct {
	log *logger.Logger
}

func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Deliver(_ context.Context, n notification.Notification) error {
	s.log.Warn("Notification", "code", n.Code, "severity", n.Severity, "message", n.Message)
	return nil
}

// RedisSink publishes notifications as JSON on a pub/sub channel so other
// processes can show them.
type RedisSink struct {
	client  *redis.Client
	channel string
}

func NewRedisSink(client *redis.Client, channel string) *RedisSink {
	return &RedisSink{client: client, channel: channel}
}

func (s *RedisSink) Deliver(ctx context.Context, n notification.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, s.channel, payload).Err()
}
