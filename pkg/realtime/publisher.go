package realtime

import (
	"context"
	"fmt"

	"buzzline/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Publisher pushes events to a per-user live channel. Publishing is
// best-effort: a live channel may not exist and delivery failures must never
// affect the request that triggered the event.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte)
}

// UserChannel returns the per-user channel name.
func UserChannel(userID string) string {
	return fmt.Sprintf("user_%s", userID)
}

type redisPublisher struct {
	client *redis.Client
	logger *logger.Logger
}

func NewRedisPublisher(client *redis.Client, log *logger.Logger) Publisher {
	return &redisPublisher{client: client, logger: log}
}

func (p *redisPublisher) Publish(ctx context.Context, channel string, payload []byte) {
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		p.logger.Warn("Failed to publish realtime event to %s: %v", channel, err)
	}
}
