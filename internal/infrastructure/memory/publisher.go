package memory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nakama-dev/auth-backend/internal/application/auth"
)

// NoopPublisher stands in for the broker when RABBIT_URL is not configured.
type NoopPublisher struct {
	log zerolog.Logger
}

func NewNoopPublisher(log zerolog.Logger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

func (p *NoopPublisher) PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error {
	p.log.Debug().
		Str("user_id", evt.UserID).
		Str("email", evt.Email).
		Msg("noop publisher: user_registered")
	return nil
}
