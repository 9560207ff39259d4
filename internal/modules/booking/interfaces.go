package booking

import (
	"context"

	"homeservices/internal/domain"
)

// EventDispatcher receives events after the command's transaction has committed.
type EventDispatcher interface {
	Dispatch(ctx context.Context, events ...domain.Event)
}
