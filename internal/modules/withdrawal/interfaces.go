package withdrawal

import (
	"context"

	"homeservices/internal/domain"
)

type EventDispatcher interface {
	Dispatch(ctx context.Context, events ...domain.Event)
}
