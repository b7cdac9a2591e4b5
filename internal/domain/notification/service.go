package notification

import "context"

// PushRequest is the fire-and-forget enqueue payload. Delivery failures are
// logged and swallowed; they must never fail the decision that produced them.
type PushRequest struct {
	RecipientID string
	SenderID    *string
	Type        Type
	Title       string
	Message     string
	Data        map[string]interface{}
}

// Gateway is the injected push transport. Implementations must not block the
// caller beyond the context deadline and must tolerate absent subscribers.
type Gateway interface {
	Push(recipientID string, event PushEvent)
}

// PushEvent is what the gateway delivers to a connected client.
type PushEvent struct {
	Event string
	Data  interface{}
}

// Service is the notification pipeline: enqueue, persist, deliver.
type Service interface {
	// Notify enqueues without blocking; a full queue drops the notification.
	Notify(req PushRequest)
	List(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*Notification, int, error)
	UnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkRead(ctx context.Context, ids []string, recipientID string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	// Shutdown flushes the queue and stops the background workers.
	Shutdown()
}
