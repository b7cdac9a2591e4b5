package notification

import "context"

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
	GetByRecipientID(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*Notification, int, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, ids []string, recipientID string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
}
