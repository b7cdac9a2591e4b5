package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lgu-hris/leave-backend-go/internal/domain/notification"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	data, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal notification data: %w", err)
	}

	query := `
		INSERT INTO notifications (
			id, recipient_id, sender_id, type, title, message, data, is_read, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
	`
	_, err = q.Exec(ctx, query,
		n.ID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message, data, n.CreatedAt,
	)
	return err
}

func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	for _, n := range notifications {
		if err := r.Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (r *notificationRepositoryImpl) GetByRecipientID(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "recipient_id = $1"
	if unreadOnly {
		whereClause += " AND NOT is_read"
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM notifications WHERE %s`, whereClause)
	if err := q.QueryRow(ctx, countQuery, recipientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`
		SELECT id, recipient_id, sender_id, type, title, message, data, is_read, read_at, created_at
		FROM notifications
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, whereClause)

	rows, err := q.Query(ctx, query, recipientID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		var n notification.Notification
		var data []byte
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Title, &n.Message,
			&data, &n.IsRead, &n.ReadAt, &n.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal notification data: %w", err)
			}
		}
		notifications = append(notifications, &n)
	}

	return notifications, total, rows.Err()
}

func (r *notificationRepositoryImpl) GetUnreadCount(ctx context.Context, recipientID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND NOT is_read`,
		recipientID,
	).Scan(&count)
	return count, err
}

func (r *notificationRepositoryImpl) MarkAsRead(ctx context.Context, ids []string, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = ANY($1) AND recipient_id = $2 AND NOT is_read
	`, ids, recipientID)
	return err
}

func (r *notificationRepositoryImpl) MarkAllAsRead(ctx context.Context, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE recipient_id = $1 AND NOT is_read
	`, recipientID)
	return err
}
