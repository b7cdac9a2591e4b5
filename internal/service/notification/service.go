package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lgu-hris/leave-backend-go/internal/domain/notification"
)

const (
	queueSize     = 256
	batchSize     = 32
	flushInterval = 2 * time.Second
	persistWindow = 5 * time.Second
)

// ServiceImpl persists and delivers notifications off the request path. A
// single worker drains the queue in batches; delivery failures are logged
// and never propagate to the operation that raised the notification.
type ServiceImpl struct {
	repo    notification.Repository
	gateway notification.Gateway
	logger  *slog.Logger

	queue    chan notification.PushRequest
	wg       sync.WaitGroup
	stopOnce sync.Once

	mu     sync.RWMutex
	closed bool
}

func NewNotificationService(repo notification.Repository, gateway notification.Gateway, logger *slog.Logger) notification.Service {
	s := &ServiceImpl{
		repo:    repo,
		gateway: gateway,
		logger:  logger,
		queue:   make(chan notification.PushRequest, queueSize),
	}

	s.wg.Add(1)
	go s.worker()

	return s
}

func (s *ServiceImpl) Notify(req notification.PushRequest) {
	// Holding the read lock keeps Shutdown from closing the queue while a
	// send is in flight.
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.logger.Warn("notification after shutdown, dropping",
			slog.String("recipient_id", req.RecipientID),
			slog.String("type", string(req.Type)),
		)
		return
	}

	select {
	case s.queue <- req:
	default:
		s.logger.Warn("notification queue full, dropping",
			slog.String("recipient_id", req.RecipientID),
			slog.String("type", string(req.Type)),
		)
	}
}

func (s *ServiceImpl) worker() {
	defer s.wg.Done()

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	var pending []*notification.Notification

	flush := func() {
		if len(pending) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), persistWindow)
		defer cancel()

		if err := s.repo.CreateBatch(ctx, pending); err != nil {
			s.logger.Error("failed to persist notification batch",
				slog.Int("count", len(pending)),
				slog.Any("error", err),
			)
			pending = nil
			return
		}

		for _, n := range pending {
			s.gateway.Push(n.RecipientID, notification.PushEvent{
				Event: string(n.Type),
				Data: map[string]interface{}{
					"id":         n.ID,
					"type":       string(n.Type),
					"title":      n.Title,
					"message":    n.Message,
					"data":       n.Data,
					"created_at": n.CreatedAt,
				},
			})
		}
		pending = nil
	}

	for {
		select {
		case req, ok := <-s.queue:
			if !ok {
				flush()
				return
			}
			pending = append(pending, &notification.Notification{
				ID:          uuid.NewString(),
				RecipientID: req.RecipientID,
				SenderID:    req.SenderID,
				Type:        req.Type,
				Title:       req.Title,
				Message:     req.Message,
				Data:        req.Data,
				CreatedAt:   time.Now(),
			})
			if len(pending) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (s *ServiceImpl) List(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	return s.repo.GetByRecipientID(ctx, recipientID, page, pageSize, unreadOnly)
}

func (s *ServiceImpl) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, recipientID)
}

func (s *ServiceImpl) MarkRead(ctx context.Context, ids []string, recipientID string) error {
	return s.repo.MarkAsRead(ctx, ids, recipientID)
}

func (s *ServiceImpl) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.repo.MarkAllAsRead(ctx, recipientID)
}

// Shutdown flushes queued notifications and stops the worker. Safe to call
// more than once.
func (s *ServiceImpl) Shutdown() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.queue)
	})
	s.wg.Wait()
}
