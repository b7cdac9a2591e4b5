package notification

import (
	"github.com/lgu-hris/leave-backend-go/internal/domain/notification"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/sse"
)

// SSEGateway delivers push events over the in-process SSE hub.
type SSEGateway struct {
	hub *sse.Hub
}

func NewSSEGateway(hub *sse.Hub) notification.Gateway {
	return &SSEGateway{hub: hub}
}

func (g *SSEGateway) Push(recipientID string, event notification.PushEvent) {
	g.hub.Publish(recipientID, sse.Event{
		Event: event.Event,
		Data:  event.Data,
	})
}
