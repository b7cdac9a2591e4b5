package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/lgu-hris/leave-backend-go/internal/domain/notification"
	"github.com/lgu-hris/leave-backend-go/internal/handler/http/response"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/sse"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notifService notification.Service
	jwtService   jwt.Service
	hub          *sse.Hub
}

func NewNotificationHandler(notifService notification.Service, jwtService jwt.Service, hub *sse.Hub) NotificationHandler {
	return &NotificationHandlerImpl{
		notifService: notifService,
		jwtService:   jwtService,
		hub:          hub,
	}
}

func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

type notificationResponse struct {
	ID        string                 `json:"id"`
	SenderID  *string                `json:"sender_id,omitempty"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func (h *NotificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	page := getIntQueryParam(r, "page", 1)
	limit := getIntQueryParam(r, "limit", 20)
	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	notifications, total, err := h.notifService.List(r.Context(), actor.EmployeeID, page, limit, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, notificationResponse{
			ID:        n.ID,
			SenderID:  n.SenderID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			Data:      n.Data,
			IsRead:    n.IsRead,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}

	totalPages := (total + limit - 1) / limit
	response.SuccessWithMeta(w, items, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: int64(total),
		TotalPages: totalPages,
	})
}

func (h *NotificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	count, err := h.notifService.UnreadCount(r.Context(), actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"unread_count": count})
}

func (h *NotificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req struct {
		IDs []string `json:"ids"`
		All bool     `json:"all"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.All {
		err = h.notifService.MarkAllRead(r.Context(), actor.EmployeeID)
	} else {
		if len(req.IDs) == 0 {
			response.BadRequest(w, "ids is required unless all is set", nil)
			return
		}
		err = h.notifService.MarkRead(r.Context(), req.IDs, actor.EmployeeID)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notifications marked as read", nil)
}

// Stream handles the SSE connection for real-time notifications. EventSource
// cannot set headers, so auth uses a short-lived token in the query string.
func (h *NotificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	employeeID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(employeeID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
