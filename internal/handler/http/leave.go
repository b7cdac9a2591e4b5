package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lgu-hris/leave-backend-go/internal/domain/auth"
	"github.com/lgu-hris/leave-backend-go/internal/domain/leave"
	"github.com/lgu-hris/leave-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	RecommendRequest(w http.ResponseWriter, r *http.Request)
	HRDecideRequest(w http.ResponseWriter, r *http.Request)
	MayorDecideRequest(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	requestService  leave.RequestService
	decisionService leave.DecisionService
}

func NewLeaveHandler(requestService leave.RequestService, decisionService leave.DecisionService) LeaveHandler {
	return &LeaveHandlerImpl{
		requestService:  requestService,
		decisionService: decisionService,
	}
}

func (h *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = actor.EmployeeID

	created, warning, err := h.requestService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Leave request submitted"
	if warning != "" {
		message = warning
	}
	response.Created(w, message, leave.ToResponse(created))
}

func (h *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := leave.Filter{}
	q := r.URL.Query()
	if status := q.Get("status"); status != "" {
		filter.Status = &status
	}
	if category := q.Get("category"); category != "" {
		filter.Category = &category
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	requests, total, err := h.requestService.List(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, req := range requests {
		items = append(items, leave.ToResponse(req))
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	response.SuccessWithMeta(w, items, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

func (h *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	request, err := h.requestService.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToResponse(request))
}

func (h *LeaveHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	history, err := h.requestService.History(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

func (h *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	cancelled, err := h.requestService.Cancel(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", leave.ToResponse(cancelled))
}

func (h *LeaveHandlerImpl) RecommendRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.decisionService.Recommend)
}

func (h *LeaveHandlerImpl) HRDecideRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.decisionService.HRDecide)
}

func (h *LeaveHandlerImpl) MayorDecideRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.decisionService.MayorDecide)
}

type decideFunc = func(ctx context.Context, actor auth.Actor, requestID string, req leave.DecisionRequest) (leave.LeaveRequest, error)

func (h *LeaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, fn decideFunc) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := fn(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", leave.ToResponse(updated))
}
