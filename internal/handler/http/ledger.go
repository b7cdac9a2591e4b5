package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lgu-hris/leave-backend-go/internal/domain/ledger"
	"github.com/lgu-hris/leave-backend-go/internal/handler/http/response"
)

type LedgerHandler interface {
	GetMyRecords(w http.ResponseWriter, r *http.Request)
	GetEmployeeRecords(w http.ResponseWriter, r *http.Request)
	AddUndertime(w http.ResponseWriter, r *http.Request)
}

type LedgerHandlerImpl struct {
	ledgerService ledger.Service
}

func NewLedgerHandler(ledgerService ledger.Service) LedgerHandler {
	return &LedgerHandlerImpl{ledgerService: ledgerService}
}

func (h *LedgerHandlerImpl) GetMyRecords(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.writeRecords(w, r, actor.EmployeeID)
}

func (h *LedgerHandlerImpl) GetEmployeeRecords(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	h.writeRecords(w, r, employeeID)
}

func (h *LedgerHandlerImpl) writeRecords(w http.ResponseWriter, r *http.Request, employeeID string) {
	// Materializing the current month first means a new employee sees the
	// opening balances instead of an empty list.
	if _, err := h.ledgerService.CurrentRecord(r.Context(), employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.ledgerService.ListRecords(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]ledger.RecordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, ledger.ToResponse(rec))
	}
	response.Success(w, items)
}

func (h *LedgerHandlerImpl) AddUndertime(w http.ResponseWriter, r *http.Request) {
	var req ledger.AddUndertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rec, err := h.ledgerService.AddUndertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Undertime recorded", ledger.ToResponse(rec))
}
