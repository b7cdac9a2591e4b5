package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
	"github.com/lgu-hris/leave-backend-go/internal/handler/http/response"
)

// maxAvatarSize caps multipart avatar uploads.
const maxAvatarSize = 5 << 20

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	UploadAvatar(w http.ResponseWriter, r *http.Request)

	ListDepartments(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService   employee.EmployeeService
	departmentService employee.DepartmentService
}

func NewEmployeeHandler(employeeService employee.EmployeeService, departmentService employee.DepartmentService) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService:   employeeService,
		departmentService: departmentService,
	}
}

func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", employee.ToResponse(created))
}

func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")

	// Non-HR roles may only read their own record.
	if id != actor.EmployeeID && !employee.HasPermission(actor.Role, employee.PermissionEmployeeViewAll) {
		response.Forbidden(w, "Insufficient permissions")
		return
	}

	emp, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.ToResponse(emp))
}

func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.Filter{}
	q := r.URL.Query()
	if departmentID := q.Get("department_id"); departmentID != "" {
		filter.DepartmentID = &departmentID
	}
	if roleStr := q.Get("role"); roleStr != "" {
		role := employee.Role(roleStr)
		filter.Role = &role
	}
	if search := q.Get("search"); search != "" {
		filter.Search = &search
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	employees, total, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		items = append(items, employee.ToResponse(emp))
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

func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated", employee.ToResponse(updated))
}

func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.employeeService.Delete(r.Context(), actor.EmployeeID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted", nil)
}

func (h *EmployeeHandlerImpl) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id != actor.EmployeeID && !employee.HasPermission(actor.Role, employee.PermissionEmployeeManage) {
		response.Forbidden(w, "Insufficient permissions")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		response.BadRequest(w, "Avatar file is required", nil)
		return
	}
	defer file.Close()

	url, err := h.employeeService.UploadAvatar(r.Context(), id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Avatar uploaded", map[string]string{"avatar_url": url})
}

func (h *EmployeeHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departmentService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departments)
}
