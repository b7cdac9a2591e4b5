package employee

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/storage"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	repo     employee.Repository
	deptRepo employee.DepartmentRepository
	files    storage.FileStorage
}

func NewEmployeeService(repo employee.Repository, deptRepo employee.DepartmentRepository, files storage.FileStorage) employee.EmployeeService {
	return &EmployeeServiceImpl{
		repo:     repo,
		deptRepo: deptRepo,
		files:    files,
	}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	if _, err := s.deptRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return employee.Employee{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.Employee{}, err
	}

	return s.repo.Create(ctx, employee.Employee{
		EmployeeNo:   req.EmployeeNo,
		FullName:     req.FullName,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Role:         employee.Role(req.Role),
		DepartmentID: req.DepartmentID,
		Position:     req.Position,
		IsActive:     true,
	})
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.repo.GetByID(ctx, id, employee.QueryOptions{IncludeDepartment: true})
}

func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	current, err := s.repo.GetByID(ctx, req.ID, employee.QueryOptions{})
	if err != nil {
		return employee.Employee{}, err
	}

	if req.DepartmentID != nil {
		if _, err := s.deptRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			return employee.Employee{}, err
		}
	}

	// Losing the last active HR account would orphan every recommended
	// request, so demotion and deactivation are both guarded.
	if current.Role == employee.RoleHR && current.IsActive {
		demoted := req.Role != nil && employee.Role(*req.Role) != employee.RoleHR
		deactivated := req.IsActive != nil && !*req.IsActive
		if demoted || deactivated {
			count, err := s.repo.CountActiveByRole(ctx, employee.RoleHR)
			if err != nil {
				return employee.Employee{}, err
			}
			if count <= 1 {
				return employee.Employee{}, employee.ErrLastHRManager
			}
		}
	}

	if req.Email != nil {
		lowered := strings.ToLower(*req.Email)
		req.Email = &lowered
	}

	if err := s.repo.Update(ctx, req); err != nil {
		return employee.Employee{}, err
	}

	return s.repo.GetByID(ctx, req.ID, employee.QueryOptions{IncludeDepartment: true})
}

func (s *EmployeeServiceImpl) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return employee.ErrCannotDeleteSelf
	}

	target, err := s.repo.GetByID(ctx, id, employee.QueryOptions{})
	if err != nil {
		return err
	}

	if target.Role == employee.RoleHR && target.IsActive {
		count, err := s.repo.CountActiveByRole(ctx, employee.RoleHR)
		if err != nil {
			return err
		}
		if count <= 1 {
			return employee.ErrLastHRManager
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *EmployeeServiceImpl) UploadAvatar(ctx context.Context, employeeID, filename, contentType string, file io.Reader) (string, error) {
	if _, err := s.repo.GetByID(ctx, employeeID, employee.QueryOptions{}); err != nil {
		return "", err
	}

	// Client-supplied names never reach the filesystem; only the extension
	// survives.
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("avatars/%s/%s%s", employeeID, uuid.NewString(), ext)
	if _, err := s.files.Upload(ctx, file, key, contentType); err != nil {
		return "", err
	}

	url, err := s.files.GetURL(ctx, key)
	if err != nil {
		return "", err
	}

	if err := s.repo.Update(ctx, employee.UpdateEmployeeRequest{ID: employeeID, AvatarURL: &url}); err != nil {
		return "", err
	}

	return url, nil
}

type DepartmentServiceImpl struct {
	repo employee.DepartmentRepository
}

func NewDepartmentService(repo employee.DepartmentRepository) employee.DepartmentService {
	return &DepartmentServiceImpl{repo: repo}
}

func (s *DepartmentServiceImpl) Create(ctx context.Context, dept employee.Department) (employee.Department, error) {
	return s.repo.Create(ctx, dept)
}

func (s *DepartmentServiceImpl) Get(ctx context.Context, id string) (employee.Department, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DepartmentServiceImpl) List(ctx context.Context) ([]employee.Department, error) {
	return s.repo.List(ctx)
}
