package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"mentorhub/backend/internal/model"
)

// AssignmentRepository 已确认带教安排数据访问接口（核心只读）
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	List(ctx context.Context) ([]model.Assignment, error)
}

type assignmentRepo struct {
	mu          sync.RWMutex
	assignments map[string]*model.Assignment
}

// NewAssignmentRepo 创建内存态 AssignmentRepository 实例
func NewAssignmentRepo() AssignmentRepository {
	return &assignmentRepo{assignments: make(map[string]*model.Assignment)}
}

func (r *assignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if assignment.AssignmentID == "" {
		assignment.AssignmentID = uuid.NewString()
	}
	c := *assignment
	r.assignments[assignment.AssignmentID] = &c
	return nil
}

func (r *assignmentRepo) List(_ context.Context) ([]model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]model.Assignment, 0, len(r.assignments))
	for _, a := range r.assignments {
		result = append(result, *a)
	}
	return result, nil
}
