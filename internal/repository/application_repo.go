package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"mentorhub/backend/internal/model"
)

// ApplicationRepository 报名申请数据访问接口（核心只读）
type ApplicationRepository interface {
	Create(ctx context.Context, application *model.Application) error
	List(ctx context.Context) ([]model.Application, error)
	ListByStatus(ctx context.Context, statuses []model.ApplicationStatus) ([]model.Application, error)
}

type applicationRepo struct {
	mu           sync.RWMutex
	applications map[string]*model.Application
}

// NewApplicationRepo 创建内存态 ApplicationRepository 实例
func NewApplicationRepo() ApplicationRepository {
	return &applicationRepo{applications: make(map[string]*model.Application)}
}

func (r *applicationRepo) Create(_ context.Context, application *model.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if application.ApplicationID == "" {
		application.ApplicationID = uuid.NewString()
	}
	c := *application
	r.applications[application.ApplicationID] = &c
	return nil
}

func (r *applicationRepo) List(_ context.Context) ([]model.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]model.Application, 0, len(r.applications))
	for _, a := range r.applications {
		result = append(result, *a)
	}
	return result, nil
}

func (r *applicationRepo) ListByStatus(_ context.Context, statuses []model.ApplicationStatus) ([]model.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[model.ApplicationStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}
	var result []model.Application
	for _, a := range r.applications {
		if wanted[a.Status] {
			result = append(result, *a)
		}
	}
	return result, nil
}
