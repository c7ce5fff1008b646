package repository

import (
	"context"
	"sync"

	"mentorhub/backend/internal/model"
	apperrors "mentorhub/backend/pkg/errors"
)

// PolicyRepository 排课限额策略数据访问接口。
// 三层结构：全局默认（单例）、项目级覆盖、讲师-月份覆盖。
// 覆盖层的增删改由管理后台负责，核心只读；写接口供后台与测试播种使用。
type PolicyRepository interface {
	GetGlobal(ctx context.Context) (*model.Policy, error)
	SetGlobal(ctx context.Context, policy *model.Policy) error

	GetProgramOverride(ctx context.Context, programID string) (*model.PolicyOverride, error)
	SaveProgramOverride(ctx context.Context, programID string, o *model.PolicyOverride) error
	DeleteProgramOverride(ctx context.Context, programID string) error

	GetInstructorPeriodOverride(ctx context.Context, instructorID, period string) (*model.PolicyOverride, error)
	SaveInstructorPeriodOverride(ctx context.Context, instructorID, period string, o *model.PolicyOverride) error
	DeleteInstructorPeriodOverride(ctx context.Context, instructorID, period string) error
}

type policyRepo struct {
	mu               sync.RWMutex
	global           *model.Policy
	programOverrides map[string]*model.PolicyOverride
	periodOverrides  map[string]*model.PolicyOverride // "instructorID:period"
}

// NewPolicyRepo 创建内存态 PolicyRepository 实例
func NewPolicyRepo() PolicyRepository {
	return &policyRepo{
		programOverrides: make(map[string]*model.PolicyOverride),
		periodOverrides:  make(map[string]*model.PolicyOverride),
	}
}

func periodKey(instructorID, period string) string {
	return instructorID + ":" + period
}

func (r *policyRepo) GetGlobal(_ context.Context) (*model.Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.global == nil {
		return nil, apperrors.ErrNotFound
	}
	p := *r.global
	return &p, nil
}

func (r *policyRepo) SetGlobal(_ context.Context, policy *model.Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *policy
	r.global = &p
	return nil
}

func (r *policyRepo) GetProgramOverride(_ context.Context, programID string) (*model.PolicyOverride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if o, ok := r.programOverrides[programID]; ok {
		c := *o
		return &c, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *policyRepo) SaveProgramOverride(_ context.Context, programID string, o *model.PolicyOverride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *o
	r.programOverrides[programID] = &c
	return nil
}

func (r *policyRepo) DeleteProgramOverride(_ context.Context, programID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.programOverrides, programID)
	return nil
}

func (r *policyRepo) GetInstructorPeriodOverride(_ context.Context, instructorID, period string) (*model.PolicyOverride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if o, ok := r.periodOverrides[periodKey(instructorID, period)]; ok {
		c := *o
		return &c, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *policyRepo) SaveInstructorPeriodOverride(_ context.Context, instructorID, period string, o *model.PolicyOverride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *o
	r.periodOverrides[periodKey(instructorID, period)] = &c
	return nil
}

func (r *policyRepo) DeleteInstructorPeriodOverride(_ context.Context, instructorID, period string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.periodOverrides, periodKey(instructorID, period))
	return nil
}
