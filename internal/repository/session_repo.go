package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"mentorhub/backend/internal/model"
	apperrors "mentorhub/backend/pkg/errors"
)

// SessionRepository 开课场次数据访问接口。
// UpdateStatus 是状态字段唯一的写入口，仅供状态调度器调用。
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	List(ctx context.Context) ([]model.Session, error)
	UpdateStatus(ctx context.Context, id string, status model.SessionStatus) error
}

type sessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

// NewSessionRepo 创建内存态 SessionRepository 实例
func NewSessionRepo() SessionRepository {
	return &sessionRepo{sessions: make(map[string]*model.Session)}
}

func (r *sessionRepo) Create(_ context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.SessionID == "" {
		session.SessionID = uuid.NewString()
	}
	if session.Status == "" {
		session.Status = model.SessionScheduled
	}
	c := *session
	r.sessions[session.SessionID] = &c
	return nil
}

func (r *sessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sessions[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *sessionRepo) List(_ context.Context) ([]model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]model.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		result = append(result, *s)
	}
	return result, nil
}

func (r *sessionRepo) UpdateStatus(_ context.Context, id string, status model.SessionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	s.Status = status
	return nil
}
