package service

import (
	"container/heap"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mentorhub/backend/internal/dto"
	"mentorhub/backend/internal/model"
	"mentorhub/backend/internal/repository"
	apperrors "mentorhub/backend/pkg/errors"
)

// TransitionHandler 场次状态迁移事件回调。
// 回调在调度器内部同步执行，勿在回调中反向调用调度器接口。
type TransitionHandler func(event dto.TransitionEvent)

// SchedulerService 场次状态调度接口。
// 按预定时间点将场次沿 scheduled → published → closed 单向推进：
// 已到期的迁移在 Start / ScheduleSession / 对账扫描中同步补齐（停机追赶），
// 未到期的迁移由最小堆 + 定时器驱动；固定间隔的对账扫描兜底定时器漂移或丢失。
type SchedulerService interface {
	// Start 先对全量场次做一次追赶扫描，再启动定时器循环与对账扫描
	Start(ctx context.Context) error
	// Stop 停止定时器与对账扫描；可重复调用
	Stop()
	// ScheduleSession 为场次安排状态迁移：先作废该场次既有定时器，
	// 同步补齐已到期迁移（按截止时间顺序连锁推进），再安装剩余的未来截止点
	ScheduleSession(ctx context.Context, session *model.Session) error
	// Subscribe 注册迁移事件回调；每次真实迁移至少投递一次，被忽略的非法迁移不投递
	Subscribe(handler TransitionHandler)
}

type schedulerService struct {
	repo     *repository.Repository
	logger   *zap.Logger
	interval time.Duration    // 对账扫描间隔
	now      func() time.Time // 测试可注入

	mu       sync.Mutex
	pending  deadlineHeap
	gens     map[string]uint64 // sessionID → 当前调度代次
	handlers []TransitionHandler
	running  bool
	stopCh   chan struct{}
	wakeCh   chan struct{}
	ticker   *time.Ticker
}

// NewSchedulerService 创建 SchedulerService 实例
func NewSchedulerService(repo *repository.Repository, reconcileInterval time.Duration, logger *zap.Logger) SchedulerService {
	return &schedulerService{
		repo:     repo,
		logger:   logger,
		interval: reconcileInterval,
		now:      time.Now,
		gens:     make(map[string]uint64),
		wakeCh:   make(chan struct{}, 1),
	}
}

// ────────────────────── 生命周期 ──────────────────────

func (s *schedulerService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	// 启动前先补齐停机期间错过的所有迁移
	if err := s.reconcileLocked(ctx); err != nil {
		return err
	}

	s.running = true
	s.stopCh = make(chan struct{})
	s.ticker = time.NewTicker(s.interval)
	go s.run()

	s.logger.Info("场次状态调度器已启动",
		zap.Duration("reconcile_interval", s.interval),
		zap.Int("pending", s.pending.Len()))
	return nil
}

func (s *schedulerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.ticker.Stop()
	close(s.stopCh)
	s.pending = s.pending[:0]
	s.logger.Info("场次状态调度器已停止")
}

func (s *schedulerService) Subscribe(handler TransitionHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

func (s *schedulerService) ScheduleSession(ctx context.Context, session *model.Session) error {
	if session == nil || session.SessionID == "" {
		return apperrors.ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// 代次递增即作废该场次在堆中的全部旧条目（不可能重复触发被取代的定时器）
	s.gens[session.SessionID]++

	sess := *session
	if err := s.catchUpLocked(ctx, &sess); err != nil {
		return err
	}
	s.installLocked(&sess)
	s.wake()
	return nil
}

// ────────────────────── 定时器循环 ──────────────────────

// idleWait 堆为空时定时器的占位时长，醒来后重新计算
const idleWait = time.Hour

func (s *schedulerService) run() {
	timer := time.NewTimer(idleWait)
	defer timer.Stop()

	for {
		// 以堆顶重新武装定时器
		s.mu.Lock()
		wait := idleWait
		if s.pending.Len() > 0 {
			wait = time.Until(s.pending[0].deadline)
			if wait < 0 {
				wait = 0
			}
		}
		stopCh := s.stopCh
		tickCh := s.ticker.C
		s.mu.Unlock()

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-stopCh:
			return
		case <-timer.C:
			s.fireDue()
		case <-tickCh:
			s.reconcile()
		case <-s.wakeCh:
			// 截止点集合变化，重新计算等待时长
		}
	}
}

func (s *schedulerService) wake() {
	select {
	case s.wakeCh <- struct{}{}:
	default:
	}
}

// fireDue 处理堆中所有已到期的截止点
func (s *schedulerService) fireDue() {
	ctx := context.Background()
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for s.pending.Len() > 0 && !s.pending[0].deadline.After(now) {
		entry := heap.Pop(&s.pending).(deadlineEntry)
		if s.gens[entry.sessionID] != entry.gen {
			// 已被重新调度取代
			continue
		}

		session, err := s.repo.Session.GetByID(ctx, entry.sessionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.logger.Warn("定时器触发但场次已不存在", zap.String("session_id", entry.sessionID))
				continue
			}
			s.logger.Error("查询场次失败，留待对账扫描重试", zap.String("session_id", entry.sessionID), zap.Error(err))
			continue
		}

		if session.Status == model.SessionClosed {
			// 终态场次不存在合法迁移；对账机制下重复触发属正常，忽略即可
			s.logger.Debug("忽略终态场次的到期定时器", zap.String("session_id", session.SessionID))
			continue
		}

		if err := s.catchUpLocked(ctx, session); err != nil {
			s.logger.Error("状态推进失败，留待对账扫描重试", zap.String("session_id", session.SessionID), zap.Error(err))
			continue
		}
		s.installLocked(session)
	}
}

// reconcile 对账扫描：对全量场次重跑追赶逻辑（无到期项时为幂等空转）
func (s *schedulerService) reconcile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reconcileLocked(context.Background()); err != nil {
		s.logger.Error("对账扫描失败", zap.Error(err))
	}
}

// reconcileLocked 重建堆：逐场次补齐已到期迁移并重装未来截止点
func (s *schedulerService) reconcileLocked(ctx context.Context) error {
	sessions, err := s.repo.Session.List(ctx)
	if err != nil {
		s.logger.Error("查询场次列表失败", zap.Error(err))
		return err
	}

	s.pending = s.pending[:0]
	for i := range sessions {
		session := &sessions[i]
		s.gens[session.SessionID]++
		if err := s.catchUpLocked(ctx, session); err != nil {
			s.logger.Error("追赶扫描推进失败", zap.String("session_id", session.SessionID), zap.Error(err))
			continue
		}
		s.installLocked(session)
	}
	return nil
}

// ────────────────────── 状态迁移 ──────────────────────

// catchUpLocked 连锁补齐已到期迁移：单个场次内按截止时间顺序推进
// （先 published 后 closed），每步持久化并投递事件。
func (s *schedulerService) catchUpLocked(ctx context.Context, session *model.Session) error {
	for {
		deadline := session.NextDeadline()
		if deadline == nil || deadline.After(s.now()) {
			return nil
		}
		next := session.Status.Next()
		if next == "" {
			return nil
		}

		if err := s.repo.Session.UpdateStatus(ctx, session.SessionID, next); err != nil {
			return err
		}
		from := session.Status
		session.Status = next

		s.emitLocked(dto.TransitionEvent{
			EventID:    uuid.NewString(),
			SessionID:  session.SessionID,
			From:       from,
			To:         next,
			OccurredAt: s.now(),
		})
		s.logger.Info("场次状态已推进",
			zap.String("session_id", session.SessionID),
			zap.String("from", string(from)),
			zap.String("to", string(next)))
	}
}

// installLocked 为场次安装下一个未来截止点（若有）
func (s *schedulerService) installLocked(session *model.Session) {
	deadline := session.NextDeadline()
	if deadline == nil {
		return
	}
	heap.Push(&s.pending, deadlineEntry{
		sessionID: session.SessionID,
		deadline:  *deadline,
		gen:       s.gens[session.SessionID],
	})
}

func (s *schedulerService) emitLocked(event dto.TransitionEvent) {
	for _, h := range s.handlers {
		h(event)
	}
}
