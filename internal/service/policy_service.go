package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"mentorhub/backend/internal/model"
	"mentorhub/backend/internal/repository"
	apperrors "mentorhub/backend/pkg/errors"
)

// ── 策略模块业务错误 ──

var (
	ErrGlobalPolicyMissing = errors.New("全局限额策略未初始化")
)

// PolicyService 排课限额策略解析接口
type PolicyService interface {
	// Resolve 计算 (讲师, 项目, 月份) 的生效策略。
	// 按字段合并三层配置，优先级：讲师-月份 > 项目 > 全局；
	// 覆盖层缺失或字段为 nil 时透传到下一层。programID 可为空（无项目上下文）。
	Resolve(ctx context.Context, instructorID, programID, period string) (*model.Policy, error)
}

type policyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPolicyService 创建 PolicyService 实例
func NewPolicyService(repo *repository.Repository, logger *zap.Logger) PolicyService {
	return &policyService{repo: repo, logger: logger}
}

func (s *policyService) Resolve(ctx context.Context, instructorID, programID, period string) (*model.Policy, error) {
	global, err := s.repo.Policy.GetGlobal(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrGlobalPolicyMissing
		}
		s.logger.Error("查询全局限额策略失败", zap.Error(err))
		return nil, err
	}

	// 从全局副本出发，低优先级先叠加
	effective := *global

	if programID != "" {
		o, err := s.repo.Policy.GetProgramOverride(ctx, programID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("查询项目级覆盖失败", zap.String("program_id", programID), zap.Error(err))
			return nil, err
		}
		effective.Apply(o)
	}

	if instructorID != "" && period != "" {
		o, err := s.repo.Policy.GetInstructorPeriodOverride(ctx, instructorID, period)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("查询讲师-月份覆盖失败",
				zap.String("instructor_id", instructorID),
				zap.String("period", period),
				zap.Error(err))
			return nil, err
		}
		effective.Apply(o)
	}

	return &effective, nil
}
