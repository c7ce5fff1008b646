package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"mentorhub/backend/internal/dto"
	"mentorhub/backend/internal/model"
	"mentorhub/backend/internal/repository"
)

// ── 校验模块业务错误（参数类硬错误，区别于规则拒绝） ──

var (
	ErrLessonsRequired = errors.New("候选课次不能为空")
	ErrInvalidRole     = errors.New("角色非法")
)

// ValidationService 带教资格校验接口。
// 三阶段流水线按序短路：月度工时 → 时间冲突 → 单日报名上限；
// 前一阶段拒绝时后续阶段不再执行。规则拒绝通过 ValidationResult 返回，
// 只有参数非法或仓储故障才返回 error。
type ValidationService interface {
	Validate(ctx context.Context, req *dto.ValidateAssignmentRequest) (*dto.ValidationResult, error)
}

type validationService struct {
	repo     *repository.Repository
	policy   PolicyService
	workload WorkloadService
	logger   *zap.Logger
}

// NewValidationService 创建 ValidationService 实例
func NewValidationService(repo *repository.Repository, policy PolicyService, workload WorkloadService, logger *zap.Logger) ValidationService {
	return &validationService{repo: repo, policy: policy, workload: workload, logger: logger}
}

func (s *validationService) Validate(ctx context.Context, req *dto.ValidateAssignmentRequest) (*dto.ValidationResult, error) {
	// ── 参数检查 ──
	if req.Instructor.InstructorID == "" {
		return nil, ErrInstructorRequired
	}
	if req.Role != model.RoleMain && req.Role != model.RoleAssistant {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
	}
	if len(req.Lessons) == 0 {
		return nil, ErrLessonsRequired
	}
	if _, err := model.ParseDate(req.ApplicationDate); err != nil {
		return nil, err
	}

	// 候选课次按月份预聚合（日期/时间非法在此暴露为硬错误）
	candHours := make(map[string]float64)
	for i := range req.Lessons {
		lesson := &req.Lessons[i]
		period, err := lesson.Period()
		if err != nil {
			return nil, err
		}
		hours, err := lesson.DurationHours()
		if err != nil {
			return nil, err
		}
		candHours[period] += hours
	}

	// ── 阶段1: 月度工时校验 ──
	if result, err := s.checkMonthlyLimit(ctx, req, candHours); err != nil || result != nil {
		return result, err
	}

	// ── 阶段2: 时间冲突校验 ──
	if result, err := s.checkScheduleConflict(ctx, req); err != nil || result != nil {
		return result, err
	}

	// ── 阶段3: 单日报名上限校验 ──
	if result, err := s.checkDailyLimit(ctx, req); err != nil || result != nil {
		return result, err
	}

	return &dto.ValidationResult{Allowed: true}, nil
}

// checkMonthlyLimit 逐月校验：已占用 + 本次新增 严格大于上限才拒绝（等于上限放行）
func (s *validationService) checkMonthlyLimit(ctx context.Context, req *dto.ValidateAssignmentRequest, candHours map[string]float64) (*dto.ValidationResult, error) {
	periods := make([]string, 0, len(candHours))
	for p := range candHours {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	for _, period := range periods {
		policy, err := s.policy.Resolve(ctx, req.Instructor.InstructorID, req.ProgramID, period)
		if err != nil {
			return nil, err
		}
		existing, err := s.workload.MonthlyHours(ctx, req.Instructor, req.Role, period, req.ProgramID)
		if err != nil {
			return nil, err
		}

		maxHours := policy.MaxHoursFor(req.Role)
		if existing.Hours+candHours[period] > maxHours {
			return &dto.ValidationResult{
				Allowed: false,
				Code:    dto.RejectMonthlyLimit,
				Message: fmt.Sprintf("%s 月工时将达 %.1f 小时，超出上限 %.1f 小时",
					period, existing.Hours+candHours[period], maxHours),
				MonthlyDetail: &dto.MonthlyLimitDetail{
					Period:         period,
					Role:           req.Role,
					CurrentHours:   existing.Hours,
					CandidateHours: candHours[period],
					MaxHours:       maxHours,
				},
			}, nil
		}
	}
	return nil, nil
}

// checkScheduleConflict 候选课次 vs 已确认安排（任意角色）与待审核报名（排除本项目）
func (s *validationService) checkScheduleConflict(ctx context.Context, req *dto.ValidateAssignmentRequest) (*dto.ValidationResult, error) {
	assignments, err := s.repo.Assignment.List(ctx)
	if err != nil {
		s.logger.Error("查询带教安排失败", zap.Error(err))
		return nil, err
	}
	pending, err := s.repo.Application.ListByStatus(ctx, []model.ApplicationStatus{model.ApplicationPending})
	if err != nil {
		s.logger.Error("查询待审核报名失败", zap.Error(err))
		return nil, err
	}

	for i := range req.Lessons {
		candidate := &req.Lessons[i]

		// 已确认安排：讲师以任意角色挂名的课次都参与冲突检测
		for _, a := range assignments {
			for j := range a.Lessons {
				lesson := &a.Lessons[j]
				mainHit, mainByName := lessonHasInstructor(lesson, model.RoleMain, req.Instructor)
				asstHit, asstByName := lessonHasInstructor(lesson, model.RoleAssistant, req.Instructor)
				if !mainHit && !asstHit {
					continue
				}
				if lessonsOverlap(candidate, lesson) {
					return conflictResult(a.ProgramID, lesson, mainByName || asstByName), nil
				}
			}
		}

		// 待审核报名：排除正在校验的项目本身
		for _, app := range pending {
			if app.ProgramID == req.ProgramID {
				continue
			}
			matched, byName := app.Instructor.Matches(req.Instructor)
			if !matched {
				continue
			}
			for j := range app.Lessons {
				if lessonsOverlap(candidate, &app.Lessons[j]) {
					return conflictResult(app.ProgramID, &app.Lessons[j], byName), nil
				}
			}
		}
	}
	return nil, nil
}

// checkDailyLimit 报名日的项目数上限与同日重叠校验
func (s *validationService) checkDailyLimit(ctx context.Context, req *dto.ValidateAssignmentRequest) (*dto.ValidationResult, error) {
	period, err := model.PeriodOfDate(req.ApplicationDate)
	if err != nil {
		return nil, err
	}
	policy, err := s.policy.Resolve(ctx, req.Instructor.InstructorID, req.ProgramID, period)
	if err != nil {
		return nil, err
	}

	occupied, err := s.workload.DailyApplications(ctx, req.Instructor, req.ApplicationDate,
		[]model.ApplicationStatus{model.ApplicationPending, model.ApplicationAccepted})
	if err != nil {
		return nil, err
	}

	// 只统计其他项目的占用
	others := occupied[:0:0]
	for _, o := range occupied {
		if o.ProgramID != req.ProgramID {
			others = append(others, o)
		}
	}

	if !policy.AllowMultiplePerDay {
		// 单日仅允许一个项目：存在任何其他项目占用即拒绝，与时间是否重叠无关
		if len(others) > 0 {
			return dailyLimitResult(req.ApplicationDate, len(others), 1), nil
		}
		return nil, nil
	}

	if len(others) >= policy.DailyMaxApplications {
		return dailyLimitResult(req.ApplicationDate, len(others), policy.DailyMaxApplications), nil
	}

	// 允许同日多项目时，仍不允许与当日既有课次时间重叠
	for _, o := range others {
		for j := range o.Lessons {
			for i := range req.Lessons {
				if lessonsOverlap(&req.Lessons[i], &o.Lessons[j]) {
					return conflictResult(o.ProgramID, &o.Lessons[j], o.MatchedByName), nil
				}
			}
		}
	}
	return nil, nil
}

// ── 结果构造 ──

func conflictResult(programID string, lesson *model.Lesson, byName bool) *dto.ValidationResult {
	return &dto.ValidationResult{
		Allowed: false,
		Code:    dto.RejectConflict,
		Message: fmt.Sprintf("与既有课次时间冲突: %s %s-%s", lesson.Date, lesson.StartTime, lesson.EndTime),
		ConflictDetail: &dto.ConflictDetail{
			ProgramID:     programID,
			Lesson:        *lesson,
			MatchedByName: byName,
		},
	}
}

func dailyLimitResult(date string, current, max int) *dto.ValidationResult {
	return &dto.ValidationResult{
		Allowed: false,
		Code:    dto.RejectDailyLimit,
		Message: fmt.Sprintf("%s 当日报名项目数已达上限（%d/%d）", date, current, max),
		DailyDetail: &dto.DailyLimitDetail{
			Date:         date,
			CurrentCount: current,
			MaxCount:     max,
		},
	}
}
