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

// ── 工作量模块业务错误 ──

var (
	ErrInstructorRequired = errors.New("讲师标识缺失")
)

// WorkloadService 讲师已占用工作量核算接口（纯读，无副作用）
type WorkloadService interface {
	// MonthlyHours 汇总讲师在指定月份、指定角色下的已占用工时：
	// 已确认安排中按角色挂名的课次 + 待审核/已通过报名的课次。
	// excludeProgramID 非空时跳过该项目（编辑既有项目重校验时避免重复计数）。
	MonthlyHours(ctx context.Context, instructor model.InstructorRef, role model.Role, period, excludeProgramID string) (*dto.MonthlyWorkload, error)

	// DailyApplications 列出讲师在指定日期、指定状态下有课次的报名，按项目聚合。
	DailyApplications(ctx context.Context, instructor model.InstructorRef, date string, statuses []model.ApplicationStatus) ([]dto.DailyApplication, error)
}

type workloadService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWorkloadService 创建 WorkloadService 实例
func NewWorkloadService(repo *repository.Repository, logger *zap.Logger) WorkloadService {
	return &workloadService{repo: repo, logger: logger}
}

// ────────────────────── MonthlyHours ──────────────────────

func (s *workloadService) MonthlyHours(ctx context.Context, instructor model.InstructorRef, role model.Role, period, excludeProgramID string) (*dto.MonthlyWorkload, error) {
	if instructor.InstructorID == "" {
		return nil, ErrInstructorRequired
	}

	total := &dto.MonthlyWorkload{}

	// 1. 已确认安排：按课次上角色挂名的讲师列表匹配
	assignments, err := s.repo.Assignment.List(ctx)
	if err != nil {
		s.logger.Error("查询带教安排失败", zap.Error(err))
		return nil, err
	}
	for _, a := range assignments {
		if excludeProgramID != "" && a.ProgramID == excludeProgramID {
			continue
		}
		for i := range a.Lessons {
			lesson := &a.Lessons[i]
			matched, byName := lessonHasInstructor(lesson, role, instructor)
			if !matched {
				continue
			}
			if err := addLessonHours(total, lesson, period, byName); err != nil {
				return nil, err
			}
		}
	}

	// 2. 待审核/已通过报名：按报名人与角色匹配
	applications, err := s.repo.Application.ListByStatus(ctx,
		[]model.ApplicationStatus{model.ApplicationPending, model.ApplicationAccepted})
	if err != nil {
		s.logger.Error("查询报名申请失败", zap.Error(err))
		return nil, err
	}
	for _, app := range applications {
		if excludeProgramID != "" && app.ProgramID == excludeProgramID {
			continue
		}
		if app.Role != role {
			continue
		}
		matched, byName := app.Instructor.Matches(instructor)
		if !matched {
			continue
		}
		for i := range app.Lessons {
			if err := addLessonHours(total, &app.Lessons[i], period, byName); err != nil {
				return nil, err
			}
		}
	}

	return total, nil
}

// addLessonHours 课次落在目标月份时累加工时（求和与遍历顺序无关）
func addLessonHours(total *dto.MonthlyWorkload, lesson *model.Lesson, period string, byName bool) error {
	p, err := lesson.Period()
	if err != nil {
		return fmt.Errorf("课次日期非法: %w", err)
	}
	if p != period {
		return nil
	}
	hours, err := lesson.DurationHours()
	if err != nil {
		return err
	}
	total.Hours += hours
	if byName {
		total.NameMatchedHours += hours
	}
	return nil
}

// lessonHasInstructor 判断讲师是否在课次的指定角色列表中
func lessonHasInstructor(lesson *model.Lesson, role model.Role, instructor model.InstructorRef) (matched, byName bool) {
	for _, ref := range lesson.Instructors(role) {
		m, n := ref.Matches(instructor)
		if m {
			return true, n
		}
	}
	return false, false
}

// ────────────────────── DailyApplications ──────────────────────

func (s *workloadService) DailyApplications(ctx context.Context, instructor model.InstructorRef, date string, statuses []model.ApplicationStatus) ([]dto.DailyApplication, error) {
	if instructor.InstructorID == "" {
		return nil, ErrInstructorRequired
	}
	if _, err := model.ParseDate(date); err != nil {
		return nil, err
	}

	applications, err := s.repo.Application.ListByStatus(ctx, statuses)
	if err != nil {
		s.logger.Error("查询报名申请失败", zap.Error(err))
		return nil, err
	}

	// 按项目聚合当日课次
	grouped := make(map[string]*dto.DailyApplication)
	for _, app := range applications {
		matched, byName := app.Instructor.Matches(instructor)
		if !matched {
			continue
		}
		for _, lesson := range app.Lessons {
			if lesson.Date != date {
				continue
			}
			g, ok := grouped[app.ProgramID]
			if !ok {
				g = &dto.DailyApplication{ProgramID: app.ProgramID}
				grouped[app.ProgramID] = g
			}
			g.Lessons = append(g.Lessons, lesson)
			if byName {
				g.MatchedByName = true
			}
		}
	}

	result := make([]dto.DailyApplication, 0, len(grouped))
	for _, g := range grouped {
		result = append(result, *g)
	}
	// 按项目 ID 排序保证结果稳定
	sort.Slice(result, func(i, j int) bool { return result[i].ProgramID < result[j].ProgramID })

	return result, nil
}
