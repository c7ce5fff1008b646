package model

import (
	"fmt"
	"time"
)

// Role 讲师在课次中承担的角色
type Role string

const (
	RoleMain      Role = "main"      // 主讲
	RoleAssistant Role = "assistant" // 助教
)

// InstructorRef 讲师引用：以 ID 为主键，历史数据可能只有姓名
type InstructorRef struct {
	InstructorID string `json:"instructor_id"`
	Name         string `json:"name"`
}

// Matches 判断引用是否指向给定讲师。
// ID 存在时只按 ID 匹配；仅当引用缺失 ID 时才回退到姓名比对（历史数据兼容），
// 回退命中通过第二个返回值标记，供上层审计。
// 注意：引用带有 ID 但与目标不一致时不做姓名回退，即使姓名相同也视为不匹配。
func (r InstructorRef) Matches(target InstructorRef) (matched, byName bool) {
	if r.InstructorID != "" {
		return r.InstructorID == target.InstructorID, false
	}
	if r.Name != "" && r.Name == target.Name {
		return true, true
	}
	return false, false
}

// Lesson 课次：某一天内的一个授课时段
type Lesson struct {
	Date                 string          `json:"date"`       // 2006-01-02
	StartTime            string          `json:"start_time"` // 15:04
	EndTime              string          `json:"end_time"`   // 15:04
	MainInstructors      []InstructorRef `json:"main_instructors,omitempty"`
	AssistantInstructors []InstructorRef `json:"assistant_instructors,omitempty"`
}

// Instructors 返回指定角色的讲师列表
func (l *Lesson) Instructors(role Role) []InstructorRef {
	if role == RoleAssistant {
		return l.AssistantInstructors
	}
	return l.MainInstructors
}

// DurationHours 计算课次时长（小时，可为小数）
func (l *Lesson) DurationHours() (float64, error) {
	start, err := ParseClock(l.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := ParseClock(l.EndTime)
	if err != nil {
		return 0, err
	}
	if !end.After(start) {
		return 0, fmt.Errorf("课次时间区间非法: %s-%s", l.StartTime, l.EndTime)
	}
	return end.Sub(start).Hours(), nil
}

// Period 返回课次所在月份 token（如 2025-06）
func (l *Lesson) Period() (string, error) {
	return PeriodOfDate(l.Date)
}

// ── 日期/时间解析 ──

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// ParseDate 解析 2006-01-02 形式的日期
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("日期格式无效 %q: %w", s, err)
	}
	return t, nil
}

// ParseClock 解析 15:04 形式的时刻
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("时间格式无效 %q: %w", s, err)
	}
	return t, nil
}

// PeriodOfDate 从日期得到月份 token（2025-06-10 → 2025-06）
func PeriodOfDate(date string) (string, error) {
	if _, err := ParseDate(date); err != nil {
		return "", err
	}
	return date[:7], nil
}
