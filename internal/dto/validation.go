package dto

import "mentorhub/backend/internal/model"

// RejectCode 校验拒绝原因的封闭枚举
type RejectCode string

const (
	RejectMonthlyLimit RejectCode = "LIMIT_MONTHLY_SESSIONS_EXCEEDED" // 月度工时超限
	RejectConflict     RejectCode = "SCHEDULE_CONFLICT"               // 时间冲突
	RejectDailyLimit   RejectCode = "LIMIT_DAILY_APPLICATIONS_EXCEEDED" // 单日报名超限
)

// ValidateAssignmentRequest 带教资格校验请求
type ValidateAssignmentRequest struct {
	Instructor      model.InstructorRef `json:"instructor"`
	ProgramID       string              `json:"program_id"`
	Role            model.Role          `json:"role"`
	Lessons         []model.Lesson      `json:"lessons"`
	ApplicationDate string              `json:"application_date"` // 2006-01-02
}

// ValidationResult 校验结论：Allowed=false 时 Code 与对应明细必填
type ValidationResult struct {
	Allowed bool       `json:"allowed"`
	Code    RejectCode `json:"code,omitempty"`
	Message string     `json:"message,omitempty"`

	MonthlyDetail  *MonthlyLimitDetail  `json:"monthly_detail,omitempty"`
	ConflictDetail *ConflictDetail      `json:"conflict_detail,omitempty"`
	DailyDetail    *DailyLimitDetail    `json:"daily_detail,omitempty"`
}

// MonthlyLimitDetail 月度工时超限明细
type MonthlyLimitDetail struct {
	Period         string     `json:"period"` // 2025-06
	Role           model.Role `json:"role"`
	CurrentHours   float64    `json:"current_hours"`   // 已占用工时（不含本次）
	CandidateHours float64    `json:"candidate_hours"` // 本次新增工时
	MaxHours       float64    `json:"max_hours"`
}

// ConflictDetail 时间冲突明细
type ConflictDetail struct {
	ProgramID     string       `json:"program_id"` // 冲突来源项目
	Lesson        model.Lesson `json:"lesson"`     // 与候选冲突的既有课次
	MatchedByName bool         `json:"matched_by_name,omitempty"` // 冲突归属由姓名回退匹配得到
}

// DailyLimitDetail 单日报名超限明细
type DailyLimitDetail struct {
	Date         string `json:"date"`
	CurrentCount int    `json:"current_count"` // 当日已占用的其他项目数
	MaxCount     int    `json:"max_count"`
}

// MonthlyWorkload 月度已占用工时汇总
type MonthlyWorkload struct {
	Hours           float64 `json:"hours"`                       // 总工时
	NameMatchedHours float64 `json:"name_matched_hours,omitempty"` // 其中由姓名回退匹配计入的部分（审计用）
}

// DailyApplication 某日按项目聚合的报名占用
type DailyApplication struct {
	ProgramID     string         `json:"program_id"`
	Lessons       []model.Lesson `json:"lessons"` // 当日课次
	MatchedByName bool           `json:"matched_by_name,omitempty"`
}
