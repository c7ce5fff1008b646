package model

import "testing"

func TestLessonDurationHours(t *testing.T) {
	tests := []struct {
		name      string
		start, end string
		want      float64
		wantErr   bool
	}{
		{"整点两小时", "09:00", "11:00", 2, false},
		{"小数小时", "14:00", "16:30", 2.5, false},
		{"四十五分钟", "10:15", "11:00", 0.75, false},
		{"起止相同", "09:00", "09:00", 0, true},
		{"终点早于起点", "11:00", "09:00", 0, true},
		{"时间格式非法", "9点", "11:00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Lesson{Date: "2025-06-10", StartTime: tt.start, EndTime: tt.end}
			got, err := l.DurationHours()
			if tt.wantErr {
				if err == nil {
					t.Fatal("应返回错误")
				}
				return
			}
			if err != nil {
				t.Fatalf("DurationHours 应成功: %v", err)
			}
			if got != tt.want {
				t.Errorf("期望 %v 小时，实际=%v", tt.want, got)
			}
		})
	}
}

func TestPeriodOfDate(t *testing.T) {
	got, err := PeriodOfDate("2025-06-10")
	if err != nil {
		t.Fatalf("PeriodOfDate 应成功: %v", err)
	}
	if got != "2025-06" {
		t.Errorf("期望 2025-06，实际=%s", got)
	}

	if _, err := PeriodOfDate("2025/06/10"); err == nil {
		t.Error("日期格式非法应返回错误")
	}
	if _, err := PeriodOfDate(""); err == nil {
		t.Error("空日期应返回错误")
	}
}

func TestInstructorRefMatches(t *testing.T) {
	target := InstructorRef{InstructorID: "inst-1", Name: "王讲师"}

	tests := []struct {
		name        string
		ref         InstructorRef
		wantMatched bool
		wantByName  bool
	}{
		{"ID 一致", InstructorRef{InstructorID: "inst-1", Name: "别名"}, true, false},
		{"ID 不一致", InstructorRef{InstructorID: "inst-2", Name: "王讲师"}, false, false},
		{"缺 ID 姓名回退命中", InstructorRef{Name: "王讲师"}, true, true},
		{"缺 ID 姓名不同", InstructorRef{Name: "李讲师"}, false, false},
		{"完全空引用", InstructorRef{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, byName := tt.ref.Matches(target)
			if matched != tt.wantMatched || byName != tt.wantByName {
				t.Errorf("Matches = (%v,%v)，期望 (%v,%v)", matched, byName, tt.wantMatched, tt.wantByName)
			}
		})
	}
}

func TestSessionNextDeadline(t *testing.T) {
	publish, _ := ParseDate("2025-06-01")
	closeAt, _ := ParseDate("2025-06-15")

	s := &Session{Status: SessionScheduled, PublishAt: &publish, CloseAt: &closeAt}
	if d := s.NextDeadline(); d == nil || !d.Equal(publish) {
		t.Errorf("scheduled 的下一时点应为发布时间，实际=%v", d)
	}

	s.Status = SessionPublished
	if d := s.NextDeadline(); d == nil || !d.Equal(closeAt) {
		t.Errorf("published 的下一时点应为截止时间，实际=%v", d)
	}

	s.Status = SessionClosed
	if d := s.NextDeadline(); d != nil {
		t.Errorf("终态不应有下一时点，实际=%v", d)
	}
}

func TestSessionStatusNext(t *testing.T) {
	if SessionScheduled.Next() != SessionPublished {
		t.Error("scheduled 的下一状态应为 published")
	}
	if SessionPublished.Next() != SessionClosed {
		t.Error("published 的下一状态应为 closed")
	}
	if SessionClosed.Next() != "" {
		t.Error("closed 为终态")
	}
}
