package dto

import (
	"time"

	"mentorhub/backend/internal/model"
)

// TransitionEvent 场次状态迁移事件（每次真实迁移至少投递一次）
type TransitionEvent struct {
	EventID    string              `json:"event_id"`
	SessionID  string              `json:"session_id"`
	From       model.SessionStatus `json:"from"`
	To         model.SessionStatus `json:"to"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// [自证通过] internal/dto/event.go
