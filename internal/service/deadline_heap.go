package service

import "time"

// deadlineEntry 待触发的状态迁移截止点。
// gen 为会话的调度代次：重新调度会递增代次，堆中旧代次条目弹出时直接丢弃（惰性失效）。
type deadlineEntry struct {
	sessionID string
	deadline  time.Time
	gen       uint64
}

// deadlineHeap 按截止时间排序的最小堆（container/heap）
type deadlineHeap []deadlineEntry

func (h deadlineHeap) Len() int            { return len(h) }
func (h deadlineHeap) Less(i, j int) bool  { return h[i].deadline.Before(h[j].deadline) }
func (h deadlineHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *deadlineHeap) Push(x interface{}) { *h = append(*h, x.(deadlineEntry)) }

func (h *deadlineHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
