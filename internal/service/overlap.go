package service

import "mentorhub/backend/internal/model"

// hasLessonOverlap 检查两个课次时段是否重叠。
// 不同日期永不重叠；同日按半开区间判断，端点相接（endA == startB）不算重叠。
// 对称：hasLessonOverlap(a,b) == hasLessonOverlap(b,a)。
func hasLessonOverlap(dateA, startA, endA, dateB, startB, endB string) bool {
	// 检查日期
	if dateA != dateB {
		return false
	}
	// 检查时间段重叠
	return startA < endB && startB < endA
}

// lessonsOverlap 课次粒度的重叠判断
func lessonsOverlap(a, b *model.Lesson) bool {
	return hasLessonOverlap(a.Date, a.StartTime, a.EndTime, b.Date, b.StartTime, b.EndTime)
}
