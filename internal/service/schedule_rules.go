package service

import (
	"strings"
	"time"

	"github.com/jamaicasolina/ClassSync/internal/dto"
)

// Weekdays 可排课的星期（周日不排课），顺序即课表展示顺序
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// clockLayouts 可接受的时间格式，统一归一化为 15:04:05
var clockLayouts = []string{"15:04:05", "15:04"}

// NormalizeWeekday 星期名转小写并校验
func NormalizeWeekday(day string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(day))
	for _, w := range Weekdays {
		if d == w {
			return d, nil
		}
	}
	return "", ErrInvalidWeekday
}

// WeekdayIndex 星期在 Weekdays 中的下标，未知星期返回 -1
func WeekdayIndex(day string) int {
	for i, w := range Weekdays {
		if w == day {
			return i
		}
	}
	return -1
}

// NormalizeClock 解析 H:MM / HH:MM / HH:MM:SS 并输出 HH:MM:SS
func NormalizeClock(value string) (string, error) {
	v := strings.TrimSpace(value)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", ErrInvalidTime
}

// Overlaps 半开区间 [aStart, aEnd) 与 [bStart, bEnd) 是否重叠
// 参数须为 NormalizeClock 的输出，定长格式下字典序即时间序
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// normalizeSlot 归一化并校验星期与起止时间
func normalizeSlot(slot dto.ScheduleSlot) (day, start, end string, err error) {
	if day, err = NormalizeWeekday(slot.DayOfWeek); err != nil {
		return "", "", "", err
	}
	if start, err = NormalizeClock(slot.StartTime); err != nil {
		return "", "", "", err
	}
	if end, err = NormalizeClock(slot.EndTime); err != nil {
		return "", "", "", err
	}
	if start >= end {
		return "", "", "", ErrInvalidTimeRange
	}
	return day, start, end, nil
}

// normalizeRoom 空教室 ID 视为未分配
func normalizeRoom(roomID string) *string {
	r := strings.TrimSpace(roomID)
	if r == "" {
		return nil
	}
	return &r
}
