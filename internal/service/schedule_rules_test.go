package service

import (
	"errors"
	"testing"

	"github.com/jamaicasolina/ClassSync/internal/dto"
)

func TestNormalizeWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  error
	}{
		{"Monday", "monday", nil},
		{" SATURDAY ", "saturday", nil},
		{"sunday", "", ErrInvalidWeekday},
		{"mon", "", ErrInvalidWeekday},
		{"", "", ErrInvalidWeekday},
	}
	for _, tt := range tests {
		got, err := NormalizeWeekday(tt.in)
		if !errors.Is(err, tt.err) || got != tt.want {
			t.Errorf("NormalizeWeekday(%q) = %q, %v；期望 %q, %v", tt.in, got, err, tt.want, tt.err)
		}
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"09:00", "09:00:00", true},
		{"9:05", "09:05:00", true},
		{"13:30:15", "13:30:15", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"noon", "", false},
	}
	for _, tt := range tests {
		got, err := NormalizeClock(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("NormalizeClock(%q) = %q, %v；期望 %q", tt.in, got, err, tt.want)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidTime) {
			t.Errorf("NormalizeClock(%q) 期望 ErrInvalidTime，实际 %v", tt.in, err)
		}
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"partial", "09:00:00", "10:00:00", "09:30:00", "10:30:00", true},
		{"contained", "09:00:00", "12:00:00", "10:00:00", "11:00:00", true},
		{"identical", "09:00:00", "10:00:00", "09:00:00", "10:00:00", true},
		{"abutting after", "09:00:00", "10:00:00", "10:00:00", "11:00:00", false},
		{"abutting before", "10:00:00", "11:00:00", "09:00:00", "10:00:00", false},
		{"disjoint", "08:00:00", "09:00:00", "13:00:00", "14:00:00", false},
	}
	for _, tt := range tests {
		if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
			t.Errorf("%s: Overlaps = %v，期望 %v", tt.name, got, tt.want)
		}
		// 对称
		if got := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); got != tt.want {
			t.Errorf("%s: 交换参数后 Overlaps = %v，期望 %v", tt.name, got, tt.want)
		}
	}
}

func TestWeekdayIndex(t *testing.T) {
	if WeekdayIndex("monday") != 0 || WeekdayIndex("saturday") != 5 {
		t.Error("星期下标应从周一开始")
	}
	if WeekdayIndex("sunday") != -1 {
		t.Error("周日应返回 -1")
	}
}

func TestNormalizeSlot(t *testing.T) {
	day, start, end, err := normalizeSlot(dto.ScheduleSlot{DayOfWeek: "Friday", StartTime: "7:30", EndTime: "09:00:00"})
	if err != nil || day != "friday" || start != "07:30:00" || end != "09:00:00" {
		t.Errorf("normalizeSlot = %s %s %s %v", day, start, end, err)
	}
	if _, _, _, err := normalizeSlot(dto.ScheduleSlot{DayOfWeek: "friday", StartTime: "09:00", EndTime: "09:00:00"}); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("相同起止时间期望 ErrInvalidTimeRange，实际 %v", err)
	}
	if r := normalizeRoom("   "); r != nil {
		t.Error("空白教室应视为未分配")
	}
}
