package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jamaicasolina/ClassSync/config"
	"github.com/jamaicasolina/ClassSync/internal/access"
	"github.com/jamaicasolina/ClassSync/internal/dto"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmpty        = errors.New("no schedules to export")
	ErrExportGenerateFail = errors.New("failed to generate export file")
)

const defaultTermWeeks = 18

// ExportService 课表导出业务接口
//
//   - Excel：周课表，行为时段、列为周一至周六
//   - iCalendar：调用者本人课表，每条有效课时一个每周重复事件
type ExportService interface {
	// ExportTimetable 按年级班级导出；未指定时导出调用者本人课表
	ExportTimetable(ctx context.Context, q *dto.SectionQuery, caller access.Caller) (*bytes.Buffer, string, error)
	// ExportCalendar 导出调用者本人课表为 .ics
	ExportCalendar(ctx context.Context, caller access.Caller, now time.Time) ([]byte, string, error)
}

type exportService struct {
	schedules ScheduleService
	cfg       config.ExportConfig
	loc       *time.Location
	logger    *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(schedules ScheduleService, cfg config.ExportConfig, loc *time.Location, logger *zap.Logger) ExportService {
	if loc == nil {
		loc = time.UTC
	}
	return &exportService{schedules: schedules, cfg: cfg, loc: loc, logger: logger}
}

// ownSchedules 教授取其授课课时，学生取其选课课时
func (s *exportService) ownSchedules(ctx context.Context, caller access.Caller) ([]dto.ScheduleResponse, error) {
	switch {
	case caller.Role == access.RoleProfessor:
		return s.schedules.ListByProfessor(ctx, caller.UserID)
	case caller.Role.IsStudent():
		return s.schedules.ListByStudent(ctx, caller.UserID)
	}
	return nil, ErrSectionRequired
}

// ═══════════════════════════════════════════════════════════
// ExportTimetable 导出周课表 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportTimetable(ctx context.Context, q *dto.SectionQuery, caller access.Caller) (*bytes.Buffer, string, error) {
	var (
		entries []dto.ScheduleResponse
		title   string
		err     error
	)

	ownView := q.YearLevel <= 0 && strings.TrimSpace(q.Section) == "" &&
		(caller.Role == access.RoleProfessor || caller.Role.IsStudent())
	if ownView {
		entries, err = s.ownSchedules(ctx, caller)
		title = "My Timetable"
	} else {
		entries, err = s.schedules.ListBySection(ctx, q, caller)
		title = "Timetable"
		if len(entries) > 0 {
			title = "Timetable " + entries[0].Section
		}
	}
	if err != nil {
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrExportEmpty
	}

	buf, err := buildTimetableXLSX(title, entries)
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := strings.ToLower(strings.ReplaceAll(title, " ", "_")) + ".xlsx"
	return buf, filename, nil
}

// buildTimetableXLSX 行为去重后的 (开始, 结束) 时段，列为周一至周六
func buildTimetableXLSX(title string, entries []dto.ScheduleResponse) (*bytes.Buffer, error) {
	type slot struct{ start, end string }

	cells := make(map[string][]string) // "start|end|day" → 单元格行
	seen := make(map[slot]bool)
	var slots []slot
	for _, e := range entries {
		sl := slot{start: e.StartTime, end: e.EndTime}
		if !seen[sl] {
			seen[sl] = true
			slots = append(slots, sl)
		}
		key := sl.start + "|" + sl.end + "|" + e.DayOfWeek
		cells[key] = append(cells[key], timetableCellText(e))
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].start != slots[j].start {
			return slots[i].start < slots[j].start
		}
		return slots[i].end < slots[j].end
	})

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Timetable"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	lastCol := colName(len(Weekdays))
	f.SetColWidth(sheet, "A", "A", 16)
	f.SetColWidth(sheet, "B", lastCol, 26)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	bodyStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})

	// 标题行
	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheet, "A1", cell(lastCol, 1), headerStyle)

	// 表头
	f.SetCellValue(sheet, cell("A", 2), "Time")
	for i, day := range Weekdays {
		f.SetCellValue(sheet, cell(colName(i+1), 2), strings.ToUpper(day[:1])+day[1:])
	}
	f.SetCellStyle(sheet, cell("A", 2), cell(lastCol, 2), headerStyle)

	// 数据行
	row := 3
	for _, sl := range slots {
		f.SetCellValue(sheet, cell("A", row), shortClock(sl.start)+" - "+shortClock(sl.end))
		for i, day := range Weekdays {
			if lines, ok := cells[sl.start+"|"+sl.end+"|"+day]; ok {
				f.SetCellValue(sheet, cell(colName(i+1), row), strings.Join(lines, "\n"))
			}
		}
		row++
	}
	if row > 3 {
		f.SetCellStyle(sheet, cell("A", 3), cell(lastCol, row-1), bodyStyle)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func timetableCellText(e dto.ScheduleResponse) string {
	text := e.CourseCode
	if text == "" {
		text = e.CourseID
	}
	if room := roomLabel(e); room != "" {
		text += " (" + room + ")"
	}
	if e.IsCancelled {
		text += " [Cancelled]"
	}
	return text
}

// ═══════════════════════════════════════════════════════════
// ExportCalendar 导出 iCalendar 周期事件
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportCalendar(ctx context.Context, caller access.Caller, now time.Time) ([]byte, string, error) {
	if !caller.Can(access.ScheduleCalendar) {
		return nil, "", ErrForbiddenAction
	}

	entries, err := s.ownSchedules(ctx, caller)
	if err != nil {
		return nil, "", err
	}

	weeks := s.cfg.TermWeeks
	if weeks <= 0 {
		weeks = defaultTermWeeks
	}
	termStart := s.termStart(now)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//ClassSync//Weekly Schedule//EN")
	cal.SetXWRCalName("ClassSync")

	for _, e := range entries {
		// 已取消的课时不进入日历
		if e.IsCancelled {
			continue
		}
		first, ok := firstOccurrence(termStart, e.DayOfWeek)
		if !ok {
			continue
		}
		start, err := atClock(first, e.StartTime, s.loc)
		if err != nil {
			continue
		}
		end, err := atClock(first, e.EndTime, s.loc)
		if err != nil {
			continue
		}

		ev := cal.AddEvent(e.ScheduleID + "@classsync")
		ev.SetDtStampTime(now)
		ev.SetSummary(strings.TrimSpace(e.CourseCode + " " + e.CourseName))
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		if room := roomLabel(e); room != "" {
			ev.SetLocation(room)
		}
		if e.ProfessorName != nil {
			ev.SetDescription("Section " + e.Section + ", " + *e.ProfessorName)
		}
		ev.AddProperty(ics.ComponentPropertyRrule, fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", weeks))
	}

	return []byte(cal.Serialize()), "classsync.ics", nil
}

// termStart 学期首日；未配置时取 now 所在周的周一
func (s *exportService) termStart(now time.Time) time.Time {
	if s.cfg.TermStart != "" {
		if t, err := time.ParseInLocation("2006-01-02", s.cfg.TermStart, s.loc); err == nil {
			return t
		}
	}
	local := now.In(s.loc)
	offset := (int(local.Weekday()) + 6) % 7
	monday := local.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, s.loc)
}

// firstOccurrence from 当天或之后第一个指定星期
func firstOccurrence(from time.Time, day string) (time.Time, bool) {
	idx := WeekdayIndex(day)
	if idx < 0 {
		return time.Time{}, false
	}
	target := time.Weekday(idx + 1) // Weekdays 从周一开始
	delta := (int(target) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, delta), true
}

func atClock(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	normalized, err := NormalizeClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse("15:04:05", normalized)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
}

// ── 辅助函数 ──

func roomLabel(e dto.ScheduleResponse) string {
	var parts []string
	if e.Building != nil && *e.Building != "" {
		parts = append(parts, *e.Building)
	}
	if e.RoomNumber != nil && *e.RoomNumber != "" {
		parts = append(parts, *e.RoomNumber)
	}
	return strings.Join(parts, " ")
}

// shortClock 08:00:00 → 08:00
func shortClock(clock string) string {
	if len(clock) == len("15:04:05") {
		return clock[:5]
	}
	return clock
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
