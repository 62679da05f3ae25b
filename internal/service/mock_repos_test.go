package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/jamaicasolina/ClassSync/internal/model"
	"github.com/jamaicasolina/ClassSync/internal/repository"
)

// errUniqueViolation 模拟 PostgreSQL 唯一约束冲突
var errUniqueViolation = &pgconn.PgError{Code: "23505"}

// errInvalidUUID 模拟 PostgreSQL 对非法 uuid 文本的报错
var errInvalidUUID = &pgconn.PgError{Code: "22P02"}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return errUniqueViolation
		}
	}
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListStudents(_ context.Context, yearLevel int, section string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role != "student" && u.Role != "student_rep" {
			continue
		}
		if yearLevel > 0 && (u.YearLevel == nil || u.Section == nil || *u.YearLevel != yearLevel || *u.Section != section) {
			continue
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if yearLevel == 0 {
			if ya, yb := derefInt(a.YearLevel), derefInt(b.YearLevel); ya != yb {
				return ya < yb
			}
			if sa, sb := derefStr(a.Section), derefStr(b.Section); sa != sb {
				return sa < sb
			}
		} else if a.Role != b.Role {
			return a.Role > b.Role
		}
		return a.Surname < b.Surname
	})
	return result, nil
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms     map[string]*model.Room
	schedules *mockScheduleRepo
	locked    []string
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room)}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	for _, r := range m.rooms {
		if r.Building == room.Building && r.RoomNumber == room.RoomNumber {
			return errUniqueViolation
		}
	}
	if room.RoomID == "" {
		room.RoomID = "room-" + room.Building + "-" + room.RoomNumber
	}
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) LockByID(ctx context.Context, id string) (*model.Room, error) {
	m.locked = append(m.locked, id)
	return m.GetByID(ctx, id)
}

func (m *mockRoomRepo) List(_ context.Context, status string) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		if status != "" && r.Status != status {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Building != result[j].Building {
			return result[i].Building < result[j].Building
		}
		return result[i].RoomNumber < result[j].RoomNumber
	})
	return result, nil
}

func (m *mockRoomRepo) UpdateStatus(_ context.Context, id, status string) error {
	r, ok := m.rooms[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Status = status
	return nil
}

func (m *mockRoomRepo) ListOccupancy(ctx context.Context, day, at string) ([]model.RoomOccupancy, error) {
	rooms, _ := m.List(ctx, "")
	result := make([]model.RoomOccupancy, 0, len(rooms))
	for _, r := range rooms {
		row := model.RoomOccupancy{Room: r}
		if m.schedules != nil {
			for _, s := range m.schedules.entries {
				if s.IsCancelled || s.RoomID == nil || *s.RoomID != r.RoomID || s.DayOfWeek != day {
					continue
				}
				if s.StartTime <= at && s.EndTime > at {
					id, start, end := s.ScheduleID, s.StartTime, s.EndTime
					row.ScheduleID, row.StartTime, row.EndTime = &id, &start, &end
					if c, ok := m.schedules.courses.courses[s.CourseID]; ok {
						code, yl, sec := c.CourseCode, c.YearLevel, c.Section
						row.CourseCode, row.YearLevel, row.SectionName = &code, &yl, &sec
					}
				}
			}
		}
		result = append(result, row)
	}
	return result, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		course.CourseID = fmt.Sprintf("course-%d", len(m.courses)+1)
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) ListByProfessor(_ context.Context, professorID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.ProfessorID == professorID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseCode < result[j].CourseCode })
	return result, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments map[string]*model.Enrollment // key: course_id|student_id
	users       *mockUserRepo
	courses     *mockCourseRepo
}

func newMockEnrollmentRepo(users *mockUserRepo, courses *mockCourseRepo) *mockEnrollmentRepo {
	return &mockEnrollmentRepo{
		enrollments: make(map[string]*model.Enrollment),
		users:       users,
		courses:     courses,
	}
}

func enrollmentKey(courseID, studentID string) string { return courseID + "|" + studentID }

func (m *mockEnrollmentRepo) Create(_ context.Context, e *model.Enrollment) error {
	key := enrollmentKey(e.CourseID, e.StudentID)
	if _, ok := m.enrollments[key]; ok {
		return errUniqueViolation
	}
	m.enrollments[key] = e
	return nil
}

func (m *mockEnrollmentRepo) CreateIfAbsent(ctx context.Context, e *model.Enrollment) (bool, error) {
	if _, ok := m.enrollments[enrollmentKey(e.CourseID, e.StudentID)]; ok {
		return false, nil
	}
	return true, m.Create(ctx, e)
}

func (m *mockEnrollmentRepo) Delete(_ context.Context, courseID, studentID string) error {
	key := enrollmentKey(courseID, studentID)
	if _, ok := m.enrollments[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.enrollments, key)
	return nil
}

func (m *mockEnrollmentRepo) Exists(_ context.Context, courseID, studentID string) (bool, error) {
	_, ok := m.enrollments[enrollmentKey(courseID, studentID)]
	return ok, nil
}

func (m *mockEnrollmentRepo) CountByCourse(_ context.Context, courseID string) (int64, error) {
	var n int64
	for _, e := range m.enrollments {
		if e.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (m *mockEnrollmentRepo) ListStudentsByCourse(_ context.Context, courseID string) ([]model.EnrolledStudent, error) {
	var result []model.EnrolledStudent
	for _, e := range m.enrollments {
		if e.CourseID != courseID {
			continue
		}
		if u, ok := m.users.users[e.StudentID]; ok {
			result = append(result, model.EnrolledStudent{User: *u, EnrolledAt: e.EnrolledAt})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Role != result[j].Role {
			return result[i].Role > result[j].Role
		}
		return result[i].Surname < result[j].Surname
	})
	return result, nil
}

func (m *mockEnrollmentRepo) ListCoursesByStudent(_ context.Context, studentID string) ([]model.EnrolledCourse, error) {
	var result []model.EnrolledCourse
	for _, e := range m.enrollments {
		if e.StudentID != studentID {
			continue
		}
		c, ok := m.courses.courses[e.CourseID]
		if !ok {
			continue
		}
		row := model.EnrolledCourse{Course: *c, EnrolledAt: e.EnrolledAt}
		if u, ok := m.users.users[c.ProfessorID]; ok {
			name := u.DisplayName()
			row.ProfessorName = &name
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseCode < result[j].CourseCode })
	return result, nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	entries     map[string]*model.Schedule
	createErr   error // 非 nil 时 Create 直接返回，模拟存储层约束冲突
	courses     *mockCourseRepo
	rooms       *mockRoomRepo
	users       *mockUserRepo
	enrollments *mockEnrollmentRepo
}

func newMockScheduleRepo(courses *mockCourseRepo, rooms *mockRoomRepo, users *mockUserRepo, enrollments *mockEnrollmentRepo) *mockScheduleRepo {
	return &mockScheduleRepo{
		entries:     make(map[string]*model.Schedule),
		courses:     courses,
		rooms:       rooms,
		users:       users,
		enrollments: enrollments,
	}
}

func (m *mockScheduleRepo) Create(_ context.Context, s *model.Schedule) error {
	if m.createErr != nil {
		return m.createErr
	}
	if s.ScheduleID == "" {
		s.ScheduleID = uuid.NewString()
	}
	now := time.Now()
	s.CreatedAt, s.UpdatedAt = now, now
	stored := *s
	m.entries[s.ScheduleID] = &stored
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if s, ok := m.entries[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) detail(s *model.Schedule) model.ScheduleDetail {
	d := model.ScheduleDetail{Schedule: *s}
	if c, ok := m.courses.courses[s.CourseID]; ok {
		d.CourseCode, d.CourseName = c.CourseCode, c.CourseName
		d.ProfessorID, d.YearLevel, d.Section = c.ProfessorID, c.YearLevel, c.Section
		if u, ok := m.users.users[c.ProfessorID]; ok {
			name := u.DisplayName()
			d.ProfessorName = &name
		}
	}
	if s.RoomID != nil {
		if r, ok := m.rooms.rooms[*s.RoomID]; ok {
			num, bld := r.RoomNumber, r.Building
			d.RoomNumber, d.Building = &num, &bld
		}
	}
	return d
}

func (m *mockScheduleRepo) GetDetail(_ context.Context, id string) (*model.ScheduleDetail, error) {
	s, ok := m.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	d := m.detail(s)
	return &d, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, s *model.Schedule) error {
	if _, ok := m.entries[s.ScheduleID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.UpdatedAt = time.Now()
	stored := *s
	m.entries[s.ScheduleID] = &stored
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.entries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.entries, id)
	return nil
}

// HasConflict 与 uuid 列比较时，非法 exclude_id 同 PostgreSQL 一样报 22P02
func (m *mockScheduleRepo) HasConflict(_ context.Context, roomID, day, start, end, excludeID string) (bool, error) {
	if excludeID != "" {
		if _, err := uuid.Parse(excludeID); err != nil {
			return false, errInvalidUUID
		}
	}
	for _, s := range m.entries {
		if s.IsCancelled || s.RoomID == nil || *s.RoomID != roomID || s.DayOfWeek != day {
			continue
		}
		if excludeID != "" && s.ScheduleID == excludeID {
			continue
		}
		if Overlaps(s.StartTime, s.EndTime, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockScheduleRepo) list(keep func(s *model.Schedule, c *model.Course) bool) []model.ScheduleDetail {
	var result []model.ScheduleDetail
	for _, s := range m.entries {
		c := m.courses.courses[s.CourseID]
		if c == nil || !keep(s, c) {
			continue
		}
		result = append(result, m.detail(s))
	}
	sort.Slice(result, func(i, j int) bool {
		di, dj := WeekdayIndex(result[i].DayOfWeek), WeekdayIndex(result[j].DayOfWeek)
		if di != dj {
			return di < dj
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result
}

func (m *mockScheduleRepo) ListByCourse(_ context.Context, courseID string) ([]model.ScheduleDetail, error) {
	return m.list(func(s *model.Schedule, _ *model.Course) bool { return s.CourseID == courseID }), nil
}

func (m *mockScheduleRepo) ListByProfessor(_ context.Context, professorID string) ([]model.ScheduleDetail, error) {
	return m.list(func(_ *model.Schedule, c *model.Course) bool { return c.ProfessorID == professorID }), nil
}

func (m *mockScheduleRepo) ListBySection(_ context.Context, yearLevel int, section string) ([]model.ScheduleDetail, error) {
	return m.list(func(_ *model.Schedule, c *model.Course) bool {
		return c.YearLevel == yearLevel && c.Section == section
	}), nil
}

func (m *mockScheduleRepo) ListByStudent(_ context.Context, studentID string) ([]model.ScheduleDetail, error) {
	return m.list(func(s *model.Schedule, _ *model.Course) bool {
		_, ok := m.enrollments.enrollments[enrollmentKey(s.CourseID, studentID)]
		return ok
	}), nil
}

// ── Mock ScheduleChangeRepository ──

type mockScheduleChangeRepo struct {
	changes []model.ScheduleChange
	users   *mockUserRepo
}

func newMockScheduleChangeRepo(users *mockUserRepo) *mockScheduleChangeRepo {
	return &mockScheduleChangeRepo{users: users}
}

func (m *mockScheduleChangeRepo) Create(_ context.Context, c *model.ScheduleChange) error {
	if c.ChangeID == "" {
		c.ChangeID = fmt.Sprintf("chg-%d", len(m.changes)+1)
	}
	m.changes = append(m.changes, *c)
	return nil
}

// ListBySchedule 按写入顺序倒序，即最新在前
func (m *mockScheduleChangeRepo) ListBySchedule(_ context.Context, scheduleID string) ([]model.ScheduleChangeDetail, error) {
	var result []model.ScheduleChangeDetail
	for i := len(m.changes) - 1; i >= 0; i-- {
		c := m.changes[i]
		if c.ScheduleID != scheduleID {
			continue
		}
		d := model.ScheduleChangeDetail{ScheduleChange: c}
		if u, ok := m.users.users[c.ChangedBy]; ok {
			name := u.DisplayName()
			d.ChangedByName = &name
		}
		result = append(result, d)
	}
	return result, nil
}

func (m *mockScheduleChangeRepo) forSchedule(scheduleID string) []model.ScheduleChange {
	var result []model.ScheduleChange
	for _, c := range m.changes {
		if c.ScheduleID == scheduleID {
			result = append(result, c)
		}
	}
	return result
}

// ── Mock ScheduleArchiveRepository ──

type mockScheduleArchiveRepo struct {
	archives map[string]*model.ScheduleArchive // key: schedule_id
}

func newMockScheduleArchiveRepo() *mockScheduleArchiveRepo {
	return &mockScheduleArchiveRepo{archives: make(map[string]*model.ScheduleArchive)}
}

func (m *mockScheduleArchiveRepo) Create(_ context.Context, a *model.ScheduleArchive) error {
	if _, ok := m.archives[a.ScheduleID]; ok {
		return errUniqueViolation
	}
	if a.ArchiveID == "" {
		a.ArchiveID = "arc-" + a.ScheduleID
	}
	m.archives[a.ScheduleID] = a
	return nil
}

func (m *mockScheduleArchiveRepo) GetBySchedule(_ context.Context, scheduleID string) (*model.ScheduleArchive, error) {
	if a, ok := m.archives[scheduleID]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── 聚合 ──

// testRepos 所有 mock repo，便于 seed 与断言
type testRepos struct {
	users       *mockUserRepo
	rooms       *mockRoomRepo
	courses     *mockCourseRepo
	enrollments *mockEnrollmentRepo
	schedules   *mockScheduleRepo
	changes     *mockScheduleChangeRepo
	archives    *mockScheduleArchiveRepo
}

func newTestRepos() *testRepos {
	users := newMockUserRepo()
	rooms := newMockRoomRepo()
	courses := newMockCourseRepo()
	enrollments := newMockEnrollmentRepo(users, courses)
	schedules := newMockScheduleRepo(courses, rooms, users, enrollments)
	rooms.schedules = schedules
	return &testRepos{
		users:       users,
		rooms:       rooms,
		courses:     courses,
		enrollments: enrollments,
		schedules:   schedules,
		changes:     newMockScheduleChangeRepo(users),
		archives:    newMockScheduleArchiveRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:            r.users,
		Room:            r.rooms,
		Course:          r.courses,
		Enrollment:      r.enrollments,
		Schedule:        r.schedules,
		ScheduleChange:  r.changes,
		ScheduleArchive: r.archives,
	}
}
