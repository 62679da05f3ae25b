package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jamaicasolina/ClassSync/internal/dto"
	"github.com/jamaicasolina/ClassSync/internal/model"
)

func setupTestRoomService() (RoomService, ScheduleService, *testRepos) {
	repos := newTestRepos()
	seedScheduleData(repos)
	repo := repos.toRepository()
	return NewRoomService(repo, time.UTC, zap.NewNop()), NewScheduleService(repo, zap.NewNop()), repos
}

// ── Create / List ──

func TestRoomService_Create(t *testing.T) {
	svc, _, _ := setupTestRoomService()
	ctx := context.Background()

	resp, err := svc.Create(ctx, &dto.CreateRoomRequest{RoomNumber: " 101 ", Building: "Annex", Capacity: 30})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Status != model.RoomStatusAvailable || resp.RoomNumber != "101" {
		t.Errorf("默认状态应为 available 且去除空白，实际=%+v", resp)
	}

	if _, err := svc.Create(ctx, &dto.CreateRoomRequest{RoomNumber: "101", Building: "Annex", Capacity: 30}); !errors.Is(err, ErrRoomDuplicate) {
		t.Errorf("期望 ErrRoomDuplicate，实际: %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateRoomRequest{RoomNumber: "102", Building: "Annex", Capacity: 30, Status: "closed"}); !errors.Is(err, ErrInvalidRoomStatus) {
		t.Errorf("期望 ErrInvalidRoomStatus，实际: %v", err)
	}
}

func TestRoomService_ListFilterAndOrder(t *testing.T) {
	svc, _, repos := setupTestRoomService()
	ctx := context.Background()
	repos.rooms.rooms["room-a"] = &model.Room{RoomID: "room-a", RoomNumber: "001", Building: "Annex", Capacity: 20, Status: model.RoomStatusMaintenance}

	all, err := svc.List(ctx, &dto.RoomListRequest{})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(all) != 3 || all[0].Building != "Annex" {
		t.Errorf("应按楼栋、房号排序，实际=%+v", all)
	}

	maint, _ := svc.List(ctx, &dto.RoomListRequest{Status: model.RoomStatusMaintenance})
	if len(maint) != 1 || maint[0].ID != "room-a" {
		t.Errorf("状态过滤不符，实际=%+v", maint)
	}
}

func TestRoomService_UpdateStatus(t *testing.T) {
	svc, _, repos := setupTestRoomService()
	ctx := context.Background()

	if err := svc.UpdateStatus(ctx, "room-5", &dto.UpdateRoomStatusRequest{Status: model.RoomStatusMaintenance}); err != nil {
		t.Fatalf("UpdateStatus 应成功: %v", err)
	}
	if repos.rooms.rooms["room-5"].Status != model.RoomStatusMaintenance {
		t.Error("状态未更新")
	}
	if err := svc.UpdateStatus(ctx, "nope", &dto.UpdateRoomStatusRequest{Status: model.RoomStatusAvailable}); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("期望 ErrRoomNotFound，实际: %v", err)
	}
	if err := svc.UpdateStatus(ctx, "room-5", &dto.UpdateRoomStatusRequest{Status: "gone"}); !errors.Is(err, ErrInvalidRoomStatus) {
		t.Errorf("期望 ErrInvalidRoomStatus，实际: %v", err)
	}
}

// ── Occupancy ──

func TestRoomService_Occupancy_ExcludesCancelled(t *testing.T) {
	svc, schedules, _ := setupTestRoomService()
	ctx := context.Background()

	x := mustCreate(t, schedules, createReq("course-10", "room-5", "monday", "09:00", "10:00"))
	mustCreate(t, schedules, createReq("course-11", "room-6", "monday", "09:00", "10:00"))

	rows, err := svc.Occupancy(ctx, &dto.OccupancyRequest{DayOfWeek: "Monday", Time: "09:30"}, time.Now())
	if err != nil {
		t.Fatalf("Occupancy 失败: %v", err)
	}
	occupied := 0
	for _, r := range rows {
		if r.Current != nil {
			occupied++
		}
	}
	if occupied != 2 {
		t.Fatalf("期望 2 间教室被占用，实际=%d", occupied)
	}

	if err := schedules.Cancel(ctx, &dto.CancelScheduleRequest{ID: x.ScheduleID, Reason: "holiday"}, profCaller); err != nil {
		t.Fatalf("Cancel 失败: %v", err)
	}
	rows, _ = svc.Occupancy(ctx, &dto.OccupancyRequest{DayOfWeek: "monday", Time: "09:30"}, time.Now())
	for _, r := range rows {
		if r.ID == "room-5" && r.Current != nil {
			t.Error("已取消的课时不应出现在占用视图")
		}
		if r.ID == "room-6" {
			if r.Current == nil || r.Current.CourseCode != "CS102" || r.Current.Section != "3-A" {
				t.Errorf("room-6 占用信息不符: %+v", r.Current)
			}
		}
	}
}

func TestRoomService_Occupancy_DefaultsToNow(t *testing.T) {
	svc, schedules, _ := setupTestRoomService()
	mustCreate(t, schedules, createReq("course-10", "room-5", "monday", "09:00", "10:00"))

	// 2026-10-19 为周一
	now := time.Date(2026, 10, 19, 9, 15, 0, 0, time.UTC)
	rows, err := svc.Occupancy(context.Background(), &dto.OccupancyRequest{}, now)
	if err != nil {
		t.Fatalf("Occupancy 失败: %v", err)
	}
	for _, r := range rows {
		if r.ID == "room-5" && (r.Current == nil || r.Current.StartTime != "09:00:00") {
			t.Errorf("缺省时刻应取 now，实际: %+v", r.Current)
		}
	}

	// 结束时刻不再占用
	rows, _ = svc.Occupancy(context.Background(), &dto.OccupancyRequest{Time: "10:00"}, now)
	for _, r := range rows {
		if r.Current != nil {
			t.Errorf("10:00 时教室应空闲，实际: %+v", r)
		}
	}
}

func TestRoomService_Occupancy_InvalidInput(t *testing.T) {
	svc, _, _ := setupTestRoomService()
	ctx := context.Background()

	if _, err := svc.Occupancy(ctx, &dto.OccupancyRequest{DayOfWeek: "sunday"}, time.Now()); !errors.Is(err, ErrInvalidWeekday) {
		t.Errorf("期望 ErrInvalidWeekday，实际: %v", err)
	}
	if _, err := svc.Occupancy(ctx, &dto.OccupancyRequest{Time: "noon"}, time.Now()); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("期望 ErrInvalidTime，实际: %v", err)
	}
}
