package dto

// ── 教室模块 DTO ──

// CreateRoomRequest 创建教室请求
type CreateRoomRequest struct {
	RoomNumber string `json:"room_number" binding:"required,max=30"`
	Building   string `json:"building"    binding:"required,max=100"`
	Capacity   int    `json:"capacity"    binding:"required,min=1"`
	Status     string `json:"status"      binding:"omitempty,oneof=available occupied maintenance"`
}

// UpdateRoomStatusRequest 修改教室状态请求
type UpdateRoomStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available occupied maintenance"`
}

// RoomListRequest 教室列表查询参数
type RoomListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=available occupied maintenance"`
}

// OccupancyRequest 占用视图查询参数；缺省为当前时刻
type OccupancyRequest struct {
	DayOfWeek string `form:"day_of_week" binding:"omitempty,weekday"`
	Time      string `form:"time"        binding:"omitempty,clock"`
}

// RoomResponse 教室信息响应
type RoomResponse struct {
	ID         string `json:"room_id"`
	RoomNumber string `json:"room_number"`
	Building   string `json:"building"`
	Capacity   int    `json:"capacity"`
	Status     string `json:"status"`
}

// OccupantResponse 占用教室的课时
type OccupantResponse struct {
	ScheduleID string `json:"schedule_id"`
	CourseCode string `json:"course_code"`
	Professor  string `json:"professor"`
	Section    string `json:"section"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// RoomOccupancyResponse 教室占用视图
type RoomOccupancyResponse struct {
	RoomResponse
	Current *OccupantResponse `json:"current"`
}
