package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jamaicasolina/ClassSync/internal/dto"
	"github.com/jamaicasolina/ClassSync/internal/service"
	"github.com/jamaicasolina/ClassSync/pkg/response"
)

// RoomHandler 教室模块 HTTP 处理器
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler 创建 RoomHandler
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// List 教室列表
// GET /api/v1/rooms?status=available
func (h *RoomHandler) List(c *gin.Context) {
	var req dto.RoomListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, bindErrorMessage(err))
		return
	}

	rooms, err := h.roomSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, "", gin.H{"rooms": rooms})
}

// Occupancy 各教室在指定时刻的占用情况，缺省为当前时刻
// GET /api/v1/rooms/occupancy?day_of_week=monday&time=10:00
func (h *RoomHandler) Occupancy(c *gin.Context) {
	var req dto.OccupancyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, bindErrorMessage(err))
		return
	}

	rooms, err := h.roomSvc.Occupancy(c.Request.Context(), &req, time.Now())
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, "", gin.H{"rooms": rooms})
}

// Create 新建教室
// POST /api/v1/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, bindErrorMessage(err))
		return
	}

	room, err := h.roomSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.Created(c, "Room created successfully", gin.H{"room": room})
}

// UpdateStatus 修改教室状态
// PUT /api/v1/rooms/:id/status
func (h *RoomHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, bindErrorMessage(err))
		return
	}

	if err := h.roomSvc.UpdateStatus(c.Request.Context(), c.Param("id"), &req); err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, "Room status updated successfully", nil)
}

func (h *RoomHandler) handleRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRoomStatus):
		response.BadRequest(c, 14002, err.Error())
	case errors.Is(err, service.ErrInvalidWeekday):
		response.BadRequest(c, 14003, err.Error())
	case errors.Is(err, service.ErrInvalidTime):
		response.BadRequest(c, 14004, err.Error())
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 14101, "Room not found")
	case errors.Is(err, service.ErrRoomDuplicate):
		response.Conflict(c, 14201, "Room already exists in this building")
	default:
		response.InternalError(c)
	}
}
