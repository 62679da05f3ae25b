package model

// 教室状态
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

// Room 教室表 — 对应 rooms
type Room struct {
	RoomID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	RoomNumber string `gorm:"type:varchar(30);not null"                      json:"room_number"`
	Building   string `gorm:"type:varchar(100);not null"                     json:"building"`
	Capacity   int    `gorm:"not null"                                       json:"capacity"`
	Status     string `gorm:"type:varchar(20);not null;default:'available'"  json:"status"`
	BaseModel
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }

// IsValidRoomStatus 校验教室状态取值
func IsValidRoomStatus(status string) bool {
	switch status {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}
