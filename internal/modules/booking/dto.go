package booking

import "time"

type CreateBookingRequest struct {
	RoomID       int64     `json:"room_id" binding:"required"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
	EquipmentIDs []int64   `json:"equipment_ids"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending accepted rejected completed cancelled"`
}
