package catalog

type CreateStudioRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
}

type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	HourlyPrice int64  `json:"hourly_price" binding:"required,gt=0"`
	DailyPrice  int64  `json:"daily_price" binding:"gte=0"`
}
