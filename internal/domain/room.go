package domain

import "time"

// Room rates are whole currency units. HourlyPrice is the billing basis for
// bookings; DailyPrice is informational for long rentals.
type Room struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	StudioID    int64     `json:"studio_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	HourlyPrice int64     `json:"hourly_price" gorm:"not null"`
	DailyPrice  int64     `json:"daily_price"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Room) TableName() string { return "rooms" }
