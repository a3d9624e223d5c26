package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingRejected  BookingStatus = "rejected"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// PaymentStatus is shared by bookings and payment records.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Booking rows are append-only history: they change status but are never
// deleted. StudioID is denormalized from the room for owner lookups.
type Booking struct {
	ID             int64         `json:"id" gorm:"primaryKey"`
	RoomID         int64         `json:"room_id" gorm:"index;not null"`
	StudioID       int64         `json:"studio_id" gorm:"index;not null"`
	PhotographerID int64         `json:"photographer_id" gorm:"index;not null"`
	StartTime      time.Time     `json:"start_time" gorm:"not null"`
	EndTime        time.Time     `json:"end_time" gorm:"not null"`
	EquipmentIDs   []int64       `json:"equipment_ids" gorm:"serializer:json"`
	TotalPrice     float64       `json:"total_price" gorm:"not null"`
	Status         BookingStatus `json:"status" gorm:"type:varchar(20);index;not null"`
	PaymentStatus  PaymentStatus `json:"payment_status" gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }
