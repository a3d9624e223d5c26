package domain

import "time"

// Payment tracks a single gateway attempt for a booking. ExternalRef is the
// gateway-assigned reference that callbacks are correlated by; it stays nil
// until the gateway has answered the initiation request. SettledAt is set
// exactly once, when the record reaches a terminal status.
type Payment struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	BookingID   int64         `json:"booking_id" gorm:"index;not null"`
	Amount      float64       `json:"amount" gorm:"not null"`
	Gateway     string        `json:"gateway" gorm:"type:varchar(40);not null"`
	Status      PaymentStatus `json:"status" gorm:"type:varchar(20);index;not null"`
	ExternalRef *string       `json:"external_ref,omitempty" gorm:"uniqueIndex"`
	SettledAt   *time.Time    `json:"settled_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
