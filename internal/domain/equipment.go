package domain

import "time"

type EquipmentStatus string

const (
	EquipmentAvailable EquipmentStatus = "available"
	EquipmentRented    EquipmentStatus = "rented"
)

type EquipmentAction string

const (
	ActionScanOut EquipmentAction = "scan_out"
	ActionScanIn  EquipmentAction = "scan_in"
)

type EquipmentItem struct {
	ID           int64           `json:"id" gorm:"primaryKey"`
	StudioID     int64           `json:"studio_id" gorm:"index;not null"`
	Name         string          `json:"name" gorm:"not null"`
	Brand        string          `json:"brand,omitempty"`
	Category     string          `json:"category,omitempty"`
	Condition    string          `json:"condition,omitempty"`
	SerialNumber string          `json:"serial_number,omitempty"`
	RentalPrice  int64           `json:"rental_price"`
	ScanCode     string          `json:"scan_code" gorm:"uniqueIndex;not null"`
	Status       EquipmentStatus `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (EquipmentItem) TableName() string { return "equipment_items" }

// EquipmentLog is the custody audit trail of record: one row per successful
// scan, never updated or deleted.
type EquipmentLog struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	EquipmentID int64           `json:"equipment_id" gorm:"index;not null"`
	UserID      int64           `json:"user_id" gorm:"not null"`
	Action      EquipmentAction `json:"action" gorm:"type:varchar(20);not null"`
	Timestamp   time.Time       `json:"timestamp" gorm:"not null"`
	Notes       string          `json:"notes,omitempty" gorm:"type:text"`
}

func (EquipmentLog) TableName() string { return "equipment_logs" }
