package equipment

type CreateEquipmentRequest struct {
	StudioID     int64  `json:"studio_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Brand        string `json:"brand"`
	Category     string `json:"category"`
	Condition    string `json:"condition"`
	SerialNumber string `json:"serial_number"`
	RentalPrice  int64  `json:"rental_price" binding:"gte=0"`
}

type ScanRequest struct {
	ScanCode string `json:"scan_code" binding:"required"`
	Action   string `json:"action" binding:"required,oneof=scan_out scan_in"`
	Notes    string `json:"notes"`
}
