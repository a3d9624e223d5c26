package payment

type InitiateRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

type InitiateResponse struct {
	PaymentID  int64  `json:"payment_id"`
	PaymentURL string `json:"payment_url"`
}

// CallbackResult reports what a gateway callback did to local state.
type CallbackResult struct {
	BookingID int64 `json:"booking_id"`
	Paid      bool  `json:"paid"`
	Replayed  bool  `json:"replayed"`
}
