package cancel_reservation

// CancelResponse HTTP response model
type CancelResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}
