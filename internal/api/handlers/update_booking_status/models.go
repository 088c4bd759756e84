package update_booking_status

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // "APPROVED" / "REJECTED" / "CANCELLED"
}
