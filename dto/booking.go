package dto

type SubmitBookingRequest struct {
	RoomID     uint   `json:"roomId" binding:"required"`
	StartMonth string `json:"startMonth" binding:"required,yearmonth"`
	EndMonth   string `json:"endMonth" binding:"required,yearmonth"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
