package dto

import "time"

type PendingOwnerResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type StatsResponse struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalRooms    int64 `json:"totalRooms"`
	TotalBookings int64 `json:"totalBookings"`
	PendingOwners int64 `json:"pendingOwners"`
	PendingRooms  int64 `json:"pendingRooms"`
}
