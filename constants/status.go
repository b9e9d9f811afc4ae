package constants

// User roles
const (
	RoleAdmin  = "ADMIN"
	RoleOwner  = "OWNER"
	RoleTenant = "TENANT"
	// RoleSystem is used by scheduled jobs, never stored on a user
	RoleSystem = "SYSTEM"
)

// Owner approval status, also used for room approval
const (
	ApprovalPending  = "PENDING"
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

// Booking status
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
)

// ActiveBookingStatuses count against room availability and overlap checks
var ActiveBookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}

// IsBookingStatus reports whether s is one of the four booking statuses
func IsBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// IsRole reports whether s is a role a user can hold
func IsRole(s string) bool {
	switch s {
	case RoleAdmin, RoleOwner, RoleTenant:
		return true
	}
	return false
}
