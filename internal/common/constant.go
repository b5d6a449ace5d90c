package common

// Roles assigned to authenticated users. The owner account is created with
// RoleAdmin; everyone else registers as RoleUser. Anonymous callers are
// reported as RoleGuest without ever being stored.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleGuest = "guest"
)
