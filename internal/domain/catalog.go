package domain

import "time"

// Service represents a bookable studio service (makeup, styling, etc.)
type Service struct {
	ID           int64
	Name         string
	Description  string
	PriceCents   int64
	DepositCents int64
	ImageURL     *string
	CreatedAt    time.Time
}

// StaffRole роль сотрудника студии
type StaffRole string

const (
	RoleAdmin    StaffRole = "admin"
	RoleEmployee StaffRole = "employee"
)

// StaffMember represents a studio staff member. Employees are the bookable
// providers; the directory order (id ascending) is the auto-assignment order.
type StaffMember struct {
	ID        int64
	Name      string
	Email     string
	Phone     *string
	Role      StaffRole
	CreatedAt time.Time
}

// Client represents a studio client, created on first booking
type Client struct {
	ID        int64
	Name      string
	Email     string
	Phone     *string
	Notes     *string
	CreatedAt time.Time
}
