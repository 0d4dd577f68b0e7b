package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "Booked"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusNoShow    AppointmentStatus = "NoShow"
)

// ValidStatuses статусы, допустимые при обновлении записи
var ValidStatuses = []AppointmentStatus{
	StatusBooked,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// InactiveStatuses статусы, при которых запись не занимает окно в календаре.
// Используются для фильтрации при подсчете доступных слотов.
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}

// Appointment represents a client appointment on a staff member's calendar.
// Every appointment occupies a fixed-duration window starting at StartTime.
type Appointment struct {
	ID         int64
	ClientID   int64
	ServiceID  int64
	EmployeeID int64
	StartTime  time.Time
	Status     AppointmentStatus
	Notes      *string

	// Payment fields are filled in after the reservation commits
	PaymentIntentID *string
	PaymentStatus   *string
	AmountCents     int64

	CreatedAt time.Time
}

// IsActive returns true if the appointment still occupies its calendar window
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusBooked
}

// End returns the end of the occupancy window for the given duration
func (a *Appointment) End(duration time.Duration) time.Time {
	return a.StartTime.Add(duration)
}

// Overlaps reports whether the occupancy window [a.StartTime, a.StartTime+duration)
// strictly intersects [start, start+duration). Touching boundaries do not overlap.
func (a *Appointment) Overlaps(start time.Time, duration time.Duration) bool {
	return a.StartTime.Before(start.Add(duration)) && a.StartTime.Add(duration).After(start)
}

// AppointmentDetail is an appointment joined with its service, staff member
// and client, denormalized for detail pages and history listings
type AppointmentDetail struct {
	Appointment
	ServiceName  string
	PriceCents   int64
	DepositCents int64
	EmployeeName string
	ClientName   string
	ClientEmail  string
	ClientPhone  *string
}

// IsValidStatus проверяет, что статус входит в список допустимых
func IsValidStatus(s AppointmentStatus) bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}
