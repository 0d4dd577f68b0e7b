package update_appointment

import (
	"time"

	"github.com/BreezDev/kimq/pkg/types"
)

// Request модель запроса на обновление записи.
// Status и Date/StartTime опциональны и могут сочетаться:
// только статус, только перенос, либо и то и другое.
type Request struct {
	AppointmentID int64             // ID записи
	Status        *string           // Новый статус (опционально)
	Date          *time.Time        // Новая дата (опционально, вместе со StartTime)
	StartTime     *types.TimeString // Новое время начала (опционально, вместе с Date)
}

// Response модель ответа с обновленной записью
type Response struct {
	ID         int64     // ID записи
	EmployeeID int64     // ID мастера
	StartTime  time.Time // Время начала после обновления
	Status     string    // Статус после обновления
}
