package create_appointment

import (
	"time"

	"github.com/BreezDev/kimq/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ServiceID   int64            // ID услуги
	EmployeeID  *int64           // ID мастера; nil - первый свободный
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Время начала (например, "10:00")
	ClientName  string           // Имя клиента
	ClientEmail string           // Email клиента
	ClientPhone *string          // Телефон клиента (опционально)
	Notes       *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64            // ID созданной записи
	ServiceID  int64            // ID услуги
	EmployeeID int64            // ID назначенного мастера
	Date       time.Time        // Дата записи
	StartTime  types.TimeString // Время начала
	Status     string           // Статус записи

	// Денормализованные данные
	ServiceName  string // Название услуги
	EmployeeName string // Имя мастера
	DepositCents int64  // Сумма депозита

	// Платеж (best-effort, может отсутствовать)
	PaymentIntentID *string // ID платежного намерения
	PaymentStatus   *string // Статус платежа

	CreatedAt time.Time // Время создания
}
