package get_available_slots

import "time"

// Request модель запроса доступных слотов
type Request struct {
	Date       time.Time // Дата (без времени)
	EmployeeID *int64    // ID мастера; nil - все мастера
}

// StaffSlots свободные слоты одного мастера
type StaffSlots struct {
	EmployeeID   int64    // ID мастера
	EmployeeName string   // Имя мастера
	Slots        []string // Времена начала "HH:MM" в порядке блоков доступности
}

// Response модель ответа со слотами по мастерам
type Response struct {
	Date  time.Time    // Запрошенная дата
	Staff []StaffSlots // По одному элементу на мастера
}
