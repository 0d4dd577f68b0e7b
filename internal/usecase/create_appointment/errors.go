package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrEmployeeNotFound возвращается, когда выбранный мастер не найден
	ErrEmployeeNotFound = errors.New("create_appointment: employee not found")

	// ErrNoAvailability возвращается, когда ни у одного мастера нет запрошенного слота
	ErrNoAvailability = errors.New("create_appointment: no availability for requested time")

	// ErrSlotTaken возвращается, когда слот заняли между выбором и фиксацией
	ErrSlotTaken = errors.New("create_appointment: slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
