package availability

import "errors"

var (
	// ErrSlotTaken возвращается, когда запрошенное время пересекается с активной записью
	ErrSlotTaken = errors.New("availability: slot is taken")

	// ErrTimeOff возвращается, когда запрошенное время полностью покрыто отгулом
	ErrTimeOff = errors.New("availability: employee has time off")

	// ErrInternal возвращается при внутренних ошибках движка
	ErrInternal = errors.New("availability: internal error")
)
