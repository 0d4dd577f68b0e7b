package payments

import "errors"

var (
	// ErrIntentFailed возвращается, когда платежный провайдер отклонил создание намерения
	ErrIntentFailed = errors.New("payments client: failed to create payment intent")

	// ErrInvalidAmount возвращается при неположительной сумме платежа
	ErrInvalidAmount = errors.New("payments client: amount must be positive")
)
