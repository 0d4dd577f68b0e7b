package giftcards

import "errors"

var (
	// ErrGiftCardNotFound возвращается, когда карта не найдена по коду
	ErrGiftCardNotFound = errors.New("gift card not found")

	// ErrInsufficientBalance возвращается, когда списание превышает остаток карты
	ErrInsufficientBalance = errors.New("insufficient gift card balance")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrPaymentFailed возвращается, когда платежный провайдер отклонил покупку
	ErrPaymentFailed = errors.New("gift card payment failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
