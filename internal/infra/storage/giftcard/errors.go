package giftcard

import "errors"

var (
	// ErrGiftCardNotFound возвращается, когда карта не найдена по коду
	ErrGiftCardNotFound = errors.New("giftcard.repository: gift card not found")

	// ErrInsufficientBalance возвращается, когда списание превышает остаток
	ErrInsufficientBalance = errors.New("giftcard.repository: insufficient balance")

	// ErrDuplicateCode возвращается при коллизии сгенерированного кода
	ErrDuplicateCode = errors.New("giftcard.repository: duplicate code")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("giftcard.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("giftcard.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("giftcard.repository: failed to scan row")
)
