package notify

import "errors"

var (
	// ErrChannelDisabled возвращается, когда канал не сконфигурирован
	ErrChannelDisabled = errors.New("notify client: channel not configured")

	// ErrSendFailed возвращается при ошибке отправки уведомления
	ErrSendFailed = errors.New("notify client: failed to send")
)
